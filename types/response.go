package types

// MessageResponse is the body of the banner endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
