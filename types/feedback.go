package types

import "time"

// DefaultFeedbackSource tags submissions that do not name their origin channel.
const DefaultFeedbackSource = "website"

// FeedbackCollection is the collection (or table) feedback documents live in.
const FeedbackCollection = "feedback"

// Feedback represents a feedback entry handed to the document store.
type Feedback struct {
	ID        string    `json:"id" bson:"-"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Message   string    `json:"message" bson:"message"`
	Source    string    `json:"source" bson:"source"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// FeedbackCreate represents the request body for submitting feedback.
type FeedbackCreate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message" binding:"required"`
	Source  string `json:"source"`
}

// ToFeedback builds the document for a submission, defaulting the source.
func (f FeedbackCreate) ToFeedback() *Feedback {
	source := f.Source
	if source == "" {
		source = DefaultFeedbackSource
	}
	return &Feedback{
		Name:    f.Name,
		Email:   f.Email,
		Message: f.Message,
		Source:  source,
	}
}

// FeedbackResult is the response of the feedback endpoint. ID is null unless saved.
type FeedbackResult struct {
	Status  string  `json:"status"`
	Saved   bool    `json:"saved"`
	ID      *string `json:"id"`
	Emailed bool    `json:"emailed"`
}
