package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nadit/nadit-backend/types"
)

// FeedbackHandler handles feedback submission endpoints.
type FeedbackHandler struct {
	submitter FeedbackSubmitter
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(submitter FeedbackSubmitter) *FeedbackHandler {
	return &FeedbackHandler{submitter: submitter}
}

// SubmitFeedback handles POST /api/feedback. Only a payload that fails
// validation is rejected; storage and email problems are reported through
// the saved/emailed flags.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.FeedbackCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	outcome := h.submitter.Submit(c.Request.Context(), req.ToFeedback())
	c.JSON(http.StatusOK, outcome.Result())
}
