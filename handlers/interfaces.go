package handlers

import (
	"context"

	"github.com/nadit/nadit-backend/services"
	"github.com/nadit/nadit-backend/types"
)

// FeedbackSubmitter runs the feedback side effects for one submission.
type FeedbackSubmitter interface {
	Submit(ctx context.Context, fb *types.Feedback) services.Outcome
}

// Diagnoser produces the database diagnostic record.
type Diagnoser interface {
	Diagnose(ctx context.Context) types.DiagnosticRecord
}
