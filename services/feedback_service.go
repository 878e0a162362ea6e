package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nadit/nadit-backend/logger"
	"github.com/nadit/nadit-backend/store"
	"github.com/nadit/nadit-backend/types"
	"go.uber.org/zap"
)

// ErrNotifierDisabled marks a notification step that was skipped because no
// provider is configured.
var ErrNotifierDisabled = errors.New("email notifications not configured")

// PersistResult is the outcome of the persistence step.
type PersistResult struct {
	ID  string
	Err error
}

// Saved reports whether the store returned an identifier.
func (r PersistResult) Saved() bool {
	return r.Err == nil && r.ID != ""
}

// NotifyResult is the outcome of the notification step.
type NotifyResult struct {
	Provider string
	Err      error
}

// Sent reports whether the notification was delivered without error.
func (r NotifyResult) Sent() bool {
	return r.Err == nil
}

// Skipped reports whether no notification was attempted.
func (r NotifyResult) Skipped() bool {
	return errors.Is(r.Err, ErrNotifierDisabled)
}

// Outcome carries both step results of one submission, errors included.
type Outcome struct {
	Persist PersistResult
	Notify  NotifyResult
}

// Result converts the outcome into the response body.
func (o Outcome) Result() types.FeedbackResult {
	res := types.FeedbackResult{
		Status:  "ok",
		Saved:   o.Persist.Saved(),
		Emailed: o.Notify.Sent(),
	}
	if res.Saved {
		id := o.Persist.ID
		res.ID = &id
	}
	return res
}

// FeedbackService runs the two best-effort side effects of a submission.
type FeedbackService struct {
	provider store.Provider
	notifier Notifier
	metrics  *FeedbackMetrics
	log      *zap.SugaredLogger
}

// NewFeedbackService creates a FeedbackService. notifier and metrics may be nil.
func NewFeedbackService(provider store.Provider, notifier Notifier, metrics *FeedbackMetrics) *FeedbackService {
	return &FeedbackService{
		provider: provider,
		notifier: notifier,
		metrics:  metrics,
		log:      logger.GetLogger(),
	}
}

// Submit persists fb and then sends the notification, regardless of whether
// persistence worked. Neither step's failure is returned; both are reported
// in the Outcome.
func (s *FeedbackService) Submit(ctx context.Context, fb *types.Feedback) Outcome {
	if s.metrics != nil {
		s.metrics.submissions.Inc()
	}

	out := Outcome{
		Persist: s.persist(ctx, fb),
		Notify:  s.notify(ctx, fb),
	}

	s.log.Infow("Feedback submitted",
		"source", fb.Source,
		"email", logger.MaskEmail(fb.Email),
		"saved", out.Persist.Saved(),
		"id", out.Persist.ID,
		"emailed", out.Notify.Sent(),
		"provider", out.Notify.Provider)
	return out
}

func (s *FeedbackService) persist(ctx context.Context, fb *types.Feedback) PersistResult {
	var res PersistResult

	var db store.Database
	if s.provider != nil {
		db, res.Err = s.provider.Handle()
	}
	if res.Err == nil && db == nil {
		res.Err = store.ErrUnavailable
	}

	if res.Err == nil {
		res.ID, res.Err = db.CreateFeedback(ctx, fb)
		if res.Err == nil && res.ID == "" {
			res.Err = fmt.Errorf("store returned no identifier")
		}
	}

	switch {
	case res.Err == nil:
		s.countPersist("saved")
	case errors.Is(res.Err, store.ErrNoDriver), errors.Is(res.Err, store.ErrUnavailable):
		s.countPersist("unavailable")
		s.log.Debugw("Feedback not persisted, database unavailable", "error", res.Err)
	default:
		s.countPersist("failed")
		s.log.Errorw("Failed to persist feedback", "error", res.Err)
	}
	return res
}

func (s *FeedbackService) notify(ctx context.Context, fb *types.Feedback) NotifyResult {
	if s.notifier == nil {
		s.countNotify("skipped")
		return NotifyResult{Err: ErrNotifierDisabled}
	}

	res := NotifyResult{Provider: s.notifier.Provider()}
	res.Err = s.notifier.Notify(ctx, fb)
	if res.Err != nil {
		s.countNotify("failed")
		s.log.Errorw("Failed to send feedback notification",
			"provider", res.Provider,
			"error", res.Err)
		return res
	}
	s.countNotify("sent")
	return res
}

func (s *FeedbackService) countPersist(result string) {
	if s.metrics != nil {
		s.metrics.persisted.WithLabelValues(result).Inc()
	}
}

func (s *FeedbackService) countNotify(result string) {
	if s.metrics != nil {
		s.metrics.notified.WithLabelValues(result).Inc()
	}
}
