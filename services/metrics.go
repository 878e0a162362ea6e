package services

import "github.com/prometheus/client_golang/prometheus"

// EmailMetrics tracks outbound feedback notifications per provider.
type EmailMetrics struct {
	sendLatency *prometheus.HistogramVec
	errorCount  *prometheus.CounterVec
	sentCount   *prometheus.CounterVec
}

// NewEmailMetrics creates the email collectors and registers them with reg.
func NewEmailMetrics(reg prometheus.Registerer) *EmailMetrics {
	m := &EmailMetrics{
		sendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nadit_email_send_duration_seconds",
			Help:    "Time taken to send emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nadit_email_errors_total",
			Help: "Total number of email sending errors",
		}, []string{"provider"}),
		sentCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nadit_emails_sent_total",
			Help: "Total number of emails sent",
		}, []string{"provider"}),
	}

	reg.MustRegister(m.sendLatency, m.errorCount, m.sentCount)
	return m
}

// FeedbackMetrics tracks feedback submissions and the outcome of each step.
type FeedbackMetrics struct {
	submissions prometheus.Counter
	persisted   *prometheus.CounterVec
	notified    *prometheus.CounterVec
}

// NewFeedbackMetrics creates the feedback collectors and registers them with reg.
func NewFeedbackMetrics(reg prometheus.Registerer) *FeedbackMetrics {
	m := &FeedbackMetrics{
		submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nadit_feedback_submissions_total",
			Help: "Total number of structurally valid feedback submissions",
		}),
		persisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nadit_feedback_persist_total",
			Help: "Feedback persistence attempts by result (saved, failed, unavailable)",
		}, []string{"result"}),
		notified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nadit_feedback_notify_total",
			Help: "Feedback notification attempts by result (sent, failed, skipped)",
		}, []string{"result"}),
	}

	reg.MustRegister(m.submissions, m.persisted, m.notified)
	return m
}
