package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/nadit/nadit-backend/config"
	"github.com/nadit/nadit-backend/logger"
	"github.com/nadit/nadit-backend/types"
	"github.com/resend/resend-go/v2"
	"github.com/wneessen/go-mail"
)

const (
	providerSMTP   = "smtp"
	providerResend = "resend"

	feedbackSubject = "Nuovo feedback dal sito Nadit"
)

// Notifier delivers a notification about a stored or attempted feedback submission.
type Notifier interface {
	Notify(ctx context.Context, fb *types.Feedback) error
	Provider() string
}

var feedbackBodyTemplate = template.Must(template.New("feedback").Parse(
	"Nome: {{or .Name \"-\"}}\n" +
		"Email: {{or .Email \"-\"}}\n" +
		"Origine: {{or .Source \"" + types.DefaultFeedbackSource + "\"}}\n" +
		"\n" +
		"Messaggio:\n" +
		"{{.Message}}"))

// FeedbackBody renders the plain-text notification body for fb.
func FeedbackBody(fb *types.Feedback) (string, error) {
	var body bytes.Buffer
	if err := feedbackBodyTemplate.Execute(&body, fb); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}

// NewNotifier picks the notification provider from configuration. SMTP wins
// when fully configured, Resend is the fallback. It returns nil when neither
// is usable, in which case no network call is ever made.
func NewNotifier(cfg *config.Config, metrics *EmailMetrics) Notifier {
	log := logger.GetLogger()

	if cfg.Mail.Complete() {
		n, err := NewSMTPNotifier(cfg.Mail, metrics)
		if err == nil {
			log.Infow("Email notifications enabled",
				"provider", providerSMTP,
				"host", cfg.Mail.Host,
				"to", logger.MaskEmail(cfg.Mail.FeedbackTo))
			return n
		}
		log.Warnw("SMTP configuration rejected", "error", err)
	}

	if cfg.Email.Enabled() {
		log.Infow("Email notifications enabled",
			"provider", providerResend,
			"from", cfg.Email.FromAddress,
			"to", logger.MaskEmail(cfg.Mail.FeedbackTo))
		return NewResendNotifier(cfg.Email, cfg.Mail.FeedbackTo, metrics)
	}

	log.Info("Email notifications disabled: mail configuration incomplete")
	return nil
}

// mailSender is the part of *mail.Client used to deliver messages.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPNotifier sends feedback notifications over an implicit-TLS SMTP session
// authenticated as the configured user. A new session is opened per message.
type SMTPNotifier struct {
	cfg       config.MailConfig
	port      int
	metrics   *EmailMetrics
	newSender func() (mailSender, error)
}

// NewSMTPNotifier validates cfg and returns a notifier for it.
func NewSMTPNotifier(cfg config.MailConfig, metrics *EmailMetrics) (*SMTPNotifier, error) {
	if !cfg.Complete() {
		return nil, errors.New("smtp configuration incomplete")
	}
	port, err := cfg.PortNumber()
	if err != nil {
		return nil, err
	}

	n := &SMTPNotifier{cfg: cfg, port: port, metrics: metrics}
	n.newSender = n.dial
	return n, nil
}

func (n *SMTPNotifier) dial() (mailSender, error) {
	return mail.NewClient(n.cfg.Host,
		mail.WithSSL(),
		mail.WithPort(n.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.User),
		mail.WithPassword(n.cfg.Password),
	)
}

func (n *SMTPNotifier) Provider() string {
	return providerSMTP
}

// Notify composes the notification and delivers it to the feedback recipient.
func (n *SMTPNotifier) Notify(ctx context.Context, fb *types.Feedback) error {
	msg, err := n.message(fb)
	if err != nil {
		return n.fail(err)
	}

	startTime := time.Now()
	defer func() {
		if n.metrics != nil {
			n.metrics.sendLatency.WithLabelValues(providerSMTP).Observe(time.Since(startTime).Seconds())
		}
	}()

	client, err := n.newSender()
	if err != nil {
		return n.fail(fmt.Errorf("failed to create smtp client: %w", err))
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return n.fail(fmt.Errorf("email send failed: %w", err))
	}

	if n.metrics != nil {
		n.metrics.sentCount.WithLabelValues(providerSMTP).Inc()
	}
	logger.GetLogger().Infow("Email sent successfully",
		"provider", providerSMTP,
		"to", logger.MaskEmail(n.cfg.FeedbackTo),
		"subject", feedbackSubject)
	return nil
}

func (n *SMTPNotifier) message(fb *types.Feedback) (*mail.Msg, error) {
	body, err := FeedbackBody(fb)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.User); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.cfg.FeedbackTo); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(feedbackSubject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (n *SMTPNotifier) fail(err error) error {
	if n.metrics != nil {
		n.metrics.errorCount.WithLabelValues(providerSMTP).Inc()
	}
	return err
}

// resendSender is the part of the Resend emails service used here.
type resendSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendNotifier sends feedback notifications through the Resend API.
type ResendNotifier struct {
	from    string
	to      string
	emails  resendSender
	metrics *EmailMetrics
}

// NewResendNotifier creates a Resend-backed notifier delivering to `to`.
func NewResendNotifier(cfg config.EmailConfig, to string, metrics *EmailMetrics) *ResendNotifier {
	client := resend.NewClient(cfg.ResendAPIKey)
	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return &ResendNotifier{
		from:    from,
		to:      to,
		emails:  client.Emails,
		metrics: metrics,
	}
}

func (n *ResendNotifier) Provider() string {
	return providerResend
}

// Notify sends the notification as a plain-text Resend email.
func (n *ResendNotifier) Notify(ctx context.Context, fb *types.Feedback) error {
	startTime := time.Now()
	defer func() {
		if n.metrics != nil {
			n.metrics.sendLatency.WithLabelValues(providerResend).Observe(time.Since(startTime).Seconds())
		}
	}()

	body, err := FeedbackBody(fb)
	if err != nil {
		return n.fail(err)
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: feedbackSubject,
		Text:    body,
	}
	if fb.Email != "" {
		params.ReplyTo = fb.Email
	}

	if _, err := n.emails.SendWithContext(ctx, params); err != nil {
		return n.fail(fmt.Errorf("email send failed: %w", err))
	}

	if n.metrics != nil {
		n.metrics.sentCount.WithLabelValues(providerResend).Inc()
	}
	logger.GetLogger().Infow("Email sent successfully",
		"provider", providerResend,
		"to", logger.MaskEmail(n.to),
		"subject", feedbackSubject)
	return nil
}

func (n *ResendNotifier) fail(err error) error {
	if n.metrics != nil {
		n.metrics.errorCount.WithLabelValues(providerResend).Inc()
	}
	return err
}
