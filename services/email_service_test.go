package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nadit/nadit-backend/config"
	"github.com/nadit/nadit-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeMailSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeMailSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

type mockResendSender struct {
	mock.Mock
}

func (m *mockResendSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.SendEmailResponse), args.Error(1)
}

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		Host:       "smtp.example.com",
		Port:       "465",
		User:       "bot@nadit.com",
		Password:   "secret",
		FeedbackTo: "info@nadit.com",
	}
}

func TestFeedbackBody(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		body, err := FeedbackBody(&types.Feedback{
			Name:    "Anna",
			Email:   "anna@example.com",
			Source:  "app",
			Message: "Ottimo servizio",
		})
		require.NoError(t, err)
		assert.Equal(t, "Nome: Anna\nEmail: anna@example.com\nOrigine: app\n\nMessaggio:\nOttimo servizio", body)
	})

	t.Run("missing optional fields", func(t *testing.T) {
		body, err := FeedbackBody(&types.Feedback{Message: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "Nome: -\nEmail: -\nOrigine: website\n\nMessaggio:\nhello", body)
	})
}

func TestNewNotifier(t *testing.T) {
	t.Run("incomplete mail config yields no notifier", func(t *testing.T) {
		cfg := &config.Config{Mail: testMailConfig()}
		cfg.Mail.Password = ""

		assert.Nil(t, NewNotifier(cfg, nil))
	})

	t.Run("complete mail config yields smtp", func(t *testing.T) {
		cfg := &config.Config{Mail: testMailConfig()}

		n := NewNotifier(cfg, nil)
		require.NotNil(t, n)
		assert.IsType(t, &SMTPNotifier{}, n)
		assert.Equal(t, "smtp", n.Provider())
	})

	t.Run("resend fallback", func(t *testing.T) {
		cfg := &config.Config{
			Mail:  config.MailConfig{FeedbackTo: "info@nadit.com"},
			Email: config.EmailConfig{ResendAPIKey: "re_test", FromAddress: "noreply@nadit.com", FromName: "Nadit"},
		}

		n := NewNotifier(cfg, nil)
		require.NotNil(t, n)
		assert.IsType(t, &ResendNotifier{}, n)
	})

	t.Run("smtp preferred over resend", func(t *testing.T) {
		cfg := &config.Config{
			Mail:  testMailConfig(),
			Email: config.EmailConfig{ResendAPIKey: "re_test", FromAddress: "noreply@nadit.com"},
		}

		assert.IsType(t, &SMTPNotifier{}, NewNotifier(cfg, nil))
	})
}

func TestSMTPNotifier_Notify(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewEmailMetrics(reg)

	n, err := NewSMTPNotifier(testMailConfig(), metrics)
	require.NoError(t, err)

	sender := &fakeMailSender{}
	n.newSender = func() (mailSender, error) { return sender, nil }

	err = n.Notify(context.Background(), &types.Feedback{Message: "hello", Source: "website"})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	rcpts, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"info@nadit.com"}, rcpts)

	from, err := msg.GetSender(false)
	require.NoError(t, err)
	assert.Equal(t, "bot@nadit.com", from)
	assert.Equal(t, []string{"Nuovo feedback dal sito Nadit"}, msg.GetGenHeader(mail.HeaderSubject))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.sentCount.WithLabelValues("smtp")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.errorCount.WithLabelValues("smtp")))
}

func TestSMTPNotifier_Failures(t *testing.T) {
	t.Run("send error", func(t *testing.T) {
		metrics := NewEmailMetrics(prometheus.NewRegistry())
		n, err := NewSMTPNotifier(testMailConfig(), metrics)
		require.NoError(t, err)
		n.newSender = func() (mailSender, error) {
			return &fakeMailSender{err: errors.New("535 5.7.8 authentication failed")}, nil
		}

		err = n.Notify(context.Background(), &types.Feedback{Message: "hello"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authentication failed")
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.errorCount.WithLabelValues("smtp")))
	})

	t.Run("client construction error", func(t *testing.T) {
		n, err := NewSMTPNotifier(testMailConfig(), nil)
		require.NoError(t, err)
		n.newSender = func() (mailSender, error) { return nil, errors.New("invalid host") }

		assert.Error(t, n.Notify(context.Background(), &types.Feedback{Message: "hello"}))
	})

	t.Run("invalid recipient", func(t *testing.T) {
		cfg := testMailConfig()
		cfg.FeedbackTo = "not an address"
		n, err := NewSMTPNotifier(cfg, nil)
		require.NoError(t, err)
		sender := &fakeMailSender{}
		n.newSender = func() (mailSender, error) { return sender, nil }

		assert.Error(t, n.Notify(context.Background(), &types.Feedback{Message: "hello"}))
		assert.Empty(t, sender.sent)
	})

	t.Run("incomplete config rejected", func(t *testing.T) {
		cfg := testMailConfig()
		cfg.Port = "0"
		_, err := NewSMTPNotifier(cfg, nil)
		assert.Error(t, err)
	})
}

func TestResendNotifier_Notify(t *testing.T) {
	metrics := NewEmailMetrics(prometheus.NewRegistry())
	n := NewResendNotifier(config.EmailConfig{
		ResendAPIKey: "re_test",
		FromAddress:  "noreply@nadit.com",
		FromName:     "Nadit",
	}, "info@nadit.com", metrics)

	sender := &mockResendSender{}
	n.emails = sender

	fb := &types.Feedback{Name: "Anna", Email: "anna@example.com", Message: "hello", Source: "website"}
	sender.On("SendWithContext", mock.Anything, mock.MatchedBy(func(p *resend.SendEmailRequest) bool {
		return p.From == "Nadit <noreply@nadit.com>" &&
			len(p.To) == 1 && p.To[0] == "info@nadit.com" &&
			p.Subject == "Nuovo feedback dal sito Nadit" &&
			p.ReplyTo == "anna@example.com" &&
			p.Text == "Nome: Anna\nEmail: anna@example.com\nOrigine: website\n\nMessaggio:\nhello"
	})).Return(&resend.SendEmailResponse{Id: "email_123"}, nil).Once()
	sender.On("SendWithContext", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited")).Once()

	require.NoError(t, n.Notify(context.Background(), fb))
	assert.Error(t, n.Notify(context.Background(), fb))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.sentCount.WithLabelValues("resend")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.errorCount.WithLabelValues("resend")))
	sender.AssertExpectations(t)
}
