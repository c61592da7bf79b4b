package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them — used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("email (local dev)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender sends emails via the Resend API — used in staging/production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// VerificationEmail builds the subject and body for an email-verification
// message. baseURL points at the website that hosts the verify page.
func VerificationEmail(baseURL, token string) (subject, body string) {
	link := baseURL + "/verify-email?token=" + token
	subject = "Verify your Tarjamli account"
	body = fmt.Sprintf(
		`<p>Welcome to Tarjamli! Click the link below to verify your email (expires in 24 hours):</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	return subject, body
}

// PasswordResetEmail builds the subject and body for a password-reset
// message.
func PasswordResetEmail(baseURL, token string) (subject, body string) {
	link := baseURL + "/reset-password?token=" + token
	subject = "Reset your Tarjamli password"
	body = fmt.Sprintf(
		`<p>Click the link below to choose a new password (expires in 1 hour):</p><p><a href="%s">%s</a></p><p>If you did not request this, you can ignore this email.</p>`,
		link, link,
	)
	return subject, body
}

// WelcomeEmail builds the message sent once an account is verified.
func WelcomeEmail() (subject, body string) {
	subject = "Welcome to Tarjamli"
	body = `<p>Your email is verified. Your translation history will now be saved to your account.</p>`
	return subject, body
}
