package mailer

import (
	"context"
	"fmt"
	"html/template"

	"github.com/knightmeat/taste-backend/pkg/config"
	"github.com/knightmeat/taste-backend/pkg/logger"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers account lifecycle emails.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, toEmail, toName, token string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, toName, token string) error
}

type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendgridMailer delivers mail through the SendGrid v3 API.
type SendgridMailer struct {
	client    sendClient
	from      *mail.Email
	clientURL string
}

// New returns a SendGrid-backed mailer when credentials are configured, and a
// log-only mailer otherwise so dev environments work without an API key.
func New(cfg *config.Config, logg *logger.Logger) Mailer {
	if !cfg.Sendgrid.Enabled() {
		return &LogMailer{logg: logg, clientURL: cfg.Client.BaseURL}
	}
	return &SendgridMailer{
		client:    sendgrid.NewSendClient(cfg.Sendgrid.APIKey),
		from:      mail.NewEmail(cfg.Sendgrid.DisplayName, cfg.Sendgrid.DefaultFrom),
		clientURL: cfg.Client.BaseURL,
	}
}

// SendVerificationEmail delivers the email-verification message for a freshly
// registered account.
func (m *SendgridMailer) SendVerificationEmail(ctx context.Context, toEmail, toName, token string) error {
	link := verificationLink(m.clientURL, token)
	return m.send(ctx, toEmail, toName, verificationSubject, verificationTemplate, link)
}

// SendPasswordResetEmail delivers the reset link for a forgot-password request.
func (m *SendgridMailer) SendPasswordResetEmail(ctx context.Context, toEmail, toName, token string) error {
	link := passwordResetLink(m.clientURL, token)
	return m.send(ctx, toEmail, toName, passwordResetSubject, passwordResetTemplate, link)
}

func (m *SendgridMailer) send(ctx context.Context, toEmail, toName, subject string, tmpl *template.Template, link string) error {
	html, err := renderTemplate(tmpl, templateData{Name: toName, Link: link})
	if err != nil {
		return err
	}

	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(m.from, subject, to, link, html)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer writes outbound mail to the application log instead of delivering it.
type LogMailer struct {
	logg      *logger.Logger
	clientURL string
}

func (m *LogMailer) SendVerificationEmail(ctx context.Context, toEmail, toName, token string) error {
	m.log(ctx, "verification email (delivery disabled)", toEmail, verificationLink(m.clientURL, token))
	return nil
}

func (m *LogMailer) SendPasswordResetEmail(ctx context.Context, toEmail, toName, token string) error {
	m.log(ctx, "password reset email (delivery disabled)", toEmail, passwordResetLink(m.clientURL, token))
	return nil
}

func (m *LogMailer) log(ctx context.Context, msg, toEmail, link string) {
	if m.logg == nil {
		return
	}
	ctx = m.logg.WithFields(ctx, map[string]any{"to": toEmail, "link": link})
	m.logg.Info(ctx, msg)
}
