package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

// SendGridProvider implements the Provider interface using SendGrid
type SendGridProvider struct {
	fromEmail string
	fromName  string
	client    *sendgrid.Client
}

// NewSendGridProvider creates a new SendGrid provider
func NewSendGridProvider(apiKey, fromEmail, fromName string) *SendGridProvider {
	return &SendGridProvider{
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    sendgrid.NewSendClient(apiKey),
	}
}

// Send sends an email with both plain text and HTML parts.
func (p *SendGridProvider) Send(ctx context.Context, msg *domain.EmailMessage) error {
	message := buildSendGridMessage(msg, p.fromEmail, p.fromName)

	response, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid error: %w", err)
	}

	// SendGrid returns 2xx for success
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}

func buildSendGridMessage(msg *domain.EmailMessage, fromEmail, fromName string) *mail.SGMailV3 {
	if msg.From != "" {
		fromEmail = msg.From
	}
	if msg.FromName != "" {
		fromName = msg.FromName
	}
	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail("", msg.To)

	return mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)
}
