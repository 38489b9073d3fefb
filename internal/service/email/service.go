package email

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

// ErrMissingAPIKey means the sendgrid provider was selected without a credential.
var ErrMissingAPIKey = errors.New("sendgrid API key is required")

// Provider defines the interface for email providers
type Provider interface {
	Send(ctx context.Context, msg *domain.EmailMessage) error
}

// Config holds email service configuration
type Config struct {
	// Provider type: "sendgrid" or "smtp"
	Provider string

	// From email address
	FromEmail string
	FromName  string

	// SendGrid configuration
	SendGridAPIKey string

	// SMTP configuration (for Mailhog or other SMTP servers)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
}

// DefaultConfig returns a default configuration for development (Mailhog)
func DefaultConfig() *Config {
	return &Config{
		Provider:   "smtp",
		FromEmail:  "noreply@dogwalkers.example",
		FromName:   "Dog Walkers",
		SMTPHost:   "localhost",
		SMTPPort:   1025, // Mailhog default port
		SMTPUseTLS: false,
	}
}

// Service implements ports.EmailService on top of a Provider.
type Service struct {
	config   *Config
	provider Provider
	log      *zap.Logger
}

// NewService creates a new email service. The provider credential comes from
// config only; a missing sendgrid key is reported here, before the first send.
func NewService(config *Config, log *zap.Logger) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Service{
		config: config,
		log:    log,
	}

	switch config.Provider {
	case "sendgrid":
		if config.SendGridAPIKey == "" {
			return nil, ErrMissingAPIKey
		}
		s.provider = NewSendGridProvider(config.SendGridAPIKey, config.FromEmail, config.FromName)
	case "smtp":
		s.provider = NewSMTPProvider(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.FromEmail,
			config.FromName,
			config.SMTPUseTLS,
		)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", config.Provider)
	}

	return s, nil
}

// NewServiceWithProvider wires an already built provider.
func NewServiceWithProvider(config *Config, provider Provider, log *zap.Logger) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &Service{config: config, provider: provider, log: log}
}

// Send sends one message. Empty From fields fall back to the configured sender.
func (s *Service) Send(ctx context.Context, msg *domain.EmailMessage) error {
	if msg == nil || msg.To == "" {
		return errors.New("email recipient is required")
	}

	out := *msg
	if out.From == "" {
		out.From = s.config.FromEmail
	}
	if out.FromName == "" {
		out.FromName = s.config.FromName
	}

	s.log.Info("Sending email",
		zap.String("provider", s.config.Provider),
		zap.String("subject", out.Subject),
	)

	if err := s.provider.Send(ctx, &out); err != nil {
		s.log.Error("Failed to send email",
			zap.String("subject", out.Subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
