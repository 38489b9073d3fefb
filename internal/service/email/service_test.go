package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

// MockProvider is a mock email provider for testing
type MockProvider struct {
	SentEmails []domain.EmailMessage
	ShouldFail bool
	FailError  error
}

func (m *MockProvider) Send(ctx context.Context, msg *domain.EmailMessage) error {
	if m.ShouldFail {
		if m.FailError != nil {
			return m.FailError
		}
		return errors.New("mock send failed")
	}

	m.SentEmails = append(m.SentEmails, *msg)
	return nil
}

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService(provider *MockProvider) *Service {
	return NewServiceWithProvider(&Config{
		Provider:  "mock",
		FromEmail: "test@dogwalkers.example",
		FromName:  "Dog Walkers Test",
	}, provider, newTestLogger())
}

func TestService_Send_Success(t *testing.T) {
	// Arrange
	mockProvider := &MockProvider{}
	service := newTestService(mockProvider)

	// Act
	err := service.Send(context.Background(), &domain.EmailMessage{
		To:      "user@example.com",
		Subject: "Dog Walkers",
		Text:    "plain",
		HTML:    "<strong>html</strong>",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mockProvider.SentEmails) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(mockProvider.SentEmails))
	}
	email := mockProvider.SentEmails[0]
	if email.To != "user@example.com" {
		t.Errorf("expected to 'user@example.com', got '%s'", email.To)
	}
	if email.From != "test@dogwalkers.example" {
		t.Errorf("expected configured sender, got '%s'", email.From)
	}
	if email.FromName != "Dog Walkers Test" {
		t.Errorf("expected configured sender name, got '%s'", email.FromName)
	}
	if email.Text != "plain" || email.HTML != "<strong>html</strong>" {
		t.Errorf("unexpected bodies: %q / %q", email.Text, email.HTML)
	}
}

func TestService_Send_KeepsExplicitSender(t *testing.T) {
	mockProvider := &MockProvider{}
	service := newTestService(mockProvider)

	err := service.Send(context.Background(), &domain.EmailMessage{
		To:   "user@example.com",
		From: "walks@dogwalkers.example",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := mockProvider.SentEmails[0].From; got != "walks@dogwalkers.example" {
		t.Errorf("expected explicit sender, got '%s'", got)
	}
}

func TestService_Send_Failure(t *testing.T) {
	// Arrange
	mockProvider := &MockProvider{
		ShouldFail: true,
		FailError:  errors.New("SMTP connection failed"),
	}
	service := newTestService(mockProvider)

	// Act
	err := service.Send(context.Background(), &domain.EmailMessage{To: "user@example.com"})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "SMTP connection failed") {
		t.Errorf("expected error to contain 'SMTP connection failed', got '%s'", err.Error())
	}
}

func TestService_Send_RequiresRecipient(t *testing.T) {
	mockProvider := &MockProvider{}
	service := newTestService(mockProvider)

	if err := service.Send(context.Background(), &domain.EmailMessage{}); err == nil {
		t.Fatal("expected error for missing recipient")
	}
	if len(mockProvider.SentEmails) != 0 {
		t.Errorf("expected nothing sent, got %d", len(mockProvider.SentEmails))
	}
}

func TestNewService_SendGridWithoutKey(t *testing.T) {
	_, err := NewService(&Config{Provider: "sendgrid"}, newTestLogger())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewService_UnknownProvider(t *testing.T) {
	if _, err := NewService(&Config{Provider: "carrier-pigeon"}, newTestLogger()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewService_Providers(t *testing.T) {
	svc, err := NewService(&Config{Provider: "sendgrid", SendGridAPIKey: "SG.test"}, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := svc.provider.(*SendGridProvider); !ok {
		t.Errorf("expected SendGridProvider, got %T", svc.provider)
	}

	svc, err = NewService(nil, newTestLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := svc.provider.(*SMTPProvider); !ok {
		t.Errorf("expected SMTPProvider for default config, got %T", svc.provider)
	}
}

func TestRenderAppointment(t *testing.T) {
	text, html, err := RenderAppointment("2024-05-01", "10:00")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "Su paseo ha sido agendado para el día 2024-05-01 at 10:00" {
		t.Errorf("unexpected text body: %q", text)
	}
	if !strings.Contains(html, "<strong>Su paseo ha sido agendado para el día 2024-05-01 at 10:00</strong>") {
		t.Errorf("unexpected html body: %q", html)
	}
}

func TestRenderAppointment_EscapesHTML(t *testing.T) {
	_, html, err := RenderAppointment("<script>", "10:00")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("expected date to be escaped in html body")
	}
}

func TestBuildSendGridMessage(t *testing.T) {
	msg := buildSendGridMessage(&domain.EmailMessage{
		To:      "user@example.com",
		Subject: "Dog Walkers",
		Text:    "plain",
		HTML:    "<strong>html</strong>",
	}, "noreply@dogwalkers.example", "Dog Walkers")

	if msg.From.Address != "noreply@dogwalkers.example" {
		t.Errorf("unexpected from: %s", msg.From.Address)
	}
	if msg.Subject != "Dog Walkers" {
		t.Errorf("unexpected subject: %s", msg.Subject)
	}
	if len(msg.Content) != 2 {
		t.Fatalf("expected text and html content, got %d", len(msg.Content))
	}
	if msg.Content[0].Type != "text/plain" || msg.Content[1].Type != "text/html" {
		t.Errorf("unexpected content types: %s, %s", msg.Content[0].Type, msg.Content[1].Type)
	}
	if msg.Personalizations[0].To[0].Address != "user@example.com" {
		t.Errorf("unexpected recipient: %s", msg.Personalizations[0].To[0].Address)
	}
}

func TestBuildMIMEMessage(t *testing.T) {
	body, err := buildMIMEMessage(&domain.EmailMessage{
		To:      "user@example.com",
		Subject: "Dog Walkers",
		Text:    "plain",
		HTML:    "<strong>html</strong>",
	}, formatFrom("Dog Walkers", "noreply@dogwalkers.example"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	s := string(body)
	for _, want := range []string{
		"From: Dog Walkers <noreply@dogwalkers.example>\r\n",
		"To: user@example.com\r\n",
		"Subject: Dog Walkers\r\n",
		"multipart/alternative",
		"text/plain; charset=UTF-8",
		"text/html; charset=UTF-8",
		"<strong>html</strong>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("expected message to contain %q", want)
		}
	}
}
