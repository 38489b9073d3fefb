package mocks

import (
	"context"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

// MockProfileService is a mock implementation of ports.ProfileService
type MockProfileService struct {
	GetProfileEmailFunc func(ctx context.Context, apiEndpoint, accessToken string) (string, error)
	Calls               int
}

func (m *MockProfileService) GetProfileEmail(ctx context.Context, apiEndpoint, accessToken string) (string, error) {
	m.Calls++
	if m.GetProfileEmailFunc != nil {
		return m.GetProfileEmailFunc(ctx, apiEndpoint, accessToken)
	}
	return "", nil
}

// MockEmailService is a mock implementation of ports.EmailService
type MockEmailService struct {
	SendFunc func(ctx context.Context, msg *domain.EmailMessage) error
	Sent     []domain.EmailMessage
}

func (m *MockEmailService) Send(ctx context.Context, msg *domain.EmailMessage) error {
	m.Sent = append(m.Sent, *msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

// MockURLSigner is a mock implementation of ports.URLSigner
type MockURLSigner struct {
	PresignedGetURLFunc func(ctx context.Context, key string) (string, error)
}

func (m *MockURLSigner) PresignedGetURL(ctx context.Context, key string) (string, error) {
	if m.PresignedGetURLFunc != nil {
		return m.PresignedGetURLFunc(ctx, key)
	}
	return "https://bucket.example/" + key, nil
}
