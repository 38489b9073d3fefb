package ports

import (
	"context"
	"errors"
	"time"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key does not exist or expired.
var ErrCacheMiss = errors.New("cache miss")

// ProfileService resolves customer profile data scoped by a platform access token.
type ProfileService interface {
	GetProfileEmail(ctx context.Context, apiEndpoint, accessToken string) (string, error)
}

// EmailService sends one transactional email.
type EmailService interface {
	Send(ctx context.Context, msg *domain.EmailMessage) error
}

// URLSigner produces time-limited retrieval URLs for stored objects.
type URLSigner interface {
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

// Publisher emits events to a message bus.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// SetNX stores value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
