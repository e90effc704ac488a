// Package session keeps server-side session records keyed by an opaque id
// that the client holds in a cookie.
package session

import (
	"context"
	"errors"
	"time"

	"cobra/site/internal/models"
)

// DefaultTTL is the absolute lifetime of a session measured from creation.
const DefaultTTL = 24 * time.Hour

var ErrSessionNotFound = errors.New("session not found")

// Store creates, resolves and destroys sessions. Get reports
// ErrSessionNotFound for ids that were never issued, were destroyed, or have
// expired. Destroy is idempotent.
//
// Implementations give no ordering guarantee between concurrent writers to
// the same id; the last write wins.
type Store interface {
	Create(ctx context.Context, payload models.SessionPayload) (models.Session, error)
	Get(ctx context.Context, id string) (models.Session, error)
	Destroy(ctx context.Context, id string) error
}

// Pinger is implemented by stores that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Option func(*options)

type options struct {
	ttl time.Duration
	now func() time.Time
}

func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newSession(o options, payload models.SessionPayload) (models.Session, error) {
	id, err := GenerateID()
	if err != nil {
		return models.Session{}, err
	}

	now := o.now().UTC()
	return models.Session{
		ID:        id,
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(o.ttl),
	}, nil
}
