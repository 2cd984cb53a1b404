package ports

import (
	"context"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// SessionStore keeps the server-side mapping from session ID to identity
// snapshot. Entries expire on their own after the store's TTL; Get on a live
// entry refreshes that TTL so active sessions stay warm.
type SessionStore interface {
	Put(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
