// Package cloud implements the client for the optional remote API that
// persists structured application records. Attachment payloads never go
// through this package; they stay on the device.
package cloud

import (
	"context"

	"github.com/dkozyrev/jobtrack/internal/client/models"
)

// TokenPair is the access/refresh token pair issued by the remote API.
type TokenPair struct {
	Access  string
	Refresh string
}

// Client is the remote API surface used by the sync and auth services.
type Client interface {
	// Register creates a new remote account.
	Register(ctx context.Context, username, password string) error

	// Login authenticates and returns a fresh token pair. The client also
	// keeps the pair for subsequent calls.
	Login(ctx context.Context, username, password string) (TokenPair, error)

	// Ping checks server reachability. Does not require authentication.
	Ping(ctx context.Context) error

	// Sync uploads locally changed applications and returns the remote
	// changes after the given cursor, plus the new cursor value.
	Sync(ctx context.Context, changed []*models.Application, cursor int64) ([]*models.Application, int64, error)

	// SetTokens installs a previously persisted token pair.
	SetTokens(t TokenPair)

	// Tokens returns the current token pair (possibly refreshed since login).
	Tokens() TokenPair

	// Close releases client resources.
	Close() error
}
