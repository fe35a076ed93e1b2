// Package applications provides the client-side persistence layer for
// structured job-application records.
package applications

import (
	"context"

	"github.com/dkozyrev/jobtrack/internal/client/models"
)

// Repository describes CRUD and query operations for Application records.
// Implementations are typically backed by the local SQLite database.
type Repository interface {
	// CreateOrUpdate inserts a new application or updates an existing one by ID.
	CreateOrUpdate(ctx context.Context, app *models.Application) error

	// GetByID returns an application by its identifier.
	// Returns common.ErrNotFound when no such application exists.
	GetByID(ctx context.Context, id string) (*models.Application, error)

	// ListByProfile returns all applications owned by the profile.
	ListByProfile(ctx context.Context, profileID string) ([]*models.Application, error)

	// ListUpdatedSince returns the profile's applications whose UpdatedAt is
	// strictly after the given unix-millisecond cursor (used by cloud sync).
	ListUpdatedSince(ctx context.Context, profileID string, sinceMillis int64) ([]*models.Application, error)

	// DeleteByID removes an application record. Deleting an absent id is a no-op.
	DeleteByID(ctx context.Context, id string) error

	// DeleteByProfile removes all application records owned by the profile.
	DeleteByProfile(ctx context.Context, profileID string) error
}
