// Package profiles provides the client-side persistence layer for local
// user profiles.
package profiles

import (
	"context"

	"github.com/dkozyrev/jobtrack/internal/client/models"
)

// Repository describes CRUD operations for Profile records.
type Repository interface {
	// Create inserts a new profile. Profile names are unique.
	Create(ctx context.Context, p *models.Profile) error

	// GetByID returns a profile by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// GetByName returns a profile by its unique name, or common.ErrNotFound.
	GetByName(ctx context.Context, name string) (*models.Profile, error)

	// List returns all profiles.
	List(ctx context.Context) ([]*models.Profile, error)

	// DeleteByID removes a profile record. Deleting an absent id is a no-op.
	DeleteByID(ctx context.Context, id string) error
}
