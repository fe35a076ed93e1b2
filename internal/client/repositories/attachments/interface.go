package attachments

import (
	"context"

	"github.com/dkozyrev/jobtrack/internal/client/models"
)

// Repository describes storage operations for Attachment records.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Upsert inserts or replaces the record with the same composite key.
	// Last write wins; the prior payload, if any, is gone irrecoverably.
	Upsert(ctx context.Context, a *models.Attachment) error

	// GetByCompositeKey returns the record for the key, or (nil, nil) when
	// nothing is stored for it. Absence is not an error.
	GetByCompositeKey(ctx context.Context, key string) (*models.Attachment, error)

	// DeleteByCompositeKey removes the record for the key if present.
	// Deleting an absent key is a no-op.
	DeleteByCompositeKey(ctx context.Context, key string) error

	// ListByApplicationKey returns all records sharing the application key.
	// The slice is freshly materialized; order is not part of the contract.
	ListByApplicationKey(ctx context.Context, appKey string) ([]*models.Attachment, error)

	// ListByProfileID returns all records owned by the profile, across all
	// of its applications. Same ordering contract as ListByApplicationKey.
	ListByProfileID(ctx context.Context, profileID string) ([]*models.Attachment, error)
}
