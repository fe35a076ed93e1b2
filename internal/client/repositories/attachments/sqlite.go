package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/common"
	"github.com/dkozyrev/jobtrack/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const attachmentColumns = `composite_key, application_key, profile_id, application_id,
	document_type, display_name, content_kind, uploaded_at_ms, payload`

// Upsert inserts or replaces an attachment by composite key. The index
// columns (application_key, profile_id) are written together with the rest
// of the record and are never updated independently.
func (r *SQLiteRepository) Upsert(ctx context.Context, a *models.Attachment) error {
	query := ` INSERT INTO attachments (` + attachmentColumns + `)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(composite_key) DO UPDATE SET application_key = excluded.application_key,
				profile_id = excluded.profile_id,
				application_id = excluded.application_id,
				document_type = excluded.document_type,
				display_name = excluded.display_name,
				content_kind = excluded.content_kind,
				uploaded_at_ms = excluded.uploaded_at_ms,
				payload = excluded.payload
	`
	_, err := r.db.ExecContext(ctx, query,
		a.CompositeKey, a.ApplicationKey, a.ProfileID, a.ApplicationID,
		a.DocumentType, a.DisplayName, a.ContentKind, a.UploadedAtMillis, a.Payload)
	if err != nil {
		return fmt.Errorf("%w: failed to upsert attachment: %v", common.ErrWriteFailed, err)
	}

	return nil
}

// GetByCompositeKey returns the attachment for the key, or (nil, nil) when absent.
func (r *SQLiteRepository) GetByCompositeKey(ctx context.Context, key string) (*models.Attachment, error) {
	query := `select ` + attachmentColumns + ` from attachments where composite_key=?`
	row := r.db.QueryRowContext(ctx, query, key)

	a, err := scanAttachment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get attachment: %v", common.ErrReadFailed, err)
	}

	return a, nil
}

// DeleteByCompositeKey removes the attachment for the key. Zero affected
// rows is fine: deletion is idempotent.
func (r *SQLiteRepository) DeleteByCompositeKey(ctx context.Context, key string) error {
	query := `delete from attachments where composite_key=?`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("%w: failed to delete attachment: %v", common.ErrWriteFailed, err)
	}

	return nil
}

// ListByApplicationKey returns all attachments sharing the application key.
func (r *SQLiteRepository) ListByApplicationKey(ctx context.Context, appKey string) ([]*models.Attachment, error) {
	query := `select ` + attachmentColumns + ` from attachments where application_key=? order by composite_key`
	return r.list(ctx, query, appKey)
}

// ListByProfileID returns all attachments owned by the profile.
func (r *SQLiteRepository) ListByProfileID(ctx context.Context, profileID string) ([]*models.Attachment, error) {
	query := `select ` + attachmentColumns + ` from attachments where profile_id=? order by composite_key`
	return r.list(ctx, query, profileID)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, arg any) ([]*models.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("%w: error selecting attachments: %v", common.ErrReadFailed, err)
	}
	defer rows.Close()

	result := make([]*models.Attachment, 0)

	for rows.Next() {
		item, err := scanAttachment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrReadFailed, err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrReadFailed, err)
	}

	return result, nil
}

func scanAttachment(scan func(dest ...any) error) (*models.Attachment, error) {
	a := &models.Attachment{}
	err := scan(&a.CompositeKey, &a.ApplicationKey, &a.ProfileID, &a.ApplicationID,
		&a.DocumentType, &a.DisplayName, &a.ContentKind, &a.UploadedAtMillis, &a.Payload)
	if err != nil {
		return nil, err
	}
	return a, nil
}
