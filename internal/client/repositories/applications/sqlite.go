package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const applicationColumns = `id, profile_id, company, role, status, link, notes, applied_at, updated_at`

// CreateOrUpdate upserts an application by id. On conflict, every mutable
// column is replaced.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, app *models.Application) error {
	query := ` INSERT INTO applications (` + applicationColumns + `)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET profile_id = excluded.profile_id,
				company = excluded.company,
				role = excluded.role,
				status = excluded.status,
				link = excluded.link,
				notes = excluded.notes,
				applied_at = excluded.applied_at,
				updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.ProfileID, app.Company, app.Role, app.Status,
		app.Link, app.Notes, app.AppliedAt.UnixMilli(), app.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("%w: failed to upsert application: %v", common.ErrWriteFailed, err)
	}
	return nil
}

// GetByID returns a single application.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	query := `select ` + applicationColumns + ` from applications where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	app, err := scanApplication(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get application: %v", common.ErrReadFailed, err)
	}
	return app, nil
}

// ListByProfile lists the profile's applications, most recently updated first.
func (r *SQLiteRepository) ListByProfile(ctx context.Context, profileID string) ([]*models.Application, error) {
	query := `select ` + applicationColumns + ` from applications where profile_id=? order by updated_at desc`
	return r.list(ctx, query, profileID)
}

// ListUpdatedSince lists applications updated strictly after sinceMillis.
func (r *SQLiteRepository) ListUpdatedSince(ctx context.Context, profileID string, sinceMillis int64) ([]*models.Application, error) {
	query := `select ` + applicationColumns + ` from applications where profile_id=? and updated_at>? order by updated_at`
	return r.list(ctx, query, profileID, sinceMillis)
}

// DeleteByID removes an application. Zero affected rows is fine.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `delete from applications where id=?`, id); err != nil {
		return fmt.Errorf("%w: failed to delete application: %v", common.ErrWriteFailed, err)
	}
	return nil
}

// DeleteByProfile removes every application owned by the profile.
func (r *SQLiteRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	if _, err := r.db.ExecContext(ctx, `delete from applications where profile_id=?`, profileID); err != nil {
		return fmt.Errorf("%w: failed to delete applications: %v", common.ErrWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]*models.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: error selecting applications: %v", common.ErrReadFailed, err)
	}
	defer rows.Close()

	result := make([]*models.Application, 0)
	for rows.Next() {
		item, err := scanApplication(rows.Scan)
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

func scanApplication(scan func(dest ...any) error) (*models.Application, error) {
	app := &models.Application{}
	var appliedAt, updatedAt int64
	err := scan(&app.ID, &app.ProfileID, &app.Company, &app.Role, &app.Status,
		&app.Link, &app.Notes, &appliedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	app.AppliedAt = time.UnixMilli(appliedAt).UTC()
	app.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return app, nil
}
