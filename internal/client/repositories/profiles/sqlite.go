package profiles

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

func (r *SQLiteRepository) Create(ctx context.Context, p *models.Profile) error {
	query := `insert into profiles (id, name, created_at) values (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("%w: failed to create profile: %v", common.ErrWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `select id, name, created_at from profiles where id=?`, id)
	return scanProfile(row)
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `select id, name, created_at from profiles where name=?`, name)
	return scanProfile(row)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `select id, name, created_at from profiles order by name`)
	if err != nil {
		return nil, fmt.Errorf("%w: error selecting profiles: %v", common.ErrReadFailed, err)
	}
	defer rows.Close()

	result := make([]*models.Profile, 0)
	for rows.Next() {
		p := &models.Profile{}
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrReadFailed, err)
		}
		p.CreatedAt = time.UnixMilli(createdAt).UTC()
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrReadFailed, err)
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `delete from profiles where id=?`, id); err != nil {
		return fmt.Errorf("%w: failed to delete profile: %v", common.ErrWriteFailed, err)
	}
	return nil
}

func scanProfile(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	var createdAt int64
	err := row.Scan(&p.ID, &p.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get profile: %v", common.ErrReadFailed, err)
	}
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	return p, nil
}
