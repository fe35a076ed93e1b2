// Package client wires the local database and the cloud API client for the
// jobtrack CLI.
package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkozyrev/jobtrack/internal/client/migrations"
	"github.com/dkozyrev/jobtrack/internal/common"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations. Goose tracks applied
// versions in the database itself, so running against an already
// up-to-date store is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if necessary) the local SQLite database at
// dsn and brings its schema up to date. The returned handle is intended to
// be opened once and reused for the process lifetime.
//
// Failures to open or migrate surface as ErrStorageUnavailable; callers
// must not retry automatically.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	return db, nil
}
