// Package attachments provides the client-side persistence layer for
// attachment records (one stored file per (profile, application, document
// type) triple).
//
// # Overview
//
// The package defines a Repository interface for upserting, fetching,
// deleting, and listing Attachment records by their composite key or via the
// two secondary indexes (application key, profile id). A SQLite-backed
// implementation (SQLiteRepository) persists data via a dbx.DBTX (*sql.DB
// or *sql.Tx), so callers choose the transaction boundary.
//
// Key Types
//
//   - type Repository        — contract used by higher-level services
//   - type SQLiteRepository  — SQLite implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := attachments.NewSQLiteRepository(db)
//	_ = repo.Upsert(ctx, record)
//	rec, _ := repo.GetByCompositeKey(ctx, key)
//	all, _ := repo.ListByApplicationKey(ctx, appKey)
//
// Key construction lives in internal/client/attachkey; this package treats
// keys as opaque strings. See internal/client/models.Attachment for field
// semantics.
package attachments
