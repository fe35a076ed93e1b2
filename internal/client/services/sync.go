package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dkozyrev/jobtrack/internal/client/cloud"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/applications"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/metadata"
	"github.com/dkozyrev/jobtrack/internal/common"
	"github.com/dkozyrev/jobtrack/internal/dbx"
)

// SyncReport summarizes one sync round.
type SyncReport struct {
	Pushed int
	Pulled int
}

// SyncService reconciles the active profile's application records with the
// remote API. Conflicts resolve last-write-wins on UpdatedAt. Attachments
// are out of scope: only structured records travel.
type SyncService interface {
	Sync(ctx context.Context, profileID string) (*SyncReport, error)
}

type syncService struct {
	client cloud.Client
	db     *sql.DB
}

// NewSyncService constructs a SyncService bound to the given API client and DB.
func NewSyncService(client cloud.Client, db *sql.DB) SyncService {
	return &syncService{client: client, db: db}
}

func (s *syncService) Sync(ctx context.Context, profileID string) (*SyncReport, error) {
	cursor, err := s.loadCursor(ctx)
	if err != nil {
		return nil, err
	}

	changed, err := applications.NewSQLiteRepository(s.db).ListUpdatedSince(ctx, profileID, cursor)
	if err != nil {
		return nil, fmt.Errorf("collecting local changes: %w", err)
	}

	remote, newCursor, err := s.client.Sync(ctx, changed, cursor)
	if err != nil {
		return nil, fmt.Errorf("sync error: %w", err)
	}

	report := &SyncReport{Pushed: len(changed)}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := applications.NewSQLiteRepository(tx)

		for _, app := range remote {
			local, err := repo.GetByID(ctx, app.ID)
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}
			if local != nil && !app.UpdatedAt.After(local.UpdatedAt) {
				continue
			}

			app.ProfileID = profileID
			if err := repo.CreateOrUpdate(ctx, app); err != nil {
				return err
			}
			report.Pulled++
		}

		return metadata.NewSQLiteRepository(tx).Set(ctx,
			metadata.KeySyncCursor, []byte(strconv.FormatInt(newCursor, 10)))
	})
	if err != nil {
		return nil, fmt.Errorf("applying remote changes: %w", err)
	}

	return report, nil
}

func (s *syncService) loadCursor(ctx context.Context) (int64, error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, metadata.KeySyncCursor)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}

	cursor, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt sync cursor: %w", err)
	}
	return cursor, nil
}
