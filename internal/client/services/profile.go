package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/applications"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/attachments"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/metadata"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/profiles"
	"github.com/dkozyrev/jobtrack/internal/common"
	"github.com/dkozyrev/jobtrack/internal/dbx"
	"github.com/google/uuid"
)

// ProfileService manages local profiles. The active profile id lives in the
// metadata store; every CLI command operates on the active profile.
// Deleting a profile cascades over its applications and attachments in one
// transaction.
type ProfileService interface {
	Create(ctx context.Context, name string) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Select(ctx context.Context, name string) (*models.Profile, error)
	Active(ctx context.Context) (*models.Profile, error)
	Delete(ctx context.Context, name string) error
}

type profileService struct {
	db  *sql.DB
	now func() time.Time
}

// NewProfileService constructs a ProfileService over the local database.
func NewProfileService(db *sql.DB) ProfileService {
	return &profileService{db: db, now: time.Now}
}

// Create adds a profile and makes it active when it is the first one.
func (s *profileService) Create(ctx context.Context, name string) (*models.Profile, error) {
	p := &models.Profile{ID: uuid.NewString(), Name: name, CreatedAt: s.now().UTC()}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := profiles.NewSQLiteRepository(tx).Create(ctx, p); err != nil {
			return err
		}

		metaRepo := metadata.NewSQLiteRepository(tx)
		active, err := metaRepo.Get(ctx, metadata.KeyActiveProfile)
		if err != nil {
			return err
		}
		if active == nil {
			return metaRepo.Set(ctx, metadata.KeyActiveProfile, []byte(p.ID))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return p, nil
}

func (s *profileService) List(ctx context.Context) ([]*models.Profile, error) {
	return profiles.NewSQLiteRepository(s.db).List(ctx)
}

// Select makes the named profile the active one.
func (s *profileService) Select(ctx context.Context, name string) (*models.Profile, error) {
	p, err := profiles.NewSQLiteRepository(s.db).GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Set(ctx, metadata.KeyActiveProfile, []byte(p.ID))
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Active returns the currently selected profile, or common.ErrNotFound when
// none is selected.
func (s *profileService) Active(ctx context.Context) (*models.Profile, error) {
	id, err := metadata.NewSQLiteRepository(s.db).Get(ctx, metadata.KeyActiveProfile)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, fmt.Errorf("no active profile: %w", common.ErrNotFound)
	}
	return profiles.NewSQLiteRepository(s.db).GetByID(ctx, string(id))
}

// Delete removes the profile, its applications, and its attachments as one
// transaction, and clears the active-profile pointer when it referenced the
// deleted profile.
func (s *profileService) Delete(ctx context.Context, name string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		profileRepo := profiles.NewSQLiteRepository(tx)

		p, err := profileRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}

		attRepo := attachments.NewSQLiteRepository(tx)
		if err := deleteListed(ctx, attRepo, func() ([]*models.Attachment, error) {
			return attRepo.ListByProfileID(ctx, p.ID)
		}); err != nil {
			return err
		}

		if err := applications.NewSQLiteRepository(tx).DeleteByProfile(ctx, p.ID); err != nil {
			return err
		}

		if err := profileRepo.DeleteByID(ctx, p.ID); err != nil {
			return err
		}

		metaRepo := metadata.NewSQLiteRepository(tx)
		active, err := metaRepo.Get(ctx, metadata.KeyActiveProfile)
		if err != nil {
			return err
		}
		if string(active) == p.ID {
			return metaRepo.Delete(ctx, metadata.KeyActiveProfile)
		}
		return nil
	})
}
