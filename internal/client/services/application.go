package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dkozyrev/jobtrack/internal/client/attachkey"
	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/applications"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/attachments"
	"github.com/dkozyrev/jobtrack/internal/dbx"
	"github.com/google/uuid"
)

// ApplicationService manages structured job-application records. Deleting
// an application also removes its attachments; the two deletions commit in
// the same transaction, so readers never observe an application-less
// attachment.
type ApplicationService interface {
	Add(ctx context.Context, profileID, company, role, link, notes string) (*models.Application, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	List(ctx context.Context, profileID string) ([]*models.Application, error)
	SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	UpdateNotes(ctx context.Context, id string, notes string) error
	Delete(ctx context.Context, id string) error
}

type applicationService struct {
	db  *sql.DB
	now func() time.Time
}

// NewApplicationService constructs an ApplicationService over the local database.
func NewApplicationService(db *sql.DB) ApplicationService {
	return &applicationService{db: db, now: time.Now}
}

// Add creates a new application in status "applied".
func (s *applicationService) Add(ctx context.Context, profileID, company, role, link, notes string) (*models.Application, error) {
	now := s.now().UTC()
	app := &models.Application{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		Company:   company,
		Role:      role,
		Status:    models.StatusApplied,
		Link:      link,
		Notes:     notes,
		AppliedAt: now,
		UpdatedAt: now,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return applications.NewSQLiteRepository(tx).CreateOrUpdate(ctx, app)
	})
	if err != nil {
		return nil, fmt.Errorf("saving application: %w", err)
	}
	return app, nil
}

func (s *applicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	return applications.NewSQLiteRepository(s.db).GetByID(ctx, id)
}

func (s *applicationService) List(ctx context.Context, profileID string) ([]*models.Application, error) {
	var result []*models.Application
	err := dbx.WithReadTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = applications.NewSQLiteRepository(tx).ListByProfile(ctx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetStatus moves an application through the pipeline and bumps UpdatedAt.
func (s *applicationService) SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	if _, err := models.ParseApplicationStatus(string(status)); err != nil {
		return err
	}
	return s.update(ctx, id, func(app *models.Application) {
		app.Status = status
	})
}

func (s *applicationService) UpdateNotes(ctx context.Context, id string, notes string) error {
	return s.update(ctx, id, func(app *models.Application) {
		app.Notes = notes
	})
}

func (s *applicationService) update(ctx context.Context, id string, mutate func(*models.Application)) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := applications.NewSQLiteRepository(tx)
		app, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		mutate(app)
		app.UpdatedAt = s.now().UTC()
		return repo.CreateOrUpdate(ctx, app)
	})
}

// Delete removes the application and cascades over its attachments: they
// are enumerated via the application index and deleted by composite key,
// all in one transaction.
func (s *applicationService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		appRepo := applications.NewSQLiteRepository(tx)

		app, err := appRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		appKey, err := attachkey.Application(app.ProfileID, app.ID)
		if err != nil {
			return err
		}

		attRepo := attachments.NewSQLiteRepository(tx)
		if err := deleteListed(ctx, attRepo, func() ([]*models.Attachment, error) {
			return attRepo.ListByApplicationKey(ctx, appKey)
		}); err != nil {
			return err
		}

		return appRepo.DeleteByID(ctx, id)
	})
}
