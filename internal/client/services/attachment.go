// Package services contains application services for the jobtrack client:
// the attachment store API, application and profile management, export, and
// cloud sync.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dkozyrev/jobtrack/internal/client/attachkey"
	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/attachments"
	"github.com/dkozyrev/jobtrack/internal/dbx"
)

// AttachmentService is the attachment store API. One record exists per
// (profile, application, document type) triple; Put replaces any prior
// record for the triple.
//
// Contract:
//   - Every operation validates its identifiers before touching storage;
//     malformed input fails with common.ErrInvalidKey and no I/O occurs.
//   - Writes run inside a transaction: a nil error means the data is
//     durably committed, not merely enqueued.
//   - Get returns (nil, nil) for an absent triple; absence is not an error.
//   - Delete and both cascades are idempotent and may be re-invoked after
//     a partial failure.
//   - List results are freshly materialized; callers must not rely on order.
type AttachmentService interface {
	Put(ctx context.Context, profileID, applicationID string, docType models.DocumentType, file *models.InputFile) (*models.Attachment, error)
	Get(ctx context.Context, profileID, applicationID string, docType models.DocumentType) (*models.Attachment, error)
	Delete(ctx context.Context, profileID, applicationID string, docType models.DocumentType) error
	ListByApplication(ctx context.Context, profileID, applicationID string) ([]*models.Attachment, error)
	ListByProfile(ctx context.Context, profileID string) ([]*models.Attachment, error)
	DeleteByApplication(ctx context.Context, profileID, applicationID string) error
	DeleteByProfile(ctx context.Context, profileID string) error
}

type attachmentService struct {
	db *sql.DB

	// now is a test seam for the upload timestamp.
	now func() time.Time
}

// NewAttachmentService constructs an AttachmentService over the local database.
func NewAttachmentService(db *sql.DB) AttachmentService {
	return &attachmentService{db: db, now: time.Now}
}

// Put stores file under the triple, replacing any existing record with the
// same composite key. The record's index keys are derived here and never
// mutated elsewhere. The prior payload, if any, is gone irrecoverably.
func (s *attachmentService) Put(ctx context.Context, profileID, applicationID string, docType models.DocumentType, file *models.InputFile) (*models.Attachment, error) {
	compositeKey, err := attachkey.Composite(profileID, applicationID, docType)
	if err != nil {
		return nil, err
	}
	appKey, err := attachkey.Application(profileID, applicationID)
	if err != nil {
		return nil, err
	}

	contentKind := file.ContentKind
	if contentKind == "" {
		contentKind = models.ContentKindDefault
	}
	payload := file.Payload
	if payload == nil {
		payload = []byte{}
	}

	record := &models.Attachment{
		CompositeKey:     compositeKey,
		ApplicationKey:   appKey,
		ProfileID:        profileID,
		ApplicationID:    applicationID,
		DocumentType:     docType,
		DisplayName:      file.DisplayName,
		ContentKind:      contentKind,
		UploadedAtMillis: s.now().UnixMilli(),
		Payload:          payload,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return attachments.NewSQLiteRepository(tx).Upsert(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("saving attachment: %w", err)
	}

	return record, nil
}

// Get is a point lookup by the triple's composite key.
func (s *attachmentService) Get(ctx context.Context, profileID, applicationID string, docType models.DocumentType) (*models.Attachment, error) {
	compositeKey, err := attachkey.Composite(profileID, applicationID, docType)
	if err != nil {
		return nil, err
	}
	return attachments.NewSQLiteRepository(s.db).GetByCompositeKey(ctx, compositeKey)
}

// Delete removes the record for the exact triple if present.
func (s *attachmentService) Delete(ctx context.Context, profileID, applicationID string, docType models.DocumentType) error {
	compositeKey, err := attachkey.Composite(profileID, applicationID, docType)
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return attachments.NewSQLiteRepository(tx).DeleteByCompositeKey(ctx, compositeKey)
	})
}

// ListByApplication returns all records of one (profile, application) pair.
func (s *attachmentService) ListByApplication(ctx context.Context, profileID, applicationID string) ([]*models.Attachment, error) {
	appKey, err := attachkey.Application(profileID, applicationID)
	if err != nil {
		return nil, err
	}

	var result []*models.Attachment
	err = dbx.WithReadTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = attachments.NewSQLiteRepository(tx).ListByApplicationKey(ctx, appKey)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListByProfile returns the profile's records across all of its applications.
func (s *attachmentService) ListByProfile(ctx context.Context, profileID string) ([]*models.Attachment, error) {
	if err := validProfileID(profileID); err != nil {
		return nil, err
	}

	var result []*models.Attachment
	err := dbx.WithReadTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = attachments.NewSQLiteRepository(tx).ListByProfileID(ctx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByApplication removes every record of the pair: enumerate via the
// application index, then delete each by primary key, all within one
// transaction. Safe on an empty set; re-invokable after failure.
func (s *attachmentService) DeleteByApplication(ctx context.Context, profileID, applicationID string) error {
	appKey, err := attachkey.Application(profileID, applicationID)
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := attachments.NewSQLiteRepository(tx)
		return deleteListed(ctx, repo, func() ([]*models.Attachment, error) {
			return repo.ListByApplicationKey(ctx, appKey)
		})
	})
}

// DeleteByProfile removes every record the profile owns, across all of its
// applications, as one transaction.
func (s *attachmentService) DeleteByProfile(ctx context.Context, profileID string) error {
	if err := validProfileID(profileID); err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := attachments.NewSQLiteRepository(tx)
		return deleteListed(ctx, repo, func() ([]*models.Attachment, error) {
			return repo.ListByProfileID(ctx, profileID)
		})
	})
}

func deleteListed(ctx context.Context, repo attachments.Repository, list func() ([]*models.Attachment, error)) error {
	found, err := list()
	if err != nil {
		return err
	}
	for _, a := range found {
		if err := repo.DeleteByCompositeKey(ctx, a.CompositeKey); err != nil {
			return err
		}
	}
	return nil
}

func validProfileID(profileID string) error {
	// reuse the codec's validation so the error kind stays uniform
	_, err := attachkey.Application(profileID, "-")
	return err
}
