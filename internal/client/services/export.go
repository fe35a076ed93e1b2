package services

import (
	"archive/zip"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ExportService produces offline copies of a profile's data: a CSV table of
// applications and per-application ZIP bundles of attachments. Attachment
// payloads are written through unmodified.
type ExportService interface {
	// ExportCSV writes all applications of the profile as CSV.
	ExportCSV(ctx context.Context, profileID string, w io.Writer) error

	// ExportBundle writes a ZIP archive with every attachment of one
	// application, entries named "<documentType>_<displayName>".
	ExportBundle(ctx context.Context, profileID, applicationID string, w io.Writer) error
}

type exportService struct {
	applications ApplicationService
	attachments  AttachmentService
}

// NewExportService constructs an ExportService over the given services.
func NewExportService(db *sql.DB) ExportService {
	return &exportService{
		applications: NewApplicationService(db),
		attachments:  NewAttachmentService(db),
	}
}

var csvHeader = []string{"id", "company", "role", "status", "applied_at", "updated_at", "link", "notes"}

func (s *exportService) ExportCSV(ctx context.Context, profileID string, w io.Writer) error {
	apps, err := s.applications.List(ctx, profileID)
	if err != nil {
		return fmt.Errorf("listing applications: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, app := range apps {
		row := []string{
			app.ID, app.Company, app.Role, string(app.Status),
			app.AppliedAt.Format(time.RFC3339), app.UpdatedAt.Format(time.RFC3339),
			app.Link, app.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (s *exportService) ExportBundle(ctx context.Context, profileID, applicationID string, w io.Writer) error {
	records, err := s.attachments.ListByApplication(ctx, profileID, applicationID)
	if err != nil {
		return fmt.Errorf("listing attachments: %w", err)
	}

	zw := zip.NewWriter(w)
	for _, rec := range records {
		entry, err := zw.Create(string(rec.DocumentType) + "_" + rec.DisplayName)
		if err != nil {
			return fmt.Errorf("creating archive entry: %w", err)
		}
		if _, err := entry.Write(rec.Payload); err != nil {
			return fmt.Errorf("writing archive entry: %w", err)
		}
	}

	return zw.Close()
}
