package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/filex"
)

// loadInputFile is an indirection used to facilitate testing.
var loadInputFile = filex.LoadInputFile

func (a *App) promptDocumentType() (models.DocumentType, error) {
	kinds := make([]string, 0, len(models.DocumentTypes))
	for _, dt := range models.DocumentTypes {
		kinds = append(kinds, string(dt))
	}
	raw, err := getSimpleText(a.reader, "Enter document type ("+strings.Join(kinds, ", ")+")", os.Stdout)
	if err != nil {
		return "", err
	}
	return models.ParseDocumentType(raw)
}

// Attach reads a local file and stores it as a document of an application.
// A second attach with the same document type replaces the previous file.
func (a *App) Attach(ctx context.Context) error {
	profileID, err := a.activeProfileID(ctx)
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter application id", os.Stdout)
	if err != nil {
		return err
	}

	docType, err := a.promptDocumentType()
	if err != nil {
		a.log.Error(ctx, "invalid document type", "err", err)
		return err
	}

	path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}

	file, err := loadInputFile(path)
	if err != nil {
		a.log.Error(ctx, "reading file failed", "err", err)
		return err
	}

	att, err := a.attachmentService.Put(ctx, profileID, id, docType, file)
	if err != nil {
		a.log.Error(ctx, "attach failed", "err", err)
		return err
	}

	printlnFn(fmt.Sprintf("Stored %s as %s (%d bytes)", att.DisplayName, att.DocumentType, len(att.Payload)))
	return nil
}

// Detach removes one document from an application. Detaching a document
// that does not exist is not an error.
func (a *App) Detach(ctx context.Context) error {
	profileID, err := a.activeProfileID(ctx)
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter application id", os.Stdout)
	if err != nil {
		return err
	}

	docType, err := a.promptDocumentType()
	if err != nil {
		a.log.Error(ctx, "invalid document type", "err", err)
		return err
	}

	if err := a.attachmentService.Delete(ctx, profileID, id, docType); err != nil {
		a.log.Error(ctx, "detach failed", "err", err)
		return err
	}
	printlnFn("Detached.")
	return nil
}

// Open writes a stored document back to disk, into the "download"
// subdirectory of the working directory.
func (a *App) Open(ctx context.Context) error {
	profileID, err := a.activeProfileID(ctx)
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter application id", os.Stdout)
	if err != nil {
		return err
	}

	docType, err := a.promptDocumentType()
	if err != nil {
		a.log.Error(ctx, "invalid document type", "err", err)
		return err
	}

	att, err := a.attachmentService.Get(ctx, profileID, id, docType)
	if err != nil {
		a.log.Error(ctx, "open failed", "err", err)
		return err
	}
	if att == nil {
		printlnFn("No such document.")
		return nil
	}

	dir, err := filex.EnsureSubDir("download")
	if err != nil {
		a.log.Error(ctx, "open failed", "err", err)
		return err
	}

	path := filepath.Join(dir, att.DisplayName)
	if err := os.WriteFile(path, att.Payload, 0o600); err != nil {
		a.log.Error(ctx, "open failed", "err", err)
		return err
	}

	printlnFn("File saved to:", path)
	return nil
}

// Files lists every document stored for the active profile.
func (a *App) Files(ctx context.Context) error {
	profileID, err := a.activeProfileID(ctx)
	if err != nil {
		return err
	}

	atts, err := a.attachmentService.ListByProfile(ctx, profileID)
	if err != nil {
		a.log.Error(ctx, "files failed", "err", err)
		return err
	}

	for _, att := range atts {
		printlnFn(fmt.Sprintf("%s  %-10s  %s (%d bytes)",
			att.ApplicationID, att.DocumentType, att.DisplayName, len(att.Payload)))
	}
	return nil
}
