package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dkozyrev/jobtrack/internal/client/models"
)

// getMultiline is an indirection used to facilitate testing.
var getMultiline = GetMultiline

// Add collects the fields of a new job application and stores it under the
// active profile in status "applied".
func (a *App) Add(ctx context.Context) error {
	profileID, err := a.activeProfileID(ctx)
	if err != nil {
		return err
	}

	company, err := getSimpleText(a.reader, "Enter company", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role", os.Stdout)
	if err != nil {
		return err
	}
	link, err := getSimpleText(a.reader, "Enter posting link (optional)", os.Stdout)
	if err != nil {
		return err
	}
	notes, err := getMultiline(a.reader, "Enter notes (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}

	app, err := a.applicationService.Add(ctx, profileID, company, role, link, notes)
	if err != nil {
		a.log.Error(ctx, "add failed", "err", err)
		return err
	}

	printlnFn("Added application", app.ID)
	return nil
}

// List prints one line per application of the active profile, newest first.
func (a *App) List(ctx context.Context) error {
	profileID, err := a.activeProfileID(ctx)
	if err != nil {
		return err
	}

	apps, err := a.applicationService.List(ctx, profileID)
	if err != nil {
		a.log.Error(ctx, "list failed", "err", err)
		return err
	}

	for _, app := range apps {
		printlnFn(fmt.Sprintf("%s  %-10s  %s / %s", app.ID, app.Status, app.Company, app.Role))
	}
	return nil
}

// Show prints a single application with its stored documents.
func (a *App) Show(ctx context.Context) error {
	profileID, err := a.activeProfileID(ctx)
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter application id", os.Stdout)
	if err != nil {
		return err
	}

	app, err := a.applicationService.Get(ctx, id)
	if err != nil {
		a.log.Error(ctx, "show failed", "err", err)
		return err
	}

	printlnFn(fmt.Sprintf("%s / %s", app.Company, app.Role))
	printlnFn("Status:", string(app.Status))
	printlnFn("Applied:", app.AppliedAt.Format(time.RFC3339))
	printlnFn("Updated:", app.UpdatedAt.Format(time.RFC3339))
	if app.Link != "" {
		printlnFn("Link:", app.Link)
	}
	if app.Notes != "" {
		printlnFn("Notes:", app.Notes)
	}

	atts, err := a.attachmentService.ListByApplication(ctx, profileID, id)
	if err != nil {
		a.log.Error(ctx, "listing documents failed", "err", err)
		return err
	}
	for _, att := range atts {
		printlnFn(fmt.Sprintf("Document: %-10s %s (%d bytes)", att.DocumentType, att.DisplayName, len(att.Payload)))
	}
	return nil
}

// Status prompts for an application id and a new status value.
func (a *App) Status(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter application id", os.Stdout)
	if err != nil {
		return err
	}

	allowed := make([]string, 0, len(models.ApplicationStatuses))
	for _, s := range models.ApplicationStatuses {
		allowed = append(allowed, string(s))
	}
	raw, err := getSimpleText(a.reader, "Enter status ("+strings.Join(allowed, ", ")+")", os.Stdout)
	if err != nil {
		return err
	}

	status, err := models.ParseApplicationStatus(raw)
	if err != nil {
		a.log.Error(ctx, "invalid status", "status", raw)
		return err
	}

	if err := a.applicationService.SetStatus(ctx, id, status); err != nil {
		a.log.Error(ctx, "status change failed", "err", err)
		return err
	}
	printlnFn("Status updated.")
	return nil
}

// Notes replaces the notes of an application.
func (a *App) Notes(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter application id", os.Stdout)
	if err != nil {
		return err
	}
	notes, err := getMultiline(a.reader, "Enter notes (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.applicationService.UpdateNotes(ctx, id, notes); err != nil {
		a.log.Error(ctx, "notes update failed", "err", err)
		return err
	}
	printlnFn("Notes updated.")
	return nil
}

// Delete removes an application together with its stored documents.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter application id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.applicationService.Delete(ctx, id); err != nil {
		a.log.Error(ctx, "delete failed", "err", err)
		return err
	}
	printlnFn("Deleted.")
	return nil
}
