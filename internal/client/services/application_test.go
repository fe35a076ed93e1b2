package services

import (
	"context"
	"testing"
	"time"

	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplication_AddAndList(t *testing.T) {
	db := setupDB(t)
	s := NewApplicationService(db)
	ctx := context.Background()

	app, err := s.Add(ctx, "p1", "Acme", "Go Engineer", "https://acme.example/jobs/1", "referred by Bob")
	require.NoError(t, err)
	require.NotEmpty(t, app.ID)
	assert.Equal(t, models.StatusApplied, app.Status)

	_, err = s.Add(ctx, "p2", "Globex", "SRE", "", "")
	require.NoError(t, err)

	got, err := s.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].Company)
}

func TestApplication_SetStatus(t *testing.T) {
	db := setupDB(t)
	s := NewApplicationService(db)
	ctx := context.Background()

	app, err := s.Add(ctx, "p1", "Acme", "Go Engineer", "", "")
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(ctx, app.ID, models.StatusInterview))

	got, err := s.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, got.Status)
	assert.False(t, got.UpdatedAt.Before(app.UpdatedAt))

	err = s.SetStatus(ctx, app.ID, models.ApplicationStatus("ghosted"))
	require.ErrorIs(t, err, common.ErrInvalidStatus)

	err = s.SetStatus(ctx, "missing", models.StatusOffer)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestApplication_UpdateNotes(t *testing.T) {
	db := setupDB(t)
	s := NewApplicationService(db)
	ctx := context.Background()

	app, err := s.Add(ctx, "p1", "Acme", "Go Engineer", "", "old")
	require.NoError(t, err)

	require.NoError(t, s.UpdateNotes(ctx, app.ID, "phone screen on Friday"))

	got, err := s.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "phone screen on Friday", got.Notes)
}

func TestApplication_DeleteCascadesAttachments(t *testing.T) {
	db := setupDB(t)
	apps := NewApplicationService(db)
	atts := newAttachmentService(db, time.Now())
	ctx := context.Background()

	app, err := apps.Add(ctx, "p1", "Acme", "Go Engineer", "", "")
	require.NoError(t, err)

	_, err = atts.Put(ctx, "p1", app.ID, models.DocumentTypeResume, pdf("r.pdf", []byte{1}))
	require.NoError(t, err)
	_, err = atts.Put(ctx, "p1", app.ID, models.DocumentTypeCover, pdf("c.pdf", []byte{2}))
	require.NoError(t, err)

	require.NoError(t, apps.Delete(ctx, app.ID))

	_, err = apps.Get(ctx, app.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	leftovers, err := atts.ListByApplication(ctx, "p1", app.ID)
	require.NoError(t, err)
	assert.Empty(t, leftovers, "attachments must be gone with their application")
}

func TestApplication_DeleteMissing(t *testing.T) {
	db := setupDB(t)
	s := NewApplicationService(db)

	err := s.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}
