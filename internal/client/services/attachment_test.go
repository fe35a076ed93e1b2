package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dkozyrev/jobtrack/internal/client/client"
	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newAttachmentService(db *sql.DB, at time.Time) *attachmentService {
	return &attachmentService{db: db, now: func() time.Time { return at }}
}

func pdf(name string, payload []byte) *models.InputFile {
	return &models.InputFile{DisplayName: name, ContentKind: "application/pdf", Payload: payload}
}

func TestAttachment_PutThenGet(t *testing.T) {
	db := setupDB(t)
	uploadedAt := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	s := newAttachmentService(db, uploadedAt)
	ctx := context.Background()

	stored, err := s.Put(ctx, "u1", "j1", models.DocumentTypeResume, pdf("r.pdf", []byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, uploadedAt.UnixMilli(), stored.UploadedAtMillis)

	got, err := s.Get(ctx, "u1", "j1", models.DocumentTypeResume)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "r.pdf", got.DisplayName)
	assert.Equal(t, "application/pdf", got.ContentKind)
	assert.Equal(t, []byte{1, 2, 3}, got.Payload)
	assert.Equal(t, "u1", got.ProfileID)
	assert.Equal(t, "j1", got.ApplicationID)
	assert.Equal(t, models.DocumentTypeResume, got.DocumentType)
}

func TestAttachment_PutOverwritesLastWriteWins(t *testing.T) {
	db := setupDB(t)
	s := newAttachmentService(db, time.Now())
	ctx := context.Background()

	_, err := s.Put(ctx, "u1", "j1", models.DocumentTypeResume, pdf("v1.pdf", []byte{1}))
	require.NoError(t, err)
	_, err = s.Put(ctx, "u1", "j1", models.DocumentTypeResume, pdf("v2.pdf", []byte{2}))
	require.NoError(t, err)

	got, err := s.Get(ctx, "u1", "j1", models.DocumentTypeResume)
	require.NoError(t, err)
	assert.Equal(t, "v2.pdf", got.DisplayName)
	assert.Equal(t, []byte{2}, got.Payload)

	list, err := s.ListByApplication(ctx, "u1", "j1")
	require.NoError(t, err)
	assert.Len(t, list, 1, "re-upload must not duplicate the record")
}

func TestAttachment_GetAbsentIsNotError(t *testing.T) {
	db := setupDB(t)
	s := newAttachmentService(db, time.Now())

	got, err := s.Get(context.Background(), "u1", "j1", models.DocumentTypeCover)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAttachment_DeleteAbsentIsNoop(t *testing.T) {
	db := setupDB(t)
	s := newAttachmentService(db, time.Now())

	require.NoError(t, s.Delete(context.Background(), "u1", "j1", models.DocumentTypeResume))
}

func TestAttachment_InvalidDocumentTypeRejectedBeforeWrite(t *testing.T) {
	db := setupDB(t)
	s := newAttachmentService(db, time.Now())
	ctx := context.Background()

	_, err := s.Put(ctx, "u1", "j1", models.DocumentType("invoice"), pdf("x.pdf", []byte{1}))
	require.ErrorIs(t, err, common.ErrInvalidKey)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM attachments`).Scan(&n))
	assert.Equal(t, 0, n, "no record may be written")

	_, err = s.Get(ctx, "", "j1", models.DocumentTypeResume)
	require.ErrorIs(t, err, common.ErrInvalidKey)

	err = s.DeleteByApplication(ctx, "u1", "")
	require.ErrorIs(t, err, common.ErrInvalidKey)
}

func TestAttachment_ZeroByteUpload(t *testing.T) {
	db := setupDB(t)
	s := newAttachmentService(db, time.Now())
	ctx := context.Background()

	_, err := s.Put(ctx, "u1", "j1", models.DocumentTypePortfolio,
		&models.InputFile{DisplayName: "empty.bin"})
	require.NoError(t, err)

	got, err := s.Get(ctx, "u1", "j1", models.DocumentTypePortfolio)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Payload, 0)
	assert.Equal(t, models.ContentKindDefault, got.ContentKind)
}

func TestAttachment_DeleteByApplicationCascade(t *testing.T) {
	db := setupDB(t)
	s := newAttachmentService(db, time.Now())
	ctx := context.Background()

	for _, dt := range models.DocumentTypes {
		_, err := s.Put(ctx, "u1", "j1", dt, pdf(string(dt)+".pdf", []byte{1}))
		require.NoError(t, err)
	}
	_, err := s.Put(ctx, "u1", "j2", models.DocumentTypeResume, pdf("other.pdf", []byte{2}))
	require.NoError(t, err)

	require.NoError(t, s.DeleteByApplication(ctx, "u1", "j1"))

	list, err := s.ListByApplication(ctx, "u1", "j1")
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, dt := range models.DocumentTypes {
		got, err := s.Get(ctx, "u1", "j1", dt)
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	// sibling application untouched
	got, err := s.Get(ctx, "u1", "j2", models.DocumentTypeResume)
	require.NoError(t, err)
	require.NotNil(t, got)

	// cascade on an empty set is fine, and re-invocation is too
	require.NoError(t, s.DeleteByApplication(ctx, "u1", "j1"))
}

func TestAttachment_DeleteByProfileCascade(t *testing.T) {
	db := setupDB(t)
	s := newAttachmentService(db, time.Now())
	ctx := context.Background()

	_, err := s.Put(ctx, "u1", "j1", models.DocumentTypeResume, pdf("a.pdf", []byte{1}))
	require.NoError(t, err)
	_, err = s.Put(ctx, "u1", "j2", models.DocumentTypeCover, pdf("b.pdf", []byte{2}))
	require.NoError(t, err)
	_, err = s.Put(ctx, "u2", "j1", models.DocumentTypeResume, pdf("c.pdf", []byte{3}))
	require.NoError(t, err)

	require.NoError(t, s.DeleteByProfile(ctx, "u1"))

	list, err := s.ListByProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, appID := range []string{"j1", "j2"} {
		byApp, err := s.ListByApplication(ctx, "u1", appID)
		require.NoError(t, err)
		assert.Empty(t, byApp)
	}

	// other profile untouched
	other, err := s.ListByProfile(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestAttachment_ListNeverLeaksAcrossPairs(t *testing.T) {
	db := setupDB(t)
	s := newAttachmentService(db, time.Now())
	ctx := context.Background()

	// identifiers chosen so naive string concatenation would collide
	_, err := s.Put(ctx, "u1/j1", "x", models.DocumentTypeResume, pdf("a.pdf", []byte{1}))
	require.NoError(t, err)
	_, err = s.Put(ctx, "u1", "j1/x", models.DocumentTypeResume, pdf("b.pdf", []byte{2}))
	require.NoError(t, err)

	list, err := s.ListByApplication(ctx, "u1/j1", "x")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a.pdf", list[0].DisplayName)
}

func TestAttachment_Scenario(t *testing.T) {
	db := setupDB(t)
	s := newAttachmentService(db, time.Now())
	ctx := context.Background()

	_, err := s.Put(ctx, "u1", "j1", models.DocumentTypeResume, pdf("r.pdf", []byte{1, 2, 3}))
	require.NoError(t, err)

	got, err := s.Get(ctx, "u1", "j1", models.DocumentTypeResume)
	require.NoError(t, err)
	assert.Equal(t, "r.pdf", got.DisplayName)
	assert.Equal(t, []byte{1, 2, 3}, got.Payload)

	_, err = s.Put(ctx, "u1", "j1", models.DocumentTypeCover, pdf("c.pdf", []byte{4}))
	require.NoError(t, err)

	list, err := s.ListByApplication(ctx, "u1", "j1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, s.DeleteByApplication(ctx, "u1", "j1"))

	list, err = s.ListByApplication(ctx, "u1", "j1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
