package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	db := setupDB(t)
	apps := NewApplicationService(db)
	exp := NewExportService(db)
	ctx := context.Background()

	_, err := apps.Add(ctx, "p1", "Acme", "Go Engineer", "https://acme.example", "note")
	require.NoError(t, err)
	_, err = apps.Add(ctx, "p1", "Globex", "SRE", "", "")
	require.NoError(t, err)
	_, err = apps.Add(ctx, "p2", "Initech", "QA", "", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exp.ExportCSV(ctx, "p1", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two applications")
	assert.Equal(t, csvHeader, rows[0])

	companies := []string{rows[1][1], rows[2][1]}
	assert.ElementsMatch(t, []string{"Acme", "Globex"}, companies)
}

func TestExportCSV_EmptyProfile(t *testing.T) {
	db := setupDB(t)
	exp := NewExportService(db)

	var buf bytes.Buffer
	require.NoError(t, exp.ExportCSV(context.Background(), "empty", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestExportBundle(t *testing.T) {
	db := setupDB(t)
	atts := newAttachmentService(db, time.Now())
	exp := NewExportService(db)
	ctx := context.Background()

	_, err := atts.Put(ctx, "p1", "j1", models.DocumentTypeResume, pdf("r.pdf", []byte{1, 2, 3}))
	require.NoError(t, err)
	_, err = atts.Put(ctx, "p1", "j1", models.DocumentTypeCover, pdf("c.pdf", []byte{4}))
	require.NoError(t, err)
	_, err = atts.Put(ctx, "p1", "j2", models.DocumentTypeResume, pdf("other.pdf", []byte{5}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exp.ExportBundle(ctx, "p1", "j1", &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	contents := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		contents[f.Name] = data
	}

	assert.Equal(t, []byte{1, 2, 3}, contents["resume_r.pdf"])
	assert.Equal(t, []byte{4}, contents["cover_c.pdf"])
}
