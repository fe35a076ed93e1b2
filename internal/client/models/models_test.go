package models

import (
	"testing"

	"github.com/dkozyrev/jobtrack/internal/common"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentType_Valid(t *testing.T) {
	for _, s := range []string{"resume", "cover", "portfolio"} {
		dt, err := ParseDocumentType(s)
		require.NoError(t, err)
		require.Equal(t, DocumentType(s), dt)
	}
}

func TestParseDocumentType_Invalid(t *testing.T) {
	for _, s := range []string{"", "invoice", "Resume", "resume "} {
		_, err := ParseDocumentType(s)
		require.ErrorIs(t, err, common.ErrInvalidKey, "input %q", s)
	}
}

func TestParseApplicationStatus(t *testing.T) {
	st, err := ParseApplicationStatus("interview")
	require.NoError(t, err)
	require.Equal(t, StatusInterview, st)

	_, err = ParseApplicationStatus("ghosted")
	require.ErrorIs(t, err, common.ErrInvalidStatus)
}
