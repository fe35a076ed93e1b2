package attachkey

import (
	"testing"

	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposite_Basic(t *testing.T) {
	key, err := Composite("u1", "j1", models.DocumentTypeResume)
	require.NoError(t, err)
	assert.Equal(t, "u1/j1/resume", key)
}

func TestComposite_DistinctTriplesDistinctKeys(t *testing.T) {
	triples := []struct {
		p, a string
		t    models.DocumentType
	}{
		{"u1", "j1", models.DocumentTypeResume},
		{"u1", "j1", models.DocumentTypeCover},
		{"u1", "j2", models.DocumentTypeResume},
		{"u2", "j1", models.DocumentTypeResume},
		// identifiers containing the separator must not collide
		{"u1/j1", "x", models.DocumentTypeResume},
		{"u1", "j1/x", models.DocumentTypeResume},
		{`u1\`, `j1`, models.DocumentTypeResume},
		{`u1`, `\j1`, models.DocumentTypeResume},
	}

	seen := map[string]int{}
	for i, tr := range triples {
		key, err := Composite(tr.p, tr.a, tr.t)
		require.NoError(t, err)
		prev, dup := seen[key]
		require.False(t, dup, "triple %d collides with triple %d on key %q", i, prev, key)
		seen[key] = i
	}
}

func TestApplication_SeparatorEscaped(t *testing.T) {
	k1, err := Application("a/b", "c")
	require.NoError(t, err)
	k2, err := Application("a", "b/c")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestComposite_InvalidInput(t *testing.T) {
	_, err := Composite("", "j1", models.DocumentTypeResume)
	assert.ErrorIs(t, err, common.ErrInvalidKey)

	_, err = Composite("u1", "", models.DocumentTypeResume)
	assert.ErrorIs(t, err, common.ErrInvalidKey)

	_, err = Composite("u1", "j1", models.DocumentType("invoice"))
	assert.ErrorIs(t, err, common.ErrInvalidKey)
}

func TestApplication_PrefixesComposite(t *testing.T) {
	appKey, err := Application("u1", "j1")
	require.NoError(t, err)

	for _, dt := range models.DocumentTypes {
		key, err := Composite("u1", "j1", dt)
		require.NoError(t, err)
		assert.Equal(t, appKey+"/"+string(dt), key)
	}
}
