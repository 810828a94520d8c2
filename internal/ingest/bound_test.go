package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

func TestBound_TruncatesToBudget(t *testing.T) {
	text := strings.Repeat("a", 500)

	bounded, err := Bound(text, "https://example.com", 100)
	require.NoError(t, err)

	assert.Len(t, bounded.Text, 100)
	assert.Equal(t, text[:100], bounded.Text)
	assert.Equal(t, "https://example.com", bounded.SourceID)
	assert.Equal(t, 100, bounded.MaxChars)
}

func TestBound_IdentityWhenWithinBudget(t *testing.T) {
	text := "short text"

	bounded, err := Bound(text, "src", 100)
	require.NoError(t, err)

	assert.Equal(t, text, bounded.Text)
}

func TestBound_NeverExceedsBudget(t *testing.T) {
	for _, max := range []int{1, 7, 64, 12000} {
		bounded, err := Bound(strings.Repeat("x", 20000), "src", max)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(bounded.Text), max)
	}
}

func TestBound_CutsOnRuneBoundary(t *testing.T) {
	// é is two bytes in UTF-8; an 11-byte budget would split the sixth rune.
	text := strings.Repeat("é", 10)

	bounded, err := Bound(text, "src", 11)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(bounded.Text), 11)
	assert.True(t, strings.HasPrefix(text, bounded.Text))
	for _, r := range bounded.Text {
		assert.NotEqual(t, '�', r)
	}
}

func TestBound_EmptyContentIsDistinctCondition(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t \n"} {
		_, err := Bound(in, "src", 100)
		assert.ErrorIs(t, err, entity.ErrNoContent)
	}
}
