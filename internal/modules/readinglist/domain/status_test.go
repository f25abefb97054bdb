package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()
	for raw, want := range map[string]Status{
		"to_read":           StatusToRead,
		"Currently Reading": StatusCurrentlyReading,
		" completed ":       StatusCompleted,
		"PAUSED":            StatusPaused,
		"abandoned":         StatusAbandoned,
		"to-read":           StatusToRead,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseStatus("reading")
	assert.Error(t, err)
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "To Read", StatusToRead.Label())
	assert.Equal(t, "Currently Reading", StatusCurrentlyReading.Label())
}

func TestRatingHelpers(t *testing.T) {
	t.Parallel()
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
	assert.NoError(t, ValidateRating(5))
	three := 3
	assert.Equal(t, "★★★☆☆", Stars(&three))
	assert.Equal(t, "unrated", Stars(nil))
}
