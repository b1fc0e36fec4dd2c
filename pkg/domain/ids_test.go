package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "verity/pkg/domain-errors"
)

func TestParseCaseID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseCaseID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseCaseID("not-a-uuid")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseCaseID(uuid.Nil.String())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		want := uuid.New()
		got, err := ParseCaseID(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestParseExternalID(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got, err := ParseExternalID("brand id", "  acme ")
		require.NoError(t, err)
		assert.Equal(t, ExternalID("acme"), got)
	})

	t.Run("rejects blank", func(t *testing.T) {
		_, err := ParseExternalID("brand id", "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "brand id is required")
	})

	t.Run("rejects overly long values", func(t *testing.T) {
		_, err := ParseExternalID("brand id", strings.Repeat("a", maxExternalIDLength+1))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects control characters", func(t *testing.T) {
		_, err := ParseExternalID("complaint id", "abc\x00def")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
