package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		err := Wrap(ErrNotFound, "encryption key")
		require.Error(t, err)
		assert.Equal(t, "encryption key: not found", err.Error())
		assert.True(t, Is(err, ErrNotFound))
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("preserves chain across multiple wraps", func(t *testing.T) {
		err := Wrap(Wrap(ErrInvalidInput, "inner"), "outer")
		assert.True(t, Is(err, ErrInvalidInput))
		assert.Equal(t, "outer: inner: invalid input", err.Error())
	})
}

func TestIs(t *testing.T) {
	t.Run("matches sentinel errors", func(t *testing.T) {
		assert.True(t, Is(ErrConflict, ErrConflict))
		assert.False(t, Is(ErrConflict, ErrNotFound))
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		err := fmt.Errorf("request %q: %w", "abc", ErrForbidden)
		assert.True(t, Is(err, ErrForbidden))
	})
}

func TestNew(t *testing.T) {
	err := New("boom")
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}
