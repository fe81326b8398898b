package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("row missing")
	err := internal.ErrNotFound("product not found", internal.WithError(cause), internal.WithRequestID("req-1"))

	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, "product not found", err.Error())
	assert.Equal(t, "Not Found", err.StatusText())
	assert.Equal(t, "req-1", err.RequestID)
	assert.ErrorIs(t, err, cause)

	titled := internal.ErrConflict("in use", internal.WithTitle("Cannot delete"))
	assert.Equal(t, "Cannot delete", titled.StatusText())
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", internal.ErrBadRequest("bad")))
		he := internal.AsHTTPError(wrapped)
		require.NotNil(t, he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		assert.True(t, internal.IsHTTPError(wrapped))
	})

	t.Run("plain and nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, internal.AsHTTPError(errors.New("x")))
		assert.Nil(t, internal.AsHTTPError(nil))
		assert.False(t, internal.IsHTTPError(nil))
	})

	t.Run("constructors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusRequestEntityTooLarge, internal.ErrRequestTooLarge("").Code)
		assert.Equal(t, http.StatusInternalServerError, internal.ErrInternal("").Code)
		assert.Equal(t, http.StatusServiceUnavailable, internal.ErrServiceUnavailable("").Code)
	})
}
