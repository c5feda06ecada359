package httputil_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/privacycore/internal/errors"
	"github.com/allisson/privacycore/internal/httputil"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "not found",
			err:          apperrors.Wrap(apperrors.ErrNotFound, "key not found"),
			expectedCode: http.StatusNotFound,
			expectedErr:  "not_found",
		},
		{
			name:         "conflict",
			err:          apperrors.Wrap(apperrors.ErrConflict, "already decided"),
			expectedCode: http.StatusConflict,
			expectedErr:  "conflict",
		},
		{
			name:         "invalid input",
			err:          apperrors.Wrap(apperrors.ErrInvalidInput, "insecure endpoint rejected"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "invalid_input",
		},
		{
			name:         "unauthorized",
			err:          apperrors.ErrUnauthorized,
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "unauthorized",
		},
		{
			name:         "forbidden",
			err:          apperrors.Wrap(apperrors.ErrForbidden, "endpoint mismatch"),
			expectedCode: http.StatusForbidden,
			expectedErr:  "forbidden",
		},
		{
			name:         "unknown error stays internal",
			err:          errors.New("database exploded"),
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, recorder := newTestContext(t)

			httputil.HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedCode, recorder.Code)

			var response httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedErr, response.Error)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, recorder := newTestContext(t)

		httputil.HandleErrorGin(c, nil, logger)

		assert.Empty(t, recorder.Body.String())
	})

	t.Run("internal error details are not exposed", func(t *testing.T) {
		c, recorder := newTestContext(t)

		httputil.HandleErrorGin(c, errors.New("secret detail"), logger)

		assert.NotContains(t, recorder.Body.String(), "secret detail")
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, recorder := newTestContext(t)

	httputil.HandleBadRequestGin(c, errors.New("malformed json"), slog.New(slog.DiscardHandler))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "bad_request", response.Error)
	assert.Equal(t, "malformed json", response.Message)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, recorder := newTestContext(t)

	httputil.HandleValidationErrorGin(c, errors.New("data_type: cannot be blank."), slog.New(slog.DiscardHandler))

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "validation_error", response.Error)
}
