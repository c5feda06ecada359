package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("creates provider with namespace", func(t *testing.T) {
		provider, err := NewProvider("privacycore_test")

		require.NoError(t, err)
		assert.NotNil(t, provider)
		assert.NotNil(t, provider.meterProvider)
		assert.NotNil(t, provider.exporter)
		assert.NotNil(t, provider.registry)
	})

	t.Run("creates provider with empty namespace", func(t *testing.T) {
		provider, err := NewProvider("")

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})
}

func TestProvider_Handler(t *testing.T) {
	provider, err := NewProvider("privacycore_test")
	require.NoError(t, err)

	handler := provider.Handler()
	require.NotNil(t, handler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("shuts down cleanly", func(t *testing.T) {
		provider, err := NewProvider("privacycore_test")
		require.NoError(t, err)

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("tolerates nil meter provider", func(t *testing.T) {
		provider := &Provider{meterProvider: nil}
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
