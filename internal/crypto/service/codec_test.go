package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadCodec_RoundTrip(t *testing.T) {
	t.Run("plain structures survive the round trip", func(t *testing.T) {
		payload := map[string]any{
			"content": "hello",
			"count":   float64(3),
			"nested":  map[string]any{"flag": true},
			"items":   []any{"a", "b"},
		}

		data, err := EncodePayload(payload)
		require.NoError(t, err)

		decoded, err := DecodePayload(data)
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})

	t.Run("date values reconstruct as time.Time", func(t *testing.T) {
		recordedAt := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
		payload := map[string]any{
			"reading":    float64(98.6),
			"recordedAt": recordedAt,
		}

		data, err := EncodePayload(payload)
		require.NoError(t, err)

		decoded, err := DecodePayload(data)
		require.NoError(t, err)

		decodedMap, ok := decoded.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, recordedAt, decodedMap["recordedAt"])
		assert.Equal(t, float64(98.6), decodedMap["reading"])
	})

	t.Run("dates nested in slices reconstruct", func(t *testing.T) {
		first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		second := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
		payload := []any{first, map[string]any{"when": second}}

		data, err := EncodePayload(payload)
		require.NoError(t, err)

		decoded, err := DecodePayload(data)
		require.NoError(t, err)
		decodedSlice, ok := decoded.([]any)
		require.True(t, ok)
		assert.Equal(t, first, decodedSlice[0])
		assert.Equal(t, map[string]any{"when": second}, decodedSlice[1])
	})

	t.Run("scalar payloads survive", func(t *testing.T) {
		data, err := EncodePayload("just a string")
		require.NoError(t, err)

		decoded, err := DecodePayload(data)
		require.NoError(t, err)
		assert.Equal(t, "just a string", decoded)
	})

	t.Run("maps that merely resemble the tag stay maps", func(t *testing.T) {
		payload := map[string]any{
			"__type":  "Date",
			"__value": "not-a-date",
		}

		data, err := EncodePayload(payload)
		require.NoError(t, err)

		decoded, err := DecodePayload(data)
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})
}

func TestDecodePayload_InvalidJSON(t *testing.T) {
	_, err := DecodePayload([]byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestEncodePayload_Unserializable(t *testing.T) {
	_, err := EncodePayload(map[string]any{"ch": make(chan int)})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
