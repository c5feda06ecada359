package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/allisson/privacycore/internal/errors"
)

// Payload codec for structured personal data.
//
// Payloads are arbitrary JSON-serializable structures. Plain JSON loses
// date/time values (they decode back as strings), so the codec applies an
// explicit tagged encoding before marshaling:
//
//	time.Time => {"__type": "Date", "__value": "2026-01-02T15:04:05.999999999Z"}
//
// Decoding reverses the transform so round-tripped payloads reconstruct
// time.Time values instead of strings.

const (
	typeTag  = "__type"
	valueTag = "__value"
	dateType = "Date"
)

// ErrInvalidPayload indicates a payload could not be serialized or parsed.
var ErrInvalidPayload = errors.Wrap(errors.ErrInvalidInput, "invalid payload")

// EncodePayload serializes a payload to bytes, tagging date values so they
// survive the round trip.
func EncodePayload(payload any) ([]byte, error) {
	tagged := tagDates(payload)
	data, err := json.Marshal(tagged)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}

// DecodePayload parses bytes produced by EncodePayload, reconstructing
// tagged date values as time.Time.
func DecodePayload(data []byte) (any, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return untagDates(payload), nil
}

// tagDates walks the payload and replaces time.Time values with their tagged
// map representation.
func tagDates(value any) any {
	switch v := value.(type) {
	case time.Time:
		return map[string]any{
			typeTag:  dateType,
			valueTag: v.UTC().Format(time.RFC3339Nano),
		}
	case *time.Time:
		if v == nil {
			return nil
		}
		return tagDates(*v)
	case map[string]any:
		tagged := make(map[string]any, len(v))
		for key, item := range v {
			tagged[key] = tagDates(item)
		}
		return tagged
	case []any:
		tagged := make([]any, len(v))
		for i, item := range v {
			tagged[i] = tagDates(item)
		}
		return tagged
	default:
		return value
	}
}

// untagDates walks a decoded payload and converts tagged date maps back to
// time.Time values.
func untagDates(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if parsed, ok := parseTaggedDate(v); ok {
			return parsed
		}
		untagged := make(map[string]any, len(v))
		for key, item := range v {
			untagged[key] = untagDates(item)
		}
		return untagged
	case []any:
		untagged := make([]any, len(v))
		for i, item := range v {
			untagged[i] = untagDates(item)
		}
		return untagged
	default:
		return value
	}
}

// parseTaggedDate recognizes the two-field tagged encoding produced by
// tagDates.
func parseTaggedDate(m map[string]any) (time.Time, bool) {
	if len(m) != 2 {
		return time.Time{}, false
	}
	typeValue, ok := m[typeTag].(string)
	if !ok || typeValue != dateType {
		return time.Time{}, false
	}
	raw, ok := m[valueTag].(string)
	if !ok {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
