// Package domain defines privacy mode and local processing models.
package domain

import (
	"strings"
	"time"

	"github.com/allisson/privacycore/internal/errors"
)

// Level is the privacy protection level.
type Level string

// Available privacy levels, ordered by strictness.
const (
	LevelBasic    Level = "basic"
	LevelEnhanced Level = "enhanced"
	LevelMaximum  Level = "maximum"
)

// ErrInvalidLevel indicates an unknown privacy level.
//
// HTTP Status: 422 Unprocessable Entity
var ErrInvalidLevel = errors.Wrap(errors.ErrInvalidInput, "invalid privacy level")

// ParseLevel parses a privacy level, case-insensitive.
func ParseLevel(value string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(value))) {
	case LevelBasic:
		return LevelBasic, nil
	case LevelEnhanced:
		return LevelEnhanced, nil
	case LevelMaximum:
		return LevelMaximum, nil
	default:
		return "", ErrInvalidLevel
	}
}

// PrivacyMode is the process-wide privacy posture. Enable replaces the whole
// struct; the derived fields are pure functions of the level and are never
// merged partially.
type PrivacyMode struct {
	Enabled             bool          `json:"enabled"`
	Level               Level         `json:"level,omitempty"`
	LocalProcessingOnly bool          `json:"local_processing_only"`
	DataRetention       time.Duration `json:"data_retention"`
	AnonymizeData       bool          `json:"anonymize_data"`
}

// ModeForLevel derives the full privacy mode from a level.
func ModeForLevel(level Level) PrivacyMode {
	mode := PrivacyMode{
		Enabled: true,
		Level:   level,
	}
	switch level {
	case LevelBasic:
		mode.DataRetention = 24 * time.Hour
	case LevelEnhanced:
		mode.DataRetention = 6 * time.Hour
		mode.AnonymizeData = true
	case LevelMaximum:
		mode.DataRetention = 1 * time.Hour
		mode.AnonymizeData = true
		mode.LocalProcessingOnly = true
	}
	return mode
}

// DisabledMode is the default posture before any enable call.
func DisabledMode() PrivacyMode {
	return PrivacyMode{}
}
