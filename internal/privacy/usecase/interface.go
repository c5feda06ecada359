// Package usecase implements privacy mode control and local processing
// arbitration.
package usecase

import (
	"context"

	"github.com/allisson/privacycore/internal/privacy/domain"
)

// ModeUseCase defines the privacy mode boundary operations.
type ModeUseCase interface {
	// Enable replaces the active mode with the one derived from level.
	Enable(ctx context.Context, level domain.Level) (domain.PrivacyMode, error)

	// Disable resets the mode to its defaults.
	Disable(ctx context.Context) domain.PrivacyMode

	// Status returns a snapshot of the active mode.
	Status(ctx context.Context) domain.PrivacyMode
}

// ArbiterUseCase defines the local processing boundary operations.
type ArbiterUseCase interface {
	// Decide resolves whether the given data should be processed locally.
	Decide(ctx context.Context, data any, dataType string) (domain.Decision, error)

	// Capabilities returns the capability catalog adjusted to the active
	// privacy mode.
	Capabilities(ctx context.Context) []domain.LocalProcessingCapability

	// IsConversationSensitive reports whether the text mentions any term
	// from the fixed sensitive vocabulary.
	IsConversationSensitive(text string) bool
}
