package usecase

import (
	"context"
	"log/slog"
	"sync"

	auditDomain "github.com/allisson/privacycore/internal/audit/domain"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/privacy/domain"
)

// modeUseCase implements ModeUseCase with a mutex-guarded mode value that is
// replaced whole on every transition.
type modeUseCase struct {
	mu       sync.RWMutex
	mode     domain.PrivacyMode
	recorder auditService.Recorder
	logger   *slog.Logger
}

// NewModeUseCase creates the privacy mode use case, starting disabled.
func NewModeUseCase(recorder auditService.Recorder, logger *slog.Logger) ModeUseCase {
	return &modeUseCase{
		mode:     domain.DisabledMode(),
		recorder: recorder,
		logger:   logger,
	}
}

// Enable derives the full mode from the level and installs it.
func (u *modeUseCase) Enable(ctx context.Context, level domain.Level) (domain.PrivacyMode, error) {
	parsed, err := domain.ParseLevel(string(level))
	if err != nil {
		u.recorder.Record(auditDomain.EventPrivacyModeFailed, map[string]any{
			"level": string(level),
			"error": err.Error(),
		}, auditDomain.SeverityHigh)

		u.logger.Warn("privacy mode change rejected",
			slog.String("level", string(level)),
			slog.Any("error", err),
		)

		return domain.PrivacyMode{}, err
	}

	mode := domain.ModeForLevel(parsed)

	u.mu.Lock()
	u.mode = mode
	u.mu.Unlock()

	u.recorder.Record(auditDomain.EventPrivacyModeEnabled, map[string]any{
		"level":                 string(parsed),
		"local_processing_only": mode.LocalProcessingOnly,
		"data_retention_hours":  mode.DataRetention.Hours(),
	}, auditDomain.SeverityLow)

	u.logger.Info("privacy mode enabled", slog.String("level", string(parsed)))

	return mode, nil
}

// Disable resets the mode to its defaults.
func (u *modeUseCase) Disable(ctx context.Context) domain.PrivacyMode {
	mode := domain.DisabledMode()

	u.mu.Lock()
	u.mode = mode
	u.mu.Unlock()

	u.recorder.Record(auditDomain.EventPrivacyModeDisabled, nil, auditDomain.SeverityLow)

	u.logger.Info("privacy mode disabled")

	return mode
}

// Status returns a copy of the active mode.
func (u *modeUseCase) Status(ctx context.Context) domain.PrivacyMode {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.mode
}
