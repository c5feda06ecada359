package usecase

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/privacycore/internal/audit/domain"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/privacy/domain"
)

func newTestModeUseCase(t *testing.T) (ModeUseCase, *auditService.EventLog) {
	t.Helper()

	eventLog := auditService.NewEventLog(auditService.DefaultCapacity, auditService.DefaultTrimTo)
	logger := slog.New(slog.DiscardHandler)

	return NewModeUseCase(eventLog, logger), eventLog
}

func TestModeUseCase_Enable(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		level               domain.Level
		retention           time.Duration
		localProcessingOnly bool
		anonymize           bool
	}{
		{domain.LevelBasic, 24 * time.Hour, false, false},
		{domain.LevelEnhanced, 6 * time.Hour, false, true},
		{domain.LevelMaximum, 1 * time.Hour, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			uc, eventLog := newTestModeUseCase(t)

			mode, err := uc.Enable(ctx, tt.level)
			require.NoError(t, err)
			assert.True(t, mode.Enabled)
			assert.Equal(t, tt.level, mode.Level)
			assert.Equal(t, tt.retention, mode.DataRetention)
			assert.Equal(t, tt.localProcessingOnly, mode.LocalProcessingOnly)
			assert.Equal(t, tt.anonymize, mode.AnonymizeData)

			assert.Equal(t, mode, uc.Status(ctx))

			events := eventLog.Recent(1)
			require.Len(t, events, 1)
			assert.Equal(t, auditDomain.EventPrivacyModeEnabled, events[0].Event)
		})
	}

	t.Run("invalid level is rejected and audited", func(t *testing.T) {
		uc, eventLog := newTestModeUseCase(t)

		_, err := uc.Enable(ctx, domain.Level("paranoid"))
		assert.ErrorIs(t, err, domain.ErrInvalidLevel)

		events := eventLog.Recent(1)
		require.Len(t, events, 1)
		assert.Equal(t, auditDomain.EventPrivacyModeFailed, events[0].Event)
		assert.Equal(t, auditDomain.SeverityHigh, events[0].Severity)
		assert.Equal(t, "paranoid", events[0].Details["level"])
	})

	t.Run("level parsing is case-insensitive", func(t *testing.T) {
		uc, _ := newTestModeUseCase(t)

		mode, err := uc.Enable(ctx, domain.Level(" MAXIMUM "))
		require.NoError(t, err)
		assert.Equal(t, domain.LevelMaximum, mode.Level)
	})

	t.Run("enable replaces the previous mode entirely", func(t *testing.T) {
		uc, _ := newTestModeUseCase(t)

		_, err := uc.Enable(ctx, domain.LevelMaximum)
		require.NoError(t, err)

		mode, err := uc.Enable(ctx, domain.LevelBasic)
		require.NoError(t, err)
		assert.False(t, mode.LocalProcessingOnly)
		assert.False(t, mode.AnonymizeData)
		assert.Equal(t, 24*time.Hour, mode.DataRetention)
	})
}

func TestModeUseCase_Disable(t *testing.T) {
	ctx := context.Background()
	uc, eventLog := newTestModeUseCase(t)

	_, err := uc.Enable(ctx, domain.LevelMaximum)
	require.NoError(t, err)

	mode := uc.Disable(ctx)
	assert.False(t, mode.Enabled)
	assert.Empty(t, mode.Level)
	assert.Zero(t, mode.DataRetention)
	assert.Equal(t, mode, uc.Status(ctx))

	events := eventLog.Recent(1)
	require.Len(t, events, 1)
	assert.Equal(t, auditDomain.EventPrivacyModeDisabled, events[0].Event)
}

func TestModeUseCase_Status(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestModeUseCase(t)

	mode := uc.Status(ctx)
	assert.False(t, mode.Enabled)
	assert.False(t, mode.LocalProcessingOnly)
}
