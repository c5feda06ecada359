package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/privacycore/internal/audit/domain"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/errors"
	"github.com/allisson/privacycore/internal/privacy/domain"
)

func newTestArbiter(t *testing.T) (ArbiterUseCase, ModeUseCase, *auditService.EventLog) {
	t.Helper()

	eventLog := auditService.NewEventLog(auditService.DefaultCapacity, auditService.DefaultTrimTo)
	logger := slog.New(slog.DiscardHandler)
	mode := NewModeUseCase(eventLog, logger)

	return NewArbiterUseCase(mode, eventLog, logger), mode, eventLog
}

func TestArbiterUseCase_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("voice data prefers local processing", func(t *testing.T) {
		arbiter, _, eventLog := newTestArbiter(t)

		decision, err := arbiter.Decide(ctx, map[string]any{"content": "hello"}, "voice")
		require.NoError(t, err)
		assert.True(t, decision.ProcessedLocally)
		assert.Equal(t, 0.85, decision.Confidence)

		events := eventLog.Recent(1)
		require.Len(t, events, 1)
		assert.Equal(t, auditDomain.EventProcessingDecision, events[0].Event)
		assert.Equal(t, auditDomain.SeverityLow, events[0].Severity)
		assert.Equal(t, true, events[0].Details["processed_locally"])
		assert.Equal(t, "sensitive_data_type", events[0].Details["rationale"])
	})

	t.Run("unmatched data type falls back to cloud", func(t *testing.T) {
		arbiter, _, eventLog := newTestArbiter(t)

		decision, err := arbiter.Decide(ctx, nil, "thermostat-telemetry")
		require.NoError(t, err)
		assert.False(t, decision.ProcessedLocally)
		assert.Zero(t, decision.Confidence)
		assert.Equal(t, "no matching local capability", decision.FallbackReason)

		events := eventLog.Recent(1)
		require.Len(t, events, 1)
		assert.Equal(t, auditDomain.SeverityLow, events[0].Severity)
	})

	t.Run("maximum privacy mode forces local processing", func(t *testing.T) {
		arbiter, mode, eventLog := newTestArbiter(t)

		_, err := mode.Enable(ctx, domain.LevelMaximum)
		require.NoError(t, err)

		decision, err := arbiter.Decide(ctx, nil, "chat message")
		require.NoError(t, err)
		assert.True(t, decision.ProcessedLocally)
		assert.Equal(t, 0.80, decision.Confidence)

		events := eventLog.Recent(1)
		require.Len(t, events, 1)
		assert.Equal(t, "privacy_mode_forced", events[0].Details["rationale"])
	})

	t.Run("maximum privacy mode clears the fallback reason", func(t *testing.T) {
		arbiter, mode, _ := newTestArbiter(t)

		decision, err := arbiter.Decide(ctx, nil, "voice")
		require.NoError(t, err)
		assert.Equal(t, "capability may require cloud fallback", decision.FallbackReason)

		_, err = mode.Enable(ctx, domain.LevelMaximum)
		require.NoError(t, err)

		decision, err = arbiter.Decide(ctx, nil, "voice")
		require.NoError(t, err)
		assert.True(t, decision.ProcessedLocally)
		assert.Empty(t, decision.FallbackReason, "the catalog reports no fallback under maximum level")
	})

	t.Run("keyword groups resolve related data types", func(t *testing.T) {
		arbiter, _, _ := newTestArbiter(t)

		decision, err := arbiter.Decide(ctx, nil, "conversation history")
		require.NoError(t, err)
		assert.True(t, decision.ProcessedLocally)
		assert.Equal(t, 0.90, decision.Confidence)
		assert.Empty(t, decision.FallbackReason, "context capability needs no fallback")
	})

	t.Run("blank data type is rejected and audited", func(t *testing.T) {
		arbiter, _, eventLog := newTestArbiter(t)

		_, err := arbiter.Decide(ctx, nil, "  ")
		assert.ErrorIs(t, err, errors.ErrInvalidInput)

		events := eventLog.Recent(1)
		require.Len(t, events, 1)
		assert.Equal(t, auditDomain.EventDecisionFailed, events[0].Event)
		assert.Equal(t, auditDomain.SeverityHigh, events[0].Severity)
	})
}

func TestArbiterUseCase_Capabilities(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog holds the three on-device features", func(t *testing.T) {
		arbiter, _, _ := newTestArbiter(t)

		capabilities := arbiter.Capabilities(ctx)
		require.Len(t, capabilities, 3)

		features := make([]string, 0, len(capabilities))
		for _, capability := range capabilities {
			features = append(features, capability.Feature)
			assert.True(t, capability.Available)
			assert.GreaterOrEqual(t, capability.Confidence, 0.0)
			assert.LessOrEqual(t, capability.Confidence, 1.0)
			assert.LessOrEqual(t, capability.ResourceUsage.CPU, 1.0)
			assert.LessOrEqual(t, capability.ResourceUsage.Memory, 1.0)
			assert.LessOrEqual(t, capability.ResourceUsage.Storage, 1.0)
		}
		assert.ElementsMatch(t, []string{
			FeatureVoiceRecognition,
			FeatureLanguageProcessing,
			FeatureConversationContext,
		}, features)
	})

	t.Run("maximum privacy mode disables fallback", func(t *testing.T) {
		arbiter, mode, _ := newTestArbiter(t)

		_, err := mode.Enable(ctx, domain.LevelMaximum)
		require.NoError(t, err)

		for _, capability := range arbiter.Capabilities(ctx) {
			assert.False(t, capability.FallbackRequired)
		}

		mode.Disable(ctx)

		anyFallback := false
		for _, capability := range arbiter.Capabilities(ctx) {
			anyFallback = anyFallback || capability.FallbackRequired
		}
		assert.True(t, anyFallback, "fallback flags return once the mode is lifted")
	})
}

func TestArbiterUseCase_IsConversationSensitive(t *testing.T) {
	arbiter, _, _ := newTestArbiter(t)

	tests := []struct {
		name      string
		text      string
		sensitive bool
	}{
		{"password mention", "let me update my Password real quick", true},
		{"medical mention", "my diagnosis came back yesterday", true},
		{"financial mention", "the credit card statement arrived", true},
		{"benign chat", "what a lovely sunny day", false},
		{"empty text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sensitive, arbiter.IsConversationSensitive(tt.text))
		})
	}
}
