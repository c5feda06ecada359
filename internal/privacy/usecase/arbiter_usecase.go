package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	auditDomain "github.com/allisson/privacycore/internal/audit/domain"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/errors"
	"github.com/allisson/privacycore/internal/privacy/domain"
)

// Capability feature names in the on-device catalog.
const (
	FeatureVoiceRecognition    = "voice_recognition"
	FeatureLanguageProcessing  = "natural_language_processing"
	FeatureConversationContext = "conversation_context"
)

// keywordGroups is the second matcher tier: a data type containing any of the
// group's keywords resolves to the group's feature. Sensitive data types fall
// into the language group since anonymization and redaction run there.
var keywordGroups = []struct {
	feature  string
	keywords []string
}{
	{FeatureVoiceRecognition, []string{"voice", "speech", "audio"}},
	{FeatureLanguageProcessing, []string{"text", "chat", "message", "nlp", "language", "transcript"}},
	{FeatureConversationContext, []string{"context", "conversation", "history", "dialogue"}},
	{FeatureLanguageProcessing, []string{"biometric", "health", "personal", "medical"}},
}

// sensitiveDataTypes prefer local processing even without a privacy mode
// forcing it.
var sensitiveDataTypes = []string{"voice", "speech", "audio", "biometric", "health", "personal", "medical"}

// sensitiveTerms is the fixed vocabulary behind IsConversationSensitive.
var sensitiveTerms = []string{
	"password", "secret", "pin", "ssn", "social security",
	"credit card", "bank account", "routing number",
	"medical", "health", "diagnosis", "prescription", "therapy",
	"salary", "income", "tax",
	"home address", "phone number", "date of birth",
}

// arbiterUseCase implements ArbiterUseCase over a fixed capability catalog.
// The catalog is seeded once at construction; only privacy mode transitions
// change how it is reported.
type arbiterUseCase struct {
	capabilities []domain.LocalProcessingCapability
	mode         ModeUseCase
	recorder     auditService.Recorder
	logger       *slog.Logger
}

// NewArbiterUseCase creates the arbiter with the default capability catalog,
// sampling live host stats for the resource usage estimates.
func NewArbiterUseCase(
	mode ModeUseCase,
	recorder auditService.Recorder,
	logger *slog.Logger,
) ArbiterUseCase {
	return &arbiterUseCase{
		capabilities: seedCapabilities(logger),
		mode:         mode,
		recorder:     recorder,
		logger:       logger,
	}
}

// seedCapabilities builds the catalog with per-feature resource estimates
// scaled from the host's current usage. Sampling failures fall back to static
// estimates so construction never fails.
func seedCapabilities(logger *slog.Logger) []domain.LocalProcessingCapability {
	base := sampleHostUsage(logger)

	scale := func(factor float64) domain.ResourceUsage {
		return domain.ResourceUsage{
			CPU:     clamp01(base.CPU * factor),
			Memory:  clamp01(base.Memory * factor),
			Storage: clamp01(base.Storage * factor),
		}
	}

	return []domain.LocalProcessingCapability{
		{
			Feature:          FeatureVoiceRecognition,
			Available:        true,
			Confidence:       0.85,
			FallbackRequired: true,
			ResourceUsage:    scale(1.0),
		},
		{
			Feature:          FeatureLanguageProcessing,
			Available:        true,
			Confidence:       0.80,
			FallbackRequired: true,
			ResourceUsage:    scale(0.7),
		},
		{
			Feature:          FeatureConversationContext,
			Available:        true,
			Confidence:       0.90,
			FallbackRequired: false,
			ResourceUsage:    scale(0.3),
		},
	}
}

// sampleHostUsage reads current CPU, memory, and root filesystem usage as
// fractions. Any sampling error yields a conservative static estimate.
func sampleHostUsage(logger *slog.Logger) domain.ResourceUsage {
	usage := domain.ResourceUsage{CPU: 0.30, Memory: 0.25, Storage: 0.10}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		usage.CPU = clamp01(percents[0] / 100)
	} else if err != nil {
		logger.Debug("cpu sampling failed, using static estimate", slog.Any("error", err))
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		usage.Memory = clamp01(vm.UsedPercent / 100)
	} else {
		logger.Debug("memory sampling failed, using static estimate", slog.Any("error", err))
	}

	if du, err := disk.Usage("/"); err == nil {
		usage.Storage = clamp01(du.UsedPercent / 100)
	} else {
		logger.Debug("disk sampling failed, using static estimate", slog.Any("error", err))
	}

	return usage
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// Decide resolves the local-vs-cloud verdict for one piece of data. Every
// branch records a security event describing the rationale.
func (u *arbiterUseCase) Decide(ctx context.Context, data any, dataType string) (domain.Decision, error) {
	if strings.TrimSpace(dataType) == "" {
		err := errors.Wrap(errors.ErrInvalidInput, "data type is required")
		u.recorder.Record(auditDomain.EventDecisionFailed, map[string]any{
			"data_type": dataType,
			"error":     err.Error(),
		}, auditDomain.SeverityHigh)

		u.logger.Warn("local processing decision rejected", slog.Any("error", err))

		return domain.Decision{}, err
	}

	capability, matched := u.match(dataType)

	switch {
	case !matched:
		decision := domain.Decision{FallbackReason: "no matching local capability"}
		u.recordDecision(dataType, decision, "no_match", auditDomain.SeverityLow)
		return decision, nil

	case !capability.Available:
		decision := domain.Decision{FallbackReason: "local capability unavailable"}
		u.recordDecision(dataType, decision, "capability_unavailable", auditDomain.SeverityMedium)
		return decision, nil
	}

	mode := u.mode.Status(ctx)

	decision := domain.Decision{
		ProcessedLocally: true,
		Confidence:       capability.Confidence,
	}
	// Under maximum level the catalog reports FallbackRequired=false, so the
	// decision must not name a fallback reason either.
	if capability.FallbackRequired && !fallbackDisabled(mode) {
		decision.FallbackReason = "capability may require cloud fallback"
	}

	rationale := "default_local_preference"
	switch {
	case mode.Enabled && mode.LocalProcessingOnly:
		rationale = "privacy_mode_forced"
	case isSensitiveDataType(dataType):
		rationale = "sensitive_data_type"
	}

	u.recordDecision(dataType, decision, rationale, auditDomain.SeverityLow)
	return decision, nil
}

func (u *arbiterUseCase) recordDecision(
	dataType string,
	decision domain.Decision,
	rationale string,
	severity auditDomain.Severity,
) {
	u.recorder.Record(auditDomain.EventProcessingDecision, map[string]any{
		"data_type":         dataType,
		"processed_locally": decision.ProcessedLocally,
		"confidence":        decision.Confidence,
		"rationale":         rationale,
	}, severity)

	u.logger.Info(
		"local processing decision",
		slog.String("data_type", dataType),
		slog.Bool("processed_locally", decision.ProcessedLocally),
		slog.String("rationale", rationale),
	)
}

// match finds the capability for a data type. Tier one matches the feature
// name exactly or by substring in either direction; tier two resolves through
// the keyword groups; anything else is unmatched.
func (u *arbiterUseCase) match(dataType string) (domain.LocalProcessingCapability, bool) {
	normalized := strings.ToLower(strings.TrimSpace(dataType))

	for _, capability := range u.capabilities {
		if capability.Feature == normalized ||
			strings.Contains(capability.Feature, normalized) ||
			strings.Contains(normalized, capability.Feature) {
			return capability, true
		}
	}

	for _, group := range keywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(normalized, keyword) {
				return u.capabilityByFeature(group.feature)
			}
		}
	}

	return domain.LocalProcessingCapability{}, false
}

func (u *arbiterUseCase) capabilityByFeature(feature string) (domain.LocalProcessingCapability, bool) {
	for _, capability := range u.capabilities {
		if capability.Feature == feature {
			return capability, true
		}
	}
	return domain.LocalProcessingCapability{}, false
}

// Capabilities returns the catalog adjusted to the active privacy mode:
// maximum level disables fallback so no data leaves the device.
func (u *arbiterUseCase) Capabilities(ctx context.Context) []domain.LocalProcessingCapability {
	mode := u.mode.Status(ctx)

	view := make([]domain.LocalProcessingCapability, len(u.capabilities))
	copy(view, u.capabilities)

	if fallbackDisabled(mode) {
		for i := range view {
			view[i].FallbackRequired = false
		}
	}
	return view
}

// fallbackDisabled reports whether the active mode blocks cloud fallback
// entirely. Maximum level keeps all processing on the device.
func fallbackDisabled(mode domain.PrivacyMode) bool {
	return mode.Enabled && mode.Level == domain.LevelMaximum
}

// IsConversationSensitive scans the text for the fixed sensitive vocabulary.
func (u *arbiterUseCase) IsConversationSensitive(text string) bool {
	normalized := strings.ToLower(text)
	for _, term := range sensitiveTerms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}

func isSensitiveDataType(dataType string) bool {
	normalized := strings.ToLower(dataType)
	for _, keyword := range sensitiveDataTypes {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}
