package dto

import (
	"github.com/allisson/privacycore/internal/privacy/domain"
)

// ModeResponse represents the privacy mode in API responses. Retention is
// reported in hours to match the level definitions.
type ModeResponse struct {
	Enabled             bool    `json:"enabled"`
	Level               string  `json:"level,omitempty"`
	LocalProcessingOnly bool    `json:"local_processing_only"`
	DataRetentionHours  float64 `json:"data_retention_hours"`
	AnonymizeData       bool    `json:"anonymize_data"`
}

// MapModeToResponse converts a domain privacy mode to a response.
func MapModeToResponse(mode domain.PrivacyMode) ModeResponse {
	return ModeResponse{
		Enabled:             mode.Enabled,
		Level:               string(mode.Level),
		LocalProcessingOnly: mode.LocalProcessingOnly,
		DataRetentionHours:  mode.DataRetention.Hours(),
		AnonymizeData:       mode.AnonymizeData,
	}
}

// DecisionResponse represents an arbitration verdict in API responses.
type DecisionResponse struct {
	ProcessedLocally bool    `json:"processed_locally"`
	Confidence       float64 `json:"confidence"`
	FallbackReason   string  `json:"fallback_reason,omitempty"`
}

// MapDecisionToResponse converts a domain decision to a response.
func MapDecisionToResponse(decision domain.Decision) DecisionResponse {
	return DecisionResponse{
		ProcessedLocally: decision.ProcessedLocally,
		Confidence:       decision.Confidence,
		FallbackReason:   decision.FallbackReason,
	}
}

// CapabilityResponse represents one local processing capability.
type CapabilityResponse struct {
	Feature          string                `json:"feature"`
	Available        bool                  `json:"available"`
	Confidence       float64               `json:"confidence"`
	FallbackRequired bool                  `json:"fallback_required"`
	ResourceUsage    ResourceUsageResponse `json:"resource_usage"`
}

// ResourceUsageResponse represents capability resource estimates.
type ResourceUsageResponse struct {
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Storage float64 `json:"storage"`
}

// ListCapabilitiesResponse represents the capability catalog.
type ListCapabilitiesResponse struct {
	Data []CapabilityResponse `json:"data"`
}

// MapCapabilitiesToListResponse converts domain capabilities to a list response.
func MapCapabilitiesToListResponse(capabilities []domain.LocalProcessingCapability) ListCapabilitiesResponse {
	data := make([]CapabilityResponse, 0, len(capabilities))
	for _, capability := range capabilities {
		data = append(data, CapabilityResponse{
			Feature:          capability.Feature,
			Available:        capability.Available,
			Confidence:       capability.Confidence,
			FallbackRequired: capability.FallbackRequired,
			ResourceUsage: ResourceUsageResponse{
				CPU:     capability.ResourceUsage.CPU,
				Memory:  capability.ResourceUsage.Memory,
				Storage: capability.ResourceUsage.Storage,
			},
		})
	}
	return ListCapabilitiesResponse{Data: data}
}

// SensitivityResponse reports whether a text mentions sensitive terms.
type SensitivityResponse struct {
	Sensitive bool `json:"sensitive"`
}
