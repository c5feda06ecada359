package dto

import (
	"time"

	"github.com/allisson/privacycore/internal/audit/domain"
)

// SecurityEventResponse represents a security event in API responses.
type SecurityEventResponse struct {
	ID        string         `json:"id"`
	Event     string         `json:"event"`
	Details   map[string]any `json:"details,omitempty"`
	Severity  string         `json:"severity"`
	CreatedAt time.Time      `json:"created_at"`
}

// MapEventToResponse converts a domain security event to a response.
func MapEventToResponse(event domain.SecurityEvent) SecurityEventResponse {
	return SecurityEventResponse{
		ID:        event.ID.String(),
		Event:     event.Event,
		Details:   event.Details,
		Severity:  string(event.Severity),
		CreatedAt: event.CreatedAt,
	}
}

// ListEventsResponse represents a page of recent security events.
type ListEventsResponse struct {
	Data []SecurityEventResponse `json:"data"`
}

// MapEventsToListResponse converts domain security events to a list response.
func MapEventsToListResponse(events []domain.SecurityEvent) ListEventsResponse {
	data := make([]SecurityEventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, MapEventToResponse(event))
	}
	return ListEventsResponse{Data: data}
}

// ThreatResponse represents a detected threat in API responses.
type ThreatResponse struct {
	Type               string    `json:"type"`
	Severity           string    `json:"severity"`
	Description        string    `json:"description"`
	EventCount         int       `json:"event_count"`
	RecommendedActions []string  `json:"recommended_actions"`
	DetectedAt         time.Time `json:"detected_at"`
}

// ListThreatsResponse represents the detector's findings.
type ListThreatsResponse struct {
	Data []ThreatResponse `json:"data"`
}

// MapThreatsToListResponse converts domain threats to a list response.
func MapThreatsToListResponse(threats []domain.Threat) ListThreatsResponse {
	data := make([]ThreatResponse, 0, len(threats))
	for _, threat := range threats {
		data = append(data, ThreatResponse{
			Type:               threat.Type,
			Severity:           string(threat.Severity),
			Description:        threat.Description,
			EventCount:         threat.EventCount,
			RecommendedActions: threat.RecommendedActions,
			DetectedAt:         threat.DetectedAt,
		})
	}
	return ListThreatsResponse{Data: data}
}

// PrivacyReportResponse represents the privacy report in API responses.
type PrivacyReportResponse struct {
	GeneratedAt         time.Time `json:"generated_at"`
	WindowHours         float64   `json:"window_hours"`
	DataProcessed       int       `json:"data_processed"`
	LocalProcessingRate float64   `json:"local_processing_rate"`
	ConsentCompliance   float64   `json:"consent_compliance"`
	EncryptionCoverage  float64   `json:"encryption_coverage"`
}

// MapReportToResponse converts a domain privacy report to a response.
func MapReportToResponse(report domain.PrivacyReport) PrivacyReportResponse {
	return PrivacyReportResponse{
		GeneratedAt:         report.GeneratedAt,
		WindowHours:         report.Window.Hours(),
		DataProcessed:       report.DataProcessed,
		LocalProcessingRate: report.LocalProcessingRate,
		ConsentCompliance:   report.ConsentCompliance,
		EncryptionCoverage:  report.EncryptionCoverage,
	}
}

// AuditEntryResponse represents one data-access audit row.
type AuditEntryResponse struct {
	Timestamp  time.Time      `json:"timestamp"`
	Event      string         `json:"event"`
	AccessType string         `json:"access_type"`
	Authorized bool           `json:"authorized"`
	Details    map[string]any `json:"details,omitempty"`
}

// ListAuditEntriesResponse represents a data-access audit over a timeframe.
type ListAuditEntriesResponse struct {
	Data []AuditEntryResponse `json:"data"`
}

// MapAuditEntriesToListResponse converts domain audit entries to a list response.
func MapAuditEntriesToListResponse(entries []domain.AuditEntry) ListAuditEntriesResponse {
	data := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, AuditEntryResponse{
			Timestamp:  entry.Timestamp,
			Event:      entry.Event,
			AccessType: string(entry.AccessType),
			Authorized: entry.Authorized,
			Details:    entry.Details,
		})
	}
	return ListAuditEntriesResponse{Data: data}
}
