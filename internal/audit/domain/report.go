package domain

import "time"

// PrivacyReport summarizes privacy posture over a reporting window.
// Rates are percentages in [0, 100].
type PrivacyReport struct {
	GeneratedAt         time.Time     `json:"generated_at"`
	Window              time.Duration `json:"window"`
	DataProcessed       int           `json:"data_processed"`
	LocalProcessingRate float64       `json:"local_processing_rate"`
	ConsentCompliance   float64       `json:"consent_compliance"`
	EncryptionCoverage  float64       `json:"encryption_coverage"`
}

// AccessType classifies an audited data access.
type AccessType string

const (
	AccessTypeRead  AccessType = "read"
	AccessTypeWrite AccessType = "write"
)

// AuditEntry is one row of a data-access audit over a timeframe.
// Authorized is false for events whose name marks a failure or denial.
type AuditEntry struct {
	Timestamp  time.Time      `json:"timestamp"`
	Event      string         `json:"event"`
	AccessType AccessType     `json:"access_type"`
	Authorized bool           `json:"authorized"`
	Details    map[string]any `json:"details,omitempty"`
}
