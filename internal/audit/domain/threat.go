package domain

import "time"

// Threat is a heuristic finding computed from the security event log.
type Threat struct {
	Type               string    `json:"type"`
	Severity           Severity  `json:"severity"`
	Description        string    `json:"description"`
	EventCount         int       `json:"event_count"`
	RecommendedActions []string  `json:"recommended_actions"`
	DetectedAt         time.Time `json:"detected_at"`
}

// Threat type identifiers produced by the detector.
const (
	ThreatDecryptionFailures  = "multiple_decryption_failures"
	ThreatCertificateFailures = "certificate_validation_failures"
	ThreatExcessiveRevocation = "excessive_consent_revocations"
)
