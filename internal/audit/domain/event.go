// Package domain defines security-event, threat, and compliance-report models
// for the audit subsystem.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies how serious a security event is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Well-known security event names. The event log accepts arbitrary names so
// collaborators can append their own audit entries; these are the names the
// core emits and the ones the threat detector and report generator count.
const (
	EventDataEncrypted       = "data_encrypted"
	EventDataDecrypted       = "data_decrypted"
	EventEncryptionFailed    = "encryption_failed"
	EventDecryptionFailed    = "decryption_failed"
	EventKeysRotated         = "encryption_keys_rotated"
	EventIntegrityValidated  = "encryption_integrity_validated"
	EventIntegrityFailed     = "encryption_integrity_failed"
	EventConsentGranted      = "consent_granted"
	EventConsentDenied       = "consent_denied"
	EventConsentRevoked      = "consent_revoked"
	EventConsentFailed       = "consent_operation_failed"
	EventAccessRequested     = "data_access_requested"
	EventAccessApproved      = "data_access_approved"
	EventAccessDenied        = "data_access_denied"
	EventAccessFailed        = "data_access_operation_failed"
	EventPrivacyModeEnabled  = "privacy_mode_enabled"
	EventPrivacyModeDisabled = "privacy_mode_disabled"
	EventPrivacyModeFailed   = "privacy_mode_change_failed"
	EventProcessingDecision  = "local_processing_decision"
	EventDecisionFailed      = "local_processing_decision_failed"
	EventConnectionSecured   = "secure_connection_established"
	EventCertificateFailed   = "certificate_validation_failed"
	EventEndpointRejected    = "endpoint_rejected"
	EventTransmitEncrypted   = "transmission_encrypted"
	EventTransmitDecrypted   = "transmission_decrypted"
	EventTransmitFailed      = "transmission_decryption_failed"
)

// SecurityEvent is one entry in the bounded append-only security event log.
type SecurityEvent struct {
	ID        uuid.UUID      `json:"id"`
	Event     string         `json:"event"`
	Details   map[string]any `json:"details,omitempty"`
	Severity  Severity       `json:"severity"`
	CreatedAt time.Time      `json:"created_at"`
}

// ParseSeverity validates and normalizes a severity string.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return Severity(s), true
	default:
		return "", false
	}
}
