package service

import (
	"time"

	"github.com/allisson/privacycore/internal/audit/domain"
)

// detectionWindow is the rolling window threat heuristics evaluate over.
const detectionWindow = 24 * time.Hour

// Heuristic thresholds over the detection window.
const (
	decryptionFailureThreshold = 5  // more than this many failures is a threat
	consentRevocationThreshold = 10 // more than this many revocations is a threat
)

// ThreatDetector computes heuristic threats from the security event log.
// It is pull-based: threats are recomputed on every Detect call, nothing is
// cached.
type ThreatDetector struct {
	log *EventLog
	now func() time.Time
}

// NewThreatDetector creates a detector over the given event log.
func NewThreatDetector(log *EventLog) *ThreatDetector {
	return &ThreatDetector{log: log, now: time.Now}
}

// Detect evaluates all threat heuristics over the last 24 hours.
func (d *ThreatDetector) Detect() []domain.Threat {
	now := d.now().UTC()
	events := d.log.Since(now.Add(-detectionWindow))

	counts := make(map[string]int)
	for _, event := range events {
		counts[event.Event]++
	}

	threats := []domain.Threat{}

	if failures := counts[domain.EventDecryptionFailed]; failures > decryptionFailureThreshold {
		threats = append(threats, domain.Threat{
			Type:        domain.ThreatDecryptionFailures,
			Severity:    domain.SeverityHigh,
			Description: "multiple decryption failures detected in the last 24 hours",
			EventCount:  failures,
			RecommendedActions: []string{
				"rotate encryption keys",
				"review recent data access requests",
				"verify stored ciphertexts have not been tampered with",
			},
			DetectedAt: now,
		})
	}

	if failures := counts[domain.EventCertificateFailed]; failures >= 1 {
		threats = append(threats, domain.Threat{
			Type:        domain.ThreatCertificateFailures,
			Severity:    domain.SeverityMedium,
			Description: "certificate validation failures detected in the last 24 hours",
			EventCount:  failures,
			RecommendedActions: []string{
				"verify remote endpoint certificates",
				"check for man-in-the-middle indicators",
			},
			DetectedAt: now,
		})
	}

	if revocations := counts[domain.EventConsentRevoked]; revocations > consentRevocationThreshold {
		threats = append(threats, domain.Threat{
			Type:        domain.ThreatExcessiveRevocation,
			Severity:    domain.SeverityLow,
			Description: "excessive consent revocations detected in the last 24 hours",
			EventCount:  revocations,
			RecommendedActions: []string{
				"review consent request prompts for clarity",
				"audit which collaborators trigger consent requests",
			},
			DetectedAt: now,
		})
	}

	return threats
}
