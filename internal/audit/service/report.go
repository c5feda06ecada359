package service

import (
	"strings"
	"time"

	"github.com/allisson/privacycore/internal/audit/domain"
)

// reportWindow is the rolling window compliance ratios are computed over.
const reportWindow = 24 * time.Hour

// ReportGenerator computes privacy compliance reports and data-access audits
// from the security event log. Like the threat detector it is pull-based.
type ReportGenerator struct {
	log *EventLog
	now func() time.Time
}

// NewReportGenerator creates a generator over the given event log.
func NewReportGenerator(log *EventLog) *ReportGenerator {
	return &ReportGenerator{log: log, now: time.Now}
}

// PrivacyReport computes compliance ratios over the last 24 hours.
//
// With no relevant events the ratios default to safe values: 100% consent
// compliance (nothing was denied) and 0% for the remaining rates, avoiding
// division by zero.
func (g *ReportGenerator) PrivacyReport() domain.PrivacyReport {
	now := g.now().UTC()
	events := g.log.Since(now.Add(-reportWindow))

	counts := make(map[string]int)
	localDecisions := 0
	localProcessed := 0
	for _, event := range events {
		counts[event.Event]++
		if event.Event == domain.EventProcessingDecision {
			localDecisions++
			if processed, ok := event.Details["processed_locally"].(bool); ok && processed {
				localProcessed++
			}
		}
	}

	report := domain.PrivacyReport{
		GeneratedAt:       now,
		Window:            reportWindow,
		DataProcessed:     counts[domain.EventDataEncrypted] + counts[domain.EventDataDecrypted],
		ConsentCompliance: 100,
	}

	if localDecisions > 0 {
		report.LocalProcessingRate = percentage(localProcessed, localDecisions)
	}

	granted := counts[domain.EventConsentGranted]
	denied := counts[domain.EventConsentDenied]
	if granted+denied > 0 {
		report.ConsentCompliance = percentage(granted, granted+denied)
	}

	succeeded := counts[domain.EventDataEncrypted]
	failed := counts[domain.EventEncryptionFailed]
	if succeeded+failed > 0 {
		report.EncryptionCoverage = percentage(succeeded, succeeded+failed)
	}

	return report
}

// AuditDataAccess filters the log to encryption, decryption, and consent
// events within [start, end]. Encryption events classify as writes, all
// others as reads; events whose name contains "failed" or "denied" are
// marked unauthorized.
func (g *ReportGenerator) AuditDataAccess(start, end time.Time) []domain.AuditEntry {
	entries := []domain.AuditEntry{}

	for _, event := range g.log.Between(start, end) {
		if !isDataAccessEvent(event.Event) {
			continue
		}

		entries = append(entries, domain.AuditEntry{
			Timestamp:  event.CreatedAt,
			Event:      event.Event,
			AccessType: classifyAccess(event.Event),
			Authorized: !strings.Contains(event.Event, "failed") && !strings.Contains(event.Event, "denied"),
			Details:    event.Details,
		})
	}

	return entries
}

// isDataAccessEvent reports whether an event name belongs to the
// encryption/decryption/consent families covered by the audit.
func isDataAccessEvent(name string) bool {
	return strings.Contains(name, "encrypt") ||
		strings.Contains(name, "decrypt") ||
		strings.Contains(name, "consent")
}

// classifyAccess marks encryption events as writes and everything else as
// reads.
func classifyAccess(name string) domain.AccessType {
	if strings.Contains(name, "encrypt") && !strings.Contains(name, "decrypt") {
		return domain.AccessTypeWrite
	}
	return domain.AccessTypeRead
}

// percentage converts a part/whole ratio to a percentage.
func percentage(part, whole int) float64 {
	return float64(part) / float64(whole) * 100
}
