package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/privacycore/internal/audit/domain"
)

func TestReportGenerator_PrivacyReport(t *testing.T) {
	t.Run("defaults are division-safe", func(t *testing.T) {
		generator := NewReportGenerator(NewEventLog(DefaultCapacity, DefaultTrimTo))
		report := generator.PrivacyReport()

		assert.Equal(t, 0, report.DataProcessed)
		assert.Equal(t, float64(0), report.LocalProcessingRate)
		assert.Equal(t, float64(100), report.ConsentCompliance)
		assert.Equal(t, float64(0), report.EncryptionCoverage)
	})

	t.Run("computes ratios from event counts", func(t *testing.T) {
		log := NewEventLog(DefaultCapacity, DefaultTrimTo)
		log.Record(domain.EventDataEncrypted, nil, domain.SeverityLow)
		log.Record(domain.EventDataEncrypted, nil, domain.SeverityLow)
		log.Record(domain.EventDataDecrypted, nil, domain.SeverityLow)
		log.Record(domain.EventEncryptionFailed, nil, domain.SeverityHigh)
		log.Record(domain.EventConsentGranted, nil, domain.SeverityLow)
		log.Record(domain.EventConsentDenied, nil, domain.SeverityLow)
		log.Record(domain.EventProcessingDecision, map[string]any{"processed_locally": true}, domain.SeverityLow)
		log.Record(domain.EventProcessingDecision, map[string]any{"processed_locally": false}, domain.SeverityLow)

		report := NewReportGenerator(log).PrivacyReport()

		assert.Equal(t, 3, report.DataProcessed)
		assert.InDelta(t, 50.0, report.LocalProcessingRate, 0.001)
		assert.InDelta(t, 50.0, report.ConsentCompliance, 0.001)
		assert.InDelta(t, 100.0*2/3, report.EncryptionCoverage, 0.001)
	})

	t.Run("ignores events outside the 24h window", func(t *testing.T) {
		log := NewEventLog(DefaultCapacity, DefaultTrimTo)
		log.now = func() time.Time { return time.Now().UTC().Add(-25 * time.Hour) }
		log.Record(domain.EventDataEncrypted, nil, domain.SeverityLow)
		log.now = time.Now

		report := NewReportGenerator(log).PrivacyReport()
		assert.Equal(t, 0, report.DataProcessed)
	})
}

func TestReportGenerator_AuditDataAccess(t *testing.T) {
	log := NewEventLog(DefaultCapacity, DefaultTrimTo)

	current := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	log.now = func() time.Time { return current }

	log.Record(domain.EventDataEncrypted, map[string]any{"data_type": "voice"}, domain.SeverityLow)
	current = current.Add(time.Minute)
	log.Record(domain.EventDataDecrypted, nil, domain.SeverityLow)
	current = current.Add(time.Minute)
	log.Record(domain.EventDecryptionFailed, nil, domain.SeverityHigh)
	current = current.Add(time.Minute)
	log.Record(domain.EventConsentDenied, nil, domain.SeverityLow)
	current = current.Add(time.Minute)
	log.Record(domain.EventPrivacyModeEnabled, nil, domain.SeverityLow) // not a data access event
	current = current.Add(time.Minute)
	log.Record(domain.EventConsentGranted, nil, domain.SeverityLow)

	generator := NewReportGenerator(log)

	t.Run("classifies access types and authorization", func(t *testing.T) {
		entries := generator.AuditDataAccess(
			time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC),
		)
		require.Len(t, entries, 5)

		byEvent := make(map[string]domain.AuditEntry)
		for _, entry := range entries {
			byEvent[entry.Event] = entry
		}

		assert.Equal(t, domain.AccessTypeWrite, byEvent[domain.EventDataEncrypted].AccessType)
		assert.True(t, byEvent[domain.EventDataEncrypted].Authorized)

		assert.Equal(t, domain.AccessTypeRead, byEvent[domain.EventDataDecrypted].AccessType)
		assert.True(t, byEvent[domain.EventDataDecrypted].Authorized)

		assert.False(t, byEvent[domain.EventDecryptionFailed].Authorized)
		assert.False(t, byEvent[domain.EventConsentDenied].Authorized)
		assert.True(t, byEvent[domain.EventConsentGranted].Authorized)
	})

	t.Run("respects the timeframe bounds", func(t *testing.T) {
		entries := generator.AuditDataAccess(
			time.Date(2026, 8, 29, 10, 0, 30, 0, time.UTC),
			time.Date(2026, 8, 29, 10, 2, 30, 0, time.UTC),
		)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.EventDataDecrypted, entries[0].Event)
		assert.Equal(t, domain.EventDecryptionFailed, entries[1].Event)
	})
}
