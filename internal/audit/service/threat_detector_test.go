package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/privacycore/internal/audit/domain"
)

func findThreat(threats []domain.Threat, threatType string) (domain.Threat, bool) {
	for _, threat := range threats {
		if threat.Type == threatType {
			return threat, true
		}
	}
	return domain.Threat{}, false
}

func TestThreatDetector_Detect(t *testing.T) {
	t.Run("empty log yields no threats", func(t *testing.T) {
		detector := NewThreatDetector(NewEventLog(DefaultCapacity, DefaultTrimTo))
		assert.Empty(t, detector.Detect())
	})

	t.Run("more than five decryption failures is a high threat", func(t *testing.T) {
		log := NewEventLog(DefaultCapacity, DefaultTrimTo)
		for i := 0; i < 6; i++ {
			log.Record(domain.EventDecryptionFailed, nil, domain.SeverityHigh)
		}

		threats := NewThreatDetector(log).Detect()
		threat, found := findThreat(threats, domain.ThreatDecryptionFailures)
		require.True(t, found)
		assert.Equal(t, domain.SeverityHigh, threat.Severity)
		assert.Equal(t, 6, threat.EventCount)
		assert.NotEmpty(t, threat.RecommendedActions)
	})

	t.Run("exactly five decryption failures is below the threshold", func(t *testing.T) {
		log := NewEventLog(DefaultCapacity, DefaultTrimTo)
		for i := 0; i < 5; i++ {
			log.Record(domain.EventDecryptionFailed, nil, domain.SeverityHigh)
		}

		_, found := findThreat(NewThreatDetector(log).Detect(), domain.ThreatDecryptionFailures)
		assert.False(t, found)
	})

	t.Run("a single certificate failure is a medium threat", func(t *testing.T) {
		log := NewEventLog(DefaultCapacity, DefaultTrimTo)
		log.Record(domain.EventCertificateFailed, map[string]any{"endpoint": "https://evil.test"}, domain.SeverityHigh)

		threat, found := findThreat(NewThreatDetector(log).Detect(), domain.ThreatCertificateFailures)
		require.True(t, found)
		assert.Equal(t, domain.SeverityMedium, threat.Severity)
	})

	t.Run("more than ten consent revocations is a low threat", func(t *testing.T) {
		log := NewEventLog(DefaultCapacity, DefaultTrimTo)
		for i := 0; i < 11; i++ {
			log.Record(domain.EventConsentRevoked, nil, domain.SeverityMedium)
		}

		threat, found := findThreat(NewThreatDetector(log).Detect(), domain.ThreatExcessiveRevocation)
		require.True(t, found)
		assert.Equal(t, domain.SeverityLow, threat.Severity)
		assert.Equal(t, 11, threat.EventCount)
	})

	t.Run("events outside the 24h window are ignored", func(t *testing.T) {
		log := NewEventLog(DefaultCapacity, DefaultTrimTo)

		past := time.Now().UTC().Add(-25 * time.Hour)
		log.now = func() time.Time { return past }
		for i := 0; i < 10; i++ {
			log.Record(domain.EventDecryptionFailed, nil, domain.SeverityHigh)
		}
		log.now = time.Now

		assert.Empty(t, NewThreatDetector(log).Detect())
	})

	t.Run("multiple heuristics can fire together", func(t *testing.T) {
		log := NewEventLog(DefaultCapacity, DefaultTrimTo)
		for i := 0; i < 6; i++ {
			log.Record(domain.EventDecryptionFailed, nil, domain.SeverityHigh)
		}
		log.Record(domain.EventCertificateFailed, nil, domain.SeverityHigh)

		threats := NewThreatDetector(log).Detect()
		assert.Len(t, threats, 2)
	})
}
