package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/privacycore/internal/audit/domain"
	"github.com/allisson/privacycore/internal/audit/http/dto"
	auditService "github.com/allisson/privacycore/internal/audit/service"
)

// setupTestAuditHandler creates an audit handler over a fresh event log.
func setupTestAuditHandler(t *testing.T) (*AuditHandler, *auditService.EventLog) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.DiscardHandler)
	eventLog := auditService.NewEventLog(auditService.DefaultCapacity, auditService.DefaultTrimTo)

	handler := NewAuditHandler(
		eventLog,
		auditService.NewThreatDetector(eventLog),
		auditService.NewReportGenerator(eventLog),
		logger,
	)

	return handler, eventLog
}

func TestAuditHandler_LogEventHandler(t *testing.T) {
	t.Run("Success_AppendsEvent", func(t *testing.T) {
		handler, eventLog := setupTestAuditHandler(t)

		request := dto.LogEventRequest{
			Event:    "firmware_update_applied",
			Details:  map[string]any{"version": "1.4.2"},
			Severity: "low",
		}

		c, w := createTestContext(http.MethodPost, "/v1/audit/events", request)
		handler.LogEventHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, eventLog.Len())
	})

	t.Run("Error_UnknownSeverity", func(t *testing.T) {
		handler, _ := setupTestAuditHandler(t)

		request := dto.LogEventRequest{
			Event:    "firmware_update_applied",
			Severity: "critical",
		}

		c, w := createTestContext(http.MethodPost, "/v1/audit/events", request)
		handler.LogEventHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_BlankEvent", func(t *testing.T) {
		handler, _ := setupTestAuditHandler(t)

		request := dto.LogEventRequest{
			Event:    "   ",
			Severity: "low",
		}

		c, w := createTestContext(http.MethodPost, "/v1/audit/events", request)
		handler.LogEventHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAuditHandler_ListEventsHandler(t *testing.T) {
	t.Run("Success_NewestFirstWithPagination", func(t *testing.T) {
		handler, eventLog := setupTestAuditHandler(t)

		eventLog.Record("first", nil, domain.SeverityLow)
		eventLog.Record("second", nil, domain.SeverityLow)
		eventLog.Record("third", nil, domain.SeverityLow)

		c, w := createTestContext(http.MethodGet, "/v1/audit/events?offset=1&limit=2", nil)
		handler.ListEventsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, "second", response.Data[0].Event)
		assert.Equal(t, "first", response.Data[1].Event)
	})

	t.Run("Success_OffsetPastEndReturnsEmpty", func(t *testing.T) {
		handler, eventLog := setupTestAuditHandler(t)
		eventLog.Record("only", nil, domain.SeverityLow)

		c, w := createTestContext(http.MethodGet, "/v1/audit/events?offset=10&limit=10", nil)
		handler.ListEventsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Empty(t, response.Data)
	})

	t.Run("Error_NegativeOffset", func(t *testing.T) {
		handler, _ := setupTestAuditHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/audit/events?offset=-1", nil)
		handler.ListEventsHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuditHandler_DetectThreatsHandler(t *testing.T) {
	t.Run("Success_NoThreatsOnQuietLog", func(t *testing.T) {
		handler, _ := setupTestAuditHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/audit/threats", nil)
		handler.DetectThreatsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListThreatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Empty(t, response.Data)
	})

	t.Run("Success_RepeatedDecryptionFailuresFlagged", func(t *testing.T) {
		handler, eventLog := setupTestAuditHandler(t)

		for i := 0; i < 6; i++ {
			eventLog.Record(domain.EventDecryptionFailed, nil, domain.SeverityHigh)
		}

		c, w := createTestContext(http.MethodGet, "/v1/audit/threats", nil)
		handler.DetectThreatsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListThreatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, 6, response.Data[0].EventCount)
		assert.Equal(t, "high", response.Data[0].Severity)
		assert.NotEmpty(t, response.Data[0].RecommendedActions)
	})
}

func TestAuditHandler_PrivacyReportHandler(t *testing.T) {
	handler, eventLog := setupTestAuditHandler(t)

	eventLog.Record(domain.EventConsentGranted, nil, domain.SeverityLow)
	eventLog.Record(domain.EventConsentDenied, nil, domain.SeverityLow)
	eventLog.Record(domain.EventDataEncrypted, nil, domain.SeverityLow)

	c, w := createTestContext(http.MethodGet, "/v1/audit/privacy-report", nil)
	handler.PrivacyReportHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PrivacyReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(24), response.WindowHours)
	assert.Equal(t, 1, response.DataProcessed)
	assert.InDelta(t, 50, response.ConsentCompliance, 0.0001)
	assert.InDelta(t, 100, response.EncryptionCoverage, 0.0001)
}

func TestAuditHandler_AuditDataAccessHandler(t *testing.T) {
	t.Run("Success_ClassifiesAccess", func(t *testing.T) {
		handler, eventLog := setupTestAuditHandler(t)

		eventLog.Record(domain.EventDataEncrypted, nil, domain.SeverityLow)
		eventLog.Record(domain.EventDataDecrypted, nil, domain.SeverityLow)
		eventLog.Record(domain.EventDecryptionFailed, nil, domain.SeverityHigh)
		eventLog.Record(domain.EventPrivacyModeEnabled, nil, domain.SeverityLow)

		c, w := createTestContext(http.MethodGet, "/v1/audit/access", nil)
		handler.AuditDataAccessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListAuditEntriesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 3)

		byEvent := make(map[string]dto.AuditEntryResponse)
		for _, entry := range response.Data {
			byEvent[entry.Event] = entry
		}
		assert.Equal(t, "write", byEvent[domain.EventDataEncrypted].AccessType)
		assert.True(t, byEvent[domain.EventDataEncrypted].Authorized)
		assert.Equal(t, "read", byEvent[domain.EventDataDecrypted].AccessType)
		assert.False(t, byEvent[domain.EventDecryptionFailed].Authorized)
	})

	t.Run("Error_MalformedStart", func(t *testing.T) {
		handler, _ := setupTestAuditHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/audit/access?start=not-a-date", nil)
		handler.AuditDataAccessHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_StartAfterEnd", func(t *testing.T) {
		handler, _ := setupTestAuditHandler(t)

		c, w := createTestContext(
			http.MethodGet,
			"/v1/audit/access?start=2026-01-02T00:00:00Z&end=2026-01-01T00:00:00Z",
			nil,
		)
		handler.AuditDataAccessHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
