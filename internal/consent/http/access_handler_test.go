package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/consent/http/dto"
	consentUseCase "github.com/allisson/privacycore/internal/consent/usecase"
)

// setupTestAccessHandler creates an access handler backed by an in-memory
// store.
func setupTestAccessHandler(t *testing.T) *AccessHandler {
	t.Helper()

	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.DiscardHandler)
	eventLog := auditService.NewEventLog(auditService.DefaultCapacity, auditService.DefaultTrimTo)
	store := consentUseCase.NewInMemoryAccessRequestStore()
	useCase := consentUseCase.NewAccessUseCase(store, eventLog, logger)

	return NewAccessHandler(useCase, logger)
}

func createAccessRequest(t *testing.T, handler *AccessHandler) dto.AccessRequestResponse {
	t.Helper()

	request := dto.CreateAccessRequest{
		Requester: "analytics-service",
		DataTypes: []string{"voice", "preferences"},
		Purpose:   "usage analytics",
	}

	c, w := createTestContext(http.MethodPost, "/v1/access-requests", request)
	handler.CreateHandler(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response dto.AccessRequestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestAccessHandler_CreateHandler(t *testing.T) {
	t.Run("Success_CreatesPendingRequest", func(t *testing.T) {
		handler := setupTestAccessHandler(t)

		response := createAccessRequest(t, handler)

		assert.NotEmpty(t, response.ID)
		assert.Equal(t, "analytics-service", response.Requester)
		assert.Equal(t, []string{"voice", "preferences"}, response.DataTypes)
		assert.Nil(t, response.Approved)
	})

	t.Run("Error_EmptyDataTypes", func(t *testing.T) {
		handler := setupTestAccessHandler(t)

		request := dto.CreateAccessRequest{
			Requester: "analytics-service",
			DataTypes: []string{},
			Purpose:   "usage analytics",
		}

		c, w := createTestContext(http.MethodPost, "/v1/access-requests", request)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAccessHandler_ApproveHandler(t *testing.T) {
	t.Run("Success_ApprovesPendingRequest", func(t *testing.T) {
		handler := setupTestAccessHandler(t)
		created := createAccessRequest(t, handler)

		request := dto.DecideAccessRequest{DecidedBy: "admin"}
		path := fmt.Sprintf("/v1/access-requests/%s/approve", created.ID)

		c, w := createTestContext(http.MethodPost, path, request)
		c.Params = gin.Params{gin.Param{Key: "id", Value: created.ID}}

		handler.ApproveHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.AccessRequestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.Approved)
		assert.True(t, *response.Approved)
		assert.Equal(t, "admin", response.DecidedBy)
		assert.NotNil(t, response.DecidedAt)
	})

	t.Run("Error_SecondDecisionConflicts", func(t *testing.T) {
		handler := setupTestAccessHandler(t)
		created := createAccessRequest(t, handler)

		request := dto.DecideAccessRequest{DecidedBy: "admin"}
		path := fmt.Sprintf("/v1/access-requests/%s/approve", created.ID)

		c, w := createTestContext(http.MethodPost, path, request)
		c.Params = gin.Params{gin.Param{Key: "id", Value: created.ID}}
		handler.ApproveHandler(c)
		require.Equal(t, http.StatusOK, w.Code)

		c, w = createTestContext(http.MethodPost, path, request)
		c.Params = gin.Params{gin.Param{Key: "id", Value: created.ID}}
		handler.ApproveHandler(c)
		assert.Equal(t, http.StatusConflict, w.Code)

		denyPath := fmt.Sprintf("/v1/access-requests/%s/deny", created.ID)
		c, w = createTestContext(http.MethodPost, denyPath, request)
		c.Params = gin.Params{gin.Param{Key: "id", Value: created.ID}}
		handler.DenyHandler(c)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler := setupTestAccessHandler(t)

		request := dto.DecideAccessRequest{DecidedBy: "admin"}

		c, w := createTestContext(http.MethodPost, "/v1/access-requests/not-a-uuid/approve", request)
		c.Params = gin.Params{gin.Param{Key: "id", Value: "not-a-uuid"}}

		handler.ApproveHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_UnknownID", func(t *testing.T) {
		handler := setupTestAccessHandler(t)

		request := dto.DecideAccessRequest{DecidedBy: "admin"}
		unknownID := "0190a6e2-0000-7000-8000-000000000000"

		c, w := createTestContext(http.MethodPost, "/v1/access-requests/"+unknownID+"/approve", request)
		c.Params = gin.Params{gin.Param{Key: "id", Value: unknownID}}

		handler.ApproveHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_BlankDecidedBy", func(t *testing.T) {
		handler := setupTestAccessHandler(t)
		created := createAccessRequest(t, handler)

		request := dto.DecideAccessRequest{DecidedBy: "   "}
		path := fmt.Sprintf("/v1/access-requests/%s/approve", created.ID)

		c, w := createTestContext(http.MethodPost, path, request)
		c.Params = gin.Params{gin.Param{Key: "id", Value: created.ID}}

		handler.ApproveHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAccessHandler_DenyHandler(t *testing.T) {
	t.Run("Success_DeniesPendingRequest", func(t *testing.T) {
		handler := setupTestAccessHandler(t)
		created := createAccessRequest(t, handler)

		request := dto.DecideAccessRequest{DecidedBy: "admin"}
		path := fmt.Sprintf("/v1/access-requests/%s/deny", created.ID)

		c, w := createTestContext(http.MethodPost, path, request)
		c.Params = gin.Params{gin.Param{Key: "id", Value: created.ID}}

		handler.DenyHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.AccessRequestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.Approved)
		assert.False(t, *response.Approved)
	})
}

func TestAccessHandler_ListPendingHandler(t *testing.T) {
	t.Run("Success_OnlyPendingRequestsListed", func(t *testing.T) {
		handler := setupTestAccessHandler(t)
		first := createAccessRequest(t, handler)
		createAccessRequest(t, handler)

		request := dto.DecideAccessRequest{DecidedBy: "admin"}
		path := fmt.Sprintf("/v1/access-requests/%s/approve", first.ID)

		c, w := createTestContext(http.MethodPost, path, request)
		c.Params = gin.Params{gin.Param{Key: "id", Value: first.ID}}
		handler.ApproveHandler(c)
		require.Equal(t, http.StatusOK, w.Code)

		c, w = createTestContext(http.MethodGet, "/v1/access-requests/pending", nil)
		handler.ListPendingHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListAccessRequestsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.NotEqual(t, first.ID, response.Data[0].ID)
	})
}
