package dto

import (
	"time"

	"github.com/allisson/privacycore/internal/consent/domain"
)

// ConsentDecisionResponse reports the outcome of a consent request.
type ConsentDecisionResponse struct {
	Granted bool `json:"granted"`
}

// ConsentRecordResponse represents one consent ledger entry in API responses.
type ConsentRecordResponse struct {
	UserID    string     `json:"user_id"`
	DataType  string     `json:"data_type"`
	Purpose   string     `json:"purpose"`
	Granted   bool       `json:"granted"`
	Timestamp time.Time  `json:"timestamp"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Revocable bool       `json:"revocable"`
}

// MapConsentToResponse converts a domain consent record to a response.
func MapConsentToResponse(record domain.ConsentRecord) ConsentRecordResponse {
	return ConsentRecordResponse{
		UserID:    record.UserID,
		DataType:  record.DataType,
		Purpose:   record.Purpose,
		Granted:   record.Granted,
		Timestamp: record.Timestamp,
		ExpiresAt: record.ExpiresAt,
		Revocable: record.Revocable,
	}
}

// ListConsentsResponse represents a user's full consent history.
type ListConsentsResponse struct {
	Data []ConsentRecordResponse `json:"data"`
}

// MapConsentsToListResponse converts a slice of domain consent records to a
// list response.
func MapConsentsToListResponse(records []domain.ConsentRecord) ListConsentsResponse {
	data := make([]ConsentRecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapConsentToResponse(record))
	}
	return ListConsentsResponse{Data: data}
}

// AccessRequestResponse represents a data access request in API responses.
type AccessRequestResponse struct {
	ID        string     `json:"id"`
	Requester string     `json:"requester"`
	DataTypes []string   `json:"data_types"`
	Purpose   string     `json:"purpose"`
	CreatedAt time.Time  `json:"created_at"`
	Approved  *bool      `json:"approved,omitempty"`
	DecidedBy string     `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

// MapAccessRequestToResponse converts a domain access request to a response.
func MapAccessRequestToResponse(request domain.DataAccessRequest) AccessRequestResponse {
	return AccessRequestResponse{
		ID:        request.ID.String(),
		Requester: request.Requester,
		DataTypes: request.DataTypes,
		Purpose:   request.Purpose,
		CreatedAt: request.CreatedAt,
		Approved:  request.Approved,
		DecidedBy: request.DecidedBy,
		DecidedAt: request.DecidedAt,
	}
}

// ListAccessRequestsResponse represents pending access requests.
type ListAccessRequestsResponse struct {
	Data []AccessRequestResponse `json:"data"`
}

// MapAccessRequestsToListResponse converts a slice of domain access requests
// to a list response.
func MapAccessRequestsToListResponse(requests []domain.DataAccessRequest) ListAccessRequestsResponse {
	data := make([]AccessRequestResponse, 0, len(requests))
	for _, request := range requests {
		data = append(data, MapAccessRequestToResponse(request))
	}
	return ListAccessRequestsResponse{Data: data}
}
