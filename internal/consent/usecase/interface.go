// Package usecase implements the consent ledger and the third-party data
// access workflow.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/privacycore/internal/consent/domain"
)

// ConsentStore is the persistence contract for the append-only consent
// ledger. Implementations must preserve insertion order per user and be safe
// for concurrent use.
type ConsentStore interface {
	// Append adds a record to the user's history.
	Append(record domain.ConsentRecord)

	// History returns the user's full consent history in insertion order.
	// Unknown users yield an empty slice.
	History(userID string) []domain.ConsentRecord

	// Latest returns the most recent record for the (user, data type) pair.
	Latest(userID, dataType string) (domain.ConsentRecord, bool)
}

// AccessRequestStore is the persistence contract for data access requests.
type AccessRequestStore interface {
	// Save inserts or replaces a request.
	Save(request domain.DataAccessRequest)

	// Get returns the request with the given id.
	Get(id uuid.UUID) (domain.DataAccessRequest, bool)

	// Pending returns all undecided requests in creation order.
	Pending() []domain.DataAccessRequest
}

// ConsentDecider resolves a consent request to a grant decision.
//
// The in-process default grants every request deterministically; production
// deployments must plug in an implementation backed by a human-approval
// surface.
type ConsentDecider interface {
	Decide(ctx context.Context, userID, dataType, purpose string) bool
}

// ConsentUseCase defines the ledger boundary operations.
type ConsentUseCase interface {
	RequestConsent(ctx context.Context, userID, dataType, purpose string) (bool, error)
	RevokeConsent(ctx context.Context, userID, dataType string) error
	ConsentStatus(ctx context.Context, userID, dataType string) (*domain.ConsentRecord, error)
	AllConsents(ctx context.Context, userID string) ([]domain.ConsentRecord, error)
}

// AccessUseCase defines the data access workflow boundary operations.
type AccessUseCase interface {
	Request(ctx context.Context, requester string, dataTypes []string, purpose string) (domain.DataAccessRequest, error)
	Approve(ctx context.Context, id uuid.UUID, approvedBy string) (domain.DataAccessRequest, error)
	Deny(ctx context.Context, id uuid.UUID, deniedBy string) (domain.DataAccessRequest, error)
	Pending(ctx context.Context) ([]domain.DataAccessRequest, error)
}
