package domain

import (
	"time"

	"github.com/google/uuid"
)

// DataAccessRequest tracks a third party's request to access user data.
//
// Lifecycle: created pending (Approved == nil), then transitions exactly
// once to approved or denied. Any further transition attempt is rejected.
type DataAccessRequest struct {
	ID        uuid.UUID  `json:"id"`
	Requester string     `json:"requester"`
	DataTypes []string   `json:"data_types"`
	Purpose   string     `json:"purpose"`
	CreatedAt time.Time  `json:"created_at"`
	Approved  *bool      `json:"approved,omitempty"`
	DecidedBy string     `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

// Pending reports whether the request has not been decided yet.
func (r DataAccessRequest) Pending() bool {
	return r.Approved == nil
}
