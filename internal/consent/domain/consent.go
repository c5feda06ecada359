// Package domain defines consent and data-access models.
//
// Consent history is append-only: revocation appends a new record with
// Granted=false, it never deletes or mutates history. The current status of
// a (user, data type) pair is the most recent record by timestamp.
package domain

import (
	"time"
)

// DefaultConsentValidity is how long a granted consent remains valid.
const DefaultConsentValidity = 365 * 24 * time.Hour

// ConsentRecord is one entry in a user's append-only consent ledger.
type ConsentRecord struct {
	UserID    string     `json:"user_id"`
	DataType  string     `json:"data_type"`
	Purpose   string     `json:"purpose"`
	Granted   bool       `json:"granted"`
	Timestamp time.Time  `json:"timestamp"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Revocable bool       `json:"revocable"`
}

// Expired reports whether the consent has an expiry in the past.
func (r ConsentRecord) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && r.ExpiresAt.Before(now)
}
