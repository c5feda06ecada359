package domain

import (
	"github.com/allisson/privacycore/internal/errors"
)

// Consent and data-access error definitions.
var (
	// ErrRequestNotFound indicates the data access request id is unknown.
	//
	// HTTP Status: 404 Not Found
	ErrRequestNotFound = errors.Wrap(errors.ErrNotFound, "data access request not found")

	// ErrRequestAlreadyDecided indicates an approve or deny was attempted on
	// a request that has already transitioned out of the pending state. The
	// pending -> decided transition happens exactly once.
	//
	// HTTP Status: 409 Conflict
	ErrRequestAlreadyDecided = errors.Wrap(errors.ErrConflict, "data access request already decided")

	// ErrNoGrantedConsent indicates a revocation was attempted for a
	// (user, data type) pair with no granted consent on record.
	//
	// HTTP Status: 404 Not Found
	ErrNoGrantedConsent = errors.Wrap(errors.ErrNotFound, "no granted consent to revoke")
)
