package domain

import (
	"time"
)

// EncryptionKey holds the symmetric key material for one category of
// personal data. Key material is owned exclusively by the key store and is
// never persisted or serialized.
//
// The KeyID is either a base category identifier (e.g., "health") or an
// archived identifier produced by rotation (e.g., "health_1735689600000"),
// where the suffix is the archival timestamp in unix milliseconds.
type EncryptionKey struct {
	KeyID     string    // Base category id or archived "{category}_{timestamp}" id
	Key       []byte    // 32-byte symmetric key material
	CreatedAt time.Time // When the key material was generated
}
