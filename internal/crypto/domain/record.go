package domain

import (
	"time"

	"github.com/google/uuid"
)

// EncryptedRecord is the at-rest envelope for one encrypted personal data
// payload. It is immutable once produced; decryption reads it without
// mutation.
//
// KeyID always carries the unversioned category identifier, so rotation is
// transparent to callers at encrypt time. Decryption resolves the current
// key first and falls back through archived versions of the same category
// on authentication failure.
type EncryptedRecord struct {
	RecordID   uuid.UUID // Opaque correlation id (UUIDv7)
	Ciphertext []byte    // AES-256-GCM ciphertext without the tag
	IV         []byte    // 16-byte initialization vector
	AuthTag    []byte    // 16-byte GCM authentication tag
	Method     string    // Always MethodAESGCM
	KeyID      string    // Unversioned category id used for key resolution
	CreatedAt  time.Time
}
