// Package service implements cryptographic services: the category key store,
// the AES-256-GCM cipher, and the payload codec used by encryption at rest.
package service

import (
	"crypto/rand"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/allisson/privacycore/internal/crypto/domain"
)

// KeyStore manages symmetric keys indexed by category identifier.
//
// The interface isolates business logic from the storage backend so a
// durable implementation can be substituted without touching callers.
// Implementations must be safe for concurrent use.
type KeyStore interface {
	// Generate creates fresh 32-byte random key material and stores it under
	// keyID, overwriting any existing entry at that exact id.
	Generate(keyID string) (domain.EncryptionKey, error)

	// Rotate archives the current key of every base category under
	// "{category}_{timestamp}" and installs fresh material under the base
	// id, bumping the timestamp suffix when that archive id is already
	// taken. It returns the number of rotated categories.
	Rotate() (int, error)

	// Lookup returns the key stored at keyID. When no exact entry exists it
	// scans archived ids with prefix "{keyID}_" and returns the one with the
	// largest timestamp suffix, or ErrKeyNotFound.
	Lookup(keyID string) (domain.EncryptionKey, error)

	// ArchivedVersions returns every archived key of the given base id,
	// newest first. Used by the decrypt path to fall back through prior key
	// material after a rotation.
	ArchivedVersions(keyID string) []domain.EncryptionKey

	// Close zeroizes all key material held by the store.
	Close()
}

// InMemoryKeyStore is the in-process KeyStore implementation.
//
// A restart loses all keys; production deployments must provide a durable
// KeyStore implementation behind the same interface.
type InMemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string]domain.EncryptionKey
	base map[string]struct{} // ids created via Generate, i.e. rotation roots
	now  func() time.Time
}

// NewInMemoryKeyStore creates an empty in-memory key store.
func NewInMemoryKeyStore() *InMemoryKeyStore {
	return &InMemoryKeyStore{
		keys: make(map[string]domain.EncryptionKey),
		base: make(map[string]struct{}),
		now:  time.Now,
	}
}

// NewSeededKeyStore creates an in-memory key store with one key generated per
// known category. This is the default wiring: every category can encrypt
// immediately after construction.
func NewSeededKeyStore() (*InMemoryKeyStore, error) {
	ks := NewInMemoryKeyStore()
	for _, category := range domain.Categories() {
		if _, err := ks.Generate(string(category)); err != nil {
			return nil, fmt.Errorf("failed to seed key for category %q: %w", category, err)
		}
	}
	return ks, nil
}

// Generate creates and stores fresh key material under keyID.
func (s *InMemoryKeyStore) Generate(keyID string) (domain.EncryptionKey, error) {
	material := make([]byte, domain.KeySize)
	if _, err := rand.Read(material); err != nil {
		return domain.EncryptionKey{}, fmt.Errorf("failed to generate key material: %w", err)
	}

	key := domain.EncryptionKey{
		KeyID:     keyID,
		Key:       material,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[keyID] = key
	s.base[keyID] = struct{}{}

	return key, nil
}

// Rotate archives every base key under a timestamped id and installs fresh
// material under the base id. Archived material stays available to the
// decrypt fallback path.
func (s *InMemoryKeyStore) Rotate() (int, error) {
	s.mu.Lock()

	timestamp := s.now().UTC().UnixMilli()
	rotated := 0
	for keyID := range s.base {
		current, ok := s.keys[keyID]
		if !ok {
			continue
		}

		// Two rotations within the same millisecond must not overwrite an
		// earlier archive, so bump the suffix until the id is free.
		suffix := timestamp
		archivedID := fmt.Sprintf("%s_%d", keyID, suffix)
		for _, exists := s.keys[archivedID]; exists; _, exists = s.keys[archivedID] {
			suffix++
			archivedID = fmt.Sprintf("%s_%d", keyID, suffix)
		}

		current.KeyID = archivedID
		s.keys[archivedID] = current
		rotated++
	}
	s.mu.Unlock()

	// Install fresh material outside the archive loop so Generate can take
	// the lock itself.
	s.mu.RLock()
	baseIDs := make([]string, 0, len(s.base))
	for keyID := range s.base {
		baseIDs = append(baseIDs, keyID)
	}
	s.mu.RUnlock()

	for _, keyID := range baseIDs {
		if _, err := s.Generate(keyID); err != nil {
			return rotated, err
		}
	}

	return rotated, nil
}

// Lookup resolves keyID to stored key material.
func (s *InMemoryKeyStore) Lookup(keyID string) (domain.EncryptionKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if key, ok := s.keys[keyID]; ok {
		return key, nil
	}

	// Fall back to the newest archived version of this id.
	archived := s.archivedLocked(keyID)
	if len(archived) > 0 {
		return archived[0], nil
	}

	return domain.EncryptionKey{}, fmt.Errorf("%w: %s", domain.ErrKeyNotFound, keyID)
}

// ArchivedVersions returns archived keys for keyID, newest first.
func (s *InMemoryKeyStore) ArchivedVersions(keyID string) []domain.EncryptionKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.archivedLocked(keyID)
}

// archivedLocked collects "{keyID}_{timestamp}" entries sorted by descending
// timestamp suffix. Callers must hold at least the read lock.
func (s *InMemoryKeyStore) archivedLocked(keyID string) []domain.EncryptionKey {
	prefix := keyID + "_"

	type versioned struct {
		key       domain.EncryptionKey
		timestamp int64
	}
	var versions []versioned

	for id, key := range s.keys {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		timestamp, err := strconv.ParseInt(strings.TrimPrefix(id, prefix), 10, 64)
		if err != nil {
			continue
		}
		versions = append(versions, versioned{key: key, timestamp: timestamp})
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].timestamp > versions[j].timestamp
	})

	keys := make([]domain.EncryptionKey, 0, len(versions))
	for _, v := range versions {
		keys = append(keys, v.key)
	}
	return keys
}

// Close zeroizes all key material held by the store.
func (s *InMemoryKeyStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, key := range s.keys {
		domain.Zero(key.Key)
		delete(s.keys, id)
	}
	s.base = make(map[string]struct{})
}
