package usecase

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/allisson/privacycore/internal/consent/domain"
)

// InMemoryConsentStore is the in-process ConsentStore implementation.
// A restart loses all history; production deployments substitute a durable
// store behind the same interface.
type InMemoryConsentStore struct {
	mu      sync.RWMutex
	records map[string][]domain.ConsentRecord // keyed by user id, insertion order
}

// NewInMemoryConsentStore creates an empty consent store.
func NewInMemoryConsentStore() *InMemoryConsentStore {
	return &InMemoryConsentStore{
		records: make(map[string][]domain.ConsentRecord),
	}
}

// Append adds a record to the user's history.
func (s *InMemoryConsentStore) Append(record domain.ConsentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.UserID] = append(s.records[record.UserID], record)
}

// History returns a copy of the user's history in insertion order.
func (s *InMemoryConsentStore) History(userID string) []domain.ConsentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]domain.ConsentRecord, len(s.records[userID]))
	copy(history, s.records[userID])
	return history
}

// Latest returns the most recent record for the (user, data type) pair by
// timestamp, breaking ties in favor of later insertions.
func (s *InMemoryConsentStore) Latest(userID, dataType string) (domain.ConsentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest domain.ConsentRecord
	found := false
	for _, record := range s.records[userID] {
		if record.DataType != dataType {
			continue
		}
		if !found || !record.Timestamp.Before(latest.Timestamp) {
			latest = record
			found = true
		}
	}
	return latest, found
}

// InMemoryAccessRequestStore is the in-process AccessRequestStore
// implementation.
type InMemoryAccessRequestStore struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]domain.DataAccessRequest
}

// NewInMemoryAccessRequestStore creates an empty access request store.
func NewInMemoryAccessRequestStore() *InMemoryAccessRequestStore {
	return &InMemoryAccessRequestStore{
		requests: make(map[uuid.UUID]domain.DataAccessRequest),
	}
}

// Save inserts or replaces a request.
func (s *InMemoryAccessRequestStore) Save(request domain.DataAccessRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request
}

// Get returns the request with the given id.
func (s *InMemoryAccessRequestStore) Get(id uuid.UUID) (domain.DataAccessRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	request, ok := s.requests[id]
	return request, ok
}

// Pending returns undecided requests ordered by creation time.
func (s *InMemoryAccessRequestStore) Pending() []domain.DataAccessRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := []domain.DataAccessRequest{}
	for _, request := range s.requests {
		if request.Pending() {
			pending = append(pending, request)
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending
}
