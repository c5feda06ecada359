// Package service implements the bounded security event log and the
// pull-based consumers computed from it: the threat detector and the privacy
// report generator.
package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/privacycore/internal/audit/domain"
)

// Recorder is the narrow interface other subsystems use to append audit
// entries. Every mutating or auditable operation in the core records an
// event through it.
type Recorder interface {
	Record(event string, details map[string]any, severity domain.Severity)
}

const (
	// DefaultCapacity is the event count that triggers trimming.
	DefaultCapacity = 1000

	// DefaultTrimTo is the number of most recent events kept after a trim.
	// Trimming to half the capacity instead of the capacity itself is a
	// deliberate hysteresis: it avoids compacting on every insert once the
	// log is full.
	DefaultTrimTo = 500
)

// EventLog is a bounded, append-only, in-memory security event history.
//
// When the entry count exceeds the capacity the log is truncated to the most
// recent trimTo entries. All state is process-wide and non-persistent; a
// restart loses the history.
type EventLog struct {
	mu       sync.RWMutex
	events   []domain.SecurityEvent
	capacity int
	trimTo   int
	now      func() time.Time
}

// NewEventLog creates an event log with the given bounds. Non-positive or
// inconsistent bounds fall back to the defaults.
func NewEventLog(capacity, trimTo int) *EventLog {
	if capacity <= 0 || trimTo <= 0 || trimTo > capacity {
		capacity = DefaultCapacity
		trimTo = DefaultTrimTo
	}
	return &EventLog{
		capacity: capacity,
		trimTo:   trimTo,
		now:      time.Now,
	}
}

// Record appends a security event, trimming the history when the capacity is
// exceeded.
func (l *EventLog) Record(event string, details map[string]any, severity domain.Severity) {
	entry := domain.SecurityEvent{
		ID:        uuid.Must(uuid.NewV7()),
		Event:     event,
		Details:   details,
		Severity:  severity,
		CreatedAt: l.now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, entry)
	if len(l.events) > l.capacity {
		trimmed := make([]domain.SecurityEvent, l.trimTo)
		copy(trimmed, l.events[len(l.events)-l.trimTo:])
		l.events = trimmed
	}
}

// Len returns the current number of stored events.
func (l *EventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Recent returns up to limit events, newest first. A non-positive limit
// returns the full history.
func (l *EventLog) Recent(limit int) []domain.SecurityEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 || limit > len(l.events) {
		limit = len(l.events)
	}

	recent := make([]domain.SecurityEvent, 0, limit)
	for i := len(l.events) - 1; i >= len(l.events)-limit; i-- {
		recent = append(recent, l.events[i])
	}
	return recent
}

// Since returns all events recorded at or after the given time, in insertion
// order.
func (l *EventLog) Since(start time.Time) []domain.SecurityEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []domain.SecurityEvent
	for _, event := range l.events {
		if !event.CreatedAt.Before(start) {
			matched = append(matched, event)
		}
	}
	return matched
}

// Between returns all events recorded within [start, end], in insertion
// order.
func (l *EventLog) Between(start, end time.Time) []domain.SecurityEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []domain.SecurityEvent
	for _, event := range l.events {
		if event.CreatedAt.Before(start) || event.CreatedAt.After(end) {
			continue
		}
		matched = append(matched, event)
	}
	return matched
}
