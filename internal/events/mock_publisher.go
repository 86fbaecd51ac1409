package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopsquad/shopsquad-backend/types"
)

// MockPublisher implements Publisher for testing. It records every published
// event per trip.
type MockPublisher struct {
	mu     sync.RWMutex
	events map[string][]types.TripEvent // key: tripID
	err    error
}

// NewMockPublisher creates a new mock publisher for testing.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		events: make(map[string][]types.TripEvent),
	}
}

var _ Publisher = (*MockPublisher)(nil)

// Publish records an event, or returns the configured error.
func (m *MockPublisher) Publish(ctx context.Context, event types.TripEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.events[event.TripID] = append(m.events[event.TripID], event)
	return nil
}

// FailWith makes subsequent Publish calls return err.
func (m *MockPublisher) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetEvents returns the events published for a trip.
func (m *MockPublisher) GetEvents(tripID string) []types.TripEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]types.TripEvent, len(m.events[tripID]))
	copy(events, m.events[tripID])
	return events
}

// EventCount returns the total number of recorded events across all trips.
func (m *MockPublisher) EventCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, evs := range m.events {
		count += len(evs)
	}
	return count
}

// LastEvent returns the most recent event for a trip, or an error if none.
func (m *MockPublisher) LastEvent(tripID string) (types.TripEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	evs := m.events[tripID]
	if len(evs) == 0 {
		return types.TripEvent{}, fmt.Errorf("no events recorded for trip %s", tripID)
	}
	return evs[len(evs)-1], nil
}
