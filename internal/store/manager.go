package store

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// Manager hands out one Store per authenticated user, creating and syncing
// it on first access. It also fans the external timer tick out to every
// live store.
type Manager struct {
	mu       sync.Mutex
	db       *gorm.DB
	ai       Assistant
	calendar CalendarSync
	events   Broadcaster
	stores   map[string]*Store
}

// NewManager wires the shared collaborators. calendar and events may be nil.
func NewManager(db *gorm.DB, ai Assistant, calendar CalendarSync, events Broadcaster) *Manager {
	return &Manager{
		db:       db,
		ai:       ai,
		calendar: calendar,
		events:   events,
		stores:   make(map[string]*Store),
	}
}

// For returns the store for userID, loading persisted tasks on first use.
func (m *Manager) For(ctx context.Context, userID string) (*Store, error) {
	m.mu.Lock()
	s, ok := m.stores[userID]
	if !ok {
		s = New(m.db, userID, m.ai, m.calendar, m.events)
		m.stores[userID] = s
	}
	m.mu.Unlock()

	if !ok {
		if err := s.Sync(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Tick advances every live focus timer by one second. Driven by the server's
// interval ticker.
func (m *Manager) Tick() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	for _, s := range stores {
		s.TickFocusTimer()
	}
}

// Wait drains background work across all stores; used on shutdown and in
// tests.
func (m *Manager) Wait() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	for _, s := range stores {
		s.Wait()
	}
}
