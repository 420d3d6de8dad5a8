package chat

import "sync"

// Manager hands out one Store per authenticated user. Stores are created
// lazily on first use and live for the process lifetime; the per-user state
// they hold is a handful of sessions, so no eviction is needed yet.
type Manager struct {
	mu        sync.Mutex
	gateway   SessionGateway
	responder Responder
	stores    map[string]*Store
}

func NewManager(gateway SessionGateway, responder Responder) *Manager {
	return &Manager{
		gateway:   gateway,
		responder: responder,
		stores:    make(map[string]*Store),
	}
}

// ForUser returns the user's store, creating it on first access.
func (m *Manager) ForUser(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[userID]
	if !ok {
		store = NewStore(m.gateway, m.responder, userID)
		m.stores[userID] = store
	}
	return store
}
