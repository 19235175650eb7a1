package cart

import (
	"fmt"
	"sync"
)

// Sessions maps session ids to their stores. Stores are created lazily on
// first access and restore their own persisted state; storage keys are
// namespaced per session so two shoppers never share a collection.
// The map only grows: ids are server-minted UUIDs (SessionID refuses
// anything else), so entries track real shoppers rather than arbitrary
// cookie values, and carts deliberately never expire.
type Sessions struct {
	mu      sync.RWMutex
	storage Storage
	stores  map[string]*Store
}

func NewSessions(storage Storage) *Sessions {
	return &Sessions{
		storage: storage,
		stores:  make(map[string]*Store),
	}
}

// Get returns the store for the session, creating it if needed.
func (s *Sessions) Get(sessionID string) *Store {
	s.mu.RLock()
	store, ok := s.stores[sessionID]
	s.mu.RUnlock()
	if ok {
		return store
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if store, ok := s.stores[sessionID]; ok {
		return store
	}
	store = NewStore(
		s.storage,
		fmt.Sprintf("%s:%s", CartKey, sessionID),
		fmt.Sprintf("%s:%s", FavoritesKey, sessionID),
	)
	s.stores[sessionID] = store
	return store
}
