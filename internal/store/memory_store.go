package store

import (
	"context"
	"sync"

	"rapifarma/internal/dto"
)

// In-memory variants for unit tests. Same whole-value semantics as the Redis
// implementations, minus expiry.

type memoryCartStore struct {
	mu    sync.Mutex
	carts map[string][]OrdenItem
}

func NewMemoryCartStore() CartStore {
	return &memoryCartStore{carts: make(map[string][]OrdenItem)}
}

func (s *memoryCartStore) Get(_ context.Context, userID string) ([]OrdenItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	out := make([]OrdenItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *memoryCartStore) Set(_ context.Context, userID string, items []OrdenItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(items) == 0 {
		delete(s.carts, userID)
		return nil
	}
	cp := make([]OrdenItem, len(items))
	copy(cp, items)
	s.carts[userID] = cp
	return nil
}

func (s *memoryCartStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

type memoryOverlayStore struct {
	mu       sync.Mutex
	overlays map[string]map[string]dto.EdicionCuentaRequest
}

func NewMemoryOverlayStore() OverlayStore {
	return &memoryOverlayStore{overlays: make(map[string]map[string]dto.EdicionCuentaRequest)}
}

func (s *memoryOverlayStore) Get(_ context.Context, userID, cuentaID string) (*dto.EdicionCuentaRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.overlays[userID]; ok {
		if e, ok := m[cuentaID]; ok {
			return &e, nil
		}
	}
	return nil, nil
}

func (s *memoryOverlayStore) GetAll(_ context.Context, userID string) (map[string]dto.EdicionCuentaRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]dto.EdicionCuentaRequest, len(s.overlays[userID]))
	for id, e := range s.overlays[userID] {
		out[id] = e
	}
	return out, nil
}

func (s *memoryOverlayStore) Set(_ context.Context, userID, cuentaID string, e dto.EdicionCuentaRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlays[userID] == nil {
		s.overlays[userID] = make(map[string]dto.EdicionCuentaRequest)
	}
	s.overlays[userID][cuentaID] = e
	return nil
}

func (s *memoryOverlayStore) Delete(_ context.Context, userID, cuentaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overlays[userID], cuentaID)
	return nil
}

func (s *memoryOverlayStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overlays, userID)
	return nil
}
