package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/reposicion-api/internal/application/ports"
)

type pendingEntry struct {
	adj       ports.PendingAdjustment
	expiresAt time.Time
}

// MemoryAdjustmentStore ajustes pendientes en memoria. Para una sola instancia o tests;
// los vencidos se purgan al guardar.
type MemoryAdjustmentStore struct {
	mu      sync.Mutex
	entries map[string]pendingEntry
	now     func() time.Time
}

// NewMemoryAdjustmentStore crea un store vacío.
func NewMemoryAdjustmentStore() *MemoryAdjustmentStore {
	return &MemoryAdjustmentStore{entries: make(map[string]pendingEntry), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *MemoryAdjustmentStore) WithClock(now func() time.Time) *MemoryAdjustmentStore {
	s.now = now
	return s
}

// Save guarda el ajuste bajo el token con vencimiento ttl.
func (s *MemoryAdjustmentStore) Save(_ context.Context, token string, adj ports.PendingAdjustment, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[token] = pendingEntry{adj: adj, expiresAt: now.Add(ttl)}
	return nil
}

// Take devuelve y borra el ajuste; (nil, nil) si no existe o venció.
func (s *MemoryAdjustmentStore) Take(_ context.Context, token string) (*ports.PendingAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return nil, nil
	}
	delete(s.entries, token)
	if !s.now().Before(e.expiresAt) {
		return nil, nil
	}
	adj := e.adj
	return &adj, nil
}

var _ ports.PendingAdjustmentStore = (*MemoryAdjustmentStore)(nil)
