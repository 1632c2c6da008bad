// internal/repository/localstore/localstore.go
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/smartstock/backend-go/internal/domain"
)

const (
	inventoryKey = "carmencita-inventory"
	eventsKey    = "smartstock_event_history"
)

// Store is the file-backed key-value fallback used when no owner identity
// is present or cloud calls fail. One JSON document per key, written
// atomically via rename, guarded by a single lock.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New ensures the data directory exists and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create local store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// GetProducts reads the persisted product mirror; a missing file yields
// an empty slice.
func (s *Store) GetProducts() ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []domain.Product
	if err := s.read(inventoryKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SetProducts replaces the persisted product mirror.
func (s *Store) SetProducts(products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(inventoryKey, products)
}

// GetEvents reads the persisted audit-log mirror, newest first.
func (s *Store) GetEvents() ([]domain.StockEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []domain.StockEvent
	if err := s.read(eventsKey, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SetEvents replaces the persisted audit-log mirror.
func (s *Store) SetEvents(events []domain.StockEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(eventsKey, events)
}

// Clear removes every persisted mirror.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{inventoryKey, eventsKey} {
		if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear local store key %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) read(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local store key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode local store key %s: %w", key, err)
	}
	return nil
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode local store key %s: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write local store key %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("commit local store key %s: %w", key, err)
	}
	return nil
}
