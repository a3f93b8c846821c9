// Package store persists the item collection as a single serialized record in
// a local key-value backend. Every mutation reads the whole collection,
// changes it and writes it back; collections are small enough for that.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/idilsaglam/calories/internal/model"
)

// DefaultCollection is the key the item list is stored under.
const DefaultCollection = "items"

// ErrItemNotFound is returned by UpdateItem and DeleteItem when no persisted
// item carries the requested id. Nothing is written in that case.
var ErrItemNotFound = errors.New("store: item not found")

// Backend is a local key-value medium holding opaque text values.
type Backend interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	// Delete removes key. Removing an absent key is not an error.
	Delete(key string) error
	Close() error
}

// Store is the persistence layer for the item collection.
type Store struct {
	backend    Backend
	collection string
}

// Option tunes a Store.
type Option func(*Store)

// WithCollection stores items under name instead of DefaultCollection.
func WithCollection(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.collection = name
		}
	}
}

// New returns a Store writing to backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, collection: DefaultCollection}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collection returns the key items are stored under.
func (s *Store) Collection() string { return s.collection }

// Close releases the backend.
func (s *Store) Close() error { return s.backend.Close() }

// LoadAll returns the persisted collection. A missing record is an empty
// collection, not an error.
func (s *Store) LoadAll() ([]model.Item, error) {
	b, ok, err := s.backend.Get(s.collection)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.collection, err)
	}
	if !ok || len(b) == 0 {
		return []model.Item{}, nil
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// StoreItem appends item to the persisted collection, creating it if needed.
func (s *Store) StoreItem(item model.Item) error {
	items, err := s.LoadAll()
	if err != nil {
		return err
	}
	items = append(items, item)
	return s.save(items)
}

// UpdateItem replaces the persisted item whose id matches updated.
func (s *Store) UpdateItem(updated model.Item) error {
	items, err := s.LoadAll()
	if err != nil {
		return err
	}
	idx := indexOf(items, updated.ID)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, updated.ID)
	}
	items[idx] = updated
	return s.save(items)
}

// DeleteItem removes the persisted item with the given id.
func (s *Store) DeleteItem(id int) error {
	items, err := s.LoadAll()
	if err != nil {
		return err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	items = append(items[:idx], items[idx+1:]...)
	return s.save(items)
}

// ClearAll removes the whole persisted collection. Calling it again is a no-op.
func (s *Store) ClearAll() error {
	if err := s.backend.Delete(s.collection); err != nil {
		return fmt.Errorf("delete %s: %w", s.collection, err)
	}
	log.Debug().Str("component", "store").Str("collection", s.collection).Msg("collection cleared")
	return nil
}

func (s *Store) save(items []model.Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.backend.Set(s.collection, b); err != nil {
		return fmt.Errorf("write %s: %w", s.collection, err)
	}
	log.Debug().Str("component", "store").Str("collection", s.collection).Int("items", len(items)).Msg("collection written")
	return nil
}

func indexOf(items []model.Item, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
