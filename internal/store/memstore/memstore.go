// Package memstore is an in-process key-value backend. Nothing outlives the
// process; it serves ephemeral sessions and tests.
package memstore

import (
	gocache "github.com/patrickmn/go-cache"
)

// Store holds values in a go-cache without expiration.
type Store struct {
	cache *gocache.Cache
}

// New returns an empty Store.
func New() *Store {
	return &Store{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	v, found := s.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	// hand out a copy so callers cannot alias the stored value
	out := make([]byte, len(b))
	copy(out, b)
	return out, true, nil
}

func (s *Store) Set(key string, value []byte) error {
	b := make([]byte, len(value))
	copy(b, value)
	s.cache.Set(key, b, gocache.NoExpiration)
	return nil
}

func (s *Store) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Len reports how many keys are held.
func (s *Store) Len() int { return s.cache.ItemCount() }

func (s *Store) Close() error {
	s.cache.Flush()
	return nil
}
