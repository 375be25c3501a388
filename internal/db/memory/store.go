// Package memory provides an ephemeral, in-process implementation of db.Store.
//
// It is meant for local runs and tests; nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/customfields/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store keeps hashes in a map guarded by a RWMutex.
type Store struct {
	mu     sync.RWMutex
	hashes map[string]map[string]string
	closed bool
}

// New creates an empty store.
func New() *Store {
	return &Store{hashes: make(map[string]map[string]string)}
}

// Ping succeeds until the store is closed.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	return nil
}

// WaitForReady returns immediately; an in-memory store is always ready.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close marks the store closed. Subsequent operations fail.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// HSet sets hash fields, overwriting existing ones.
func (s *Store) HSet(_ context.Context, key string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &db.Error{Op: db.OpHSet, Err: db.ErrClosed}
	}
	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string]string, len(fields))
		s.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

// HGetAll returns a copy of all fields of a hash.
func (s *Store) HGetAll(_ context.Context, key string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, &db.Error{Op: db.OpHGetAll, Err: db.ErrClosed}
	}
	h := s.hashes[key]
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out, nil
}
