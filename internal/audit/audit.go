// Package audit records signing events in an append-only trail. The
// default store lives in process memory; a sqlite-backed store keeps the
// trail across restarts when configured.
package audit

import (
	"context"
	"sync"
)

// Entry is an immutable record linking a signing event to its input,
// output, signer and content hash. The hash always equals the SHA-256 of
// the signed file's bytes at creation time.
type Entry struct {
	ID           string `json:"id"`
	NotaryID     int    `json:"notaryId"`
	Timestamp    string `json:"timestamp"`
	OriginalFile string `json:"originalFile"`
	SignedFile   string `json:"signedFile"`
	Hash         string `json:"hash"`
}

// Store is an append-only trail of signing events. Entries are returned in
// append order; there is no dedup, cap, update or delete.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
	Close() error
}

// MemoryStore keeps the trail in process memory. Handlers run
// concurrently, so appends take a mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore returns an empty in-memory trail.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
