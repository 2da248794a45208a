package session

import (
	"context"
	"sync"
)

// Store keeps per-conversation ephemeral state: the message ids of the last
// photo album sent to that chat. TakeLastAlbum and SetLastAlbum must be
// atomic with respect to other operations on the same chat; operations on
// different chats never contend.
type Store interface {
	// TakeLastAlbum returns the stored album message ids and clears them in
	// one step.
	TakeLastAlbum(ctx context.Context, chatID int64) ([]int, error)
	// SetLastAlbum overwrites the stored album message ids.
	SetLastAlbum(ctx context.Context, chatID int64, messageIDs []int) error
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[int64]*chatEntry
}

type chatEntry struct {
	mu       sync.Mutex
	albumIDs []int
}

// NewMemoryStore returns the default in-process store. Entries live for the
// process lifetime and are lost on restart, which is acceptable: stale album
// cleanup is best-effort.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[int64]*chatEntry)}
}

func (s *memoryStore) entry(chatID int64) *chatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[chatID]
	if !ok {
		e = &chatEntry{}
		s.entries[chatID] = e
	}
	return e
}

func (s *memoryStore) TakeLastAlbum(_ context.Context, chatID int64) ([]int, error) {
	e := s.entry(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := e.albumIDs
	e.albumIDs = nil
	return ids, nil
}

func (s *memoryStore) SetLastAlbum(_ context.Context, chatID int64, messageIDs []int) error {
	e := s.entry(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.albumIDs = messageIDs
	return nil
}
