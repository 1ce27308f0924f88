package journal

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and embedded use.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
	all     []*Event // global commit order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return -1, ErrNoEvents
	}
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[streamID]
	head := len(stream) - 1
	if head != expectedVersion {
		return -1, ErrConcurrencyConflict
	}

	for i, e := range events {
		stored := *e
		stored.StreamID = streamID
		stored.Version = head + 1 + i
		stream = append(stream, &stored)
		s.all = append(s.all, &stored)
		e.Version = stored.Version
	}
	s.streams[streamID] = stream
	return len(stream) - 1, nil
}

// Read implements Store.
func (s *MemoryStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	var out []*Event
	for _, e := range stream {
		if e.Version >= fromVersion {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ReadAll implements Store.
func (s *MemoryStore) ReadAll(ctx context.Context, filter Filter) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.all {
		if filter.matches(e) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// StreamVersion implements Store.
func (s *MemoryStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[streamID]) - 1, nil
}

// DeleteStream implements Store.
func (s *MemoryStore) DeleteStream(ctx context.Context, streamID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.streams, streamID)
	kept := s.all[:0]
	for _, e := range s.all {
		if e.StreamID != streamID {
			kept = append(kept, e)
		}
	}
	s.all = kept
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
