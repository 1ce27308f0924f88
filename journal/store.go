package journal

import (
	"context"
	"errors"
)

var (
	// ErrConcurrencyConflict is returned when an append's expected
	// version does not match the stream head.
	ErrConcurrencyConflict = errors.New("journal: concurrency conflict")

	// ErrNoEvents is returned when an append carries no events.
	ErrNoEvents = errors.New("journal: no events to append")
)

// Filter selects events for ReadAll. Zero-value fields match anything.
type Filter struct {
	// StreamID limits results to one stream.
	StreamID string

	// Types limits results to the named event types.
	Types []string
}

func (f Filter) matches(e *Event) bool {
	if f.StreamID != "" && e.StreamID != f.StreamID {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if e.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store is the durable event journal.
type Store interface {
	// Append adds events to a stream. expectedVersion is the current
	// head version of the stream (-1 for a new stream); on mismatch the
	// append fails with ErrConcurrencyConflict and nothing is written.
	// Returns the new head version.
	Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error)

	// Read returns the events of a stream from fromVersion onward, in
	// version order.
	Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error)

	// ReadAll returns all events matching the filter in global commit
	// order.
	ReadAll(ctx context.Context, filter Filter) ([]*Event, error)

	// StreamVersion returns the head version of a stream, or -1 if the
	// stream does not exist.
	StreamVersion(ctx context.Context, streamID string) (int, error)

	// DeleteStream removes a stream and its events.
	DeleteStream(ctx context.Context, streamID string) error

	// Close releases store resources.
	Close() error
}
