// Package journal provides the append-only record of committed ledger
// transitions. Streams are versioned with optimistic concurrency: an
// append names the version it expects the stream to be at, and fails
// with ErrConcurrencyConflict if another writer got there first.
// Replaying a journal in global commit order reconstructs the full
// ledger state.
package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is one committed transition in a stream.
type Event struct {
	// ID is a globally unique event identifier.
	ID string `json:"id"`

	// StreamID identifies the record the event belongs to.
	StreamID string `json:"stream_id"`

	// Type is the event type name.
	Type string `json:"type"`

	// Version is the event's position in its stream, starting at 0.
	// Assigned by the store on append.
	Version int `json:"version"`

	// Timestamp is when the event was created.
	Timestamp time.Time `json:"timestamp"`

	// Data is the JSON-encoded payload.
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent creates an event with a fresh ID and a JSON-encoded payload.
// The version is assigned when the event is appended.
func NewEvent(streamID, eventType string, data any) (*Event, error) {
	var payload json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		payload = b
	}
	return &Event{
		ID:        uuid.NewString(),
		StreamID:  streamID,
		Type:      eventType,
		Version:   -1,
		Timestamp: time.Now().UTC(),
		Data:      payload,
	}, nil
}

// Unmarshal decodes the event payload into v.
func (e *Event) Unmarshal(v any) error {
	return json.Unmarshal(e.Data, v)
}
