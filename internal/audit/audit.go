// Package audit records who did what to which entity. Emission is
// fire-and-forget: callers hand events to a Dispatcher and never wait on,
// or learn about, sink failures.
package audit

import (
	"context"
	"time"

	"invoicely-backend/internal/models"
)

// Event is a single audit record.
type Event struct {
	EntityType string
	EntityID   string
	Action     string
	UserID     string
	Changes    models.ChangeSet
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}

// RequestMeta carries the client context a transport layer attaches to
// audited operations.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Sink persists audit events.
type Sink interface {
	Log(ctx context.Context, event Event) error
}

// NoOpSink discards every event.
type NoOpSink struct{}

func (NoOpSink) Log(context.Context, Event) error { return nil }

// ChannelSink delivers events to a channel, for tests and local tooling.
type ChannelSink struct {
	events chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

func (s *ChannelSink) Log(ctx context.Context, event Event) error {
	select {
	case s.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ChannelSink) Events() <-chan Event {
	return s.events
}
