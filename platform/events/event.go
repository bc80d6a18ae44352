// Package events carries domain events between modules over an in-process
// bus, so modules can react to each other without importing each other.
// Delivery is in-memory and at most once; work that must survive a restart
// belongs in the scheduler, not here.
package events

import (
	"context"
	"time"
)

// Bus routes published events to the handlers subscribed under their name.
type Bus interface {
	// Publish delivers the event without blocking the caller. Handler
	// errors are logged, not returned.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event inline and stops at the first
	// handler error.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe attaches a handler to every event whose EventName matches
	// eventName.
	Subscribe(eventName string, handler Handler)
}

// Event is what travels over the bus. Concrete events embed BaseEvent and
// add their payload fields.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// Handler consumes a single event.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// BaseEvent supplies the occurrence timestamp every concrete event embeds.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}
