package orchestrators

import (
	"context"

	"parley/internal/domain/event"
)

// RegisterEventInput carries input for an event registration.
type RegisterEventInput struct {
	EventID int64
}

// EventStoreForRegister defines the event store interface needed by
// ExecuteRegisterEvent.
type EventStoreForRegister interface {
	GetByID(ctx context.Context, id int64) (event.Event, error)
	Update(ctx context.Context, e event.Event) (event.Event, error)
}

// RegisterEventDeps holds dependencies for RegisterEvent.
type RegisterEventDeps struct {
	EventStore EventStoreForRegister
}

// ExecuteRegisterEvent adds one participant to an open event.
// PRE: EventID identifies an existing event
// POST: Participants is incremented by exactly one
// INVARIANT: Participants never exceeds Capacity
func ExecuteRegisterEvent(ctx context.Context, input RegisterEventInput, deps RegisterEventDeps) (event.Event, error) {
	ev, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return event.Event{}, err
	}

	if err := ev.Register(); err != nil {
		return event.Event{}, err
	}

	return deps.EventStore.Update(ctx, ev)
}
