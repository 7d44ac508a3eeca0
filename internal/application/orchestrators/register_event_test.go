package orchestrators

import (
	"context"
	"errors"
	"testing"

	"parley/internal/domain/event"
)

// mockEventStore implements EventStoreForRegister for testing.
type mockEventStore struct {
	byID    map[int64]event.Event
	updated *event.Event
}

// GetByID implements EventStoreForRegister.
// PRE: id is positive
// POST: returns event or error if not found
func (m *mockEventStore) GetByID(_ context.Context, id int64) (event.Event, error) {
	ev, ok := m.byID[id]
	if !ok {
		return event.Event{}, errors.New("not found")
	}
	return ev, nil
}

// Update implements EventStoreForRegister.
// PRE: event exists
// POST: event is recorded for later assertions
func (m *mockEventStore) Update(_ context.Context, ev event.Event) (event.Event, error) {
	m.byID[ev.ID] = ev
	m.updated = &ev
	return ev, nil
}

func TestExecuteRegisterEvent(t *testing.T) {
	t.Run("open event gains a participant", func(t *testing.T) {
		store := &mockEventStore{byID: map[int64]event.Event{
			1001: {ID: 1001, Title: "National Open", Status: event.StatusOpen, Type: event.TypeDebate, Capacity: 64, Participants: 10},
		}}

		ev, err := ExecuteRegisterEvent(context.Background(), RegisterEventInput{EventID: 1001}, RegisterEventDeps{EventStore: store})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.Participants != 11 {
			t.Errorf("Participants = %d, want 11", ev.Participants)
		}
		if store.updated == nil {
			t.Fatal("event should be persisted")
		}
	})

	t.Run("full event is refused", func(t *testing.T) {
		store := &mockEventStore{byID: map[int64]event.Event{
			1001: {ID: 1001, Title: "National Open", Status: event.StatusOpen, Type: event.TypeDebate, Capacity: 10, Participants: 10},
		}}

		_, err := ExecuteRegisterEvent(context.Background(), RegisterEventInput{EventID: 1001}, RegisterEventDeps{EventStore: store})
		if !errors.Is(err, event.ErrFull) {
			t.Errorf("error = %v, want ErrFull", err)
		}
		if store.updated != nil {
			t.Error("a refused registration must not persist anything")
		}
	})

	t.Run("draft event is not open", func(t *testing.T) {
		store := &mockEventStore{byID: map[int64]event.Event{
			1001: {ID: 1001, Title: "National Open", Status: event.StatusDraft, Type: event.TypeDebate, Capacity: 10},
		}}

		_, err := ExecuteRegisterEvent(context.Background(), RegisterEventInput{EventID: 1001}, RegisterEventDeps{EventStore: store})
		if !errors.Is(err, event.ErrNotOpen) {
			t.Errorf("error = %v, want ErrNotOpen", err)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		store := &mockEventStore{byID: map[int64]event.Event{}}

		_, err := ExecuteRegisterEvent(context.Background(), RegisterEventInput{EventID: 404}, RegisterEventDeps{EventStore: store})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
