package web

import (
	"errors"
	"net/http"

	"parley/internal/adapters/http/middleware"
	"parley/internal/adapters/storage/collection"
	eventStore "parley/internal/adapters/storage/event"
	"parley/internal/application/orchestrators"
	"parley/internal/domain/account"
	"parley/internal/domain/event"
	"parley/internal/domain/export"
)

// Global events (system console)

func handleGlobalEventList(w http.ResponseWriter, r *http.Request) {
	filter := eventStore.ListFilter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	}
	events, err := stores.GlobalEventStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func handleGlobalEventCreate(w http.ResponseWriter, r *http.Request) {
	createEvent(w, r, stores.GlobalEventStore, event.GlobalScope)
}

func handleGlobalEventUpdate(w http.ResponseWriter, r *http.Request) {
	updateEvent(w, r, stores.GlobalEventStore, event.GlobalScope)
}

func handleGlobalEventDelete(w http.ResponseWriter, r *http.Request) {
	deleteEvent(w, r, stores.GlobalEventStore)
}

func handleGlobalEventExport(w http.ResponseWriter, r *http.Request) {
	events, err := stores.GlobalEventStore.List(r.Context(), eventStore.ListFilter{})
	if err != nil {
		internalError(w, err)
		return
	}
	data, err := export.EventsCSV(events)
	if err != nil {
		internalError(w, err)
		return
	}
	writeCSVResponse(w, "events.csv", data)
}

// Organization-internal events (org console; sysadmin may pass org_id)

func handleOrgEventList(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	filter := eventStore.ListFilter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
		OrgID:  memberScopeOrg(r, sess),
	}
	events, err := stores.OrgEventStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func handleOrgEventCreate(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	createEvent(w, r, stores.OrgEventStore, memberScopeOrg(r, sess))
}

func handleOrgEventUpdate(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if !orgEventInScope(r, sess, w) {
		return
	}
	updateEvent(w, r, stores.OrgEventStore, memberScopeOrg(r, sess))
}

func handleOrgEventDelete(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if !orgEventInScope(r, sess, w) {
		return
	}
	deleteEvent(w, r, stores.OrgEventStore)
}

// orgEventInScope verifies an orgadmin only touches events of their own
// organization. Writes the error response itself and reports the verdict.
func orgEventInScope(r *http.Request, sess middleware.Session, w http.ResponseWriter) bool {
	if sess.Role != account.RoleOrgAdmin {
		return true
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return false
	}
	existing, err := stores.OrgEventStore.GetByID(r.Context(), id)
	if errors.Is(err, eventStore.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return false
	}
	if err != nil {
		internalError(w, err)
		return false
	}
	if existing.OrgID != sess.OrgID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// Shared event CRUD bodies. scope pins OrgID on writes; GlobalScope for
// the global collection.

func createEvent(w http.ResponseWriter, r *http.Request, store eventStore.Store, scope int64) {
	var ev event.Event
	if err := strictDecode(r, &ev); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ev.OrgID = scope
	if ev.Status == "" {
		ev.Status = event.StatusDraft
	}
	if err := ev.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := store.Create(r.Context(), ev)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func updateEvent(w http.ResponseWriter, r *http.Request, store eventStore.Store, scope int64) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var ev event.Event
	if err := strictDecode(r, &ev); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ev.ID = id
	ev.OrgID = scope
	if err := ev.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := store.Update(r.Context(), ev)
	switch {
	case errors.Is(err, eventStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, collection.ErrConflict):
		http.Error(w, "event was modified concurrently, reload and retry", http.StatusConflict)
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteEvent(w http.ResponseWriter, r *http.Request, store eventStore.Store) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "deletion requires confirm=true", http.StatusBadRequest)
		return
	}
	err := store.Delete(r.Context(), id)
	switch {
	case errors.Is(err, eventStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		internalError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleEventRegister handles POST /api/events/{id}/register against the
// global collection. Registration never exceeds capacity.
func handleEventRegister(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	result, err := orchestrators.ExecuteRegisterEvent(r.Context(), orchestrators.RegisterEventInput{EventID: id},
		orchestrators.RegisterEventDeps{EventStore: stores.GlobalEventStore})
	switch {
	case errors.Is(err, eventStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, event.ErrFull), errors.Is(err, event.ErrNotOpen):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, result)
	}
}
