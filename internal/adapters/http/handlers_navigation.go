package web

import (
	"net/http"

	"parley/internal/adapters/http/middleware"
	"parley/internal/domain/navigation"
)

// handleNavigationState handles GET /api/navigation: the session's current
// navigation controller state.
func handleNavigationState(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, navigation.New())
		return
	}
	writeJSON(w, http.StatusOK, sess.Nav)
}

// handleNavigationRequest handles POST /api/navigation/request.
// Accepts JSON {view} and runs it through the controller. The outcome and
// resulting state are returned; an unknown view is ignored, not an error.
// POST: the session's controller reflects the transition
func handleNavigationRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusBadRequest)
		return
	}

	var req struct {
		View string `json:"view"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	outcome := sess.Nav.RequestView(navigation.View(req.View))
	saveNav(r, sess)

	writeJSON(w, http.StatusOK, map[string]any{
		"outcome": outcome,
		"state":   sess.Nav,
	})
}
