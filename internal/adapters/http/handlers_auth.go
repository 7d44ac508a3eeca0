package web

import (
	"errors"
	"net/http"

	"parley/internal/adapters/http/middleware"
	"parley/internal/application/orchestrators"
	"parley/internal/domain/navigation"
)

// handleLogin handles POST /api/login.
// Accepts JSON {identifier, password, scope}. On success the anonymous
// session is upgraded in place and the navigation controller moves to its
// destination view.
// PRE: request carries a session (EnsureSession)
// POST: session is authenticated; response reports the destination view
func handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		internalError(w, errors.New("no session on login request"))
		return
	}

	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
		Scope      string `json:"scope"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		Scope:      req.Scope,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrAccountLocked):
			http.Error(w, err.Error(), http.StatusLocked)
		case errors.Is(err, orchestrators.ErrAccountDisabled):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, orchestrators.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		}
		return
	}

	sess.AccountID = result.AccountID
	sess.Email = result.Email
	sess.Role = result.Role
	sess.OrgID = result.OrgID
	sess.MemberID = result.MemberID
	destination := sess.Nav.LoginSucceeded(result.Role, result.PasswordChangeRequired)
	saveNav(r, sess)

	writeJSON(w, http.StatusOK, map[string]any{
		"role":                     result.Role,
		"view":                     destination,
		"password_change_required": result.PasswordChangeRequired,
	})
}

// handleLogout handles POST /api/logout.
// POST: session is deleted; cookie cleared; a later request starts anonymous
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok && sess.Token != "" {
		sessions.Delete(sess.Token)
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"view": navigation.ViewLanding})
}

// handleChangePassword handles POST /api/change-password.
// Clears the forced first-login sub-state on success.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok || !sess.IsAuthenticated() {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteChangePassword(ctx, orchestrators.ChangePasswordInput{
		AccountID:       sess.AccountID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}, orchestrators.ChangePasswordDeps{AccountStore: stores.AccountStore})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrInvalidCredentials):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	view := sess.Nav.PasswordChanged()
	saveNav(r, sess)

	writeJSON(w, http.StatusOK, map[string]any{"view": view})
}

// handleMe handles GET /api/me: the current session's identity summary.
func handleMe(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"email":     sess.Email,
		"role":      sess.Role,
		"org_id":    sess.OrgID,
		"member_id": sess.MemberID,
	})
}
