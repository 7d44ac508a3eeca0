package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"parley/internal/adapters/http/middleware"
	"parley/internal/domain/account"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details to the response.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pathID parses the {id} path segment as an int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// saveNav persists the session's navigation controller after a transition.
// The session in context is a copy; the store holds the truth.
func saveNav(r *http.Request, sess middleware.Session) {
	if sess.Token == "" {
		return
	}
	sessions.Update(sess.Token, sess)
}

// registerRoutes attaches all application routes to the mux.
func registerRoutes(mux *http.ServeMux) {
	consoleRoles := middleware.RequireRole(account.RoleSysAdmin, account.RoleOrgAdmin)
	sysOnly := middleware.RequireRole(account.RoleSysAdmin)
	practiceRoles := middleware.RequireRole(account.RoleMember, account.RolePersonal)

	// Auth and navigation
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.HandleFunc("POST /api/change-password", handleChangePassword)
	mux.HandleFunc("GET /api/navigation", handleNavigationState)
	mux.HandleFunc("POST /api/navigation/request", handleNavigationRequest)

	// Public site
	mux.HandleFunc("GET /api/catalog", handleCatalog)
	mux.HandleFunc("GET /api/catalog/{id}", handleCatalogCourse)
	mux.HandleFunc("POST /api/inquiries", handleInquirySubmit)

	// System console: organizations
	mux.Handle("GET /api/admin/orgs", sysOnly(http.HandlerFunc(handleOrgList)))
	mux.Handle("POST /api/admin/orgs", sysOnly(http.HandlerFunc(handleOrgCreate)))
	mux.Handle("PUT /api/admin/orgs/{id}", sysOnly(http.HandlerFunc(handleOrgUpdate)))
	mux.Handle("POST /api/admin/orgs/{id}/toggle", sysOnly(http.HandlerFunc(handleOrgToggle)))
	mux.Handle("DELETE /api/admin/orgs/{id}", sysOnly(http.HandlerFunc(handleOrgDelete)))
	mux.Handle("GET /api/admin/orgs/export", sysOnly(http.HandlerFunc(handleOrgExport)))
	mux.Handle("GET /api/admin/orgs/seats", sysOnly(http.HandlerFunc(handleOrgSeatUsage)))

	// Consoles: members
	mux.Handle("GET /api/admin/members", consoleRoles(http.HandlerFunc(handleMemberList)))
	mux.Handle("POST /api/admin/members", consoleRoles(http.HandlerFunc(handleMemberCreate)))
	mux.Handle("PUT /api/admin/members/{id}", consoleRoles(http.HandlerFunc(handleMemberUpdate)))
	mux.Handle("POST /api/admin/members/{id}/toggle", consoleRoles(http.HandlerFunc(handleMemberToggle)))
	mux.Handle("DELETE /api/admin/members/{id}", consoleRoles(http.HandlerFunc(handleMemberDelete)))
	mux.Handle("POST /api/admin/members/import", consoleRoles(http.HandlerFunc(handleMemberImport)))
	mux.Handle("GET /api/admin/members/export", consoleRoles(http.HandlerFunc(handleMemberExport)))

	// Consoles: events (global scope is sysadmin-only, org scope for both consoles)
	mux.Handle("GET /api/admin/events", sysOnly(http.HandlerFunc(handleGlobalEventList)))
	mux.Handle("POST /api/admin/events", sysOnly(http.HandlerFunc(handleGlobalEventCreate)))
	mux.Handle("PUT /api/admin/events/{id}", sysOnly(http.HandlerFunc(handleGlobalEventUpdate)))
	mux.Handle("DELETE /api/admin/events/{id}", sysOnly(http.HandlerFunc(handleGlobalEventDelete)))
	mux.Handle("GET /api/admin/events/export", sysOnly(http.HandlerFunc(handleGlobalEventExport)))
	mux.Handle("GET /api/org/events", consoleRoles(http.HandlerFunc(handleOrgEventList)))
	mux.Handle("POST /api/org/events", consoleRoles(http.HandlerFunc(handleOrgEventCreate)))
	mux.Handle("PUT /api/org/events/{id}", consoleRoles(http.HandlerFunc(handleOrgEventUpdate)))
	mux.Handle("DELETE /api/org/events/{id}", consoleRoles(http.HandlerFunc(handleOrgEventDelete)))

	// Event registration is open to any authenticated member
	mux.Handle("POST /api/events/{id}/register", middleware.RequireAuth(http.HandlerFunc(handleEventRegister)))

	// System console: courses
	mux.Handle("GET /api/admin/courses", sysOnly(http.HandlerFunc(handleCourseList)))
	mux.Handle("POST /api/admin/courses", sysOnly(http.HandlerFunc(handleCourseCreate)))
	mux.Handle("PUT /api/admin/courses/{id}", sysOnly(http.HandlerFunc(handleCourseUpdate)))
	mux.Handle("POST /api/admin/courses/{id}/toggle", sysOnly(http.HandlerFunc(handleCourseToggle)))
	mux.Handle("DELETE /api/admin/courses/{id}", sysOnly(http.HandlerFunc(handleCourseDelete)))
	mux.Handle("GET /api/admin/courses/export", sysOnly(http.HandlerFunc(handleCourseExport)))

	// Practice (member and personal dashboards)
	mux.Handle("GET /api/me", middleware.RequireAuth(http.HandlerFunc(handleMe)))
	mux.Handle("GET /api/me/sessions", practiceRoles(http.HandlerFunc(handleMySessions)))
	mux.Handle("POST /api/practice/sessions", practiceRoles(http.HandlerFunc(handlePracticeRecord)))
	mux.Handle("GET /api/me/sessions/export", practiceRoles(http.HandlerFunc(handleMySessionsExport)))
	mux.Handle("POST /api/practice/opening-statement", practiceRoles(http.HandlerFunc(handleOpeningStatement)))
	mux.Handle("POST /api/practice/interview-question", practiceRoles(http.HandlerFunc(handleInterviewQuestion)))

	// Perf snapshot for the system console
	mux.Handle("GET /api/admin/perf", sysOnly(http.HandlerFunc(handlePerfSnapshot)))
}

// handlePerfSnapshot returns request/query timing percentiles for the last hour.
func handlePerfSnapshot(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	snap := perfCollector.Snapshot(timeNow().Add(-time.Hour), 10)
	writeJSON(w, http.StatusOK, snap)
}
