package web

import (
	"errors"
	"net/http"
	"strconv"

	"parley/internal/adapters/http/middleware"
	"parley/internal/adapters/storage/collection"
	memberStore "parley/internal/adapters/storage/member"
	"parley/internal/application/orchestrators"
	"parley/internal/domain/account"
	"parley/internal/domain/export"
	"parley/internal/domain/member"
)

// memberScopeOrg resolves which organization a console request operates on.
// An orgadmin is pinned to their own organization; a sysadmin may pass
// org_id to narrow, or omit it to see everything.
func memberScopeOrg(r *http.Request, sess middleware.Session) int64 {
	if sess.Role == account.RoleOrgAdmin {
		return sess.OrgID
	}
	if v := r.URL.Query().Get("org_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	return 0
}

// handleMemberList handles GET /api/admin/members with q, status and org scoping.
func handleMemberList(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	filter := memberStore.ListFilter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
		OrgID:  memberScopeOrg(r, sess),
	}
	members, err := stores.MemberStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// handleMemberCreate handles POST /api/admin/members.
// An orgadmin always creates into their own organization.
func handleMemberCreate(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var m member.Member
	if err := strictDecode(r, &m); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if sess.Role == account.RoleOrgAdmin {
		m.OrgID = sess.OrgID
	}
	if m.Status == "" {
		m.Status = member.StatusActive
	}
	if err := m.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := stores.MemberStore.Create(r.Context(), m)
	switch {
	case errors.Is(err, memberStore.ErrDuplicateEmail):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusCreated, created)
	}
}

// handleMemberUpdate handles PUT /api/admin/members/{id}.
func handleMemberUpdate(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var m member.Member
	if err := strictDecode(r, &m); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	m.ID = id
	if !memberInScope(r, sess, id, w) {
		return
	}
	if sess.Role == account.RoleOrgAdmin {
		m.OrgID = sess.OrgID
	}
	if err := m.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := stores.MemberStore.Update(r.Context(), m)
	switch {
	case errors.Is(err, memberStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, collection.ErrConflict):
		http.Error(w, "member was modified concurrently, reload and retry", http.StatusConflict)
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

// handleMemberToggle handles POST /api/admin/members/{id}/toggle.
// Disabling blocks future logins but never touches history.
func handleMemberToggle(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if !memberInScope(r, sess, id, w) {
		return
	}
	toggled, err := stores.MemberStore.ToggleStatus(r.Context(), id)
	switch {
	case errors.Is(err, memberStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, toggled)
	}
}

// handleMemberDelete handles DELETE /api/admin/members/{id}?confirm=true.
// Practice sessions referencing the member are kept.
func handleMemberDelete(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "deletion requires confirm=true", http.StatusBadRequest)
		return
	}
	if !memberInScope(r, sess, id, w) {
		return
	}
	err := stores.MemberStore.Delete(r.Context(), id)
	switch {
	case errors.Is(err, memberStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		internalError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// memberInScope verifies an orgadmin only touches members of their own
// organization. Writes the error response itself and reports the verdict.
func memberInScope(r *http.Request, sess middleware.Session, id int64, w http.ResponseWriter) bool {
	if sess.Role != account.RoleOrgAdmin {
		return true
	}
	existing, err := stores.MemberStore.GetByID(r.Context(), id)
	if errors.Is(err, memberStore.ErrNotFound) {
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

// handleMemberImport handles POST /api/admin/members/import.
// Accepts a multipart upload with a `file` CSV field (header name,email,tier).
// The response reports created, skipped and rejected rows, plus the
// temporary password issued to created accounts.
func handleMemberImport(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	orgID := memberScopeOrg(r, sess)
	if orgID == 0 {
		http.Error(w, "org_id is required", http.StatusBadRequest)
		return
	}

	const maxUpload = 2 << 20 // 2 MB
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "request too large or malformed", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tempPassword := generateID()
	result, err := orchestrators.ExecuteImportMembers(r.Context(), orchestrators.ImportMembersInput{
		OrgID:  orgID,
		Reader: file,
	}, orchestrators.ImportMembersDeps{
		MemberStore:  stores.MemberStore,
		AccountStore: stores.AccountStore,
		TempPassword: tempPassword,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"created":       result.Created,
		"skipped":       result.Skipped,
		"rejected":      result.Rejected,
		"temp_password": tempPassword,
	})
}

// handleMemberExport handles GET /api/admin/members/export.
func handleMemberExport(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	members, err := stores.MemberStore.List(r.Context(), memberStore.ListFilter{OrgID: memberScopeOrg(r, sess)})
	if err != nil {
		internalError(w, err)
		return
	}
	data, err := export.MembersCSV(members)
	if err != nil {
		internalError(w, err)
		return
	}
	writeCSVResponse(w, "members.csv", data)
}
