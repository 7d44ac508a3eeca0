package web

import (
	"errors"
	"net/http"

	"parley/internal/adapters/storage/collection"
	orgStore "parley/internal/adapters/storage/organization"
	"parley/internal/application/projections"
	"parley/internal/domain/export"
	"parley/internal/domain/organization"
)

// handleOrgList handles GET /api/admin/orgs with optional q and status filters.
func handleOrgList(w http.ResponseWriter, r *http.Request) {
	filter := orgStore.ListFilter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	}
	orgs, err := stores.OrganizationStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

// handleOrgCreate handles POST /api/admin/orgs.
func handleOrgCreate(w http.ResponseWriter, r *http.Request) {
	var org organization.Organization
	if err := strictDecode(r, &org); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if org.Status == "" {
		org.Status = organization.StatusActive
	}
	if err := org.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := stores.OrganizationStore.Create(r.Context(), org)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleOrgUpdate handles PUT /api/admin/orgs/{id}.
// A stale concurrent edit surfaces as 409.
func handleOrgUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var org organization.Organization
	if err := strictDecode(r, &org); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	org.ID = id
	if err := org.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := stores.OrganizationStore.Update(r.Context(), org)
	switch {
	case errors.Is(err, orgStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, collection.ErrConflict):
		http.Error(w, "organization was modified concurrently, reload and retry", http.StatusConflict)
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

// handleOrgToggle handles POST /api/admin/orgs/{id}/toggle.
func handleOrgToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	toggled, err := stores.OrganizationStore.ToggleStatus(r.Context(), id)
	switch {
	case errors.Is(err, orgStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, toggled)
	}
}

// handleOrgDelete handles DELETE /api/admin/orgs/{id}?confirm=true.
// Deletion needs the explicit confirm parameter; member practice history
// is never cascaded.
func handleOrgDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "deletion requires confirm=true", http.StatusBadRequest)
		return
	}
	err := stores.OrganizationStore.Delete(r.Context(), id)
	switch {
	case errors.Is(err, orgStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		internalError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleOrgExport handles GET /api/admin/orgs/export: the full collection as CSV.
func handleOrgExport(w http.ResponseWriter, r *http.Request) {
	orgs, err := stores.OrganizationStore.List(r.Context(), orgStore.ListFilter{})
	if err != nil {
		internalError(w, err)
		return
	}
	data, err := export.OrganizationsCSV(orgs)
	if err != nil {
		internalError(w, err)
		return
	}
	writeCSVResponse(w, "organizations.csv", data)
}

// handleOrgSeatUsage handles GET /api/admin/orgs/seats: the seat-usage
// reconciliation report.
func handleOrgSeatUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := projections.ComputeOrgSeatUsage(r.Context(), stores.OrganizationStore, stores.MemberStore)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

// writeCSVResponse writes a CSV payload as a file download.
func writeCSVResponse(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	w.Write(data)
}
