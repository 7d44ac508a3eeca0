package web

import (
	"bytes"
	"errors"
	"net/http"

	courseStore "parley/internal/adapters/storage/course"
	"parley/internal/application/orchestrators"
	"parley/internal/domain/course"
	"parley/internal/domain/inquiry"
)

// catalogCourse is the public shape of a course: the markdown description
// rendered to HTML.
type catalogCourse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Modules         int    `json:"modules"`
	Enrolled        int    `json:"enrolled"`
	DescriptionHTML string `json:"description_html"`
}

func renderCatalogCourse(c course.Course) catalogCourse {
	var buf bytes.Buffer
	html := c.Description
	if err := mdRenderer.Convert([]byte(c.Description), &buf); err == nil {
		html = buf.String()
	}
	return catalogCourse{
		ID:              c.ID,
		Title:           c.Title,
		Modules:         c.Modules,
		Enrolled:        c.Enrolled,
		DescriptionHTML: html,
	}
}

// handleCatalog handles GET /api/catalog: active courses only, for the
// public marketing site.
func handleCatalog(w http.ResponseWriter, r *http.Request) {
	courses, err := stores.CourseStore.List(r.Context(), courseStore.ListFilter{Status: course.StatusActive})
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]catalogCourse, 0, len(courses))
	for _, c := range courses {
		out = append(out, renderCatalogCourse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCatalogCourse handles GET /api/catalog/{id}. Draft courses are not
// visible publicly.
func handleCatalogCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	c, err := stores.CourseStore.GetByID(r.Context(), id)
	if errors.Is(err, courseStore.ErrNotFound) || (err == nil && !c.IsActive()) {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderCatalogCourse(c))
}

// handleInquirySubmit handles POST /api/inquiries from the public contact
// form. The response message is always one of the fixed inquiry strings.
func handleInquirySubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		Organization string `json:"organization"`
		Message      string `json:"message"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSubmitInquiry(r.Context(), orchestrators.SubmitInquiryInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
		Message:      req.Message,
	}, orchestrators.SubmitInquiryDeps{
		InquiryStore:  stores.InquiryStore,
		Sender:        emailSender,
		NotifyAddress: inquiryNotifyAddress,
	})
	if err != nil {
		// Validation failures are 400; storage trouble is 500. Either way
		// the body carries a fixed user-facing message, never the raw error.
		status := http.StatusInternalServerError
		if errors.Is(err, inquiry.ErrEmptyName) || errors.Is(err, inquiry.ErrEmptyEmail) || errors.Is(err, inquiry.ErrInvalidEmail) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
