package web

import (
	"errors"
	"net/http"

	"parley/internal/adapters/storage/collection"
	courseStore "parley/internal/adapters/storage/course"
	"parley/internal/domain/course"
	"parley/internal/domain/export"
)

func handleCourseList(w http.ResponseWriter, r *http.Request) {
	filter := courseStore.ListFilter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	}
	courses, err := stores.CourseStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func handleCourseCreate(w http.ResponseWriter, r *http.Request) {
	var c course.Course
	if err := strictDecode(r, &c); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if c.Status == "" {
		c.Status = course.StatusDraft
	}
	if err := c.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := stores.CourseStore.Create(r.Context(), c)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func handleCourseUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var c course.Course
	if err := strictDecode(r, &c); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	c.ID = id
	if err := c.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := stores.CourseStore.Update(r.Context(), c)
	switch {
	case errors.Is(err, courseStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, collection.ErrConflict):
		http.Error(w, "course was modified concurrently, reload and retry", http.StatusConflict)
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleCourseToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	toggled, err := stores.CourseStore.ToggleStatus(r.Context(), id)
	switch {
	case errors.Is(err, courseStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, toggled)
	}
}

func handleCourseDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "deletion requires confirm=true", http.StatusBadRequest)
		return
	}
	err := stores.CourseStore.Delete(r.Context(), id)
	switch {
	case errors.Is(err, courseStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		internalError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleCourseExport(w http.ResponseWriter, r *http.Request) {
	courses, err := stores.CourseStore.List(r.Context(), courseStore.ListFilter{})
	if err != nil {
		internalError(w, err)
		return
	}
	data, err := export.CoursesCSV(courses)
	if err != nil {
		internalError(w, err)
		return
	}
	writeCSVResponse(w, "courses.csv", data)
}
