package web

import (
	"errors"
	"net/http"

	"parley/internal/adapters/genai"
	"parley/internal/adapters/http/middleware"
	memberStore "parley/internal/adapters/storage/member"
	practiceStore "parley/internal/adapters/storage/practice"
	"parley/internal/application/orchestrators"
	"parley/internal/domain/export"
	"parley/internal/domain/practice"
)

// handleMySessions handles GET /api/me/sessions: the caller's practice history.
func handleMySessions(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	list, err := stores.PracticeStore.List(r.Context(), practiceStore.ListFilter{
		MemberID: sess.MemberID,
		Type:     r.URL.Query().Get("type"),
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handlePracticeRecord handles POST /api/practice/sessions.
// Records a completed session for the caller and folds the result into
// their aggregate stats.
func handlePracticeRecord(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var s practice.Session
	if err := strictDecode(r, &s); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s.MemberID = sess.MemberID

	result, err := orchestrators.ExecuteRecordPractice(r.Context(), orchestrators.RecordPracticeInput{Session: s},
		orchestrators.RecordPracticeDeps{
			MemberStore:   stores.MemberStore,
			PracticeStore: stores.PracticeStore,
		})
	switch {
	case errors.Is(err, memberStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		writeJSON(w, http.StatusCreated, map[string]any{
			"session": result.Session,
			"member":  result.Member,
		})
	}
}

// handleMySessionsExport handles GET /api/me/sessions/export.
func handleMySessionsExport(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	list, err := stores.PracticeStore.List(r.Context(), practiceStore.ListFilter{MemberID: sess.MemberID})
	if err != nil {
		internalError(w, err)
		return
	}
	data, err := export.SessionsCSV(list)
	if err != nil {
		internalError(w, err)
		return
	}
	writeCSVResponse(w, "practice_sessions.csv", data)
}

// handleOpeningStatement handles POST /api/practice/opening-statement.
// Generation failures degrade to the fixed fallback; this endpoint never 500s
// on generator trouble.
func handleOpeningStatement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic      string `json:"topic"`
		Difficulty string `json:"difficulty"`
		Role       string `json:"role"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	text, _ := textGen.OpeningStatement(r.Context(), req.Topic, genai.DebateConfig{
		Difficulty: req.Difficulty,
		Role:       req.Role,
	})
	writeJSON(w, http.StatusOK, map[string]string{"statement": text})
}

// handleInterviewQuestion handles POST /api/practice/interview-question.
func handleInterviewQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JobRole string `json:"job_role"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	text, _ := textGen.InterviewQuestion(r.Context(), req.JobRole)
	writeJSON(w, http.StatusOK, map[string]string{"question": text})
}
