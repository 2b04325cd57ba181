// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Assessments
	mux.HandleFunc("POST /assessments", h.createAssessment)
	mux.HandleFunc("GET /assessments", h.listAssessments)
	mux.HandleFunc("GET /assessments/{assessmentID}", h.getAssessment)
	mux.HandleFunc("DELETE /assessments", h.deleteAssessments)

	// Calculation
	mux.HandleFunc("POST /trace", h.traceScores)

	// Catalogs
	mux.HandleFunc("GET /criteria", h.listCriteria)
	mux.HandleFunc("GET /programs", h.listPrograms)
}
