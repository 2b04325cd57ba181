// internal/api/assessment_handler.go
package api

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateAssessmentRequest struct {
	Name        string         `json:"name" validate:"required,max=200" example:"Budi"`
	DateOfBirth string         `json:"date_of_birth" validate:"required,datetime=2006-01-02" example:"2018-04-12"`
	Answers     map[string]any `json:"answers"`
}

func (r *CreateAssessmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	return validationMessage(validate.Struct(r))
}

type AssessmentResponse struct {
	ID             int64                `json:"id" example:"1"`
	Name           string               `json:"name" example:"Budi"`
	DateOfBirth    string               `json:"date_of_birth" example:"2018-04-12"`
	Score          float64              `json:"score" example:"0.435"`
	Tier           screening.Tier       `json:"tier" example:"Medium"`
	Program        string               `json:"program" example:"Terapi Integrasi Sensorik"`
	ProgramDetails program.Details      `json:"program_details"`
	Prominent      screening.Prominent  `json:"prominent"`
	Confidence     []program.Confidence `json:"confidence"`
	Scores         screening.Scores     `json:"scores" swaggertype:"object"`
	Answers        screening.Answers    `json:"answers"`
	Trace          screening.Trace      `json:"trace"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func newAssessmentResponse(rep *service.Report) AssessmentResponse {
	rec := rep.Record
	return AssessmentResponse{
		ID:             rec.ID,
		Name:           rec.Name,
		DateOfBirth:    rec.DateOfBirth,
		Score:          rec.Score,
		Tier:           rec.Tier,
		Program:        rec.Program,
		ProgramDetails: rec.Details,
		Prominent:      rec.Prominent,
		Confidence:     rec.Confidence,
		Scores:         rec.Scores,
		Answers:        rec.Answers,
		Trace:          rep.Result.Trace,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createAssessment scores a questionnaire and stores the outcome.
// @Summary      Submit a questionnaire
// @Description  Scores ten yes/no answers, recommends a program and stores the result. A resubmission for the same name and date of birth replaces the earlier record. Accepts JSON or form fields (q1..q10 = 0/1).
// @Tags         Assessments
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body      CreateAssessmentRequest  true  "Questionnaire"
// @Success      201   {object}  AssessmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /assessments [post]
func (h *Handler) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req CreateAssessmentRequest
	if isForm(r) {
		if !decodeForm(w, r, &req) {
			return
		}
	} else if !decodeAndValidate(w, r, &req) {
		return
	}

	report, err := h.assessments.Assess(r.Context(), service.Submission{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Answers:     req.Answers,
	})
	if h.handleError(w, r, err, "assessment") {
		return
	}

	respondJSON(w, http.StatusCreated, newAssessmentResponse(report))
}

// listAssessments returns the stored history.
// @Summary      List assessments
// @Description  Returns every stored assessment, most recently updated first.
// @Tags         Assessments
// @Produce      json
// @Success      200  {array}   assessment.Summary
// @Failure      500  {object}  errorResponse
// @Router       /assessments [get]
func (h *Handler) listAssessments(w http.ResponseWriter, r *http.Request) {
	history, err := h.assessments.History(r.Context())
	if h.handleError(w, r, err, "assessment") {
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// getAssessment returns one record with its calculation trace.
// @Summary      Get an assessment
// @Description  Returns a stored assessment with the calculation trace rebuilt from its scores.
// @Tags         Assessments
// @Produce      json
// @Param        assessmentID  path      int  true  "Assessment ID"
// @Success      200           {object}  AssessmentResponse
// @Failure      400           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /assessments/{assessmentID} [get]
func (h *Handler) getAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("assessmentID"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	report, err := h.assessments.Get(r.Context(), id)
	if h.handleError(w, r, err, "assessment") {
		return
	}
	respondJSON(w, http.StatusOK, newAssessmentResponse(report))
}

// deleteAssessments removes the record of one child.
// @Summary      Delete an assessment
// @Description  Deletes the stored assessment for a name and date of birth.
// @Tags         Assessments
// @Param        name           query  string  true  "Child name"
// @Param        date_of_birth  query  string  true  "Date of birth (YYYY-MM-DD)"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /assessments [delete]
func (h *Handler) deleteAssessments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name, dob := q.Get("name"), q.Get("date_of_birth")
	if name == "" || dob == "" {
		respondError(w, http.StatusBadRequest, "name and date_of_birth are required")
		return
	}

	n, err := h.assessments.Delete(r.Context(), name, dob)
	if h.handleError(w, r, err, "assessment") {
		return
	}
	if n == 0 {
		respondError(w, http.StatusNotFound, "assessment not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Form decoding ───────────────────────────────────────────────────────────

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

// decodeForm reads a browser form submission: name (or student_name),
// date_of_birth (or dob) and one field per question.
func decodeForm(w http.ResponseWriter, r *http.Request, req *CreateAssessmentRequest) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && err != http.ErrNotMultipart {
		respondError(w, http.StatusBadRequest, "invalid form: "+err.Error())
		return false
	}

	req.Name = firstNonEmpty(r.PostForm.Get("name"), r.PostForm.Get("student_name"))
	req.DateOfBirth = firstNonEmpty(r.PostForm.Get("date_of_birth"), r.PostForm.Get("dob"))
	req.Answers = make(map[string]any)
	for key, values := range r.PostForm {
		if strings.HasPrefix(key, "q") && len(values) > 0 {
			req.Answers[key] = values[0]
		}
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
