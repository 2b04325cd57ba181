package api

import (
	"net/http"

	"github.com/asd-screening/backend/internal/domain/screening"
)

type TraceRequest struct {
	Scores *screening.Scores `json:"scores" validate:"required" swaggertype:"object"`
}

func (r *TraceRequest) Validate() error {
	return validationMessage(validate.Struct(r))
}

// traceScores rebuilds the calculation for an arbitrary score vector.
// @Summary      Calculation trace
// @Description  Runs the fuzzy scorer on normalized scores {"C1".."C5"} and returns the score, tier and per-criterion trace. Nothing is stored.
// @Tags         Calculation
// @Accept       json
// @Produce      json
// @Param        body  body      TraceRequest  true  "Normalized scores"
// @Success      200   {object}  screening.Result
// @Failure      400   {object}  errorResponse
// @Router       /trace [post]
func (h *Handler) traceScores(w http.ResponseWriter, r *http.Request) {
	var req TraceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, h.assessments.Trace(*req.Scores))
}

// listCriteria returns the criterion catalog.
// @Summary      List criteria
// @Tags         Catalogs
// @Produce      json
// @Success      200  {array}  screening.Criterion
// @Router       /criteria [get]
func (h *Handler) listCriteria(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.assessments.Criteria())
}

// listPrograms returns the intervention program catalog.
// @Summary      List programs
// @Tags         Catalogs
// @Produce      json
// @Success      200  {array}  program.Program
// @Router       /programs [get]
func (h *Handler) listPrograms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.assessments.Programs())
}
