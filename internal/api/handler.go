// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/asd-screening/backend/internal/domain/assessment"
	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/service"
	"github.com/asd-screening/backend/internal/store"
)

// maxBodyBytes bounds request bodies; a questionnaire is tiny.
const maxBodyBytes = 64 << 10

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	assessments *service.AssessmentService
	logger      *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(assessments *service.AssessmentService, logger *slog.Logger) *Handler {
	return &Handler{
		assessments: assessments,
		logger:      logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validatable is implemented by every request body.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes a JSON body into req and validates it, writing a
// 400 on failure. Returns false if the caller should return.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req validatable) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs[i] = fe.Field() + " is required"
		case "datetime":
			msgs[i] = fe.Field() + " must be formatted as " + fe.Param()
		default:
			msgs[i] = fe.Field() + " failed " + fe.Tag() + " validation"
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// handleError maps domain and store errors onto HTTP statuses. Returns true
// if an error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error, entity string) bool {
	if err == nil {
		return false
	}

	var verr *screening.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, assessment.ErrInvalidIdentity):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
