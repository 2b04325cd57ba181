package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/asd-screening/backend/internal/api"
	"github.com/asd-screening/backend/internal/classifier"
	"github.com/asd-screening/backend/internal/domain/assessment"
	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/service"
	"github.com/asd-screening/backend/internal/store"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()

	db, err := store.NewSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	programs := program.Default()
	labeler, err := classifier.NewLabeler(programs)
	if err != nil {
		t.Fatalf("NewLabeler: %v", err)
	}
	cfg := classifier.DefaultTrainConfig()
	cfg.Trees = 10
	cfg.Samples = 300
	model := classifier.NewModel(filepath.Join(dir, "model.json"), cfg, labeler, logger)

	svc := service.NewAssessmentService(db, screening.Default(), programs, model, logger)
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(svc, logger))
	return api.Logging(logger)(api.CORS(mux))
}

func do(t *testing.T, h http.Handler, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, h http.Handler, target string, v any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return do(t, h, http.MethodPost, target, "application/json", bytes.NewReader(b))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestCreateAssessment_JSON(t *testing.T) {
	h := newServer(t)

	rec := postJSON(t, h, "/assessments", map[string]any{
		"name":          "Budi",
		"date_of_birth": "2018-04-12",
		"answers":       map[string]any{"q1": 1, "q3": true, "q5": "1", "q2": 0},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	got := decode[api.AssessmentResponse](t, rec)
	if got.ID == 0 {
		t.Error("expected an id")
	}
	if got.Score != 0.435 || got.Tier != screening.TierMedium {
		t.Errorf("expected 0.435 Medium, got %v %s", got.Score, got.Tier)
	}
	if got.Prominent.Code != screening.C1 {
		t.Errorf("expected prominent C1, got %s", got.Prominent.Code)
	}
	if len(got.Trace.Rows) != screening.NumCriteria {
		t.Errorf("expected %d trace rows, got %d", screening.NumCriteria, len(got.Trace.Rows))
	}
	if len(got.Confidence) == 0 {
		t.Error("expected a confidence distribution")
	}
	if got.Program == "" {
		t.Error("expected a recommended program")
	}
}

func TestCreateAssessment_Form(t *testing.T) {
	h := newServer(t)

	form := url.Values{
		"student_name":  {"Sari"},
		"date_of_birth": {"2019-01-30"},
		"q1":            {"1"},
		"q3":            {"1"},
		"q5":            {"1"},
		"q7":            {"1"},
		"q9":            {"1"},
	}
	rec := do(t, h, http.MethodPost, "/assessments", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	got := decode[api.AssessmentResponse](t, rec)
	if got.Name != "Sari" {
		t.Errorf("expected name Sari, got %q", got.Name)
	}
	if len(got.Answers) != 5 {
		t.Errorf("expected 5 answers, got %d", len(got.Answers))
	}
}

func TestCreateAssessment_BadRequests(t *testing.T) {
	h := newServer(t)

	tests := []struct {
		name string
		body any
		want string
	}{
		{"missing name", map[string]any{"date_of_birth": "2018-04-12"}, "name is required"},
		{"bad date", map[string]any{"name": "A", "date_of_birth": "12/04/2018"}, "date_of_birth"},
		{"future date", map[string]any{"name": "A", "date_of_birth": "2999-01-01"}, "future"},
		{"bad answer", map[string]any{"name": "A", "date_of_birth": "2018-04-12", "answers": map[string]any{"q1": 2}}, "q1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/assessments", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("expected error mentioning %q, got %s", tt.want, rec.Body.String())
			}
		})
	}

	rec := do(t, h, http.MethodPost, "/assessments", "application/json", strings.NewReader("{"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed json, got %d", rec.Code)
	}

	history := decode[[]assessment.Summary](t, do(t, h, http.MethodGet, "/assessments", "", nil))
	if len(history) != 0 {
		t.Errorf("expected nothing stored, got %d records", len(history))
	}
}

func TestAssessmentLifecycle(t *testing.T) {
	h := newServer(t)

	first := decode[api.AssessmentResponse](t, postJSON(t, h, "/assessments", map[string]any{
		"name": "Budi", "date_of_birth": "2018-04-12", "answers": map[string]any{"q1": 1},
	}))
	second := decode[api.AssessmentResponse](t, postJSON(t, h, "/assessments", map[string]any{
		"name": "Budi", "date_of_birth": "2018-04-12", "answers": map[string]any{"q1": 1, "q2": 1},
	}))
	if first.ID != second.ID {
		t.Errorf("expected resubmission to keep id %d, got %d", first.ID, second.ID)
	}

	history := decode[[]assessment.Summary](t, do(t, h, http.MethodGet, "/assessments", "", nil))
	if len(history) != 1 {
		t.Fatalf("expected 1 record, got %d", len(history))
	}
	if history[0].Score != second.Score {
		t.Errorf("expected latest score %v, got %v", second.Score, history[0].Score)
	}

	rec := do(t, h, http.MethodGet, "/assessments/"+itoa(second.ID), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := decode[api.AssessmentResponse](t, rec)
	if got.Score != second.Score || got.Tier != second.Tier {
		t.Errorf("expected reconstructed %v %s, got %v %s", second.Score, second.Tier, got.Score, got.Tier)
	}
	if got.Trace.Rows[0].Raw != 1 || got.Trace.Rows[2].Raw != 1 {
		t.Errorf("expected raw C1=1 C3=1, got %+v", got.Trace.Rows)
	}

	q := url.Values{"name": {"Budi"}, "date_of_birth": {"2018-04-12"}}
	rec = do(t, h, http.MethodDelete, "/assessments?"+q.Encode(), "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/assessments?"+q.Encode(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/assessments/"+itoa(second.ID), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestGetAssessment_InvalidID(t *testing.T) {
	h := newServer(t)
	rec := do(t, h, http.MethodGet, "/assessments/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteAssessments_MissingParams(t *testing.T) {
	h := newServer(t)
	rec := do(t, h, http.MethodDelete, "/assessments?name=Budi", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestTrace(t *testing.T) {
	h := newServer(t)

	rec := postJSON(t, h, "/trace", map[string]any{
		"scores": map[string]float64{"C1": 1},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[screening.Result](t, rec)
	if got.Score != 0.435 || got.Tier != screening.TierMedium {
		t.Errorf("expected 0.435 Medium, got %v %s", got.Score, got.Tier)
	}

	rec = postJSON(t, h, "/trace", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without scores, got %d", rec.Code)
	}
	rec = postJSON(t, h, "/trace", map[string]any{"scores": map[string]float64{"C9": 1}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown criterion, got %d", rec.Code)
	}
}

func TestCatalogs(t *testing.T) {
	h := newServer(t)

	criteria := decode[[]screening.Criterion](t, do(t, h, http.MethodGet, "/criteria", "", nil))
	if len(criteria) != screening.NumCriteria {
		t.Errorf("expected %d criteria, got %d", screening.NumCriteria, len(criteria))
	}

	programs := decode[[]program.Program](t, do(t, h, http.MethodGet, "/programs", "", nil))
	if len(programs) != 6 {
		t.Errorf("expected 6 programs, got %d", len(programs))
	}
}

func TestMiddleware_RequestIDAndCORS(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/criteria", "", nil)
	if rec.Header().Get(api.RequestIDHeader) == "" {
		t.Error("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/criteria", nil)
	req.Header.Set(api.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(api.RequestIDHeader); got != "abc-123" {
		t.Errorf("expected request id to be echoed, got %q", got)
	}

	rec = do(t, h, http.MethodOptions, "/assessments", "", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
