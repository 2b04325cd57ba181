package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/asd-screening/backend/internal/classifier"
	"github.com/asd-screening/backend/internal/domain/assessment"
	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/service"
	"github.com/asd-screening/backend/internal/store"
)

var (
	forestOnce sync.Once
	forest     *classifier.Forest
	forestErr  error
)

type fixedForest struct{ f *classifier.Forest }

func (s fixedForest) EnsureLoaded(context.Context) (*classifier.Forest, error) { return s.f, nil }

type brokenForest struct{}

func (brokenForest) EnsureLoaded(context.Context) (*classifier.Forest, error) {
	return nil, errors.New("disk on fire")
}

func trainedForest(t *testing.T) *classifier.Forest {
	t.Helper()
	forestOnce.Do(func() {
		l, err := classifier.NewLabeler(program.Default())
		if err != nil {
			forestErr = err
			return
		}
		forest, forestErr = classifier.Train(classifier.DefaultTrainConfig(), l)
	})
	if forestErr != nil {
		t.Fatalf("train forest: %v", forestErr)
	}
	return forest
}

func newService(t *testing.T, src service.ForestSource) (*service.AssessmentService, *store.SQLiteStore) {
	t.Helper()
	db, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewAssessmentService(db, screening.Default(), program.Default(), src, logger), db
}

func answers(yes ...string) map[string]any {
	m := make(map[string]any, 10)
	for _, q := range screening.Default().QuestionIDs() {
		m[q] = "0"
	}
	for _, q := range yes {
		m[q] = "1"
	}
	return m
}

func TestAssess_AllNo(t *testing.T) {
	svc, _ := newService(t, fixedForest{trainedForest(t)})

	report, err := svc.Assess(t.Context(), service.Submission{
		Name: "Budi", DateOfBirth: "2018-04-12", Answers: answers(),
	})
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	rec := report.Record
	if rec.Scores != (screening.Scores{}) {
		t.Errorf("expected all-zero scores, got %v", rec.Scores)
	}
	if rec.Score != 0 || rec.Tier != screening.TierLow {
		t.Errorf("expected 0/Low, got %v/%s", rec.Score, rec.Tier)
	}
	if rec.Program != program.Default().DefaultLabel() {
		t.Errorf("expected regular support, got %q", rec.Program)
	}
	if rec.Details.Code != program.DefaultCode {
		t.Errorf("expected default program details, got %+v", rec.Details)
	}
	if rec.Prominent.Code != screening.C1 || rec.Prominent.Value != 0 {
		t.Errorf("unexpected prominent criterion %+v", rec.Prominent)
	}
	if len(rec.Confidence) != 6 {
		t.Errorf("expected 6 confidence entries, got %d", len(rec.Confidence))
	}
	if rec.ID == 0 {
		t.Error("expected record to be persisted")
	}
}

func TestAssess_SensoryOnly(t *testing.T) {
	svc, _ := newService(t, fixedForest{trainedForest(t)})

	report, err := svc.Assess(t.Context(), service.Submission{
		Name: "Sari", DateOfBirth: "2019-02-01", Answers: answers("q1", "q3", "q5"),
	})
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	if report.Record.Score != 0.435 || report.Record.Tier != screening.TierMedium {
		t.Errorf("expected 0.435/Medium, got %v/%s", report.Record.Score, report.Record.Tier)
	}
	if report.Result.Trace.Rows[0].Raw != 3 {
		t.Errorf("expected C1 raw count 3, got %d", report.Result.Trace.Rows[0].Raw)
	}
	if report.Record.Prominent.Code != screening.C1 || report.Record.Prominent.Value != 1 {
		t.Errorf("unexpected prominent criterion %+v", report.Record.Prominent)
	}
}

func TestAssess_InvalidAnswerStoresNothing(t *testing.T) {
	svc, db := newService(t, fixedForest{trainedForest(t)})

	a := answers("q1")
	a["q4"] = "maybe"
	_, err := svc.Assess(t.Context(), service.Submission{Name: "Budi", DateOfBirth: "2018-04-12", Answers: a})

	var verr *screening.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	all, _ := db.List(t.Context())
	if len(all) != 0 {
		t.Errorf("expected nothing stored, got %d records", len(all))
	}
}

func TestAssess_InvalidIdentity(t *testing.T) {
	svc, _ := newService(t, fixedForest{trainedForest(t)})

	_, err := svc.Assess(t.Context(), service.Submission{Name: "", DateOfBirth: "2018-04-12", Answers: answers()})
	if !errors.Is(err, assessment.ErrInvalidIdentity) {
		t.Errorf("expected ErrInvalidIdentity, got %v", err)
	}
}

func TestAssess_ModelFailureStoresNothing(t *testing.T) {
	svc, db := newService(t, brokenForest{})

	if _, err := svc.Assess(t.Context(), service.Submission{Name: "Budi", DateOfBirth: "2018-04-12", Answers: answers()}); err == nil {
		t.Fatal("expected error")
	}

	all, _ := db.List(t.Context())
	if len(all) != 0 {
		t.Errorf("expected nothing stored, got %d records", len(all))
	}
}

func TestAssess_ResubmissionReplacesRecord(t *testing.T) {
	svc, _ := newService(t, fixedForest{trainedForest(t)})
	ctx := t.Context()

	first, err := svc.Assess(ctx, service.Submission{Name: "Budi", DateOfBirth: "2018-04-12", Answers: answers()})
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	second, err := svc.Assess(ctx, service.Submission{Name: "Budi", DateOfBirth: "2018-04-12", Answers: answers("q10", "q8")})
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	if second.Record.ID != first.Record.ID {
		t.Errorf("expected ID %d to be kept, got %d", first.Record.ID, second.Record.ID)
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 record, got %d", len(history))
	}
	if history[0].Score != second.Record.Score {
		t.Errorf("expected latest score %v, got %v", second.Record.Score, history[0].Score)
	}
}

func TestGet_ReconstructsTrace(t *testing.T) {
	svc, _ := newService(t, fixedForest{trainedForest(t)})
	ctx := t.Context()

	saved, err := svc.Assess(ctx, service.Submission{
		Name: "Budi", DateOfBirth: "2018-04-12", Answers: answers("q1", "q2", "q4", "q6", "q8"),
	})
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	got, err := svc.Get(ctx, saved.Record.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.Result.Score != saved.Record.Score || got.Result.Tier != saved.Record.Tier {
		t.Errorf("expected %v/%s, got %v/%s", saved.Record.Score, saved.Record.Tier, got.Result.Score, got.Result.Tier)
	}
	if got.Result.Trace.Totals != saved.Result.Trace.Totals {
		t.Errorf("totals differ: %+v vs %+v", got.Result.Trace.Totals, saved.Result.Trace.Totals)
	}
	for i, row := range saved.Result.Trace.Rows {
		if got.Result.Trace.Rows[i] != row {
			t.Errorf("row %d differs: %+v vs %+v", i, got.Result.Trace.Rows[i], row)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newService(t, fixedForest{trainedForest(t)})

	if _, err := svc.Get(t.Context(), 99); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newService(t, fixedForest{trainedForest(t)})
	ctx := t.Context()

	if _, err := svc.Assess(ctx, service.Submission{Name: "Budi", DateOfBirth: "2018-04-12", Answers: answers()}); err != nil {
		t.Fatalf("Assess: %v", err)
	}

	n, err := svc.Delete(ctx, "Budi", "2018-04-12")
	if err != nil || n != 1 {
		t.Fatalf("expected 1 deleted, got %d (%v)", n, err)
	}
	if _, err := svc.Delete(ctx, "Budi", "2018-04-12"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
