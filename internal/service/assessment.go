// internal/service/assessment.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asd-screening/backend/internal/classifier"
	"github.com/asd-screening/backend/internal/domain/assessment"
	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/store"
)

// ForestSource hands out the trained recommendation model.
// *classifier.Model is the production implementation.
type ForestSource interface {
	EnsureLoaded(ctx context.Context) (*classifier.Forest, error)
}

// Submission is one questionnaire as received from a caller. Answer values
// may be booleans, 0/1 numbers or "0"/"1"/"true"/"false" strings.
type Submission struct {
	Name        string
	DateOfBirth string
	Answers     map[string]any
}

// Report is a record together with the calculation behind its score.
type Report struct {
	Record *assessment.Record
	Result screening.Result
}

// AssessmentService runs the screening pipeline and manages stored records.
type AssessmentService struct {
	store    store.Store
	criteria *screening.Catalog
	programs *program.Catalog
	model    ForestSource
	logger   *slog.Logger
}

// NewAssessmentService creates an AssessmentService.
func NewAssessmentService(
	s store.Store,
	criteria *screening.Catalog,
	programs *program.Catalog,
	model ForestSource,
	logger *slog.Logger,
) *AssessmentService {
	return &AssessmentService{
		store:    s,
		criteria: criteria,
		programs: programs,
		model:    model,
		logger:   logger,
	}
}

// Evaluate runs aggregate -> score -> classify without persisting anything.
// Either a complete report is returned or an error; never a partial one.
func (as *AssessmentService) Evaluate(ctx context.Context, sub Submission) (*Report, error) {
	identity, err := assessment.NewIdentity(sub.Name, sub.DateOfBirth)
	if err != nil {
		return nil, err
	}

	answers, err := as.criteria.ParseAnswers(sub.Answers)
	if err != nil {
		return nil, err
	}

	tally := as.criteria.Aggregate(answers)
	result := as.criteria.Score(tally)

	forest, err := as.model.EnsureLoaded(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recommendation model: %w", err)
	}
	rec := classifier.Recommend(forest, tally.Scores)

	return &Report{
		Record: &assessment.Record{
			Identity:   identity,
			Scores:     tally.Scores,
			Answers:    answers,
			Score:      result.Score,
			Tier:       result.Tier,
			Program:    rec.Label,
			Details:    as.programs.Lookup(rec.Label),
			Prominent:  as.criteria.Prominent(tally.Scores),
			Confidence: rec.Confidence,
		},
		Result: result,
	}, nil
}

// Assess evaluates a submission and stores it, replacing any earlier record
// for the same child.
func (as *AssessmentService) Assess(ctx context.Context, sub Submission) (*Report, error) {
	report, err := as.Evaluate(ctx, sub)
	if err != nil {
		return nil, err
	}

	if err := as.store.Upsert(ctx, report.Record); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}

	as.logger.InfoContext(ctx, "assessment saved",
		"record_id", report.Record.ID,
		"score", report.Record.Score,
		"tier", report.Record.Tier,
		"program", report.Record.Program,
	)
	return report, nil
}

// Get loads a stored record and rebuilds its calculation trace from the
// persisted scores.
func (as *AssessmentService) Get(ctx context.Context, id int64) (*Report, error) {
	rec, err := as.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Report{Record: rec, Result: as.criteria.Reconstruct(rec.Scores)}, nil
}

// History lists stored records, most recently updated first.
func (as *AssessmentService) History(ctx context.Context) ([]assessment.Summary, error) {
	records, err := as.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]assessment.Summary, len(records))
	for i, r := range records {
		out[i] = r.Summary()
	}
	return out, nil
}

// Delete removes every record for a child.
func (as *AssessmentService) Delete(ctx context.Context, name, dob string) (int64, error) {
	identity, err := assessment.NewIdentity(name, dob)
	if err != nil {
		return 0, err
	}

	n, err := as.store.DeleteByIdentity(ctx, identity)
	if err != nil {
		return 0, err
	}
	as.logger.InfoContext(ctx, "assessments deleted", "count", n)
	return n, nil
}

// Trace rebuilds the scorer output for an arbitrary score vector.
func (as *AssessmentService) Trace(s screening.Scores) screening.Result {
	return as.criteria.Reconstruct(s)
}

// Criteria returns the criterion catalog in evaluation order.
func (as *AssessmentService) Criteria() []screening.Criterion {
	return as.criteria.Criteria()
}

// Programs returns the program catalog.
func (as *AssessmentService) Programs() []program.Program {
	return as.programs.Programs()
}
