// simulation/simulation.go
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/service"
	"github.com/asd-screening/backend/internal/worker"
)

// Evaluator scores a submission without storing it.
type Evaluator interface {
	Evaluate(ctx context.Context, sub service.Submission) (*service.Report, error)
}

// Options control a cohort run.
type Options struct {
	Children    int
	Seed        int64
	YesRate     float64 // probability of answering yes to each question
	Workers     int
	QuestionIDs []string
}

// ProgramCount is one row of the program distribution.
type ProgramCount struct {
	Program string
	Count   int
}

// Summary aggregates the outcomes of a cohort.
type Summary struct {
	Children  int
	Failed    int
	MeanScore float64
	ByTier    map[screening.Tier]int
	Programs  []ProgramCount // most frequent first
}

type outcome struct {
	report *service.Report
	err    error
}

// Run generates a seeded cohort of random questionnaires and evaluates them
// concurrently. The same options always produce the same summary.
func Run(ctx context.Context, ev Evaluator, opts Options) (Summary, error) {
	if opts.Children < 1 {
		return Summary{}, fmt.Errorf("simulation: need at least one child, got %d", opts.Children)
	}
	if opts.YesRate < 0 || opts.YesRate > 1 {
		return Summary{}, fmt.Errorf("simulation: yes rate %v outside [0, 1]", opts.YesRate)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	subs := make([]service.Submission, opts.Children)
	for i := range subs {
		answers := make(map[string]any, len(opts.QuestionIDs))
		for _, q := range opts.QuestionIDs {
			answers[q] = rng.Float64() < opts.YesRate
		}
		subs[i] = service.Submission{
			Name:        fmt.Sprintf("child-%04d", i+1),
			DateOfBirth: "2018-01-01",
			Answers:     answers,
		}
	}

	pool := worker.NewPool[outcome](opts.Workers, len(subs))
	for i, sub := range subs {
		pool.Submit(i, func() outcome {
			rep, err := ev.Evaluate(ctx, sub)
			return outcome{report: rep, err: err}
		})
	}
	pool.Close()

	outcomes := make([]outcome, len(subs))
	for res := range pool.Results() {
		outcomes[res.Index] = res.Output
	}

	sum := Summary{Children: opts.Children, ByTier: make(map[screening.Tier]int)}
	programs := make(map[string]int)
	var total float64
	for _, o := range outcomes {
		if o.err != nil {
			sum.Failed++
			continue
		}
		rec := o.report.Record
		total += rec.Score
		sum.ByTier[rec.Tier]++
		programs[rec.Program]++
	}

	if ok := sum.Children - sum.Failed; ok > 0 {
		sum.MeanScore = screening.Round(total/float64(ok), 3)
	}
	for p, n := range programs {
		sum.Programs = append(sum.Programs, ProgramCount{Program: p, Count: n})
	}
	sort.Slice(sum.Programs, func(i, j int) bool {
		if sum.Programs[i].Count != sum.Programs[j].Count {
			return sum.Programs[i].Count > sum.Programs[j].Count
		}
		return sum.Programs[i].Program < sum.Programs[j].Program
	})

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	return sum, nil
}
