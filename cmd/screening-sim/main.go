// Command screening-sim runs a seeded random cohort through the screening
// pipeline and prints the tier and program distribution. Nothing is stored.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/asd-screening/backend/internal/classifier"
	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/infrastructure/config"
	"github.com/asd-screening/backend/internal/service"
	"github.com/asd-screening/backend/internal/simulation"
	"github.com/asd-screening/backend/internal/store"
)

func main() {
	children := flag.Int("children", 500, "number of simulated children")
	seed := flag.Int64("seed", 1, "cohort seed")
	yesRate := flag.Float64("yes-rate", 0.35, "probability of a yes answer")
	flag.Parse()

	if err := run(*children, *seed, *yesRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(children int, seed int64, yesRate float64) error {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Evaluate never writes, but the service still needs a store.
	db, err := store.NewSQLite(":memory:")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	programs := program.Default()
	labeler, err := classifier.NewLabeler(programs)
	if err != nil {
		return fmt.Errorf("building labeler: %w", err)
	}
	model := classifier.NewModel(cfg.ModelPath, cfg.Training, labeler, logger)
	criteria := screening.Default()
	svc := service.NewAssessmentService(db, criteria, programs, model, logger)

	sum, err := simulation.Run(ctx, svc, simulation.Options{
		Children:    children,
		Seed:        seed,
		YesRate:     yesRate,
		Workers:     cfg.Training.Workers,
		QuestionIDs: criteria.QuestionIDs(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Children: %d (failed %d)\n", sum.Children, sum.Failed)
	fmt.Printf("Mean risk score: %.3f\n\n", sum.MeanScore)
	for _, tier := range []screening.Tier{screening.TierLow, screening.TierMedium, screening.TierHigh} {
		fmt.Printf("%-7s %d\n", tier, sum.ByTier[tier])
	}
	fmt.Println()
	for _, p := range sum.Programs {
		fmt.Printf("%-32s %d\n", p.Program, p.Count)
	}
	return nil
}
