// Command screening-mcp serves the screening tools over MCP stdio.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/asd-screening/backend/internal/classifier"
	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/infrastructure/config"
	"github.com/asd-screening/backend/internal/mcptools"
	"github.com/asd-screening/backend/internal/service"
	"github.com/asd-screening/backend/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// stdout carries the MCP protocol; logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	db, err := store.NewSQLite(cfg.DatabasePath)
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

	svc := service.NewAssessmentService(db, screening.Default(), programs, model, logger)
	return server.ServeStdio(mcptools.NewServer(svc))
}
