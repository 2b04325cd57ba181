package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/asd-screening/backend/internal/api"
	"github.com/asd-screening/backend/internal/classifier"
	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/infrastructure/config"
	"github.com/asd-screening/backend/internal/service"
	"github.com/asd-screening/backend/internal/store"

	_ "github.com/asd-screening/backend/docs" // generated swagger docs
)

// @title           ASD Screening API
// @version         1.0
// @description     Questionnaire screening with fuzzy risk scoring and intervention program recommendations.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	programs := program.Default()
	labeler, err := classifier.NewLabeler(programs)
	if err != nil {
		logger.Error("invalid program catalog", "error", err)
		os.Exit(1)
	}
	model := classifier.NewModel(cfg.ModelPath, cfg.Training, labeler, logger)

	// Load or train before accepting traffic so the first request is fast.
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 2*time.Minute)
	if _, err := model.EnsureLoaded(warmCtx); err != nil {
		logger.Warn("model warm-up failed, will retry on first request", "error", err)
	}
	cancelWarm()

	assessments := service.NewAssessmentService(db, screening.Default(), programs, model, logger)
	handler := api.NewHandler(assessments, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
