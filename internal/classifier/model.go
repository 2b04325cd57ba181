package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadReason tags why a persisted model could not be used.
type LoadReason string

const (
	ReasonMissing      LoadReason = "missing"
	ReasonCorrupt      LoadReason = "corrupt"
	ReasonIncompatible LoadReason = "incompatible"
)

// LoadError is returned by Load. Model treats every LoadError as a signal to
// retrain rather than a failure.
type LoadError struct {
	Reason  LoadReason
	Path    string
	Wrapped error
}

func (e *LoadError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("load model %s: %s: %v", e.Path, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("load model %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Wrapped
}

// Load reads a persisted forest and checks that it was trained with cfg for
// the classes l produces.
func Load(path string, cfg TrainConfig, l Labeler) (*Forest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Reason: ReasonMissing, Path: path}
	}
	if err != nil {
		return nil, &LoadError{Reason: ReasonCorrupt, Path: path, Wrapped: err}
	}

	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Reason: ReasonCorrupt, Path: path, Wrapped: err}
	}
	if err := f.validate(); err != nil {
		return nil, &LoadError{Reason: ReasonIncompatible, Path: path, Wrapped: err}
	}
	if f.Seed != cfg.Seed || len(f.Trees) != cfg.Trees {
		return nil, &LoadError{
			Reason:  ReasonIncompatible,
			Path:    path,
			Wrapped: fmt.Errorf("trained with seed %d and %d trees, configured %d and %d", f.Seed, len(f.Trees), cfg.Seed, cfg.Trees),
		}
	}
	if !slices.Equal(f.Classes, l.Classes()) {
		return nil, &LoadError{Reason: ReasonIncompatible, Path: path, Wrapped: errors.New("class labels differ from the program catalog")}
	}
	return &f, nil
}

// Save writes the forest through a temporary file and a rename, so readers
// never observe a partial artifact and concurrent writers leave one complete
// file behind.
func Save(path string, f *Forest) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp model: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := json.NewEncoder(tmp).Encode(f); err != nil {
		tmp.Close()
		return fmt.Errorf("encode model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp model: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace model: %w", err)
	}
	return nil
}

// Model owns the process's trained forest. The first EnsureLoaded call loads
// the artifact at path or, failing that, trains and persists a new one;
// concurrent first calls share that work.
type Model struct {
	path    string
	cfg     TrainConfig
	labeler Labeler
	logger  *slog.Logger

	group  singleflight.Group
	forest atomic.Pointer[Forest]

	mu       sync.Mutex
	lastLoad *LoadError
}

// NewModel creates an unloaded Model.
func NewModel(path string, cfg TrainConfig, l Labeler, logger *slog.Logger) *Model {
	return &Model{
		path:    path,
		cfg:     cfg,
		labeler: l,
		logger:  logger,
	}
}

// EnsureLoaded returns the cached forest, loading or training it on first use.
func (m *Model) EnsureLoaded(ctx context.Context) (*Forest, error) {
	if f := m.forest.Load(); f != nil {
		return f, nil
	}

	v, err, _ := m.group.Do("forest", func() (any, error) {
		if f := m.forest.Load(); f != nil {
			return f, nil
		}
		f, err := m.loadOrTrain(ctx)
		if err != nil {
			return nil, err
		}
		m.forest.Store(f)
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Forest), nil
}

func (m *Model) loadOrTrain(ctx context.Context) (*Forest, error) {
	f, err := Load(m.path, m.cfg, m.labeler)
	if err == nil {
		m.logger.InfoContext(ctx, "model loaded", "path", m.path, "trees", len(f.Trees))
		return f, nil
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		return nil, err
	}
	m.mu.Lock()
	m.lastLoad = loadErr
	m.mu.Unlock()

	m.logger.WarnContext(ctx, "model unavailable, retraining",
		"path", m.path,
		"reason", loadErr.Reason,
		"error", loadErr,
	)

	start := time.Now()
	f, err = Train(m.cfg, m.labeler)
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}
	m.logger.InfoContext(ctx, "model trained",
		"trees", len(f.Trees),
		"samples", m.cfg.Samples,
		"seed", m.cfg.Seed,
		"duration", time.Since(start),
	)

	if err := Save(m.path, f); err != nil {
		m.logger.WarnContext(ctx, "failed to persist model", "path", m.path, "error", err)
	}
	return f, nil
}

// LastLoadError reports why the most recent load fell back to training, or
// nil if the artifact loaded cleanly or no load has happened yet.
func (m *Model) LastLoadError() *LoadError {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastLoad
}
