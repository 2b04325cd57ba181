// Package classifier recommends an intervention program from a normalized
// score vector using a bagged ensemble of decision trees trained on
// synthetic data.
package classifier

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/worker"
)

// formatVersion is bumped whenever the persisted layout changes.
const formatVersion = 1

// TrainConfig controls synthetic training.
type TrainConfig struct {
	Seed        int64
	Trees       int
	Samples     int
	MaxFeatures int
	Workers     int
}

// DefaultTrainConfig mirrors the production settings.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Seed:        42,
		Trees:       100,
		Samples:     1000,
		MaxFeatures: int(math.Sqrt(screening.NumCriteria)),
		Workers:     4,
	}
}

// Forest is a trained ensemble. It is immutable after training and safe for
// concurrent use.
type Forest struct {
	Version  int      `json:"version"`
	Seed     int64    `json:"seed"`
	Classes  []string `json:"classes"`
	Features int      `json:"features"`
	Trees    []Tree   `json:"trees"`
}

// Train generates the synthetic set from cfg.Seed and grows cfg.Trees trees
// on bootstrap samples. Tree seeds are drawn up front, so the result does not
// depend on worker scheduling.
func Train(cfg TrainConfig, l Labeler) (*Forest, error) {
	if cfg.Trees < 1 || cfg.Samples < 2 {
		return nil, fmt.Errorf("train: need at least 1 tree and 2 samples, got %d and %d", cfg.Trees, cfg.Samples)
	}
	if cfg.MaxFeatures < 1 || cfg.MaxFeatures > screening.NumCriteria {
		return nil, fmt.Errorf("train: max features %d out of range", cfg.MaxFeatures)
	}

	classes := l.Classes()
	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	x, y := syntheticSet(rng, cfg.Samples, l, classIndex)

	jobs := make([]worker.Job[Tree], cfg.Trees)
	for t := range jobs {
		treeRng := rand.New(rand.NewSource(rng.Int63()))
		jobs[t] = func() Tree {
			sample := make([]int, cfg.Samples)
			for i := range sample {
				sample[i] = treeRng.Intn(cfg.Samples)
			}
			return growTree(x, y, sample, len(classes), cfg.MaxFeatures, treeRng)
		}
	}

	return &Forest{
		Version:  formatVersion,
		Seed:     cfg.Seed,
		Classes:  classes,
		Features: screening.NumCriteria,
		Trees:    worker.Run(cfg.Workers, jobs),
	}, nil
}

// Proba returns the mean leaf probability of every class, in Classes order.
func (f *Forest) Proba(x []float64) []float64 {
	p := make([]float64, len(f.Classes))
	for i := range f.Trees {
		for c, v := range f.Trees[i].predict(x) {
			p[c] += v
		}
	}
	for c := range p {
		p[c] /= float64(len(f.Trees))
	}
	return p
}

// Predict returns the most probable class; the first class in Classes order
// wins ties.
func (f *Forest) Predict(x []float64) (string, []float64) {
	p := f.Proba(x)
	best := 0
	for c := range p {
		if p[c] > p[best] {
			best = c
		}
	}
	return f.Classes[best], p
}

// validate checks the structural invariants Predict relies on.
func (f *Forest) validate() error {
	if f.Version != formatVersion {
		return fmt.Errorf("format version %d, want %d", f.Version, formatVersion)
	}
	if f.Features != screening.NumCriteria {
		return fmt.Errorf("%d features, want %d", f.Features, screening.NumCriteria)
	}
	if len(f.Classes) == 0 || len(f.Trees) == 0 {
		return errors.New("empty forest")
	}
	for t, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", t)
		}
		for i, n := range tree.Nodes {
			if n.Feature == leaf {
				if len(n.Value) != len(f.Classes) {
					return fmt.Errorf("tree %d node %d: %d class values, want %d", t, i, len(n.Value), len(f.Classes))
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= f.Features {
				return fmt.Errorf("tree %d node %d: feature %d out of range", t, i, n.Feature)
			}
			if n.Left <= i || n.Right <= i || n.Left >= len(tree.Nodes) || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: bad child index", t, i)
			}
		}
	}
	return nil
}
