package classifier

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
)

// regularSupportMean is the mean feature value below which a synthetic row is
// labelled with the regular-support program.
const regularSupportMean = 0.25

// Labeler assigns the synthetic training label to a feature vector.
type Labeler struct {
	Default     string
	ByCriterion [screening.NumCriteria]string
}

// NewLabeler builds the labeling rule from a program catalog.
func NewLabeler(programs *program.Catalog) (Labeler, error) {
	l := Labeler{Default: programs.DefaultLabel()}
	for i, code := range screening.Order {
		label := programs.ForCriterion(code)
		if label == "" {
			return Labeler{}, fmt.Errorf("no program for criterion %s", code)
		}
		l.ByCriterion[i] = label
	}
	return l, nil
}

// Label applies the rule: low mean -> default program, otherwise the program
// of the largest feature, first index winning ties.
func (l Labeler) Label(x []float64) string {
	sum := 0.0
	best := 0
	for i, v := range x {
		sum += v
		if v > x[best] {
			best = i
		}
	}
	if sum/float64(len(x)) < regularSupportMean {
		return l.Default
	}
	return l.ByCriterion[best]
}

// Classes returns every label the rule can produce, sorted.
func (l Labeler) Classes() []string {
	classes := append([]string{l.Default}, l.ByCriterion[:]...)
	sort.Strings(classes)
	return classes
}

// syntheticSet draws n uniform feature vectors and labels them.
func syntheticSet(rng *rand.Rand, n int, l Labeler, classIndex map[string]int) ([][]float64, []int) {
	x := make([][]float64, n)
	y := make([]int, n)
	for i := range x {
		row := make([]float64, screening.NumCriteria)
		for j := range row {
			row[j] = rng.Float64()
		}
		x[i] = row
		y[i] = classIndex[l.Label(row)]
	}
	return x, y
}
