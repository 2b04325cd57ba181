package classifier

import (
	"math"
	"sort"

	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
)

// Recommendation is the classifier output for one score vector.
type Recommendation struct {
	Label      string               `json:"label"`
	Confidence []program.Confidence `json:"confidence"`
}

// Recommend predicts a program for s and returns the full distribution,
// highest percentage first. Equal percentages are ordered by label.
func Recommend(f *Forest, s screening.Scores) Recommendation {
	label, proba := f.Predict(s.Vector())
	percents := apportion(proba)

	conf := make([]program.Confidence, len(f.Classes))
	for i, c := range f.Classes {
		conf[i] = program.Confidence{Label: c, Percent: percents[i]}
	}
	sort.SliceStable(conf, func(i, j int) bool {
		if conf[i].Percent != conf[j].Percent {
			return conf[i].Percent > conf[j].Percent
		}
		return conf[i].Label < conf[j].Label
	})

	return Recommendation{Label: label, Confidence: conf}
}

// apportion converts probabilities to percentages with one decimal using the
// largest-remainder method, so the result always sums to exactly 100.0.
func apportion(p []float64) []float64 {
	const tenths = 1000

	units := make([]int, len(p))
	remainders := make([]float64, len(p))
	total := 0
	for i, v := range p {
		scaled := math.Round(v*tenths*1e6) / 1e6
		units[i] = int(math.Floor(scaled))
		remainders[i] = scaled - float64(units[i])
		total += units[i]
	}

	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for k := 0; total < tenths && k < len(order); k++ {
		units[order[k]]++
		total++
	}

	out := make([]float64, len(p))
	for i, u := range units {
		out[i] = float64(u) / 10
	}
	return out
}
