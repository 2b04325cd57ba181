package screening

import "strconv"

// Tier is the risk band derived from a risk score.
type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

// Tier thresholds are inclusive upper bounds on the rounded score.
const (
	lowUpperBound    = 0.33
	mediumUpperBound = 0.66
)

// TierFor classifies a rounded risk score.
func TierFor(score float64) Tier {
	switch {
	case score <= lowUpperBound:
		return TierLow
	case score <= mediumUpperBound:
		return TierMedium
	default:
		return TierHigh
	}
}

// TraceRow is one criterion's line in the calculation trace.
type TraceRow struct {
	Code       Code    `json:"code"`
	Name       string  `json:"name"`
	Raw        int     `json:"raw"`
	Max        int     `json:"max"`
	Normalized float64 `json:"normalized"`
	Weight     TFN     `json:"weight"`
	Product    TFN     `json:"product"`
}

// Totals are the per-component sums of the weighted scores.
type Totals struct {
	L float64 `json:"l"`
	M float64 `json:"m"`
	U float64 `json:"u"`
}

// Trace is the full calculation behind a risk score, rows in Order.
type Trace struct {
	Rows   []TraceRow `json:"rows"`
	Totals Totals     `json:"totals"`
}

// Result is the fuzzy scorer output.
type Result struct {
	Score float64 `json:"score"`
	Tier  Tier    `json:"tier"`
	Trace Trace   `json:"trace"`
}

// Score weights each normalized score by its criterion's TFN, sums the three
// components across criteria and defuzzifies the sums into one risk score.
// Scores outside [0, 1] are processed arithmetically like any other value.
func (c *Catalog) Score(t Tally) Result {
	var totals Totals
	rows := make([]TraceRow, 0, NumCriteria)

	for i, cr := range c.criteria {
		norm := t.Scores[i]
		l := norm * cr.Weight.L
		m := norm * cr.Weight.M
		u := norm * cr.Weight.U

		totals.L += l
		totals.M += m
		totals.U += u

		rows = append(rows, TraceRow{
			Code:       cr.Code,
			Name:       cr.Name,
			Raw:        t.Raw[i],
			Max:        cr.MaxScore,
			Normalized: Round(norm, 3),
			Weight:     cr.Weight,
			Product:    TFN{L: Round(l, 4), M: Round(m, 4), U: Round(u, 4)},
		})
	}

	score := Round((totals.L+totals.M+totals.U)/3, 3)
	return Result{
		Score: score,
		Tier:  TierFor(score),
		Trace: Trace{Rows: rows, Totals: totals},
	}
}

// Round rounds x to the given number of decimal places, half-to-even on the
// exact binary value, so results match the persisted and displayed figures.
func Round(x float64, places int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}
