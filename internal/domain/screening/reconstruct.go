package screening

import "math"

// Reconstruct rebuilds the scorer output from a stored score vector alone.
// Raw counts are reverse-derived as round(score * max); every other field is
// computed exactly as Score computes it.
func (c *Catalog) Reconstruct(s Scores) Result {
	t := Tally{Scores: s}
	for i, cr := range c.criteria {
		t.Raw[i] = int(math.Round(s[i] * float64(cr.MaxScore)))
	}
	return c.Score(t)
}
