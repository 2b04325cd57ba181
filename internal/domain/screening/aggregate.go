package screening

// Tally is the aggregator output: raw per-criterion counts alongside the
// normalized scores derived from them.
type Tally struct {
	Raw    [NumCriteria]int
	Scores Scores
}

// Aggregate sums the answers per criterion and divides each sum by the
// criterion's max score. Missing answers contribute 0.
func (c *Catalog) Aggregate(a Answers) Tally {
	var t Tally
	for q, yes := range a {
		i, ok := c.questions[q]
		if !ok || !yes {
			continue
		}
		t.Raw[i]++
	}
	for i, cr := range c.criteria {
		t.Scores[i] = float64(t.Raw[i]) / float64(cr.MaxScore)
	}
	return t
}
