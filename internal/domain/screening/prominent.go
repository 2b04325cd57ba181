package screening

// Prominent is the criterion with the highest normalized score.
type Prominent struct {
	Code  Code    `json:"code"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Prominent returns the first criterion in Order that reaches the maximum
// score. Value is rounded to 2 decimals for display.
func (c *Catalog) Prominent(s Scores) Prominent {
	best := 0
	for i := 1; i < NumCriteria; i++ {
		if s[i] > s[best] {
			best = i
		}
	}
	return Prominent{
		Code:  c.criteria[best].Code,
		Name:  c.criteria[best].Name,
		Value: Round(s[best], 2),
	}
}
