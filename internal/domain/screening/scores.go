package screening

import (
	"encoding/json"
	"fmt"
)

// Scores is the normalized score vector, one value per criterion in Order.
// It is the persisted form every later view is rebuilt from.
type Scores [NumCriteria]float64

// Get returns the score for a criterion code, or 0 for an unknown code.
func (s Scores) Get(code Code) float64 {
	i, ok := indexOf(code)
	if !ok {
		return 0
	}
	return s[i]
}

// Vector returns the scores as a feature vector in Order.
func (s Scores) Vector() []float64 {
	v := make([]float64, NumCriteria)
	copy(v, s[:])
	return v
}

// MarshalJSON encodes the vector as {"C1": .., ..., "C5": ..}.
func (s Scores) MarshalJSON() ([]byte, error) {
	m := make(map[Code]float64, NumCriteria)
	for i, code := range Order {
		m[code] = s[i]
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts the object form. Missing criteria decode as 0;
// unknown keys are rejected.
func (s *Scores) UnmarshalJSON(data []byte) error {
	var m map[Code]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Scores
	for code, v := range m {
		i, ok := indexOf(code)
		if !ok {
			return fmt.Errorf("unknown criterion %q", code)
		}
		out[i] = v
	}
	*s = out
	return nil
}
