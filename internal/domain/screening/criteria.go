// Package screening turns questionnaire answers into criterion scores, a
// defuzzified risk score and a per-criterion calculation trace.
package screening

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Code identifies one of the five screening criteria.
type Code string

const (
	C1 Code = "C1"
	C2 Code = "C2"
	C3 Code = "C3"
	C4 Code = "C4"
	C5 Code = "C5"
)

// NumCriteria is the fixed number of screening criteria.
const NumCriteria = 5

// Order is the evaluation order of the criteria. Trace rows, feature vectors
// and tie-breaks all follow it.
var Order = [NumCriteria]Code{C1, C2, C3, C4, C5}

// TFN is a triangular fuzzy number with L <= M <= U.
type TFN struct {
	L float64 `yaml:"l" json:"l"`
	M float64 `yaml:"m" json:"m"`
	U float64 `yaml:"u" json:"u"`
}

// Criterion is the immutable configuration of one screening dimension.
type Criterion struct {
	Code      Code     `yaml:"code" json:"code"`
	Name      string   `yaml:"name" json:"name"`
	MaxScore  int      `yaml:"max_score" json:"max_score"`
	Weight    TFN      `yaml:"weight" json:"weight"`
	Questions []string `yaml:"questions" json:"questions"`
}

// Catalog holds the criteria in Order and the question-to-criterion map.
type Catalog struct {
	criteria  [NumCriteria]Criterion
	questions map[string]int // question id -> index into Order
}

//go:embed criteria.yaml
var criteriaYAML []byte

type catalogFile struct {
	Version  int         `yaml:"version"`
	Criteria []Criterion `yaml:"criteria"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded criterion catalog. It panics if the embedded
// document is invalid, which can only happen through a bad edit of
// criteria.yaml.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(criteriaYAML)
		if err != nil {
			panic(fmt.Sprintf("screening: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// ParseCatalog decodes and validates a YAML criterion catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Criteria) != NumCriteria {
		return nil, fmt.Errorf("catalog lists %d criteria, want %d", len(f.Criteria), NumCriteria)
	}

	c := &Catalog{questions: make(map[string]int)}
	for i, cr := range f.Criteria {
		if cr.Code != Order[i] {
			return nil, fmt.Errorf("criterion %d is %q, want %q", i, cr.Code, Order[i])
		}
		if cr.MaxScore < 1 {
			return nil, fmt.Errorf("criterion %s: max_score must be at least 1", cr.Code)
		}
		if err := cr.Weight.validate(); err != nil {
			return nil, fmt.Errorf("criterion %s: %w", cr.Code, err)
		}
		if len(cr.Questions) != cr.MaxScore {
			return nil, fmt.Errorf("criterion %s: %d questions for max_score %d", cr.Code, len(cr.Questions), cr.MaxScore)
		}
		for _, q := range cr.Questions {
			if _, dup := c.questions[q]; dup {
				return nil, fmt.Errorf("question %s is assigned twice", q)
			}
			c.questions[q] = i
		}
		c.criteria[i] = cr
	}
	return c, nil
}

func (w TFN) validate() error {
	if w.L < 0 || w.U > 1 || w.L > w.M || w.M > w.U {
		return fmt.Errorf("weight (%g, %g, %g) must satisfy 0 <= L <= M <= U <= 1", w.L, w.M, w.U)
	}
	return nil
}

// Criteria returns the criteria in Order.
func (c *Catalog) Criteria() []Criterion {
	out := make([]Criterion, NumCriteria)
	copy(out, c.criteria[:])
	return out
}

// Criterion looks up a criterion by code.
func (c *Catalog) Criterion(code Code) (Criterion, bool) {
	i, ok := indexOf(code)
	if !ok {
		return Criterion{}, false
	}
	return c.criteria[i], true
}

// QuestionIDs returns every question id known to the catalog, q1 first.
func (c *Catalog) QuestionIDs() []string {
	ids := make([]string, 0, len(c.questions))
	for i := 1; i <= len(c.questions); i++ {
		id := fmt.Sprintf("q%d", i)
		if _, ok := c.questions[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func indexOf(code Code) (int, bool) {
	for i, c := range Order {
		if c == code {
			return i, true
		}
	}
	return 0, false
}
