// Package program holds the intervention programs a screening can recommend.
package program

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/asd-screening/backend/internal/domain/screening"
)

// DefaultCode marks the regular-support program in the catalog.
const DefaultCode = "-"

// Details is the descriptive metadata of a program. The zero value is what an
// unknown label resolves to.
type Details struct {
	Code     string `yaml:"code" json:"code,omitempty"`
	Title    string `yaml:"title" json:"title,omitempty"`
	Goal     string `yaml:"goal" json:"goal,omitempty"`
	Activity string `yaml:"activity" json:"activity,omitempty"`
	School   string `yaml:"school" json:"school,omitempty"`
}

// Program is a recommendation label with its metadata.
type Program struct {
	Label   string `yaml:"label" json:"label"`
	Details `yaml:",inline" json:"details"`
}

// Confidence is one label's share of a recommendation, in percent.
type Confidence struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// Catalog is the static label -> metadata table.
type Catalog struct {
	programs []Program
	byLabel  map[string]Details
	byCode   map[screening.Code]string
	fallback string
}

//go:embed programs.yaml
var programsYAML []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded program catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(programsYAML)
		if err != nil {
			panic(fmt.Sprintf("program: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// ParseCatalog decodes a YAML program catalog. It needs exactly one program
// per criterion plus one default program.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f struct {
		Programs []Program `yaml:"programs"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode programs: %w", err)
	}

	c := &Catalog{
		programs: f.Programs,
		byLabel:  make(map[string]Details, len(f.Programs)),
		byCode:   make(map[screening.Code]string, screening.NumCriteria),
	}
	for _, p := range f.Programs {
		if p.Label == "" {
			return nil, fmt.Errorf("program with empty label")
		}
		if _, dup := c.byLabel[p.Label]; dup {
			return nil, fmt.Errorf("duplicate program %q", p.Label)
		}
		c.byLabel[p.Label] = p.Details

		if p.Code == DefaultCode {
			if c.fallback != "" {
				return nil, fmt.Errorf("more than one default program")
			}
			c.fallback = p.Label
			continue
		}
		code := screening.Code(p.Code)
		if _, ok := screening.Default().Criterion(code); !ok {
			return nil, fmt.Errorf("program %q targets unknown criterion %q", p.Label, p.Code)
		}
		if other, dup := c.byCode[code]; dup {
			return nil, fmt.Errorf("programs %q and %q both target %s", other, p.Label, code)
		}
		c.byCode[code] = p.Label
	}

	if c.fallback == "" {
		return nil, fmt.Errorf("no default program")
	}
	if len(c.byCode) != screening.NumCriteria {
		return nil, fmt.Errorf("%d criteria have a program, want %d", len(c.byCode), screening.NumCriteria)
	}
	return c, nil
}

// Lookup returns the metadata for a label. Unknown labels yield empty Details.
func (c *Catalog) Lookup(label string) Details {
	return c.byLabel[label]
}

// ForCriterion returns the label of the program targeting a criterion.
func (c *Catalog) ForCriterion(code screening.Code) string {
	return c.byCode[code]
}

// DefaultLabel returns the regular-support program label.
func (c *Catalog) DefaultLabel() string {
	return c.fallback
}

// Labels returns every label in lexicographic order.
func (c *Catalog) Labels() []string {
	labels := make([]string, 0, len(c.programs))
	for _, p := range c.programs {
		labels = append(labels, p.Label)
	}
	sort.Strings(labels)
	return labels
}

// Programs returns the catalog in document order.
func (c *Catalog) Programs() []Program {
	out := make([]Program, len(c.programs))
	copy(out, c.programs)
	return out
}
