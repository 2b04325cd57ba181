package screening

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Answers maps question ids (q1..q10) to yes/no responses.
type Answers map[string]bool

// ValidationError reports an answer value that is neither 0 nor 1.
type ValidationError struct {
	Question string
	Value    any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("answer %s: %v is not 0 or 1", e.Question, e.Value)
}

// ParseAnswers coerces raw request values into Answers. Unknown question ids
// are dropped and missing ones stay absent (they count as 0 later).
func (c *Catalog) ParseAnswers(raw map[string]any) (Answers, error) {
	answers := make(Answers, len(raw))
	for q, v := range raw {
		if _, ok := c.questions[q]; !ok {
			continue
		}
		b, ok := coerce(v)
		if !ok {
			return nil, &ValidationError{Question: q, Value: v}
		}
		answers[q] = b
	}
	return answers, nil
}

// ParseFormAnswers is ParseAnswers for string-valued form fields.
func (c *Catalog) ParseFormAnswers(raw map[string]string) (Answers, error) {
	m := make(map[string]any, len(raw))
	for k, v := range raw {
		m[k] = v
	}
	return c.ParseAnswers(m)
}

func coerce(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case int:
		return x == 1, x == 0 || x == 1
	case int64:
		return x == 1, x == 0 || x == 1
	case float64:
		return x == 1, x == 0 || x == 1
	case json.Number:
		return coerce(x.String())
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true":
			return true, true
		case "0", "false":
			return false, true
		}
	}
	return false, false
}
