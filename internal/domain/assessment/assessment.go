package assessment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
)

// DateLayout is the format of Identity.DateOfBirth.
const DateLayout = "2006-01-02"

// Identity is the natural key of a record: one child, one record.
type Identity struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
}

// ErrInvalidIdentity wraps every NewIdentity validation failure.
var ErrInvalidIdentity = errors.New("invalid identity")

// NewIdentity trims the name and validates the date of birth.
func NewIdentity(name, dob string) (Identity, error) {
	id := Identity{Name: strings.TrimSpace(name), DateOfBirth: strings.TrimSpace(dob)}
	if id.Name == "" {
		return Identity{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidIdentity)
	}
	born, err := time.Parse(DateLayout, id.DateOfBirth)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", ErrInvalidIdentity)
	}
	if born.After(time.Now()) {
		return Identity{}, fmt.Errorf("%w: date_of_birth cannot be in the future", ErrInvalidIdentity)
	}
	return id, nil
}

// Record is the persisted outcome of one screening.
type Record struct {
	ID int64
	Identity
	Scores     screening.Scores
	Answers    screening.Answers
	Score      float64
	Tier       screening.Tier
	Program    string
	Details    program.Details
	Prominent  screening.Prominent
	Confidence []program.Confidence
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Summary is the compact form shown in history listings.
type Summary struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	DateOfBirth string         `json:"date_of_birth"`
	Score       float64        `json:"score"`
	Tier        screening.Tier `json:"tier"`
	Program     string         `json:"program"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (r *Record) Summary() Summary {
	return Summary{
		ID:          r.ID,
		Name:        r.Name,
		DateOfBirth: r.DateOfBirth,
		Score:       r.Score,
		Tier:        r.Tier,
		Program:     r.Program,
		UpdatedAt:   r.UpdatedAt,
	}
}
