package assessment_test

import (
	"errors"
	"testing"
	"time"

	"github.com/asd-screening/backend/internal/domain/assessment"
)

func TestNewIdentity(t *testing.T) {
	id, err := assessment.NewIdentity("  Budi Santoso ", "2018-04-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id.Name != "Budi Santoso" {
		t.Errorf("expected trimmed name, got %q", id.Name)
	}
	if id.DateOfBirth != "2018-04-12" {
		t.Errorf("expected date 2018-04-12, got %q", id.DateOfBirth)
	}
}

func TestNewIdentity_Invalid(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 2).Format(assessment.DateLayout)

	tests := []struct {
		name string
		dob  string
	}{
		{"", "2018-04-12"},
		{"   ", "2018-04-12"},
		{"Budi", "12/04/2018"},
		{"Budi", ""},
		{"Budi", tomorrow},
	}

	for _, tt := range tests {
		_, err := assessment.NewIdentity(tt.name, tt.dob)
		if !errors.Is(err, assessment.ErrInvalidIdentity) {
			t.Errorf("NewIdentity(%q, %q): expected ErrInvalidIdentity, got %v", tt.name, tt.dob, err)
		}
	}
}

func TestRecordSummary(t *testing.T) {
	r := &assessment.Record{
		ID:       7,
		Identity: assessment.Identity{Name: "Sari", DateOfBirth: "2019-01-01"},
		Score:    0.435,
		Tier:     "Medium",
		Program:  "Terapi Integrasi Sensorik",
	}

	s := r.Summary()
	if s.ID != 7 || s.Name != "Sari" || s.Score != 0.435 || s.Program != r.Program {
		t.Errorf("unexpected summary %+v", s)
	}
}
