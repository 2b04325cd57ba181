package program_test

import (
	"testing"

	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
)

func TestDefaultCatalog(t *testing.T) {
	cat := program.Default()

	if got := len(cat.Labels()); got != 6 {
		t.Fatalf("expected 6 programs, got %d", got)
	}
	if cat.DefaultLabel() != "Pendampingan Reguler" {
		t.Errorf("unexpected default label %q", cat.DefaultLabel())
	}

	want := map[screening.Code]string{
		screening.C1: "Terapi Integrasi Sensorik",
		screening.C2: "Pelatihan Keterampilan Sosial",
		screening.C3: "Terapi Wicara Pragmatik",
		screening.C4: "DIR (Floortime)",
		screening.C5: "Metode TEACCH",
	}
	for code, label := range want {
		if got := cat.ForCriterion(code); got != label {
			t.Errorf("%s: expected %q, got %q", code, label, got)
		}
	}
}

func TestLookup(t *testing.T) {
	cat := program.Default()

	d := cat.Lookup("Metode TEACCH")
	if d.Code != "C5" || d.Goal == "" || d.Activity == "" || d.School == "" {
		t.Errorf("incomplete details %+v", d)
	}

	if d := cat.Lookup("Unknown Program"); d != (program.Details{}) {
		t.Errorf("expected empty details for unknown label, got %+v", d)
	}
}

func TestLabels_Sorted(t *testing.T) {
	labels := program.Default().Labels()
	for i := 1; i < len(labels); i++ {
		if labels[i-1] >= labels[i] {
			t.Errorf("labels not sorted at %d: %q >= %q", i, labels[i-1], labels[i])
		}
	}
}

func TestParseCatalog_RequiresDefault(t *testing.T) {
	doc := `programs:
  - {label: A, code: C1}
  - {label: B, code: C2}
  - {label: C, code: C3}
  - {label: D, code: C4}
  - {label: E, code: C5}
`
	if _, err := program.ParseCatalog([]byte(doc)); err == nil {
		t.Error("expected error without a default program")
	}
}

func TestParseCatalog_RejectsUnknownCriterion(t *testing.T) {
	doc := `programs:
  - {label: A, code: C9}
  - {label: R, code: "-"}
`
	if _, err := program.ParseCatalog([]byte(doc)); err == nil {
		t.Error("expected error for unknown criterion")
	}
}
