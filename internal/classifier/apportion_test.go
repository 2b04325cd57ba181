package classifier

import "testing"

func TestApportion_SumsToHundred(t *testing.T) {
	tests := []struct {
		p    []float64
		want []float64
	}{
		{[]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, []float64{33.4, 33.3, 33.3}},
		{[]float64{0.37, 0.63}, []float64{37, 63}},
		{[]float64{1, 0, 0}, []float64{100, 0, 0}},
		{[]float64{0.1234, 0.8766}, []float64{12.3, 87.7}},
	}

	for _, tt := range tests {
		got := apportion(tt.p)
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("apportion(%v) = %v, want %v", tt.p, got, tt.want)
				break
			}
		}
	}
}

func TestIsPure(t *testing.T) {
	if !isPure([]int{0, 4, 0}) {
		t.Error("expected single-class counts to be pure")
	}
	if isPure([]int{1, 4, 0}) {
		t.Error("expected mixed counts to be impure")
	}
}
