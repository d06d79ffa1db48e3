package policy

import (
	"testing"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
)

func TestClassify_Matrix(t *testing.T) {
	want := [4][4]domain.Classification{
		{domain.ClassificationClear, domain.ClassificationAcceptable, domain.ClassificationProbationary, domain.ClassificationUnacceptable},
		{domain.ClassificationAcceptable, domain.ClassificationAcceptable, domain.ClassificationProbationary, domain.ClassificationUnacceptable},
		{domain.ClassificationAcceptable, domain.ClassificationProbationary, domain.ClassificationUnacceptable, domain.ClassificationUnacceptable},
		{domain.ClassificationProbationary, domain.ClassificationUnacceptable, domain.ClassificationUnacceptable, domain.ClassificationUnacceptable},
	}

	for v := 0; v <= 3; v++ {
		for a := 0; a <= 3; a++ {
			expected := want[v][a]
			if v+a >= 4 {
				expected = domain.ClassificationUnacceptable
			}
			if got := Classify(v, a); got != expected {
				t.Errorf("Classify(%d, %d) = %s, want %s", v, a, got, expected)
			}
		}
	}
}

func TestClassify_Ceiling(t *testing.T) {
	tests := []struct {
		v, a int
	}{
		{4, 0}, {0, 4}, {2, 2}, {1, 3}, {3, 1}, {10, 0}, {0, 99}, {5, 5},
	}
	for _, tt := range tests {
		if got := Classify(tt.v, tt.a); got != domain.ClassificationUnacceptable {
			t.Errorf("Classify(%d, %d) = %s, want Unacceptable above the ceiling", tt.v, tt.a, got)
		}
	}
}

func TestClassify_Monotonic(t *testing.T) {
	for v := 0; v <= 5; v++ {
		for a := 0; a <= 5; a++ {
			base := Classify(v, a)
			if up := Classify(v+1, a); up.Rank() < base.Rank() {
				t.Errorf("Classify(%d, %d)=%s less severe than Classify(%d, %d)=%s", v+1, a, up, v, a, base)
			}
			if up := Classify(v, a+1); up.Rank() < base.Rank() {
				t.Errorf("Classify(%d, %d)=%s less severe than Classify(%d, %d)=%s", v, a+1, up, v, a, base)
			}
		}
	}
}
