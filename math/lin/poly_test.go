package lin

import (
	"sort"
	"testing"
)

func TestSolvePolyQuadraticTwoRoots(t *testing.T) {
	// x^2 - 3x + 2 = (x-1)(x-2)
	out := make([]float64, 2)
	n := SolvePoly([]float64{2, -3, 1}, 2, out)
	if n != 2 {
		t.Fatalf("expected 2 roots, got %d", n)
	}
	sort.Float64s(out)
	if !Aeq(out[0], 1) || !Aeq(out[1], 2) {
		t.Errorf("roots = %v, want [1 2]", out)
	}
}

func TestSolvePolyQuadraticNoRealRoots(t *testing.T) {
	out := make([]float64, 2)
	n := SolvePoly([]float64{1, 0, 1}, 2, out) // x^2 + 1
	if n != 0 {
		t.Errorf("expected 0 real roots, got %d", n)
	}
}

func TestSolvePolyCubicKnownRoot(t *testing.T) {
	// (x-1)(x-2)(x-3) = x^3 -6x^2 +11x -6
	out := make([]float64, 3)
	n := SolvePoly([]float64{-6, 11, -6, 1}, 3, out)
	if n != 3 {
		t.Fatalf("expected 3 roots, got %d", n)
	}
	sort.Float64s(out)
	for i, want := range []float64{1, 2, 3} {
		if !Aeq(out[i], want) {
			t.Errorf("root[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestSolvePolyQuarticKnownRoots(t *testing.T) {
	// (x-1)(x+1)(x-2)(x+2) = x^4 - 5x^2 + 4
	out := make([]float64, 4)
	n := SolvePoly([]float64{4, 0, -5, 0, 1}, 4, out)
	if n != 4 {
		t.Fatalf("expected 4 roots, got %d", n)
	}
	sort.Float64s(out)
	for i, want := range []float64{-2, -1, 1, 2} {
		if !Aeq(out[i], want) {
			t.Errorf("root[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestSolvePolyDegeneratesToLowerDegree(t *testing.T) {
	// leading coefficient ~0: a cubic that's really 2x - 4 = 0
	out := make([]float64, 3)
	n := SolvePoly([]float64{-4, 2, 0, 0}, 3, out)
	if n != 1 || !Aeq(out[0], 2) {
		t.Errorf("expected single root 2, got n=%d out=%v", n, out[:n])
	}
}

