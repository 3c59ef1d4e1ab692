package diffmatrix_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/motiontree/motiontree/diffmatrix"
)

func symFromRows(n int, rows [][]float64) *mat.SymDense {
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, rows[i][j])
		}
	}
	return d
}

func TestBuildAbsoluteDifference(t *testing.T) {
	d1 := symFromRows(3, [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	})
	d2 := symFromRows(3, [][]float64{
		{0, 4, 2},
		{4, 0, 1},
		{2, 1, 0},
	})

	m, err := diffmatrix.Build(d1, d2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Persisted.At(0, 1); got != 3 {
		t.Errorf("Persisted[0][1] = %v, want 3", got)
	}
	if got := m.Persisted.At(1, 2); got != 2 {
		t.Errorf("Persisted[1][2] = %v, want 2", got)
	}
	// The diagonal of Persisted stays 0; only Working is masked.
	if got := m.Persisted.At(0, 0); got != 0 {
		t.Errorf("Persisted[0][0] = %v, want 0", got)
	}
}

func TestBuildDiagonalMaskedOnWorkingOnly(t *testing.T) {
	d1 := mat.NewSymDense(2, nil)
	d2 := mat.NewSymDense(2, nil)
	m, err := diffmatrix.Build(d1, d2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if !math.IsInf(m.Working.At(i, i), 1) {
			t.Errorf("Working[%d][%d] = %v, want +Inf", i, i, m.Working.At(i, i))
		}
		if m.Persisted.At(i, i) != 0 {
			t.Errorf("Persisted[%d][%d] = %v, want 0", i, i, m.Persisted.At(i, i))
		}
	}
}

func TestBuildDimensionMismatch(t *testing.T) {
	d1 := mat.NewSymDense(2, nil)
	d2 := mat.NewSymDense(3, nil)
	_, err := diffmatrix.Build(d1, d2)
	if err == nil {
		t.Fatal("expected error for mismatched dimensions, got nil")
	}
}

func TestBuildIdenticalConformationsZero(t *testing.T) {
	d := symFromRows(3, [][]float64{
		{0, 5, 9},
		{5, 0, 4},
		{9, 4, 0},
	})
	m, err := diffmatrix.Build(d, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := m.N()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if got := m.Persisted.At(i, j); got != 0 {
				t.Errorf("Persisted[%d][%d] = %v, want 0", i, j, got)
			}
		}
	}
}
