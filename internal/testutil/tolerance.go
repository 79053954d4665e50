package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-conv2d/mat"
)

// RequireShape fails t if m does not have the given dimensions.
func RequireShape(t *testing.T, m *mat.Matrix, rows, cols int) {
	t.Helper()
	if m.Rows != rows || m.Cols != cols {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", m.Rows, m.Cols, rows, cols)
	}
}

// RequireNearlyEqual fails t if got and want differ in shape or if any
// element pair exceeds eps (absolute tolerance).
func RequireNearlyEqual(t *testing.T, got, want *mat.Matrix, eps float64) {
	t.Helper()
	if !got.SameShape(want) {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", got.Rows, got.Cols, want.Rows, want.Cols)
	}
	for i := range got.Data {
		diff := math.Abs(got.Data[i] - want.Data[i])
		if diff > eps {
			r, c := i/got.Cols, i%got.Cols
			t.Fatalf("element (%d,%d): got %v, want %v (diff %v > eps %v)",
				r, c, got.Data[i], want.Data[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, m *mat.Matrix) {
	t.Helper()
	for i, v := range m.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("element (%d,%d): non-finite value %v", i/m.Cols, i%m.Cols, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute element difference between
// two matrices. Returns an error if the shapes differ.
func MaxAbsDiff(a, b *mat.Matrix) (float64, error) {
	if !a.SameShape(b) {
		return 0, fmt.Errorf("shape mismatch: %dx%d vs %dx%d", a.Rows, a.Cols, b.Rows, b.Cols)
	}
	maxDiff := 0.0
	for i := range a.Data {
		d := math.Abs(a.Data[i] - b.Data[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
