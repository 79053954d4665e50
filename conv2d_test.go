package conv2d

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-conv2d/internal/testutil"
	"github.com/cwbudde/algo-conv2d/mat"
)

const eps = 1e-10

func TestValidOnesScenario(t *testing.T) {
	// 3x3 ones convolved with 2x2 ones: every valid position sums
	// four overlapping ones.
	input := testutil.Ones(3, 3)
	filter := testutil.Ones(2, 2)

	for _, engine := range []Convolver{NewValid(), NewDirectValid()} {
		out, err := engine.Convolve(input, filter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want, _ := mat.FromRows([][]float64{
			{4, 4},
			{4, 4},
		})
		testutil.RequireNearlyEqual(t, out, want, eps)
	}
}

func TestFullOnesScenario(t *testing.T) {
	input := testutil.Ones(3, 3)
	filter := testutil.Ones(2, 2)

	for _, engine := range []Convolver{NewFull(), NewDirectFull()} {
		out, err := engine.Convolve(input, filter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want, _ := mat.FromRows([][]float64{
			{1, 2, 2, 1},
			{2, 4, 4, 2},
			{2, 4, 4, 2},
			{1, 2, 2, 1},
		})
		testutil.RequireNearlyEqual(t, out, want, eps)
	}
}

func TestOutputShapes(t *testing.T) {
	tests := []struct {
		name   string
		m, n   int
		p, q   int
		engine Convolver
		rows   int
		cols   int
	}{
		{"valid 4x4 by 2x2", 4, 4, 2, 2, NewValid(), 3, 3},
		{"valid 6x5 by 3x2", 6, 5, 3, 2, NewValid(), 4, 4},
		{"valid equal size", 4, 5, 4, 5, NewValid(), 1, 1},
		{"valid padLastDim", 5, 5, 2, 3, NewValid(WithPadLastDim()), 4, 3},
		{"full 4x4 by 2x2", 4, 4, 2, 2, NewFull(), 5, 5},
		{"full 3x5 by 4x2", 3, 5, 4, 2, NewFull(), 6, 6},
		{"full padLastDim", 5, 5, 2, 3, NewFull(WithPadLastDim()), 6, 7},
		{"direct valid 6x6 by 3x3", 6, 6, 3, 3, NewDirectValid(), 4, 4},
		{"direct full 6x6 by 3x3", 6, 6, 3, 3, NewDirectFull(), 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testutil.RandomMatrix(tt.m, tt.n, 1)
			filter := testutil.RandomMatrix(tt.p, tt.q, 2)

			out, err := tt.engine.Convolve(input, filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.RequireShape(t, out, tt.rows, tt.cols)
			testutil.RequireFinite(t, out)
		})
	}
}

func TestFFTMatchesDirect(t *testing.T) {
	tests := []struct {
		name string
		m, n int
		p, q int
	}{
		{"4x4 by 2x2", 4, 4, 2, 2},
		{"8x8 by 3x3", 8, 8, 3, 3},
		{"7x9 by 3x4", 7, 9, 3, 4},
		{"9x7 by 4x3", 9, 7, 4, 3},
		{"equal size", 5, 6, 5, 6},
		{"wide filter", 6, 10, 2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testutil.RandomMatrix(tt.m, tt.n, int64(tt.m*100+tt.n))
			filter := testutil.RandomMatrix(tt.p, tt.q, int64(tt.p*100+tt.q))

			fftValid, err := NewValid().Convolve(input, filter)
			if err != nil {
				t.Fatalf("fft valid: %v", err)
			}
			directValid, err := NewDirectValid().Convolve(input, filter)
			if err != nil {
				t.Fatalf("direct valid: %v", err)
			}
			testutil.RequireNearlyEqual(t, fftValid, directValid, eps)

			fftFull, err := NewFull().Convolve(input, filter)
			if err != nil {
				t.Fatalf("fft full: %v", err)
			}
			directFull, err := NewDirectFull().Convolve(input, filter)
			if err != nil {
				t.Fatalf("direct full: %v", err)
			}
			testutil.RequireNearlyEqual(t, fftFull, directFull, eps)
		})
	}
}

func TestFullFilterLargerThanInput(t *testing.T) {
	// Full mode has no size precondition; a filter larger than the
	// input still produces (m+p-1) x (n+q-1).
	input := testutil.RandomMatrix(2, 3, 3)
	filter := testutil.RandomMatrix(4, 5, 4)

	fft, err := NewFull().Convolve(input, filter)
	if err != nil {
		t.Fatalf("fft full: %v", err)
	}
	direct, err := NewDirectFull().Convolve(input, filter)
	if err != nil {
		t.Fatalf("direct full: %v", err)
	}
	testutil.RequireShape(t, fft, 5, 7)
	testutil.RequireNearlyEqual(t, fft, direct, eps)
}

func TestPadLastDimInvariance(t *testing.T) {
	input := testutil.RandomMatrix(6, 7, 11) // odd natural working width
	filter := testutil.RandomMatrix(3, 3, 12)

	plainValid, err := NewValid().Convolve(input, filter)
	if err != nil {
		t.Fatalf("valid: %v", err)
	}
	paddedValid, err := NewValid(WithPadLastDim()).Convolve(input, filter)
	if err != nil {
		t.Fatalf("valid padLastDim: %v", err)
	}
	testutil.RequireNearlyEqual(t, paddedValid, plainValid, eps)

	plainFull, err := NewFull().Convolve(input, filter)
	if err != nil {
		t.Fatalf("full: %v", err)
	}
	paddedFull, err := NewFull(WithPadLastDim()).Convolve(input, filter)
	if err != nil {
		t.Fatalf("full padLastDim: %v", err)
	}
	testutil.RequireNearlyEqual(t, paddedFull, plainFull, eps)
}

func TestUnitFilterIdentity(t *testing.T) {
	input := testutil.Sequential(5, 4)
	unit, _ := mat.FromRows([][]float64{{1}})

	for _, engine := range []Convolver{NewValid(), NewFull(), NewDirectValid(), NewDirectFull()} {
		out, err := engine.Convolve(input, unit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.RequireNearlyEqual(t, out, input, eps)
	}
}

func TestLinearity(t *testing.T) {
	const a, b = 2.5, -1.25

	x := testutil.RandomMatrix(6, 6, 21)
	y := testutil.RandomMatrix(6, 6, 22)
	filter := testutil.RandomMatrix(3, 3, 23)

	combined := x.Scale(a)
	combined.AddInPlace(y.Scale(b))

	for _, engine := range []Convolver{NewValid(), NewFull()} {
		lhs, err := engine.Convolve(combined, filter)
		if err != nil {
			t.Fatalf("combined: %v", err)
		}

		cx, err := engine.Convolve(x, filter)
		if err != nil {
			t.Fatalf("x: %v", err)
		}
		cy, err := engine.Convolve(y, filter)
		if err != nil {
			t.Fatalf("y: %v", err)
		}

		rhs := cx.Scale(a)
		rhs.AddInPlace(cy.Scale(b))

		testutil.RequireNearlyEqual(t, lhs, rhs, eps)
	}
}

func TestValidFilterTooLarge(t *testing.T) {
	input := testutil.Ones(3, 3)

	tests := []struct {
		name   string
		filter *mat.Matrix
	}{
		{"too many rows", testutil.Ones(4, 2)},
		{"too many cols", testutil.Ones(2, 4)},
		{"both too large", testutil.Ones(5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, engine := range []Convolver{NewValid(), NewDirectValid()} {
				if _, err := engine.Convolve(input, tt.filter); !errors.Is(err, ErrInvalidDimensions) {
					t.Fatalf("got %v, want ErrInvalidDimensions", err)
				}
			}
		})
	}
}

func TestEmptyOperands(t *testing.T) {
	engines := []Convolver{NewValid(), NewFull(), NewDirectValid(), NewDirectFull()}
	good := testutil.Ones(3, 3)
	empty := mat.Zeros(0, 3)

	for _, engine := range engines {
		if _, err := engine.Convolve(empty, good); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("got %v, want ErrEmptyInput", err)
		}
		if _, err := engine.Convolve(good, empty); !errors.Is(err, ErrEmptyFilter) {
			t.Fatalf("got %v, want ErrEmptyFilter", err)
		}
	}
}

func TestConvolveTo(t *testing.T) {
	input := testutil.RandomMatrix(5, 5, 31)
	filter := testutil.RandomMatrix(2, 2, 32)

	want, err := NewValid().Convolve(input, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dst := mat.Zeros(4, 4)
	if err := NewValid().ConvolveTo(dst, input, filter); err != nil {
		t.Fatalf("ConvolveTo: %v", err)
	}
	testutil.RequireNearlyEqual(t, dst, want, eps)

	// Wrong destination shape is rejected without touching dst.
	bad := mat.Zeros(3, 3)
	if err := NewValid().ConvolveTo(bad, input, filter); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("got %v, want ErrShapeMismatch", err)
	}

	fullDst := mat.Zeros(6, 6)
	if err := NewFull().ConvolveTo(fullDst, input, filter); err != nil {
		t.Fatalf("full ConvolveTo: %v", err)
	}
	wantFull, err := NewDirectFull().Convolve(input, filter)
	if err != nil {
		t.Fatalf("direct full: %v", err)
	}
	testutil.RequireNearlyEqual(t, fullDst, wantFull, eps)
}

func TestOneShotSelection(t *testing.T) {
	// Small filter goes direct, large filter goes through the FFT
	// path; both must agree with the direct reference.
	input := testutil.RandomMatrix(16, 16, 41)

	small := testutil.RandomMatrix(3, 3, 42)
	large := testutil.RandomMatrix(9, 9, 43)

	for _, filter := range []*mat.Matrix{small, large} {
		got, err := ConvolveValid(input, filter)
		if err != nil {
			t.Fatalf("ConvolveValid: %v", err)
		}
		want, err := NewDirectValid().Convolve(input, filter)
		if err != nil {
			t.Fatalf("direct: %v", err)
		}
		testutil.RequireNearlyEqual(t, got, want, eps)

		gotFull, err := ConvolveFull(input, filter)
		if err != nil {
			t.Fatalf("ConvolveFull: %v", err)
		}
		wantFull, err := NewDirectFull().Convolve(input, filter)
		if err != nil {
			t.Fatalf("direct full: %v", err)
		}
		testutil.RequireNearlyEqual(t, gotFull, wantFull, eps)
	}
}

func TestOutputShapeHelpers(t *testing.T) {
	if got := ValidOutputRows(7, 3); got != 5 {
		t.Fatalf("ValidOutputRows = %d, want 5", got)
	}
	if got := ValidOutputCols(9, 4); got != 6 {
		t.Fatalf("ValidOutputCols = %d, want 6", got)
	}
	if got := FullOutputRows(7, 3); got != 9 {
		t.Fatalf("FullOutputRows = %d, want 9", got)
	}
	if got := FullOutputCols(9, 4); got != 12 {
		t.Fatalf("FullOutputCols = %d, want 12", got)
	}
}
