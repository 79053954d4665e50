package conv2d

import (
	"fmt"

	"github.com/cwbudde/algo-conv2d/internal/fft2"
	"github.com/cwbudde/algo-conv2d/mat"
)

// Option configures an FFT convolution engine at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	padLastDim bool
}

// WithPadLastDim appends one extra zero column to the working buffers
// before the transform. Some transform backends only accept an even
// number of columns; enabling the flag keeps an odd-width input
// usable with such a backend. The extra column lies outside the
// extracted region of interest, so results and output shapes are
// unchanged either way.
func WithPadLastDim() Option {
	return func(c *engineConfig) {
		c.padLastDim = true
	}
}

// Valid is an FFT-based convolution engine producing only the
// positions where the filter fully overlaps the input. For an m x n
// input and p x q filter the output is (m-p+1) x (n-q+1); the filter
// must not exceed the input in either dimension.
//
// Each call is self-contained: all working buffers are allocated per
// call, so a single engine may be used from multiple goroutines.
type Valid struct {
	padLastDim bool
}

// NewValid creates a valid-mode FFT convolution engine.
func NewValid(opts ...Option) *Valid {
	var cfg engineConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Valid{padLastDim: cfg.padLastDim}
}

// Convolve computes the valid-mode convolution of input and filter.
func (v *Valid) Convolve(input, filter *mat.Matrix) (*mat.Matrix, error) {
	if err := validateOperands(input, filter); err != nil {
		return nil, err
	}
	if err := validateValidDims(input, filter); err != nil {
		return nil, err
	}

	workRows := input.Rows
	workCols := input.Cols
	if v.padLastDim {
		workCols++
	}

	work, err := transformMultiply(
		input.Resized(workRows, workCols),
		filter.Resized(workRows, workCols),
	)
	if err != nil {
		return nil, err
	}

	// The first p-1 rows and q-1 columns carry circular wrap-around;
	// the region of interest starts just past them. The padLastDim
	// column falls outside the window and is discarded with the rest.
	return work.Submatrix(filter.Rows-1, filter.Cols-1, input.Rows-1, input.Cols-1), nil
}

// ConvolveTo computes the valid-mode convolution into dst, which must
// already have the output shape (m-p+1) x (n-q+1).
func (v *Valid) ConvolveTo(dst, input, filter *mat.Matrix) error {
	out, err := v.Convolve(input, filter)
	if err != nil {
		return err
	}
	return copyInto(dst, out)
}

// Full is an FFT-based convolution engine producing every position
// where input and filter overlap at all. For an m x n input and p x q
// filter the output is (m+p-1) x (n+q-1).
//
// Each call is self-contained; see [Valid] for the concurrency note.
type Full struct {
	padLastDim bool
}

// NewFull creates a full-mode FFT convolution engine.
func NewFull(opts ...Option) *Full {
	var cfg engineConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Full{padLastDim: cfg.padLastDim}
}

// Convolve computes the full-mode convolution of input and filter.
func (f *Full) Convolve(input, filter *mat.Matrix) (*mat.Matrix, error) {
	if err := validateOperands(input, filter); err != nil {
		return nil, err
	}

	// Working dimensions, not the final output shape: the input is
	// surrounded by filter-1 zeros on every side so the circular
	// result contains the whole linear convolution.
	workRows := input.Rows + 2*(filter.Rows-1)
	workCols := input.Cols + 2*(filter.Cols-1)
	if f.padLastDim {
		workCols++
	}

	padded := mat.Zeros(workRows, workCols)
	padded.EmbedAt(input, filter.Rows-1, filter.Cols-1)

	work, err := transformMultiply(padded, filter.Resized(workRows, workCols))
	if err != nil {
		return nil, err
	}

	return work.Submatrix(filter.Rows-1, filter.Cols-1,
		2*(filter.Rows-1)+input.Rows-1,
		2*(filter.Cols-1)+input.Cols-1), nil
}

// ConvolveTo computes the full-mode convolution into dst, which must
// already have the output shape (m+p-1) x (n+q-1).
func (f *Full) ConvolveTo(dst, input, filter *mat.Matrix) error {
	out, err := f.Convolve(input, filter)
	if err != nil {
		return err
	}
	return copyInto(dst, out)
}

// transformMultiply computes the circular convolution of two
// equal-shape matrices via forward transform, element-wise product,
// inverse transform, and real-part extraction.
func transformMultiply(a, b *mat.Matrix) (*mat.Matrix, error) {
	rows, cols := a.Rows, a.Cols

	plan, err := fft2.NewPlan(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("conv2d: create transform plan: %w", err)
	}

	fa := fft2.Widen(a.Data)
	fb := fft2.Widen(b.Data)

	if err := plan.Forward(fa); err != nil {
		return nil, fmt.Errorf("conv2d: forward transform of input: %w", err)
	}
	if err := plan.Forward(fb); err != nil {
		return nil, fmt.Errorf("conv2d: forward transform of filter: %w", err)
	}

	for i := range fa {
		fa[i] *= fb[i]
	}

	if err := plan.Inverse(fa); err != nil {
		return nil, fmt.Errorf("conv2d: inverse transform: %w", err)
	}

	out := mat.Zeros(rows, cols)
	fft2.Real(out.Data, fa)
	return out, nil
}

func copyInto(dst, src *mat.Matrix) error {
	if !dst.SameShape(src) {
		return fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrShapeMismatch, dst.Rows, dst.Cols, src.Rows, src.Cols)
	}
	copy(dst.Data, src.Data)
	return nil
}
