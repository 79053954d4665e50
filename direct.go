package conv2d

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-conv2d/mat"
)

// DirectValid computes valid-mode convolution in the spatial domain.
// It is O(m*n*p*q) and intended for small filters, where it beats the
// transform round trip, and as a bit-for-bit reference in tests.
type DirectValid struct{}

// NewDirectValid creates a valid-mode spatial convolution engine.
func NewDirectValid() *DirectValid {
	return &DirectValid{}
}

// Convolve computes the valid-mode convolution of input and filter.
func (d *DirectValid) Convolve(input, filter *mat.Matrix) (*mat.Matrix, error) {
	if err := validateOperands(input, filter); err != nil {
		return nil, err
	}
	if err := validateValidDims(input, filter); err != nil {
		return nil, err
	}

	p, q := filter.Rows, filter.Cols
	out := mat.Zeros(ValidOutputRows(input.Rows, p), ValidOutputCols(input.Cols, q))

	for i := 0; i < out.Rows; i++ {
		dstRow := out.Row(i)
		for j := 0; j < out.Cols; j++ {
			var sum float64
			for u := 0; u < p; u++ {
				// Convolution reverses the filter against the input.
				inRow := input.Row(i + p - 1 - u)
				fRow := filter.Row(u)
				for v := 0; v < q; v++ {
					sum += fRow[v] * inRow[j+q-1-v]
				}
			}
			dstRow[j] = sum
		}
	}

	return out, nil
}

// ConvolveTo computes the valid-mode convolution into a pre-shaped dst.
func (d *DirectValid) ConvolveTo(dst, input, filter *mat.Matrix) error {
	out, err := d.Convolve(input, filter)
	if err != nil {
		return err
	}
	return copyInto(dst, out)
}

// DirectFull computes full-mode convolution in the spatial domain.
type DirectFull struct{}

// NewDirectFull creates a full-mode spatial convolution engine.
func NewDirectFull() *DirectFull {
	return &DirectFull{}
}

// Convolve computes the full-mode convolution of input and filter.
func (d *DirectFull) Convolve(input, filter *mat.Matrix) (*mat.Matrix, error) {
	if err := validateOperands(input, filter); err != nil {
		return nil, err
	}

	p, q := filter.Rows, filter.Cols
	out := mat.Zeros(FullOutputRows(input.Rows, p), FullOutputCols(input.Cols, q))

	// Scatter-accumulate: each input sample contributes a scaled copy
	// of every filter row. Vectorized for wider filter rows, same
	// threshold the 1D direct path uses.
	const simdThreshold = 4
	if q >= simdThreshold {
		temp := make([]float64, q)
		for i := 0; i < input.Rows; i++ {
			inRow := input.Row(i)
			for u := 0; u < p; u++ {
				fRow := filter.Row(u)
				dstRow := out.Row(i + u)
				for j := 0; j < input.Cols; j++ {
					vecmath.ScaleBlock(temp, fRow, inRow[j])
					vecmath.AddBlockInPlace(dstRow[j:j+q], temp)
				}
			}
		}
		return out, nil
	}

	for i := 0; i < input.Rows; i++ {
		inRow := input.Row(i)
		for u := 0; u < p; u++ {
			fRow := filter.Row(u)
			dstRow := out.Row(i + u)
			for j := 0; j < input.Cols; j++ {
				x := inRow[j]
				for v := 0; v < q; v++ {
					dstRow[j+v] += x * fRow[v]
				}
			}
		}
	}

	return out, nil
}

// ConvolveTo computes the full-mode convolution into a pre-shaped dst.
func (d *DirectFull) ConvolveTo(dst, input, filter *mat.Matrix) error {
	out, err := d.Convolve(input, filter)
	if err != nil {
		return err
	}
	return copyInto(dst, out)
}
