package conv2d

import "github.com/cwbudde/algo-conv2d/mat"

// CorrelateValid computes the valid-mode 2D cross-correlation of
// input and template. Cross-correlation slides the template over the
// input without reversal; it equals convolution with the template
// rotated by 180 degrees.
func CorrelateValid(input, template *mat.Matrix) (*mat.Matrix, error) {
	if err := validateOperands(input, template); err != nil {
		return nil, err
	}
	return ConvolveValid(input, template.Flipped())
}

// CorrelateFull computes the full-mode 2D cross-correlation.
// Output index (k, l) corresponds to displacement
// (k - (template.Rows-1), l - (template.Cols-1)).
func CorrelateFull(input, template *mat.Matrix) (*mat.Matrix, error) {
	if err := validateOperands(input, template); err != nil {
		return nil, err
	}
	return ConvolveFull(input, template.Flipped())
}

// AutoCorrelate computes the full-mode auto-correlation of m.
// The zero-displacement value sits at the center, index
// (m.Rows-1, m.Cols-1).
func AutoCorrelate(m *mat.Matrix) (*mat.Matrix, error) {
	return CorrelateFull(m, m)
}
