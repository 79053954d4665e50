package conv2d

import (
	"errors"

	"github.com/cwbudde/algo-conv2d/mat"
)

// Errors returned by the convolution engines.
var (
	ErrEmptyInput        = errors.New("conv2d: empty input")
	ErrEmptyFilter       = errors.New("conv2d: empty filter")
	ErrInvalidDimensions = errors.New("conv2d: filter exceeds input dimensions")
	ErrShapeMismatch     = errors.New("conv2d: destination shape mismatch")
)

// Convolver computes a 2D convolution. The boundary mode is a property
// of the implementation, fixed when the engine is constructed; Convolve
// itself never branches on it.
type Convolver interface {
	Convolve(input, filter *mat.Matrix) (*mat.Matrix, error)
}

// ValidOutputRows returns the row count of a valid-mode convolution of
// an inputRows-row input with a filterRows-row filter.
func ValidOutputRows(inputRows, filterRows int) int {
	return inputRows - filterRows + 1
}

// ValidOutputCols returns the column count of a valid-mode convolution.
func ValidOutputCols(inputCols, filterCols int) int {
	return inputCols - filterCols + 1
}

// FullOutputRows returns the row count of a full-mode convolution.
func FullOutputRows(inputRows, filterRows int) int {
	return inputRows + filterRows - 1
}

// FullOutputCols returns the column count of a full-mode convolution.
func FullOutputCols(inputCols, filterCols int) int {
	return inputCols + filterCols - 1
}

// directThreshold is the filter area below which the one-shot helpers
// use direct convolution instead of the FFT path.
const directThreshold = 64

// ConvolveValid performs a one-shot valid-mode convolution with
// automatic algorithm selection: direct for small filters, FFT-based
// otherwise.
func ConvolveValid(input, filter *mat.Matrix) (*mat.Matrix, error) {
	if err := validateOperands(input, filter); err != nil {
		return nil, err
	}

	if filter.Rows*filter.Cols <= directThreshold {
		return NewDirectValid().Convolve(input, filter)
	}

	return NewValid().Convolve(input, filter)
}

// ConvolveFull performs a one-shot full-mode convolution with
// automatic algorithm selection.
func ConvolveFull(input, filter *mat.Matrix) (*mat.Matrix, error) {
	if err := validateOperands(input, filter); err != nil {
		return nil, err
	}

	if filter.Rows*filter.Cols <= directThreshold {
		return NewDirectFull().Convolve(input, filter)
	}

	return NewFull().Convolve(input, filter)
}

func validateOperands(input, filter *mat.Matrix) error {
	if input.IsEmpty() {
		return ErrEmptyInput
	}
	if filter.IsEmpty() {
		return ErrEmptyFilter
	}
	return nil
}

func validateValidDims(input, filter *mat.Matrix) error {
	if filter.Rows > input.Rows || filter.Cols > input.Cols {
		return ErrInvalidDimensions
	}
	return nil
}
