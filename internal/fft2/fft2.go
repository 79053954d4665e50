// Package fft2 composes the 1D FFT plans from algo-fft into a 2D
// transform over flat row-major complex buffers.
//
// The forward transform applies a length-cols FFT to every row, then a
// length-rows FFT to every column via strided access. The inverse
// applies the normalized inverse plans in the same order, so a full
// round trip carries the usual 1/(rows*cols) scaling and reproduces
// the input.
package fft2

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Plan holds the pair of 1D plans for a fixed rows x cols shape.
// A Plan is safe for concurrent use only if the underlying algo-fft
// plans are; callers that share one across goroutines should create
// one per goroutine instead.
type Plan struct {
	rows int
	cols int

	rowPlan *algofft.Plan[complex128]
	colPlan *algofft.Plan[complex128]
}

// NewPlan creates a 2D transform plan for rows x cols buffers.
func NewPlan(rows, cols int) (*Plan, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("fft2: invalid shape %dx%d", rows, cols)
	}

	rowPlan, err := algofft.NewPlan64(cols)
	if err != nil {
		return nil, fmt.Errorf("fft2: row plan (n=%d): %w", cols, err)
	}

	colPlan, err := algofft.NewPlan64(rows)
	if err != nil {
		return nil, fmt.Errorf("fft2: column plan (n=%d): %w", rows, err)
	}

	return &Plan{
		rows:    rows,
		cols:    cols,
		rowPlan: rowPlan,
		colPlan: colPlan,
	}, nil
}

// Rows returns the row count of the planned shape.
func (p *Plan) Rows() int { return p.rows }

// Cols returns the column count of the planned shape.
func (p *Plan) Cols() int { return p.cols }

// Forward computes the in-place 2D forward transform of buf, which
// must hold rows*cols elements in row-major order.
func (p *Plan) Forward(buf []complex128) error {
	if err := p.checkLen(buf); err != nil {
		return err
	}

	for r := 0; r < p.rows; r++ {
		row := buf[r*p.cols : (r+1)*p.cols]
		if err := p.rowPlan.Forward(row, row); err != nil {
			return fmt.Errorf("fft2: forward row %d: %w", r, err)
		}
	}

	// Stride cols walks one column of a row-major buffer.
	for c := 0; c < p.cols; c++ {
		col := buf[c:]
		if err := p.colPlan.ForwardStrided(col, col, p.cols); err != nil {
			return fmt.Errorf("fft2: forward column %d: %w", c, err)
		}
	}

	return nil
}

// Inverse computes the in-place 2D inverse transform of buf.
// The underlying plans normalize by 1/n per dimension, so Forward
// followed by Inverse restores the original values.
func (p *Plan) Inverse(buf []complex128) error {
	if err := p.checkLen(buf); err != nil {
		return err
	}

	for r := 0; r < p.rows; r++ {
		row := buf[r*p.cols : (r+1)*p.cols]
		if err := p.rowPlan.Inverse(row, row); err != nil {
			return fmt.Errorf("fft2: inverse row %d: %w", r, err)
		}
	}

	for c := 0; c < p.cols; c++ {
		col := buf[c:]
		if err := p.colPlan.InverseStrided(col, col, p.cols); err != nil {
			return fmt.Errorf("fft2: inverse column %d: %w", c, err)
		}
	}

	return nil
}

func (p *Plan) checkLen(buf []complex128) error {
	if len(buf) != p.rows*p.cols {
		return fmt.Errorf("fft2: buffer length %d does not match %dx%d", len(buf), p.rows, p.cols)
	}
	return nil
}

// Widen converts real samples into a freshly allocated complex buffer.
func Widen(src []float64) []complex128 {
	dst := make([]complex128, len(src))
	for i, v := range src {
		dst[i] = complex(v, 0)
	}
	return dst
}

// Real extracts the real component of src into dst.
// The slices must have equal length.
func Real(dst []float64, src []complex128) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("fft2: length mismatch %d vs %d", len(dst), len(src)))
	}
	for i, v := range src {
		dst[i] = real(v)
	}
}
