package mat

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Matrix is a dense row-major matrix of float64 values.
// Data has length Rows*Cols; element (r, c) lives at Data[r*Cols+c].
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// Zeros returns a rows x cols matrix with all elements set to zero.
// Panics if rows or cols is negative.
func Zeros(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("mat: negative dimensions %dx%d", rows, cols))
	}
	return &Matrix{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}
}

// FromSlice wraps row-major data into a rows x cols matrix.
// The data slice is copied, not aliased.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("mat: data length %d does not match %dx%d", len(data), rows, cols)
	}
	m := Zeros(rows, cols)
	copy(m.Data, data)
	return m, nil
}

// FromRows builds a matrix from a slice of equal-length rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("mat: empty row data")
	}
	cols := len(rows[0])
	m := Zeros(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("mat: ragged rows: row %d has %d columns, want %d", r, len(row), cols)
		}
		copy(m.Row(r), row)
	}
	return m, nil
}

// At returns the element at (r, c).
func (m *Matrix) At(r, c int) float64 {
	return m.Data[r*m.Cols+c]
}

// Set stores v at (r, c).
func (m *Matrix) Set(r, c int, v float64) {
	m.Data[r*m.Cols+c] = v
}

// Row returns a view of row r. Mutating the returned slice mutates m.
func (m *Matrix) Row(r int) []float64 {
	return m.Data[r*m.Cols : (r+1)*m.Cols]
}

// IsEmpty reports whether the matrix has no elements.
func (m *Matrix) IsEmpty() bool {
	return m == nil || m.Rows == 0 || m.Cols == 0
}

// SameShape reports whether m and o have identical dimensions.
func (m *Matrix) SameShape(o *Matrix) bool {
	return m.Rows == o.Rows && m.Cols == o.Cols
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := Zeros(m.Rows, m.Cols)
	copy(out.Data, m.Data)
	return out
}

// Resized returns a new rows x cols matrix holding m's data anchored
// at the origin. Grown regions are zero-filled; shrinking drops
// trailing rows and columns. m is left untouched.
func (m *Matrix) Resized(rows, cols int) *Matrix {
	out := Zeros(rows, cols)
	copyRows := min(rows, m.Rows)
	copyCols := min(cols, m.Cols)
	for r := 0; r < copyRows; r++ {
		copy(out.Row(r)[:copyCols], m.Row(r)[:copyCols])
	}
	return out
}

// EmbedAt copies src into m with src's origin placed at (r0, c0).
// Panics if src does not fit inside m at that offset.
func (m *Matrix) EmbedAt(src *Matrix, r0, c0 int) {
	if r0 < 0 || c0 < 0 || r0+src.Rows > m.Rows || c0+src.Cols > m.Cols {
		panic(fmt.Sprintf("mat: embed %dx%d at (%d,%d) exceeds %dx%d",
			src.Rows, src.Cols, r0, c0, m.Rows, m.Cols))
	}
	for r := 0; r < src.Rows; r++ {
		copy(m.Row(r0+r)[c0:c0+src.Cols], src.Row(r))
	}
}

// Submatrix returns a copy of the inclusive region (r0,c0)..(r1,c1).
// Panics if the region is inverted or out of bounds.
func (m *Matrix) Submatrix(r0, c0, r1, c1 int) *Matrix {
	if r0 < 0 || c0 < 0 || r1 < r0 || c1 < c0 || r1 >= m.Rows || c1 >= m.Cols {
		panic(fmt.Sprintf("mat: submatrix (%d,%d)..(%d,%d) out of range for %dx%d",
			r0, c0, r1, c1, m.Rows, m.Cols))
	}
	out := Zeros(r1-r0+1, c1-c0+1)
	for r := 0; r < out.Rows; r++ {
		copy(out.Row(r), m.Row(r0+r)[c0:c1+1])
	}
	return out
}

// Flipped returns m rotated by 180 degrees (both axes reversed).
// Convolving with a flipped filter yields cross-correlation.
func (m *Matrix) Flipped() *Matrix {
	out := Zeros(m.Rows, m.Cols)
	for r := 0; r < m.Rows; r++ {
		src := m.Row(m.Rows - 1 - r)
		dst := out.Row(r)
		for c := 0; c < m.Cols; c++ {
			dst[c] = src[m.Cols-1-c]
		}
	}
	return out
}

// Scale multiplies every element by s, returning a new matrix.
func (m *Matrix) Scale(s float64) *Matrix {
	out := Zeros(m.Rows, m.Cols)
	vecmath.ScaleBlock(out.Data, m.Data, s)
	return out
}

// AddInPlace accumulates o into m element-wise.
// Panics if shapes differ.
func (m *Matrix) AddInPlace(o *Matrix) {
	if !m.SameShape(o) {
		panic(fmt.Sprintf("mat: shape mismatch %dx%d vs %dx%d", m.Rows, m.Cols, o.Rows, o.Cols))
	}
	vecmath.AddBlockInPlace(m.Data, o.Data)
}

// MulElem returns the Hadamard (element-wise) product of m and o.
// Panics if shapes differ.
func (m *Matrix) MulElem(o *Matrix) *Matrix {
	if !m.SameShape(o) {
		panic(fmt.Sprintf("mat: shape mismatch %dx%d vs %dx%d", m.Rows, m.Cols, o.Rows, o.Cols))
	}
	out := Zeros(m.Rows, m.Cols)
	vecmath.MulBlock(out.Data, m.Data, o.Data)
	return out
}

// MulElemInPlace multiplies m element-wise by o.
// Panics if shapes differ.
func (m *Matrix) MulElemInPlace(o *Matrix) {
	if !m.SameShape(o) {
		panic(fmt.Sprintf("mat: shape mismatch %dx%d vs %dx%d", m.Rows, m.Cols, o.Rows, o.Cols))
	}
	vecmath.MulBlockInPlace(m.Data, o.Data)
}
