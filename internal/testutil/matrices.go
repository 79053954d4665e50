package testutil

import (
	"math/rand"

	"github.com/cwbudde/algo-conv2d/mat"
)

// RandomMatrix returns a rows x cols matrix with deterministic
// pseudo-random values in [-1, 1).
func RandomMatrix(rows, cols int, seed int64) *mat.Matrix {
	rng := rand.New(rand.NewSource(seed))
	m := mat.Zeros(rows, cols)
	for i := range m.Data {
		m.Data[i] = 2*rng.Float64() - 1
	}
	return m
}

// Ones returns a rows x cols matrix with every element set to one.
func Ones(rows, cols int) *mat.Matrix {
	m := mat.Zeros(rows, cols)
	for i := range m.Data {
		m.Data[i] = 1
	}
	return m
}

// Sequential returns a rows x cols matrix with elements 1, 2, 3, ...
// in row-major order. Handy for spotting transposition mistakes.
func Sequential(rows, cols int) *mat.Matrix {
	m := mat.Zeros(rows, cols)
	for i := range m.Data {
		m.Data[i] = float64(i + 1)
	}
	return m
}
