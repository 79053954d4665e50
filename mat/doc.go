// Package mat provides a dense row-major float64 matrix used by the
// convolution engines.
//
// The type is deliberately small: it covers exactly the shaping
// operations convolution needs — zero-fill padding, truncation,
// embedding a matrix into a larger zero buffer, and inclusive
// sub-region extraction. The pad-or-truncate contract of [Matrix.Resized]
// is load-bearing for the frequency-domain engines: grown regions are
// always zero-filled, shrunk regions always drop trailing rows and
// columns.
//
// Element-wise hot paths (Hadamard product, scaling, accumulation) are
// backed by SIMD block operations from github.com/cwbudde/algo-vecmath.
package mat
