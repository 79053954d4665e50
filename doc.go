// Package conv2d provides two-dimensional discrete convolution,
// correlation, and deconvolution over dense float64 matrices.
//
// Two boundary modes are offered, each as its own engine type fixed at
// construction:
//
//   - Valid: output restricted to positions where the filter fully
//     overlaps the input, shape (m-p+1) x (n-q+1)
//   - Full: output covering every position where input and filter
//     overlap at all, shape (m+p-1) x (n+q-1)
//
// The FFT engines zero-pad both operands to a common working size,
// multiply their frequency-domain representations, inverse-transform,
// and slice out the region of interest that maps the circular result
// back to the requested linear convolution window. The spatial-domain
// engines compute the same results directly and are preferable for
// small filters.
//
// # Usage
//
// For repeated convolution with one boundary configuration, construct
// an engine once and reuse it:
//
//	engine := conv2d.NewValid()
//	out, err := engine.Convolve(input, filter)
//
// For one-shot use with automatic algorithm selection:
//
//	out, err := conv2d.ConvolveFull(input, filter)
//
// # Transform backend
//
// The frequency-domain path is built on the 1D plans of
// github.com/MeKo-Christian/algo-fft, composed row-column into a 2D
// transform. That backend accepts arbitrary lengths; for backends
// restricted to even widths, construct the engine with
// [WithPadLastDim] to widen odd working buffers by one zero column.
// The flag never changes results or output shapes.
//
// # Concurrency
//
// Engines hold no per-call state: every invocation allocates its own
// working buffers, so one engine may be shared across goroutines
// operating on independent matrices.
package conv2d
