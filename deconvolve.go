package conv2d

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-conv2d/internal/fft2"
	"github.com/cwbudde/algo-conv2d/mat"
)

// Deconvolution errors.
var (
	ErrDivisionByZero = errors.New("conv2d: division by zero in deconvolution")
)

// DeconvMethod specifies the deconvolution method.
type DeconvMethod int

const (
	// DeconvNaive performs plain spectral division.
	// Fast but sensitive to noise and zeros in the filter spectrum.
	DeconvNaive DeconvMethod = iota

	// DeconvRegularized adds a small epsilon to the denominator:
	// X = Y * conj(H) / (|H|^2 + epsilon).
	DeconvRegularized

	// DeconvWiener applies Wiener deconvolution with a noise-to-signal
	// ratio in the denominator. Optimal in the MSE sense when the
	// variances are known.
	DeconvWiener
)

// DeconvOptions configures deconvolution behavior.
type DeconvOptions struct {
	// Method selects the deconvolution algorithm.
	Method DeconvMethod

	// Epsilon is the regularization parameter for DeconvRegularized.
	// Typical values: 1e-6 to 1e-3 depending on SNR.
	Epsilon float64

	// NoiseVariance is the estimated noise variance for Wiener
	// deconvolution. If zero, a fraction of the observed variance is
	// assumed.
	NoiseVariance float64

	// SignalVariance is the estimated signal variance for Wiener
	// deconvolution. If zero, it is estimated from the observation.
	SignalVariance float64
}

// DefaultDeconvOptions returns default deconvolution options.
func DefaultDeconvOptions() DeconvOptions {
	return DeconvOptions{
		Method:  DeconvRegularized,
		Epsilon: 1e-6,
	}
}

// Deconvolve recovers an estimate of the original matrix from a
// full-mode convolution result. Given observed = full(x, filter),
// it returns an estimate of x with shape
// (observed.Rows - filter.Rows + 1) x (observed.Cols - filter.Cols + 1).
//
// This is an ill-posed problem when the filter spectrum has
// near-zeros or the observation is noisy; use DeconvRegularized or
// DeconvWiener in those cases.
func Deconvolve(observed, filter *mat.Matrix, opts DeconvOptions) (*mat.Matrix, error) {
	if observed.IsEmpty() {
		return nil, ErrEmptyInput
	}
	if filter.IsEmpty() {
		return nil, ErrEmptyFilter
	}

	switch opts.Method {
	case DeconvNaive:
		return deconvolveSpectral(observed, filter, func(y, h complex128, hMagSq float64) (complex128, error) {
			if cmplx.Abs(h) < 1e-15 {
				return 0, ErrDivisionByZero
			}
			return y / h, nil
		})
	case DeconvRegularized:
		eps := opts.Epsilon
		if eps <= 0 {
			eps = 1e-6
		}
		return deconvolveSpectral(observed, filter, func(y, h complex128, hMagSq float64) (complex128, error) {
			return y * cmplx.Conj(h) / complex(hMagSq+eps, 0), nil
		})
	case DeconvWiener:
		nsr := noiseToSignalRatio(observed, opts)
		return deconvolveSpectral(observed, filter, func(y, h complex128, hMagSq float64) (complex128, error) {
			return y * cmplx.Conj(h) / complex(hMagSq+nsr, 0), nil
		})
	default:
		return Deconvolve(observed, filter, DefaultDeconvOptions())
	}
}

// deconvolveSpectral runs the shared transform-divide-inverse skeleton.
// divide maps one frequency bin (observation, filter response,
// squared filter magnitude) to the estimated bin.
func deconvolveSpectral(observed, filter *mat.Matrix,
	divide func(y, h complex128, hMagSq float64) (complex128, error)) (*mat.Matrix, error) {

	workRows := observed.Rows
	workCols := observed.Cols

	outRows := observed.Rows - filter.Rows + 1
	outCols := observed.Cols - filter.Cols + 1
	if outRows <= 0 {
		outRows = observed.Rows
	}
	if outCols <= 0 {
		outCols = observed.Cols
	}

	plan, err := fft2.NewPlan(workRows, workCols)
	if err != nil {
		return nil, fmt.Errorf("conv2d: create transform plan: %w", err)
	}

	fy := fft2.Widen(observed.Data)
	fh := fft2.Widen(filter.Resized(workRows, workCols).Data)

	if err := plan.Forward(fy); err != nil {
		return nil, fmt.Errorf("conv2d: forward transform of observation: %w", err)
	}
	if err := plan.Forward(fh); err != nil {
		return nil, fmt.Errorf("conv2d: forward transform of filter: %w", err)
	}

	// Squared magnitude of the filter response, computed on the
	// unpacked real/imaginary planes.
	n := len(fh)
	re := make([]float64, n)
	im := make([]float64, n)
	for i, v := range fh {
		re[i] = real(v)
		im[i] = imag(v)
	}
	power := make([]float64, n)
	vecmath.Power(power, re, im)

	for i := range fy {
		est, err := divide(fy[i], fh[i], power[i])
		if err != nil {
			return nil, fmt.Errorf("%w: at frequency bin %d", err, i)
		}
		fy[i] = est
	}

	if err := plan.Inverse(fy); err != nil {
		return nil, fmt.Errorf("conv2d: inverse transform: %w", err)
	}

	work := mat.Zeros(workRows, workCols)
	fft2.Real(work.Data, fy)
	return work.Submatrix(0, 0, outRows-1, outCols-1), nil
}

// noiseToSignalRatio derives the Wiener denominator term from the
// options, estimating missing variances from the observation.
func noiseToSignalRatio(observed *mat.Matrix, opts DeconvOptions) float64 {
	signalVar := opts.SignalVariance
	if signalVar <= 0 {
		signalVar = variance(observed.Data)
	}

	noiseVar := opts.NoiseVariance
	if noiseVar <= 0 {
		// Rough heuristic; in practice noise should be measured.
		noiseVar = signalVar * 0.01
	}

	nsr := noiseVar / signalVar
	if nsr <= 0 {
		nsr = 1e-6
	}
	return nsr
}

func variance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	var sum float64
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(data))
}
