package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// DFTConvolver is a stateful frequency-domain convolution engine: the
// filter spectrum is transformed once at construction, and RunFilter is
// called repeatedly against freshly written input to produce one linear
// convolution per call.
//
// Callers write up to InputSize() samples into In()[0:InputSize()] before
// calling RunFilter, and read OutputSize() result samples from Out().
type DFTConvolver struct {
	inputSize  int
	filterSize int
	outputSize int
	fftSize    int

	plan *algofft.Plan[complex128]

	in, out     []complex128
	filterSpec  []complex128
	inputSpec   []complex128
}

// NewDFTConvolver builds a convolver for inputSize-sample blocks against
// the given filter coefficients.
func NewDFTConvolver(inputSize int, filter []float64) (*DFTConvolver, error) {
	if inputSize <= 0 {
		return nil, fmt.Errorf("conv: dft convolver input size must be > 0, got %d", inputSize)
	}
	if len(filter) == 0 {
		return nil, ErrEmptyKernel
	}

	filterSize := len(filter)
	outputSize := inputSize + filterSize - 1
	fftSize := nextPowerOf2(outputSize)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: dft convolver: failed to create FFT plan: %w", err)
	}

	filterPadded := make([]complex128, fftSize)
	for i, v := range filter {
		filterPadded[i] = complex(v, 0)
	}
	filterSpec := make([]complex128, fftSize)
	if err := plan.Forward(filterSpec, filterPadded); err != nil {
		return nil, fmt.Errorf("conv: dft convolver: failed to transform filter: %w", err)
	}

	return &DFTConvolver{
		inputSize:  inputSize,
		filterSize: filterSize,
		outputSize: outputSize,
		fftSize:    fftSize,
		plan:       plan,
		in:         make([]complex128, fftSize),
		out:        make([]complex128, fftSize),
		filterSpec: filterSpec,
		inputSpec:  make([]complex128, fftSize),
	}, nil
}

// InputSize returns the number of valid samples expected in In() before a
// call to RunFilter.
func (c *DFTConvolver) InputSize() int { return c.inputSize }

// FilterSize returns the filter length supplied at construction.
func (c *DFTConvolver) FilterSize() int { return c.filterSize }

// OutputSize returns InputSize()+FilterSize()-1, the number of valid
// samples in Out() after RunFilter.
func (c *DFTConvolver) OutputSize() int { return c.outputSize }

// FFTSize returns the internal transform length.
func (c *DFTConvolver) FFTSize() int { return c.fftSize }

// In returns the real-valued input buffer; write samples into
// In()[0:InputSize()] before calling RunFilter. The buffer is
// complex-valued (real zero-padded) to avoid reallocating per call; only
// the real part is meaningful to callers.
func (c *DFTConvolver) In() []complex128 { return c.in }

// Out returns the result buffer; read Out()[0:OutputSize()] after
// RunFilter.
func (c *DFTConvolver) Out() []complex128 { return c.out }

// RunFilter performs the forward transform of In(), the point-wise complex
// multiply against the stored filter spectrum, and the inverse transform
// into Out(). The point-wise multiply is embarrassingly parallel over
// FFTSize() independent elements and is fanned out across goroutines once
// the transform is large enough to amortise that cost.
func (c *DFTConvolver) RunFilter() error {
	if err := c.plan.Forward(c.inputSpec, c.in); err != nil {
		return fmt.Errorf("conv: dft convolver: forward transform failed: %w", err)
	}

	pointwiseMultiply(c.inputSpec, c.filterSpec)

	if err := c.plan.Inverse(c.out, c.inputSpec); err != nil {
		return fmt.Errorf("conv: dft convolver: inverse transform failed: %w", err)
	}
	return nil
}

// parallelMultiplyThreshold is the element count at or above which pointwiseMultiply
// fans the work out across goroutines instead of running the sequential loop.
// Below it, goroutine scheduling overhead outweighs the saved arithmetic for
// the block sizes this library's own callers (freeverb, overlap-add windows
// in the low hundreds of samples) actually use.
const parallelMultiplyThreshold = 4096

// pointwiseMultiply computes dst[i] *= spec[i] for every index, in
// parallel for large transforms, matching the fork-join point expressly
// permitted for a DFT convolver's complex multiply.
func pointwiseMultiply(dst, spec []complex128) {
	n := len(dst)
	if n < parallelMultiplyThreshold {
		for i := 0; i < n; i++ {
			dst[i] *= spec[i]
		}
		return
	}

	workers := 4
	chunk := (n + workers - 1) / workers

	done := make(chan struct{}, workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] *= spec[i]
			}
			done <- struct{}{}
		}(start, end)
	}
	for w := 0; w < workers; w++ {
		<-done
	}
}
