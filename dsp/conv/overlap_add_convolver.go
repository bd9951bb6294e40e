package conv

import "fmt"

// OverlapAddConvolver streams samples through a DFTConvolver window by
// window, additively overlap-adding each window's result into a circular
// output buffer and reading one output per input sample.
//
// OverlapAddConvolver is driven one sample at a time via Advance and
// carries all of its state (write/input/output indices, the output ring)
// between calls — the shape the rest of this module's primitives use.
type OverlapAddConvolver struct {
	convolver *DFTConvolver

	windowSize    int
	numTransients int
	outputSize    int

	ring []float64

	writeIdx, inputIdx, outputIdx int
}

// NewOverlapAddConvolver wraps a DFTConvolver(windowSize, filter).
func NewOverlapAddConvolver(windowSize int, filter []float64) (*OverlapAddConvolver, error) {
	convolver, err := NewDFTConvolver(windowSize, filter)
	if err != nil {
		return nil, fmt.Errorf("conv: overlap-add convolver: %w", err)
	}

	numTransients := convolver.FilterSize() - 1
	outputSize := windowSize + convolver.FilterSize() - 1

	return &OverlapAddConvolver{
		convolver:     convolver,
		windowSize:    windowSize,
		numTransients: numTransients,
		outputSize:    outputSize,
		ring:          make([]float64, outputSize),
	}, nil
}

// WindowSize returns the input window size.
func (o *OverlapAddConvolver) WindowSize() int { return o.windowSize }

// OutputSize returns the length of the per-window linear convolution
// result, and the size of the internal output ring.
func (o *OverlapAddConvolver) OutputSize() int { return o.outputSize }

// Advance implements the single-sample advance contract.
func (o *OverlapAddConvolver) Advance(x float64) float64 {
	o.convolver.In()[o.inputIdx] = complex(x, 0)
	o.inputIdx++

	if o.inputIdx == o.windowSize {
		o.inputIdx = 0

		if err := o.convolver.RunFilter(); err != nil {
			panic(fmt.Sprintf("conv: overlap-add convolver: %v", err))
		}

		o.clearSlab(o.writeIdx+o.numTransients, o.windowSize)
		o.accumulate(o.writeIdx)

		o.outputIdx = o.writeIdx
		o.writeIdx = (o.writeIdx + o.windowSize) % o.outputSize
	}

	y := o.ring[o.outputIdx]
	o.outputIdx = (o.outputIdx + 1) % o.outputSize
	return y
}

// clearSlab zero-clears count ring entries starting at start (mod
// outputSize). It runs before the accumulate pass below, which then sums
// the new block into every ring slot, cleared ones included; within each
// pass no slot is written twice.
func (o *OverlapAddConvolver) clearSlab(start, count int) {
	for i := 0; i < count; i++ {
		o.ring[(start+i)%o.outputSize] = 0
	}
}

// accumulate additively sums the convolver's freshly computed output
// block into the ring starting at start.
func (o *OverlapAddConvolver) accumulate(start int) {
	out := o.convolver.Out()
	for i := 0; i < o.outputSize; i++ {
		o.ring[(start+i)%o.outputSize] += real(out[i])
	}
}
