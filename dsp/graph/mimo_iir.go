package graph

import (
	"fmt"
	"sync"

	"github.com/jkbehne/Virbras/dsp/core"
	"github.com/jkbehne/Virbras/dsp/stream"
)

// mimoParallelThreshold is the channel count at or above which MimoIir fans its
// per-channel filter evaluation out across goroutines. Freeverb runs
// N=2 and stays sequential; a larger multichannel graph would cross this.
const mimoParallelThreshold = 4

// MimoIir is a multiple-input multiple-output IIR filter: N independent
// per-channel filters followed by a fixed MxN linear output transform,
// plus an optional direct input_scale*x term (only meaningful when M==N).
type MimoIir struct {
	inputScale float64
	outputLT   *matrix
	filters    []Advancer

	u []float64 // per-channel filter outputs, scratch
	y []float64 // output vector, scratch
}

// NewMimoIir builds a MimoIir over filters (one per input channel, N of
// them) and an MxN output transform given in row-major order.
func NewMimoIir(inputScale float64, outputRows, outputCols int, outputLT []float64, filters []Advancer) (*MimoIir, error) {
	if outputCols != len(filters) {
		return nil, fmt.Errorf("graph: mimo output matrix must have %d columns (one per filter), got %d", len(filters), outputCols)
	}

	lt, err := newMatrix(outputRows, outputCols, outputLT)
	if err != nil {
		return nil, fmt.Errorf("graph: mimo: %w", err)
	}

	return &MimoIir{
		inputScale: inputScale,
		outputLT:   lt,
		filters:    append([]Advancer(nil), filters...),
		u:          make([]float64, len(filters)),
		y:          make([]float64, outputRows),
	}, nil
}

// N returns the number of input channels.
func (m *MimoIir) N() int { return len(m.filters) }

// M returns the number of output channels.
func (m *MimoIir) M() int { return m.outputLT.rows }

// Advance computes one output vector from one input vector. The returned
// slice is owned by MimoIir and reused on the next call; callers that need
// to retain a result must copy it.
func (m *MimoIir) Advance(x []float64) []float64 {
	if len(x) != len(m.filters) {
		panic(fmt.Sprintf("graph: mimo advance expects %d inputs, got %d", len(m.filters), len(x)))
	}

	if len(m.filters) >= mimoParallelThreshold {
		var wg sync.WaitGroup
		wg.Add(len(m.filters))
		for i, f := range m.filters {
			go func(i int, f Advancer) {
				defer wg.Done()
				m.u[i] = f.Advance(x[i])
			}(i, f)
		}
		wg.Wait()
	} else {
		for i, f := range m.filters {
			m.u[i] = f.Advance(x[i])
		}
	}

	m.outputLT.mulVec(m.y, m.u)

	if m.outputLT.rows == len(x) {
		for i := range m.y {
			m.y[i] += m.inputScale * x[i]
		}
	}

	// Freeverb's cross-channel mix feeds this output straight back into the
	// comb bank on the next call; flush before it propagates so a long
	// silent tail doesn't leave denormals circulating in the loop.
	for i := range m.y {
		m.y[i] = core.FlushDenormals(m.y[i])
	}

	return m.y
}

// Process pulls from sources (one per input channel) and pushes to sinks
// (one per output channel), driving Advance until sources terminate. All
// sources MUST terminate on the same step; terminating at mismatched
// steps is a contract violation (panic), matching the stream-length-
// mismatch error this component is specified to reject. Once every
// source has terminated, numTransients zero vectors are pushed through
// Advance to flush filter tails.
func (m *MimoIir) Process(sources []stream.Source, sinks []stream.Sink, numTransients int) {
	if len(sources) != len(m.filters) {
		panic(fmt.Sprintf("graph: mimo process expects %d sources, got %d", len(m.filters), len(sources)))
	}
	if len(sinks) != m.outputLT.rows {
		panic(fmt.Sprintf("graph: mimo process expects %d sinks, got %d", m.outputLT.rows, len(sinks)))
	}

	x := make([]float64, len(sources))
	for {
		terminated := 0
		for i, src := range sources {
			v, ok := src.Next()
			if !ok {
				terminated++
				v = 0
			}
			x[i] = v
		}

		if terminated > 0 {
			if terminated != len(sources) {
				panic("graph: mimo process: sources terminated at mismatched steps")
			}
			break
		}

		y := m.Advance(x)
		for i, sink := range sinks {
			sink.Write(y[i])
		}
	}

	zeros := make([]float64, len(sources))
	for t := 0; t < numTransients; t++ {
		y := m.Advance(zeros)
		for i, sink := range sinks {
			sink.Write(y[i])
		}
	}
}
