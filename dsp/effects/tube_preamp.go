package effects

import (
	"fmt"

	"github.com/jkbehne/Virbras/dsp/conv"
	"github.com/jkbehne/Virbras/dsp/core"
	"github.com/jkbehne/Virbras/dsp/graph"
	"github.com/jkbehne/Virbras/dsp/primitive"
)

// TubePreAmpClassA models a Class-A tube pre-amp stage at conv.UpFactor
// (4x) oversampling: upsample, run the non-linear EQ sandwich at the
// oversampled rate, downsample. Oversampling keeps the triode stages'
// harmonic content from aliasing back into the passband.
type TubePreAmpClassA struct {
	resampler *conv.PairedInterpolatorDecimator

	inputLevel  float64
	outputLevel float64

	preEQ     *graph.Series
	lowShelf  *primitive.FirstOrderFilter
	highShelf *primitive.FirstOrderFilter
	postEQ    *graph.Series
}

// NewTubePreAmpClassA builds a pre-amp from pre- and post-EQ triode
// chains (each must have at least one stage), a low-shelf and a
// high-shelf tone filter, and input/output levels given in dB.
func NewTubePreAmpClassA(preEQTriodes, postEQTriodes []*TriodeClassAModel, lowShelf, highShelf *primitive.FirstOrderFilter, inputLevelDB, outputLevelDB float64) (*TubePreAmpClassA, error) {
	if len(preEQTriodes) == 0 {
		return nil, fmt.Errorf("effects: tube pre-amp requires at least one pre-EQ triode")
	}
	if len(postEQTriodes) == 0 {
		return nil, fmt.Errorf("effects: tube pre-amp requires at least one post-EQ triode")
	}
	if lowShelf == nil || lowShelf.Type != primitive.LowShelving {
		return nil, fmt.Errorf("effects: tube pre-amp requires a LowShelving filter in the low-shelf slot")
	}
	if highShelf == nil || highShelf.Type != primitive.HighShelving {
		return nil, fmt.Errorf("effects: tube pre-amp requires a HighShelving filter in the high-shelf slot")
	}

	preEQ, err := graph.NewSeries(triodesToAdvancers(preEQTriodes)...)
	if err != nil {
		return nil, fmt.Errorf("effects: tube pre-amp: pre-EQ chain: %w", err)
	}
	postEQ, err := graph.NewSeries(triodesToAdvancers(postEQTriodes)...)
	if err != nil {
		return nil, fmt.Errorf("effects: tube pre-amp: post-EQ chain: %w", err)
	}

	resampler, err := conv.NewPairedInterpolatorDecimator()
	if err != nil {
		return nil, fmt.Errorf("effects: tube pre-amp: %w", err)
	}

	return &TubePreAmpClassA{
		resampler:   resampler,
		inputLevel:  core.DBToLinear(inputLevelDB),
		outputLevel: core.DBToLinear(outputLevelDB),
		preEQ:       preEQ,
		lowShelf:    lowShelf,
		highShelf:   highShelf,
		postEQ:      postEQ,
	}, nil
}

func triodesToAdvancers(triodes []*TriodeClassAModel) []graph.Advancer {
	out := make([]graph.Advancer, len(triodes))
	for i, t := range triodes {
		out[i] = t
	}
	return out
}

// Advance implements the Advancer contract: upsample by conv.UpFactor,
// run the EQ sandwich on each oversampled value, downsample.
func (t *TubePreAmpClassA) Advance(x float64) float64 {
	oversampled := t.resampler.Interpolate(x)
	for i, s := range oversampled {
		s = t.inputLevel * s
		s = t.preEQ.Advance(s)
		s = t.lowShelf.Advance(s)
		s = t.highShelf.Advance(s)
		s = t.postEQ.Advance(s)
		oversampled[i] = t.outputLevel * s
	}
	return t.resampler.Decimate(oversampled)
}

// Reset clears the low-shelf and high-shelf filter memory only; the
// triode stages and the resampler keep their state.
func (t *TubePreAmpClassA) Reset() {
	t.lowShelf.Reset()
	t.highShelf.Reset()
}
