package effects

import (
	"fmt"

	"github.com/jkbehne/Virbras/dsp/graph"
	"github.com/jkbehne/Virbras/dsp/primitive"
)

const (
	freeverbNumCombs     = 8
	freeverbNumAllpasses = 4

	// Legacy Jezar-at-Dreampoint tuning values, left-channel delays in
	// samples. The right channel adds StereoSpread to each. This is the
	// reference tuning's order (not the ascending one some ports use). The
	// comb bank is summed through an all-ones Parallel vector and the
	// all-passes below are linear stages in series, so the declaration
	// order affects the output only through floating-point rounding.
	freeverbCombDelay1 = 1557
	freeverbCombDelay2 = 1617
	freeverbCombDelay3 = 1491
	freeverbCombDelay4 = 1422
	freeverbCombDelay5 = 1277
	freeverbCombDelay6 = 1356
	freeverbCombDelay7 = 1188
	freeverbCombDelay8 = 1116

	freeverbAllpassDelay1 = 225
	freeverbAllpassDelay2 = 556
	freeverbAllpassDelay3 = 441
	freeverbAllpassDelay4 = 341
)

var freeverbCombDelays = [freeverbNumCombs]int{
	freeverbCombDelay1, freeverbCombDelay2, freeverbCombDelay3, freeverbCombDelay4,
	freeverbCombDelay5, freeverbCombDelay6, freeverbCombDelay7, freeverbCombDelay8,
}

var freeverbAllpassDelays = [freeverbNumAllpasses]int{
	freeverbAllpassDelay1, freeverbAllpassDelay2, freeverbAllpassDelay3, freeverbAllpassDelay4,
}

// FreeverbParams holds the tunables of the classic Jezar-at-Dreampoint
// freeverb topology: a parallel bank of filtered-feedback combs into a
// series of all-pass approximants, per channel, mixed stereo through a
// 2x2 wet/dry matrix.
type FreeverbParams struct {
	StereoSpread int
	Dry          float64
	Wet1, Wet2   float64
	Damp         float64
	Reflect      float64
	G            float64
}

// DefaultFreeverbParams returns the reference freeverb defaults.
func DefaultFreeverbParams() FreeverbParams {
	return FreeverbParams{
		StereoSpread: 23,
		Dry:          0,
		Wet1:         1,
		Wet2:         0,
		Damp:         0.2,
		Reflect:      0.84,
		G:            0.5,
	}
}

// NewFreeverb builds a stereo freeverb as a graph.MimoIir with 2 inputs
// and 2 outputs. Each channel is Series(Parallel(8 filtered-feedback
// combs), Series(4 all-pass-approximating feedforward-feedback combs)).
func NewFreeverb(p FreeverbParams) (*graph.MimoIir, error) {
	left, err := newFreeverbChannel(p, 0)
	if err != nil {
		return nil, fmt.Errorf("effects: freeverb: left channel: %w", err)
	}
	right, err := newFreeverbChannel(p, p.StereoSpread)
	if err != nil {
		return nil, fmt.Errorf("effects: freeverb: right channel: %w", err)
	}

	outputLT := []float64{
		p.Wet1, p.Wet2,
		p.Wet2, p.Wet1,
	}

	return graph.NewMimoIir(p.Dry, 2, 2, outputLT, []graph.Advancer{left, right})
}

// newFreeverbChannel builds one channel's Series(Parallel(combs), Series(allpasses)).
func newFreeverbChannel(p FreeverbParams, spread int) (*graph.Series, error) {
	alpha := p.Reflect * (1 - p.Damp)
	beta := p.Damp

	combs := make([]graph.Advancer, freeverbNumCombs)
	for i, delay := range freeverbCombDelays {
		comb, err := primitive.NewFilteredFeedbackComb(alpha, beta, delay+spread)
		if err != nil {
			return nil, fmt.Errorf("comb %d: %w", i, err)
		}
		combs[i] = comb
	}

	ones := make([]float64, freeverbNumCombs)
	for i := range ones {
		ones[i] = 1
	}

	combBank, err := graph.NewParallel(combs, ones)
	if err != nil {
		return nil, fmt.Errorf("comb bank: %w", err)
	}

	allpasses := make([]graph.Advancer, freeverbNumAllpasses)
	for i, delay := range freeverbAllpassDelays {
		allpass, err := primitive.NewFeedforwardFeedbackComb(-1, 1+p.G, p.G, delay+spread)
		if err != nil {
			return nil, fmt.Errorf("allpass %d: %w", i, err)
		}
		allpasses[i] = allpass
	}

	allpassChain, err := graph.NewSeries(allpasses...)
	if err != nil {
		return nil, fmt.Errorf("allpass chain: %w", err)
	}

	return graph.NewSeries(combBank, allpassChain)
}
