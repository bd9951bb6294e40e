package effects

import (
	"fmt"

	"github.com/jkbehne/Virbras/dsp/primitive"
	"github.com/jkbehne/Virbras/dsp/waveshape"
)

// TriodeClassAModel is a single-sample non-linear stage modelling one
// Class-A triode gain element: a saturation curve f(x, k), output gain,
// optional tone-shaping filters after the non-linearity, and an
// optional output inversion (common-cathode stages invert).
type TriodeClassAModel struct {
	curve        waveshape.BinarySaturator
	k            float64
	outputGain   float64
	invertOutput bool

	highPass *primitive.FirstOrderFilter // optional, nil if absent
	lowShelf *primitive.FirstOrderFilter // optional, nil if absent
}

// NewTriodeClassAModel builds a triode stage around curve, validating k
// the same way the curve itself would at the first sample, except once,
// at construction. highPass and lowShelf are optional tone controls
// applied after the non-linearity, in that order; pass nil to omit
// either. highPass must have Type primitive.Highpass and lowShelf must
// have Type primitive.LowShelving if supplied.
func NewTriodeClassAModel(curve waveshape.BinarySaturator, k, outputGain float64, invertOutput bool, highPass, lowShelf *primitive.FirstOrderFilter) (*TriodeClassAModel, error) {
	if curve == nil {
		return nil, fmt.Errorf("effects: triode requires a non-nil saturation curve")
	}
	if err := waveshape.ValidateSaturationK(k); err != nil {
		return nil, fmt.Errorf("effects: triode: %w", err)
	}
	if highPass != nil && highPass.Type != primitive.Highpass {
		return nil, fmt.Errorf("effects: triode high-pass slot requires a Highpass filter, got type %d", highPass.Type)
	}
	if lowShelf != nil && lowShelf.Type != primitive.LowShelving {
		return nil, fmt.Errorf("effects: triode low-shelf slot requires a LowShelving filter, got type %d", lowShelf.Type)
	}

	return &TriodeClassAModel{
		curve:        curve,
		k:            k,
		outputGain:   outputGain,
		invertOutput: invertOutput,
		highPass:     highPass,
		lowShelf:     lowShelf,
	}, nil
}

// Advance implements the Advancer contract.
func (t *TriodeClassAModel) Advance(x float64) float64 {
	sign := 1.0
	if t.invertOutput {
		sign = -1.0
	}

	y := sign * t.curve(x, t.k)
	if t.highPass != nil {
		y = t.highPass.Advance(y)
	}
	if t.lowShelf != nil {
		y = t.lowShelf.Advance(y)
	}
	return t.outputGain * y
}

// Reset clears any tone-control filter memory. The saturation curve
// itself is stateless.
func (t *TriodeClassAModel) Reset() {
	if t.highPass != nil {
		t.highPass.Reset()
	}
	if t.lowShelf != nil {
		t.lowShelf.Reset()
	}
}
