package conv

import "fmt"

// UpFactor is the fixed integer oversampling factor PairedInterpolatorDecimator
// operates at. The core only resamples at this single fixed ratio.
const UpFactor = 4

// interpWindowSize is the OverlapAddConvolver window size PairedInterpolatorDecimator
// drives its shared filter at.
const interpWindowSize = 256

// PairedInterpolatorDecimator upsamples by UpFactor via zero-stuffing
// followed by a shared lowpass (Interpolate), and downsamples by UpFactor
// via the same lowpass followed by decimation (Decimate). Using one
// filter for both directions keeps the anti-aliasing and anti-imaging
// passbands identical, which is what lets a tube pre-amp upsample, run its
// non-linear stages alias-free, and downsample again with a single filter
// instance.
type PairedInterpolatorDecimator struct {
	convolver *OverlapAddConvolver
}

// NewPairedInterpolatorDecimator returns a decimator/interpolator pair
// driven by the fixed 769-tap lowpass.
func NewPairedInterpolatorDecimator() (*PairedInterpolatorDecimator, error) {
	convolver, err := NewOverlapAddConvolver(interpWindowSize, interp4xLowpass())
	if err != nil {
		return nil, fmt.Errorf("conv: paired interpolator/decimator: %w", err)
	}
	return &PairedInterpolatorDecimator{convolver: convolver}, nil
}

// Interpolate upsamples one input sample into a block of UpFactor output
// samples by pushing x followed by UpFactor-1 zeros through the shared
// lowpass, scaling each output by UpFactor to restore the energy lost to
// zero-stuffing.
func (p *PairedInterpolatorDecimator) Interpolate(x float64) [UpFactor]float64 {
	var out [UpFactor]float64
	for i := 0; i < UpFactor; i++ {
		in := 0.0
		if i == 0 {
			in = x
		}
		out[i] = float64(UpFactor) * p.convolver.Advance(in)
	}
	return out
}

// Decimate downsamples a block of UpFactor samples produced at the
// oversampled rate back to one output sample, discarding all but the
// final filtered value.
func (p *PairedInterpolatorDecimator) Decimate(block [UpFactor]float64) float64 {
	var y float64
	for i := 0; i < UpFactor; i++ {
		y = p.convolver.Advance(block[i])
	}
	return y
}
