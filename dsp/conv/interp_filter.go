package conv

import (
	"fmt"
	"math"
	"sync"

	"github.com/jkbehne/Virbras/dsp/primitive"
	"github.com/jkbehne/Virbras/dsp/window"
)

// interpTaps is the tap count of the fixed lowpass used by
// PairedInterpolatorDecimator for both interpolation and decimation at a
// 4x oversampling factor.
const interpTaps = 769

// interpCutoffFraction is the lowpass cutoff as a fraction of the
// oversampled rate: Nyquist/4, the passband edge a 4x oversampling stage
// needs so the original signal survives interpolation and decimation
// untouched while the images above it are rejected.
const interpCutoffFraction = 1.0 / 8.0

// interpKaiserBeta sets the stopband attenuation/main-lobe-width tradeoff
// for the interpolation lowpass's Kaiser window.
const interpKaiserBeta = 8.0

var (
	interp4xOnce sync.Once
	interp4xTaps []float64
)

// InterpFilterTaps returns a copy of the fixed 769-tap lowpass
// PairedInterpolatorDecimator shares between interpolation and
// decimation, for tooling that wants to inspect its spectral properties
// (see cmd/filterinfo) without duplicating the design.
func InterpFilterTaps() []float64 {
	return append([]float64(nil), interp4xLowpass()...)
}

// interp4xLowpass returns the windowed-sinc lowpass FIR used by
// PairedInterpolatorDecimator, computed once and memoised. No literal
// coefficient table for this filter exists anywhere upstream; it is
// generated here as a Kaiser-windowed sinc lowpass at the cutoff a 4x
// oversampling stage needs (Nyquist/4, normalised to the oversampled
// rate), renormalised to unity DC gain.
func interp4xLowpass() []float64 {
	interp4xOnce.Do(func() {
		interp4xTaps = designLowpassSinc(interpTaps, interpCutoffFraction, interpKaiserBeta)
	})
	return interp4xTaps
}

// InterpFilterMetrics reports how closely the generated interpolation
// lowpass meets its design targets: passband flatness and stopband
// rejection, measured directly off the filter's own closed-form
// frequency response rather than a generic numerical spectral analysis.
type InterpFilterMetrics struct {
	// PassbandRippleDB is the largest deviation from 0 dB anywhere in the
	// filter's passband (below the Nyquist/4 cutoff).
	PassbandRippleDB float64
	// StopbandAttenuationDB is the weakest rejection (smallest magnitude
	// of attenuation) anywhere in the filter's stopband.
	StopbandAttenuationDB float64
}

// InterpFilterResponseModel builds a primitive.TappedDelayLine over
// InterpFilterTaps(), for tooling that wants the filter's closed-form
// Response/MagnitudeDB directly (see cmd/filterinfo) rather than only
// the summary metrics MeasureInterpFilter reports.
func InterpFilterResponseModel() (*primitive.TappedDelayLine, error) {
	taps := InterpFilterTaps()
	delays := make([]int, len(taps)-1)
	for i := range delays {
		delays[i] = i + 1
	}
	tdl, err := primitive.NewTappedDelayLine(delays, taps)
	if err != nil {
		return nil, fmt.Errorf("conv: building interp filter response model: %w", err)
	}
	return tdl, nil
}

// MeasureInterpFilter sweeps InterpFilterTaps' magnitude response, via
// the same primitive.TappedDelayLine.MagnitudeDB every FIR primitive in
// this module exposes, across the passband and stopband implied by
// UpFactor and interpCutoffFraction, at the given pre-oversampling
// sample rate.
func MeasureInterpFilter(sampleRate float64) (InterpFilterMetrics, error) {
	tdl, err := InterpFilterResponseModel()
	if err != nil {
		return InterpFilterMetrics{}, err
	}

	oversampled := sampleRate * UpFactor
	cutoff := oversampled * interpCutoffFraction
	const sweepSteps = 64

	ripple := 0.0
	for i := 0; i <= sweepSteps; i++ {
		f := cutoff * 0.9 * float64(i) / sweepSteps
		if d := math.Abs(tdl.MagnitudeDB(f, oversampled)); d > ripple {
			ripple = d
		}
	}

	weakestRejection := math.Inf(-1)
	stopStart, stopEnd := cutoff*1.1, oversampled/2
	for i := 0; i <= sweepSteps; i++ {
		f := stopStart + (stopEnd-stopStart)*float64(i)/sweepSteps
		if db := tdl.MagnitudeDB(f, oversampled); db > weakestRejection {
			weakestRejection = db
		}
	}

	return InterpFilterMetrics{
		PassbandRippleDB:      ripple,
		StopbandAttenuationDB: -weakestRejection,
	}, nil
}

// designLowpassSinc designs an FIR lowpass of the given tap count via a
// windowed ideal sinc response, cutoff expressed as a fraction of the
// sample rate (0, 0.5), Kaiser-windowed with the given beta and
// renormalised so the filter has unity DC gain.
func designLowpassSinc(numTaps int, cutoff, kaiserBeta float64) []float64 {
	win, err := window.Kaiser(numTaps, kaiserBeta)
	if err != nil {
		panic("conv: interp filter design: " + err.Error())
	}

	taps := make([]float64, numTaps)
	m := float64(numTaps - 1)
	sum := 0.0
	for n := 0; n < numTaps; n++ {
		x := float64(n) - m/2
		taps[n] = 2 * cutoff * normalizedSinc(2*cutoff*x) * win[n]
		sum += taps[n]
	}

	if sum != 0 {
		for n := range taps {
			taps[n] /= sum
		}
	}
	return taps
}

func normalizedSinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
