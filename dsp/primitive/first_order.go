package primitive

import (
	"math"
	"math/cmplx"
)

// FirstOrderFilterType tags what a FirstOrderFilter was designed for.
// Downstream consumers (the tube pre-amp's EQ sandwich) validate that a
// filter occupies the slot its type agrees with.
type FirstOrderFilterType int

const (
	Lowpass FirstOrderFilterType = iota
	Highpass
	LowShelving
	HighShelving
)

// FirstOrderFilter implements the finite-difference equation
//
//	y[n] = dry*x[n] + wet*(a0*x[n] + a1*x[n-1] - b1*y[n-1])
//
// Every analog-prototype designer below (bilinear transform with
// frequency warping) returns one of these.
type FirstOrderFilter struct {
	Dry, Wet   float64
	A0, A1, B1 float64
	Type       FirstOrderFilterType

	xPrev, yPrev float64
}

// NewFirstOrderFilter builds a filter directly from its difference-equation
// coefficients, with zero-initialised state.
func NewFirstOrderFilter(dry, wet, a0, a1, b1 float64, kind FirstOrderFilterType) *FirstOrderFilter {
	return &FirstOrderFilter{Dry: dry, Wet: wet, A0: a0, A1: a1, B1: b1, Type: kind}
}

// Advance implements the single-sample advance contract.
func (f *FirstOrderFilter) Advance(x float64) float64 {
	y := f.Dry*x + f.Wet*(f.A0*x+f.A1*f.xPrev-f.B1*f.yPrev)
	f.xPrev = x
	f.yPrev = y
	return y
}

// Reset clears the filter's one-sample memory.
func (f *FirstOrderFilter) Reset() {
	f.xPrev, f.yPrev = 0, 0
}

// Response computes the complex frequency response H(e^jw) at the given
// frequency (Hz) and sample rate (Hz):
//
//	H(z) = (dry + wet*a0 + wet*a1*z^-1) / (1 + wet*b1*z^-1)
func (f *FirstOrderFilter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	zInv := cmplx.Exp(complex(0, -w))

	num := complex(f.Dry+f.Wet*f.A0, 0) + complex(f.Wet*f.A1, 0)*zInv
	den := complex(1, 0) + complex(f.Wet*f.B1, 0)*zInv
	return num / den
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (f *FirstOrderFilter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

func gamma(cutoffFreq, sampleFreq float64) float64 {
	thetaC := 2 * math.Pi * cutoffFreq / sampleFreq
	return math.Cos(thetaC) / (1 + math.Sin(thetaC))
}

// NewLowpassFirstOrder designs a first-order lowpass via the bilinear
// transform with frequency warping (Pirkle, Designing Audio Effect Plugins
// in C++, ch. 11.3).
func NewLowpassFirstOrder(cutoffFreq, sampleFreq float64) *FirstOrderFilter {
	g := gamma(cutoffFreq, sampleFreq)
	a0 := 0.5 * (1 - g)
	return NewFirstOrderFilter(0, 1, a0, a0, -g, Lowpass)
}

// NewHighpassFirstOrder designs a first-order highpass via the bilinear
// transform with frequency warping.
func NewHighpassFirstOrder(cutoffFreq, sampleFreq float64) *FirstOrderFilter {
	g := gamma(cutoffFreq, sampleFreq)
	a0 := 0.5 * (1 + g)
	return NewFirstOrderFilter(0, 1, a0, -a0, -g, Highpass)
}

func gammaMu(cutoffFreq, sampleFreq, gainDB float64, lowShelving bool) (g, mu float64) {
	thetaC := 2 * math.Pi * cutoffFreq / sampleFreq
	mu = math.Pow(10, gainDB/20)

	var beta float64
	if lowShelving {
		beta = 4 / (1 + mu)
	} else {
		beta = 0.25 * (1 + mu)
	}

	delta := beta * math.Tan(0.5*thetaC)
	g = (1 - delta) / (1 + delta)
	return g, mu
}

// NewLowShelfFirstOrder designs a first-order low-shelf filter with the
// given gain (in dB) applied below cutoffFreq.
func NewLowShelfFirstOrder(cutoffFreq, sampleFreq, gainDB float64) *FirstOrderFilter {
	g, mu := gammaMu(cutoffFreq, sampleFreq, gainDB, true)
	a0 := 0.5 * (1 - g)
	return NewFirstOrderFilter(1, mu-1, a0, a0, -g, LowShelving)
}

// NewHighShelfFirstOrder designs a first-order high-shelf filter with the
// given gain (in dB) applied above cutoffFreq.
func NewHighShelfFirstOrder(cutoffFreq, sampleFreq, gainDB float64) *FirstOrderFilter {
	g, mu := gammaMu(cutoffFreq, sampleFreq, gainDB, false)
	a0 := 0.5 * (1 + g)
	return NewFirstOrderFilter(1, mu-1, a0, -a0, -g, HighShelving)
}
