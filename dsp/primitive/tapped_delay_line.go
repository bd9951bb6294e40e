package primitive

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/jkbehne/Virbras/dsp/delay"
)

// TappedDelayLine is a generalised FIR filter: a zero-delay tap plus any
// number of additional taps at arbitrary integer delays, each with its own
// coefficient.
//
//	y = b0*x + sum_i b[i] * buffer[(w - delays[i-1]) mod cap]
type TappedDelayLine struct {
	coeffs []float64
	delays []int
	line   *delay.Line
}

// NewTappedDelayLine builds a tapped delay line from delays (one per
// non-zero tap, non-negative) and coeffs (length len(delays)+1, the first
// entry being the zero-delay tap).
func NewTappedDelayLine(delays []int, coeffs []float64) (*TappedDelayLine, error) {
	if len(coeffs) != len(delays)+1 {
		return nil, fmt.Errorf("primitive: tapped delay line needs len(coeffs) == len(delays)+1, got %d coeffs and %d delays", len(coeffs), len(delays))
	}

	maxDelay := 0
	for _, m := range delays {
		if m < 0 {
			return nil, fmt.Errorf("primitive: tapped delay line delay must be >= 0, got %d", m)
		}
		if m > maxDelay {
			maxDelay = m
		}
	}
	if maxDelay == 0 {
		maxDelay = 1
	}

	line, err := delay.New(maxDelay)
	if err != nil {
		return nil, fmt.Errorf("primitive: tapped delay line: %w", err)
	}

	return &TappedDelayLine{
		coeffs: append([]float64(nil), coeffs...),
		delays: append([]int(nil), delays...),
		line:   line,
	}, nil
}

// MaxDelay returns the line's capacity, and also the transient tail length
// a full flush of this filter's state requires.
func (t *TappedDelayLine) MaxDelay() int {
	return t.line.Len()
}

// Advance implements the single-sample advance contract.
func (t *TappedDelayLine) Advance(x float64) float64 {
	y := t.coeffs[0] * x
	for i, m := range t.delays {
		y += t.coeffs[i+1] * t.line.Read(m)
	}
	t.line.Write(x)
	return y
}

// Coefficients returns a copy of the tap coefficients, zero-delay tap first.
func (t *TappedDelayLine) Coefficients() []float64 {
	return append([]float64(nil), t.coeffs...)
}

// Reset clears the internal delay buffer.
func (t *TappedDelayLine) Reset() {
	t.line.Reset()
}

// Response computes the complex frequency response H(e^jw) at the given
// frequency (Hz) and sample rate (Hz): H(z) = coeffs[0] + sum_i
// coeffs[i+1]*z^-delays[i].
func (t *TappedDelayLine) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	h := complex(t.coeffs[0], 0)
	for i, m := range t.delays {
		h += complex(t.coeffs[i+1], 0) * cmplx.Exp(complex(0, -w*float64(m)))
	}
	return h
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (t *TappedDelayLine) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(t.Response(freqHz, sampleRate)))
}
