package primitive

import (
	"fmt"
	"math"

	"github.com/jkbehne/Virbras/dsp/delay"
)

// TimeVaryingDelay is a delay line read back at a fractional, per-sample
// varying position, using linear interpolation between the two nearest
// integer delays.
type TimeVaryingDelay struct {
	A, B float64

	maxDelay int
	line     *delay.Line
}

// NewTimeVaryingDelay returns a time-varying delay accepting delays up to
// maxDelay, with output mix coefficients (a, b). The ring buffer holds
// maxDelay+1 samples so that a delay of exactly maxDelay can still read
// its older interpolation neighbour.
func NewTimeVaryingDelay(maxDelay int, a, b float64) (*TimeVaryingDelay, error) {
	if maxDelay <= 0 {
		return nil, fmt.Errorf("primitive: time-varying delay: max delay must be > 0: %d", maxDelay)
	}
	line, err := delay.New(maxDelay + 1)
	if err != nil {
		return nil, fmt.Errorf("primitive: time-varying delay: %w", err)
	}
	return &TimeVaryingDelay{A: a, B: b, maxDelay: maxDelay, line: line}, nil
}

// MaxDelay returns the largest delay Advance accepts.
func (d *TimeVaryingDelay) MaxDelay() int {
	return d.maxDelay
}

// Advance computes one output sample for input x at fractional delay
// delaySamples, which must lie in [0, MaxDelay()]. Out-of-range delays are a contract violation
// (the driving graph is expected to clamp or validate delaySamples before
// calling Advance).
func (d *TimeVaryingDelay) Advance(x, delaySamples float64) float64 {
	dLo := int(math.Floor(delaySamples))
	dHi := dLo + 1
	frac := delaySamples - float64(dLo)

	if dLo < 0 || delaySamples > float64(d.maxDelay) {
		panic(fmt.Sprintf("primitive: time-varying delay: delay %v out of range [0, %d]", delaySamples, d.maxDelay))
	}

	var newer float64
	if dLo == 0 {
		newer = x
	} else {
		newer = d.line.Read(dLo)
	}
	older := d.line.Read(dHi)

	interp := older + frac*(newer-older)
	y := d.A*x + d.B*interp

	d.line.Write(x)
	return y
}

// Reset clears the internal delay buffer.
func (d *TimeVaryingDelay) Reset() {
	d.line.Reset()
}
