package primitive

import (
	"fmt"

	"github.com/jkbehne/Virbras/dsp/core"
	"github.com/jkbehne/Virbras/dsp/delay"
)

// FeedforwardFeedbackComb implements
//
//	y = b0*x + b1*bufIn[w] + a*bufOut[w]
//	bufIn[w] <- x, bufOut[w] <- y, w <- (w+1) mod m
type FeedforwardFeedbackComb struct {
	B0, B1, A float64

	bufIn, bufOut *delay.Line
}

// NewFeedforwardFeedbackComb returns a comb with ring buffers of size m.
// Precondition |a| < 1 (stability of the feedback loop).
func NewFeedforwardFeedbackComb(b0, b1, a float64, m int) (*FeedforwardFeedbackComb, error) {
	if a <= -1 || a >= 1 {
		return nil, fmt.Errorf("primitive: feedforward-feedback comb requires |a| < 1, got %v", a)
	}

	bufIn, err := delay.New(m)
	if err != nil {
		return nil, fmt.Errorf("primitive: feedforward-feedback comb: %w", err)
	}
	bufOut, err := delay.New(m)
	if err != nil {
		return nil, fmt.Errorf("primitive: feedforward-feedback comb: %w", err)
	}

	return &FeedforwardFeedbackComb{B0: b0, B1: b1, A: a, bufIn: bufIn, bufOut: bufOut}, nil
}

// Advance implements the single-sample advance contract.
func (c *FeedforwardFeedbackComb) Advance(x float64) float64 {
	m := c.bufIn.Len()
	y := c.B0*x + c.B1*c.bufIn.Read(m) + c.A*c.bufOut.Read(m)
	c.bufIn.Write(x)
	// The feedback tap decays toward zero without ever reaching it exactly;
	// flushing what's written back keeps long silent tails off the denormal
	// slow path.
	c.bufOut.Write(core.FlushDenormals(y))
	return y
}

// M returns the comb delay length.
func (c *FeedforwardFeedbackComb) M() int {
	return c.bufIn.Len()
}

// Reset clears both ring buffers.
func (c *FeedforwardFeedbackComb) Reset() {
	c.bufIn.Reset()
	c.bufOut.Reset()
}
