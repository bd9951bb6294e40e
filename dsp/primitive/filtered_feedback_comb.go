package primitive

import (
	"fmt"

	"github.com/jkbehne/Virbras/dsp/core"
	"github.com/jkbehne/Virbras/dsp/delay"
)

// FilteredFeedbackComb implements the transfer function
//
//	H(z) = 1 / (1 - Hlp(z)*z^-m)
//
// with Hlp a one-pole lowpass alpha/(1 - beta*z^-1):
//
//	y = x + Hlp(bufOut[w]); bufOut[w] <- y; w <- (w+1) mod m
//
// The write index wraps modulo m on every step. One widely retold variant
// of this filter increments the index without the wrap, which silently
// walks off the end of the buffer after m steps; every ring buffer
// elsewhere in this package wraps, and this one is no exception.
type FilteredFeedbackComb struct {
	lowpass *OnePoleLowpass
	bufOut  *delay.Line
}

// NewFilteredFeedbackComb returns a filtered-feedback comb of delay m with
// lowpass parameters (alpha, beta). Precondition |beta| < 1.
func NewFilteredFeedbackComb(alpha, beta float64, m int) (*FilteredFeedbackComb, error) {
	lp, err := NewOnePoleLowpass(alpha, beta)
	if err != nil {
		return nil, fmt.Errorf("primitive: filtered-feedback comb: %w", err)
	}

	bufOut, err := delay.New(m)
	if err != nil {
		return nil, fmt.Errorf("primitive: filtered-feedback comb: %w", err)
	}

	return &FilteredFeedbackComb{lowpass: lp, bufOut: bufOut}, nil
}

// Advance implements the single-sample advance contract.
func (c *FilteredFeedbackComb) Advance(x float64) float64 {
	m := c.bufOut.Len()
	y := x + c.lowpass.Advance(c.bufOut.Read(m))
	// Same denormal guard as FeedforwardFeedbackComb: this loop's decay
	// asymptotes toward zero without reaching it.
	c.bufOut.Write(core.FlushDenormals(y))
	return y
}

// M returns the comb delay length.
func (c *FilteredFeedbackComb) M() int {
	return c.bufOut.Len()
}

// Reset clears the lowpass memory and ring buffer.
func (c *FilteredFeedbackComb) Reset() {
	c.lowpass.Reset()
	c.bufOut.Reset()
}
