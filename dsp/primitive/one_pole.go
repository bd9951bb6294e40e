package primitive

import "fmt"

// OnePoleLowpass implements y[n] = alpha*x[n] + beta*y[n-1].
type OnePoleLowpass struct {
	Alpha, Beta float64

	yPrev float64
}

// NewOnePoleLowpass returns a one-pole lowpass. beta must satisfy |beta|<1
// for stability.
func NewOnePoleLowpass(alpha, beta float64) (*OnePoleLowpass, error) {
	if beta <= -1 || beta >= 1 {
		return nil, fmt.Errorf("primitive: one-pole lowpass requires |beta| < 1, got %v", beta)
	}
	return &OnePoleLowpass{Alpha: alpha, Beta: beta}, nil
}

// Advance implements the single-sample advance contract.
func (p *OnePoleLowpass) Advance(x float64) float64 {
	y := p.Alpha*x + p.Beta*p.yPrev
	p.yPrev = y
	return y
}

// Reset clears the filter's one-sample memory.
func (p *OnePoleLowpass) Reset() {
	p.yPrev = 0
}
