package modulation

import (
	"fmt"
	"math"

	"github.com/jkbehne/Virbras/dsp/primitive"
)

// SinusoidalDelay generates a sinusoidally swept delay-time sequence
// m[n] = avg*(1 + sweep*sin(2*pi*speed*n*period)), advancing an internal
// sample counter n on every call to Next.
type SinusoidalDelay struct {
	avg, sweep, speed, period float64
	n                         int
}

// NewSinusoidalDelay builds a swept delay-time generator. sweep must lie
// in [-1, 1], speed and period must be positive.
func NewSinusoidalDelay(avg, sweep, speed, period float64) (*SinusoidalDelay, error) {
	if sweep < -1 || sweep > 1 {
		return nil, fmt.Errorf("modulation: sinusoidal delay sweep must be in [-1, 1], got %v", sweep)
	}
	if speed <= 0 {
		return nil, fmt.Errorf("modulation: sinusoidal delay speed must be > 0, got %v", speed)
	}
	if period <= 0 {
		return nil, fmt.Errorf("modulation: sinusoidal delay period must be > 0, got %v", period)
	}
	return &SinusoidalDelay{avg: avg, sweep: sweep, speed: speed, period: period}, nil
}

// Next returns the delay time in samples for the current step and
// advances the internal counter.
func (s *SinusoidalDelay) Next() float64 {
	m := s.avg * (1 + s.sweep*math.Sin(2*math.Pi*s.speed*float64(s.n)*s.period))
	s.n++
	return m
}

// MaxDelay returns the maximum delay this generator can ever emit,
// ceil(avg*(1+sweep)), the maxDelay a TimeVaryingDelay consuming this
// generator must be built with.
func (s *SinusoidalDelay) MaxDelay() int {
	return int(math.Ceil(s.avg * (1 + s.sweep)))
}

// Reset restarts the sample counter at zero.
func (s *SinusoidalDelay) Reset() { s.n = 0 }

// delayFn is anything that can drive a Flanger's time-varying delay.
type delayFn interface {
	Next() float64
	MaxDelay() int
}

// Flanger wraps a primitive.TimeVaryingDelay, driving its delay amount
// from a delayFn (typically a SinusoidalDelay) each sample.
type Flanger struct {
	line  *primitive.TimeVaryingDelay
	delay delayFn
}

// NewFlanger builds a flanger around delay. depth must lie in [0, 1];
// invert flips the sign of the wet coefficient, b = (invert ? -1 : 1)*depth.
func NewFlanger(depth float64, invert bool, delay delayFn) (*Flanger, error) {
	if depth < 0 || depth > 1 {
		return nil, fmt.Errorf("modulation: flanger depth must be in [0, 1], got %v", depth)
	}
	if delay == nil {
		return nil, fmt.Errorf("modulation: flanger requires a non-nil delay generator")
	}

	b := depth
	if invert {
		b = -depth
	}

	line, err := primitive.NewTimeVaryingDelay(delay.MaxDelay(), 1, b)
	if err != nil {
		return nil, fmt.Errorf("modulation: flanger: %w", err)
	}

	return &Flanger{line: line, delay: delay}, nil
}

// Advance implements the Advancer contract.
func (f *Flanger) Advance(x float64) float64 {
	m := f.delay.Next()
	return f.line.Advance(x, m)
}

// Reset clears the delay line's state. The swept delay-time generator's
// phase is not reset; call its own Reset if that is also desired.
func (f *Flanger) Reset() { f.line.Reset() }

// TwoChannelFlanger drives independent left and right Flangers and,
// optionally, rescales each channel's output so its extrema land at
// +/- rescaleAbs.
type TwoChannelFlanger struct {
	left, right *Flanger
	rescaleAbs  float64 // 0 means disabled
}

// NewTwoChannelFlanger builds a stereo flanger from independently
// configured left and right Flangers. rescaleAbs, if non-zero, must lie
// in (0, 1]; pass 0 to disable rescaling.
func NewTwoChannelFlanger(left, right *Flanger, rescaleAbs float64) (*TwoChannelFlanger, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("modulation: two-channel flanger requires non-nil left and right flangers")
	}
	if rescaleAbs != 0 && (rescaleAbs <= 0 || rescaleAbs > 1) {
		return nil, fmt.Errorf("modulation: two-channel flanger rescale_abs must be in (0, 1], got %v", rescaleAbs)
	}
	return &TwoChannelFlanger{left: left, right: right, rescaleAbs: rescaleAbs}, nil
}

// Process runs left and right through their respective Flangers and, if
// rescaling is enabled, affinely remaps each channel so its extrema
// become +/- rescaleAbs. Panics if rescaling is enabled and a channel's
// max and min coincide (RescaleAbs requires M != m).
func (t *TwoChannelFlanger) Process(left, right []float64) (outLeft, outRight []float64) {
	outLeft = make([]float64, len(left))
	outRight = make([]float64, len(right))

	for i, x := range left {
		outLeft[i] = t.left.Advance(x)
	}
	for i, x := range right {
		outRight[i] = t.right.Advance(x)
	}

	if t.rescaleAbs != 0 {
		rescaleAbsInPlace(outLeft, t.rescaleAbs)
		rescaleAbsInPlace(outRight, t.rescaleAbs)
	}

	return outLeft, outRight
}

// rescaleAbsInPlace affinely maps v so its extrema become +/- alpha:
// v' = 2*alpha*v/(M-m) - alpha*(M+m)/(M-m).
func rescaleAbsInPlace(v []float64, alpha float64) {
	if len(v) == 0 {
		return
	}

	maxV, minV := v[0], v[0]
	for _, x := range v[1:] {
		if x > maxV {
			maxV = x
		}
		if x < minV {
			minV = x
		}
	}

	if maxV == minV {
		panic("modulation: rescale_abs requires distinct channel extrema (max == min)")
	}

	span := maxV - minV
	for i, x := range v {
		v[i] = 2*alpha*x/span - alpha*(maxV+minV)/span
	}
}
