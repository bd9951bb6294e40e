// Package stream provides the pull/push sample-stream contract that every
// advance-based DSP primitive in this module is driven through: a
// Source yields scalars until exhausted, a Sink accepts them,
// and Process wires a source through an Advancer into a sink, flushing the
// Advancer's internal state with trailing zeros once the source is spent.
package stream

import "fmt"

// Source pulls samples one at a time. Next returns (0, false) once the
// stream is exhausted; every subsequent call MUST also return (0, false).
type Source interface {
	Next() (float64, bool)
}

// Sink accepts samples one at a time. Write panics if called past the
// sink's fixed capacity; a sink has no way to signal that condition short
// of a contract violation, matching the "assertion" behaviour called for
// by a sink overflow.
type Sink interface {
	Write(x float64)
}

// Advancer is the single-sample contract every filter primitive and
// composite in this module satisfies.
type Advancer interface {
	Advance(x float64) float64
}

// SliceSource yields the elements of a slice in order, then terminates.
type SliceSource struct {
	samples []float64
	pos     int
}

// NewSliceSource wraps s as a Source. s is not copied; mutating it after
// construction is the caller's responsibility to avoid.
func NewSliceSource(s []float64) *SliceSource {
	return &SliceSource{samples: s}
}

// Next implements Source.
func (s *SliceSource) Next() (float64, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	x := s.samples[s.pos]
	s.pos++
	return x, true
}

// SliceSink writes into a pre-sized slice and panics on overflow.
type SliceSink struct {
	samples []float64
	pos     int
}

// NewSliceSink returns a Sink bounded to the given fixed-capacity slice.
func NewSliceSink(s []float64) *SliceSink {
	return &SliceSink{samples: s}
}

// Write implements Sink.
func (s *SliceSink) Write(x float64) {
	if s.pos >= len(s.samples) {
		panic(fmt.Sprintf("stream: sink overflow: capacity %d exceeded", len(s.samples)))
	}
	s.samples[s.pos] = x
	s.pos++
}

// Written returns the slice of samples written so far.
func (s *SliceSink) Written() []float64 {
	return s.samples[:s.pos]
}

// SourceFunc adapts a closure to a Source, for the outermost driving loop.
type SourceFunc func() (float64, bool)

// Next implements Source.
func (f SourceFunc) Next() (float64, bool) { return f() }

// SinkFunc adapts a closure to a Sink, for the outermost driving loop.
type SinkFunc func(float64)

// Write implements Sink.
func (f SinkFunc) Write(x float64) { f(x) }

// Process drains src through adv.Advance, writing every result to sink,
// then pushes numTransients zero samples through adv to flush its
// internal state (the tail-flush convention used by every primitive in
// this module that owns ring-buffer or feedback state).
func Process(src Source, sink Sink, adv Advancer, numTransients int) {
	for {
		x, ok := src.Next()
		if !ok {
			break
		}
		sink.Write(adv.Advance(x))
	}
	for i := 0; i < numTransients; i++ {
		sink.Write(adv.Advance(0))
	}
}

// Collect runs Process over in, returning the first len(in)+numTransients
// outputs as a newly allocated slice. Convenience wrapper over Process for
// tests and examples.
func Collect(in []float64, adv Advancer, numTransients int) []float64 {
	out := make([]float64, len(in)+numTransients)
	Process(NewSliceSource(in), NewSliceSink(out), adv, numTransients)
	return out
}
