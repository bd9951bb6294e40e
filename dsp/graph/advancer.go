// Package graph composes the single-sample primitives in dsp/primitive and
// dsp/conv into series, parallel, and MIMO IIR networks.
package graph

// Advancer is the single-sample contract every primitive and composite in
// this module satisfies. The source library represents heterogeneous
// children of Series/Parallel as a tagged sum-type variant dispatched via
// a visitor; Go has no sum types, and Series/Parallel/MimoIir are exactly
// the graph boundaries where heterogeneous types are expected to escape a
// single function, so a narrow interface is the idiomatic equivalent —
// one indirect call per child, no boxing beyond what the child already
// needed as a heap-resident pointer.
type Advancer interface {
	Advance(x float64) float64
}
