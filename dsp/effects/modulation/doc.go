// Package modulation provides the swept-delay flanger built on top of
// dsp/primitive's time-varying delay line.
//
//   - SinusoidalDelay: sinusoidally swept delay-time generator.
//   - Flanger: one channel of a TimeVaryingDelay driven by a SinusoidalDelay.
//   - TwoChannelFlanger: independent left/right Flangers with an optional
//     per-channel extrema-rescaling post-process.
package modulation
