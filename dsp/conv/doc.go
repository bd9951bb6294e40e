// Package conv provides the frequency-domain convolution primitives the
// reverb and tube pre-amp are built from.
//
//   - DFTConvolver: one-shot full linear convolution via a zero-padded
//     forward/inverse DFT pair.
//   - OverlapAddConvolver: stateful single-sample-advance wrapper around
//     a DFTConvolver, using a ring buffer to overlap successive windows.
//   - PairedInterpolatorDecimator: a fixed 4x up/downsampler sharing one
//     769-tap lowpass between interpolation and decimation.
package conv
