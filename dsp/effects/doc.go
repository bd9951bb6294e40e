// Package effects provides the freeverb reverb and Class-A tube pre-amp
// effect kernels built on dsp/primitive and dsp/graph.
//
// Subpackage:
//   - github.com/jkbehne/Virbras/dsp/effects/modulation (flanger)
//
// In this package:
//   - NewFreeverb: stereo freeverb as a graph.MimoIir.
//   - TriodeClassAModel: a single non-linear triode gain stage.
//   - TubePreAmpClassA: oversampled pre-amp chaining triode stages around
//     a low-shelf/high-shelf EQ sandwich.
package effects
