// Command freeverb is a manual smoke-test driver for the stereo freeverb
// graph. It reads two newline-separated float64 text streams (left and
// right channel) and writes the processed channels the same way. This
// is deliberately not an audio file codec: WAV/PCM I/O is out of scope
// here, this exists only to drive the graph by hand from the shell.
//
// Usage:
//
//	freeverb [flags] <left.txt> <right.txt> <left-out.txt> <right-out.txt>
//
// Examples:
//
//	freeverb in-left.txt in-right.txt out-left.txt out-right.txt
//	freeverb -tail 2.0 -sample-rate 48000 in-left.txt in-right.txt out-left.txt out-right.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/jkbehne/Virbras/dsp/core"
	"github.com/jkbehne/Virbras/dsp/effects"
)

func main() {
	defaults := core.DefaultProcessorConfig()
	sampleRate := flag.Float64("sample-rate", defaults.SampleRate, "sample rate in Hz, used only to size the tail flush")
	tailSeconds := flag.Float64("tail", 2.0, "seconds of transient tail flush appended after the input ends")
	stereoSpread := flag.Int("stereo-spread", 23, "right-channel comb/allpass delay offset, in samples")
	dry := flag.Float64("dry", 0, "direct (unprocessed) signal level")
	wet1 := flag.Float64("wet1", 1, "same-channel wet level")
	wet2 := flag.Float64("wet2", 0, "cross-channel wet level")
	damp := flag.Float64("damp", 0.2, "comb lowpass damping")
	reflect := flag.Float64("reflect", 0.84, "comb feedback/reflectivity")
	g := flag.Float64("g", 0.5, "allpass coefficient")
	flag.Parse()

	if flag.NArg() != 4 {
		fmt.Fprintln(os.Stderr, "usage: freeverb [flags] <left.txt> <right.txt> <left-out.txt> <right-out.txt>")
		os.Exit(2)
	}

	left, err := readSamples(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "freeverb: reading left channel: %v\n", err)
		os.Exit(1)
	}
	right, err := readSamples(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "freeverb: reading right channel: %v\n", err)
		os.Exit(1)
	}
	if len(left) != len(right) {
		fmt.Fprintf(os.Stderr, "freeverb: left/right length mismatch: %d vs %d\n", len(left), len(right))
		os.Exit(1)
	}

	params := effects.FreeverbParams{
		StereoSpread: *stereoSpread,
		Dry:          *dry,
		Wet1:         *wet1,
		Wet2:         *wet2,
		Damp:         *damp,
		Reflect:      *reflect,
		G:            *g,
	}

	reverb, err := effects.NewFreeverb(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "freeverb: %v\n", err)
		os.Exit(1)
	}

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(*sampleRate))
	numTransients := int(math.Ceil(cfg.SampleRate * *tailSeconds))
	outLeft := make([]float64, 0, len(left)+numTransients)
	outRight := make([]float64, 0, len(right)+numTransients)

	x := make([]float64, 2)
	for i := range left {
		x[0], x[1] = left[i], right[i]
		y := reverb.Advance(x)
		outLeft = append(outLeft, y[0])
		outRight = append(outRight, y[1])
	}

	x[0], x[1] = 0, 0
	for i := 0; i < numTransients; i++ {
		y := reverb.Advance(x)
		outLeft = append(outLeft, y[0])
		outRight = append(outRight, y[1])
	}

	if err := writeSamples(flag.Arg(2), outLeft); err != nil {
		fmt.Fprintf(os.Stderr, "freeverb: writing left channel: %v\n", err)
		os.Exit(1)
	}
	if err := writeSamples(flag.Arg(3), outRight); err != nil {
		fmt.Fprintf(os.Stderr, "freeverb: writing right channel: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "freeverb: wrote %d samples per channel (%d transient)\n", len(outLeft), numTransients)
}

func readSamples(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", line, err)
		}
		out = append(out, v)
	}
	return out, scanner.Err()
}

func writeSamples(path string, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range samples {
		if _, err := fmt.Fprintln(w, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return err
		}
	}
	return w.Flush()
}
