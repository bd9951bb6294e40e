package window

import "math"

// Kaiser returns Kaiser window coefficients of the given length. beta
// trades main-lobe width against stopband attenuation; the FIR designer
// in dsp/conv uses beta=8 for the 769-tap interpolation/decimation
// lowpass.
func Kaiser(size int, beta float64) ([]float64, error) {
	if err := validateKaiser(size, beta); err != nil {
		return nil, err
	}

	if size == 1 {
		return []float64{1}, nil
	}

	out := make([]float64, size)
	denom := besselI0(beta)
	m := float64(size - 1)
	for n := range out {
		r := 2*float64(n)/m - 1
		term := math.Sqrt(math.Max(0, 1-r*r))
		out[n] = besselI0(beta*term) / denom
	}
	return out, nil
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
