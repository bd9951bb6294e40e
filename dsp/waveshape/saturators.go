// Package waveshape implements the non-linear static waveshapers used to
// model saturation in the triode and tube pre-amp stages: sgn, arraya,
// sigmoid, sigmoid2, tanh/atan saturation, fuzz, and asymmetrize.
//
// Formulas follow chapter 19.8 of Pirkle's "Designing Audio Effect
// Plugins in C++". x is the signal input, k the saturation parameter.
package waveshape

import (
	"fmt"
	"math"

	approx "github.com/meko-christian/algo-approx"
)

// ePlus1, eMinus1 and ePlus1OverEm1 are the sigmoid2 normalisation
// constants derived from e.
var (
	ePlus1        = math.E + 1
	eMinus1       = math.E - 1
	ePlus1OverEm1 = ePlus1 / eMinus1
)

// Sgn returns 1 for x >= 0 and -1 otherwise.
func Sgn(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return -1
}

// Arraya implements the cubic soft-clip 1.5*x*(1 - x^2/3).
func Arraya(x float64) float64 {
	return 1.5 * x * (1 - x*x/3)
}

// Sigmoid implements 2/(1+exp(-k*x)) - 1, using a fast exp approximation
// since this runs once per sample inside the triode model's hot path.
func Sigmoid(x, k float64) float64 {
	return 2/(1+approx.FastExp(-k*x)) - 1
}

// Sigmoid2 implements ((e+1)/(e-1)) * (exp(x)-1)/(exp(x)+1), the
// fixed-slope variant with no saturation parameter.
func Sigmoid2(x float64) float64 {
	ex := approx.FastExp(x)
	return ePlus1OverEm1 * (ex - 1) / (ex + 1)
}

// TanhSat implements tanh(k*x)/tanh(k). Callers must validate k != 0 at
// construction time via ValidateSaturationK; TanhSat itself is the hot-path
// function and does not re-check on every sample.
func TanhSat(x, k float64) float64 {
	return math.Tanh(k*x) / math.Tanh(k)
}

// AtanSat implements atan(k*x)/atan(k). See TanhSat for the k != 0 contract.
func AtanSat(x, k float64) float64 {
	return math.Atan(k*x) / math.Atan(k)
}

// FuzzExp implements sgn(x)*(1-exp(|k*x|))/(1-exp(-k)). See TanhSat for
// the k != 0 contract. Note the |k*x| in the numerator exponent: the
// textbook formulation of this fuzz curve uses exp(k*x), unsigned; the
// exponent here is preserved as absolute-valued to match the behaviour
// this library ships, not the textbook formula.
func FuzzExp(x, k float64) float64 {
	return Sgn(x) * (1 - approx.FastExp(math.Abs(k*x))) / (1 - approx.FastExp(-k))
}

// ValidateSaturationK rejects a zero saturation parameter for the
// saturators above that divide by a function of k (TanhSat, AtanSat,
// FuzzExp). Call once at construction time, not per sample.
func ValidateSaturationK(k float64) error {
	if k == 0 {
		return fmt.Errorf("waveshape: saturation parameter k must be non-zero")
	}
	return nil
}

// BinarySaturator is a saturation curve taking a signal and a parameter.
type BinarySaturator func(x, k float64) float64

// Asymmetrize wraps f so that negative inputs are scaled: for x >= 0 it
// returns f(x, k); for x < 0 it returns g*f(x, k/g). g must lie in (0, 1].
func Asymmetrize(f BinarySaturator, g float64) (BinarySaturator, error) {
	if g <= 0 || g > 1 {
		return nil, fmt.Errorf("waveshape: asymmetrize requires g in (0, 1], got %v", g)
	}
	return func(x, k float64) float64 {
		if x >= 0 {
			return f(x, k)
		}
		return g * f(x, k/g)
	}, nil
}
