package waveshape

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestSgn(t *testing.T) {
	if Sgn(1) != 1 {
		t.Fatal("Sgn(1) != 1")
	}
	if Sgn(0) != 1 {
		t.Fatal("Sgn(0) != 1")
	}
	if Sgn(-1) != -1 {
		t.Fatal("Sgn(-1) != -1")
	}
}

func TestArrayaMatchesCubicSoftClip(t *testing.T) {
	got := Arraya(0.5)
	want := 1.5 * 0.5 * (1 - 0.25/3)
	if !approxEqual(got, want, 1e-12) {
		t.Fatalf("Arraya(0.5): got %v want %v", got, want)
	}
	if Arraya(0) != 0 {
		t.Fatalf("Arraya(0): got %v want 0", Arraya(0))
	}
}

func TestSigmoidIsOddAndBoundedByUnity(t *testing.T) {
	for _, x := range []float64{-3, -1, -0.1, 0.1, 1, 3} {
		y := Sigmoid(x, 1)
		if y <= -1 || y >= 1 {
			t.Fatalf("Sigmoid(%v, 1) = %v, want strictly within (-1, 1)", x, y)
		}
	}
	if got := Sigmoid(0, 1); !approxEqual(got, 0, 1e-6) {
		t.Fatalf("Sigmoid(0, 1): got %v want ~0", got)
	}
	pos := Sigmoid(1, 2)
	neg := Sigmoid(-1, 2)
	if !approxEqual(pos, -neg, 1e-6) {
		t.Fatalf("Sigmoid should be odd: Sigmoid(1,2)=%v, Sigmoid(-1,2)=%v", pos, neg)
	}
}

func TestSigmoid2AtZero(t *testing.T) {
	if got := Sigmoid2(0); !approxEqual(got, 0, 1e-6) {
		t.Fatalf("Sigmoid2(0): got %v want ~0", got)
	}
}

func TestTanhSatNormalisesToUnityAtXEqualsOne(t *testing.T) {
	k := 2.0
	got := TanhSat(1, k)
	if !approxEqual(got, 1, 1e-12) {
		t.Fatalf("TanhSat(1, k): got %v want 1 (tanh(k)/tanh(k))", got)
	}

	got2 := TanhSat(0.5, k)
	want2 := math.Tanh(k*0.5) / math.Tanh(k)
	if !approxEqual(got2, want2, 1e-12) {
		t.Fatalf("TanhSat(0.5, k): got %v want %v", got2, want2)
	}
}

func TestAtanSatNormalisesToUnityAtXEqualsOne(t *testing.T) {
	k := 3.0
	got := AtanSat(1, k)
	if !approxEqual(got, 1, 1e-12) {
		t.Fatalf("AtanSat(1, k): got %v want 1", got)
	}
}

func TestFuzzExpIsOdd(t *testing.T) {
	k := 1.5
	pos := FuzzExp(0.7, k)
	neg := FuzzExp(-0.7, k)
	if !approxEqual(pos, -neg, 1e-9) {
		t.Fatalf("FuzzExp should be odd in x: FuzzExp(0.7,k)=%v, FuzzExp(-0.7,k)=%v", pos, neg)
	}
}

func TestValidateSaturationKRejectsZero(t *testing.T) {
	if err := ValidateSaturationK(0); err == nil {
		t.Fatal("expected error for k=0")
	}
	if err := ValidateSaturationK(1); err != nil {
		t.Fatalf("unexpected error for k=1: %v", err)
	}
}

func TestAsymmetrizeValidation(t *testing.T) {
	if _, err := Asymmetrize(TanhSat, 0); err == nil {
		t.Fatal("expected error for g=0")
	}
	if _, err := Asymmetrize(TanhSat, 1.5); err == nil {
		t.Fatal("expected error for g>1")
	}
}

func TestAsymmetrizeScalesOnlyNegativeInputs(t *testing.T) {
	f, err := Asymmetrize(TanhSat, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	k := 2.0
	if got := f(1, k); !approxEqual(got, TanhSat(1, k), 1e-12) {
		t.Fatalf("f(1,k) for x>=0 should equal TanhSat(1,k): got %v want %v", got, TanhSat(1, k))
	}

	want := 0.5 * TanhSat(-1, k/0.5)
	if got := f(-1, k); !approxEqual(got, want, 1e-12) {
		t.Fatalf("f(-1,k) for x<0: got %v want %v", got, want)
	}
}
