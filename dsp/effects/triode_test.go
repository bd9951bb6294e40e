package effects

import (
	"math"
	"testing"

	"github.com/jkbehne/Virbras/dsp/primitive"
	"github.com/jkbehne/Virbras/dsp/waveshape"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewTriodeClassAModelValidation(t *testing.T) {
	if _, err := NewTriodeClassAModel(nil, 1, 1, false, nil, nil); err == nil {
		t.Fatal("expected error for nil curve")
	}
	if _, err := NewTriodeClassAModel(waveshape.TanhSat, 0, 1, false, nil, nil); err == nil {
		t.Fatal("expected error for k=0")
	}

	badHighPass := primitive.NewLowpassFirstOrder(200, 48000)
	if _, err := NewTriodeClassAModel(waveshape.TanhSat, 1, 1, false, badHighPass, nil); err == nil {
		t.Fatal("expected error for wrong high-pass filter type")
	}

	badLowShelf := primitive.NewLowpassFirstOrder(200, 48000)
	if _, err := NewTriodeClassAModel(waveshape.TanhSat, 1, 1, false, nil, badLowShelf); err == nil {
		t.Fatal("expected error for wrong low-shelf filter type")
	}
}

func TestTriodeClassAModelAdvanceAppliesCurveAndGain(t *testing.T) {
	triode, err := NewTriodeClassAModel(waveshape.TanhSat, 2, 3, false, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	x := 0.5
	got := triode.Advance(x)
	want := 3 * waveshape.TanhSat(x, 2)
	if !approxEqual(got, want, 1e-12) {
		t.Fatalf("Advance(%v): got %v want %v", x, got, want)
	}
}

func TestTriodeClassAModelInvertOutputNegatesOutput(t *testing.T) {
	straight, err := NewTriodeClassAModel(waveshape.TanhSat, 2, 1, false, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	inverted, err := NewTriodeClassAModel(waveshape.TanhSat, 2, 1, true, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	x := 0.7
	if got, want := inverted.Advance(x), -straight.Advance(x); !approxEqual(got, want, 1e-12) {
		t.Fatalf("inverted.Advance(%v): got %v want %v", x, got, want)
	}
}

func TestTriodeClassAModelChainsOptionalFilters(t *testing.T) {
	hp := primitive.NewHighpassFirstOrder(200, 48000)
	ls := primitive.NewLowShelfFirstOrder(200, 48000, 6)

	triode, err := NewTriodeClassAModel(waveshape.TanhSat, 1, 1, false, hp, ls)
	if err != nil {
		t.Fatal(err)
	}

	var y float64
	for i := 0; i < 10; i++ {
		y = triode.Advance(0.3)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			t.Fatalf("Advance produced a non-finite value at step %d: %v", i, y)
		}
	}

	triode.Reset()
	y2 := triode.Advance(0)
	if !approxEqual(y2, waveshape.TanhSat(0, 1), 1e-9) {
		t.Fatalf("Advance(0) after Reset with cleared filter memory: got %v", y2)
	}
}
