package conv

import "testing"

func TestNormalizedSincAtZero(t *testing.T) {
	if got := normalizedSinc(0); got != 1 {
		t.Fatalf("normalizedSinc(0): got %v want 1", got)
	}
}

func TestDesignLowpassSincHasUnityDCGain(t *testing.T) {
	taps := designLowpassSinc(65, 1.0/8.0, 8.0)
	if len(taps) != 65 {
		t.Fatalf("len(taps): got %d want 65", len(taps))
	}

	sum := 0.0
	for _, v := range taps {
		sum += v
	}
	if !approxEqual(sum, 1, 1e-9) {
		t.Fatalf("tap sum (DC gain): got %v want 1", sum)
	}
}

func TestInterp4xLowpassIsMemoisedAndHasFixedTapCount(t *testing.T) {
	a := interp4xLowpass()
	b := interp4xLowpass()
	if len(a) != interpTaps {
		t.Fatalf("len(a): got %d want %d", len(a), interpTaps)
	}
	if &a[0] != &b[0] {
		t.Fatal("interp4xLowpass should return the same memoised slice across calls")
	}
}

func TestInterpFilterTapsReturnsACopy(t *testing.T) {
	taps := InterpFilterTaps()
	if len(taps) != interpTaps {
		t.Fatalf("len(taps): got %d want %d", len(taps), interpTaps)
	}

	taps[0] = 999
	if interp4xLowpass()[0] == 999 {
		t.Fatal("InterpFilterTaps must return a copy, not the live memoised slice")
	}
}

func TestInterpFilterResponseModelMatchesTapCount(t *testing.T) {
	tdl, err := InterpFilterResponseModel()
	if err != nil {
		t.Fatal(err)
	}
	if tdl.MaxDelay() != interpTaps-1 {
		t.Fatalf("MaxDelay(): got %d want %d", tdl.MaxDelay(), interpTaps-1)
	}
}

func TestMeasureInterpFilterPassbandIsFlatAndStopbandIsRejected(t *testing.T) {
	metrics, err := MeasureInterpFilter(48000)
	if err != nil {
		t.Fatal(err)
	}

	// A 769-tap Kaiser(beta=8) design should stay close to 0 dB in the
	// passband and reject the stopband by tens of dB; loose bounds here
	// guard against a design regression, not an exact closed-form value.
	if metrics.PassbandRippleDB > 1 {
		t.Fatalf("PassbandRippleDB: got %v want < 1 dB", metrics.PassbandRippleDB)
	}
	if metrics.StopbandAttenuationDB < 20 {
		t.Fatalf("StopbandAttenuationDB: got %v want > 20 dB", metrics.StopbandAttenuationDB)
	}
}
