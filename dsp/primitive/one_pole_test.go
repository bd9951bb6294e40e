package primitive

import "testing"

func TestNewOnePoleLowpassValidation(t *testing.T) {
	if _, err := NewOnePoleLowpass(0.5, 1); err == nil {
		t.Fatal("expected error for beta=1")
	}
	if _, err := NewOnePoleLowpass(0.5, -1); err == nil {
		t.Fatal("expected error for beta=-1")
	}
}

func TestOnePoleLowpassAdvance(t *testing.T) {
	p, err := NewOnePoleLowpass(0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0.5, 0.75, 0.875}
	for i, w := range want {
		got := p.Advance(1)
		if !approxEqual(got, w, 1e-12) {
			t.Fatalf("Advance step %d: got %v want %v", i, got, w)
		}
	}
}

func TestOnePoleLowpassReset(t *testing.T) {
	p, err := NewOnePoleLowpass(0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	p.Advance(1)
	p.Reset()
	if got := p.Advance(0); got != 0 {
		t.Fatalf("Advance(0) after Reset: got %v want 0", got)
	}
}
