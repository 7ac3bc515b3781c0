package rng

import "testing"

func TestRNG_OpenInterval(t *testing.T) {
	r := NewRNG(42)
	for i := 0; i < 100000; i++ {
		u := r.Float64()
		if u <= 0 || u >= 1 {
			t.Fatalf("draw %d = %v, want value in (0, 1)", i, u)
		}
	}
}

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
	if a.Seed() != 7 {
		t.Errorf("Seed() = %d, want 7", a.Seed())
	}
}

func TestRestoreRNG(t *testing.T) {
	orig := NewRNG(99)
	for i := 0; i < 37; i++ {
		orig.Float64()
	}
	restored := RestoreRNG(99, orig.Position())
	if restored.Position() != orig.Position() {
		t.Fatalf("Position() = %d, want %d", restored.Position(), orig.Position())
	}
	for i := 0; i < 50; i++ {
		if x, y := orig.Float64(), restored.Float64(); x != y {
			t.Fatalf("draw %d after restore differs: %v vs %v", i, x, y)
		}
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence(0.1, 0.2, 0.3)
	want := []float64{0.1, 0.2, 0.3, 0.1, 0.2}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Errorf("draw %d = %v, want %v", i, got, w)
		}
	}
	if s.Draws() != len(want) {
		t.Errorf("Draws() = %d, want %d", s.Draws(), len(want))
	}
}

func TestSequence_Empty(t *testing.T) {
	s := NewSequence()
	if got := s.Float64(); got != 0.5 {
		t.Errorf("empty sequence draw = %v, want 0.5", got)
	}
}
