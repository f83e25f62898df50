package random

import "testing"

func TestNewSeedVaries(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if a == b {
		t.Fatalf("two seeds were both %d", a)
	}
}

func TestNewIsDeterministic(t *testing.T) {
	x, y := New(42), New(42)
	for i := range 10 {
		if a, b := x.Int63(), y.Int63(); a != b {
			t.Fatalf("draw %d: %d != %d", i, a, b)
		}
	}
}
