package random

import "testing"

func TestNewSeedIsNonZero(t *testing.T) {
	for i := 0; i < 16; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("new seed: %v", err)
		}
		if seed == 0 {
			t.Fatal("seed = 0, want non-zero")
		}
	}
}

func TestSeedOrKeepsConfiguredSeed(t *testing.T) {
	seed, err := SeedOr(42)
	if err != nil {
		t.Fatalf("seed or: %v", err)
	}
	if seed != 42 {
		t.Fatalf("seed = %d, want 42", seed)
	}
}

func TestSeedOrGeneratesWhenUnset(t *testing.T) {
	seed, err := SeedOr(0)
	if err != nil {
		t.Fatalf("seed or: %v", err)
	}
	if seed == 0 {
		t.Fatal("seed = 0, want generated seed")
	}
}
