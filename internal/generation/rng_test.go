package generation

import "testing"

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
}

func TestSeedFromString(t *testing.T) {
	if SeedFromString("abc123") != SeedFromString("abc123") {
		t.Error("same seed string produced different values")
	}
	if SeedFromString("abc123") == SeedFromString("abc124") {
		t.Error("distinct seed strings collided")
	}
	if SeedFromString("") == SeedFromString("a") {
		t.Error("empty seed collided with one-byte seed")
	}
}

func TestIntRange(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.IntRange(3, 6)
		if v < 3 || v > 6 {
			t.Fatalf("IntRange(3,6) = %d, out of bounds", v)
		}
	}
	if got := r.IntRange(5, 5); got != 5 {
		t.Errorf("IntRange(5,5) = %d, want 5", got)
	}
	if got := r.IntRange(9, 2); got != 9 {
		t.Errorf("IntRange(9,2) = %d, want min", got)
	}
}

func TestWeightedIndexSkipsZeroWeights(t *testing.T) {
	r := NewRNG(99)
	weights := []float64{0, 2.5, 0, -1}
	for i := 0; i < 500; i++ {
		if idx := r.WeightedIndex(weights); idx != 1 {
			t.Fatalf("WeightedIndex selected index %d with zero weight", idx)
		}
	}
}

func TestWeightedIndexNoPositiveWeight(t *testing.T) {
	r := NewRNG(1)
	if idx := r.WeightedIndex([]float64{0, 0, -3}); idx != -1 {
		t.Errorf("expected -1 for all-nonpositive weights, got %d", idx)
	}
	if idx := r.WeightedIndex(nil); idx != -1 {
		t.Errorf("expected -1 for empty weights, got %d", idx)
	}
}

func TestWeightedIndexProportions(t *testing.T) {
	r := NewRNG(2026)
	weights := []float64{1, 3}
	counts := [2]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		counts[r.WeightedIndex(weights)]++
	}
	// Expect roughly 25/75; allow a generous band.
	frac := float64(counts[1]) / n
	if frac < 0.70 || frac > 0.80 {
		t.Errorf("index 1 drawn %.3f of the time, want ~0.75", frac)
	}
}
