package wheel

import (
	"math"
	"math/rand"
	"testing"
)

func TestUnwrap_NoSeamJump(t *testing.T) {
	// Crossing the 0/360 seam must move by the short way, not spin round.
	visual := 350.0
	visual = Unwrap(visual, 10)
	if !almostEqual(visual, 370) {
		t.Fatalf("unwrapped angle = %v, want 370", visual)
	}
	visual = Unwrap(visual, 350)
	if !almostEqual(visual, 350) {
		t.Fatalf("unwrapped angle = %v, want 350", visual)
	}
}

func TestUnwrap_AccumulatesBeyond360(t *testing.T) {
	visual := 0.0
	// Three forward quarter turns plus one more cross the mod boundary.
	for _, target := range []float64{90, 180, 270, 0, 90} {
		visual = Unwrap(visual, target)
	}
	if !almostEqual(visual, 450) {
		t.Fatalf("continuous forward motion should accumulate, got %v", visual)
	}
}

func TestUnwrap_ContinuityProperty(t *testing.T) {
	// For any target sequence in [0,360), consecutive visual angles never
	// step more than 180 degrees.
	rng := rand.New(rand.NewSource(42))
	visual := 0.0
	for i := 0; i < 2000; i++ {
		target := rng.Float64() * 360
		next := Unwrap(visual, target)
		if step := math.Abs(next - visual); step > 180 {
			t.Fatalf("step %d: |%v - %v| = %v exceeds 180", i, next, visual, step)
		}
		// The principal value must land exactly on the target.
		if math.Abs(ShortestDelta(NormalizeDegrees(next), target)) > 1e-9 {
			t.Fatalf("step %d: principal value %v does not match target %v", i, NormalizeDegrees(next), target)
		}
		visual = next
	}
}
