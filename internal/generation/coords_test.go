package generation

import "testing"

func TestDirectionOppositeRoundTrip(t *testing.T) {
	for _, d := range AllDirections() {
		if d.Opposite().Opposite() != d {
			t.Errorf("%s: double opposite is not identity", d)
		}
		dr, dl := d.Delta()
		or, ol := d.Opposite().Delta()
		if dr != -or || dl != -ol {
			t.Errorf("%s: opposite delta is not negated (%d,%d vs %d,%d)", d, dr, dl, or, ol)
		}
	}
}

func TestDirectionDeltasDistinct(t *testing.T) {
	seen := make(map[[2]int]Direction)
	for _, d := range AllDirections() {
		dr, dl := d.Delta()
		if dr == 0 && dl == 0 {
			t.Errorf("%s has a zero delta", d)
		}
		key := [2]int{dr, dl}
		if prev, ok := seen[key]; ok {
			t.Errorf("%s and %s share delta (%d,%d)", prev, d, dr, dl)
		}
		seen[key] = d
	}
}

func TestDirectionMaskMembership(t *testing.T) {
	mask := Forward | Backward
	if mask&Left != 0 {
		t.Error("left matched a forward/backward mask")
	}
	for _, d := range AllDirections() {
		if DirAll&d == 0 {
			t.Errorf("DirAll does not cover %s", d)
		}
	}
}

func TestCoordAdd(t *testing.T) {
	c := Coord{Row: 3, Lane: 2}
	if got := c.Add(1, -1); got != (Coord{4, 1}) {
		t.Errorf("Add(1,-1) = %v", got)
	}
	if c != (Coord{3, 2}) {
		t.Error("Add mutated the receiver")
	}
}
