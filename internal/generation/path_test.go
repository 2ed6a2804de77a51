package generation

import "testing"

func wavePathConfig() PathConfig {
	return PathConfig{
		Amplitude:        2.0,
		Frequency:        0.06,
		Smoothing:        0.35,
		MaxShiftPerRow:   1.0,
		EdgePadding:      1,
		RestChance:       0.1,
		MinRestRows:      2,
		MaxRestRows:      4,
		RestCooldownRows: 5,
	}
}

func TestPathCoversEveryRow(t *testing.T) {
	p := NewPathPlanner(wavePathConfig(), 5, SeedFromString("path-test"))
	p.AdvanceTo(200)

	if p.TipRow() != 200 {
		t.Fatalf("TipRow = %d, want 200", p.TipRow())
	}
	for row := 0; row <= 200; row++ {
		if len(p.LanesAt(row)) == 0 {
			t.Fatalf("row %d has no path lane", row)
		}
	}
}

func TestPathRespectsEdgePadding(t *testing.T) {
	p := NewPathPlanner(wavePathConfig(), 5, SeedFromString("path-test"))
	p.AdvanceTo(300)

	for row := 0; row <= 300; row++ {
		for _, lane := range p.LanesAt(row) {
			if lane < 2 || lane > 4 {
				t.Fatalf("row %d lane %d violates edge padding 1 on 5 lanes", row, lane)
			}
		}
	}
}

func TestPathRowsStayConnected(t *testing.T) {
	p := NewPathPlanner(wavePathConfig(), 5, SeedFromString("connect"))
	p.AdvanceTo(300)

	for row := 0; row < 300; row++ {
		cur := p.LanesAt(row)
		next := p.LanesAt(row + 1)

		// Lanes within a row must be contiguous (fast shifts are filled in).
		for i := 1; i < len(cur); i++ {
			if cur[i] != cur[i-1]+1 {
				t.Fatalf("row %d lanes %v are not contiguous", row, cur)
			}
		}
		// Some lane of the next row must be reachable with at most one
		// sideways step.
		reachable := false
		for _, a := range cur {
			for _, b := range next {
				if abs(a-b) <= 1 {
					reachable = true
				}
			}
		}
		if !reachable {
			t.Fatalf("row %d lanes %v cannot reach row %d lanes %v", row, cur, row+1, next)
		}
	}
}

func TestPathAdvanceToIdempotent(t *testing.T) {
	p := NewPathPlanner(wavePathConfig(), 5, SeedFromString("idem"))
	p.AdvanceTo(50)

	snapshot := make(map[int][]int)
	for row := 0; row <= 50; row++ {
		snapshot[row] = append([]int(nil), p.LanesAt(row)...)
	}

	p.AdvanceTo(50)
	p.AdvanceTo(30)

	if p.TipRow() != 50 {
		t.Fatalf("TipRow = %d after re-advance, want 50", p.TipRow())
	}
	for row := 0; row <= 50; row++ {
		lanes := p.LanesAt(row)
		want := snapshot[row]
		if len(lanes) != len(want) {
			t.Fatalf("row %d changed on re-advance: %v vs %v", row, lanes, want)
		}
		for i := range lanes {
			if lanes[i] != want[i] {
				t.Fatalf("row %d changed on re-advance: %v vs %v", row, lanes, want)
			}
		}
	}
}

func TestPathDeterminism(t *testing.T) {
	a := NewPathPlanner(wavePathConfig(), 5, SeedFromString("abc123"))
	b := NewPathPlanner(wavePathConfig(), 5, SeedFromString("abc123"))
	a.AdvanceTo(150)
	b.AdvanceTo(150)

	for row := 0; row <= 150; row++ {
		la, lb := a.LanesAt(row), b.LanesAt(row)
		if len(la) != len(lb) {
			t.Fatalf("row %d differs between identical planners: %v vs %v", row, la, lb)
		}
		for i := range la {
			if la[i] != lb[i] {
				t.Fatalf("row %d differs between identical planners: %v vs %v", row, la, lb)
			}
		}
	}
}

func TestPathStraightHoldsCenter(t *testing.T) {
	cfg := wavePathConfig()
	cfg.Straight = true
	cfg.RestChance = 0
	p := NewPathPlanner(cfg, 5, SeedFromString("straight"))
	p.AdvanceTo(100)

	for row := 0; row <= 100; row++ {
		lanes := p.LanesAt(row)
		if len(lanes) != 1 || lanes[0] != 3 {
			t.Fatalf("row %d lanes %v, want the single center lane 3", row, lanes)
		}
	}
}

func TestPathPruneBefore(t *testing.T) {
	p := NewPathPlanner(wavePathConfig(), 5, SeedFromString("prune"))
	p.AdvanceTo(100)
	p.PruneBefore(40)

	for row := 0; row < 40; row++ {
		if len(p.LanesAt(row)) != 0 {
			t.Fatalf("row %d survived pruning", row)
		}
		for lane := 1; lane <= 5; lane++ {
			if p.Contains(Coord{row, lane}) {
				t.Fatalf("cell (%d,%d) survived pruning", row, lane)
			}
		}
	}
	for row := 40; row <= 100; row++ {
		if len(p.LanesAt(row)) == 0 {
			t.Fatalf("retained row %d lost its lanes", row)
		}
	}
	if p.TipRow() != 100 {
		t.Errorf("TipRow = %d after pruning, want 100", p.TipRow())
	}
}
