package generation

import "testing"

func ruleTestPool() (*TileDefinition, *TileDefinition, *TileDefinition, []*TileDefinition) {
	a := &TileDefinition{ID: "a", Layer: LayerSurface, Surface: SurfaceGround}
	b := &TileDefinition{ID: "b", Layer: LayerSurface, Surface: SurfaceGround}
	c := &TileDefinition{ID: "c", Layer: LayerSurface, Surface: SurfaceGround}
	return a, b, c, []*TileDefinition{a, b, c}
}

func TestAllowedNeighborsNoRuleAllowsAll(t *testing.T) {
	a, _, _, pool := ruleTestPool()
	rs := NewRuleSet(nil)

	tiles, weights := rs.AllowedNeighbors(a, Forward, pool)
	if len(tiles) != len(pool) {
		t.Fatalf("expected whole pool, got %d of %d", len(tiles), len(pool))
	}
	for i, w := range weights {
		if w != 1.0 {
			t.Errorf("weight[%d] = %v, want neutral 1.0", i, w)
		}
	}
}

func TestAllowedNeighborsExclusiveAllowList(t *testing.T) {
	a, b, _, pool := ruleTestPool()
	rs := NewRuleSet([]NeighborRule{{
		SelfID: "a",
		Allowed: []RuleEntry{
			{NeighborID: "b", Directions: Forward, Weight: 0.5},
		},
	}})

	tiles, weights := rs.AllowedNeighbors(a, Forward, pool)
	if len(tiles) != 1 || tiles[0] != b {
		t.Fatalf("allow list should be exclusive for forward, got %d tiles", len(tiles))
	}
	if weights[0] != 0.5 {
		t.Errorf("weight = %v, want 0.5", weights[0])
	}

	// The allow list binds only the directions it names; sideways stays open.
	tiles, _ = rs.AllowedNeighbors(a, Left, pool)
	if len(tiles) != len(pool) {
		t.Errorf("left should be unconstrained, got %d of %d", len(tiles), len(pool))
	}
}

func TestAllowedNeighborsDenial(t *testing.T) {
	a, _, _, pool := ruleTestPool()
	rs := NewRuleSet([]NeighborRule{{
		SelfID: "a",
		Denied: []RuleEntry{
			{NeighborID: "c", Directions: Left | Right},
		},
	}})

	tiles, _ := rs.AllowedNeighbors(a, Left, pool)
	for _, tile := range tiles {
		if tile.ID == "c" {
			t.Error("denied tile survived the filter")
		}
	}
	if len(tiles) != 2 {
		t.Errorf("expected 2 tiles after denial, got %d", len(tiles))
	}

	tiles, _ = rs.AllowedNeighbors(a, Forward, pool)
	if len(tiles) != 3 {
		t.Errorf("denial should not apply forward, got %d tiles", len(tiles))
	}
}

func TestAllowedNeighborsDenialTrumpsAllow(t *testing.T) {
	a, _, _, pool := ruleTestPool()
	rs := NewRuleSet([]NeighborRule{{
		SelfID: "a",
		Allowed: []RuleEntry{
			{NeighborID: "b", Directions: Forward},
			{NeighborID: "c", Directions: Forward},
		},
		Denied: []RuleEntry{
			{NeighborID: "c", Directions: Forward},
		},
	}})

	tiles, _ := rs.AllowedNeighbors(a, Forward, pool)
	if len(tiles) != 1 || tiles[0].ID != "b" {
		t.Errorf("denial inside an allow list must win, got %v", idsOf(tiles))
	}
}

func TestAllowedNeighborsNonPositiveWeightDefaults(t *testing.T) {
	a, _, _, pool := ruleTestPool()
	rs := NewRuleSet([]NeighborRule{{
		SelfID: "a",
		Allowed: []RuleEntry{
			{NeighborID: "b", Directions: Forward, Weight: 0},
		},
	}})
	_, weights := rs.AllowedNeighbors(a, Forward, pool)
	if len(weights) != 1 || weights[0] != 1.0 {
		t.Errorf("zero rule weight should default to 1.0, got %v", weights)
	}
}

func TestIsNeighborAllowed(t *testing.T) {
	a, b, c, _ := ruleTestPool()
	rs := NewRuleSet([]NeighborRule{{
		SelfID: "a",
		Allowed: []RuleEntry{
			{NeighborID: "b", Directions: Forward},
		},
		Denied: []RuleEntry{
			{NeighborID: "c", Directions: DirAll},
		},
	}})

	if !rs.IsNeighborAllowed(a, b, Forward) {
		t.Error("explicitly allowed neighbor rejected")
	}
	if rs.IsNeighborAllowed(a, c, Forward) {
		t.Error("denied neighbor accepted")
	}
	if rs.IsNeighborAllowed(a, c, Backward) {
		t.Error("DirAll denial should cover backward too")
	}
	// b forward is exclusive, so a itself is not a legal forward neighbor.
	if rs.IsNeighborAllowed(a, a, Forward) {
		t.Error("tile outside an exclusive allow list accepted")
	}
	// No allow entries sideways: everything not denied passes.
	if !rs.IsNeighborAllowed(a, b, Left) {
		t.Error("unconstrained direction rejected a neighbor")
	}
	// b declares nothing, so from b's side anything goes.
	if !rs.IsNeighborAllowed(b, a, Backward) {
		t.Error("ruleless tile should allow all neighbors")
	}
	if rs.IsNeighborAllowed(nil, a, Forward) || rs.IsNeighborAllowed(a, nil, Forward) {
		t.Error("nil tiles must never be allowed")
	}
}

func TestRuleSetReplace(t *testing.T) {
	a, b, _, pool := ruleTestPool()
	rs := NewRuleSet([]NeighborRule{{
		SelfID: "a",
		Denied: []RuleEntry{{NeighborID: "b", Directions: DirAll}},
	}})
	if rs.IsNeighborAllowed(a, b, Forward) {
		t.Fatal("denial not applied before replace")
	}
	rs.Replace(nil)
	if !rs.IsNeighborAllowed(a, b, Forward) {
		t.Error("replace did not clear the old rules")
	}
	if tiles, _ := rs.AllowedNeighbors(a, Forward, pool); len(tiles) != len(pool) {
		t.Errorf("expected unconstrained pool after replace, got %d", len(tiles))
	}
}

func idsOf(tiles []*TileDefinition) []string {
	ids := make([]string, len(tiles))
	for i, t := range tiles {
		ids[i] = t.ID
	}
	return ids
}
