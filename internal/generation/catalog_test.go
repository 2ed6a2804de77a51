package generation

import "testing"

func TestCatalogRegisterAndLookup(t *testing.T) {
	c := NewCatalog()
	c.Register(DefaultTiles())

	if c.Len() == 0 {
		t.Fatal("catalog empty after registering default tiles")
	}
	grass := c.LookupByID("surf.grass")
	if grass == nil {
		t.Fatal("surf.grass missing")
	}
	if grass.Layer != LayerSurface || !grass.Walkable {
		t.Errorf("surf.grass misregistered: %+v", grass)
	}
	if c.LookupByID("surf.nothing") != nil {
		t.Error("unknown ID should return nil")
	}
	if got := c.SurfaceCandidates(SurfaceType("volcano")); len(got) != 0 {
		t.Errorf("unknown surface type should return empty, got %d", len(got))
	}
}

func TestCatalogDuplicateKeepsFirst(t *testing.T) {
	c := NewCatalog()
	c.Register([]*TileDefinition{
		{ID: "dup", Name: "First", Layer: LayerSurface, Surface: SurfaceGround},
		{ID: "dup", Name: "Second", Layer: LayerSurface, Surface: SurfaceGround},
	})
	if c.Len() != 1 {
		t.Fatalf("expected 1 tile, got %d", c.Len())
	}
	if got := c.LookupByID("dup").Name; got != "First" {
		t.Errorf("duplicate registration replaced first entry, got %q", got)
	}
}

func TestCatalogIgnoresInvalidEntries(t *testing.T) {
	c := NewCatalog()
	c.Register([]*TileDefinition{
		nil,
		{ID: "", Name: "Anonymous", Layer: LayerSurface},
		{ID: "ok", Name: "OK", Layer: LayerSurface, Surface: SurfaceGround},
	})
	if c.Len() != 1 {
		t.Errorf("expected only the valid tile, got %d", c.Len())
	}
}

func TestCatalogFloorsFootprintAndWeight(t *testing.T) {
	c := NewCatalog()
	c.Register([]*TileDefinition{
		{ID: "occ.x", Layer: LayerOccupant, Occupant: OccupantObstacle},
	})
	tile := c.LookupByID("occ.x")
	if tile.Footprint != 1 {
		t.Errorf("Footprint = %d, want floor of 1", tile.Footprint)
	}
	if tile.Weight != 1.0 {
		t.Errorf("Weight = %v, want default 1.0", tile.Weight)
	}
}

func TestCollapseCandidatesExcludeNoCollapse(t *testing.T) {
	c := NewCatalog()
	c.Register(DefaultTiles())
	for _, tile := range c.CollapseCandidates() {
		if tile.NoCollapse {
			t.Errorf("%s is NoCollapse but came back as a collapse candidate", tile.ID)
		}
		if tile.Layer != LayerSurface {
			t.Errorf("%s is not a surface tile", tile.ID)
		}
	}
	if len(c.CollapseCandidates()) >= len(c.AllSurfaces()) {
		t.Error("expected track/edge/debug to be excluded from collapse candidates")
	}
}

func TestAllOccupantsRegistrationOrder(t *testing.T) {
	c := NewCatalog()
	c.Register(DefaultTiles())
	occ := c.AllOccupants()
	if len(occ) == 0 {
		t.Fatal("no occupants registered")
	}
	if occ[0].ID != "occ.crate" {
		t.Errorf("first occupant = %s, want registration order preserved", occ[0].ID)
	}
	for _, tile := range occ {
		if tile.Layer != LayerOccupant {
			t.Errorf("%s is not an occupant tile", tile.ID)
		}
	}
}

func TestAffinityForDefaultsToNeutral(t *testing.T) {
	tile := &TileDefinition{ID: "x", ZoneAffinity: map[int]float64{1: 2.5}}
	if got := tile.AffinityFor(1); got != 2.5 {
		t.Errorf("AffinityFor(1) = %v, want 2.5", got)
	}
	if got := tile.AffinityFor(0); got != 1.0 {
		t.Errorf("AffinityFor(0) = %v, want neutral 1.0", got)
	}
	bare := &TileDefinition{ID: "y"}
	if got := bare.AffinityFor(3); got != 1.0 {
		t.Errorf("AffinityFor with nil map = %v, want 1.0", got)
	}
}

func TestAllowsSurface(t *testing.T) {
	tile := &TileDefinition{ID: "occ", AllowedSurfaces: []string{"surf.grass"}}
	if !tile.AllowsSurface("surf.grass") {
		t.Error("whitelisted surface rejected")
	}
	if tile.AllowsSurface("surf.sand") {
		t.Error("non-whitelisted surface accepted")
	}
	open := &TileDefinition{ID: "open"}
	if !open.AllowsSurface("anything") {
		t.Error("empty whitelist should allow every surface")
	}
}
