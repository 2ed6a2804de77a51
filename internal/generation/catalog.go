package generation

// TileLayer separates the two placement layers of the track.
type TileLayer string

const (
	LayerSurface  TileLayer = "surface"
	LayerOccupant TileLayer = "occupant"
)

// SurfaceType tags what kind of ground a surface tile is
type SurfaceType string

const (
	SurfaceGround SurfaceType = "ground"
	SurfaceHole   SurfaceType = "hole"
	SurfacePath   SurfaceType = "path"
	SurfaceEdge   SurfaceType = "edge"
	SurfaceDebug  SurfaceType = "debug"
)

// OccupantType tags what kind of object an occupant tile is
type OccupantType string

const (
	OccupantObstacle    OccupantType = "obstacle"
	OccupantCollectible OccupantType = "collectible"
	OccupantWall        OccupantType = "wall"
)

// TileDefinition is an immutable catalog entry, loaded once at startup.
type TileDefinition struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Layer    TileLayer    `json:"layer"`
	Surface  SurfaceType  `json:"surface_type,omitempty"`
	Occupant OccupantType `json:"occupant_type,omitempty"`

	// Footprint is the tile's length in rows (>= 1).
	Footprint int `json:"footprint,omitempty"`
	// MinRowGap is the minimum number of rows between repeated placements
	// of this tile in the same lane, measured past the footprint.
	MinRowGap int `json:"min_row_gap,omitempty"`

	// Variants are opaque visual handles; the core only forwards them.
	Variants []string `json:"variants,omitempty"`

	// AllowedSurfaces restricts which surface tile IDs an occupant may sit
	// on. Empty means unconstrained. Surface tiles ignore this field.
	AllowedSurfaces []string `json:"allowed_surfaces,omitempty"`

	Walkable bool `json:"walkable"`

	// ZoneAffinity maps zone index -> affinity weight. Missing zones read
	// as the neutral 1.0.
	ZoneAffinity map[int]float64 `json:"zone_affinity,omitempty"`

	// Cost is charged against the per-chunk occupant budget.
	Cost float64 `json:"cost,omitempty"`
	// Weight is the base selection weight for weighted-random draws.
	Weight float64 `json:"weight,omitempty"`

	// NoCollapse excludes this tile from entropy-driven random collapse.
	// It can still be forced by zones, the golden path, or edge lanes.
	NoCollapse bool `json:"no_collapse,omitempty"`
}

// AffinityFor returns the tile's affinity weight for a zone, defaulting to
// the neutral 1.0.
func (t *TileDefinition) AffinityFor(zone int) float64 {
	if t.ZoneAffinity == nil {
		return 1.0
	}
	if w, ok := t.ZoneAffinity[zone]; ok {
		return w
	}
	return 1.0
}

// AllowsSurface reports whether an occupant may be placed on the given
// surface tile.
func (t *TileDefinition) AllowsSurface(surfaceID string) bool {
	if len(t.AllowedSurfaces) == 0 {
		return true
	}
	for _, id := range t.AllowedSurfaces {
		if id == surfaceID {
			return true
		}
	}
	return false
}

// Catalog is the registry of tile definitions, indexed by ID and by type.
// Lookups that miss return nil or an empty slice rather than failing: a
// missing catalog entry is a recoverable configuration problem, and callers
// handle absence explicitly.
type Catalog struct {
	tiles []*TileDefinition

	byID         map[string]*TileDefinition
	bySurface    map[SurfaceType][]*TileDefinition
	byOccupant   map[OccupantType][]*TileDefinition
	surfaceTiles []*TileDefinition
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	c := &Catalog{}
	c.rebuild()
	return c
}

// Register adds tile definitions and rebuilds the lookup tables. A duplicate
// ID keeps the first registration and ignores the rest.
func (c *Catalog) Register(tiles []*TileDefinition) {
	for _, t := range tiles {
		if t == nil || t.ID == "" {
			continue
		}
		if _, exists := c.byID[t.ID]; exists {
			continue
		}
		if t.Footprint < 1 {
			t.Footprint = 1
		}
		if t.Weight <= 0 {
			t.Weight = 1.0
		}
		c.tiles = append(c.tiles, t)
		c.byID[t.ID] = t
	}
	c.rebuild()
}

func (c *Catalog) rebuild() {
	c.byID = make(map[string]*TileDefinition, len(c.tiles))
	c.bySurface = make(map[SurfaceType][]*TileDefinition)
	c.byOccupant = make(map[OccupantType][]*TileDefinition)
	c.surfaceTiles = c.surfaceTiles[:0]

	for _, t := range c.tiles {
		c.byID[t.ID] = t
		switch t.Layer {
		case LayerSurface:
			c.bySurface[t.Surface] = append(c.bySurface[t.Surface], t)
			c.surfaceTiles = append(c.surfaceTiles, t)
		case LayerOccupant:
			c.byOccupant[t.Occupant] = append(c.byOccupant[t.Occupant], t)
		}
	}
}

// LookupByID returns the tile with the given ID, or nil if unknown
func (c *Catalog) LookupByID(id string) *TileDefinition {
	return c.byID[id]
}

// SurfaceCandidates returns all surface tiles of the given type
func (c *Catalog) SurfaceCandidates(t SurfaceType) []*TileDefinition {
	return c.bySurface[t]
}

// OccupantCandidates returns all occupant tiles of the given type
func (c *Catalog) OccupantCandidates(t OccupantType) []*TileDefinition {
	return c.byOccupant[t]
}

// AllSurfaces returns every surface-layer tile in registration order.
func (c *Catalog) AllSurfaces() []*TileDefinition {
	return c.surfaceTiles
}

// CollapseCandidates returns the surface tiles eligible for entropy-driven
// random collapse, in registration order.
func (c *Catalog) CollapseCandidates() []*TileDefinition {
	out := make([]*TileDefinition, 0, len(c.surfaceTiles))
	for _, t := range c.surfaceTiles {
		if !t.NoCollapse {
			out = append(out, t)
		}
	}
	return out
}

// AllOccupants returns every occupant-layer tile in registration order.
func (c *Catalog) AllOccupants() []*TileDefinition {
	out := make([]*TileDefinition, 0)
	for _, t := range c.tiles {
		if t.Layer == LayerOccupant {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of registered tiles
func (c *Catalog) Len() int {
	return len(c.tiles)
}
