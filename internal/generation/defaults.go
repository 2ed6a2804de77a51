package generation

// DefaultTiles returns the standard runner tile set used when no tiles.json
// is provided. IDs are stable; configs reference them by name.
func DefaultTiles() []*TileDefinition {
	return []*TileDefinition{
		// Surfaces
		{
			ID: "surf.grass", Name: "Grass", Layer: LayerSurface, Surface: SurfaceGround,
			Walkable: true, Weight: 1.2,
			ZoneAffinity: map[int]float64{0: 1.5, 1: 0.6, 2: 0.3},
		},
		{
			ID: "surf.sand", Name: "Sand", Layer: LayerSurface, Surface: SurfaceGround,
			Walkable: true, Weight: 1.0,
			ZoneAffinity: map[int]float64{0: 0.5, 1: 1.5, 2: 0.5},
		},
		{
			ID: "surf.rock", Name: "Rock", Layer: LayerSurface, Surface: SurfaceGround,
			Walkable: true, Weight: 0.9,
			ZoneAffinity: map[int]float64{0: 0.3, 1: 0.6, 2: 1.5},
		},
		{
			ID: "surf.hole", Name: "Hole", Layer: LayerSurface, Surface: SurfaceHole,
			Walkable: false, Weight: 0.4,
		},
		{
			ID: "surf.track", Name: "Track", Layer: LayerSurface, Surface: SurfacePath,
			Walkable: true, Weight: 1.0, NoCollapse: true,
		},
		{
			ID: "surf.edge", Name: "Edge", Layer: LayerSurface, Surface: SurfaceEdge,
			Walkable: false, Weight: 1.0, NoCollapse: true,
		},
		{
			ID: "surf.debug", Name: "Debug", Layer: LayerSurface, Surface: SurfaceDebug,
			Walkable: true, Weight: 1.0, NoCollapse: true,
		},

		// Occupants
		{
			ID: "occ.crate", Name: "Crate", Layer: LayerOccupant, Occupant: OccupantObstacle,
			Footprint: 1, MinRowGap: 2, Cost: 2.0, Weight: 1.0,
			AllowedSurfaces: []string{"surf.grass", "surf.sand", "surf.rock"},
			Variants:        []string{"crate_a", "crate_b"},
		},
		{
			ID: "occ.log", Name: "Fallen Log", Layer: LayerOccupant, Occupant: OccupantObstacle,
			Footprint: 2, MinRowGap: 4, Cost: 3.0, Weight: 0.6,
			AllowedSurfaces: []string{"surf.grass", "surf.rock"},
			Variants:        []string{"log_a"},
		},
		{
			ID: "occ.coin", Name: "Coin", Layer: LayerOccupant, Occupant: OccupantCollectible,
			Footprint: 1, MinRowGap: 1, Cost: 0.5, Weight: 2.0, Walkable: true,
			Variants: []string{"coin"},
		},
		{
			ID: "occ.wall", Name: "Edge Wall", Layer: LayerOccupant, Occupant: OccupantWall,
			Footprint: 1, Cost: 0, Weight: 1.0,
			Variants: []string{"wall_a", "wall_b"},
		},
		{
			ID: "occ.wall.pillar", Name: "Edge Pillar", Layer: LayerOccupant, Occupant: OccupantWall,
			Footprint: 1, MinRowGap: 0, Cost: 0, Weight: 1.0,
			Variants: []string{"pillar"},
		},
	}
}

// DefaultRules returns the standard adjacency rules for the default tile
// set. Tiles without an entry are unconstrained.
func DefaultRules() []NeighborRule {
	return []NeighborRule{
		{
			// Holes never cluster: a hole forbids holes on all 8 sides.
			SelfID: "surf.hole",
			Denied: []RuleEntry{
				{NeighborID: "surf.hole", Directions: DirAll},
			},
		},
		{
			// Rock runs in streaks along the travel axis and keeps holes
			// out of its row neighborhood.
			SelfID: "surf.rock",
			Allowed: []RuleEntry{
				{NeighborID: "surf.rock", Directions: Forward | Backward, Weight: 2.0},
				{NeighborID: "surf.grass", Directions: Forward | Backward, Weight: 1.0},
				{NeighborID: "surf.sand", Directions: Forward | Backward, Weight: 0.8},
				{NeighborID: "surf.track", Directions: Forward | Backward, Weight: 1.0},
				{NeighborID: "surf.debug", Directions: Forward | Backward, Weight: 1.0},
			},
		},
		{
			// Sand avoids butting into rock sideways.
			SelfID: "surf.sand",
			Denied: []RuleEntry{
				{NeighborID: "surf.rock", Directions: Left | Right},
			},
		},
	}
}

// DefaultConfig returns a validated-by-construction single-biome config with
// sane defaults for every tunable.
func DefaultConfig() *GenerationConfig {
	return &GenerationConfig{
		Biome:     "meadow",
		Seed:      "trailgen",
		LaneCount: 5,
		LaneWidth: 2.0,
		RowLength: 2.0,

		ChunkRows:     12,
		BufferRows:    24,
		RetentionRows: 36,
		ContextRows:   2,

		Noise: NoiseConfig{
			Octaves:      4,
			Lacunarity:   2.0,
			Gain:         0.5,
			WarpStrength: 1.5,
			WarpScale:    0.7,
			Blur:         0.25,
			FeatureScale: 0.08,
		},
		Zones: ZoneConfig{
			Thresholds:      []float64{0.35, 0.65, 1.0},
			DominantTiles:   []string{"surf.grass", "surf.sand", "surf.rock"},
			InteriorRadius:  2,
			AffinityFalloff: 0.4,
		},
		Path: PathConfig{
			Amplitude:        2.0,
			Frequency:        0.06,
			Smoothing:        0.35,
			MaxShiftPerRow:   1.0,
			EdgePadding:      0,
			RestChance:       0.08,
			MinRestRows:      3,
			MaxRestRows:      6,
			RestCooldownRows: 8,
		},
		Occupants: OccupantConfig{
			Budget:      14.0,
			SpawnChance: 0.35,
		},

		DefaultTile:  "surf.grass",
		PathTile:     "surf.track",
		EdgeTile:     "surf.edge",
		FallbackTile: "surf.debug",
	}
}
