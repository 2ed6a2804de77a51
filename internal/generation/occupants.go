package generation

// OccupantPlacer layers obstacles, collectibles, and edge walls onto the
// resolved surface grid, one chunk at a time, under the configured cost
// budget. Per-lane placement history persists across chunks so row gaps hold
// over seam boundaries.
type OccupantPlacer struct {
	cfg     *GenerationConfig
	catalog *Catalog
	grid    *GridStore
	path    *PathPlanner
	rng     *RNG

	// lastPlaced[lane][tileID] = origin row of the most recent placement
	lastPlaced map[int]map[string]int
	wallCursor int
}

// NewOccupantPlacer wires a placer over shared generation state
func NewOccupantPlacer(cfg *GenerationConfig, catalog *Catalog, grid *GridStore, path *PathPlanner, rng *RNG) *OccupantPlacer {
	return &OccupantPlacer{
		cfg:        cfg,
		catalog:    catalog,
		grid:       grid,
		path:       path,
		rng:        rng,
		lastPlaced: make(map[int]map[string]int),
	}
}

// SetConfig swaps the active config. Only legal between chunks.
func (p *OccupantPlacer) SetConfig(cfg *GenerationConfig) {
	p.cfg = cfg
}

// PlaceChunk runs the budgeted placement pass over rows [startRow, endRow),
// then fills the edge lanes with walls. Returns the total cost spent.
func (p *OccupantPlacer) PlaceChunk(startRow, endRow int) float64 {
	pool := p.interiorPool()
	spent := 0.0

	for row := startRow; row < endRow; row++ {
		for lane := 1; lane <= p.cfg.LaneCount; lane++ {
			c := Coord{row, lane}
			cell, ok := p.grid.Lookup(c)
			if !ok || !cell.Collapsed || cell.Surface == nil || cell.Occupant != nil {
				continue
			}
			if p.cfg.Occupants.SpawnChance <= 0 || p.rng.Float64() >= p.cfg.Occupants.SpawnChance {
				continue
			}

			var eligible []*TileDefinition
			var weights []float64
			for _, t := range pool {
				if spent+t.Cost > p.cfg.Occupants.Budget {
					continue
				}
				if !p.canPlace(t, c, endRow) {
					continue
				}
				eligible = append(eligible, t)
				weights = append(weights, t.Weight)
			}
			if len(eligible) == 0 {
				continue
			}
			idx := p.rng.WeightedIndex(weights)
			if idx < 0 {
				continue
			}
			tile := eligible[idx]
			p.place(tile, c)
			spent += tile.Cost
		}
	}

	p.placeEdgeWalls(startRow, endRow)
	return spent
}

// interiorPool returns the non-wall occupant tiles in registration order
func (p *OccupantPlacer) interiorPool() []*TileDefinition {
	var pool []*TileDefinition
	for _, t := range p.catalog.AllOccupants() {
		if t.Occupant == OccupantWall {
			continue
		}
		pool = append(pool, t)
	}
	return pool
}

// canPlace checks every placement constraint for tile at origin c:
// allowed-surface whitelist, path walkability, per-lane row gap including
// footprint, footprint fitting inside the chunk on resolved cells, and the
// guarantee that every covered row keeps at least one walkable interior lane.
func (p *OccupantPlacer) canPlace(t *TileDefinition, c Coord, endRow int) bool {
	if c.Row+t.Footprint > endRow {
		return false
	}
	if last, ok := p.lastPlaced[c.Lane][t.ID]; ok {
		if c.Row < last+t.Footprint+t.MinRowGap {
			return false
		}
	}
	for dr := 0; dr < t.Footprint; dr++ {
		cc := c.Add(dr, 0)
		cell, ok := p.grid.Lookup(cc)
		if !ok || !cell.Collapsed || cell.Surface == nil || cell.Occupant != nil {
			return false
		}
		if !t.AllowsSurface(cell.Surface.ID) {
			return false
		}
		if p.path.Contains(cc) && !t.Walkable {
			return false
		}
		if !t.Walkable && !p.rowStaysWalkable(cc) {
			return false
		}
	}
	return true
}

// rowStaysWalkable reports whether the row would keep at least one walkable
// interior lane if c's lane became blocked.
func (p *OccupantPlacer) rowStaysWalkable(c Coord) bool {
	for lane := 1; lane <= p.cfg.LaneCount; lane++ {
		if lane == c.Lane {
			continue
		}
		cell, ok := p.grid.Lookup(Coord{c.Row, lane})
		if !ok || !cell.Collapsed || cell.Surface == nil || !cell.Surface.Walkable {
			continue
		}
		if cell.Occupant == nil || cell.Occupant.Walkable {
			return true
		}
	}
	return false
}

// place writes the occupant onto every covered cell and records the origin
// row for the gap rule. Materialization happens once, at the origin, by the
// streaming controller.
func (p *OccupantPlacer) place(t *TileDefinition, c Coord) {
	for dr := 0; dr < t.Footprint; dr++ {
		cell := p.grid.Get(c.Add(dr, 0))
		cell.Occupant = t
		cell.OccupantOrigin = dr == 0
	}
	if p.lastPlaced[c.Lane] == nil {
		p.lastPlaced[c.Lane] = make(map[string]int)
	}
	p.lastPlaced[c.Lane][t.ID] = c.Row
}

// placeEdgeWalls fills every edge-lane cell not already occupied, cycling
// through the available wall tiles, subject only to the footprint/gap rule.
func (p *OccupantPlacer) placeEdgeWalls(startRow, endRow int) {
	walls := p.catalog.OccupantCandidates(OccupantWall)
	if len(walls) == 0 {
		return
	}
	for _, lane := range []int{0, p.cfg.LaneCount + 1} {
		for row := startRow; row < endRow; row++ {
			c := Coord{row, lane}
			cell := p.grid.Get(c)
			if cell.Occupant != nil {
				continue
			}
			wall := walls[p.wallCursor%len(walls)]
			if c.Row+wall.Footprint > endRow {
				wall = walls[0]
				if c.Row+wall.Footprint > endRow {
					continue
				}
			}
			if last, ok := p.lastPlaced[lane][wall.ID]; ok {
				if c.Row < last+wall.Footprint+wall.MinRowGap {
					continue
				}
			}
			p.wallCursor++
			p.place(wall, c)
		}
	}
}

// PruneBefore drops placement history older than minRow so the gap maps do
// not grow without bound.
func (p *OccupantPlacer) PruneBefore(minRow int) {
	for lane, byTile := range p.lastPlaced {
		for id, row := range byTile {
			if row < minRow {
				delete(byTile, id)
			}
		}
		if len(byTile) == 0 {
			delete(p.lastPlaced, lane)
		}
	}
}
