package generation

// CellState is the mutable per-coordinate solver state. The grid store owns
// every instance exclusively; nothing else retains references across chunks.
//
// Invariant: Collapsed implies the candidate list holds exactly the resolved
// surface tile.
type CellState struct {
	Surface    *TileDefinition
	Occupant   *TileDefinition
	Collapsed  bool
	Candidates []*TileDefinition
	Weights    map[string]float64
	Entropy    float64
	EdgeLane   bool
	Fallback   bool // substituted by contradiction recovery

	// OccupantOrigin marks the first row covered by the cell's occupant
	// footprint. Materialization fires once per placement, at the origin;
	// adjacent same-tile placements in one lane stay distinct.
	OccupantOrigin bool

	// jitter is the per-cell entropy tiebreaker, fixed at initialization
	// and folded into every entropy recomputation.
	jitter float64
}

// CandidateIDs returns the remaining candidate tile IDs in slice order
func (cs *CellState) CandidateIDs() []string {
	ids := make([]string, len(cs.Candidates))
	for i, t := range cs.Candidates {
		ids[i] = t.ID
	}
	return ids
}

// collapseTo pins the cell to a single tile, keeping the candidate-list
// invariant intact.
func (cs *CellState) collapseTo(tile *TileDefinition) {
	cs.Surface = tile
	cs.Collapsed = true
	cs.Candidates = []*TileDefinition{tile}
	cs.Weights = map[string]float64{tile.ID: 1.0}
	cs.Entropy = 0
}

// removeCandidate drops the candidate at index i, preserving order so that
// weighted draws stay deterministic.
func (cs *CellState) removeCandidate(i int) {
	id := cs.Candidates[i].ID
	cs.Candidates = append(cs.Candidates[:i], cs.Candidates[i+1:]...)
	delete(cs.Weights, id)
}

// GridStore is the sparse (row, lane) -> cell mapping behind the solver.
// Rows are unbounded; lanes are bounded by the config. Single-threaded
// access model: the streaming controller owns all mutation.
type GridStore struct {
	laneCount      int
	defaultSurface *TileDefinition
	candidates     []*TileDefinition
	cells          map[Coord]*CellState
}

// NewGridStore creates an empty grid store. defaultSurface is the
// solid-surface fallback type lazily created cells start from; candidates is
// the full collapse pool a fresh interior cell begins with. Either may be
// nil when the catalog has no such tiles.
func NewGridStore(laneCount int, defaultSurface *TileDefinition, candidates []*TileDefinition) *GridStore {
	return &GridStore{
		laneCount:      laneCount,
		defaultSurface: defaultSurface,
		candidates:     candidates,
		cells:          make(map[Coord]*CellState),
	}
}

// LaneCount returns the number of interior lanes
func (g *GridStore) LaneCount() int {
	return g.laneCount
}

// IsEdgeLane reports whether the lane is one of the two immutable boundary
// lanes.
func (g *GridStore) IsEdgeLane(lane int) bool {
	return lane == 0 || lane == g.laneCount+1
}

// Get returns the cell at c, creating a default uncollapsed cell on first
// access. Never returns nil.
func (g *GridStore) Get(c Coord) *CellState {
	if cell, ok := g.cells[c]; ok {
		return cell
	}
	cell := &CellState{
		Surface:  g.defaultSurface,
		EdgeLane: g.IsEdgeLane(c.Lane),
		Weights:  make(map[string]float64, len(g.candidates)),
	}
	// Interior cells start fully open; nothing is ruled out until the
	// solver initializes the chunk.
	if !cell.EdgeLane {
		cell.Candidates = append([]*TileDefinition(nil), g.candidates...)
		for _, t := range g.candidates {
			cell.Weights[t.ID] = 1.0
		}
	}
	g.cells[c] = cell
	return cell
}

// Lookup returns the cell at c without creating one. Diagnostics and tests
// use this to observe absence.
func (g *GridStore) Lookup(c Coord) (*CellState, bool) {
	cell, ok := g.cells[c]
	return cell, ok
}

// Set stores a cell at c, replacing any existing state
func (g *GridStore) Set(c Coord, cell *CellState) {
	g.cells[c] = cell
}

// Len returns the number of live cells
func (g *GridStore) Len() int {
	return len(g.cells)
}

// EvictRowsBefore removes every cell with row < minRow, invoking release for
// each so external resources (visual instances) can be torn down. Returns
// the number of cells removed.
func (g *GridStore) EvictRowsBefore(minRow int, release ReleaseFunc) int {
	removed := 0
	for c, cell := range g.cells {
		if c.Row < minRow {
			if release != nil {
				release(c, cell)
			}
			delete(g.cells, c)
			removed++
		}
	}
	return removed
}
