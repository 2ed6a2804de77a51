package generation

import (
	"log"
	"math"
)

const (
	// weightEpsilon floors candidate weights so no tile is mathematically
	// excluded before propagation has its say.
	weightEpsilon = 1e-6
	// jitterScale bounds the per-cell entropy tiebreaker.
	jitterScale = 1e-4
	// iterationFactor scales the per-chunk iteration budget.
	iterationFactor = 8
)

// ContradictionEvent records a cell whose candidate set was forced empty and
// had to be substituted with the fallback tile. Diagnosable, never fatal.
type ContradictionEvent struct {
	Cell      Coord     `json:"cell"`
	Source    Coord     `json:"source"`
	Direction Direction `json:"direction"`
	Before    []string  `json:"before"`
	After     []string  `json:"after"`
}

// ChunkResult summarizes one solved chunk
type ChunkResult struct {
	StartRow       int
	EndRow         int
	Collapsed      int
	ZoneSeeded     int
	ForcedByBudget int
	Contradictions int
}

// Solver runs weighted wave-function collapse over one generation chunk at a
// time. All state it touches (grid, path, queue) is owned by the streaming
// controller's single generation thread.
type Solver struct {
	cfg     *GenerationConfig
	catalog *Catalog
	rules   *RuleSet
	noise   NoiseSource
	path    *PathPlanner
	grid    *GridStore
	rng     *RNG

	// current chunk bounds, set for the duration of SolveChunk
	startRow, endRow int

	queue   []Coord
	pending map[Coord]bool

	contradictions []ContradictionEvent
}

// NewSolver wires a solver over shared generation state
func NewSolver(cfg *GenerationConfig, catalog *Catalog, rules *RuleSet, noise NoiseSource, path *PathPlanner, grid *GridStore, rng *RNG) *Solver {
	return &Solver{
		cfg:     cfg,
		catalog: catalog,
		rules:   rules,
		noise:   noise,
		path:    path,
		grid:    grid,
		rng:     rng,
		pending: make(map[Coord]bool),
	}
}

// Contradictions returns every contradiction recorded so far
func (s *Solver) Contradictions() []ContradictionEvent {
	return s.contradictions
}

// SetConfig swaps the active config. Only legal between chunks.
func (s *Solver) SetConfig(cfg *GenerationConfig, noise NoiseSource) {
	s.cfg = cfg
	s.noise = noise
}

// SolveChunk resolves every cell in rows [startRow, endRow). It always
// terminates and always leaves the chunk fully collapsed apart from cells
// that had no candidates and no fallback tile configured.
func (s *Solver) SolveChunk(startRow, endRow int) ChunkResult {
	s.startRow, s.endRow = startRow, endRow
	res := ChunkResult{StartRow: startRow, EndRow: endRow}

	s.initChunk(&res)
	s.pruneSeam(&res)
	s.drain(&res)
	s.mainLoop(&res)

	res.Contradictions = len(s.contradictions)
	return res
}

// initChunk is phase 1: seed candidate sets and pre-collapse the
// deterministic cells (edge lanes, zone interiors). Golden-path cells keep a
// full candidate set with the path tile's weight forced dominant.
func (s *Solver) initChunk(res *ChunkResult) {
	edgeTile := s.catalog.LookupByID(s.cfg.EdgeTile)
	pathTile := s.catalog.LookupByID(s.cfg.PathTile)
	allSurfaces := s.catalog.AllSurfaces()
	collapsible := s.catalog.CollapseCandidates()

	for row := s.startRow; row < s.endRow; row++ {
		for lane := 0; lane <= s.cfg.LaneCount+1; lane++ {
			c := Coord{row, lane}
			cell := s.grid.Get(c)
			// One jitter draw per cell, in scan order, regardless of
			// how the cell initializes: keeps the draw sequence
			// identical across runs.
			cell.jitter = s.rng.Float64() * jitterScale

			switch {
			case cell.EdgeLane:
				if edgeTile != nil {
					cell.collapseTo(edgeTile)
					res.Collapsed++
				}

			case s.path.Contains(c):
				cell.Candidates = append([]*TileDefinition(nil), allSurfaces...)
				cell.Weights = make(map[string]float64, len(allSurfaces))
				for _, t := range allSurfaces {
					if pathTile != nil && t.ID == pathTile.ID {
						cell.Weights[t.ID] = 1.0
					} else {
						cell.Weights[t.ID] = weightEpsilon
					}
				}
				cell.Entropy = s.entropyOf(cell)

			case s.zoneInterior(c):
				zone := s.noise.ZoneOf(s.noise.Sample(row, lane))
				dominant := s.dominantTile(zone)
				if dominant == nil {
					// No dominant tile for this zone; skip the
					// pre-collapse and fall through to a normal
					// boundary cell.
					log.Printf("generation: no dominant tile for zone %d at %v, skipping pre-collapse", zone, c)
					s.initBoundaryCell(cell, c, collapsible)
					continue
				}
				cell.collapseTo(dominant)
				res.Collapsed++
				res.ZoneSeeded++
				s.enqueue(c)

			default:
				s.initBoundaryCell(cell, c, collapsible)
			}
		}
	}
}

// initBoundaryCell seeds a cell that will be resolved by entropy-driven
// collapse: every collapsible tile, weighted by how close the cell's noise
// value sits to the tile's preferred zones.
func (s *Solver) initBoundaryCell(cell *CellState, c Coord, collapsible []*TileDefinition) {
	v := s.noise.Sample(c.Row, c.Lane)
	cell.Candidates = append([]*TileDefinition(nil), collapsible...)
	cell.Weights = make(map[string]float64, len(collapsible))
	for _, t := range collapsible {
		cell.Weights[t.ID] = s.zoneProximityWeight(t, v)
	}
	cell.Entropy = s.entropyOf(cell)
}

// zoneProximityWeight scores a candidate by max over zones of
// affinity * falloff(distance to zone center), floored at epsilon.
func (s *Solver) zoneProximityWeight(t *TileDefinition, noise float64) float64 {
	falloff := s.cfg.Zones.AffinityFalloff
	if falloff <= 0 {
		falloff = 0.5
	}
	best := 0.0
	for zone := 0; zone < s.noise.ZoneCount(); zone++ {
		dist := math.Abs(noise - s.noise.ZoneCenter(zone))
		w := t.AffinityFor(zone) * math.Max(0, 1-dist/falloff)
		if w > best {
			best = w
		}
	}
	if best < weightEpsilon {
		best = weightEpsilon
	}
	return best
}

// zoneInterior reports whether every cell within the configured radius of c
// (edge lanes excluded) classifies to the same zone. The window is centered
// on the query lane.
func (s *Solver) zoneInterior(c Coord) bool {
	radius := s.cfg.Zones.InteriorRadius
	if radius <= 0 || s.noise.ZoneCount() == 0 {
		return false
	}
	zone := s.noise.ZoneOf(s.noise.Sample(c.Row, c.Lane))
	for dr := -radius; dr <= radius; dr++ {
		for dl := -radius; dl <= radius; dl++ {
			lane := c.Lane + dl
			if lane < 1 || lane > s.cfg.LaneCount {
				continue
			}
			if s.noise.ZoneOf(s.noise.Sample(c.Row+dr, lane)) != zone {
				return false
			}
		}
	}
	return true
}

func (s *Solver) dominantTile(zone int) *TileDefinition {
	if zone < 0 || zone >= len(s.cfg.Zones.DominantTiles) {
		return nil
	}
	return s.catalog.LookupByID(s.cfg.Zones.DominantTiles[zone])
}

// pruneSeam is phase 2: the already-collapsed last row of the previous chunk
// is a hard constraint on this chunk's first row. Both directions of every
// adjacency must hold.
func (s *Solver) pruneSeam(res *ChunkResult) {
	if s.startRow == 0 {
		return
	}
	for lane := 1; lane <= s.cfg.LaneCount; lane++ {
		c := Coord{s.startRow, lane}
		cell := s.grid.Get(c)
		if cell.Collapsed {
			continue
		}
		for _, dir := range []Direction{Backward, BackwardLeft, BackwardRight} {
			dr, dl := dir.Delta()
			pc := c.Add(dr, dl)
			prev, ok := s.grid.Lookup(pc)
			if !ok || !prev.Collapsed || prev.Surface == nil || prev.Fallback {
				continue
			}
			before := cell.CandidateIDs()
			changed := false
			for i := len(cell.Candidates) - 1; i >= 0; i-- {
				cand := cell.Candidates[i]
				if !s.rules.IsNeighborAllowed(prev.Surface, cand, dir.Opposite()) ||
					!s.rules.IsNeighborAllowed(cand, prev.Surface, dir) {
					cell.removeCandidate(i)
					changed = true
				}
			}
			if len(cell.Candidates) == 0 {
				s.contradict(cell, c, pc, dir, before)
				break
			}
			if changed {
				cell.Entropy = s.entropyOf(cell)
			}
		}
		if !cell.Collapsed && !cell.Fallback && len(cell.Candidates) == 1 {
			cell.collapseTo(cell.Candidates[0])
			res.Collapsed++
			s.enqueue(c)
		}
	}
}

// mainLoop is phase 4: drain propagation, then repeatedly collapse the
// lowest-entropy cell, under a hard iteration budget.
func (s *Solver) mainLoop(res *ChunkResult) {
	lanes := s.cfg.LaneCount + 2
	budget := (s.endRow - s.startRow) * lanes * iterationFactor

	for i := 0; i < budget; i++ {
		s.drain(res)
		c, cell := s.lowestEntropy()
		if cell == nil {
			return
		}
		s.collapseCell(cell, c, res)
	}

	// Budget exhausted: force-collapse the stragglers so the chunk always
	// finishes. Degraded output, not a failure.
	forced := 0
	for row := s.startRow; row < s.endRow; row++ {
		for lane := 1; lane <= s.cfg.LaneCount; lane++ {
			c := Coord{row, lane}
			cell := s.grid.Get(c)
			if cell.Collapsed || cell.Fallback {
				continue
			}
			s.collapseCell(cell, c, res)
			forced++
		}
	}
	if forced > 0 {
		res.ForcedByBudget = forced
		log.Printf("generation: iteration budget exhausted in chunk [%d,%d), force-collapsed %d cells", s.startRow, s.endRow, forced)
	}
}

// collapseCell draws a tile from the cell's weighted candidates and
// propagates the choice.
func (s *Solver) collapseCell(cell *CellState, c Coord, res *ChunkResult) {
	weights := make([]float64, len(cell.Candidates))
	for i, t := range cell.Candidates {
		weights[i] = cell.Weights[t.ID]
	}
	idx := s.rng.WeightedIndex(weights)
	if idx < 0 {
		// Empty or all-zero-weight candidate set: contradiction precursor.
		s.contradict(cell, c, c, 0, cell.CandidateIDs())
		return
	}
	cell.collapseTo(cell.Candidates[idx])
	res.Collapsed++
	s.enqueue(c)
}

// lowestEntropy scans the chunk for the uncollapsed cell with the lowest
// entropy. Ties are already broken by each cell's init-time jitter, so a
// strict comparison keeps selection stable within a run.
func (s *Solver) lowestEntropy() (Coord, *CellState) {
	var bestCell *CellState
	var bestCoord Coord
	best := math.MaxFloat64
	for row := s.startRow; row < s.endRow; row++ {
		for lane := 1; lane <= s.cfg.LaneCount; lane++ {
			c := Coord{row, lane}
			cell, ok := s.grid.Lookup(c)
			if !ok || cell.Collapsed || cell.Fallback || len(cell.Candidates) == 0 {
				continue
			}
			if cell.Entropy < best {
				best = cell.Entropy
				bestCell = cell
				bestCoord = c
			}
		}
	}
	return bestCoord, bestCell
}

// drain is phase 3 and the inner fixed-point of phase 4: propagate every
// queued collapse until the queue empties.
func (s *Solver) drain(res *ChunkResult) {
	for len(s.queue) > 0 {
		c := s.queue[0]
		s.queue = s.queue[1:]
		delete(s.pending, c)
		s.propagate(c, res)
	}
}

// propagate pushes the constraints of a newly collapsed source cell into its
// 8 neighbors: a target candidate survives only if the source permits it in
// that direction and it permits the source back in the opposite direction.
// Weights combine by running minimum, the most restrictive constraint wins.
func (s *Solver) propagate(src Coord, res *ChunkResult) {
	source := s.grid.Get(src)
	if !source.Collapsed || source.Surface == nil {
		return
	}

	for _, dir := range AllDirections() {
		dr, dl := dir.Delta()
		tc := src.Add(dr, dl)
		if tc.Row < s.startRow || tc.Row >= s.endRow {
			continue
		}
		if tc.Lane < 1 || tc.Lane > s.cfg.LaneCount {
			continue
		}
		target, ok := s.grid.Lookup(tc)
		if !ok || target.Collapsed || target.Fallback {
			continue
		}

		allowed, allowedWeights := s.rules.AllowedNeighbors(source.Surface, dir, target.Candidates)
		incoming := make(map[string]float64, len(allowed))
		for i, t := range allowed {
			incoming[t.ID] = allowedWeights[i]
		}

		before := target.CandidateIDs()
		changed := false
		for i := len(target.Candidates) - 1; i >= 0; i-- {
			cand := target.Candidates[i]
			w, permitted := incoming[cand.ID]
			if !permitted || !s.rules.IsNeighborAllowed(cand, source.Surface, dir.Opposite()) {
				target.removeCandidate(i)
				changed = true
				continue
			}
			if w < target.Weights[cand.ID] {
				target.Weights[cand.ID] = w
				changed = true
			}
		}

		if len(target.Candidates) == 0 {
			s.contradict(target, tc, src, dir, before)
			continue
		}
		if !changed {
			continue
		}
		target.Entropy = s.entropyOf(target)
		if len(target.Candidates) == 1 {
			target.collapseTo(target.Candidates[0])
			res.Collapsed++
		}
		s.enqueue(tc)
	}
}

// contradict substitutes the fallback tile for a cell whose candidates were
// forced empty. The substitution knowingly violates the rules, so the cell is
// not enqueued: its inconsistency must not spread.
func (s *Solver) contradict(cell *CellState, c, src Coord, dir Direction, before []string) {
	fallback := s.catalog.LookupByID(s.cfg.FallbackTile)
	if fallback == nil {
		fallback = s.catalog.LookupByID(s.cfg.DefaultTile)
	}

	var after []string
	if fallback != nil {
		cell.collapseTo(fallback)
		after = []string{fallback.ID}
	} else {
		cell.Candidates = nil
		cell.Weights = map[string]float64{}
		cell.Entropy = 0
	}
	cell.Fallback = true

	ev := ContradictionEvent{Cell: c, Source: src, Direction: dir, Before: before, After: after}
	s.contradictions = append(s.contradictions, ev)
	log.Printf("generation: contradiction at %v (source %v, %s): %v -> %v", c, src, dir, before, after)
}

// entropyOf computes Shannon-style weighted entropy over the cell's
// candidates plus the cell's fixed jitter. Lower means more constrained.
func (s *Solver) entropyOf(cell *CellState) float64 {
	sumW := 0.0
	sumWLogW := 0.0
	for _, t := range cell.Candidates {
		w := cell.Weights[t.ID]
		if w <= 0 {
			continue
		}
		sumW += w
		sumWLogW += w * math.Log(w)
	}
	if sumW <= 0 {
		return 0
	}
	return math.Log(sumW) - sumWLogW/sumW + cell.jitter
}

func (s *Solver) enqueue(c Coord) {
	if s.pending[c] {
		return
	}
	s.pending[c] = true
	s.queue = append(s.queue, c)
}
