package generation

import (
	"fmt"
	"log"
)

// Stats is the cumulative generation bookkeeping exposed on the diagnostics
// surface.
type Stats struct {
	Frontier       int     `json:"frontier"`
	GeneratedRows  int     `json:"generated_rows"`
	EvictedCells   int     `json:"evicted_cells"`
	ChunksSolved   int     `json:"chunks_solved"`
	CellsCollapsed int     `json:"cells_collapsed"`
	ZoneSeeded     int     `json:"zone_seeded"`
	ForcedByBudget int     `json:"forced_by_budget"`
	Contradictions int     `json:"contradictions"`
	OccupantCost   float64 `json:"occupant_cost"`
}

// Option configures a StreamingController at construction
type Option func(*StreamingController)

// WithMaterialize installs the callback invoked once per resolved cell
func WithMaterialize(fn MaterializeFunc) Option {
	return func(sc *StreamingController) { sc.materialize = fn }
}

// WithRelease installs the callback invoked per cell on eviction
func WithRelease(fn ReleaseFunc) Option {
	return func(sc *StreamingController) { sc.release = fn }
}

// WithNoiseSource overrides the config-derived noise field. Verification
// tools use this to drive the solver with synthetic terrain.
func WithNoiseSource(src NoiseSource) Option {
	return func(sc *StreamingController) { sc.noise = src }
}

// StreamingController orchestrates chunked generation ahead of a moving
// frontier and evicts rows behind it. It owns all solver state exclusively;
// the whole model is single-threaded and synchronous, driven by
// AdvanceFrontier once per external tick.
type StreamingController struct {
	cfg     *GenerationConfig
	nextCfg *GenerationConfig
	catalog *Catalog
	rules   *RuleSet
	noise   NoiseSource
	path    *PathPlanner
	grid    *GridStore
	solver  *Solver
	placer  *OccupantPlacer
	rng     *RNG

	materialize MaterializeFunc
	release     ReleaseFunc

	frontier  int
	generated int // rows [0, generated) are solved
	stats     Stats
}

// NewStreamingController validates the config and wires the full generation
// pipeline. A validation error is a refusal to run, not a degraded start.
func NewStreamingController(cfg *GenerationConfig, catalog *Catalog, rules *RuleSet, opts ...Option) (*StreamingController, error) {
	if err := cfg.Validate(catalog, rules); err != nil {
		return nil, fmt.Errorf("refusing to start generation: %w", err)
	}

	seed := cfg.SeedValue()
	rng := NewRNG(seed)
	sc := &StreamingController{
		cfg:     cfg,
		catalog: catalog,
		rules:   rules,
		noise:   NewNoiseField(seed, cfg.Noise, cfg.Zones),
		path:    NewPathPlanner(cfg.Path, cfg.LaneCount, seed),
		grid:    NewGridStore(cfg.LaneCount, catalog.LookupByID(cfg.DefaultTile), catalog.CollapseCandidates()),
		rng:     rng,
	}
	for _, opt := range opts {
		opt(sc)
	}
	sc.solver = NewSolver(cfg, catalog, rules, sc.noise, sc.path, sc.grid, rng)
	sc.placer = NewOccupantPlacer(cfg, catalog, sc.grid, sc.path, rng)
	return sc, nil
}

// AdvanceFrontier consumes the external frontier row, generates chunks until
// the buffer ahead of it is full, and evicts rows behind the retention
// window. The single external trigger for all generation work.
func (sc *StreamingController) AdvanceFrontier(row int) {
	if row > sc.frontier {
		sc.frontier = row
	}

	for sc.generated < sc.frontier+sc.cfg.BufferRows {
		sc.generateChunk()
	}

	minRow := sc.frontier - sc.cfg.RetentionRows
	if minRow > 0 {
		evicted := sc.grid.EvictRowsBefore(minRow, sc.release)
		sc.path.PruneBefore(minRow)
		sc.placer.PruneBefore(minRow)
		sc.stats.EvictedCells += evicted
	}

	sc.stats.Frontier = sc.frontier
	sc.stats.GeneratedRows = sc.generated
}

// generateChunk runs one full chunk through the pipeline: biome switch if
// one is staged, path extension, WFC solve, occupant placement, and
// materialization.
func (sc *StreamingController) generateChunk() {
	if sc.nextCfg != nil {
		sc.applyConfig(sc.nextCfg)
		sc.nextCfg = nil
	}

	start := sc.generated
	end := start + sc.cfg.ChunkRows

	sc.path.AdvanceTo(end + sc.cfg.ContextRows)

	res := sc.solver.SolveChunk(start, end)
	spent := sc.placer.PlaceChunk(start, end)

	sc.stats.ChunksSolved++
	sc.stats.CellsCollapsed += res.Collapsed
	sc.stats.ZoneSeeded += res.ZoneSeeded
	sc.stats.ForcedByBudget += res.ForcedByBudget
	sc.stats.Contradictions = len(sc.solver.Contradictions())
	sc.stats.OccupantCost += spent

	sc.materializeChunk(start, end)
	sc.generated = end
}

// materializeChunk issues the spawn callback for every resolved surface and
// for the origin cell of each occupant.
func (sc *StreamingController) materializeChunk(start, end int) {
	if sc.materialize == nil {
		return
	}
	for row := start; row < end; row++ {
		for lane := 0; lane <= sc.cfg.LaneCount+1; lane++ {
			c := Coord{row, lane}
			cell, ok := sc.grid.Lookup(c)
			if !ok || !cell.Collapsed || cell.Surface == nil {
				continue
			}
			at := sc.TransformFor(c)
			sc.materialize(c, cell.Surface, at)
			if cell.Occupant != nil && cell.OccupantOrigin {
				sc.materialize(c, cell.Occupant, at)
			}
		}
	}
}

// TransformFor maps a coordinate to the world-space placement implied by the
// lane/row geometry.
func (sc *StreamingController) TransformFor(c Coord) Transform {
	laneWidth := sc.cfg.LaneWidth
	if laneWidth <= 0 {
		laneWidth = 1.0
	}
	rowLength := sc.cfg.RowLength
	if rowLength <= 0 {
		rowLength = 1.0
	}
	half := float64(sc.cfg.LaneCount+1) / 2
	return Transform{
		X: (float64(c.Lane) - half) * laneWidth,
		Z: float64(c.Row) * rowLength,
	}
}

// SwitchBiome stages a new config to take effect at the next chunk boundary.
// Lane geometry must not change mid-stream.
func (sc *StreamingController) SwitchBiome(cfg *GenerationConfig) error {
	if err := cfg.Validate(sc.catalog, sc.rules); err != nil {
		return err
	}
	if cfg.LaneCount != sc.cfg.LaneCount {
		return fmt.Errorf("generation: cannot switch lane count mid-stream (%d -> %d)", sc.cfg.LaneCount, cfg.LaneCount)
	}
	sc.nextCfg = cfg
	log.Printf("generation: biome switch to %q staged for next chunk", cfg.Biome)
	return nil
}

// applyConfig swaps the active config between chunks. The noise field is
// rebuilt from the same seed with the new parameters; path geometry and the
// grid survive.
func (sc *StreamingController) applyConfig(cfg *GenerationConfig) {
	sc.cfg = cfg
	if _, isField := sc.noise.(*NoiseField); isField || sc.noise == nil {
		sc.noise = NewNoiseField(cfg.SeedValue(), cfg.Noise, cfg.Zones)
	}
	sc.solver.SetConfig(cfg, sc.noise)
	sc.placer.SetConfig(cfg)
	log.Printf("generation: switched to biome %q at row %d", cfg.Biome, sc.generated)
}

// --- Diagnostics surface (read-only) ---

// Config returns the active generation config
func (sc *StreamingController) Config() *GenerationConfig {
	return sc.cfg
}

// Grid exposes the grid store for read-only inspection
func (sc *StreamingController) Grid() *GridStore {
	return sc.grid
}

// Path exposes the golden-path planner for read-only inspection
func (sc *StreamingController) Path() *PathPlanner {
	return sc.path
}

// Rules exposes the neighbor rule set for read-only inspection
func (sc *StreamingController) Rules() *RuleSet {
	return sc.rules
}

// Contradictions returns every contradiction recorded so far
func (sc *StreamingController) Contradictions() []ContradictionEvent {
	return sc.solver.Contradictions()
}

// Stats returns the cumulative generation statistics
func (sc *StreamingController) Stats() Stats {
	return sc.stats
}

// GeneratedRows returns the exclusive upper bound of solved rows
func (sc *StreamingController) GeneratedRows() int {
	return sc.generated
}
