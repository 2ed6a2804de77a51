package generation

import (
	"errors"
	"fmt"
)

// Validation failures surfaced before generation is allowed to start. The
// generator refuses to run in a broken state rather than degrading silently.
var (
	ErrEmptyCatalog      = errors.New("generation: tile catalog is empty")
	ErrNoRuleSet         = errors.New("generation: neighbor rule set is missing")
	ErrBadLaneCount      = errors.New("generation: lane count must be positive")
	ErrRetentionTooSmall = errors.New("generation: retention window must exceed chunk size plus context rows")
)

// OccupantConfig tunes the secondary placement pass
type OccupantConfig struct {
	// Budget caps the total spawn cost placed per chunk.
	Budget float64 `json:"budget"`
	// SpawnChance is the global per-cell probability of attempting a
	// placement at all.
	SpawnChance float64 `json:"spawn_chance"`
}

// GenerationConfig is the immutable-per-biome parameter bundle driving the
// whole generator. One config is active at a time; switching happens only at
// chunk boundaries.
type GenerationConfig struct {
	Biome string `json:"biome"`
	Seed  string `json:"seed"`

	// Lane geometry. Interior lanes are 1..LaneCount; lanes 0 and
	// LaneCount+1 are the immutable edge lanes.
	LaneCount int     `json:"lane_count"`
	LaneWidth float64 `json:"lane_width"`
	RowLength float64 `json:"row_length"`

	// Streaming window.
	ChunkRows     int `json:"chunk_rows"`
	BufferRows    int `json:"buffer_rows"`
	RetentionRows int `json:"retention_rows"`
	ContextRows   int `json:"context_rows"`

	Noise     NoiseConfig    `json:"noise"`
	Zones     ZoneConfig     `json:"zones"`
	Path      PathConfig     `json:"path"`
	Occupants OccupantConfig `json:"occupants"`

	// Well-known tile IDs.
	DefaultTile  string `json:"default_tile"`
	PathTile     string `json:"path_tile"`
	EdgeTile     string `json:"edge_tile"`
	FallbackTile string `json:"fallback_tile"`
}

// Validate checks the config against the catalog and rule set. Any error
// returned here is fatal to the generation subsystem: the caller must not
// start generating.
func (cfg *GenerationConfig) Validate(catalog *Catalog, rules *RuleSet) error {
	if catalog == nil || catalog.Len() == 0 {
		return ErrEmptyCatalog
	}
	if rules == nil {
		return ErrNoRuleSet
	}
	if cfg.LaneCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadLaneCount, cfg.LaneCount)
	}
	if cfg.ChunkRows <= 0 {
		return fmt.Errorf("generation: chunk rows must be positive, got %d", cfg.ChunkRows)
	}
	if cfg.RetentionRows <= cfg.ChunkRows+cfg.ContextRows {
		return fmt.Errorf("%w: retention %d, chunk %d, context %d",
			ErrRetentionTooSmall, cfg.RetentionRows, cfg.ChunkRows, cfg.ContextRows)
	}
	for i, prev := 0, -1.0; i < len(cfg.Zones.Thresholds); i++ {
		if cfg.Zones.Thresholds[i] <= prev {
			return fmt.Errorf("generation: zone thresholds must be strictly ascending, got %v", cfg.Zones.Thresholds)
		}
		prev = cfg.Zones.Thresholds[i]
	}
	if len(cfg.Zones.DominantTiles) != len(cfg.Zones.Thresholds) {
		return fmt.Errorf("generation: %d zone thresholds but %d dominant tiles",
			len(cfg.Zones.Thresholds), len(cfg.Zones.DominantTiles))
	}
	for tileID, what := range map[string]string{
		cfg.DefaultTile:  "default tile",
		cfg.PathTile:     "path tile",
		cfg.EdgeTile:     "edge tile",
		cfg.FallbackTile: "fallback tile",
	} {
		if tileID == "" {
			continue
		}
		if catalog.LookupByID(tileID) == nil {
			return fmt.Errorf("generation: %s %q is not in the catalog", what, tileID)
		}
	}
	return nil
}

// SeedValue returns the 64-bit seed derived from the seed string
func (cfg *GenerationConfig) SeedValue() uint64 {
	return SeedFromString(cfg.Seed)
}
