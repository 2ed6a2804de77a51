package services

import (
	"fmt"
	"sync"

	"trailgen.dev/internal/generation"
	"trailgen.dev/internal/models"
)

// LevelService owns the streaming controller and adapts its read-only
// introspection for the diagnostics API. The core's access model is
// single-threaded, so the service serializes every call behind one mutex.
// The HTTP layer never touches generator state concurrently.
type LevelService struct {
	mu      sync.Mutex
	ctrl    *generation.StreamingController
	catalog *generation.Catalog
}

// NewLevelService validates the config and starts a controller
func NewLevelService(cfg *generation.GenerationConfig, catalog *generation.Catalog, rules *generation.RuleSet) (*LevelService, error) {
	ctrl, err := generation.NewStreamingController(cfg, catalog, rules)
	if err != nil {
		return nil, err
	}
	return &LevelService{ctrl: ctrl, catalog: catalog}, nil
}

// AdvanceFrontier feeds the external frontier row into the controller
func (s *LevelService) AdvanceFrontier(row int) models.WorldResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.AdvanceFrontier(row)
	return s.worldLocked()
}

// GetWorld returns the world manifest
func (s *LevelService) GetWorld() models.WorldResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.worldLocked()
}

func (s *LevelService) worldLocked() models.WorldResponse {
	cfg := s.ctrl.Config()
	tiles := make(map[string]models.TileRef)
	for _, t := range s.catalog.AllSurfaces() {
		tiles[t.ID] = tileRef(t)
	}
	for _, t := range s.catalog.AllOccupants() {
		tiles[t.ID] = tileRef(t)
	}
	return models.WorldResponse{
		Biome:         cfg.Biome,
		Seed:          cfg.Seed,
		LaneCount:     cfg.LaneCount,
		ChunkRows:     cfg.ChunkRows,
		RetentionRows: cfg.RetentionRows,
		GeneratedRows: s.ctrl.GeneratedRows(),
		Tiles:         tiles,
	}
}

// GetRows returns the cell window for rows [from, to)
func (s *LevelService) GetRows(from, to int) (*models.RowsResponse, error) {
	if to <= from {
		return nil, fmt.Errorf("invalid row window [%d,%d)", from, to)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.ctrl.Config()
	grid := s.ctrl.Grid()
	path := s.ctrl.Path()

	resp := &models.RowsResponse{FromRow: from, ToRow: to}
	for row := from; row < to; row++ {
		for lane := 0; lane <= cfg.LaneCount+1; lane++ {
			c := generation.Coord{Row: row, Lane: lane}
			cell, ok := grid.Lookup(c)
			if !ok {
				continue
			}
			def := models.CellDef{
				Row:       row,
				Lane:      lane,
				Collapsed: cell.Collapsed,
				EdgeLane:  cell.EdgeLane,
				Fallback:  cell.Fallback,
				OnPath:    path.Contains(c),
			}
			if cell.Surface != nil && cell.Collapsed {
				r := tileRef(cell.Surface)
				def.Surface = &r
			}
			if cell.Occupant != nil {
				r := tileRef(cell.Occupant)
				def.Occupant = &r
			}
			if !cell.Collapsed {
				def.Candidates = cell.CandidateIDs()
			}
			resp.Cells = append(resp.Cells, def)
		}
	}
	return resp, nil
}

// GetPath returns the retained golden-path window
func (s *LevelService) GetPath() models.PathResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.ctrl.Path()
	cfg := s.ctrl.Config()
	resp := models.PathResponse{TipRow: path.TipRow()}

	from := s.ctrl.Stats().Frontier - cfg.RetentionRows
	if from < 0 {
		from = 0
	}
	for row := from; row <= path.TipRow(); row++ {
		lanes := path.LanesAt(row)
		if len(lanes) == 0 {
			continue
		}
		resp.Rows = append(resp.Rows, models.PathRow{Row: row, Lanes: lanes})
	}
	return resp
}

// GetContradictions returns every recorded contradiction event
func (s *LevelService) GetContradictions() []generation.ContradictionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.ctrl.Contradictions()
	out := make([]generation.ContradictionEvent, len(events))
	copy(out, events)
	return out
}

// GetStats returns the cumulative generation statistics
func (s *LevelService) GetStats() generation.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Stats()
}

// SwitchBiome stages a biome config for the next chunk boundary
func (s *LevelService) SwitchBiome(cfg *generation.GenerationConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.SwitchBiome(cfg)
}

// ActiveConfig returns a copy of the currently active generation config.
// Callers overlay partial biome requests onto it before SwitchBiome.
func (s *LevelService) ActiveConfig() generation.GenerationConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.ctrl.Config()
}

func tileRef(t *generation.TileDefinition) models.TileRef {
	return models.TileRef{ID: t.ID, Name: t.Name, Walkable: t.Walkable}
}
