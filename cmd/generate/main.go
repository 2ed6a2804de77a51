package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"trailgen.dev/internal/config"
	"trailgen.dev/internal/generation"
)

// biomeConfigs defines the biome sequence for batch generation. The first
// entry is the starting biome; the rest are cycled through, one switch per
// window, to exercise chunk-boundary config swaps.
var biomeConfigs = []func(base *generation.GenerationConfig) *generation.GenerationConfig{
	func(base *generation.GenerationConfig) *generation.GenerationConfig {
		return base
	},
	func(base *generation.GenerationConfig) *generation.GenerationConfig {
		cfg := *base
		cfg.Biome = "dunes"
		cfg.Zones.Thresholds = []float64{0.55, 1.0}
		cfg.Zones.DominantTiles = []string{"surf.sand", "surf.rock"}
		cfg.Occupants.Budget = base.Occupants.Budget * 0.7
		return &cfg
	},
	func(base *generation.GenerationConfig) *generation.GenerationConfig {
		cfg := *base
		cfg.Biome = "scree"
		cfg.Noise.WarpStrength = base.Noise.WarpStrength * 1.5
		cfg.Zones.Thresholds = []float64{0.3, 1.0}
		cfg.Zones.DominantTiles = []string{"surf.grass", "surf.rock"}
		cfg.Path.RestChance = 0.15
		return &cfg
	},
}

// surfaceGlyphs maps surface tile IDs to preview characters
var surfaceGlyphs = map[string]byte{
	"surf.grass": '^',
	"surf.sand":  '.',
	"surf.rock":  'M',
	"surf.hole":  'O',
	"surf.track": '+',
	"surf.edge":  '|',
	"surf.debug": '?',
}

// rowWindow is the JSON chunk format written per window
type rowWindow struct {
	FromRow int        `json:"from_row"`
	ToRow   int        `json:"to_row"`
	Biome   string     `json:"biome"`
	Lanes   [][]string `json:"lanes"` // per row: surface IDs across lanes
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: generate <output-dir> [rows]")
		os.Exit(1)
	}

	outputDir := os.Args[1]
	rows := 120
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Invalid row count %q\n", os.Args[2])
			os.Exit(1)
		}
		rows = n
	}

	windowsDir := filepath.Join(outputDir, "windows")
	if err := os.MkdirAll(windowsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load("data")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	spawned := 0
	ctrl, err := generation.NewStreamingController(
		cfg.Generation, cfg.Catalog(), cfg.RuleSet(),
		generation.WithMaterialize(func(c generation.Coord, tile *generation.TileDefinition, at generation.Transform) {
			spawned++
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	base := cfg.Generation
	windowRows := base.ChunkRows * 2
	written := 0
	for from := 0; from < rows; from += windowRows {
		to := from + windowRows
		if to > rows {
			to = rows
		}

		// Keep the frontier trailing the window so nothing we are about
		// to dump has been evicted yet.
		frontier := from
		ctrl.AdvanceFrontier(frontier)
		for ctrl.GeneratedRows() < to {
			frontier++
			ctrl.AdvanceFrontier(frontier)
		}

		window := dumpWindow(ctrl, from, to)
		filename := fmt.Sprintf("%d_%d.json", from, to)
		data, err := json.MarshalIndent(window, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR marshaling JSON: %v\n", err)
			continue
		}
		if err := os.WriteFile(filepath.Join(windowsDir, filename), data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR writing file: %v\n", err)
			continue
		}
		written++

		printPreview(ctrl, window)

		// Stage the next biome for the following window.
		next := biomeConfigs[(written)%len(biomeConfigs)](base)
		if next != ctrl.Config() {
			if err := ctrl.SwitchBiome(next); err != nil {
				fmt.Fprintf(os.Stderr, "  WARN: biome switch rejected: %v\n", err)
			}
		}
	}

	stats := ctrl.Stats()
	fmt.Printf("Done: %d windows, %d cells collapsed, %d contradictions, %d spawn callbacks\n",
		written, stats.CellsCollapsed, stats.Contradictions, spawned)
}

func dumpWindow(ctrl *generation.StreamingController, from, to int) *rowWindow {
	cfg := ctrl.Config()
	grid := ctrl.Grid()
	window := &rowWindow{FromRow: from, ToRow: to, Biome: cfg.Biome}
	for row := from; row < to; row++ {
		lanes := make([]string, cfg.LaneCount+2)
		for lane := 0; lane <= cfg.LaneCount+1; lane++ {
			if cell, ok := grid.Lookup(generation.Coord{Row: row, Lane: lane}); ok && cell.Surface != nil {
				lanes[lane] = cell.Surface.ID
			}
		}
		window.Lanes = append(window.Lanes, lanes)
	}
	return window
}

func printPreview(ctrl *generation.StreamingController, window *rowWindow) {
	path := ctrl.Path()
	var b strings.Builder
	fmt.Fprintf(&b, "rows [%d,%d) %s\n", window.FromRow, window.ToRow, window.Biome)
	for i, lanes := range window.Lanes {
		row := window.FromRow + i
		for lane, id := range lanes {
			ch, ok := surfaceGlyphs[id]
			if !ok {
				ch = ' '
			}
			if path.Contains(generation.Coord{Row: row, Lane: lane}) {
				ch = '*'
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}
