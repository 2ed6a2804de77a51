package models

// TileRef is a tile as reported on the diagnostics surface
type TileRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Walkable bool   `json:"walkable"`
}

// CellDef is one resolved (or pending) cell in a row window
type CellDef struct {
	Row      int      `json:"row"`
	Lane     int      `json:"lane"`
	Surface  *TileRef `json:"surface,omitempty"`
	Occupant *TileRef `json:"occupant,omitempty"`
	// Candidates is present only while the cell is uncollapsed.
	Candidates []string `json:"candidates,omitempty"`
	Collapsed  bool     `json:"collapsed"`
	EdgeLane   bool     `json:"edge_lane"`
	Fallback   bool     `json:"fallback,omitempty"`
	OnPath     bool     `json:"on_path,omitempty"`
}

// RowsResponse is a window of generated rows
type RowsResponse struct {
	FromRow int       `json:"from_row"`
	ToRow   int       `json:"to_row"`
	Cells   []CellDef `json:"cells"`
}

// PathRow lists the golden-path lanes of one row
type PathRow struct {
	Row   int   `json:"row"`
	Lanes []int `json:"lanes"`
}

// PathResponse is the retained window of the golden path
type PathResponse struct {
	TipRow int       `json:"tip_row"`
	Rows   []PathRow `json:"rows"`
}

// WorldResponse is the manifest the diagnostics client sees
type WorldResponse struct {
	Biome         string             `json:"biome"`
	Seed          string             `json:"seed"`
	LaneCount     int                `json:"lane_count"`
	ChunkRows     int                `json:"chunk_rows"`
	RetentionRows int                `json:"retention_rows"`
	GeneratedRows int                `json:"generated_rows"`
	Tiles         map[string]TileRef `json:"tiles"`
}

// FrontierRequest is the external tick input
type FrontierRequest struct {
	Row int `json:"row"`
}
