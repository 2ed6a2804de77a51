package generation

// Coord addresses a single cell: a row along the direction of travel and a
// lane across the track. Rows grow without bound; lanes span [0, laneCount+1]
// where lane 0 and lane laneCount+1 are the fixed edge lanes.
type Coord struct {
	Row  int
	Lane int
}

// Add returns a new coord offset by dRow, dLane
func (c Coord) Add(dRow, dLane int) Coord {
	return Coord{c.Row + dRow, c.Lane + dLane}
}

// Direction is a bitmask over the 8 neighbor directions. Forward points
// toward increasing rows, Right toward increasing lanes.
type Direction uint8

const (
	Forward Direction = 1 << iota
	Backward
	Left
	Right
	ForwardLeft
	ForwardRight
	BackwardLeft
	BackwardRight

	// DirAll matches every direction in a rule's direction mask.
	DirAll Direction = 0xFF
)

// AllDirections returns the 8 neighbor directions in a fixed order.
// Propagation iterates this order, so it must never change.
func AllDirections() []Direction {
	return []Direction{
		Forward, Backward, Left, Right,
		ForwardLeft, ForwardRight, BackwardLeft, BackwardRight,
	}
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	switch d {
	case Forward:
		return Backward
	case Backward:
		return Forward
	case Left:
		return Right
	case Right:
		return Left
	case ForwardLeft:
		return BackwardRight
	case ForwardRight:
		return BackwardLeft
	case BackwardLeft:
		return ForwardRight
	case BackwardRight:
		return ForwardLeft
	}
	return d
}

// Delta returns the row,lane offset for moving in this direction
func (d Direction) Delta() (int, int) {
	switch d {
	case Forward:
		return 1, 0
	case Backward:
		return -1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case ForwardLeft:
		return 1, -1
	case ForwardRight:
		return 1, 1
	case BackwardLeft:
		return -1, -1
	case BackwardRight:
		return -1, 1
	}
	return 0, 0
}

// String names a single direction for logs and diagnostics output
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case ForwardLeft:
		return "forward-left"
	case ForwardRight:
		return "forward-right"
	case BackwardLeft:
		return "backward-left"
	case BackwardRight:
		return "backward-right"
	}
	return "none"
}

// Transform is the world-space placement implied by a cell's coordinate.
// The core computes it for materialize callbacks; it means nothing to the
// solver itself.
type Transform struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// MaterializeFunc is invoked once per resolved cell (and once for the origin
// cell of a multi-row occupant). Whatever it instantiates is released again
// through ReleaseFunc when the row is evicted.
type MaterializeFunc func(c Coord, tile *TileDefinition, at Transform)

// ReleaseFunc is invoked for every cell removed by eviction.
type ReleaseFunc func(c Coord, cell *CellState)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
