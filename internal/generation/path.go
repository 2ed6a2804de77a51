package generation

import "math"

// PathConfig tunes the golden-path wave and its rest segments
type PathConfig struct {
	// Amplitude scales the wave across the track, in lanes.
	Amplitude float64 `json:"amplitude"`
	// Frequency scales the wave along rows.
	Frequency float64 `json:"frequency"`
	// Smoothing is the exponential factor pulling the lane toward the
	// wave target each row, in (0,1].
	Smoothing float64 `json:"smoothing"`
	// MaxShiftPerRow rate-limits lane movement.
	MaxShiftPerRow float64 `json:"max_shift_per_row"`
	// EdgePadding keeps the path this many lanes away from either edge.
	EdgePadding int `json:"edge_padding"`
	// RestChance is the per-row Bernoulli probability of starting a rest.
	RestChance float64 `json:"rest_chance"`
	// MinRestRows/MaxRestRows bound a rest segment's length.
	MinRestRows int `json:"min_rest_rows"`
	MaxRestRows int `json:"max_rest_rows"`
	// RestCooldownRows gates how soon after a rest the next may begin.
	RestCooldownRows int `json:"rest_cooldown_rows"`
	// Straight disables the wave entirely, holding the center lane.
	Straight bool `json:"straight,omitempty"`
}

type pathState int

const (
	pathWaving pathState = iota
	pathResting
)

// PathPlanner extends the deterministic golden path ahead of the generation
// frontier. One or more cells per row (more when a fast lane shift fills the
// skipped lanes), never closer than EdgePadding to either boundary lane.
type PathPlanner struct {
	cfg       PathConfig
	laneCount int
	rng       *RNG
	wave      *perlin

	state    pathState
	tipRow   int
	lane     float64
	restLeft int
	cooldown int

	cells map[Coord]bool
	rows  map[int][]int // row -> lanes on the path, ascending
}

// NewPathPlanner creates a planner starting at the center lane of row 0
func NewPathPlanner(cfg PathConfig, laneCount int, seed uint64) *PathPlanner {
	p := &PathPlanner{
		cfg:       cfg,
		laneCount: laneCount,
		rng:       NewRNG(mix64(seed ^ 0x70617468)),
		wave:      newPerlin(mix64(seed ^ 0x77617665)),
		lane:      float64(laneCount+1) / 2,
		cells:     make(map[Coord]bool),
		rows:      make(map[int][]int),
	}
	p.mark(Coord{0, p.laneOf(p.lane)})
	p.tipRow = 0
	return p
}

// TipRow returns the furthest row the path has reached
func (p *PathPlanner) TipRow() int {
	return p.tipRow
}

// Contains reports whether the coord lies on the golden path
func (p *PathPlanner) Contains(c Coord) bool {
	return p.cells[c]
}

// LanesAt returns the path lanes for a row, ascending
func (p *PathPlanner) LanesAt(row int) []int {
	return p.rows[row]
}

// AdvanceTo extends the path through targetRow. Idempotent when the path
// already reaches that far.
func (p *PathPlanner) AdvanceTo(targetRow int) {
	for p.tipRow < targetRow {
		p.step()
	}
}

// PruneBefore drops path entries older than minRow, in lockstep with grid
// eviction.
func (p *PathPlanner) PruneBefore(minRow int) {
	for c := range p.cells {
		if c.Row < minRow {
			delete(p.cells, c)
		}
	}
	for row := range p.rows {
		if row < minRow {
			delete(p.rows, row)
		}
	}
}

func (p *PathPlanner) step() {
	row := p.tipRow + 1
	prevLane := p.laneOf(p.lane)

	switch p.state {
	case pathResting:
		p.restLeft--
		if p.restLeft <= 0 {
			p.state = pathWaving
			p.cooldown = p.cfg.RestCooldownRows
		}
		// lane holds
	case pathWaving:
		if p.cooldown > 0 {
			p.cooldown--
		} else if p.cfg.RestChance > 0 && p.rng.Float64() < p.cfg.RestChance {
			p.state = pathResting
			p.restLeft = p.rng.IntRange(p.cfg.MinRestRows, p.cfg.MaxRestRows)
			break
		}
		p.moveToward(p.waveTarget(row))
	}

	p.tipRow = row
	newLane := p.laneOf(p.lane)
	p.mark(Coord{row, newLane})

	// A shift of more than one lane would leave a diagonal the runner
	// cannot follow; fill the skipped lanes on this row.
	if abs(newLane-prevLane) > 1 {
		lo, hi := prevLane, newLane
		if lo > hi {
			lo, hi = hi, lo
		}
		for lane := lo + 1; lane < hi; lane++ {
			p.mark(Coord{row, lane})
		}
	}
}

// waveTarget computes the smoothed two-octave wave target lane for a row
func (p *PathPlanner) waveTarget(row int) float64 {
	center := float64(p.laneCount+1) / 2
	if p.cfg.Straight || p.cfg.Amplitude <= 0 {
		return center
	}
	freq := p.cfg.Frequency
	if freq <= 0 {
		freq = 0.05
	}
	t := float64(row) * freq
	slow := p.wave.noise2D(t, 0.5)
	detail := p.wave.noise2D(t*3.7, 17.3)
	wave := 0.85*slow + 0.15*detail
	target := center + wave*p.cfg.Amplitude
	return p.clampLane(target)
}

// moveToward smooths and rate-limits lane movement toward the target
func (p *PathPlanner) moveToward(target float64) {
	smoothing := p.cfg.Smoothing
	if smoothing <= 0 || smoothing > 1 {
		smoothing = 0.5
	}
	next := p.lane + (target-p.lane)*smoothing

	maxShift := p.cfg.MaxShiftPerRow
	if maxShift > 0 {
		shift := next - p.lane
		if math.Abs(shift) > maxShift {
			if shift > 0 {
				next = p.lane + maxShift
			} else {
				next = p.lane - maxShift
			}
		}
	}
	p.lane = p.clampLane(next)
}

func (p *PathPlanner) clampLane(lane float64) float64 {
	lo := float64(1 + p.cfg.EdgePadding)
	hi := float64(p.laneCount - p.cfg.EdgePadding)
	if hi < lo {
		hi = lo
	}
	return clampFloat(lane, lo, hi)
}

func (p *PathPlanner) laneOf(lane float64) int {
	return clampInt(int(math.Round(lane)), 1, p.laneCount)
}

func (p *PathPlanner) mark(c Coord) {
	if p.cells[c] {
		return
	}
	p.cells[c] = true

	lanes := p.rows[c.Row]
	i := 0
	for i < len(lanes) && lanes[i] < c.Lane {
		i++
	}
	lanes = append(lanes, 0)
	copy(lanes[i+1:], lanes[i:])
	lanes[i] = c.Lane
	p.rows[c.Row] = lanes
}
