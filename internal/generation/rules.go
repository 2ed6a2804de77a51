package generation

// RuleEntry names one neighbor relation of a rule: which tile, in which
// directions, and (for allowed entries) at what relative weight. Weights are
// raw multipliers; the solver combines them with a running minimum, so no
// normalization happens here.
type RuleEntry struct {
	NeighborID string    `json:"neighbor"`
	Directions Direction `json:"directions"`
	Weight     float64   `json:"weight,omitempty"`
}

// NeighborRule holds the adjacency constraints declared by a single tile.
// Having at least one allowed entry for a direction makes that direction's
// allow-list exclusive; otherwise every tile not denied is allowed.
type NeighborRule struct {
	SelfID  string      `json:"self"`
	Allowed []RuleEntry `json:"allowed,omitempty"`
	Denied  []RuleEntry `json:"denied,omitempty"`
}

// RuleSet indexes neighbor rules by tile ID for O(1) lookup during
// propagation. Direction masks are stored one-sided; the solver checks both
// ends of every pair itself (arc consistency), so no reciprocal entries are
// synthesized here.
type RuleSet struct {
	rules []NeighborRule
	index map[string]*NeighborRule
}

// NewRuleSet builds an indexed rule set from a rule list
func NewRuleSet(rules []NeighborRule) *RuleSet {
	rs := &RuleSet{}
	rs.Replace(rules)
	return rs
}

// Replace swaps in a new rule list and rebuilds the index
func (rs *RuleSet) Replace(rules []NeighborRule) {
	rs.rules = rules
	rs.index = make(map[string]*NeighborRule, len(rules))
	for i := range rs.rules {
		rs.index[rs.rules[i].SelfID] = &rs.rules[i]
	}
}

// Rules returns the underlying rule list for diagnostics
func (rs *RuleSet) Rules() []NeighborRule {
	return rs.rules
}

// AllowedNeighbors filters the candidate pool down to the tiles self permits
// in the given direction, returning a parallel slice of raw rule weights.
//
// A tile with no rule entry is unconstrained: the whole pool comes back at
// weight 1.0. With allowed entries present for the direction, the allow-list
// is exclusive (minus denials); without them, everything but the denials is
// allowed at 1.0.
func (rs *RuleSet) AllowedNeighbors(self *TileDefinition, dir Direction, pool []*TileDefinition) ([]*TileDefinition, []float64) {
	if self == nil {
		return nil, nil
	}
	rule, ok := rs.index[self.ID]
	if !ok {
		tiles := make([]*TileDefinition, len(pool))
		weights := make([]float64, len(pool))
		copy(tiles, pool)
		for i := range weights {
			weights[i] = 1.0
		}
		return tiles, weights
	}

	denied := make(map[string]bool)
	for _, e := range rule.Denied {
		if e.Directions&dir != 0 {
			denied[e.NeighborID] = true
		}
	}

	allowed := make(map[string]float64)
	haveAllow := false
	for _, e := range rule.Allowed {
		if e.Directions&dir == 0 {
			continue
		}
		haveAllow = true
		w := e.Weight
		if w <= 0 {
			w = 1.0
		}
		allowed[e.NeighborID] = w
	}

	var tiles []*TileDefinition
	var weights []float64
	for _, cand := range pool {
		if denied[cand.ID] {
			continue
		}
		if haveAllow {
			w, ok := allowed[cand.ID]
			if !ok {
				continue
			}
			tiles = append(tiles, cand)
			weights = append(weights, w)
		} else {
			tiles = append(tiles, cand)
			weights = append(weights, 1.0)
		}
	}
	return tiles, weights
}

// IsNeighborAllowed reports whether neighbor may sit next to self in the
// given direction, from self's side only. Callers wanting arc consistency
// must also ask the neighbor about the opposite direction.
func (rs *RuleSet) IsNeighborAllowed(self, neighbor *TileDefinition, dir Direction) bool {
	if self == nil || neighbor == nil {
		return false
	}
	rule, ok := rs.index[self.ID]
	if !ok {
		return true
	}
	for _, e := range rule.Denied {
		if e.Directions&dir != 0 && e.NeighborID == neighbor.ID {
			return false
		}
	}
	haveAllow := false
	for _, e := range rule.Allowed {
		if e.Directions&dir == 0 {
			continue
		}
		haveAllow = true
		if e.NeighborID == neighbor.ID {
			return true
		}
	}
	return !haveAllow
}
