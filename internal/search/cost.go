// Package search implements the two path computations the agent runs
// against a snapshot: unweighted reachability and danger-weighted
// traversal. Both are pure functions of the snapshot at call time; costs
// change whenever monsters move, so results are never reused across turns.
package search

import "github.com/suderio/grim-delver/internal/world"

// Tuning collects every cost constant as a named parameter, with one
// consistent default set that configuration can override per knob.
type Tuning struct {
	// HardBlock marks a cell as traversable-in-graph-only-as-last-resort.
	// Searches still terminate through such cells, which lets callers
	// distinguish "unreachable under HardBlock" from "never visited".
	HardBlock int

	// BaseCost is the cost of stepping onto an ordinary open cell.
	BaseCost int

	// RingPenalty is the per-wall penalty for the concentric rings at
	// radius 1, 2 and 3 around a candidate cell. Closer rings weigh more,
	// steering paths out of corridors where a monster could pin the agent.
	RingPenalty [3]int

	// ThreatRadius bounds the monster-proximity penalty: monsters within
	// this Chebyshev distance contribute 2^(ThreatExponent-d), doubled for
	// diagonally adjacent-class monsters.
	ThreatRadius   int
	ThreatExponent int
	DiagonalFactor int
}

// DefaultTuning returns the documented constant set.
func DefaultTuning() Tuning {
	return Tuning{
		HardBlock:      100000,
		BaseCost:       1,
		RingPenalty:    [3]int{3, 2, 1},
		ThreatRadius:   5,
		ThreatExponent: 6,
		DiagonalFactor: 2,
	}
}

// CostModel assigns the traversal cost the weighted search relaxes edges
// with. It is deterministic: identical snapshots yield identical costs.
type CostModel struct {
	snap *world.Snapshot
	tune Tuning
}

// NewCostModel binds a cost model to one snapshot.
func NewCostModel(snap *world.Snapshot, tune Tuning) *CostModel {
	return &CostModel{snap: snap, tune: tune}
}

// Cost returns the price of stepping onto loc.
func (c *CostModel) Cost(loc world.Location) int {
	field := c.snap.Field
	switch field.At(loc) {
	case world.Wall, world.Trap:
		return c.tune.HardBlock
	}
	// Monsters and items block; health packs deliberately do not, so the
	// weighted search can price a route onto one.
	if _, ok := c.snap.MonsterAt(loc); ok {
		return c.tune.HardBlock
	}
	if _, ok := c.snap.ItemAt(loc); ok {
		return c.tune.HardBlock
	}

	cost := c.tune.BaseCost

	// Wall clutter in the concentric attack-offset rings.
	for ring := 1; ring <= len(c.tune.RingPenalty); ring++ {
		penalty := c.tune.RingPenalty[ring-1]
		for _, o := range world.AttackOffsets {
			cell := loc.Add(o.Scale(ring))
			if field.InBounds(cell) && field.At(cell) == world.Wall {
				cost += penalty
			}
		}
	}

	// Monster proximity decays exponentially: the penalty tracks how soon
	// the monster could reach the agent, not how far away it is linearly.
	for _, m := range c.snap.Monsters {
		d := loc.Chebyshev(m.Location)
		if d < 1 || d > c.tune.ThreatRadius {
			continue
		}
		penalty := 1 << (c.tune.ThreatExponent - d)
		off := loc.To(m.Location)
		if abs(off.DX) == 1 && abs(off.DY) == 1 {
			penalty *= c.tune.DiagonalFactor
		}
		cost += penalty
	}

	return cost
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
