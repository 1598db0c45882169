package world

// Neighbors returns the in-bounds step-offset neighbors of loc in the
// fixed North, East, South, West order. Search determinism depends on
// this order never changing.
func (s *Snapshot) Neighbors(loc Location) []Location {
	out := make([]Location, 0, 4)
	for _, o := range StepOffsets {
		n := loc.Add(o)
		if s.Field.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Passable reports whether the agent may stand on loc: the cell is
// neither Wall nor Trap and no entity occupies it.
func (s *Snapshot) Passable(loc Location) bool {
	if !s.Field.InBounds(loc) {
		return false
	}
	switch s.Field.At(loc) {
	case Wall, Trap:
		return false
	}
	return !s.Occupied(loc)
}

// PassableWallsOnly is the relaxed passability used by the dangerous
// fallback search: only walls block.
func (s *Snapshot) PassableWallsOnly(loc Location) bool {
	return s.Field.InBounds(loc) && s.Field.At(loc) != Wall
}

// ThreatZone returns every in-bounds cell a monster already present
// could melee-attack next turn, i.e. the attack-offset neighborhood of
// all monster locations plus the cells the monsters stand on. The set is
// recomputed fresh from the snapshot on every call.
func (s *Snapshot) ThreatZone() map[Location]struct{} {
	zone := make(map[Location]struct{}, len(s.Monsters)*9)
	for _, m := range s.Monsters {
		zone[m.Location] = struct{}{}
		for _, o := range AttackOffsets {
			c := m.Location.Add(o)
			if s.Field.InBounds(c) {
				zone[c] = struct{}{}
			}
		}
	}
	return zone
}

// Safe reports whether loc is passable and outside the current threat
// zone. Callers iterating many cells should take ThreatZone once instead.
func (s *Snapshot) Safe(loc Location) bool {
	if !s.Passable(loc) {
		return false
	}
	for _, m := range s.Monsters {
		if loc.Chebyshev(m.Location) <= 1 {
			return false
		}
	}
	return true
}

// MeleeContact pairs a monster in melee range with the attack direction
// that hits it.
type MeleeContact struct {
	Monster   Monster
	Direction Direction
}

// AdjacentMonsters returns the monsters at attack-offset distance from
// the player, in the stable clockwise attack-offset order. The count of
// contacts drives the controller's combat transitions.
func (s *Snapshot) AdjacentMonsters() []MeleeContact {
	var out []MeleeContact
	for i, o := range AttackOffsets {
		c := s.Player.Location.Add(o)
		if !s.Field.InBounds(c) {
			continue
		}
		if m, ok := s.MonsterAt(c); ok {
			out = append(out, MeleeContact{Monster: m, Direction: Direction(i)})
		}
	}
	return out
}
