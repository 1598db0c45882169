package agent

import (
	"fmt"

	"github.com/suderio/grim-delver/internal/search"
	"github.com/suderio/grim-delver/internal/world"
)

// step converts the first cell of a path into a move action. An empty
// path means "already there" and yields no action, so ladder callers fall
// through to their next option.
func step(from world.Location, path search.Path) (Action, bool) {
	if len(path) == 0 {
		return PassAction(), false
	}
	dir, ok := world.DirectionOf(from.To(path[0]))
	if !ok || !dir.Cardinal() {
		// A reconstructed path with a non-adjacent first cell means search
		// results from different snapshots were mixed. Fail loudly.
		panic(fmt.Sprintf("agent: path step %v -> %v is not a cardinal move", from, path[0]))
	}
	return MoveAction(dir), true
}

// --- Idle ---

// actIdle works down the exploration priority ladder: better gear, then
// healing while a safer level remains, then the exit once the level is
// cleared, then hunting, with progressively more dangerous fallbacks.
func (a *Agent) actIdle(snap *world.Snapshot) Action {
	a.idleTurns++
	if a.idleTurns >= a.tune.IdleLimit {
		a.idleTurns = 0
		if act, ok := a.randomStep(snap); ok {
			return act
		}
	}

	if act, ok := a.seekUpgrade(snap); ok {
		return act
	}
	if snap.Player.Health < FullHealth && !a.exitSealed {
		if act, ok := a.seekPack(snap); ok {
			return act
		}
	}
	if len(snap.Monsters) == 0 {
		if act, ok := a.seekExit(snap, snap.Passable); ok {
			return act
		}
	}
	if act, ok := a.seekHunt(snap, snap.Passable); ok {
		return act
	}
	if act, ok := a.seekExit(snap, snap.Passable); ok {
		return act
	}
	if act, ok := a.seekHunt(snap, snap.PassableWallsOnly); ok {
		return act
	}
	if act, ok := a.seekExit(snap, snap.PassableWallsOnly); ok {
		return act
	}
	return PassAction()
}

// seekUpgrade paths to an item strictly better than the equipped one, or
// to any item while unequipped.
func (a *Agent) seekUpgrade(snap *world.Snapshot) (Action, bool) {
	equipped := snap.Player.Equipped
	target := func(loc world.Location) bool {
		it, ok := snap.ItemAt(loc)
		if !ok {
			return false
		}
		return equipped == nil || it.Power() > equipped.Power()
	}
	path, ok := search.ShortestPath(snap, snap.Passable, target)
	if !ok {
		return PassAction(), false
	}
	return step(snap.Player.Location, path)
}

// seekPack paths to the nearest health pack under plain reachability.
func (a *Agent) seekPack(snap *world.Snapshot) (Action, bool) {
	target := func(loc world.Location) bool {
		_, ok := snap.PackAt(loc)
		return ok
	}
	path, ok := search.ShortestPath(snap, snap.Passable, target)
	if !ok {
		return PassAction(), false
	}
	return step(snap.Player.Location, path)
}

// seekExit paths to the remembered exit. Emitting the final step onto the
// exit advances the level counter; the host swaps the level underneath us
// on arrival.
func (a *Agent) seekExit(snap *world.Snapshot, passable func(world.Location) bool) (Action, bool) {
	if a.exit == nil {
		return PassAction(), false
	}
	exit := *a.exit
	path, ok := search.ShortestPath(snap, passable, func(loc world.Location) bool {
		return loc == exit
	})
	if !ok {
		return PassAction(), false
	}
	if len(path) == 1 {
		a.level++
	}
	return step(snap.Player.Location, path)
}

// seekHunt paths to the nearest standable cell in melee range of a
// monster.
func (a *Agent) seekHunt(snap *world.Snapshot, passable func(world.Location) bool) (Action, bool) {
	if len(snap.Monsters) == 0 {
		return PassAction(), false
	}
	target := func(loc world.Location) bool {
		if !passable(loc) {
			return false
		}
		for _, m := range snap.Monsters {
			if loc.Chebyshev(m.Location) == 1 {
				return true
			}
		}
		return false
	}
	path, ok := search.ShortestPath(snap, passable, target)
	if !ok {
		return PassAction(), false
	}
	return step(snap.Player.Location, path)
}

// randomStep breaks oscillation deadlocks with one random legal move.
func (a *Agent) randomStep(snap *world.Snapshot) (Action, bool) {
	var dirs []world.Direction
	for _, d := range []world.Direction{world.North, world.East, world.South, world.West} {
		if snap.Passable(snap.Player.Location.Add(d.Offset())) {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return PassAction(), false
	}
	return MoveAction(dirs[a.rng.Intn(len(dirs))]), true
}

// --- Attacking ---

// actAttacking never moves while a single target is engaged.
func (a *Agent) actAttacking(contacts []world.MeleeContact) Action {
	if len(contacts) != 1 {
		return PassAction()
	}
	return AttackAction(contacts[0].Direction)
}

// --- Cowering ---

// actCowering disengages from superior numbers: cheapest health pack by
// weighted distance, else any open cell outside the threat zone, else a
// desperation strike at the weakest attacker.
func (a *Agent) actCowering(snap *world.Snapshot, contacts []world.MeleeContact) Action {
	field := search.WeightedDistances(snap, a.tune.Search)
	if pack, ok := cheapestPack(snap, field); ok {
		if act, ok := step(snap.Player.Location, field.PathTo(pack)); ok {
			return act
		}
	}

	zone := snap.ThreatZone()
	for _, d := range []world.Direction{world.North, world.East, world.South, world.West} {
		c := snap.Player.Location.Add(d.Offset())
		if !snap.Passable(c) {
			continue
		}
		if _, threatened := zone[c]; !threatened {
			return MoveAction(d)
		}
	}

	if len(contacts) > 0 {
		weakest := contacts[0]
		for _, c := range contacts[1:] {
			if c.Monster.Health < weakest.Monster.Health {
				weakest = c
			}
		}
		return AttackAction(weakest.Direction)
	}
	return PassAction()
}

// cheapestPack picks the health pack with the lowest weighted distance,
// ignoring packs only connected through hard-blocked cells. Ties keep the
// first pack in snapshot order.
func cheapestPack(snap *world.Snapshot, field *search.DistanceField) (world.Location, bool) {
	var best world.Location
	bestDist := -1
	for _, p := range snap.Packs {
		if !field.WithinBudget(p.Location) {
			continue
		}
		d, _ := field.Distance(p.Location)
		if bestDist == -1 || d < bestDist {
			best = p.Location
			bestDist = d
		}
	}
	return best, bestDist != -1
}

// --- Fleeing ---

// actFleeing routes to the nearest health pack. Off the final level the
// weighted search steers the route away from monsters; on the final level
// the sealed exit changes the risk calculus, so plain reachability is
// used, degrading to the safe and then the dangerous search.
func (a *Agent) actFleeing(snap *world.Snapshot) Action {
	if len(snap.Packs) == 0 {
		return PassAction()
	}

	if !a.exitSealed {
		field := search.WeightedDistances(snap, a.tune.Search)
		if pack, ok := cheapestPack(snap, field); ok {
			if act, ok := step(snap.Player.Location, field.PathTo(pack)); ok {
				return act
			}
		}
	}

	target := func(loc world.Location) bool {
		_, ok := snap.PackAt(loc)
		return ok
	}
	if path, ok := search.ShortestPath(snap, snap.Passable, target); ok {
		if act, ok := step(snap.Player.Location, path); ok {
			return act
		}
	}
	zone := snap.ThreatZone()
	safe := func(loc world.Location) bool {
		if !snap.Passable(loc) {
			return false
		}
		_, threatened := zone[loc]
		return !threatened
	}
	if path, ok := search.ShortestPath(snap, safe, target); ok {
		if act, ok := step(snap.Player.Location, path); ok {
			return act
		}
	}
	if path, ok := search.ShortestPath(snap, snap.PassableWallsOnly, target); ok {
		if act, ok := step(snap.Player.Location, path); ok {
			return act
		}
	}
	return PassAction()
}
