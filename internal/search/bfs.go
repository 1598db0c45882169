package search

import "github.com/suderio/grim-delver/internal/world"

// Path is a sequence of successive cells leading from (but excluding) the
// start location to the goal. An empty path means "already there"; callers
// must never assume a first element exists.
type Path []world.Location

// ShortestPath runs a breadth-first search from the player's location
// until it dequeues a cell satisfying isTarget, then reconstructs the
// path through the predecessor map. Target cells are accepted even when
// they fail the passability predicate, so the agent can path onto the
// item or health pack it wants to step on; every intermediate cell must
// pass.
//
// The second return value is false when no reachable cell satisfies the
// predicate. Neighbor enumeration order is fixed, so identical snapshots
// produce identical paths.
func ShortestPath(
	snap *world.Snapshot,
	passable func(world.Location) bool,
	isTarget func(world.Location) bool,
) (Path, bool) {
	start := snap.Player.Location
	if isTarget(start) {
		return Path{}, true
	}

	cameFrom := map[world.Location]world.Location{start: start}
	queue := []world.Location{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range snap.Neighbors(current) {
			if _, seen := cameFrom[next]; seen {
				continue
			}
			if isTarget(next) {
				cameFrom[next] = current
				return rebuild(cameFrom, start, next), true
			}
			if !passable(next) {
				continue
			}
			cameFrom[next] = current
			queue = append(queue, next)
		}
	}

	return nil, false
}

// rebuild walks the predecessor map backward from goal to start and
// reverses the result.
func rebuild(cameFrom map[world.Location]world.Location, start, goal world.Location) Path {
	var reversed []world.Location
	for at := goal; at != start; at = cameFrom[at] {
		reversed = append(reversed, at)
	}
	path := make(Path, len(reversed))
	for i, loc := range reversed {
		path[len(reversed)-1-i] = loc
	}
	return path
}
