package search

import (
	"container/heap"
	"fmt"

	"github.com/suderio/grim-delver/internal/world"
)

// DistanceField is the result of the weighted single-source search: a
// distance and predecessor map covering the whole grid reachable from
// the player. Hard-blocked cells stay in the graph at prohibitive cost,
// so a recorded distance at or above the hard-block constant means
// "connected, but only through something the agent should not cross".
type DistanceField struct {
	start     world.Location
	dist      map[world.Location]int
	prev      map[world.Location]world.Location
	hardBlock int
}

// WeightedDistances runs a Dijkstra-style best-first search seeded at the
// player's location with distance zero, relaxing step-offset neighbors
// with the cost model. The whole reachable grid is visited before
// returning, since callers need distances to every candidate goal, not
// just the first one found. Priority ties break on insertion order, so
// re-running on an identical snapshot yields an identical tree.
func WeightedDistances(snap *world.Snapshot, tune Tuning) *DistanceField {
	model := NewCostModel(snap, tune)
	start := snap.Player.Location

	field := &DistanceField{
		start:     start,
		dist:      map[world.Location]int{start: 0},
		prev:      map[world.Location]world.Location{start: start},
		hardBlock: tune.HardBlock,
	}

	seq := 0
	pq := &minQueue{{loc: start, dist: 0, seq: seq}}
	heap.Init(pq)
	settled := make(map[world.Location]bool)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		if settled[item.loc] {
			continue
		}
		settled[item.loc] = true

		for _, next := range snap.Neighbors(item.loc) {
			tentative := item.dist + model.Cost(next)
			if old, seen := field.dist[next]; seen && old <= tentative {
				continue
			}
			field.dist[next] = tentative
			field.prev[next] = item.loc
			seq++
			heap.Push(pq, &queueItem{loc: next, dist: tentative, seq: seq})
		}
	}

	return field
}

// Start returns the search origin.
func (f *DistanceField) Start() world.Location { return f.start }

// Distance returns the recorded distance to loc; ok is false when the
// search never reached it.
func (f *DistanceField) Distance(loc world.Location) (int, bool) {
	d, ok := f.dist[loc]
	return d, ok
}

// WithinBudget reports whether loc was reached without crossing any
// hard-blocked cell. Callers treat paths beyond the budget as
// unsafe-but-technically-connected and decide for themselves.
func (f *DistanceField) WithinBudget(loc world.Location) bool {
	d, ok := f.dist[loc]
	return ok && d < f.hardBlock
}

// PathTo reconstructs the path from the start to goal by walking the
// predecessor map backward. Requesting a location the search never
// recorded is a contract violation: it signals the caller mixed results
// from different snapshots, so it fails loudly instead of guessing.
func (f *DistanceField) PathTo(goal world.Location) Path {
	if goal == f.start {
		return Path{}
	}
	if _, ok := f.prev[goal]; !ok {
		panic(fmt.Sprintf("search: path reconstruction to unvisited location %v", goal))
	}
	return rebuild(f.prev, f.start, goal)
}

// --- Priority queue ---

type queueItem struct {
	loc   world.Location
	dist  int
	seq   int // insertion order, the deterministic tie-break
	index int
}

type minQueue []*queueItem

func (q minQueue) Len() int { return len(q) }

func (q minQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}

func (q minQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *minQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *minQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}
