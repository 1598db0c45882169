package search

import (
	"testing"

	"github.com/suderio/grim-delver/internal/world"
)

func TestWeightedDistancesFollowCosts(t *testing.T) {
	snap := snapFrom(t, []string{
		"#######",
		"#@....#",
		"#.....#",
		"#.....#",
		"#######",
	})
	snap.Monsters = []world.Monster{{Location: world.Location{X: 4, Y: 1}, Health: 10}}

	tune := DefaultTuning()
	field := WeightedDistances(snap, tune)
	model := NewCostModel(snap, tune)

	if d, ok := field.Distance(field.Start()); !ok || d != 0 {
		t.Fatalf("expected the start at distance 0, got %d (ok=%v)", d, ok)
	}

	goal := world.Location{X: 5, Y: 3}
	if !field.WithinBudget(goal) {
		t.Fatalf("expected the goal to be reachable")
	}

	// Each step along the reconstructed path pays exactly the cost model.
	path := field.PathTo(goal)
	prev := field.Start()
	for _, loc := range path {
		dPrev, _ := field.Distance(prev)
		dLoc, ok := field.Distance(loc)
		if !ok {
			t.Fatalf("path cell %v has no recorded distance", loc)
		}
		if dLoc != dPrev+model.Cost(loc) {
			t.Errorf("distance to %v = %d, want %d + cost %d", loc, dLoc, dPrev, model.Cost(loc))
		}
		if prev.Chebyshev(loc) != 1 || !snap.Passable(loc) && loc != goal {
			t.Errorf("path cell %v does not follow %v", loc, prev)
		}
		prev = loc
	}
	if prev != goal {
		t.Fatalf("expected path to end at %v, got %v", goal, prev)
	}
}

func TestWeightedDistancesBudget(t *testing.T) {
	// The goal is only connected through a trap; it stays recorded but
	// lands beyond the hard-block budget.
	snap := snapFrom(t, []string{
		"#####",
		"#@^.#",
		"#####",
	})

	tune := DefaultTuning()
	field := WeightedDistances(snap, tune)

	goal := world.Location{X: 3, Y: 1}
	if _, ok := field.Distance(goal); !ok {
		t.Fatalf("expected the goal to be visited")
	}
	if field.WithinBudget(goal) {
		t.Errorf("expected the trap-gated goal beyond the budget")
	}
}

func TestPathToStart(t *testing.T) {
	snap := snapFrom(t, []string{"#@.#"})
	field := WeightedDistances(snap, DefaultTuning())

	if path := field.PathTo(field.Start()); len(path) != 0 {
		t.Errorf("expected an empty path to the start, got %v", path)
	}
}

func TestPathToUnvisitedPanics(t *testing.T) {
	snap := snapFrom(t, []string{"#@.#"})
	field := WeightedDistances(snap, DefaultTuning())

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for an unvisited location")
		}
	}()
	field.PathTo(world.Location{X: -3, Y: -3})
}

func TestWeightedDeterminism(t *testing.T) {
	snap := snapFrom(t, []string{
		"#######",
		"#@..#.#",
		"#.....#",
		"#.#...#",
		"#######",
	})
	snap.Monsters = []world.Monster{{Location: world.Location{X: 3, Y: 2}, Health: 10}}
	goal := world.Location{X: 5, Y: 3}

	tune := DefaultTuning()
	first := WeightedDistances(snap, tune).PathTo(goal)
	for i := 0; i < 5; i++ {
		again := WeightedDistances(snap, tune).PathTo(goal)
		if len(again) != len(first) {
			t.Fatalf("run %d produced a different path: %v vs %v", i, again, first)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d diverged at step %d: %v vs %v", i, j, again[j], first[j])
			}
		}
	}
}
