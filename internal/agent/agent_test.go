package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suderio/grim-delver/internal/world"
)

func buildSnap(t *testing.T, rows []string) *world.Snapshot {
	t.Helper()
	f, err := world.ParseField(rows)
	if err != nil {
		t.Fatalf("failed to parse field: %v", err)
	}
	snap := &world.Snapshot{Field: f, Player: world.Player{Health: FullHealth}}
	if starts := f.CellsOf(world.PlayerStart); len(starts) == 1 {
		snap.Player.Location = starts[0]
	}
	return snap
}

func TestSingleContactTriggersAttack(t *testing.T) {
	snap := buildSnap(t, []string{
		"#####",
		"#.@.#",
		"#...#",
		"#####",
	})
	snap.Monsters = []world.Monster{{Location: world.Location{X: 2, Y: 2}, Health: 20}}

	a := New(DefaultTuning())
	act := a.Act(snap)

	assert.Equal(t, StateAttacking, a.State())
	assert.Equal(t, Attack, act.Kind)
	assert.Equal(t, world.South, act.Direction)
}

func TestContactClearedActsIdleSameTurn(t *testing.T) {
	snap := buildSnap(t, []string{
		"#####",
		"#@.E#",
		"#####",
	})
	snap.Monsters = []world.Monster{{Location: world.Location{X: 2, Y: 1}, Health: 20}}

	a := New(DefaultTuning())
	a.Act(snap)
	assert.Equal(t, StateAttacking, a.State())

	// The monster dies; the same turn that clears contact must already
	// produce an exploration move, not a wasted pass.
	cleared := buildSnap(t, []string{
		"#####",
		"#@.E#",
		"#####",
	})
	act := a.Act(cleared)

	assert.Equal(t, StateIdle, a.State())
	assert.Equal(t, Move, act.Kind)
	assert.Equal(t, world.East, act.Direction)
}

func TestWalkToExitAdvancesLevel(t *testing.T) {
	snap := buildSnap(t, []string{
		"#####",
		"#@.E#",
		"#####",
	})

	a := New(DefaultTuning())

	// 1. Two cells away: step toward the exit, no level credit yet.
	act := a.Act(snap)
	assert.Equal(t, Move, act.Kind)
	assert.Equal(t, world.East, act.Direction)
	assert.Equal(t, 0, a.Level())

	// 2. One cell away: the final step onto the exit counts the level.
	snap.Player.Location = world.Location{X: 2, Y: 1}
	act = a.Act(snap)
	assert.Equal(t, Move, act.Kind)
	assert.Equal(t, world.East, act.Direction)
	assert.Equal(t, 1, a.Level())
}

func TestCrossesOpenFieldToExit(t *testing.T) {
	snap := buildSnap(t, []string{
		"@....",
		".....",
		".....",
		".....",
		"....E",
	})

	a := New(DefaultTuning())
	exit := world.Location{X: 4, Y: 4}

	steps := 0
	for snap.Player.Location != exit {
		act := a.Act(snap)
		if act.Kind != Move {
			t.Fatalf("expected a move on step %d, got %s", steps, act)
		}
		snap.Player.Location = snap.Player.Location.Add(act.Direction.Offset())
		steps++
		if steps > 8 {
			t.Fatalf("agent wandered past the Manhattan distance, at %v", snap.Player.Location)
		}
	}

	assert.Equal(t, 8, steps)
	assert.Equal(t, 1, a.Level())
}

func TestLowHealthFleesTowardPack(t *testing.T) {
	snap := buildSnap(t, []string{
		"#####",
		"#@..#",
		"#####",
	})
	snap.Player.Health = 40
	snap.Packs = []world.HealthPack{{Location: world.Location{X: 3, Y: 1}}}

	a := New(DefaultTuning())
	act := a.Act(snap)

	assert.Equal(t, StateFleeing, a.State())
	assert.Equal(t, Move, act.Kind)
	assert.Equal(t, world.East, act.Direction)
}

func TestSingleAttackerBlocksFlee(t *testing.T) {
	snap := buildSnap(t, []string{
		"#####",
		"#@..#",
		"#####",
	})
	snap.Player.Health = 40
	snap.Monsters = []world.Monster{{Location: world.Location{X: 2, Y: 1}, Health: 20}}
	snap.Packs = []world.HealthPack{{Location: world.Location{X: 3, Y: 1}}}

	a := New(DefaultTuning())
	act := a.Act(snap)

	// One attacker cannot be outrun: stand and fight, hurt or not.
	assert.Equal(t, StateAttacking, a.State())
	assert.Equal(t, Attack, act.Kind)
	assert.Equal(t, world.East, act.Direction)
}

func TestRecoveredCascadesIntoCombat(t *testing.T) {
	hurt := buildSnap(t, []string{
		"#####",
		"#@..#",
		"#####",
	})
	hurt.Player.Health = 40
	hurt.Packs = []world.HealthPack{{Location: world.Location{X: 3, Y: 1}}}

	a := New(DefaultTuning())
	a.Act(hurt)
	assert.Equal(t, StateFleeing, a.State())

	// Healed, and a monster closed in: recovery and engagement resolve
	// within the same turn.
	healed := buildSnap(t, []string{
		"#####",
		"#@..#",
		"#####",
	})
	healed.Monsters = []world.Monster{{Location: world.Location{X: 2, Y: 1}, Health: 20}}

	act := a.Act(healed)
	assert.Equal(t, StateAttacking, a.State())
	assert.Equal(t, Attack, act.Kind)
}

func TestOutnumberedCowersAndStrikesWeakest(t *testing.T) {
	snap := buildSnap(t, []string{
		"#####",
		"#...#",
		"#####",
	})
	snap.Player.Location = world.Location{X: 2, Y: 1}
	snap.Monsters = []world.Monster{
		{Location: world.Location{X: 1, Y: 1}, Health: 5},
		{Location: world.Location{X: 3, Y: 1}, Health: 20},
	}

	a := New(DefaultTuning())
	act := a.Act(snap)

	// Boxed in with no packs and no safe cell: desperation strike at the
	// weakest attacker.
	assert.Equal(t, StateCowering, a.State())
	assert.Equal(t, Attack, act.Kind)
	assert.Equal(t, world.West, act.Direction)
}

func TestCoweringEscapesOutsideThreatZone(t *testing.T) {
	snap := buildSnap(t, []string{
		"#######",
		"#.....#",
		"#.....#",
		"#..@..#",
		"#.....#",
		"#######",
	})
	snap.Monsters = []world.Monster{
		{Location: world.Location{X: 2, Y: 2}, Health: 20},
		{Location: world.Location{X: 2, Y: 3}, Health: 20},
	}

	a := New(DefaultTuning())
	act := a.Act(snap)

	// Both attackers flank from the west; stepping east leaves their
	// reach entirely.
	assert.Equal(t, StateCowering, a.State())
	assert.Equal(t, Move, act.Kind)
	assert.Equal(t, world.East, act.Direction)
}

func TestSealedExitChangesRiskCalculus(t *testing.T) {
	snap := buildSnap(t, []string{
		"#######",
		"#@....#",
		"#######",
		"###E###",
		"#######",
	})
	snap.Player.Health = 50
	snap.Packs = []world.HealthPack{{Location: world.Location{X: 3, Y: 1}}}

	a := New(DefaultTuning())
	act := a.Act(snap)

	// The walled-off exit marks the final stage: the panic threshold
	// drops, so 50 health no longer triggers a flight, and healing stops
	// competing with progress.
	assert.True(t, a.ExitSealed())
	assert.Equal(t, StateIdle, a.State())
	assert.Equal(t, Pass, act.Kind)
}

func TestIdleBreakerForcesRandomStep(t *testing.T) {
	snap := buildSnap(t, []string{
		"####",
		"#@.#",
		"####",
	})

	tune := DefaultTuning()
	tune.IdleLimit = 2
	a := New(tune)

	// Nothing to do: no exit, no items, no monsters.
	act := a.Act(snap)
	assert.Equal(t, Pass, act.Kind)

	act = a.Act(snap)
	assert.Equal(t, Move, act.Kind)
	assert.Equal(t, world.East, act.Direction)
}
