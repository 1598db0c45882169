package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suderio/grim-delver/internal/agent"
	"github.com/suderio/grim-delver/internal/world"
)

func newDungeon(t *testing.T, levels ...*Level) *Dungeon {
	t.Helper()
	d, err := New(levels)
	if err != nil {
		t.Fatalf("failed to build dungeon: %v", err)
	}
	return d
}

func TestStepMovePicksUpItem(t *testing.T) {
	d := newDungeon(t, &Level{
		Name:  "armory",
		Map:   []string{"#####", "#@..#", "#####"},
		Place: "item sword at 2, 1 atk: 5 def: 3",
	})

	events, err := d.Step(agent.MoveAction(world.East))
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, EventPlayerMoved, events[0].Type())
	assert.Equal(t, EventItemTaken, events[1].Type())

	snap := d.Snapshot()
	assert.Empty(t, snap.Items)
	if assert.NotNil(t, snap.Player.Equipped) {
		assert.Equal(t, 5, snap.Player.Equipped.Attack)
		assert.Equal(t, 3, snap.Player.Equipped.Defence)
	}
}

func TestStepAttackKillsMonster(t *testing.T) {
	d := newDungeon(t, &Level{
		Name:  "lair",
		Map:   []string{"#####", "#@..#", "#####"},
		Place: "monster at 2, 1 hp: 10",
	})

	events, err := d.Step(agent.AttackAction(world.East))
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, EventPlayerStruck, events[0].Type())
	assert.Equal(t, EventMonsterSlain, events[1].Type())
	assert.Equal(t, 1, d.Slain())
	assert.Empty(t, d.Snapshot().Monsters)
}

func TestMonsterRetaliatesAndChases(t *testing.T) {
	d := newDungeon(t, &Level{
		Name:  "hallway",
		Map:   []string{"######", "#@...#", "######"},
		Place: "monster at 4, 1 hp: 100",
	})

	// 1. Too far to melee: the monster closes one cardinal step.
	events, err := d.Step(agent.PassAction())
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, EventMonsterMoved, events[0].Type())
	assert.Equal(t, world.Location{X: 3, Y: 1}, d.Snapshot().Monsters[0].Location)

	// 2. Still not adjacent: another step.
	_, err = d.Step(agent.PassAction())
	assert.NoError(t, err)
	assert.Equal(t, world.Location{X: 2, Y: 1}, d.Snapshot().Monsters[0].Location)

	// 3. Adjacent now: the monster strikes instead of moving.
	events, err = d.Step(agent.PassAction())
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, EventPlayerHurt, events[0].Type())
	assert.Equal(t, 90, d.Snapshot().Player.Health)
}

func TestDefenceSoftensMonsterDamage(t *testing.T) {
	d := newDungeon(t, &Level{
		Name:  "guarded",
		Map:   []string{"#####", "#@..#", "#####"},
		Place: "item shield at 2, 1 def: 7 and monster at 3, 1 hp: 100",
	})

	// Picking up the shield puts the player adjacent to the monster.
	_, err := d.Step(agent.MoveAction(world.East))
	assert.NoError(t, err)
	assert.Equal(t, 100-(monsterDamage-7), d.Snapshot().Player.Health)
}

func TestTrapAndPackResolve(t *testing.T) {
	d := newDungeon(t, &Level{
		Name:  "gauntlet",
		Map:   []string{"#####", "#@^.#", "#####"},
		Place: "pack at 3, 1",
	})

	_, err := d.Step(agent.MoveAction(world.East))
	assert.NoError(t, err)
	assert.Equal(t, fullHealth-trapDamage, d.Snapshot().Player.Health)

	events, err := d.Step(agent.MoveAction(world.East))
	assert.NoError(t, err)
	assert.Equal(t, EventPackConsumed, events[len(events)-1].Type())
	assert.Equal(t, fullHealth, d.Snapshot().Player.Health)
	assert.Empty(t, d.Snapshot().Packs)
}

func TestIllegalMoveIsIgnored(t *testing.T) {
	d := newDungeon(t, &Level{
		Name: "cell",
		Map:  []string{"###", "#@#", "###"},
	})

	events, err := d.Step(agent.MoveAction(world.North))
	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, world.Location{X: 1, Y: 1}, d.Snapshot().Player.Location)
}

func TestExitAdvancesThenEscapes(t *testing.T) {
	first := &Level{Name: "upper", Map: []string{"####", "#@E#", "####"}}
	second := &Level{Name: "lower", Map: []string{"####", "#@E#", "####"}}
	d := newDungeon(t, first, second)

	// 1. Stepping onto the exit swaps in the next level at its start cell.
	events, err := d.Step(agent.MoveAction(world.East))
	assert.NoError(t, err)
	assert.Equal(t, EventLevelAdvanced, events[len(events)-1].Type())
	assert.Equal(t, 1, d.LevelIndex())
	assert.Equal(t, world.Location{X: 1, Y: 1}, d.Snapshot().Player.Location)
	assert.False(t, d.Done())

	// 2. The last exit ends the run in victory.
	events, err = d.Step(agent.MoveAction(world.East))
	assert.NoError(t, err)
	assert.Equal(t, EventEscaped, events[len(events)-1].Type())
	assert.True(t, d.Done())
	assert.True(t, d.Escaped())

	_, err = d.Step(agent.PassAction())
	assert.Error(t, err)
}

func TestHealthCarriesBetweenLevels(t *testing.T) {
	d := newDungeon(t,
		&Level{Name: "upper", Map: []string{"#####", "#@^E#", "#####"}},
		&Level{Name: "lower", Map: []string{"####", "#@E#", "####"}},
	)

	_, err := d.Step(agent.MoveAction(world.East)) // through the trap
	assert.NoError(t, err)
	_, err = d.Step(agent.MoveAction(world.East)) // onto the exit
	assert.NoError(t, err)

	assert.Equal(t, 1, d.LevelIndex())
	assert.Equal(t, fullHealth-trapDamage, d.Snapshot().Player.Health)
}
