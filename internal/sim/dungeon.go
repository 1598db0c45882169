package sim

import (
	"fmt"

	"github.com/suderio/grim-delver/internal/agent"
	"github.com/suderio/grim-delver/internal/world"
)

const (
	fullHealth     = 100
	baseDamage     = 10
	trapDamage     = 25
	monsterDamage  = 10
	minDamageDealt = 1
)

// Dungeon is the mutable game state the agent plays against. It owns the
// level sequence; stepping onto an exit swaps the next level in, or ends
// the run if none remain.
type Dungeon struct {
	levels   []*Level
	levelIdx int

	field    *world.Field
	player   world.Player
	monsters []world.Monster
	items    []world.Item
	packs    []world.HealthPack

	turn    int
	slain   int
	died    bool
	escaped bool
}

// New builds a dungeon positioned at the first level's start cell.
func New(levels []*Level) (*Dungeon, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("dungeon needs at least one level")
	}
	d := &Dungeon{levels: levels, player: world.Player{Health: fullHealth}}
	if err := d.enterLevel(0); err != nil {
		return nil, err
	}
	return d, nil
}

// enterLevel resolves the indexed level and drops the player on its start
// cell. Health and gear carry over between levels.
func (d *Dungeon) enterLevel(idx int) error {
	if idx < 0 || idx >= len(d.levels) {
		return fmt.Errorf("level index %d out of range", idx)
	}
	built, err := d.levels[idx].Build()
	if err != nil {
		return err
	}
	d.levelIdx = idx
	d.field = built.field
	d.player.Location = built.start
	d.monsters = built.monsters
	d.items = built.items
	d.packs = built.packs
	return nil
}

// Snapshot produces the read-only per-turn view. Entity slices are copied
// so the agent cannot reach the live state.
func (d *Dungeon) Snapshot() *world.Snapshot {
	snap := &world.Snapshot{
		Field:    d.field,
		Player:   d.player,
		Monsters: make([]world.Monster, len(d.monsters)),
		Items:    make([]world.Item, len(d.items)),
		Packs:    make([]world.HealthPack, len(d.packs)),
	}
	copy(snap.Monsters, d.monsters)
	copy(snap.Items, d.items)
	copy(snap.Packs, d.packs)
	if d.player.Equipped != nil {
		eq := *d.player.Equipped
		snap.Player.Equipped = &eq
	}
	return snap
}

// Turn returns the number of resolved turns.
func (d *Dungeon) Turn() int { return d.turn }

// LevelIndex returns the zero-based index of the current level.
func (d *Dungeon) LevelIndex() int { return d.levelIdx }

// Slain returns the number of monsters the player has killed.
func (d *Dungeon) Slain() int { return d.slain }

// Done reports whether the run has ended either way.
func (d *Dungeon) Done() bool { return d.died || d.escaped }

// Escaped reports a victorious run.
func (d *Dungeon) Escaped() bool { return d.escaped }

// Died reports a lost run.
func (d *Dungeon) Died() bool { return d.died }

// Step resolves one full turn: the player's action, then every monster.
// The returned events have already been applied, in order.
func (d *Dungeon) Step(act agent.Action) ([]Event, error) {
	if d.Done() {
		return nil, fmt.Errorf("the run is already over")
	}
	d.turn++

	var applied []Event
	emit := func(e Event) error {
		if err := e.Apply(d); err != nil {
			return err
		}
		applied = append(applied, e)
		return nil
	}

	if err := d.resolvePlayer(act, emit); err != nil {
		return applied, err
	}
	if d.Done() {
		return applied, nil
	}
	if err := d.resolveMonsters(emit); err != nil {
		return applied, err
	}
	if d.player.Health <= 0 {
		if err := emit(&AgentDiedEvent{}); err != nil {
			return applied, err
		}
	}
	return applied, nil
}

func (d *Dungeon) resolvePlayer(act agent.Action, emit func(Event) error) error {
	switch act.Kind {
	case agent.Move:
		target := d.player.Location.Add(act.Direction.Offset())
		if !d.enterable(target) {
			return nil // illegal moves are ignored, not fatal
		}
		if err := emit(&PlayerMovedEvent{From: d.player.Location, To: target}); err != nil {
			return err
		}
		return d.resolveCell(target, emit)

	case agent.Attack:
		target := d.player.Location.Add(act.Direction.Offset())
		if !d.field.InBounds(target) {
			return nil
		}
		m, ok := monsterAt(d.monsters, target)
		if !ok {
			return nil
		}
		dmg := baseDamage
		if d.player.Equipped != nil {
			dmg += d.player.Equipped.Attack
		}
		if err := emit(&PlayerStruckEvent{Target: target, Damage: dmg}); err != nil {
			return err
		}
		if m.Health-dmg <= 0 {
			return emit(&MonsterSlainEvent{Location: target})
		}
		return nil
	}
	return nil
}

// resolveCell handles whatever the player just stepped onto.
func (d *Dungeon) resolveCell(loc world.Location, emit func(Event) error) error {
	if d.field.At(loc) == world.Trap {
		if err := emit(&TrapSprungEvent{Location: loc, Damage: trapDamage}); err != nil {
			return err
		}
		if d.player.Health <= 0 {
			return emit(&AgentDiedEvent{})
		}
	}
	for _, it := range d.items {
		if it.Location == loc {
			if err := emit(&ItemTakenEvent{Item: it}); err != nil {
				return err
			}
			break
		}
	}
	for _, p := range d.packs {
		if p.Location == loc {
			if err := emit(&PackConsumedEvent{Location: loc}); err != nil {
				return err
			}
			break
		}
	}
	if d.field.At(loc) == world.Exit {
		if d.levelIdx+1 < len(d.levels) {
			return emit(&LevelAdvancedEvent{Index: d.levelIdx + 1})
		}
		return emit(&EscapedEvent{})
	}
	return nil
}

// resolveMonsters gives every monster its move: melee the player when
// adjacent, otherwise chase one cardinal step.
func (d *Dungeon) resolveMonsters(emit func(Event) error) error {
	// Iterate over positions captured up front; a monster slain this turn
	// is already gone from d.monsters.
	positions := make([]world.Location, len(d.monsters))
	for i, m := range d.monsters {
		positions[i] = m.Location
	}

	for _, pos := range positions {
		if _, ok := monsterAt(d.monsters, pos); !ok {
			continue
		}
		if pos.Chebyshev(d.player.Location) == 1 {
			dmg := monsterDamage
			if d.player.Equipped != nil {
				dmg -= d.player.Equipped.Defence
			}
			if dmg < minDamageDealt {
				dmg = minDamageDealt
			}
			if err := emit(&PlayerHurtEvent{From: pos, Damage: dmg}); err != nil {
				return err
			}
			continue
		}
		if next, ok := d.chaseStep(pos); ok {
			if err := emit(&MonsterMovedEvent{From: pos, To: next}); err != nil {
				return err
			}
		}
	}
	return nil
}

// chaseStep picks the cardinal step that closes the larger axis gap to
// the player, falling back to the other axis when blocked.
func (d *Dungeon) chaseStep(from world.Location) (world.Location, bool) {
	off := from.To(d.player.Location)
	first := world.Offset{DX: sign(off.DX)}
	second := world.Offset{DY: sign(off.DY)}
	if abs(off.DY) > abs(off.DX) {
		first, second = second, first
	}
	for _, o := range [2]world.Offset{first, second} {
		if o == (world.Offset{}) {
			continue
		}
		next := from.Add(o)
		if d.openForMonster(next) {
			return next, true
		}
	}
	return from, false
}

// enterable is the host's passability for the player: walls block, and so
// do monsters; traps, items, packs and the exit are all enterable.
func (d *Dungeon) enterable(loc world.Location) bool {
	if !d.field.InBounds(loc) || d.field.At(loc) == world.Wall {
		return false
	}
	_, occupied := monsterAt(d.monsters, loc)
	return !occupied
}

// openForMonster keeps monsters out of walls, traps, pickups and each
// other; they also never share the player's cell.
func (d *Dungeon) openForMonster(loc world.Location) bool {
	if !d.field.InBounds(loc) {
		return false
	}
	switch d.field.At(loc) {
	case world.Wall, world.Trap:
		return false
	}
	if loc == d.player.Location {
		return false
	}
	if _, ok := monsterAt(d.monsters, loc); ok {
		return false
	}
	for _, it := range d.items {
		if it.Location == loc {
			return false
		}
	}
	for _, p := range d.packs {
		if p.Location == loc {
			return false
		}
	}
	return true
}

func monsterAt(monsters []world.Monster, loc world.Location) (world.Monster, bool) {
	for _, m := range monsters {
		if m.Location == loc {
			return m, true
		}
	}
	return world.Monster{}, false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
