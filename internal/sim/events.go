// Package sim is the host-side collaborator: a mutable dungeon that
// produces a fresh snapshot every turn, applies the agent's action, and
// moves the monsters. Every state change flows through an Event so turns
// can be logged, replayed in the TUI, and appended to a transcript.
package sim

import (
	"fmt"

	"github.com/suderio/grim-delver/internal/world"
)

// EventType tags events for the transcript wrapper.
type EventType string

const (
	EventPlayerMoved   EventType = "PlayerMoved"
	EventPlayerStruck  EventType = "PlayerStruck"
	EventMonsterSlain  EventType = "MonsterSlain"
	EventMonsterMoved  EventType = "MonsterMoved"
	EventPlayerHurt    EventType = "PlayerHurt"
	EventItemTaken     EventType = "ItemTaken"
	EventPackConsumed  EventType = "PackConsumed"
	EventTrapSprung    EventType = "TrapSprung"
	EventLevelAdvanced EventType = "LevelAdvanced"
	EventEscaped       EventType = "Escaped"
	EventAgentDied     EventType = "AgentDied"
)

// Event is one dungeon state change. Apply mutates the dungeon; Message
// renders the human-readable log line.
type Event interface {
	Type() EventType
	Apply(d *Dungeon) error
	Message() string
}

// PlayerMovedEvent steps the player one cell.
type PlayerMovedEvent struct {
	From world.Location `json:"from"`
	To   world.Location `json:"to"`
}

func (e *PlayerMovedEvent) Type() EventType { return EventPlayerMoved }
func (e *PlayerMovedEvent) Apply(d *Dungeon) error {
	d.player.Location = e.To
	return nil
}
func (e *PlayerMovedEvent) Message() string {
	return fmt.Sprintf("player moves to %d, %d", e.To.X, e.To.Y)
}

// PlayerStruckEvent applies the player's melee damage to the monster on
// the target cell.
type PlayerStruckEvent struct {
	Target world.Location `json:"target"`
	Damage int            `json:"damage"`
}

func (e *PlayerStruckEvent) Type() EventType { return EventPlayerStruck }
func (e *PlayerStruckEvent) Apply(d *Dungeon) error {
	for i := range d.monsters {
		if d.monsters[i].Location == e.Target {
			d.monsters[i].Health -= e.Damage
			return nil
		}
	}
	return fmt.Errorf("no monster at %d, %d to strike", e.Target.X, e.Target.Y)
}
func (e *PlayerStruckEvent) Message() string {
	return fmt.Sprintf("player hits monster at %d, %d for %d", e.Target.X, e.Target.Y, e.Damage)
}

// MonsterSlainEvent removes a dead monster from the floor.
type MonsterSlainEvent struct {
	Location world.Location `json:"location"`
}

func (e *MonsterSlainEvent) Type() EventType { return EventMonsterSlain }
func (e *MonsterSlainEvent) Apply(d *Dungeon) error {
	for i := range d.monsters {
		if d.monsters[i].Location == e.Location {
			d.monsters = append(d.monsters[:i], d.monsters[i+1:]...)
			d.slain++
			return nil
		}
	}
	return fmt.Errorf("no monster at %d, %d to remove", e.Location.X, e.Location.Y)
}
func (e *MonsterSlainEvent) Message() string {
	return fmt.Sprintf("monster at %d, %d dies", e.Location.X, e.Location.Y)
}

// MonsterMovedEvent steps one monster.
type MonsterMovedEvent struct {
	From world.Location `json:"from"`
	To   world.Location `json:"to"`
}

func (e *MonsterMovedEvent) Type() EventType { return EventMonsterMoved }
func (e *MonsterMovedEvent) Apply(d *Dungeon) error {
	for i := range d.monsters {
		if d.monsters[i].Location == e.From {
			d.monsters[i].Location = e.To
			return nil
		}
	}
	return fmt.Errorf("no monster at %d, %d to move", e.From.X, e.From.Y)
}
func (e *MonsterMovedEvent) Message() string { return "" }

// PlayerHurtEvent applies monster damage to the player.
type PlayerHurtEvent struct {
	From   world.Location `json:"from"`
	Damage int            `json:"damage"`
}

func (e *PlayerHurtEvent) Type() EventType { return EventPlayerHurt }
func (e *PlayerHurtEvent) Apply(d *Dungeon) error {
	d.player.Health -= e.Damage
	if d.player.Health < 0 {
		d.player.Health = 0
	}
	return nil
}
func (e *PlayerHurtEvent) Message() string {
	return fmt.Sprintf("monster at %d, %d hits player for %d", e.From.X, e.From.Y, e.Damage)
}

// ItemTakenEvent swaps the player's gear for the item on the floor.
type ItemTakenEvent struct {
	Item world.Item `json:"item"`
}

func (e *ItemTakenEvent) Type() EventType { return EventItemTaken }
func (e *ItemTakenEvent) Apply(d *Dungeon) error {
	for i := range d.items {
		if d.items[i].Location == e.Item.Location {
			d.items = append(d.items[:i], d.items[i+1:]...)
			d.player.Equipped = &world.Equipment{
				Name:    e.Item.Name,
				Attack:  e.Item.Attack,
				Defence: e.Item.Defence,
			}
			return nil
		}
	}
	return fmt.Errorf("no item at %d, %d to take", e.Item.Location.X, e.Item.Location.Y)
}
func (e *ItemTakenEvent) Message() string {
	name := e.Item.Name
	if name == "" {
		name = "gear"
	}
	return fmt.Sprintf("player picks up %s (+%d atk, +%d def)", name, e.Item.Attack, e.Item.Defence)
}

// PackConsumedEvent restores the player to full health.
type PackConsumedEvent struct {
	Location world.Location `json:"location"`
}

func (e *PackConsumedEvent) Type() EventType { return EventPackConsumed }
func (e *PackConsumedEvent) Apply(d *Dungeon) error {
	for i := range d.packs {
		if d.packs[i].Location == e.Location {
			d.packs = append(d.packs[:i], d.packs[i+1:]...)
			d.player.Health = fullHealth
			return nil
		}
	}
	return fmt.Errorf("no health pack at %d, %d", e.Location.X, e.Location.Y)
}
func (e *PackConsumedEvent) Message() string { return "player restored to full health" }

// TrapSprungEvent fires when the player crosses a trap cell.
type TrapSprungEvent struct {
	Location world.Location `json:"location"`
	Damage   int            `json:"damage"`
}

func (e *TrapSprungEvent) Type() EventType { return EventTrapSprung }
func (e *TrapSprungEvent) Apply(d *Dungeon) error {
	d.player.Health -= e.Damage
	if d.player.Health < 0 {
		d.player.Health = 0
	}
	return nil
}
func (e *TrapSprungEvent) Message() string {
	return fmt.Sprintf("trap at %d, %d springs for %d", e.Location.X, e.Location.Y, e.Damage)
}

// LevelAdvancedEvent swaps in the next level.
type LevelAdvancedEvent struct {
	Index int `json:"index"`
}

func (e *LevelAdvancedEvent) Type() EventType { return EventLevelAdvanced }
func (e *LevelAdvancedEvent) Apply(d *Dungeon) error {
	return d.enterLevel(e.Index)
}
func (e *LevelAdvancedEvent) Message() string {
	return fmt.Sprintf("descending to level %d", e.Index+1)
}

// EscapedEvent ends the run in victory.
type EscapedEvent struct{}

func (e *EscapedEvent) Type() EventType { return EventEscaped }
func (e *EscapedEvent) Apply(d *Dungeon) error {
	d.escaped = true
	return nil
}
func (e *EscapedEvent) Message() string { return "the agent escapes the dungeon" }

// AgentDiedEvent ends the run in defeat.
type AgentDiedEvent struct{}

func (e *AgentDiedEvent) Type() EventType { return EventAgentDied }
func (e *AgentDiedEvent) Apply(d *Dungeon) error {
	d.died = true
	return nil
}
func (e *AgentDiedEvent) Message() string { return "the agent dies" }
