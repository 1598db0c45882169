// Package agent holds the behavioral controller: a four-state brain that
// consumes one world snapshot per turn and emits exactly one action.
package agent

import (
	"fmt"

	"github.com/suderio/grim-delver/internal/world"
)

// ActionKind discriminates the three things the agent can do in a turn.
type ActionKind uint8

const (
	Pass ActionKind = iota
	Move
	Attack
)

func (k ActionKind) String() string {
	switch k {
	case Move:
		return "move"
	case Attack:
		return "attack"
	default:
		return "pass"
	}
}

// Action is the single per-turn output handed back to the host. Move
// directions are always cardinal; attacks may use all eight directions.
type Action struct {
	Kind      ActionKind
	Direction world.Direction
}

// PassAction is the no-op a state returns when it has no legal action.
func PassAction() Action { return Action{Kind: Pass} }

// MoveAction steps one cell in a cardinal direction.
func MoveAction(d world.Direction) Action {
	if !d.Cardinal() {
		panic(fmt.Sprintf("agent: move in non-cardinal direction %s", d))
	}
	return Action{Kind: Move, Direction: d}
}

// AttackAction strikes the adjacent cell in the given direction.
func AttackAction(d world.Direction) Action {
	return Action{Kind: Attack, Direction: d}
}

func (a Action) String() string {
	if a.Kind == Pass {
		return "pass"
	}
	return fmt.Sprintf("%s %s", a.Kind, a.Direction)
}
