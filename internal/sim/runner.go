package sim

import (
	"fmt"

	"github.com/suderio/grim-delver/internal/agent"
)

// DefaultMaxTurns caps an episode so a stalled agent cannot spin forever.
const DefaultMaxTurns = 2000

// Outcome summarizes one finished episode.
type Outcome struct {
	Escaped bool
	Died    bool
	Stalled bool
	Turns   int
	Levels  int
	Slain   int
}

func (o Outcome) String() string {
	verdict := "stalled"
	switch {
	case o.Escaped:
		verdict = "escaped"
	case o.Died:
		verdict = "died"
	}
	return fmt.Sprintf("%s after %d turns (levels cleared: %d, monsters slain: %d)",
		verdict, o.Turns, o.Levels, o.Slain)
}

// Runner drives the synchronous host loop: one snapshot in, one action
// out, once per turn, until the run ends or the turn cap trips.
type Runner struct {
	Dungeon  *Dungeon
	Agent    *agent.Agent
	Store    *TranscriptStore // optional
	MaxTurns int

	// OnTurn, when set, observes each resolved turn. The watch TUI hooks
	// in here.
	OnTurn func(turn int, act agent.Action, events []Event)
}

// Run plays the episode to completion.
func (r *Runner) Run() (Outcome, error) {
	maxTurns := r.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	for !r.Dungeon.Done() && r.Dungeon.Turn() < maxTurns {
		if _, err := r.Step(); err != nil {
			return r.outcome(), err
		}
	}
	return r.outcome(), nil
}

// Step resolves exactly one turn and reports whether the run continues.
func (r *Runner) Step() (bool, error) {
	snap := r.Dungeon.Snapshot()
	act := r.Agent.Act(snap)
	events, err := r.Dungeon.Step(act)
	if err != nil {
		return false, err
	}
	if r.Store != nil {
		for _, evt := range events {
			if err := r.Store.Append(r.Dungeon.Turn(), evt); err != nil {
				return false, fmt.Errorf("failed to record turn %d: %w", r.Dungeon.Turn(), err)
			}
		}
	}
	if r.OnTurn != nil {
		r.OnTurn(r.Dungeon.Turn(), act, events)
	}
	return !r.Dungeon.Done(), nil
}

func (r *Runner) outcome() Outcome {
	return Outcome{
		Escaped: r.Dungeon.Escaped(),
		Died:    r.Dungeon.Died(),
		Stalled: !r.Dungeon.Done(),
		Turns:   r.Dungeon.Turn(),
		Levels:  r.Agent.Level(),
		Slain:   r.Dungeon.Slain(),
	}
}
