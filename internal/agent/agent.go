package agent

import (
	"math/rand"

	"github.com/enetx/fsm"
	"github.com/enetx/g"

	"github.com/suderio/grim-delver/internal/world"
)

// Agent is the decision engine. All of its memory across turns lives
// here: the behavioral state, the idle counter, the remembered exit, the
// effective panic threshold and the level counter. The snapshot handed to
// Act each turn is read-only and never retained.
type Agent struct {
	tune  Tuning
	brain *fsm.FSM

	idleTurns      int
	level          int
	exit           *world.Location
	exitSealed     bool
	panicThreshold int
	rng            *rand.Rand
}

// New constructs an agent in the Idle state.
func New(tune Tuning) *Agent {
	return &Agent{
		tune:           tune,
		brain:          newBrain(),
		panicThreshold: tune.PanicThreshold,
		rng:            rand.New(rand.NewSource(tune.Seed)),
	}
}

// State returns the current behavioral state.
func (a *Agent) State() fsm.State { return a.brain.Current() }

// Level returns how many exits the agent believes it has stepped through.
func (a *Agent) Level() int { return a.level }

// ExitSealed reports whether the agent has concluded it is on the final
// level.
func (a *Agent) ExitSealed() bool { return a.exitSealed }

// Act consumes one snapshot and returns exactly one action. Transitions
// are evaluated first and may cascade within the same call; only the
// selected action consumes the turn.
func (a *Agent) Act(snap *world.Snapshot) Action {
	a.observe(snap)
	contacts := snap.AdjacentMonsters()
	a.transition(snap, contacts)

	switch a.brain.Current() {
	case StateAttacking:
		a.idleTurns = 0
		return a.actAttacking(contacts)
	case StateCowering:
		a.idleTurns = 0
		return a.actCowering(snap, contacts)
	case StateFleeing:
		a.idleTurns = 0
		return a.actFleeing(snap)
	default:
		return a.actIdle(snap)
	}
}

// observe refreshes the remembered exit. Every level starts with the
// player on the start cell, so standing there (re)captures the exit and
// re-runs the sealed-exit check: an exit whose whole attack-offset
// neighborhood is wall can never be entered, which marks the final stage
// and lowers the panic threshold.
func (a *Agent) observe(snap *world.Snapshot) {
	if snap.Field.At(snap.Player.Location) != world.PlayerStart {
		return
	}
	exits := snap.Field.CellsOf(world.Exit)
	if len(exits) == 0 {
		a.exit = nil
		return
	}
	exit := exits[0]
	a.exit = &exit
	a.exitSealed = sealed(snap.Field, exit)
	if a.exitSealed {
		a.panicThreshold = a.tune.FinalPanicThreshold
	} else {
		a.panicThreshold = a.tune.PanicThreshold
	}
}

func sealed(f *world.Field, exit world.Location) bool {
	for _, o := range world.AttackOffsets {
		c := exit.Add(o)
		if f.InBounds(c) && f.At(c) != world.Wall {
			return false
		}
	}
	return true
}

// transition publishes this turn's facts into the brain context and fires
// the per-turn event sequence. Recovery runs first so a healed agent can
// still enter combat this turn; melee events run before health events so
// combat outranks panic.
func (a *Agent) transition(snap *world.Snapshot, contacts []world.MeleeContact) {
	ctx := a.brain.Context()
	ctx.Data.Insert(ctxHealth, g.Int(snap.Player.Health))
	ctx.Data.Insert(ctxMelee, g.Int(len(contacts)))
	ctx.Data.Insert(ctxPacks, g.Int(len(snap.Packs)))
	ctx.Data.Insert(ctxThreshold, g.Int(a.panicThreshold))

	if a.brain.Current() == StateFleeing {
		a.brain.Trigger(eventRecovered)
	}
	switch len(contacts) {
	case 0:
		a.brain.Trigger(eventThreatClear)
	case 1:
		a.brain.Trigger(eventThreatOne)
	default:
		a.brain.Trigger(eventThreatMany)
	}
	a.brain.Trigger(eventLowHealth)
}
