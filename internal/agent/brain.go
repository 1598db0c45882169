package agent

import (
	"github.com/enetx/fsm"
	"github.com/enetx/g"
)

// Behavioral states. The machine has no terminal state; it runs for the
// lifetime of the agent.
const (
	StateIdle      fsm.State = "Idle"
	StateAttacking fsm.State = "Attacking"
	StateCowering  fsm.State = "Cowering"
	StateFleeing   fsm.State = "Fleeing"
)

// Events derived from the snapshot at the top of every turn. Triggering
// an event with no matching transition leaves the state untouched, which
// is exactly the "stay" semantics the transition table wants.
const (
	eventThreatOne   fsm.Event = "ThreatOne"   // exactly one monster in melee range
	eventThreatMany  fsm.Event = "ThreatMany"  // outnumbered
	eventThreatClear fsm.Event = "ThreatClear" // melee count dropped to zero
	eventLowHealth   fsm.Event = "LowHealth"   // below panic threshold, pack available
	eventRecovered   fsm.Event = "Recovered"   // healed, or nothing left to heal with
)

// Context keys the guards read. Values are refreshed before every
// trigger sequence.
const (
	ctxHealth    = "health"
	ctxMelee     = "melee"
	ctxPacks     = "packs"
	ctxThreshold = "threshold"
)

func ctxInt(ctx *fsm.Context, key g.String) g.Int {
	v, ok := ctx.Data.Get(key).UnwrapOrDefault().(g.Int)
	if !ok {
		return 0
	}
	return v
}

// shouldFlee allows the Fleeing transition only when the agent is hurt, a
// health pack exists, and it is not locked in single combat: one melee
// attacker cannot be outrun, so the agent stands and fights instead.
func shouldFlee(ctx *fsm.Context) bool {
	health := ctxInt(ctx, ctxHealth)
	threshold := ctxInt(ctx, ctxThreshold)
	packs := ctxInt(ctx, ctxPacks)
	melee := ctxInt(ctx, ctxMelee)
	return health < threshold && packs > 0 && melee != 1
}

// hasRecovered ends panic once health is back above the threshold or no
// health pack remains to chase.
func hasRecovered(ctx *fsm.Context) bool {
	health := ctxInt(ctx, ctxHealth)
	threshold := ctxInt(ctx, ctxThreshold)
	packs := ctxInt(ctx, ctxPacks)
	return health >= threshold || packs == 0
}

// newBrain wires the transition table. Melee-count events are triggered
// before health events each turn, so combat transitions take precedence
// over panic.
func newBrain() *fsm.FSM {
	return fsm.New(StateIdle).
		Transition(StateIdle, eventThreatOne, StateAttacking).
		Transition(StateCowering, eventThreatOne, StateAttacking).
		Transition(StateFleeing, eventThreatOne, StateAttacking).
		Transition(StateIdle, eventThreatMany, StateCowering).
		Transition(StateAttacking, eventThreatMany, StateCowering).
		Transition(StateFleeing, eventThreatMany, StateCowering).
		Transition(StateAttacking, eventThreatClear, StateIdle).
		Transition(StateCowering, eventThreatClear, StateIdle).
		TransitionWhen(StateIdle, eventLowHealth, StateFleeing, shouldFlee).
		TransitionWhen(StateAttacking, eventLowHealth, StateFleeing, shouldFlee).
		TransitionWhen(StateCowering, eventLowHealth, StateFleeing, shouldFlee).
		TransitionWhen(StateFleeing, eventRecovered, StateIdle, hasRecovered)
}
