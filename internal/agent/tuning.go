package agent

import "github.com/suderio/grim-delver/internal/search"

// FullHealth is the health ceiling the host guarantees.
const FullHealth = 100

// Tuning bundles the controller's knobs together with the search
// constants. Everything here is overridable through configuration.
type Tuning struct {
	Search search.Tuning

	// PanicThreshold is the health below which the agent prioritizes
	// healing. FinalPanicThreshold replaces it once the exit is detected
	// sealed: with nowhere left to retreat to, the agent fights longer.
	PanicThreshold      int
	FinalPanicThreshold int

	// IdleLimit caps consecutive idle turns before a random legal step is
	// forced to break oscillation.
	IdleLimit int

	// Seed feeds the rand used only by the idle breaker, keeping whole
	// runs reproducible.
	Seed int64
}

// DefaultTuning returns the documented constant set.
func DefaultTuning() Tuning {
	return Tuning{
		Search:              search.DefaultTuning(),
		PanicThreshold:      70,
		FinalPanicThreshold: 30,
		IdleLimit:           60,
		Seed:                1,
	}
}
