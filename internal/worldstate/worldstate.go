// Package worldstate describes the army's current situation as seen by the
// camp simulation. The real game engine supplies a Provider; the package
// also ships a noise-driven synthetic provider for the demo binary and for
// statistical tests.
package worldstate

import (
	"github.com/talgya/camplife/internal/clock"
)

// LordSituation is the commanding lord's current posture.
type LordSituation uint8

const (
	PeacetimeGarrison LordSituation = iota
	Marching
	SiegeAttacker
	SiegeDefender
	Battle
	Raiding
	Resting
)

// SituationName returns a human-readable situation name.
func SituationName(s LordSituation) string {
	switch s {
	case PeacetimeGarrison:
		return "PeacetimeGarrison"
	case Marching:
		return "Marching"
	case SiegeAttacker:
		return "SiegeAttacker"
	case SiegeDefender:
		return "SiegeDefender"
	case Battle:
		return "Battle"
	case Raiding:
		return "Raiding"
	case Resting:
		return "Resting"
	default:
		return "Unknown"
	}
}

// ActivityLevel is the expected intensity of the army's current operations.
type ActivityLevel uint8

const (
	ActivityQuiet ActivityLevel = iota
	ActivityRoutine
	ActivityIntense
)

// Situation is a read-only snapshot of the world as it bears on camp life.
type Situation struct {
	Phase    clock.DayPhase
	Lord     LordSituation
	Activity ActivityLevel
	AtSea    bool
	Marching bool
}

// AtSiege reports whether the army holds either siege stance.
func (s Situation) AtSiege() bool {
	return s.Lord == SiegeAttacker || s.Lord == SiegeDefender
}

// Provider supplies situation snapshots. Polled, never pushed.
type Provider interface {
	AnalyzeSituation() Situation
}
