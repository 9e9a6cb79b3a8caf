// Package schedule produces the company's per-phase activity plan: the
// configured baseline deformed by the expected activity level, the lord's
// posture, camp pressure, and any standing player commitment.
package schedule

import (
	"strings"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/worldstate"
)

// Slot is one resolved activity slot.
type Slot struct {
	Category    string
	Description string
	Weight      float64
	Skipped     bool
}

// Phase is the finalized plan for one day phase. Recomputed on request,
// never persisted.
type Phase struct {
	Phase           clock.DayPhase
	Slots           [2]Slot
	DeviationReason string // Empty when the baseline held.
	Flavor          string

	// Player commitment marker. When set, routine resolution skips this
	// phase entirely.
	PlayerCommitted bool
	CommitmentTitle string
}

// ActivityLevelName maps an activity level to its config key.
func ActivityLevelName(a worldstate.ActivityLevel) string {
	switch a {
	case worldstate.ActivityQuiet:
		return "quiet"
	case worldstate.ActivityIntense:
		return "intense"
	default:
		return "routine"
	}
}

// CommitmentLookup answers whether the player holds a commitment for a
// given phase and day.
type CommitmentLookup interface {
	CommitmentFor(phase clock.DayPhase, day int) (title string, ok bool)
}

// PressureReader exposes the camp state the schedule deforms against.
type PressureReader interface {
	Get(resource string) int
	DaysHighSickness() int
	DaysLowDiscipline() int
}

// Manager computes and caches the schedule for the current phase.
type Manager struct {
	cfg         defs.ScheduleConfig
	world       worldstate.Provider
	pressure    PressureReader
	commitments CommitmentLookup

	// Cache with explicit generation-counter invalidation: the cached plan
	// is valid only while its generation matches.
	generation  uint64
	cached      *Phase
	cachedPhase clock.DayPhase
	cachedDay   int
	cachedGen   uint64
}

// NewManager wires a schedule manager.
func NewManager(cfg defs.ScheduleConfig, world worldstate.Provider, pressure PressureReader, commitments CommitmentLookup) *Manager {
	return &Manager{
		cfg:         cfg,
		world:       world,
		pressure:    pressure,
		commitments: commitments,
	}
}

// ForPhase computes the plan for a phase on a given day. Pure with respect
// to roster and pressure state: it only reads.
func (m *Manager) ForPhase(phase clock.DayPhase, day int) Phase {
	situation := m.world.AnalyzeSituation()

	plan, ok := m.cfg.Phases[phase]
	if !ok {
		plan = defs.PhasePlan{}
	}

	out := Phase{
		Phase:  phase,
		Flavor: plan.Flavor,
	}
	for i, s := range plan.Slots {
		out.Slots[i] = Slot{
			Category:    s.Category,
			Description: s.Description,
			Weight:      s.Weight,
		}
	}

	m.applyActivityMultipliers(&out, situation)
	m.applyLordSituation(&out, situation)
	for _, kind := range m.activeEffects() {
		applyEffect(kind, &out)
	}
	m.applyCommitment(&out, day)

	return out
}

// applyActivityMultipliers scales slot weights by the expected activity
// level. A multiplier of exactly 0 marks the slot skipped.
func (m *Manager) applyActivityMultipliers(p *Phase, situation worldstate.Situation) {
	mults, ok := m.cfg.ActivityMultipliers[ActivityLevelName(situation.Activity)]
	if !ok {
		return
	}
	for i := range p.Slots {
		mult, ok := mults[p.Slots[i].Category]
		if !ok {
			continue
		}
		if mult == 0 {
			p.Slots[i].Skipped = true
			continue
		}
		p.Slots[i].Weight *= mult
	}
}

// applyLordSituation blanks the whole phase for situations that demand it,
// or boosts the matching category otherwise.
func (m *Manager) applyLordSituation(p *Phase, situation worldstate.Situation) {
	name := worldstate.SituationName(situation.Lord)

	if reason, ok := m.cfg.BlankedBy[name]; ok {
		for i := range p.Slots {
			p.Slots[i].Skipped = true
		}
		p.DeviationReason = reason
		return
	}

	if category, ok := m.cfg.BoostCategory[name]; ok {
		for i := range p.Slots {
			if strings.EqualFold(p.Slots[i].Category, category) {
				p.Slots[i].Weight *= m.cfg.BoostFactor
			}
		}
	}
}

// applyCommitment marks the phase player-committed when a scheduled
// commitment exists for it.
func (m *Manager) applyCommitment(p *Phase, day int) {
	if m.commitments == nil {
		return
	}
	if title, ok := m.commitments.CommitmentFor(p.Phase, day); ok {
		p.PlayerCommitted = true
		p.CommitmentTitle = title
	}
}

// OnPhaseChanged recomputes and caches the plan at a phase transition.
func (m *Manager) OnPhaseChanged(phase clock.DayPhase, day int) Phase {
	p := m.ForPhase(phase, day)
	m.cached = &p
	m.cachedPhase = phase
	m.cachedDay = day
	m.cachedGen = m.generation
	return p
}

// Invalidate forces the next Current call to recompute.
func (m *Manager) Invalidate() {
	m.generation++
}

// Current returns the cached plan for the phase, recomputing when the
// cache has been invalidated or the phase moved on.
func (m *Manager) Current(phase clock.DayPhase, day int) Phase {
	if m.cached != nil && m.cachedPhase == phase && m.cachedDay == day && m.cachedGen == m.generation {
		return *m.cached
	}
	return m.OnPhaseChanged(phase, day)
}
