package schedule

import (
	"strings"

	"github.com/talgya/camplife/internal/needs"
)

// EffectKind is a pressure-driven schedule override. Each kind carries its
// own slot mutations, resolved through the single applyEffect dispatch.
type EffectKind uint8

const (
	EffectSkipFormations EffectKind = iota
	EffectBoostForaging
	EffectRestrictLeisure
	EffectBoostRecovery
	EffectSurvivalMode
	EffectMinimalSchedule
)

// activeEffects derives which overrides apply from the current camp state,
// ordered so the strongest (survival mode) lands last and wins.
func (m *Manager) activeEffects() []EffectKind {
	if m.pressure == nil {
		return nil
	}

	var kinds []EffectKind
	supplies := m.pressure.Get(needs.ResourceSupplies)
	rest := m.pressure.Get(needs.ResourceRest)
	morale := m.pressure.Get(needs.ResourceMorale)

	if rest < 30 {
		kinds = append(kinds, EffectSkipFormations)
	}
	if supplies < 40 {
		kinds = append(kinds, EffectBoostForaging)
	}
	if m.pressure.DaysLowDiscipline() > 0 {
		kinds = append(kinds, EffectRestrictLeisure)
	}
	if m.pressure.DaysHighSickness() > 0 {
		kinds = append(kinds, EffectBoostRecovery)
	}
	if morale < 20 {
		kinds = append(kinds, EffectMinimalSchedule)
	}
	if supplies < 20 {
		kinds = append(kinds, EffectSurvivalMode)
	}
	return kinds
}

// applyEffect mutates the phase plan for one override kind.
func applyEffect(kind EffectKind, p *Phase) {
	switch kind {
	case EffectSkipFormations:
		skipCategory(p, "formation")

	case EffectBoostForaging:
		boostCategory(p, "foraging", 1.5)

	case EffectRestrictLeisure:
		skipCategory(p, "leisure")

	case EffectBoostRecovery:
		boostCategory(p, "rest", 1.4)
		boostCategory(p, "maintenance", 1.2)

	case EffectMinimalSchedule:
		// Only the first slot survives; the company has no heart for more.
		p.Slots[1].Skipped = true

	case EffectSurvivalMode:
		// Everything yields to finding food and sleeping.
		for i := range p.Slots {
			c := strings.ToLower(p.Slots[i].Category)
			if c != "foraging" && c != "rest" {
				p.Slots[i].Skipped = true
			}
		}
		if p.DeviationReason == "" {
			p.DeviationReason = "the company is on starvation footing"
		}
	}
}

func skipCategory(p *Phase, category string) {
	for i := range p.Slots {
		if strings.EqualFold(p.Slots[i].Category, category) {
			p.Slots[i].Skipped = true
		}
	}
}

func boostCategory(p *Phase, category string, factor float64) {
	for i := range p.Slots {
		if strings.EqualFold(p.Slots[i].Category, category) {
			p.Slots[i].Weight *= factor
		}
	}
}
