package opportunity

import (
	"fmt"
	"hash/fnv"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/rng"
	"github.com/talgya/camplife/internal/worldstate"
)

// score computes the candidate's fitness: base plus the four modifier
// layers, schedule-boosted, clamped to [0, 100].
func (g *Generator) score(d *defs.OpportunityDefinition, ctx Context) float64 {
	s := d.BaseFitness
	s += worldStateModifier(d.Type, ctx.Situation)
	s += campContextModifier(d.Type, ctx)
	s += g.playerStateModifier(d.Type, ctx)
	s += g.historyModifier(d, ctx)

	if g.scheduleMatches(d.Type, ctx) {
		s *= g.cfg.ScheduleBoost
	}
	return rng.Clamp(s, 0, 100)
}

// worldStateModifier scores the army's posture against the opportunity type.
func worldStateModifier(t defs.OpportunityType, situation worldstate.Situation) float64 {
	mod := 0.0
	if t == defs.TypeTraining && situation.Lord == worldstate.PeacetimeGarrison {
		mod += 15
	}
	if t == defs.TypeSocial && situation.AtSiege() {
		mod -= 20
	}
	if t == defs.TypeRecovery && situation.Activity == worldstate.ActivityIntense {
		mod += 25
	}
	return mod
}

// campContextModifier scores time of day, camp mood and the muster cycle.
func campContextModifier(t defs.OpportunityType, ctx Context) float64 {
	mod := 0.0

	switch ctx.Time.Phase() {
	case clock.PhaseDawn:
		if t == defs.TypeTraining {
			mod += 10
		}
	case clock.PhaseDusk:
		if t == defs.TypeSocial {
			mod += 15
		}
	case clock.PhaseNight:
		if t == defs.TypeEconomic {
			mod -= 30
		}
	}

	switch ctx.Mood {
	case MoodHigh:
		if t == defs.TypeSocial {
			mod += 15
		}
	case MoodGrim:
		if t == defs.TypeSocial {
			mod -= 15
		}
		if t == defs.TypeRecovery {
			mod += 20
		}
	}

	// Purses are full near muster day.
	if t == defs.TypeEconomic && ctx.Muster.DaysSinceMuster >= 9 {
		mod += 10
	}
	return mod
}

// playerStateModifier scores the player's own condition and learned lean.
func (g *Generator) playerStateModifier(t defs.OpportunityType, ctx Context) float64 {
	mod := 0.0

	if t == defs.TypeTraining && ctx.Player.Stamina < 5 {
		mod -= 25
	}
	if t == defs.TypeRecovery && ctx.Player.Injured {
		mod += 30
	}
	if t == defs.TypeEconomic && ctx.Gold < 50 {
		mod += 20
	}

	lean := g.tracker.CombatSocialLean()
	switch t {
	case defs.TypeTraining:
		mod += 10 * lean
	case defs.TypeSocial:
		mod -= 10 * lean
	}
	return mod
}

// historyModifier applies recency fatigue, the learned preference signal,
// a novelty bonus for unseen types, and a bounded variety correction so a
// disliked type is never hidden forever.
func (g *Generator) historyModifier(d *defs.OpportunityDefinition, ctx Context) float64 {
	mod := 0.0

	if hours, ever := g.history.HoursSinceTypeShown(d.Type, ctx.Time); ever {
		switch {
		case hours < 12:
			mod -= 40
		case hours < 24:
			mod -= 20
		}
		mod += 0.7 * g.tracker.PreferenceDelta(d.Type)
	} else {
		mod += 8
	}

	rate, seen := g.history.TypeEngagementRate(d.Type)
	if seen >= 5 && rate < 0.2 && varietyGate(ctx.Time, d.ID) {
		mod += 5
	}
	return mod
}

// varietyGate is a deterministic pseudo-random gate over (time bucket, id)
// firing for roughly 30% of combinations. It intentionally bypasses the
// injected RNG so the correction doesn't consume seed state; see DESIGN.md.
func varietyGate(now clock.CampTime, id string) bool {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d|%s", now.TotalHours()/6, id)
	return h.Sum32()%10 < 3
}

// scheduleMatches reports whether the current schedule features a slot
// whose category lines up with the opportunity type.
func (g *Generator) scheduleMatches(t defs.OpportunityType, ctx Context) bool {
	if g.schedule == nil {
		return false
	}
	plan := g.schedule.Current(ctx.Time.Phase(), ctx.Time.Day)
	for _, slot := range plan.Slots {
		if slot.Skipped {
			continue
		}
		if mt, ok := categoryType(slot.Category); ok && mt == t {
			return true
		}
	}
	return false
}

// categoryType maps schedule slot categories onto opportunity types.
func categoryType(category string) (defs.OpportunityType, bool) {
	switch category {
	case "training":
		return defs.TypeTraining, true
	case "leisure":
		return defs.TypeSocial, true
	case "foraging", "labor":
		return defs.TypeEconomic, true
	case "rest":
		return defs.TypeRecovery, true
	default:
		return 0, false
	}
}
