package opportunity

import (
	"log/slog"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/rng"
)

// RiskResult reports how a risky attempt went.
type RiskResult struct {
	Attempted      bool // False when no risk applied (off duty or no settings).
	Caught         bool
	OrderComprised bool // The standing order failed because of the absence.
}

// OrderFailureDisciplinePenalty is the extra discipline hit when being
// caught also compromises the player's standing order.
const OrderFailureDisciplinePenalty = 3

// AttemptRisky rolls the detection mechanic for performing an off-duty
// opportunity while on duty. Off duty, or with no detection settings on
// the definition, the attempt always succeeds cleanly.
func (g *Generator) AttemptRisky(def *defs.OpportunityDefinition, now clock.CampTime) RiskResult {
	state := g.player.PlayerState()
	if !state.OnDuty || def.Detection == nil {
		return RiskResult{}
	}

	chance := def.Detection.BaseChance
	if now.Phase() == clock.PhaseNight {
		chance += def.Detection.NightModifier
	}
	if g.rep.Reputation() > 70 {
		chance += def.Detection.HighRepModifier
	}
	chance = rng.Clamp(chance, 0, 1)

	if !rng.Chance(g.rand, chance) {
		return RiskResult{Attempted: true}
	}

	// Caught: reputation and discipline consequences, plus the chance the
	// abandoned order goes wrong too.
	g.rep.AddReputation(def.Caught.ReputationDelta)
	g.store.Modify(needs.ResourceDiscipline, def.Caught.DisciplineDelta)

	result := RiskResult{Attempted: true, Caught: true}
	if rng.Chance(g.rand, def.Caught.OrderFailureRisk) {
		result.OrderComprised = true
		g.store.Modify(needs.ResourceDiscipline, -OrderFailureDisciplinePenalty)
	}

	slog.Info("caught off-task",
		"opportunity", def.ID,
		"order_compromised", result.OrderComprised,
	)
	return result
}
