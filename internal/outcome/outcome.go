// Package outcome resolves unattended schedule slots into graded results:
// a quality roll, derived rewards and penalties, and a line of flavor for
// the camp log.
package outcome

import (
	"log/slog"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/rng"
	"github.com/talgya/camplife/internal/schedule"
	"github.com/talgya/camplife/internal/worldstate"
)

// QualityMultipliers scale XP per outcome quality, indexed by defs.Quality.
var QualityMultipliers = [defs.QualityCount]float64{1.5, 1.2, 1.0, 0.5, 0.2}

// MishapFatigueFactor inflates the fatigue cost when a slot goes wrong.
const MishapFatigueFactor = 1.5

// Routine is one resolved activity slot; consumed immediately by effect
// application and news emission, never stored.
type Routine struct {
	Phase        clock.DayPhase
	Category     string
	Activity     string
	Quality      defs.Quality
	XPGained     int
	Skill        string
	FatigueDelta int
	GoldDelta    int
	SupplyDelta  int
	MoraleDelta  int
	ConditionID  string // Empty when no mishap condition applied.
	Flavor       string

	Overridden     bool
	OverrideReason string
}

// Override replaces an activity's XP range for narrative-driven phases.
type Override struct {
	XP     defs.Range
	Reason string
}

// Resolver turns finished schedule phases into routine outcomes.
type Resolver struct {
	cfg   defs.OutcomeConfig
	store needs.Store
	world worldstate.Provider
	xp    needs.XPSink
	gold  needs.GoldLedger
	cond  needs.ConditionSink
	log   needs.Notifier
	news  needs.NewsFeed
	rand  rng.Source

	// Orchestrator overrides keyed by activity category.
	overrides map[string]Override
}

// NewResolver wires a resolver over its sinks.
func NewResolver(cfg defs.OutcomeConfig, store needs.Store, world worldstate.Provider,
	xp needs.XPSink, gold needs.GoldLedger, cond needs.ConditionSink,
	log needs.Notifier, news needs.NewsFeed, src rng.Source) *Resolver {
	return &Resolver{
		cfg:       cfg,
		store:     store,
		world:     world,
		xp:        xp,
		gold:      gold,
		cond:      cond,
		log:       log,
		news:      news,
		rand:      src,
		overrides: make(map[string]Override),
	}
}

// SetOverride replaces the XP range for a category until cleared.
func (r *Resolver) SetOverride(category string, o Override) {
	r.overrides[category] = o
}

// ClearOverride removes a category override.
func (r *Resolver) ClearOverride(category string) {
	delete(r.overrides, category)
}

// ResolvePhase processes a completed phase. A player-committed phase is
// skipped entirely: the player was doing something specific instead.
func (r *Resolver) ResolvePhase(plan schedule.Phase, day int) []Routine {
	if plan.PlayerCommitted {
		slog.Debug("routine resolution skipped, player committed",
			"phase", clock.PhaseName(plan.Phase), "commitment", plan.CommitmentTitle)
		return nil
	}

	var out []Routine
	for _, slot := range plan.Slots {
		if slot.Skipped || slot.Category == "" {
			continue
		}
		routine := r.resolveSlot(plan.Phase, slot)
		r.apply(routine, day)
		out = append(out, routine)
	}
	return out
}

// resolveSlot rolls one slot's outcome.
func (r *Resolver) resolveSlot(phase clock.DayPhase, slot schedule.Slot) Routine {
	cfg, ok := r.cfg.Activities[slot.Category]
	if !ok {
		cfg = defaultActivity(slot.Category)
	}

	quality := r.rollQuality()

	xpRange := cfg.XP
	overridden := false
	reason := ""
	if o, ok := r.overrides[slot.Category]; ok {
		xpRange = o.XP
		overridden = true
		reason = o.Reason
	}
	xp := int(float64(rng.Uniform(r.rand, xpRange.Min, xpRange.Max)) * QualityMultipliers[quality])

	fatigue := cfg.FatigueDelta
	if quality == defs.QualityMishap {
		fatigue = int(float64(fatigue) * MishapFatigueFactor)
	}

	goldDelta := 0
	if quality != defs.QualityMishap && cfg.GoldChance > 0 && rng.Chance(r.rand, cfg.GoldChance) {
		goldDelta = rng.Uniform(r.rand, cfg.Gold.Min, cfg.Gold.Max)
	}
	if quality == defs.QualityMishap && cfg.GoldLossChance > 0 && rng.Chance(r.rand, cfg.GoldLossChance) {
		goldDelta = -rng.Uniform(r.rand, cfg.GoldLoss.Min, cfg.GoldLoss.Max)
	}

	supply := rng.Uniform(r.rand, cfg.SupplyDeltas[quality].Min, cfg.SupplyDeltas[quality].Max)
	morale := rng.Uniform(r.rand, cfg.MoraleDeltas[quality].Min, cfg.MoraleDeltas[quality].Max)

	condition := ""
	if quality == defs.QualityMishap && cfg.MishapCondition != "" && rng.Chance(r.rand, cfg.MishapChance) {
		condition = cfg.MishapCondition
	}

	return Routine{
		Phase:          phase,
		Category:       slot.Category,
		Activity:       slot.Description,
		Quality:        quality,
		XPGained:       xp,
		Skill:          cfg.Skill,
		FatigueDelta:   fatigue,
		GoldDelta:      goldDelta,
		SupplyDelta:    supply,
		MoraleDelta:    morale,
		ConditionID:    condition,
		Flavor:         r.flavor(cfg, quality),
		Overridden:     overridden,
		OverrideReason: reason,
	}
}

// rollQuality draws the outcome quality from the weight set matching the
// company's current condition.
func (r *Resolver) rollQuality() defs.Quality {
	set := "default"
	if r.store.Get(needs.ResourceRest) < 30 {
		set = "fatigued"
	} else if r.store.Get(needs.ResourceMorale) < 30 {
		set = "lowMorale"
	}
	weights, ok := r.cfg.WeightSets[set]
	if !ok {
		weights = r.cfg.WeightSets["default"]
	}

	idx := rng.WeightedPick(r.rand, weights[:])
	if idx < 0 {
		return defs.QualityNormal
	}
	return defs.Quality(idx)
}

// flavor picks the narrative line: sea variant if the company is afloat
// and one exists, else the land list, else a stock phrase.
func (r *Resolver) flavor(cfg defs.ActivityOutcome, q defs.Quality) string {
	atSea := r.world.AnalyzeSituation().AtSea

	if atSea && len(cfg.FlavorSea[q]) > 0 {
		return pick(r.rand, cfg.FlavorSea[q])
	}
	if len(cfg.FlavorLand[q]) > 0 {
		return pick(r.rand, cfg.FlavorLand[q])
	}
	return stockFlavor(q)
}

func pick(src rng.Source, lines []string) string {
	return lines[src.Intn(len(lines))]
}

func stockFlavor(q defs.Quality) string {
	switch q {
	case defs.QualityExcellent:
		return "The day's work went better than anyone expected."
	case defs.QualityGood:
		return "A solid day's work."
	case defs.QualityPoor:
		return "The day dragged and little got done."
	case defs.QualityMishap:
		return "Something went wrong with the day's duties."
	default:
		return "Another day in camp."
	}
}

// apply pushes a routine's effects through the external sinks and emits
// one news line colored by quality.
func (r *Resolver) apply(routine Routine, day int) {
	if routine.XPGained > 0 && routine.Skill != "" {
		r.xp.ApplyXP(routine.Skill, routine.XPGained)
	}
	if routine.GoldDelta != 0 {
		r.gold.AddGold(routine.GoldDelta)
	}
	if routine.FatigueDelta != 0 {
		r.store.Modify(needs.ResourceRest, -routine.FatigueDelta)
	}
	if routine.SupplyDelta != 0 {
		r.store.Modify(needs.ResourceSupplies, routine.SupplyDelta)
	}
	if routine.MoraleDelta != 0 {
		r.store.Modify(needs.ResourceMorale, routine.MoraleDelta)
	}
	if routine.ConditionID != "" {
		r.cond.ApplyCondition(routine.ConditionID)
	}

	if r.log != nil {
		r.log.Notify(routine.Flavor, qualityColor(routine.Quality))
	}
	if r.news != nil {
		sev := needs.NewsInfo
		if routine.Quality == defs.QualityMishap {
			sev = needs.NewsWarning
		}
		r.news.Publish(needs.NewsEntry{
			Day:      day,
			Severity: sev,
			Category: "routine",
			Text:     routine.Flavor,
		})
	}
}

func qualityColor(q defs.Quality) string {
	switch q {
	case defs.QualityExcellent:
		return "gold"
	case defs.QualityGood:
		return "green"
	case defs.QualityPoor:
		return "grey"
	case defs.QualityMishap:
		return "red"
	default:
		return "white"
	}
}

// defaultActivity synthesizes a conservative configuration for a category
// the outcome tables don't cover.
func defaultActivity(category string) defs.ActivityOutcome {
	return defs.ActivityOutcome{
		Category:     category,
		Skill:        "",
		XP:           defs.Range{Min: 2, Max: 8},
		FatigueDelta: 4,
		MishapChance: 0.05,
	}
}
