package opportunity

import (
	"log/slog"
	"sort"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/rng"
	"github.com/talgya/camplife/internal/schedule"
	"github.com/talgya/camplife/internal/worldstate"
)

// Candidate is a scored runtime copy of an opportunity definition.
type Candidate struct {
	Def         *defs.OpportunityDefinition
	Score       float64
	IsScheduled bool // Set once the player commits to it.
}

// Generator produces the per-phase opportunity list.
type Generator struct {
	defs    []defs.OpportunityDefinition
	cfg     defs.GeneratorConfig
	history *History
	tracker PreferenceTracker

	schedule *schedule.Manager
	world    worldstate.Provider
	store    needs.Store
	gold     needs.GoldLedger
	rep      needs.ReputationLedger
	player   PlayerProvider
	muster   MusterProvider
	flags    FlagReader
	rand     rng.Source

	Commitments *Scheduler

	// Memoization per day-phase, with generation-counter invalidation.
	generation uint64
	cached     []Candidate
	cachedKey  cacheKey
	cachedGen  uint64
	hasCache   bool
}

type cacheKey struct {
	day   int
	phase clock.DayPhase
}

// NewGenerator wires the opportunity generator.
func NewGenerator(
	definitions []defs.OpportunityDefinition,
	cfg defs.GeneratorConfig,
	history *History,
	tracker PreferenceTracker,
	sched *schedule.Manager,
	world worldstate.Provider,
	store needs.Store,
	gold needs.GoldLedger,
	rep needs.ReputationLedger,
	player PlayerProvider,
	muster MusterProvider,
	queue needs.DeliveryQueue,
	src rng.Source,
) *Generator {
	g := &Generator{
		defs:     definitions,
		cfg:      cfg,
		history:  history,
		tracker:  tracker,
		schedule: sched,
		world:    world,
		store:    store,
		gold:     gold,
		rep:      rep,
		player:   player,
		muster:   muster,
		rand:     src,
	}
	g.Commitments = newScheduler(g, queue, store)
	return g
}

// Generate returns the opportunities to offer for the current phase,
// memoized per day-phase. Two calls in the same phase with no state
// change return the identical list.
func (g *Generator) Generate(now clock.CampTime) []Candidate {
	key := cacheKey{day: now.Day, phase: now.Phase()}
	if g.hasCache && g.cachedKey == key && g.cachedGen == g.generation {
		return g.cached
	}

	out := g.generate(now)
	g.cached = out
	g.cachedKey = key
	g.cachedGen = g.generation
	g.hasCache = true
	return out
}

// Invalidate drops the memoized list. Called on phase change and on any
// commitment mutation.
func (g *Generator) Invalidate() {
	g.generation++
}

// AttachSchedule wires the schedule manager after construction; the
// manager itself depends on the commitment lookup created here.
func (g *Generator) AttachSchedule(m *schedule.Manager) {
	g.schedule = m
}

// History exposes the adaptive memory, mainly for persistence.
func (g *Generator) History() *History {
	return g.history
}

// RestoreHistory replaces the adaptive memory wholesale on session load.
func (g *Generator) RestoreHistory(h *History) {
	if h != nil {
		g.history = h
	}
}

func (g *Generator) generate(now clock.CampTime) []Candidate {
	ctx := g.buildContext(now)

	// Hard blocks: the first days of service and muster day itself offer
	// no side opportunities at all.
	if ctx.Player.GraceDaysLeft > 0 || ctx.Muster.IsMusterDay {
		return nil
	}

	budget := g.budget(ctx)
	if budget <= 0 {
		return nil
	}

	candidates := g.candidates(ctx)
	for i := range candidates {
		candidates[i].Score = g.score(candidates[i].Def, ctx)
	}

	// Keep scorers over the threshold, best first, budget many.
	kept := candidates[:0]
	for _, c := range candidates {
		if c.Score >= g.cfg.ScoreThreshold {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })
	if len(kept) > budget {
		kept = kept[:budget]
	}

	for _, c := range kept {
		g.history.RecordPresented(c.Def, now)
		g.tracker.Observe(c.Def.Type, false)
	}

	slog.Debug("opportunities generated",
		"phase", clock.PhaseName(now.Phase()),
		"day", now.Day,
		"budget", budget,
		"offered", len(kept),
	)
	return kept
}

// budget computes how many opportunities this phase may offer. Supplies
// under 20 force survival mode: exactly one, whatever else applies.
func (g *Generator) budget(ctx Context) int {
	b := g.cfg.Budget(worldstate.SituationName(ctx.Situation.Lord), ctx.Time.Phase())

	if ctx.Player.OnProbation {
		b--
	}
	if ctx.Supplies < 30 {
		b--
	}
	if ctx.Player.OnDuty {
		b = b / 2
		if b < 1 {
			b = 1
		}
	}
	if ctx.Supplies < 20 {
		b = 1
	}
	return rng.Clamp(b, 0, g.cfg.MaxPerPhase)
}

// candidates runs the eligibility filter chain over every definition.
func (g *Generator) candidates(ctx Context) []Candidate {
	var out []Candidate
	for i := range g.defs {
		d := &g.defs[i]
		if !g.eligible(d, ctx) {
			continue
		}
		out = append(out, Candidate{Def: d})
	}
	return out
}

func (g *Generator) eligible(d *defs.OpportunityDefinition, ctx Context) bool {
	if ctx.Player.Tier < d.TierMin || ctx.Player.Tier > d.TierMax {
		return false
	}
	if hours, ever := g.history.HoursSinceIDShown(d.ID, ctx.Time); ever && hours < d.CooldownHours {
		return false
	}
	if !d.PhaseValid(ctx.Time.Phase()) {
		return false
	}
	if d.SeaOnly && !ctx.Situation.AtSea {
		return false
	}
	if d.LandOnly && ctx.Situation.AtSea {
		return false
	}
	if ctx.Player.OnDuty && d.CompatFor(ctx.Player.DutyKind) == defs.CompatBlocked {
		return false
	}
	if d.Type == defs.TypeTraining && ctx.Player.Injured {
		return false
	}
	if d.Type == defs.TypeEconomic && d.HasTag("gambling") && ctx.Gold < 20 {
		return false
	}
	if d.RequiresFlag != "" && !g.flag(d.RequiresFlag) {
		return false
	}
	if d.BlockedFlag != "" && g.flag(d.BlockedFlag) {
		return false
	}
	return true
}

// FlagReader answers story-flag lookups for flag-gated opportunities.
// Wired to the incident engine's flag set.
type FlagReader interface {
	Flag(name string) bool
}

// SetFlagReader wires the story-flag source. Left unset, flag-gated
// definitions never appear.
func (g *Generator) SetFlagReader(fr FlagReader) { g.flags = fr }

func (g *Generator) flag(name string) bool {
	if g.flags == nil {
		return false
	}
	return g.flags.Flag(name)
}
