package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/rng"
	"github.com/talgya/camplife/internal/schedule"
	"github.com/talgya/camplife/internal/worldstate"
)

type stubWorld struct {
	sit worldstate.Situation
}

func (w *stubWorld) AnalyzeSituation() worldstate.Situation { return w.sit }

type recordingXP struct {
	bySkill map[string]int
}

func (x *recordingXP) ApplyXP(skill string, amount int) {
	if x.bySkill == nil {
		x.bySkill = make(map[string]int)
	}
	x.bySkill[skill] += amount
}

type recordingConditions struct {
	applied []string
}

func (c *recordingConditions) ApplyCondition(id string) { c.applied = append(c.applied, id) }

func testOutcomeConfig() defs.OutcomeConfig {
	return defs.OutcomeConfig{
		Activities: map[string]defs.ActivityOutcome{
			"training": {
				Category:        "training",
				Skill:           "weapons",
				XP:              defs.Range{Min: 10, Max: 10},
				FatigueDelta:    6,
				MishapChance:    1.0,
				MishapCondition: "training_sprain",
				FlavorLand: [defs.QualityCount][]string{
					{"Drill sharp as a razor."},
					{"Good work in the yard."},
					{"An ordinary drill."},
					{"Sloppy lines all morning."},
					{"A man went down in the press."},
				},
				FlavorSea: [defs.QualityCount][]string{
					2: {"Cutlass drill between the masts."},
				},
			},
			"foraging": {
				Category:   "foraging",
				Skill:      "scouting",
				XP:         defs.Range{Min: 4, Max: 4},
				GoldChance: 1.0,
				Gold:       defs.Range{Min: 3, Max: 3},
				SupplyDeltas: [defs.QualityCount]defs.Range{
					{Min: 5, Max: 5}, {Min: 3, Max: 3}, {Min: 2, Max: 2}, {Min: 1, Max: 1}, {Min: -2, Max: -2},
				},
			},
		},
		WeightSets: map[string][defs.QualityCount]float64{
			"default":   {10, 25, 45, 15, 5},
			"fatigued":  {4, 15, 41, 27, 13},
			"lowMorale": {5, 18, 42, 23, 12},
		},
	}
}

type outcomeEnv struct {
	res   *Resolver
	store *needs.MemoryStore
	world *stubWorld
	xp    *recordingXP
	gold  *needs.MemoryLedger
	cond  *recordingConditions
	news  *needs.MemoryNews
}

func newOutcomeEnv(seed int64) *outcomeEnv {
	env := &outcomeEnv{
		store: needs.NewMemoryStore(),
		world: &stubWorld{},
		xp:    &recordingXP{},
		gold:  &needs.MemoryLedger{Balance: 50},
		cond:  &recordingConditions{},
		news:  needs.NewMemoryNews(),
	}
	env.res = NewResolver(testOutcomeConfig(), env.store, env.world,
		env.xp, env.gold, env.cond, needs.LogNotifier{}, env.news, rng.New(seed))
	return env
}

func trainingSlot() schedule.Slot {
	return schedule.Slot{Category: "training", Description: "drill", Weight: 1}
}

func phaseWith(slots ...schedule.Slot) schedule.Phase {
	p := schedule.Phase{Phase: clock.PhaseDawn}
	copy(p.Slots[:], slots)
	return p
}

func TestCommittedPhaseIsNotResolved(t *testing.T) {
	env := newOutcomeEnv(1)
	plan := phaseWith(trainingSlot())
	plan.PlayerCommitted = true

	out := env.res.ResolvePhase(plan, 1)

	assert.Nil(t, out)
	assert.Empty(t, env.xp.bySkill)
	assert.Empty(t, env.news.Entries)
}

func TestSkippedSlotsAreIgnored(t *testing.T) {
	env := newOutcomeEnv(1)
	skipped := trainingSlot()
	skipped.Skipped = true

	out := env.res.ResolvePhase(phaseWith(skipped), 1)

	assert.Empty(t, out)
}

func TestResolveAppliesEffectsThroughSinks(t *testing.T) {
	env := newOutcomeEnv(3)
	restBefore := env.store.Get(needs.ResourceRest)

	out := env.res.ResolvePhase(phaseWith(trainingSlot()), 2)

	require.Len(t, out, 1)
	r := out[0]
	assert.Equal(t, "training", r.Category)
	if r.XPGained > 0 {
		assert.Equal(t, r.XPGained, env.xp.bySkill["weapons"])
	}
	// Fatigue lands as a rest deduction.
	assert.Equal(t, restBefore-r.FatigueDelta, env.store.Get(needs.ResourceRest))
	assert.NotEmpty(t, r.Flavor)
	assert.Len(t, env.news.Entries, 1)
}

func TestXPScalesWithQualityMultiplier(t *testing.T) {
	env := newOutcomeEnv(1)

	for i := 0; i < 50; i++ {
		out := env.res.ResolvePhase(phaseWith(trainingSlot()), i)
		require.Len(t, out, 1)
		r := out[0]
		// XP range is pinned at 10, so the multiplier is exact.
		assert.Equal(t, int(10*QualityMultipliers[r.Quality]), r.XPGained)
	}
}

func TestMishapInflatesFatigueAndRollsCondition(t *testing.T) {
	env := newOutcomeEnv(1)

	var mishap *Routine
	for i := 0; i < 200 && mishap == nil; i++ {
		out := env.res.ResolvePhase(phaseWith(trainingSlot()), i)
		require.Len(t, out, 1)
		if out[0].Quality == defs.QualityMishap {
			r := out[0]
			mishap = &r
		}
	}
	require.NotNil(t, mishap, "a mishap should occur within 200 phases at 5% weight")

	assert.Equal(t, 9, mishap.FatigueDelta)
	// MishapChance is 1.0, so the condition always lands.
	assert.Equal(t, "training_sprain", mishap.ConditionID)
	assert.Contains(t, env.cond.applied, "training_sprain")
}

func TestForagingPaysGoldExceptOnMishap(t *testing.T) {
	env := newOutcomeEnv(2)
	slot := schedule.Slot{Category: "foraging", Description: "forage detail", Weight: 1}

	for i := 0; i < 100; i++ {
		out := env.res.ResolvePhase(phaseWith(slot), i)
		require.Len(t, out, 1)
		r := out[0]
		if r.Quality == defs.QualityMishap {
			assert.LessOrEqual(t, r.GoldDelta, 0)
			assert.Equal(t, -2, r.SupplyDelta)
		} else {
			assert.Equal(t, 3, r.GoldDelta)
			assert.Positive(t, r.SupplyDelta)
		}
	}
}

func TestQualityDistributionFollowsWeights(t *testing.T) {
	env := newOutcomeEnv(11)

	counts := [defs.QualityCount]int{}
	trials := 4000
	for i := 0; i < trials; i++ {
		counts[env.res.rollQuality()]++
	}

	// Default weights: 10/25/45/15/5.
	assert.InDelta(t, 0.10, float64(counts[defs.QualityExcellent])/float64(trials), 0.03)
	assert.InDelta(t, 0.45, float64(counts[defs.QualityNormal])/float64(trials), 0.03)
	assert.InDelta(t, 0.05, float64(counts[defs.QualityMishap])/float64(trials), 0.02)
}

func TestFatigueShiftsQualityWeights(t *testing.T) {
	env := newOutcomeEnv(12)
	env.store.Set(needs.ResourceRest, 20)

	counts := [defs.QualityCount]int{}
	trials := 4000
	for i := 0; i < trials; i++ {
		counts[env.res.rollQuality()]++
	}

	// Fatigued weights: 4/15/41/27/13 — mishaps far more common.
	assert.InDelta(t, 0.13, float64(counts[defs.QualityMishap])/float64(trials), 0.03)
	assert.InDelta(t, 0.04, float64(counts[defs.QualityExcellent])/float64(trials), 0.02)
}

func TestOverrideReplacesXPRange(t *testing.T) {
	env := newOutcomeEnv(4)
	env.res.SetOverride("training", Override{
		XP:     defs.Range{Min: 0, Max: 0},
		Reason: "the company drilled for show, not sweat",
	})

	out := env.res.ResolvePhase(phaseWith(trainingSlot()), 1)

	require.Len(t, out, 1)
	assert.True(t, out[0].Overridden)
	assert.Zero(t, out[0].XPGained)
	assert.Equal(t, "the company drilled for show, not sweat", out[0].OverrideReason)

	env.res.ClearOverride("training")
	out = env.res.ResolvePhase(phaseWith(trainingSlot()), 2)
	assert.False(t, out[0].Overridden)
}

func TestSeaFlavorPreferredAfloat(t *testing.T) {
	env := newOutcomeEnv(5)
	env.world.sit.AtSea = true

	seen := false
	for i := 0; i < 100 && !seen; i++ {
		out := env.res.ResolvePhase(phaseWith(trainingSlot()), i)
		require.Len(t, out, 1)
		if out[0].Quality == defs.QualityNormal {
			assert.Equal(t, "Cutlass drill between the masts.", out[0].Flavor)
			seen = true
		}
	}
	assert.True(t, seen)
}

func TestUnknownCategoryUsesConservativeDefaults(t *testing.T) {
	env := newOutcomeEnv(6)
	slot := schedule.Slot{Category: "watch", Description: "night watch", Weight: 1}

	out := env.res.ResolvePhase(phaseWith(slot), 1)

	require.Len(t, out, 1)
	assert.Empty(t, out[0].Skill)
	assert.NotEmpty(t, out[0].Flavor)
}
