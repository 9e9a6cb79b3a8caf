package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/worldstate"
)

type fakeWorld struct {
	sit worldstate.Situation
}

func (w *fakeWorld) AnalyzeSituation() worldstate.Situation { return w.sit }

type fakePressure struct {
	values        map[string]int
	sicknessDays  int
	lowDiscipline int
}

func (p *fakePressure) Get(resource string) int {
	if v, ok := p.values[resource]; ok {
		return v
	}
	return 60
}
func (p *fakePressure) DaysHighSickness() int  { return p.sicknessDays }
func (p *fakePressure) DaysLowDiscipline() int { return p.lowDiscipline }

type fakeCommitments struct {
	phase clock.DayPhase
	day   int
	title string
	held  bool
}

func (c *fakeCommitments) CommitmentFor(phase clock.DayPhase, day int) (string, bool) {
	if c.held && c.phase == phase && c.day == day {
		return c.title, true
	}
	return "", false
}

func testScheduleConfig() defs.ScheduleConfig {
	return defs.ScheduleConfig{
		Phases: map[clock.DayPhase]defs.PhasePlan{
			clock.PhaseDawn: {
				Slots: [2]defs.ActivitySlot{
					{Category: "formation", Description: "morning muster", Weight: 1.0},
					{Category: "training", Description: "drill", Weight: 1.0},
				},
				Flavor: "The camp stirs before sunrise.",
			},
			clock.PhaseMidday: {
				Slots: [2]defs.ActivitySlot{
					{Category: "labor", Description: "camp chores", Weight: 1.0},
					{Category: "foraging", Description: "forage detail", Weight: 1.0},
				},
			},
			clock.PhaseDusk: {
				Slots: [2]defs.ActivitySlot{
					{Category: "leisure", Description: "fires and dice", Weight: 1.0},
					{Category: "maintenance", Description: "kit repair", Weight: 1.0},
				},
			},
			clock.PhaseNight: {
				Slots: [2]defs.ActivitySlot{
					{Category: "watch", Description: "night watch", Weight: 1.0},
					{Category: "rest", Description: "sleep", Weight: 1.0},
				},
			},
		},
		ActivityMultipliers: map[string]map[string]float64{
			"quiet":   {"training": 0.5, "leisure": 1.5},
			"intense": {"leisure": 0, "training": 1.5},
		},
		BlankedBy: map[string]string{
			"Battle": "the company stands to arms",
		},
		BoostCategory: map[string]string{
			"Raiding": "foraging",
		},
		BoostFactor: 2.0,
	}
}

func newTestManager(sit worldstate.Situation, pressure *fakePressure, commitments CommitmentLookup) *Manager {
	if pressure == nil {
		pressure = &fakePressure{}
	}
	return NewManager(testScheduleConfig(), &fakeWorld{sit: sit}, pressure, commitments)
}

func TestBaselinePassesThroughUnderCalmConditions(t *testing.T) {
	m := newTestManager(worldstate.Situation{
		Lord:     worldstate.PeacetimeGarrison,
		Activity: worldstate.ActivityRoutine,
	}, nil, nil)

	p := m.ForPhase(clock.PhaseDawn, 1)

	assert.Equal(t, "formation", p.Slots[0].Category)
	assert.False(t, p.Slots[0].Skipped)
	assert.False(t, p.Slots[1].Skipped)
	assert.Empty(t, p.DeviationReason)
	assert.Equal(t, "The camp stirs before sunrise.", p.Flavor)
}

func TestIntenseActivityZeroMultiplierSkipsSlot(t *testing.T) {
	m := newTestManager(worldstate.Situation{
		Lord:     worldstate.Marching,
		Activity: worldstate.ActivityIntense,
	}, nil, nil)

	p := m.ForPhase(clock.PhaseDusk, 1)

	assert.True(t, p.Slots[0].Skipped, "leisure is cancelled during intense activity")
	assert.False(t, p.Slots[1].Skipped)
}

func TestBattleBlanksTheWholePhase(t *testing.T) {
	m := newTestManager(worldstate.Situation{
		Lord:     worldstate.Battle,
		Activity: worldstate.ActivityIntense,
	}, nil, nil)

	p := m.ForPhase(clock.PhaseMidday, 1)

	assert.True(t, p.Slots[0].Skipped)
	assert.True(t, p.Slots[1].Skipped)
	assert.Equal(t, "the company stands to arms", p.DeviationReason)
}

func TestRaidingBoostsForaging(t *testing.T) {
	m := newTestManager(worldstate.Situation{
		Lord:     worldstate.Raiding,
		Activity: worldstate.ActivityRoutine,
	}, nil, nil)

	p := m.ForPhase(clock.PhaseMidday, 1)

	assert.Equal(t, 2.0, p.Slots[1].Weight)
	assert.Equal(t, 1.0, p.Slots[0].Weight)
}

func TestSurvivalModeOverridesEverythingButForagingAndRest(t *testing.T) {
	pressure := &fakePressure{values: map[string]int{
		needs.ResourceSupplies: 15,
	}}
	m := newTestManager(worldstate.Situation{
		Lord:     worldstate.PeacetimeGarrison,
		Activity: worldstate.ActivityRoutine,
	}, pressure, nil)

	dawn := m.ForPhase(clock.PhaseDawn, 1)
	assert.True(t, dawn.Slots[0].Skipped)
	assert.True(t, dawn.Slots[1].Skipped)
	assert.Equal(t, "the company is on starvation footing", dawn.DeviationReason)

	midday := m.ForPhase(clock.PhaseMidday, 1)
	assert.True(t, midday.Slots[0].Skipped, "labor yields to survival")
	assert.False(t, midday.Slots[1].Skipped, "foraging carries on")

	night := m.ForPhase(clock.PhaseNight, 1)
	assert.False(t, night.Slots[1].Skipped, "rest carries on")
}

func TestExhaustionSkipsFormations(t *testing.T) {
	pressure := &fakePressure{values: map[string]int{
		needs.ResourceRest: 25,
	}}
	m := newTestManager(worldstate.Situation{
		Lord:     worldstate.PeacetimeGarrison,
		Activity: worldstate.ActivityRoutine,
	}, pressure, nil)

	p := m.ForPhase(clock.PhaseDawn, 1)

	assert.True(t, p.Slots[0].Skipped)
	assert.False(t, p.Slots[1].Skipped)
}

func TestLowMoraleKeepsOnlyFirstSlot(t *testing.T) {
	pressure := &fakePressure{values: map[string]int{
		needs.ResourceMorale: 10,
	}}
	m := newTestManager(worldstate.Situation{
		Lord:     worldstate.PeacetimeGarrison,
		Activity: worldstate.ActivityRoutine,
	}, pressure, nil)

	p := m.ForPhase(clock.PhaseMidday, 1)

	assert.False(t, p.Slots[0].Skipped)
	assert.True(t, p.Slots[1].Skipped)
}

func TestCommitmentMarksPhase(t *testing.T) {
	commitments := &fakeCommitments{
		phase: clock.PhaseDusk,
		day:   4,
		title: "Dice at the quartermaster's fire",
		held:  true,
	}
	m := newTestManager(worldstate.Situation{
		Lord:     worldstate.PeacetimeGarrison,
		Activity: worldstate.ActivityRoutine,
	}, nil, commitments)

	committed := m.ForPhase(clock.PhaseDusk, 4)
	assert.True(t, committed.PlayerCommitted)
	assert.Equal(t, "Dice at the quartermaster's fire", committed.CommitmentTitle)

	other := m.ForPhase(clock.PhaseDusk, 5)
	assert.False(t, other.PlayerCommitted)
}

func TestCurrentCachesUntilInvalidated(t *testing.T) {
	world := &fakeWorld{sit: worldstate.Situation{
		Lord:     worldstate.PeacetimeGarrison,
		Activity: worldstate.ActivityRoutine,
	}}
	m := NewManager(testScheduleConfig(), world, &fakePressure{}, nil)

	first := m.Current(clock.PhaseDawn, 1)
	assert.False(t, first.Slots[1].Skipped)

	// The world shifts but the cache still answers until invalidated.
	world.sit.Lord = worldstate.Battle
	cached := m.Current(clock.PhaseDawn, 1)
	assert.False(t, cached.Slots[1].Skipped)

	m.Invalidate()
	fresh := m.Current(clock.PhaseDawn, 1)
	assert.True(t, fresh.Slots[1].Skipped)

	// A phase change always recomputes.
	next := m.Current(clock.PhaseMidday, 1)
	assert.True(t, next.Slots[0].Skipped)
}
