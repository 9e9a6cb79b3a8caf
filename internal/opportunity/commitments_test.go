package opportunity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/needs"
)

func TestCommitSchedulesNextValidPhase(t *testing.T) {
	env := newTestEnv(1)
	d := &env.gen.defs[1] // any phase

	c := env.gen.Commit(d, dawn(2))

	assert.Equal(t, clock.PhaseMidday, c.Phase)
	assert.Equal(t, 2, c.Day)
	assert.Equal(t, 1, env.gen.history.ByID[d.ID].Engaged)
}

func TestCommitRollsToTomorrowAcrossMidnight(t *testing.T) {
	env := newTestEnv(1)
	env.gen.defs[1].ValidPhases = []clock.DayPhase{clock.PhaseDawn}

	c := env.gen.Commit(&env.gen.defs[1], clock.CampTime{Day: 2, Hour: clock.HourMidday})

	assert.Equal(t, clock.PhaseDawn, c.Phase)
	assert.Equal(t, 3, c.Day)
}

func TestCommitFixedHourAlreadyPassedSchedulesTomorrow(t *testing.T) {
	env := newTestEnv(1)
	noon := clock.HourMidday
	env.gen.defs[2].FixedHour = &noon

	c := env.gen.Commit(&env.gen.defs[2], clock.CampTime{Day: 5, Hour: 12})
	assert.Equal(t, clock.PhaseMidday, c.Phase)
	assert.Equal(t, 6, c.Day)

	c = env.gen.Commit(&env.gen.defs[2], clock.CampTime{Day: 5, Hour: 8})
	assert.Equal(t, 5, c.Day)
}

func TestCommitFixedHourInsideCurrentPhaseStillFires(t *testing.T) {
	env := newTestEnv(1)
	midMorning := 10 // Dawn phase, after the Dawn boundary.
	env.gen.defs[2].FixedHour = &midMorning

	c := env.gen.Commit(&env.gen.defs[2], clock.CampTime{Day: 3, Hour: 7})
	assert.Equal(t, clock.PhaseDawn, c.Phase)
	assert.Equal(t, 4, c.Day)

	for day := 3; day <= 5; day++ {
		for _, h := range []int{clock.HourNight, clock.HourDawn, clock.HourMidday, clock.HourDusk} {
			env.gen.Commitments.FireDue(clock.CampTime{Day: day, Hour: h})
		}
	}
	require.Len(t, env.queue.Events, 1)
	assert.Empty(t, env.gen.Commitments.Active)
}

func TestRecommitReplacesExistingCommitment(t *testing.T) {
	env := newTestEnv(1)
	d := &env.gen.defs[1]

	env.gen.Commit(d, dawn(2))
	env.gen.Commit(d, clock.CampTime{Day: 3, Hour: clock.HourDawn})

	assert.Len(t, env.gen.Commitments.Active, 1)
	assert.Equal(t, 3, env.gen.Commitments.Active[0].Day)
}

func TestFireDueDeliversExactlyOnceUnderDuplicateTicks(t *testing.T) {
	env := newTestEnv(1)
	d := &env.gen.defs[1]
	env.gen.Commit(d, dawn(2))

	due := clock.CampTime{Day: 2, Hour: clock.HourMidday}
	env.gen.Commitments.FireDue(due)
	env.gen.Commitments.FireDue(due)
	env.gen.Commitments.FireDue(due)

	require.Len(t, env.queue.Events, 1)
	assert.Equal(t, "camp_fireside", env.queue.Events[0].DecisionID)
	assert.Empty(t, env.gen.Commitments.Active)
}

func TestFireDueIgnoresNonBoundaryHours(t *testing.T) {
	env := newTestEnv(1)
	env.gen.Commit(&env.gen.defs[1], dawn(2))

	env.gen.Commitments.FireDue(clock.CampTime{Day: 2, Hour: 14})

	assert.Empty(t, env.queue.Events)
	assert.Len(t, env.gen.Commitments.Active, 1)
}

func TestFireDueOnlyFiresMatchingPhaseAndDay(t *testing.T) {
	env := newTestEnv(1)
	env.gen.Commit(&env.gen.defs[1], dawn(2)) // due midday day 2

	env.gen.Commitments.FireDue(clock.CampTime{Day: 2, Hour: clock.HourDawn})
	env.gen.Commitments.FireDue(clock.CampTime{Day: 3, Hour: clock.HourMidday})
	assert.Empty(t, env.queue.Events)

	env.gen.Commitments.FireDue(clock.CampTime{Day: 2, Hour: clock.HourMidday})
	assert.Len(t, env.queue.Events, 1)
}

func TestCancelCostsRestAndRemoves(t *testing.T) {
	env := newTestEnv(1)
	d := &env.gen.defs[1]
	env.gen.Commit(d, dawn(2))
	restBefore := env.store.Get(needs.ResourceRest)

	assert.True(t, env.gen.Cancel(d.ID))
	assert.Equal(t, restBefore-CancelRestlessnessCost, env.store.Get(needs.ResourceRest))
	assert.Empty(t, env.gen.Commitments.Active)

	// Nothing left to cancel.
	assert.False(t, env.gen.Cancel(d.ID))
	assert.Equal(t, restBefore-CancelRestlessnessCost, env.store.Get(needs.ResourceRest))
}

func TestCommitInvalidatesGeneratedList(t *testing.T) {
	env := newTestEnv(1)

	first := env.gen.Generate(dawn(2))
	require.NotEmpty(t, first)

	env.gen.Commit(first[0].Def, dawn(2))
	second := env.gen.Generate(dawn(2))

	assert.NotEqual(t, first, second)
}

func TestCommitmentLookupMatchesScheduledSlot(t *testing.T) {
	env := newTestEnv(1)
	d := &env.gen.defs[1]
	env.gen.Commit(d, dawn(2))

	title, ok := env.gen.Commitments.CommitmentFor(clock.PhaseMidday, 2)
	require.True(t, ok)
	assert.Equal(t, d.Title, title)

	_, ok = env.gen.Commitments.CommitmentFor(clock.PhaseDusk, 2)
	assert.False(t, ok)
}
