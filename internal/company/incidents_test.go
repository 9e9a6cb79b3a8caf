package company

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/rng"
)

func testIncidentDefs() []defs.IncidentDefinition {
	return []defs.IncidentDefinition{
		{
			ID:       "found-berries",
			Category: "color",
			Weight:   10,
			Severity: 1,
			Text:     "Foragers came back with wild berries.",
			Effects:  map[string]int{needs.ResourceSupplies: 2},
		},
		{
			ID:           "brawl-reprisal",
			Category:     "problems",
			Weight:       10,
			Severity:     2,
			Text:         "Last week's brawl flared back up.",
			RequiresFlag: "brawl_bad_blood",
			Effects:      map[string]int{needs.ResourceDiscipline: -4},
		},
	}
}

func TestIncidentRequiresFlagGating(t *testing.T) {
	store := needs.NewMemoryStore()
	e := NewIncidentEngine(testIncidentDefs(), store, nil, rng.New(1))

	assert.True(t, e.eligible(&e.defs[0]))
	assert.False(t, e.eligible(&e.defs[1]))

	e.Flags["brawl_bad_blood"] = true
	assert.True(t, e.eligible(&e.defs[1]))
}

func TestIncidentCooldownBlocksRepeats(t *testing.T) {
	store := needs.NewMemoryStore()
	e := NewIncidentEngine(testIncidentDefs(), store, nil, rng.New(2))

	e.apply(&e.defs[0], 1)
	assert.Equal(t, DefaultIncidentCooldownDays, e.Cooldowns["found-berries"])
	assert.False(t, e.eligible(&e.defs[0]))

	e.EndDay()
	e.EndDay()
	assert.False(t, e.eligible(&e.defs[0]))
	e.EndDay()
	assert.True(t, e.eligible(&e.defs[0]))
	assert.NotContains(t, e.Cooldowns, "found-berries")
}

func TestIncidentApplyEffectsFlagAndNews(t *testing.T) {
	store := needs.NewMemoryStore()
	news := needs.NewMemoryNews()
	e := NewIncidentEngine(nil, store, news, rng.New(3))

	d := &defs.IncidentDefinition{
		ID:       "brawl-in-lines",
		Category: "problems",
		Severity: 3,
		Text:     "A brawl broke out over a dice game.",
		SetsFlag: "brawl_bad_blood",
		Effects:  map[string]int{needs.ResourceDiscipline: -5, needs.ResourceMorale: -3},
	}
	before := store.Get(needs.ResourceDiscipline)
	e.apply(d, 4)

	assert.Equal(t, before-5, store.Get(needs.ResourceDiscipline))
	assert.True(t, e.Flags["brawl_bad_blood"])
	assert.Len(t, news.Entries, 1)
	assert.Equal(t, needs.NewsCritical, news.Entries[0].Severity)
	assert.Equal(t, 4, news.Entries[0].Day)
}

func TestProblemIncidentsWeighLessWhenSuppliesShort(t *testing.T) {
	store := needs.NewMemoryStore()
	e := NewIncidentEngine(testIncidentDefs(), store, nil, rng.New(4))

	problem := &e.defs[1]
	full := e.weight(problem)
	store.Set(needs.ResourceSupplies, 25)
	assert.Equal(t, full*0.5, e.weight(problem))
}

func TestRunDayRespectsDailyBounds(t *testing.T) {
	store := needs.NewMemoryStore()
	news := needs.NewMemoryNews()
	e := NewIncidentEngine(testIncidentDefs(), store, news, rng.New(5))
	e.Flags["brawl_bad_blood"] = true

	for day := 1; day <= 20; day++ {
		fired := e.RunDay(day)
		assert.LessOrEqual(t, len(fired), e.MaxPerDay)
		e.EndDay()
	}
}
