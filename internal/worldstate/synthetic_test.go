package worldstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/camplife/internal/clock"
)

func TestSyntheticProviderIsDeterministicPerSeed(t *testing.T) {
	now := clock.CampTime{Day: 0, Hour: 6}
	a := NewSyntheticProvider(42, func() clock.CampTime { return now })
	b := NewSyntheticProvider(42, func() clock.CampTime { return now })

	for day := 0; day < 60; day++ {
		now = clock.CampTime{Day: day, Hour: 12}
		assert.Equal(t, a.AnalyzeSituation(), b.AnalyzeSituation(), "day %d", day)
	}
}

func TestSyntheticProviderStableWithinADay(t *testing.T) {
	now := clock.CampTime{}
	p := NewSyntheticProvider(7, func() clock.CampTime { return now })

	now = clock.CampTime{Day: 9, Hour: 6}
	morning := p.AnalyzeSituation()
	now = clock.CampTime{Day: 9, Hour: 22}
	evening := p.AnalyzeSituation()

	assert.Equal(t, morning.Lord, evening.Lord)
	assert.Equal(t, morning.Activity, evening.Activity)
	assert.Equal(t, morning.AtSea, evening.AtSea)
}

func TestWarringLordsAreNeverQuiet(t *testing.T) {
	now := clock.CampTime{}
	p := NewSyntheticProvider(3, func() clock.CampTime { return now })

	for day := 0; day < 200; day++ {
		now = clock.CampTime{Day: day, Hour: 12}
		sit := p.AnalyzeSituation()
		if sit.Lord == Battle || sit.AtSiege() {
			assert.NotEqual(t, ActivityQuiet, sit.Activity, "day %d", day)
		}
	}
}

func TestAtSiegeCoversBothStances(t *testing.T) {
	assert.True(t, Situation{Lord: SiegeAttacker}.AtSiege())
	assert.True(t, Situation{Lord: SiegeDefender}.AtSiege())
	assert.False(t, Situation{Lord: Marching}.AtSiege())
}
