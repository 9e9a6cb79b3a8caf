package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRosterCountsNeverGoNegative(t *testing.T) {
	r := NewRoster(10)

	assert.Equal(t, 5, r.AddSick(5))
	assert.Equal(t, 5, r.AddWounded(5))
	// Nobody left fit; further additions are bounded to zero.
	assert.Equal(t, 0, r.AddSick(3))
	assert.Equal(t, 0, r.AddMissing(3))
	assert.Equal(t, 0, r.FitForDuty())

	r.RecoverSick(100)
	r.RecoverWounded(100)
	assert.Equal(t, 0, r.Sick)
	assert.Equal(t, 0, r.Wounded)
	assert.Equal(t, 10, r.FitForDuty())
}

func TestKillSickShrinksTotal(t *testing.T) {
	r := NewRoster(20)
	r.AddSick(4)

	killed := r.KillSick(10)

	assert.Equal(t, 4, killed)
	assert.Equal(t, 0, r.Sick)
	assert.Equal(t, 4, r.Dead)
	assert.Equal(t, 16, r.Total)
}

func TestMissingSoldiersDesertAfterGracePeriod(t *testing.T) {
	r := NewRoster(30)
	r.AddMissing(3)

	assert.Equal(t, 3, r.Missing())
	assert.Equal(t, 0, r.AgeMissing(1))
	assert.Equal(t, 0, r.AgeMissing(1))
	// Third day missing: all three written off at once.
	assert.Equal(t, 3, r.AgeMissing(1))
	assert.Equal(t, 0, r.Missing())
	assert.Equal(t, 3, r.Deserted)
	assert.Equal(t, 27, r.Total)
}

func TestAgeMissingMultiDaySkip(t *testing.T) {
	r := NewRoster(30)
	r.AddMissing(2)

	assert.Equal(t, 2, r.AgeMissing(10))
	assert.Equal(t, 0, r.Missing())
}
