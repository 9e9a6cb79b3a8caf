// Package company simulates the player's company day by day: roster health,
// pressure counters, camp incidents and crisis detection.
package company

import "github.com/talgya/camplife/internal/rng"

// Roster tracks the company's soldiers by condition. fitForDuty is always
// derived; every count stays non-negative.
type Roster struct {
	Total        int
	Sick         int
	Wounded      int
	Dead         int // Confirmed dead this campaign.
	Deserted     int // Confirmed desertions this campaign.

	// Missing soldiers awaiting the desertion grace period, as days-missing
	// counters (one entry per soldier).
	MissingDays []int
}

// MissingGraceDays is how long a missing soldier stays "missing" before
// being written off as a deserter.
const MissingGraceDays = 3

// NewRoster creates a roster of the given strength, all fit for duty.
func NewRoster(total int) *Roster {
	if total < 0 {
		total = 0
	}
	return &Roster{Total: total}
}

// Missing returns the count of soldiers currently unaccounted for.
func (r *Roster) Missing() int {
	return len(r.MissingDays)
}

// FitForDuty returns total minus sick, wounded and missing, floored at 0.
func (r *Roster) FitForDuty() int {
	fit := r.Total - r.Sick - r.Wounded - r.Missing()
	if fit < 0 {
		return 0
	}
	return fit
}

// AddSick marks n fit soldiers as sick, bounded by availability.
func (r *Roster) AddSick(n int) int {
	n = rng.Clamp(n, 0, r.FitForDuty())
	r.Sick += n
	return n
}

// AddWounded marks n fit soldiers as wounded, bounded by availability.
func (r *Roster) AddWounded(n int) int {
	n = rng.Clamp(n, 0, r.FitForDuty())
	r.Wounded += n
	return n
}

// AddMissing marks n fit soldiers missing, starting their grace counters.
func (r *Roster) AddMissing(n int) int {
	n = rng.Clamp(n, 0, r.FitForDuty())
	for i := 0; i < n; i++ {
		r.MissingDays = append(r.MissingDays, 0)
	}
	return n
}

// RecoverSick returns n sick soldiers to duty.
func (r *Roster) RecoverSick(n int) {
	r.Sick -= rng.Clamp(n, 0, r.Sick)
}

// RecoverWounded returns n wounded soldiers to duty.
func (r *Roster) RecoverWounded(n int) {
	r.Wounded -= rng.Clamp(n, 0, r.Wounded)
}

// KillSick converts n sick soldiers to dead.
func (r *Roster) KillSick(n int) int {
	n = rng.Clamp(n, 0, r.Sick)
	r.Sick -= n
	r.Dead += n
	r.Total -= n
	return n
}

// AgeMissing advances every missing soldier's counter by days and converts
// those past the grace period into confirmed desertions. Returns the number
// of new desertions.
func (r *Roster) AgeMissing(days int) int {
	kept := r.MissingDays[:0]
	deserted := 0
	for _, d := range r.MissingDays {
		d += days
		if d >= MissingGraceDays {
			deserted++
			continue
		}
		kept = append(kept, d)
	}
	r.MissingDays = kept
	r.Deserted += deserted
	r.Total -= rng.Clamp(deserted, 0, r.Total)
	return deserted
}
