package company

// Pressure tracks rolling day-counters of sustained adverse conditions.
// Counters feed incident weighting, staged pressure-arc events and crisis
// triggers.
type Pressure struct {
	DaysLowSupplies      int // supplies < 40
	DaysCriticalSupplies int // supplies < 20
	DaysLowDiscipline    int // discipline < 40
	DaysHighSickness     int // sick/total > 0.20
	RecentDesertions     int // decays on victories and over long skips

	// One-shot latches. Reset when the triggering condition clears.
	// Exported so the persistence overlay can carry them; a latch lost
	// across a save/load would re-fire its crisis event.
	CriticalSupplyPulsed bool
	SupplyCrisisFired    bool
	SicknessCrisisFired  bool
	DesertionCrisisFired bool
}

// Pulse thresholds.
const (
	LowSupplyThreshold      = 40
	CriticalSupplyThreshold = 20
	LowDisciplineThreshold  = 40
	HighSicknessRate        = 0.20
)

// NoteDesertions records newly confirmed desertions.
func (p *Pressure) NoteDesertions(n int) {
	if n > 0 {
		p.RecentDesertions += n
	}
}

// DecayDesertions reduces the desertion counter by n, floored at zero.
// Called on victories and across bulk time-skips.
func (p *Pressure) DecayDesertions(n int) {
	p.RecentDesertions -= n
	if p.RecentDesertions < 0 {
		p.RecentDesertions = 0
	}
	if p.RecentDesertions < DesertionCrisisCount {
		p.DesertionCrisisFired = false
	}
}

// Crisis trigger values.
const (
	SupplyCrisisDays     = 3
	SicknessCrisisDays   = 2
	DesertionCrisisCount = 5
)
