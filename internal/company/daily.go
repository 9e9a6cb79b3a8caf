package company

import (
	"fmt"
	"log/slog"

	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/rng"
	"github.com/talgya/camplife/internal/worldstate"
)

// SimConfig holds the stochastic rates for the daily company simulation.
type SimConfig struct {
	RecoveryChance float64 // Base daily chance a sick soldier recovers.
	DeathChance    float64 // Base daily chance a sick soldier dies.
	SicknessRate   float64 // Fraction of regulars at risk of new sickness.
	InjuryRate     float64 // Fraction of regulars at risk of new injury.
	DesertionRate  float64 // Fraction of regulars at risk of going missing.

	MinRegulars       int // Rosters at or below this skip new-condition draws.
	BulkSkipThreshold int // Elapsed days beyond this collapse into bulk mode.
}

// DefaultSimConfig returns the tuned baseline rates.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		RecoveryChance:    0.15,
		DeathChance:       0.02,
		SicknessRate:      0.04,
		InjuryRate:        0.02,
		DesertionRate:     0.01,
		MinRegulars:       5,
		BulkSkipThreshold: 7,
	}
}

// DailySim runs the once-per-day company simulation: consumption read,
// roster recovery, new conditions, incidents, pulse evaluation and crisis
// checks, in that order.
type DailySim struct {
	Roster    *Roster
	Pressure  *Pressure
	Incidents *IncidentEngine

	store needs.Store
	world worldstate.Provider
	queue needs.DeliveryQueue
	news  needs.NewsFeed
	rand  rng.Source
	cfg   SimConfig

	// PlayerTier supplies the current player tier for staged arc events.
	PlayerTier func() int

	// LastProcessedDay is the watermark guaranteeing each day simulates
	// at most once even under duplicate ticks.
	LastProcessedDay int
}

// NewDailySim wires a daily simulation over its collaborators.
func NewDailySim(roster *Roster, incidents *IncidentEngine, store needs.Store,
	world worldstate.Provider, queue needs.DeliveryQueue, news needs.NewsFeed,
	src rng.Source, cfg SimConfig) *DailySim {
	return &DailySim{
		Roster:     roster,
		Pressure:   &Pressure{},
		Incidents:  incidents,
		store:      store,
		world:      world,
		queue:      queue,
		news:       news,
		rand:       src,
		cfg:        cfg,
		PlayerTier: func() int { return 1 },
	}
}

// RunDay simulates up to the given campaign day. Days at or before the
// watermark are ignored. A gap of more than BulkSkipThreshold days is
// collapsed into a single bulk approximation instead of a replay.
func (s *DailySim) RunDay(day int) {
	elapsed := day - s.LastProcessedDay
	if elapsed <= 0 {
		return
	}

	if elapsed > s.cfg.BulkSkipThreshold {
		s.bulkAdvance(elapsed)
		s.LastProcessedDay = day
		return
	}

	for d := s.LastProcessedDay + 1; d <= day; d++ {
		s.simulateOneDay(d)
		s.LastProcessedDay = d
	}
}

// simulateOneDay executes the six daily phases in order.
func (s *DailySim) simulateOneDay(day int) {
	situation := s.world.AnalyzeSituation()
	supplies := s.store.Get(needs.ResourceSupplies) // Phase 1: consumption read.

	s.rosterRecovery(supplies)
	s.newConditions(situation)
	fired := s.Incidents.RunDay(day)
	s.pulseEvaluation(day)
	s.crisisChecks()
	s.Incidents.EndDay()

	slog.Info("company day simulated",
		"day", day,
		"fit", s.Roster.FitForDuty(),
		"sick", s.Roster.Sick,
		"wounded", s.Roster.Wounded,
		"missing", s.Roster.Missing(),
		"incidents", len(fired),
		"supplies", s.store.Get(needs.ResourceSupplies),
	)
}

// rosterRecovery rolls recovery and death per sick soldier and ages the
// missing toward confirmed desertion. Wounded recovery is owned by the
// medicine system and not touched here.
func (s *DailySim) rosterRecovery(supplies int) {
	recoveryChance := s.cfg.RecoveryChance
	deathChance := s.cfg.DeathChance
	switch {
	case supplies > 70:
		recoveryChance += 0.05
	case supplies < 30:
		recoveryChance -= 0.10
	}
	if supplies < 20 {
		deathChance += 0.02
	}

	recovered, died := 0, 0
	for i := 0; i < s.Roster.Sick; i++ {
		if rng.Chance(s.rand, recoveryChance) {
			recovered++
		} else if rng.Chance(s.rand, deathChance) {
			died++
		}
	}
	s.Roster.RecoverSick(recovered)
	s.Roster.KillSick(died)

	deserted := s.Roster.AgeMissing(1)
	s.Pressure.NoteDesertions(deserted)
}

// newConditions draws today's new sickness, injuries and disappearances.
// Small parties are spared entirely.
func (s *DailySim) newConditions(situation worldstate.Situation) {
	if s.Roster.Total <= s.cfg.MinRegulars {
		return
	}

	sickMax := int(s.cfg.SicknessRate * float64(s.Roster.Total))
	s.Roster.AddSick(rng.Uniform(s.rand, 0, sickMax))

	injuryRate := s.cfg.InjuryRate
	if situation.Marching {
		injuryRate *= 1.3
	}
	injuryMax := int(injuryRate * float64(s.Roster.Total))
	s.Roster.AddWounded(rng.Uniform(s.rand, 0, injuryMax))

	missingMax := int(s.cfg.DesertionRate * float64(s.Roster.Total))
	s.Roster.AddMissing(rng.Uniform(s.rand, 0, missingMax))
}

// pulseEvaluation updates the pressure counters against fixed thresholds
// and fires the one-shot critical-supply pulse.
func (s *DailySim) pulseEvaluation(day int) {
	supplies := s.store.Get(needs.ResourceSupplies)
	discipline := s.store.Get(needs.ResourceDiscipline)

	if supplies < LowSupplyThreshold {
		s.Pressure.DaysLowSupplies++
	} else {
		s.Pressure.DaysLowSupplies = 0
	}
	if supplies < CriticalSupplyThreshold {
		s.Pressure.DaysCriticalSupplies++
	} else {
		s.Pressure.DaysCriticalSupplies = 0
		s.Pressure.CriticalSupplyPulsed = false
		s.Pressure.SupplyCrisisFired = false
	}
	if discipline < LowDisciplineThreshold {
		s.Pressure.DaysLowDiscipline++
	} else {
		s.Pressure.DaysLowDiscipline = 0
	}

	sickRate := 0.0
	if s.Roster.Total > 0 {
		sickRate = float64(s.Roster.Sick) / float64(s.Roster.Total)
	}
	if sickRate > HighSicknessRate {
		s.Pressure.DaysHighSickness++
	} else {
		s.Pressure.DaysHighSickness = 0
		s.Pressure.SicknessCrisisFired = false
	}

	if supplies < CriticalSupplyThreshold && !s.Pressure.CriticalSupplyPulsed {
		s.Pressure.CriticalSupplyPulsed = true
		if s.news != nil {
			s.news.Publish(needs.NewsEntry{
				Day:      day,
				Severity: needs.NewsCritical,
				Category: "supply",
				Text:     "The company is down to scrapings. Men are going to bed hungry.",
			})
		}
	}
}

// crisisChecks fires staged pressure-arc events at exact counter values and
// enqueues crisis events when sustained pressure crosses its trigger.
func (s *DailySim) crisisChecks() {
	switch s.Pressure.DaysLowSupplies {
	case 3:
		s.queueArcEvent("supply_shortage", 1)
	case 5:
		s.queueArcEvent("supply_shortage", 2)
	case 7:
		s.queueArcEvent("supply_shortage", 3)
	}

	if s.Pressure.DaysCriticalSupplies >= SupplyCrisisDays && !s.Pressure.SupplyCrisisFired {
		s.Pressure.SupplyCrisisFired = true
		s.queueCrisis("crisis_starvation", "The company has been starving for days; something is about to give.")
	}

	casualtyRate := 0.0
	if lost := s.Roster.Total + s.Roster.Dead; lost > 0 {
		casualtyRate = float64(s.Roster.Dead) / float64(lost)
	}
	if s.Pressure.DaysHighSickness >= SicknessCrisisDays && casualtyRate > 0.2 && !s.Pressure.SicknessCrisisFired {
		s.Pressure.SicknessCrisisFired = true
		s.queueCrisis("crisis_camp_fever", "Fever is burning through the tents faster than the surgeon can bleed it.")
	}

	if s.Pressure.RecentDesertions >= DesertionCrisisCount && !s.Pressure.DesertionCrisisFired {
		s.Pressure.DesertionCrisisFired = true
		s.queueCrisis("crisis_desertion", "Too many bedrolls are empty at muster. The sergeants are asking questions.")
	}
}

// queueArcEvent delivers a staged narrative event, variant-selected by the
// player's tier band.
func (s *DailySim) queueArcEvent(arc string, stage int) {
	band := "low"
	switch tier := s.PlayerTier(); {
	case tier >= 7:
		band = "high"
	case tier >= 5:
		band = "mid"
	}
	if s.queue != nil {
		s.queue.Queue(needs.QueuedEvent{
			DecisionID: fmt.Sprintf("%s_stage%d_%s", arc, stage, band),
			Title:      "Trouble in the company",
		})
	}
	slog.Info("pressure arc event", "arc", arc, "stage", stage, "band", band)
}

func (s *DailySim) queueCrisis(decisionID, body string) {
	if s.queue != nil {
		s.queue.Queue(needs.QueuedEvent{
			DecisionID: decisionID,
			Title:      "Crisis in the camp",
			Body:       body,
		})
	}
	slog.Warn("crisis enqueued", "decision", decisionID)
}

// bulkAdvance approximates a multi-day skip: sickness resolves at the
// expected rate, missing soldiers age out, desertion pressure decays, and
// per-day incidents and news are skipped entirely.
func (s *DailySim) bulkAdvance(days int) {
	supplies := s.store.Get(needs.ResourceSupplies)

	recoveryChance := s.cfg.RecoveryChance
	if supplies > 70 {
		recoveryChance += 0.05
	} else if supplies < 30 {
		recoveryChance -= 0.10
	}
	deathChance := s.cfg.DeathChance
	if supplies < 20 {
		deathChance += 0.02
	}

	recovered := int(float64(s.Roster.Sick) * recoveryChance * float64(days))
	died := int(float64(s.Roster.Sick) * deathChance * float64(days))
	s.Roster.RecoverSick(recovered)
	s.Roster.KillSick(died)

	deserted := s.Roster.AgeMissing(days)
	s.Pressure.NoteDesertions(deserted)
	s.Pressure.DecayDesertions(days / 2)

	// Cooldowns still run down while the world fast-forwards.
	for i := 0; i < days; i++ {
		s.Incidents.EndDay()
	}

	slog.Info("bulk time-skip applied",
		"days", days,
		"recovered", recovered,
		"died", died,
		"deserted", deserted,
	)
}

// OnVictory decays desertion pressure after a won battle.
func (s *DailySim) OnVictory() {
	s.Pressure.DecayDesertions(2)
}

// ResetForNewLord clears all per-lord state when the player changes service.
func (s *DailySim) ResetForNewLord(rosterSize int) {
	*s.Roster = *NewRoster(rosterSize)
	*s.Pressure = Pressure{}
	s.Incidents.Cooldowns = make(map[string]int)
	s.Incidents.Flags = make(map[string]bool)
}
