// Package session wires the four camp subsystems together and exposes the
// two tick entry points the host clock drives. All components are
// constructed once and passed explicitly; there is no ambient state.
package session

import (
	"log/slog"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/company"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/opportunity"
	"github.com/talgya/camplife/internal/outcome"
	"github.com/talgya/camplife/internal/rng"
	"github.com/talgya/camplife/internal/schedule"
	"github.com/talgya/camplife/internal/worldstate"
)

// MusterCycleDays is the length of the pay-muster cycle.
const MusterCycleDays = 12

// EnlistmentGraceDays is how long a fresh recruit is left alone before the
// camp starts offering opportunities.
const EnlistmentGraceDays = 2

// Session is one player's living-camp simulation.
type Session struct {
	Daily         *company.DailySim
	Schedule      *schedule.Manager
	Opportunities *opportunity.Generator
	Outcomes      *outcome.Resolver

	Store      needs.Store
	News       needs.NewsFeed
	Queue      needs.DeliveryQueue
	Gold       needs.GoldLedger
	Reputation needs.ReputationLedger

	World worldstate.Provider

	// Enlistment context. Every entry point no-ops until Enlist is called.
	Enlisted bool
	LordName string

	Player        opportunity.PlayerState
	LastMusterDay int

	// Plan for the phase currently in progress, captured at its start so
	// routine resolution sees the plan as it stood, commitments included.
	currentPlan    schedule.Phase
	currentPlanDay int
	hasPlan        bool
}

// Config bundles the session's construction inputs.
type Config struct {
	Definitions *defs.Repository
	Random      rng.Source
	World       worldstate.Provider
	Store       needs.Store
	News        needs.NewsFeed
	Queue       needs.DeliveryQueue
	Gold        needs.GoldLedger
	Reputation  needs.ReputationLedger
	XP          needs.XPSink
	Conditions  needs.ConditionSink
	Notifier    needs.Notifier
	Tracker     opportunity.PreferenceTracker
	SimConfig   company.SimConfig
}

// New constructs a fully wired session.
func New(cfg Config) *Session {
	if cfg.Tracker == nil {
		cfg.Tracker = opportunity.NeutralTracker{}
	}

	s := &Session{
		Store:      cfg.Store,
		News:       cfg.News,
		Queue:      cfg.Queue,
		Gold:       cfg.Gold,
		Reputation: cfg.Reputation,
		World:      cfg.World,
	}

	incidents := company.NewIncidentEngine(cfg.Definitions.Incidents, cfg.Store, cfg.News, cfg.Random)
	s.Daily = company.NewDailySim(company.NewRoster(0), incidents, cfg.Store, cfg.World, cfg.Queue, cfg.News, cfg.Random, cfg.SimConfig)
	s.Daily.PlayerTier = func() int { return s.Player.Tier }

	history := opportunity.NewHistory()
	s.Opportunities = opportunity.NewGenerator(
		cfg.Definitions.Opportunities,
		cfg.Definitions.Generator,
		history,
		cfg.Tracker,
		nil, // Schedule manager attached below; it needs the commitment lookup.
		cfg.World,
		cfg.Store,
		cfg.Gold,
		cfg.Reputation,
		s,
		s,
		cfg.Queue,
		cfg.Random,
	)
	s.Opportunities.SetFlagReader(incidentFlags{incidents})

	s.Schedule = schedule.NewManager(
		cfg.Definitions.Schedule,
		cfg.World,
		pressureReader{store: cfg.Store, pressure: s.Daily.Pressure},
		s.Opportunities.Commitments,
	)
	s.Opportunities.AttachSchedule(s.Schedule)

	s.Outcomes = outcome.NewResolver(
		cfg.Definitions.Outcomes,
		cfg.Store,
		cfg.World,
		cfg.XP,
		cfg.Gold,
		cfg.Conditions,
		cfg.Notifier,
		cfg.News,
		cfg.Random,
	)

	return s
}

// Enlist starts service under a lord with a fresh company.
func (s *Session) Enlist(lord string, rosterSize, playerTier int) {
	s.Enlisted = true
	s.LordName = lord
	s.Player.Tier = playerTier
	s.Player.Stamina = 10
	s.Player.GraceDaysLeft = EnlistmentGraceDays
	s.LastMusterDay = s.Daily.LastProcessedDay
	s.Daily.ResetForNewLord(rosterSize)
	slog.Info("enlisted", "lord", lord, "roster", rosterSize, "tier", playerTier)
}

// OnLordChange transfers service: the roster and all pressure reset.
func (s *Session) OnLordChange(lord string, rosterSize int) {
	s.LordName = lord
	s.LastMusterDay = s.Daily.LastProcessedDay
	s.Daily.ResetForNewLord(rosterSize)
	s.Opportunities.Invalidate()
	s.Schedule.Invalidate()
	slog.Info("lord changed, company reset", "lord", lord)
}

// OnVictory lets won battles bleed off desertion pressure.
func (s *Session) OnVictory() {
	if !s.Enlisted {
		return
	}
	s.Daily.OnVictory()
}

// OnDailyTick runs the daily company simulation. Any panic inside the tick
// is logged and the day abandoned; counters only move in bounded steps, so
// an abandoned tick leaves no partial damage worth repairing.
func (s *Session) OnDailyTick(day int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("daily tick abandoned", "day", day, "panic", r)
		}
	}()

	if !s.Enlisted {
		return
	}

	if s.Player.GraceDaysLeft > 0 {
		s.Player.GraceDaysLeft--
	}

	s.Daily.RunDay(day)

	if day-s.LastMusterDay >= MusterCycleDays {
		s.LastMusterDay = day
		slog.Info("muster day", "day", day)
	}
}

// OnHourlyTick handles phase boundaries: resolve the phase that just
// ended, fire due commitments, and recompute the plan for the new phase.
func (s *Session) OnHourlyTick(t clock.CampTime) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("hourly tick abandoned", "time", t.String(), "panic", r)
		}
	}()

	if !s.Enlisted || !clock.IsBoundaryHour(t.Hour) {
		return
	}

	if s.hasPlan {
		s.Outcomes.ResolvePhase(s.currentPlan, s.currentPlanDay)
	}

	// Capture the plan before firing: a commitment due this phase must
	// still mark it player-committed, or its slots would resolve twice.
	s.currentPlan = s.Schedule.OnPhaseChanged(t.Phase(), t.Day)
	s.currentPlanDay = t.Day
	s.hasPlan = true

	s.Opportunities.Commitments.FireDue(t)
	s.Opportunities.Invalidate()
}

// CurrentOpportunities returns the memoized opportunity list for now.
func (s *Session) CurrentOpportunities(t clock.CampTime) []opportunity.Candidate {
	if !s.Enlisted {
		return nil
	}
	return s.Opportunities.Generate(t)
}

// CurrentSchedule returns the plan for the phase in progress.
func (s *Session) CurrentSchedule(t clock.CampTime) schedule.Phase {
	if !s.Enlisted {
		return schedule.Phase{}
	}
	return s.Schedule.Current(t.Phase(), t.Day)
}

// PlayerState implements opportunity.PlayerProvider.
func (s *Session) PlayerState() opportunity.PlayerState {
	return s.Player
}

// MusterInfo implements opportunity.MusterProvider. The muster day itself
// stays flagged all day so no opportunities are offered over the pay line.
func (s *Session) MusterInfo() opportunity.MusterInfo {
	days := s.Daily.LastProcessedDay - s.LastMusterDay
	if days < 0 {
		days = 0
	}
	return opportunity.MusterInfo{
		DaysSinceMuster: days,
		IsMusterDay:     days >= MusterCycleDays || (s.LastMusterDay > 0 && days == 0),
	}
}

// pressureReader adapts the needs store and pressure tracker to the
// schedule manager's read-only view.
type pressureReader struct {
	store    needs.Store
	pressure *company.Pressure
}

func (p pressureReader) Get(resource string) int { return p.store.Get(resource) }
func (p pressureReader) DaysHighSickness() int   { return p.pressure.DaysHighSickness }
func (p pressureReader) DaysLowDiscipline() int  { return p.pressure.DaysLowDiscipline }

// incidentFlags adapts the incident engine's story flags for the
// opportunity generator.
type incidentFlags struct {
	engine *company.IncidentEngine
}

func (f incidentFlags) Flag(name string) bool { return f.engine.Flags[name] }
