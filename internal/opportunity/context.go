package opportunity

import (
	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/worldstate"
)

// PlayerState is the snapshot of player facts the generator scores against.
type PlayerState struct {
	Tier        int
	Stamina     int // Remaining energy for the day, 0-10.
	Injured     bool
	OnDuty      bool
	DutyKind    string // e.g. "sentry"; empty when off duty.
	OnProbation bool

	// GraceDaysLeft counts down the new-enlistment grace period during
	// which no opportunities are offered.
	GraceDaysLeft int
}

// PlayerProvider supplies the current player snapshot. Polled.
type PlayerProvider interface {
	PlayerState() PlayerState
}

// CampMood is the derived temper of the camp.
type CampMood uint8

const (
	MoodGrim CampMood = iota
	MoodSteady
	MoodHigh
)

// MusterInfo reports where the company is in its pay-muster cycle.
type MusterInfo struct {
	DaysSinceMuster int
	IsMusterDay     bool
	BaggageWindow   bool // Baggage train accessible (resupply stop).
}

// MusterProvider supplies the muster cycle position.
type MusterProvider interface {
	MusterInfo() MusterInfo
}

// Context is everything candidate scoring reads: a consistent snapshot
// assembled once per generation pass.
type Context struct {
	Time      clock.CampTime
	Situation worldstate.Situation
	Mood      CampMood
	Supplies  int
	Gold      int
	Player    PlayerState
	Muster    MusterInfo
}

// buildContext assembles the scoring snapshot.
func (g *Generator) buildContext(now clock.CampTime) Context {
	supplies := g.store.Get(needs.ResourceSupplies)
	morale := g.store.Get(needs.ResourceMorale)

	mood := MoodSteady
	switch {
	case morale < 30:
		mood = MoodGrim
	case morale > 70:
		mood = MoodHigh
	}

	return Context{
		Time:      now,
		Situation: g.world.AnalyzeSituation(),
		Mood:      mood,
		Supplies:  supplies,
		Gold:      g.gold.Gold(),
		Player:    g.player.PlayerState(),
		Muster:    g.muster.MusterInfo(),
	}
}
