package session

import (
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/persistence"
)

// Snapshot captures the session for persistence.
func (s *Session) Snapshot() *persistence.SessionState {
	return &persistence.SessionState{
		Day:               s.Daily.LastProcessedDay,
		LastProcessedDay:  s.Daily.LastProcessedDay,
		Lord:              s.LordName,
		LastMusterDay:     s.LastMusterDay,
		Roster:            *s.Daily.Roster,
		Pressure:          *s.Daily.Pressure,
		IncidentFlags:     s.Daily.Incidents.Flags,
		IncidentCooldowns: s.Daily.Incidents.Cooldowns,
		Player:            s.Player,
		History:           s.Opportunities.History(),
		Commitments:       s.Opportunities.Commitments.Active,
		Needs: map[string]int{
			needs.ResourceSupplies:   s.Store.Get(needs.ResourceSupplies),
			needs.ResourceMorale:     s.Store.Get(needs.ResourceMorale),
			needs.ResourceRest:       s.Store.Get(needs.ResourceRest),
			needs.ResourceDiscipline: s.Store.Get(needs.ResourceDiscipline),
		},
		Gold:       s.Gold.Gold(),
		Reputation: s.Reputation.Reputation(),
	}
}

// Restore rebuilds the session from a persisted state. An empty state
// (fresh database) leaves the session un-enlisted.
func (s *Session) Restore(st *persistence.SessionState) {
	if st == nil || st.Lord == "" {
		return
	}

	s.Enlisted = true
	s.LordName = st.Lord
	s.LastMusterDay = st.LastMusterDay
	s.Player = st.Player

	*s.Daily.Roster = st.Roster
	*s.Daily.Pressure = st.Pressure
	s.Daily.LastProcessedDay = st.LastProcessedDay
	s.Daily.Incidents.Flags = st.IncidentFlags
	s.Daily.Incidents.Cooldowns = st.IncidentCooldowns

	s.Opportunities.RestoreHistory(st.History)
	s.Opportunities.Commitments.Active = st.Commitments
	s.Opportunities.Invalidate()
	s.Schedule.Invalidate()

	for res, v := range st.Needs {
		s.Store.Set(res, v)
	}
	s.Gold.AddGold(st.Gold - s.Gold.Gold())
	s.Reputation.AddReputation(st.Reputation - s.Reputation.Reputation())
}
