package opportunity

import (
	"fmt"
	"log/slog"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
)

// Commitment is a player's advance choice to perform an opportunity at a
// future phase.
type Commitment struct {
	OpportunityID    string
	TargetDecisionID string
	Title            string
	Phase            clock.DayPhase
	Day              int
	CommittedAt      clock.CampTime
	DisplayText      string
}

// Scheduler tracks active commitments and fires them at phase boundaries.
// One commitment per opportunity id; committing again replaces the old one.
type Scheduler struct {
	gen   *Generator
	queue needs.DeliveryQueue
	store needs.Store

	Active []Commitment
}

// CancelRestlessnessCost is the rest penalty for backing out of a promise.
const CancelRestlessnessCost = 3

func newScheduler(gen *Generator, queue needs.DeliveryQueue, store needs.Store) *Scheduler {
	return &Scheduler{gen: gen, queue: queue, store: store}
}

// CommitmentFor reports the commitment title scheduled for a phase/day.
func (s *Scheduler) CommitmentFor(phase clock.DayPhase, day int) (string, bool) {
	for _, c := range s.Active {
		if c.Phase == phase && c.Day == day {
			return c.Title, true
		}
	}
	return "", false
}

// add stores a commitment, replacing any existing one for the same
// opportunity id.
func (s *Scheduler) add(c Commitment) {
	for i := range s.Active {
		if s.Active[i].OpportunityID == c.OpportunityID {
			s.Active[i] = c
			return
		}
	}
	s.Active = append(s.Active, c)
}

// remove deletes the commitment for the opportunity id. Reports whether
// anything was removed.
func (s *Scheduler) remove(opportunityID string) bool {
	for i := range s.Active {
		if s.Active[i].OpportunityID == opportunityID {
			s.Active = append(s.Active[:i], s.Active[i+1:]...)
			return true
		}
	}
	return false
}

// FireDue delivers every commitment scheduled for the phase that begins at
// t. Only phase-boundary hours fire; each commitment is removed before its
// event is queued, so a duplicate tick cannot deliver it twice.
func (s *Scheduler) FireDue(t clock.CampTime) {
	if !clock.IsBoundaryHour(t.Hour) {
		return
	}
	phase := t.Phase()

	for {
		var due *Commitment
		for i := range s.Active {
			if s.Active[i].Phase == phase && s.Active[i].Day == t.Day {
				c := s.Active[i]
				due = &c
				break
			}
		}
		if due == nil {
			return
		}

		s.remove(due.OpportunityID)
		s.queue.Queue(needs.QueuedEvent{
			DecisionID: due.TargetDecisionID,
			Title:      due.Title,
			Body:       due.DisplayText,
		})
		s.gen.Invalidate()

		slog.Info("commitment fired",
			"opportunity", due.OpportunityID,
			"phase", clock.PhaseName(phase),
			"day", t.Day,
		)
	}
}

// Commit schedules an opportunity for its effective phase and day, records
// the engagement, and invalidates the generated list.
func (g *Generator) Commit(def *defs.OpportunityDefinition, now clock.CampTime) Commitment {
	phase, day := effectiveSlot(def, now)

	c := Commitment{
		OpportunityID:    def.ID,
		TargetDecisionID: def.TargetDecisionID,
		Title:            def.Title,
		Phase:            phase,
		Day:              day,
		CommittedAt:      now,
		DisplayText:      fmt.Sprintf("%s — %s, day %d", def.Title, clock.PhaseName(phase), day),
	}
	g.Commitments.add(c)
	g.history.RecordEngaged(def)
	g.tracker.Observe(def.Type, true)
	g.Invalidate()

	slog.Info("commitment made", "opportunity", def.ID, "phase", clock.PhaseName(phase), "day", day)
	return c
}

// Cancel withdraws a commitment, costing a little restlessness.
func (g *Generator) Cancel(opportunityID string) bool {
	if !g.Commitments.remove(opportunityID) {
		return false
	}
	g.Commitments.store.Modify(needs.ResourceRest, -CancelRestlessnessCost)
	g.Invalidate()
	slog.Info("commitment cancelled", "opportunity", opportunityID)
	return true
}

// effectiveSlot resolves when a commitment comes due: the pinned hour's
// phase if the definition fixes one, otherwise the opportunity's next valid
// phase; today if that phase is still ahead, tomorrow otherwise.
func effectiveSlot(def *defs.OpportunityDefinition, now clock.CampTime) (clock.DayPhase, int) {
	if def.FixedHour != nil {
		phase := clock.PhaseForHour(*def.FixedHour)
		day := now.Day
		// Commitments fire on the boundary tick of their phase, so the pinned
		// hour only lands today if that boundary is still ahead of us.
		if clock.StartHour(phase) <= now.Hour {
			day++
		}
		return phase, day
	}

	// Walk forward phase by phase until one is valid for the definition.
	phase := now.Phase()
	day := now.Day
	for i := 0; i < 4; i++ {
		next, carries := clock.NextPhase(phase)
		phase = next
		if carries {
			day++
		}
		if def.PhaseValid(phase) {
			return phase, day
		}
	}
	return phase, day
}
