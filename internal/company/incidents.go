package company

import (
	"log/slog"

	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/rng"
)

// DefaultIncidentCooldownDays applies when a definition sets none.
const DefaultIncidentCooldownDays = 3

// IncidentEngine draws daily camp incidents from the eligible definitions
// and tracks per-incident cooldowns and boolean story flags.
type IncidentEngine struct {
	defs  []defs.IncidentDefinition
	store needs.Store
	news  needs.NewsFeed
	rand  rng.Source

	// Cooldowns are remaining days keyed by incident ID; entries at zero
	// are removed at end of day.
	Cooldowns map[string]int
	Flags     map[string]bool

	// Daily draw bounds.
	MinPerDay int
	MaxPerDay int
}

// NewIncidentEngine creates an engine over the given definitions.
func NewIncidentEngine(definitions []defs.IncidentDefinition, store needs.Store, news needs.NewsFeed, src rng.Source) *IncidentEngine {
	return &IncidentEngine{
		defs:      definitions,
		store:     store,
		news:      news,
		rand:      src,
		Cooldowns: make(map[string]int),
		Flags:     make(map[string]bool),
		MinPerDay: 0,
		MaxPerDay: 2,
	}
}

// eligible reports whether the definition can be drawn today.
func (e *IncidentEngine) eligible(d *defs.IncidentDefinition) bool {
	if e.Cooldowns[d.ID] > 0 {
		return false
	}
	if d.RequiresFlag != "" && !e.Flags[d.RequiresFlag] {
		return false
	}
	return true
}

// weight returns the selection weight, halved for "problems" incidents
// when supplies are already short — the camp does not need piling on.
func (e *IncidentEngine) weight(d *defs.IncidentDefinition) float64 {
	w := d.Weight
	if d.Category == "problems" && e.store.Get(needs.ResourceSupplies) < 30 {
		w *= 0.5
	}
	return w
}

// RunDay draws today's incidents, applies their effects and publishes news.
// Returns the incidents that fired.
func (e *IncidentEngine) RunDay(day int) []defs.IncidentDefinition {
	count := rng.Uniform(e.rand, e.MinPerDay, e.MaxPerDay)
	var fired []defs.IncidentDefinition

	for i := 0; i < count; i++ {
		var pool []*defs.IncidentDefinition
		var weights []float64
		for j := range e.defs {
			d := &e.defs[j]
			if e.eligible(d) {
				pool = append(pool, d)
				weights = append(weights, e.weight(d))
			}
		}
		if len(pool) == 0 {
			break
		}

		idx := rng.WeightedPick(e.rand, weights)
		if idx < 0 {
			break
		}
		d := pool[idx]
		e.apply(d, day)
		fired = append(fired, *d)
	}
	return fired
}

// apply commits an incident's effects, flag and cooldown.
func (e *IncidentEngine) apply(d *defs.IncidentDefinition, day int) {
	for res, delta := range d.Effects {
		e.store.Modify(res, delta)
	}
	if d.SetsFlag != "" {
		e.Flags[d.SetsFlag] = true
	}

	cd := d.CooldownDays
	if cd <= 0 {
		cd = DefaultIncidentCooldownDays
	}
	e.Cooldowns[d.ID] = cd

	sev := needs.NewsInfo
	switch {
	case d.Severity >= 3:
		sev = needs.NewsCritical
	case d.Severity == 2:
		sev = needs.NewsWarning
	}
	if e.news != nil {
		e.news.Publish(needs.NewsEntry{
			Day:      day,
			Severity: sev,
			Category: d.Category,
			Text:     d.Text,
		})
	}

	slog.Info("camp incident",
		"id", d.ID,
		"category", d.Category,
		"severity", d.Severity,
	)
}

// EndDay decrements all cooldowns and drops expired entries.
func (e *IncidentEngine) EndDay() {
	for id, days := range e.Cooldowns {
		days--
		if days <= 0 {
			delete(e.Cooldowns, id)
		} else {
			e.Cooldowns[id] = days
		}
	}
}
