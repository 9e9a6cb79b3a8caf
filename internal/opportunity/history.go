// Package opportunity generates the situational choices offered to the
// player each phase: candidate filtering, multi-layer fitness scoring,
// budgeted selection, the commit/cancel mechanic and the risk of being
// caught off-task while on duty.
package opportunity

import (
	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
)

// IDRecord is the adaptive memory for one opportunity definition.
type IDRecord struct {
	LastShown clock.CampTime
	Seen      int
	Engaged   int
	Ignored   int
}

// TypeRecord is the adaptive memory for one opportunity type.
type TypeRecord struct {
	LastShown clock.CampTime
	Seen      int
	Engaged   int
}

// History holds per-id and per-type presentation memory. Counters are
// append-only and persist across sessions.
type History struct {
	ByID   map[string]*IDRecord
	ByType map[defs.OpportunityType]*TypeRecord
}

// NewHistory creates empty history.
func NewHistory() *History {
	return &History{
		ByID:   make(map[string]*IDRecord),
		ByType: make(map[defs.OpportunityType]*TypeRecord),
	}
}

func (h *History) id(id string) *IDRecord {
	r, ok := h.ByID[id]
	if !ok {
		r = &IDRecord{}
		h.ByID[id] = r
	}
	return r
}

func (h *History) typ(t defs.OpportunityType) *TypeRecord {
	r, ok := h.ByType[t]
	if !ok {
		r = &TypeRecord{}
		h.ByType[t] = r
	}
	return r
}

// RecordPresented notes that an opportunity was shown to the player.
func (h *History) RecordPresented(def *defs.OpportunityDefinition, at clock.CampTime) {
	ir := h.id(def.ID)
	ir.LastShown = at
	ir.Seen++

	tr := h.typ(def.Type)
	tr.LastShown = at
	tr.Seen++
}

// RecordEngaged notes that the player committed to an opportunity.
func (h *History) RecordEngaged(def *defs.OpportunityDefinition) {
	h.id(def.ID).Engaged++
	h.typ(def.Type).Engaged++
}

// RecordIgnored notes a presented opportunity the player let pass.
func (h *History) RecordIgnored(def *defs.OpportunityDefinition) {
	h.id(def.ID).Ignored++
}

// HoursSinceTypeShown returns the hours since the type was last presented
// and whether it has ever been presented.
func (h *History) HoursSinceTypeShown(t defs.OpportunityType, now clock.CampTime) (int, bool) {
	r, ok := h.ByType[t]
	if !ok || r.Seen == 0 {
		return 0, false
	}
	return now.HoursSince(r.LastShown), true
}

// HoursSinceIDShown returns the hours since the definition was last
// presented, and whether it has ever been presented.
func (h *History) HoursSinceIDShown(id string, now clock.CampTime) (int, bool) {
	r, ok := h.ByID[id]
	if !ok || r.Seen == 0 {
		return 0, false
	}
	return now.HoursSince(r.LastShown), true
}

// TypeEngagementRate returns engaged/seen for a type; seen counts below
// the floor report a neutral rate so new types are not judged early.
func (h *History) TypeEngagementRate(t defs.OpportunityType) (rate float64, seen int) {
	r, ok := h.ByType[t]
	if !ok || r.Seen == 0 {
		return 0, 0
	}
	return float64(r.Engaged) / float64(r.Seen), r.Seen
}

// PreferenceTracker is the external learning system that blends a
// per-type preference signal from observed behavior.
type PreferenceTracker interface {
	// PreferenceDelta returns a learned score adjustment for the type,
	// typically in [-30, 30].
	PreferenceDelta(t defs.OpportunityType) float64
	// CombatSocialLean returns the learned combat-vs-social lean in
	// [-1, 1]: positive favors training, negative favors social.
	CombatSocialLean() float64
	// Observe feeds presentations and engagements back to the learner.
	Observe(t defs.OpportunityType, engaged bool)
}

// NeutralTracker is a PreferenceTracker with no opinion. Used when the
// host game provides no behavior model.
type NeutralTracker struct{}

func (NeutralTracker) PreferenceDelta(defs.OpportunityType) float64 { return 0 }
func (NeutralTracker) CombatSocialLean() float64                    { return 0 }
func (NeutralTracker) Observe(defs.OpportunityType, bool)           {}
