// Package defs loads the camp content definitions: opportunities, incidents,
// the schedule baseline and activity outcome tables. Files are YAML; a
// missing or malformed file falls back to the compiled-in defaults with a
// warning, never an error.
package defs

import (
	"github.com/talgya/camplife/internal/clock"
)

// OpportunityType classifies what an opportunity offers the player.
type OpportunityType uint8

const (
	TypeTraining OpportunityType = iota
	TypeSocial
	TypeEconomic
	TypeRecovery
	TypeSpecial
)

// TypeName returns a human-readable opportunity type name.
func TypeName(t OpportunityType) string {
	switch t {
	case TypeTraining:
		return "Training"
	case TypeSocial:
		return "Social"
	case TypeEconomic:
		return "Economic"
	case TypeRecovery:
		return "Recovery"
	case TypeSpecial:
		return "Special"
	default:
		return "Unknown"
	}
}

// OrderCompat describes how an opportunity interacts with being on duty.
type OrderCompat uint8

const (
	// CompatOpen opportunities carry no duty conflict.
	CompatOpen OrderCompat = iota
	// CompatRisky opportunities can be attempted on duty but risk detection.
	CompatRisky
	// CompatBlocked opportunities are filtered out entirely while on duty.
	CompatBlocked
)

// DetectionSettings configure the risk mechanic for off-duty behavior
// performed while on duty. A nil settings pointer means the attempt
// always succeeds.
type DetectionSettings struct {
	BaseChance      float64 // Chance of being caught, before modifiers.
	NightModifier   float64 // Added during the Night phase.
	HighRepModifier float64 // Added when officer reputation > 70.
}

// CaughtConsequences are applied when a risky attempt is detected.
type CaughtConsequences struct {
	ReputationDelta  int
	DisciplineDelta  int
	OrderFailureRisk float64 // Chance the standing order is compromised too.
}

// OpportunityDefinition is an immutable opportunity template.
type OpportunityDefinition struct {
	ID            string
	Title         string
	Type          OpportunityType
	TierMin       int
	TierMax       int
	CooldownHours int
	BaseFitness   float64 // 0-100.

	// ValidPhases restricts when the opportunity can appear. Empty = any.
	ValidPhases []clock.DayPhase
	SeaOnly     bool
	LandOnly    bool

	// Compat per duty kind, with "default" as the fallback entry.
	OrderCompat map[string]OrderCompat

	Detection *DetectionSettings
	Caught    CaughtConsequences

	RequiresFlag string
	BlockedFlag  string
	Tags         []string

	// FixedHour pins the scheduled time; nil means next matching phase.
	FixedHour *int

	// TargetDecisionID names the inquiry/event delivered when a
	// commitment to this opportunity fires.
	TargetDecisionID string
}

// HasTag reports whether the definition carries the given tag.
func (d *OpportunityDefinition) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CompatFor resolves the order compatibility for a duty kind.
func (d *OpportunityDefinition) CompatFor(duty string) OrderCompat {
	if d.OrderCompat == nil {
		return CompatOpen
	}
	if c, ok := d.OrderCompat[duty]; ok {
		return c
	}
	if c, ok := d.OrderCompat["default"]; ok {
		return c
	}
	return CompatOpen
}

// PhaseValid reports whether the opportunity may appear in the phase.
func (d *OpportunityDefinition) PhaseValid(p clock.DayPhase) bool {
	if len(d.ValidPhases) == 0 {
		return true
	}
	for _, vp := range d.ValidPhases {
		if vp == p {
			return true
		}
	}
	return false
}

// IncidentDefinition is an immutable camp incident template.
type IncidentDefinition struct {
	ID           string
	Category     string // "problems", "camp", "fortune".
	Severity     int    // 1-3, drives news severity.
	Weight       float64
	CooldownDays int // 0 = use the engine default.
	RequiresFlag string
	SetsFlag     string
	Text         string
	// Effects are resource deltas keyed by camp resource name.
	Effects map[string]int
}

// ActivitySlot is one baseline schedule slot.
type ActivitySlot struct {
	Category    string
	Description string
	Weight      float64
}

// PhasePlan is the configured baseline for one day phase.
type PhasePlan struct {
	Slots  [2]ActivitySlot
	Flavor string
}

// ScheduleConfig is the full baseline plan plus its deformation tables.
type ScheduleConfig struct {
	Phases map[clock.DayPhase]PhasePlan

	// ActivityMultipliers deform slot weights per expected activity level
	// and slot category. A multiplier of exactly 0 marks the slot skipped.
	ActivityMultipliers map[string]map[string]float64

	// BlankedBy lists lord situations that blank a whole phase's slots,
	// keyed by situation name, valued with the deviation reason.
	BlankedBy map[string]string

	// BoostCategory maps a lord situation name to the slot category whose
	// weight it boosts by BoostFactor.
	BoostCategory map[string]string
	BoostFactor   float64
}

// GeneratorConfig drives the opportunity budget and selection.
type GeneratorConfig struct {
	// BudgetTable maps lord situation name -> phase name -> base budget.
	BudgetTable    map[string]map[string]int
	DefaultBudget  int
	MaxPerPhase    int
	ScoreThreshold float64
	ScheduleBoost  float64
}

// Budget resolves the base budget for a situation/phase pair.
func (g *GeneratorConfig) Budget(situation string, phase clock.DayPhase) int {
	if row, ok := g.BudgetTable[situation]; ok {
		if b, ok := row[clock.PhaseName(phase)]; ok {
			return b
		}
	}
	return g.DefaultBudget
}

// Quality grades a routine outcome.
type Quality uint8

const (
	QualityExcellent Quality = iota
	QualityGood
	QualityNormal
	QualityPoor
	QualityMishap
)

// QualityCount is the number of outcome quality buckets.
const QualityCount = 5

// QualityName returns a human-readable quality name.
func QualityName(q Quality) string {
	switch q {
	case QualityExcellent:
		return "Excellent"
	case QualityGood:
		return "Good"
	case QualityNormal:
		return "Normal"
	case QualityPoor:
		return "Poor"
	case QualityMishap:
		return "Mishap"
	default:
		return "Unknown"
	}
}

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// ActivityOutcome configures how one activity category resolves when the
// player leaves it unattended.
type ActivityOutcome struct {
	Category string
	Skill    string
	XP       Range

	FatigueDelta    int
	GoldChance      float64
	Gold            Range
	GoldLossChance  float64
	GoldLoss        Range
	MishapChance    float64
	MishapCondition string

	// Per-quality delta ranges, indexed by Quality.
	SupplyDeltas [QualityCount]Range
	MoraleDeltas [QualityCount]Range

	// Flavor lines per quality; sea variants preferred while at sea.
	FlavorLand [QualityCount][]string
	FlavorSea  [QualityCount][]string
}

// OutcomeConfig holds all activity outcome tables and the quality weights.
type OutcomeConfig struct {
	Activities map[string]ActivityOutcome

	// WeightSets are the named quality-weight vectors. Keys: "default",
	// "fatigued", "lowMorale".
	WeightSets map[string][QualityCount]float64
}
