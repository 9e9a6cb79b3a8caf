package defs

import (
	"fmt"
	"strings"

	"github.com/talgya/camplife/internal/clock"
)

// Raw YAML shapes. Decoded as written by content authors, then converted
// to the typed definitions once at load time so nothing downstream ever
// dispatches on strings.

type rawOpportunityFile struct {
	Generator     rawGenerator     `yaml:"generator"`
	Opportunities []rawOpportunity `yaml:"opportunities"`
}

type rawGenerator struct {
	BudgetTable    map[string]map[string]int `yaml:"budget_table"`
	DefaultBudget  int                       `yaml:"default_budget"`
	MaxPerPhase    int                       `yaml:"max_per_phase"`
	ScoreThreshold float64                   `yaml:"score_threshold"`
	ScheduleBoost  float64                   `yaml:"schedule_boost"`
}

type rawOpportunity struct {
	ID            string            `yaml:"id"`
	Title         string            `yaml:"title"`
	Type          string            `yaml:"type"`
	TierMin       int               `yaml:"tier_min"`
	TierMax       int               `yaml:"tier_max"`
	CooldownHours int               `yaml:"cooldown_hours"`
	BaseFitness   float64           `yaml:"base_fitness"`
	ValidPhases   []string          `yaml:"valid_phases"`
	SeaOnly       bool              `yaml:"sea_only"`
	LandOnly      bool              `yaml:"land_only"`
	OrderCompat   map[string]string `yaml:"order_compat"`
	Detection     *rawDetection     `yaml:"detection"`
	Caught        rawCaught         `yaml:"caught"`
	RequiresFlag  string            `yaml:"requires_flag"`
	BlockedFlag   string            `yaml:"blocked_flag"`
	Tags          []string          `yaml:"tags"`
	FixedHour     *int              `yaml:"fixed_hour"`
	TargetDecision string           `yaml:"target_decision"`
}

type rawDetection struct {
	BaseChance      float64 `yaml:"base_chance"`
	NightModifier   float64 `yaml:"night_modifier"`
	HighRepModifier float64 `yaml:"high_rep_modifier"`
}

type rawCaught struct {
	ReputationDelta  int     `yaml:"reputation_delta"`
	DisciplineDelta  int     `yaml:"discipline_delta"`
	OrderFailureRisk float64 `yaml:"order_failure_risk"`
}

type rawIncidentFile struct {
	Incidents []rawIncident `yaml:"incidents"`
}

type rawIncident struct {
	ID           string         `yaml:"id"`
	Category     string         `yaml:"category"`
	Severity     int            `yaml:"severity"`
	Weight       float64        `yaml:"weight"`
	CooldownDays int            `yaml:"cooldown_days"`
	RequiresFlag string         `yaml:"requires_flag"`
	SetsFlag     string         `yaml:"sets_flag"`
	Text         string         `yaml:"text"`
	Effects      map[string]int `yaml:"effects"`
}

type rawScheduleFile struct {
	Phases              map[string]rawPhasePlan       `yaml:"phases"`
	ActivityMultipliers map[string]map[string]float64 `yaml:"activity_multipliers"`
	BlankedBy           map[string]string             `yaml:"blanked_by"`
	BoostCategory       map[string]string             `yaml:"boost_category"`
	BoostFactor         float64                       `yaml:"boost_factor"`
}

type rawPhasePlan struct {
	Flavor string    `yaml:"flavor"`
	Slots  []rawSlot `yaml:"slots"`
}

type rawSlot struct {
	Category    string  `yaml:"category"`
	Description string  `yaml:"description"`
	Weight      float64 `yaml:"weight"`
}

type rawOutcomeFile struct {
	WeightSets map[string][]float64 `yaml:"weight_sets"`
	Activities []rawActivity        `yaml:"activities"`
}

type rawActivity struct {
	Category        string              `yaml:"category"`
	Skill           string              `yaml:"skill"`
	XP              rawRange            `yaml:"xp"`
	FatigueDelta    int                 `yaml:"fatigue_delta"`
	GoldChance      float64             `yaml:"gold_chance"`
	Gold            rawRange            `yaml:"gold"`
	GoldLossChance  float64             `yaml:"gold_loss_chance"`
	GoldLoss        rawRange            `yaml:"gold_loss"`
	MishapChance    float64             `yaml:"mishap_chance"`
	MishapCondition string              `yaml:"mishap_condition"`
	SupplyDeltas    map[string]rawRange `yaml:"supply_deltas"`
	MoraleDeltas    map[string]rawRange `yaml:"morale_deltas"`
	FlavorLand      map[string][]string `yaml:"flavor_land"`
	FlavorSea       map[string][]string `yaml:"flavor_sea"`
}

type rawRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func parseType(s string) (OpportunityType, error) {
	switch strings.ToLower(s) {
	case "training":
		return TypeTraining, nil
	case "social":
		return TypeSocial, nil
	case "economic":
		return TypeEconomic, nil
	case "recovery":
		return TypeRecovery, nil
	case "special":
		return TypeSpecial, nil
	default:
		return TypeSpecial, fmt.Errorf("unknown opportunity type %q", s)
	}
}

func parsePhase(s string) (clock.DayPhase, error) {
	switch strings.ToLower(s) {
	case "dawn":
		return clock.PhaseDawn, nil
	case "midday":
		return clock.PhaseMidday, nil
	case "dusk":
		return clock.PhaseDusk, nil
	case "night":
		return clock.PhaseNight, nil
	default:
		return clock.PhaseDawn, fmt.Errorf("unknown day phase %q", s)
	}
}

func parseCompat(s string) (OrderCompat, error) {
	switch strings.ToLower(s) {
	case "open", "":
		return CompatOpen, nil
	case "risky":
		return CompatRisky, nil
	case "blocked":
		return CompatBlocked, nil
	default:
		return CompatOpen, fmt.Errorf("unknown order compat %q", s)
	}
}

func parseQuality(s string) (Quality, error) {
	switch strings.ToLower(s) {
	case "excellent":
		return QualityExcellent, nil
	case "good":
		return QualityGood, nil
	case "normal":
		return QualityNormal, nil
	case "poor":
		return QualityPoor, nil
	case "mishap":
		return QualityMishap, nil
	default:
		return QualityNormal, fmt.Errorf("unknown quality %q", s)
	}
}

func convertOpportunities(raw rawOpportunityFile) ([]OpportunityDefinition, GeneratorConfig, error) {
	out := make([]OpportunityDefinition, 0, len(raw.Opportunities))
	for _, r := range raw.Opportunities {
		if r.ID == "" {
			return nil, GeneratorConfig{}, fmt.Errorf("opportunity without id")
		}
		typ, err := parseType(r.Type)
		if err != nil {
			return nil, GeneratorConfig{}, fmt.Errorf("opportunity %s: %w", r.ID, err)
		}

		var phases []clock.DayPhase
		for _, ps := range r.ValidPhases {
			p, err := parsePhase(ps)
			if err != nil {
				return nil, GeneratorConfig{}, fmt.Errorf("opportunity %s: %w", r.ID, err)
			}
			phases = append(phases, p)
		}

		var compat map[string]OrderCompat
		if len(r.OrderCompat) > 0 {
			compat = make(map[string]OrderCompat, len(r.OrderCompat))
			for duty, cs := range r.OrderCompat {
				c, err := parseCompat(cs)
				if err != nil {
					return nil, GeneratorConfig{}, fmt.Errorf("opportunity %s: %w", r.ID, err)
				}
				compat[duty] = c
			}
		}

		var detection *DetectionSettings
		if r.Detection != nil {
			detection = &DetectionSettings{
				BaseChance:      r.Detection.BaseChance,
				NightModifier:   r.Detection.NightModifier,
				HighRepModifier: r.Detection.HighRepModifier,
			}
		}

		def := OpportunityDefinition{
			ID:            r.ID,
			Title:         r.Title,
			Type:          typ,
			TierMin:       r.TierMin,
			TierMax:       r.TierMax,
			CooldownHours: r.CooldownHours,
			BaseFitness:   r.BaseFitness,
			ValidPhases:   phases,
			SeaOnly:       r.SeaOnly,
			LandOnly:      r.LandOnly,
			OrderCompat:   compat,
			Detection:     detection,
			Caught: CaughtConsequences{
				ReputationDelta:  r.Caught.ReputationDelta,
				DisciplineDelta:  r.Caught.DisciplineDelta,
				OrderFailureRisk: r.Caught.OrderFailureRisk,
			},
			RequiresFlag:     r.RequiresFlag,
			BlockedFlag:      r.BlockedFlag,
			Tags:             r.Tags,
			FixedHour:        r.FixedHour,
			TargetDecisionID: r.TargetDecision,
		}
		out = append(out, def)
	}

	gen := GeneratorConfig{
		BudgetTable:    raw.Generator.BudgetTable,
		DefaultBudget:  raw.Generator.DefaultBudget,
		MaxPerPhase:    raw.Generator.MaxPerPhase,
		ScoreThreshold: raw.Generator.ScoreThreshold,
		ScheduleBoost:  raw.Generator.ScheduleBoost,
	}
	if gen.MaxPerPhase <= 0 {
		gen.MaxPerPhase = 3
	}
	if gen.DefaultBudget <= 0 {
		gen.DefaultBudget = 2
	}
	if gen.ScoreThreshold <= 0 {
		gen.ScoreThreshold = 40
	}
	if gen.ScheduleBoost <= 0 {
		gen.ScheduleBoost = 1.3
	}
	return out, gen, nil
}

func convertIncidents(raw rawIncidentFile) ([]IncidentDefinition, error) {
	out := make([]IncidentDefinition, 0, len(raw.Incidents))
	for _, r := range raw.Incidents {
		if r.ID == "" {
			return nil, fmt.Errorf("incident without id")
		}
		if r.Weight <= 0 {
			return nil, fmt.Errorf("incident %s: weight must be positive", r.ID)
		}
		out = append(out, IncidentDefinition{
			ID:           r.ID,
			Category:     r.Category,
			Severity:     r.Severity,
			Weight:       r.Weight,
			CooldownDays: r.CooldownDays,
			RequiresFlag: r.RequiresFlag,
			SetsFlag:     r.SetsFlag,
			Text:         r.Text,
			Effects:      r.Effects,
		})
	}
	return out, nil
}

func convertSchedule(raw rawScheduleFile) (ScheduleConfig, error) {
	cfg := ScheduleConfig{
		Phases:              make(map[clock.DayPhase]PhasePlan, 4),
		ActivityMultipliers: raw.ActivityMultipliers,
		BlankedBy:           raw.BlankedBy,
		BoostCategory:       raw.BoostCategory,
		BoostFactor:         raw.BoostFactor,
	}
	if cfg.BoostFactor <= 0 {
		cfg.BoostFactor = 1.3
	}

	for name, rp := range raw.Phases {
		p, err := parsePhase(name)
		if err != nil {
			return ScheduleConfig{}, err
		}
		if len(rp.Slots) != 2 {
			return ScheduleConfig{}, fmt.Errorf("phase %s: want 2 slots, got %d", name, len(rp.Slots))
		}
		plan := PhasePlan{Flavor: rp.Flavor}
		for i, rs := range rp.Slots {
			plan.Slots[i] = ActivitySlot{
				Category:    rs.Category,
				Description: rs.Description,
				Weight:      rs.Weight,
			}
		}
		cfg.Phases[p] = plan
	}

	for _, p := range []clock.DayPhase{clock.PhaseDawn, clock.PhaseMidday, clock.PhaseDusk, clock.PhaseNight} {
		if _, ok := cfg.Phases[p]; !ok {
			return ScheduleConfig{}, fmt.Errorf("schedule missing phase %s", clock.PhaseName(p))
		}
	}
	return cfg, nil
}

func convertOutcomes(raw rawOutcomeFile) (OutcomeConfig, error) {
	cfg := OutcomeConfig{
		Activities: make(map[string]ActivityOutcome, len(raw.Activities)),
		WeightSets: make(map[string][QualityCount]float64, len(raw.WeightSets)),
	}

	for name, ws := range raw.WeightSets {
		if len(ws) != QualityCount {
			return OutcomeConfig{}, fmt.Errorf("weight set %s: want %d weights, got %d", name, QualityCount, len(ws))
		}
		var arr [QualityCount]float64
		copy(arr[:], ws)
		cfg.WeightSets[name] = arr
	}
	if _, ok := cfg.WeightSets["default"]; !ok {
		return OutcomeConfig{}, fmt.Errorf("weight sets missing %q", "default")
	}

	for _, r := range raw.Activities {
		if r.Category == "" {
			return OutcomeConfig{}, fmt.Errorf("activity without category")
		}
		a := ActivityOutcome{
			Category:        r.Category,
			Skill:           r.Skill,
			XP:              Range{Min: r.XP.Min, Max: r.XP.Max},
			FatigueDelta:    r.FatigueDelta,
			GoldChance:      r.GoldChance,
			Gold:            Range{Min: r.Gold.Min, Max: r.Gold.Max},
			GoldLossChance:  r.GoldLossChance,
			GoldLoss:        Range{Min: r.GoldLoss.Min, Max: r.GoldLoss.Max},
			MishapChance:    r.MishapChance,
			MishapCondition: r.MishapCondition,
		}
		if err := fillQualityRanges(a.SupplyDeltas[:], r.SupplyDeltas); err != nil {
			return OutcomeConfig{}, fmt.Errorf("activity %s supply_deltas: %w", r.Category, err)
		}
		if err := fillQualityRanges(a.MoraleDeltas[:], r.MoraleDeltas); err != nil {
			return OutcomeConfig{}, fmt.Errorf("activity %s morale_deltas: %w", r.Category, err)
		}
		if err := fillQualityLines(a.FlavorLand[:], r.FlavorLand); err != nil {
			return OutcomeConfig{}, fmt.Errorf("activity %s flavor_land: %w", r.Category, err)
		}
		if err := fillQualityLines(a.FlavorSea[:], r.FlavorSea); err != nil {
			return OutcomeConfig{}, fmt.Errorf("activity %s flavor_sea: %w", r.Category, err)
		}
		cfg.Activities[r.Category] = a
	}
	return cfg, nil
}

func fillQualityRanges(dst []Range, src map[string]rawRange) error {
	for qs, rr := range src {
		q, err := parseQuality(qs)
		if err != nil {
			return err
		}
		dst[q] = Range{Min: rr.Min, Max: rr.Max}
	}
	return nil
}

func fillQualityLines(dst [][]string, src map[string][]string) error {
	for qs, lines := range src {
		q, err := parseQuality(qs)
		if err != nil {
			return err
		}
		dst[q] = lines
	}
	return nil
}
