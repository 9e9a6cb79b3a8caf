package worldstate

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/camplife/internal/clock"
)

// SyntheticProvider generates a plausible campaign from smooth noise: the
// lord's posture drifts over days rather than flickering hour to hour.
// Deterministic for a given seed.
type SyntheticProvider struct {
	posture opensimplex.Noise
	tempo   opensimplex.Noise
	travel  opensimplex.Noise
	Now     func() clock.CampTime
}

// NewSyntheticProvider creates a provider seeded for reproducible campaigns.
// now supplies the current camp time on each poll.
func NewSyntheticProvider(seed int64, now func() clock.CampTime) *SyntheticProvider {
	return &SyntheticProvider{
		posture: opensimplex.NewNormalized(seed),
		tempo:   opensimplex.NewNormalized(seed + 1),
		travel:  opensimplex.NewNormalized(seed + 2),
		Now:     now,
	}
}

// AnalyzeSituation samples the noise fields at the current day.
func (p *SyntheticProvider) AnalyzeSituation() Situation {
	t := p.Now()
	day := float64(t.Day)

	// Posture changes on a roughly weekly scale.
	pv := p.posture.Eval2(day/7.0, 0)
	var lord LordSituation
	switch {
	case pv < 0.35:
		lord = PeacetimeGarrison
	case pv < 0.55:
		lord = Marching
	case pv < 0.70:
		lord = Raiding
	case pv < 0.85:
		lord = SiegeAttacker
	default:
		lord = Battle
	}

	tv := p.tempo.Eval2(day/3.0, 1)
	var activity ActivityLevel
	switch {
	case tv < 0.33:
		activity = ActivityQuiet
	case tv < 0.75:
		activity = ActivityRoutine
	default:
		activity = ActivityIntense
	}
	// A lord at war is never quiet.
	if (lord == Battle || lord.isSiege()) && activity == ActivityQuiet {
		activity = ActivityRoutine
	}

	atSea := p.travel.Eval2(day/11.0, 2) > 0.9

	return Situation{
		Phase:    t.Phase(),
		Lord:     lord,
		Activity: activity,
		AtSea:    atSea,
		Marching: lord == Marching && !atSea,
	}
}

func (s LordSituation) isSiege() bool {
	return s == SiegeAttacker || s == SiegeDefender
}
