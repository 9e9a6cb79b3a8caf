// Package clock provides the camp calendar: day phases, camp time arithmetic,
// and the tick engine that drives the simulation loop.
package clock

import "fmt"

// DayPhase is one of the four recurring segments of a simulated day.
type DayPhase uint8

const (
	PhaseDawn DayPhase = iota
	PhaseMidday
	PhaseDusk
	PhaseNight
)

// Phase boundary hours. Each phase begins at its boundary hour.
const (
	HourDawn   = 6
	HourMidday = 12
	HourDusk   = 18
	HourNight  = 0
)

// PhaseName returns a human-readable phase name.
func PhaseName(p DayPhase) string {
	switch p {
	case PhaseDawn:
		return "Dawn"
	case PhaseMidday:
		return "Midday"
	case PhaseDusk:
		return "Dusk"
	case PhaseNight:
		return "Night"
	default:
		return "Unknown"
	}
}

// PhaseForHour maps an hour of day (0-23) to its phase.
func PhaseForHour(hour int) DayPhase {
	switch {
	case hour >= HourDawn && hour < HourMidday:
		return PhaseDawn
	case hour >= HourMidday && hour < HourDusk:
		return PhaseMidday
	case hour >= HourDusk:
		return PhaseDusk
	default:
		return PhaseNight
	}
}

// IsBoundaryHour reports whether the hour starts a new phase.
func IsBoundaryHour(hour int) bool {
	return hour == HourDawn || hour == HourMidday || hour == HourDusk || hour == HourNight
}

// StartHour returns the hour at which the phase begins.
func StartHour(p DayPhase) int {
	switch p {
	case PhaseDawn:
		return HourDawn
	case PhaseMidday:
		return HourMidday
	case PhaseDusk:
		return HourDusk
	default:
		return HourNight
	}
}

// NextPhase returns the phase following p, wrapping Night back to Dawn.
// carriesDay is true when the transition crosses midnight (Dusk -> Night).
func NextPhase(p DayPhase) (next DayPhase, carriesDay bool) {
	switch p {
	case PhaseDawn:
		return PhaseMidday, false
	case PhaseMidday:
		return PhaseDusk, false
	case PhaseDusk:
		return PhaseNight, true
	default:
		return PhaseDawn, false
	}
}

// CampTime is an absolute position in campaign time.
type CampTime struct {
	Day  int // Campaign day, monotonic from enlistment.
	Hour int // 0-23.
}

// Phase returns the day phase at this time.
func (t CampTime) Phase() DayPhase {
	return PhaseForHour(t.Hour)
}

// TotalHours converts the camp time to absolute hours since day zero.
func (t CampTime) TotalHours() int {
	return t.Day*24 + t.Hour
}

// HoursSince returns the number of hours elapsed from earlier to t.
// Negative when earlier is in the future.
func (t CampTime) HoursSince(earlier CampTime) int {
	return t.TotalHours() - earlier.TotalHours()
}

func (t CampTime) String() string {
	return fmt.Sprintf("Day %d, %02d:00 (%s)", t.Day, t.Hour, PhaseName(t.Phase()))
}
