package readtime

import (
	"fmt"
	"math"
)

// FormatDuration renders a duration in minutes as a human-readable string:
//
//	under a minute     "30 sec"
//	under an hour      "5 min" or "5 min 30 sec"
//	an hour or more    "1h 15m"
//
// Rounding is to the nearest second (or minute in the hour form), half away
// from zero, with carries across the 60-second and 60-minute boundaries.
// Negative, NaN, and infinite inputs are clamped to zero.
func FormatDuration(minutes float64) string {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		minutes = 0
	}

	if minutes < 1 {
		sec := int(math.Round(minutes * 60))
		if sec == 60 {
			return "1 min"
		}
		return fmt.Sprintf("%d sec", sec)
	}

	if minutes < 60 {
		m := int(minutes)
		s := int(math.Round((minutes - float64(m)) * 60))
		if s == 60 {
			m++
			s = 0
		}
		if m == 60 {
			return "1h 0m"
		}
		if s == 0 {
			return fmt.Sprintf("%d min", m)
		}
		return fmt.Sprintf("%d min %d sec", m, s)
	}

	h := int(minutes / 60)
	m := int(math.Round(minutes - float64(h)*60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatTimes renders all four reading-time estimates.
func FormatTimes(t Times) map[string]string {
	return map[string]string{
		"slow":    FormatDuration(t.Slow),
		"average": FormatDuration(t.Average),
		"fast":    FormatDuration(t.Fast),
		"skim":    FormatDuration(t.Skim),
	}
}
