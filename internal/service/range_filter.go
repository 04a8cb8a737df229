package service

import (
	"time"

	"github.com/ndewijer/portfolio-tracker/internal/model"
)

// RangeCutoff returns the first calendar day included by r relative to now.
// The boolean is false for RangeMax, which has no cutoff.
func RangeCutoff(r model.Range, now time.Time) (time.Time, bool) {
	today := day(now)
	switch r {
	case model.RangeDay:
		return today.AddDate(0, 0, -2), true
	case model.RangeWeek:
		return today.AddDate(0, 0, -7), true
	case model.RangeMonth:
		return today.AddDate(0, -1, 0), true
	case model.RangeYear:
		return today.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// FilterRange keeps the points dated on or after r's cutoff.
// It only selects points; values are never recomputed, so metrics over the
// full series stay the same whichever range is being viewed.
func FilterRange[P model.Dated](points []P, r model.Range, now time.Time) []P {
	cutoff, ok := RangeCutoff(r, now)
	if !ok {
		return points
	}

	filtered := make([]P, 0, len(points))
	for _, p := range points {
		if !p.Day().Before(cutoff) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
