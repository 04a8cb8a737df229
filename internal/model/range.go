package model

import (
	"fmt"
	"strings"
)

// Range selects a trailing window of a computed timeline.
type Range string

const (
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
	RangeMax   Range = "max"
)

// ParseRange parses a range query value. An empty value means month.
func ParseRange(s string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RangeMonth, nil
	case RangeDay, RangeWeek, RangeMonth, RangeYear, RangeMax:
		return r, nil
	}
	return "", fmt.Errorf("unknown range %q", s)
}
