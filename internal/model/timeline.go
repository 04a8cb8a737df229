package model

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar-day format used on the wire.
const DateLayout = "2006-01-02"

// Dated is implemented by any point that sits on a calendar day.
type Dated interface {
	Day() time.Time
}

// TimelinePoint is the portfolio value on one calendar day.
type TimelinePoint struct {
	Date  time.Time
	Value Money
}

func (p TimelinePoint) Day() time.Time { return p.Date }

func (p TimelinePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date           string `json:"date"`
		PortfolioValue Money  `json:"portfolioValue"`
	}{p.Date.Format(DateLayout), p.Value})
}

// NormalizedPoint is growth in percent relative to the first positive value of a series.
type NormalizedPoint struct {
	Date          time.Time
	GrowthPercent float64
}

func (p NormalizedPoint) Day() time.Time { return p.Date }

func (p NormalizedPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}{p.Date.Format(DateLayout), p.GrowthPercent})
}
