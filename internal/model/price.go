package model

import "time"

// PricePoint is one daily close. Date is truncated to the UTC calendar day.
type PricePoint struct {
	Date  time.Time
	Close Money
}

// PriceSeries is ordered by Date ascending with at most one point per day.
type PriceSeries []PricePoint

// Latest returns the last close in the series, or zero for an empty series.
func (s PriceSeries) Latest() Money {
	if len(s) == 0 {
		return Money{}
	}
	return s[len(s)-1].Close
}
