package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/portfolio-tracker/internal/model"
)

var hundred = decimal.NewFromInt(100)

// NormalizeSeries rebases a value series to growth percent from its first
// strictly positive value. Points before that base are 0%, as is every point
// when no value is positive. Non-finite results are reported as 0.
func NormalizeSeries(points []model.TimelinePoint) []model.NormalizedPoint {
	normalized := make([]model.NormalizedPoint, len(points))

	base := -1
	for i, p := range points {
		normalized[i].Date = p.Date
		if base < 0 && p.Value.IsPositive() {
			base = i
		}
	}
	if base < 0 {
		return normalized
	}

	baseValue := points[base].Value.Decimal()
	for i := base; i < len(points); i++ {
		pct := model.DivOrZero(points[i].Value.Decimal().Sub(baseValue), baseValue).Mul(hundred).InexactFloat64()
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			pct = 0
		}
		normalized[i].GrowthPercent = pct
	}

	return normalized
}

// AlignSeries projects a price series onto the given calendar days by
// forward-fill. Days before the first price get a zero value.
func AlignSeries(dates []time.Time, series model.PriceSeries) []model.TimelinePoint {
	cursor := priceCursor{series: series}
	aligned := make([]model.TimelinePoint, len(dates))
	for i, d := range dates {
		d = day(d)
		aligned[i] = model.TimelinePoint{Date: d, Value: cursor.at(d)}
	}
	return aligned
}
