package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-tracker/internal/model"
	"github.com/ndewijer/portfolio-tracker/internal/service"
	"github.com/ndewijer/portfolio-tracker/internal/testutil"
)

func timeline(start time.Time, vals ...float64) []model.TimelinePoint {
	points := make([]model.TimelinePoint, len(vals))
	for i, v := range vals {
		points[i] = model.TimelinePoint{Date: start.AddDate(0, 0, i), Value: model.M(v)}
	}
	return points
}

func growth(points []model.NormalizedPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.GrowthPercent
	}
	return out
}

func TestNormalizeSeries(t *testing.T) {
	d1 := testutil.Date(2024, time.March, 1)

	t.Run("base is the first positive value", func(t *testing.T) {
		got := service.NormalizeSeries(timeline(d1, 0, 50, 100))
		assert.Equal(t, []float64{0, 0, 100}, growth(got))
		assert.Equal(t, d1.AddDate(0, 0, 2), got[2].Date)
	})

	t.Run("first positive point maps to zero", func(t *testing.T) {
		got := service.NormalizeSeries(timeline(d1, 0, 0, 80, 60, 120))
		assert.Equal(t, 0.0, got[2].GrowthPercent)
		assert.InDelta(t, -25.0, got[3].GrowthPercent, 1e-9)
		assert.InDelta(t, 50.0, got[4].GrowthPercent, 1e-9)
	})

	t.Run("no positive value yields all zero", func(t *testing.T) {
		got := service.NormalizeSeries(timeline(d1, 0, 0, 0))
		assert.Equal(t, []float64{0, 0, 0}, growth(got))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, service.NormalizeSeries(nil))
	})
}

func TestAlignSeries(t *testing.T) {
	d1 := testutil.Date(2024, time.March, 1)
	dates := []time.Time{d1, d1.AddDate(0, 0, 1), d1.AddDate(0, 0, 2), d1.AddDate(0, 0, 3)}
	prices := model.PriceSeries{
		{Date: d1.AddDate(0, 0, 1), Close: model.M(10)},
		{Date: d1.AddDate(0, 0, 3), Close: model.M(12)},
	}

	aligned := service.AlignSeries(dates, prices)

	assert.Equal(t, []float64{0, 10, 10, 12}, values(aligned))
	assert.Equal(t, []float64{0, 0, 0, 20}, growth(service.NormalizeSeries(aligned)))
}

func TestCalculateCAGR(t *testing.T) {
	t.Run("short periods are floored to one year", func(t *testing.T) {
		assert.Equal(t, service.CalculateCAGR(model.M(100), model.M(100), 1), service.CalculateCAGR(model.M(100), model.M(100), 0.5))
		assert.Zero(t, service.CalculateCAGR(model.M(100), model.M(100), 0.5))
		assert.InDelta(t, 0.5, service.CalculateCAGR(model.M(100), model.M(150), 0.25), 1e-12)
	})

	t.Run("annualizes multi-year growth", func(t *testing.T) {
		assert.InDelta(t, 0.1, service.CalculateCAGR(model.M(100), model.M(121), 2), 1e-12)
	})

	t.Run("guards", func(t *testing.T) {
		assert.Zero(t, service.CalculateCAGR(model.M(0), model.M(150), 2))
		assert.Zero(t, service.CalculateCAGR(model.M(-10), model.M(150), 2))
		assert.Zero(t, service.CalculateCAGR(model.M(100), model.M(150), 0))
		assert.Zero(t, service.CalculateCAGR(model.M(100), model.M(-50), 2))
	})
}

func TestYearsHeld(t *testing.T) {
	first := testutil.Date(2022, time.January, 1)

	assert.Equal(t, 1.0, service.YearsHeld(first, first.AddDate(0, 3, 0)))
	assert.InDelta(t, 2.0, service.YearsHeld(first, first.AddDate(0, 0, 730)), 1e-12)
}

func TestCalculateSharpeRatio(t *testing.T) {
	t.Run("population deviation of per-asset returns", func(t *testing.T) {
		// mean 0.15, population σ 0.35
		got := service.CalculateSharpeRatio([]float64{0.5, -0.2}, 0.02)
		assert.InDelta(t, 0.13/0.35, got, 1e-12)
	})

	t.Run("empty or zero deviation", func(t *testing.T) {
		assert.Zero(t, service.CalculateSharpeRatio(nil, 0.02))
		assert.Zero(t, service.CalculateSharpeRatio([]float64{0.25, 0.25}, 0.02))
		assert.Zero(t, service.CalculateSharpeRatio([]float64{0.3}, 0.02))
	})
}

func TestCalculateMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"single point", []float64{100}, 0},
		{"empty", nil, 0},
		{"non-decreasing", []float64{100, 100, 120, 150}, 0},
		{"deepest decline from running peak", []float64{100, 120, 90, 130, 104}, -0.25},
		{"leading zeros are skipped", []float64{0, 0, 100, 50, 80}, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, service.CalculateMaxDrawdown(tt.values), 1e-12)
		})
	}
}

func TestFilterRange(t *testing.T) {
	now := time.Date(2024, time.March, 31, 15, 0, 0, 0, time.UTC)
	start := testutil.Date(2023, time.January, 1)

	var full []model.TimelinePoint
	for d := start; !d.After(testutil.Date(2024, time.March, 31)); d = d.AddDate(0, 0, 1) {
		full = append(full, model.TimelinePoint{Date: d, Value: model.M(d.YearDay())})
	}

	tests := []struct {
		r         model.Range
		wantFirst time.Time
	}{
		{model.RangeDay, testutil.Date(2024, time.March, 29)},
		{model.RangeWeek, testutil.Date(2024, time.March, 24)},
		{model.RangeMonth, testutil.Date(2024, time.March, 2)}, // Feb 31 normalizes to Mar 2
		{model.RangeYear, testutil.Date(2023, time.March, 31)},
		{model.RangeMax, start},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			got := service.FilterRange(full, tt.r, now)

			require.NotEmpty(t, got)
			assert.Equal(t, tt.wantFirst, got[0].Date)
			assert.Equal(t, full[len(full)-1], got[len(got)-1])

			// values are selected, never recomputed
			offset := len(full) - len(got)
			for i, p := range got {
				assert.True(t, p.Value.Equal(full[offset+i].Value))
			}
		})
	}

	t.Run("works on normalized points", func(t *testing.T) {
		normalized := service.NormalizeSeries(full)
		got := service.FilterRange(normalized, model.RangeDay, now)
		assert.Len(t, got, 3)
	})
}
