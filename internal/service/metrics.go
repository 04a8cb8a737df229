package service

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ndewijer/portfolio-tracker/internal/model"
)

// DefaultRiskFreeRate is the annual risk-free rate used by the Sharpe ratio.
const DefaultRiskFreeRate = 0.02

const daysPerYear = 365

// YearsHeld returns the holding period in 365-day years, floored to 1.
func YearsHeld(first, now time.Time) float64 {
	years := now.Sub(first).Hours() / 24 / daysPerYear
	return math.Max(1, years)
}

// CalculateCAGR returns (end/start)^(1/years) - 1.
// Periods shorter than a year are treated as one year. Returns 0 when start is
// not positive, years is not positive, or the result is not finite.
func CalculateCAGR(start, end model.Money, years float64) float64 {
	if !start.IsPositive() || years <= 0 {
		return 0
	}
	years = math.Max(1, years)

	cagr := math.Pow(end.Ratio(start), 1/years) - 1
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return 0
	}
	return cagr
}

// CalculateSharpeRatio returns (mean(returns) - riskFreeRate) / σ(returns)
// with the population standard deviation.
//
// The returns are cross-sectional: one point-in-time gain fraction per asset,
// not a time series of periodic portfolio returns, so the figure is not a
// conventional Sharpe ratio. Returns 0 for an empty set or zero deviation.
func CalculateSharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	mean, std := stat.PopMeanStdDev(returns, nil)
	if std == 0 || math.IsNaN(std) {
		return 0
	}

	sharpe := (mean - riskFreeRate) / std
	if math.IsNaN(sharpe) || math.IsInf(sharpe, 0) {
		return 0
	}
	return sharpe
}

// CalculateMaxDrawdown returns the most negative (value-peak)/peak seen while
// walking the series, as a fraction (-0.25 is a 25% decline). The first value
// seeds the peak; while the peak is not positive no drawdown is measured.
// Returns 0 for a non-decreasing series or fewer than two points.
func CalculateMaxDrawdown(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	maxDrawdown := 0.0
	peak := values[0]

	for _, value := range values {
		if value > peak {
			peak = value
		}
		if peak <= 0 {
			continue
		}
		if drawdown := (value - peak) / peak; drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return maxDrawdown
}
