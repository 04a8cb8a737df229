package service

import (
	"time"

	"github.com/ndewijer/portfolio-tracker/internal/model"
)

// AnchorPolicy decides what the first point of a reconstructed timeline holds.
type AnchorPolicy int

const (
	// AnchorCostBasis replaces the first day's value with the cost basis held
	// that day, so gain displays start from the invested amount.
	AnchorCostBasis AnchorPolicy = iota
	// AnchorMarketValue keeps the first day's market value.
	AnchorMarketValue
)

// priceCursor forward-fills one symbol's series across a calendar walk.
type priceCursor struct {
	series model.PriceSeries
	next   int
	last   model.Money
}

// at returns the last known close on or before d. Days must be visited in order.
func (c *priceCursor) at(d time.Time) model.Money {
	for c.next < len(c.series) && !c.series[c.next].Date.After(d) {
		c.last = c.series[c.next].Close
		c.next++
	}
	return c.last
}

// ReconstructTimeline values the portfolio on every calendar day from firstDate
// to lastDate inclusive.
//
// Each day's value is Σ held quantity × last known close, where the held
// quantity comes from replaying the ledger through that day and the close is
// forward-filled from seriesBySymbol (keyed by normalized symbol). A symbol
// contributes zero until its first price point, and a symbol with no series
// contributes zero throughout. The result has exactly one point per day in
// ascending order; it is empty for an empty ledger or lastDate before firstDate.
func ReconstructTimeline(
	txs []model.Transaction,
	seriesBySymbol map[string]model.PriceSeries,
	firstDate, lastDate time.Time,
	anchor AnchorPolicy,
) []model.TimelinePoint {
	start, end := day(firstDate), day(lastDate)
	if len(txs) == 0 || end.Before(start) {
		return []model.TimelinePoint{}
	}

	holdings := NewHoldingsCursor(txs)
	symbols := holdings.Symbols()

	cursors := make(map[string]*priceCursor, len(symbols))
	for _, symbol := range symbols {
		cursors[symbol] = &priceCursor{series: seriesBySymbol[symbol]}
	}

	points := make([]model.TimelinePoint, 0, int(end.Sub(start).Hours()/24)+1)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		holdings.Advance(date)

		value := model.Money{}
		for _, symbol := range symbols {
			price := cursors[symbol].at(date)
			value = value.Add(holdings.Holding(symbol).Quantity.Times(price))
		}

		if len(points) == 0 && anchor == AnchorCostBasis {
			value = holdings.TotalCostBasis()
		}

		points = append(points, model.TimelinePoint{Date: date, Value: value})
	}

	return points
}
