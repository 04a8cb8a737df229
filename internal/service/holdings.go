package service

import (
	"slices"
	"time"

	"github.com/ndewijer/portfolio-tracker/internal/model"
)

// day truncates t to the start of its UTC calendar day.
func day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SortTransactions returns a copy of txs ordered by date ascending.
// The sort is stable so same-day transactions keep ledger (insertion) order.
func SortTransactions(txs []model.Transaction) []model.Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}

// HoldingsCursor replays a ledger forward one day at a time.
//
// Advance applies every transaction dated on or before the given day that has
// not been applied yet, so walking a calendar costs O(days + transactions)
// rather than replaying the whole ledger on every day.
type HoldingsCursor struct {
	txs      []model.Transaction
	next     int
	holdings map[string]*model.HoldingState
	order    []string
}

// NewHoldingsCursor creates a cursor positioned before the first transaction.
// Every symbol in the ledger starts with a zero holding, carrying the category
// of its first transaction.
func NewHoldingsCursor(txs []model.Transaction) *HoldingsCursor {
	c := &HoldingsCursor{
		txs:      SortTransactions(txs),
		holdings: make(map[string]*model.HoldingState),
	}
	for _, tx := range c.txs {
		symbol := model.NormalizeSymbol(tx.Symbol)
		if _, ok := c.holdings[symbol]; ok {
			continue
		}
		c.holdings[symbol] = &model.HoldingState{Symbol: symbol, Category: tx.Category}
		c.order = append(c.order, symbol)
	}
	return c
}

// Advance applies all pending transactions whose calendar day is on or before asOf.
// Calling Advance with an earlier day than a previous call is a no-op.
func (c *HoldingsCursor) Advance(asOf time.Time) {
	cutoff := day(asOf)
	for c.next < len(c.txs) && !day(c.txs[c.next].Date).After(cutoff) {
		tx := c.txs[c.next]
		applyTransaction(c.holdings[model.NormalizeSymbol(tx.Symbol)], tx)
		c.next++
	}
}

// Holding returns the current state for symbol, or nil if the symbol is not in the ledger.
func (c *HoldingsCursor) Holding(symbol string) *model.HoldingState {
	return c.holdings[symbol]
}

// Symbols returns the ledger's symbols in order of first appearance.
func (c *HoldingsCursor) Symbols() []string {
	return c.order
}

// TotalCostBasis sums the cost basis of every holding.
func (c *HoldingsCursor) TotalCostBasis() model.Money {
	total := model.Money{}
	for _, symbol := range c.order {
		total = total.Add(c.holdings[symbol].CostBasis)
	}
	return total
}

// ComputeHoldings replays the ledger up to and including asOf's calendar day.
//
// The returned map has an entry for every symbol in the ledger, and the slice
// lists those symbols in order of first appearance. Quantity and cost basis are
// never negative: sells are clamped to the quantity held and remove
// avgCost × sold quantity from the cost basis. A sell with nothing held leaves
// a zero holding.
func ComputeHoldings(txs []model.Transaction, asOf time.Time) (map[string]*model.HoldingState, []string) {
	c := NewHoldingsCursor(txs)
	c.Advance(asOf)
	return c.holdings, c.order
}

func applyTransaction(h *model.HoldingState, tx model.Transaction) {
	if !tx.Quantity.IsPositive() {
		return
	}

	switch tx.Type {
	case model.TransactionTypeBuy:
		h.Quantity = h.Quantity.Add(tx.Quantity)
		h.CostBasis = h.CostBasis.Add(tx.Cost())

	case model.TransactionTypeSell:
		sellQty := tx.Quantity.Min(h.Quantity)
		if !sellQty.IsPositive() {
			return
		}
		h.CostBasis = h.CostBasis.Sub(h.AvgCost().Mul(sellQty)).ClampZero()
		h.Quantity = h.Quantity.Sub(sellQty)
		if h.Quantity.IsZero() {
			// drop residual division dust once the position is closed
			h.CostBasis = model.Money{}
		}
	}
}
