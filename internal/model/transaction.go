package model

import (
	"strings"
	"time"
)

// TransactionType is the direction of a ledger entry.
type TransactionType string

// AssetCategory groups symbols for allocation and category summaries.
type AssetCategory string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

const (
	CategoryStock  AssetCategory = "STOCK"
	CategoryETF    AssetCategory = "ETF"
	CategoryCrypto AssetCategory = "CRYPTO"
	CategoryGold   AssetCategory = "GOLD"
)

// Valid reports whether t is BUY or SELL.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeBuy || t == TransactionTypeSell
}

// Valid reports whether c is one of the supported categories.
func (c AssetCategory) Valid() bool {
	switch c {
	case CategoryStock, CategoryETF, CategoryCrypto, CategoryGold:
		return true
	}
	return false
}

// Transaction is a single immutable ledger entry owned by a user.
// Ledger order is by Date ascending, ties broken by insertion order.
type Transaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name,omitempty"`
	Category  AssetCategory   `json:"category"`
	Type      TransactionType `json:"type"`
	Quantity  Quantity        `json:"quantity"`
	Price     Money           `json:"price"`
	Fee       *Money          `json:"fee"`
	Note      string          `json:"note,omitempty"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Cost returns quantity times price. Fees are not part of the cost basis.
func (t Transaction) Cost() Money {
	return t.Quantity.Times(t.Price)
}

// NormalizeSymbol trims and upper-cases a ticker so "nvda " and "NVDA" are one holding.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
