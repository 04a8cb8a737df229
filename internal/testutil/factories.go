package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/portfolio-tracker/internal/model"
	"github.com/ndewijer/portfolio-tracker/internal/repository"
)

// TestUserID is the default ledger owner used by builders.
const TestUserID = "user-1"

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple creation with defaults (BUY 10 NVDA @ 100 on 2024-01-02)
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction().
//	    WithSymbol("BTC").
//	    WithCategory(model.CategoryCrypto).
//	    Sell().
//	    WithQuantity(0.5).
//	    Build(t, db)
type TransactionBuilder struct {
	tx model.Transaction
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{tx: model.Transaction{
		ID:        MakeID(),
		UserID:    TestUserID,
		Symbol:    "NVDA",
		Category:  model.CategoryStock,
		Type:      model.TransactionTypeBuy,
		Quantity:  model.Q(10),
		Price:     model.M(100),
		Date:      Date(2024, time.January, 2),
		CreatedAt: time.Now().UTC(),
	}}
}

// WithUser sets the owning user.
func (b *TransactionBuilder) WithUser(userID string) *TransactionBuilder {
	b.tx.UserID = userID
	return b
}

// WithSymbol sets the ticker.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.tx.Symbol = symbol
	return b
}

// WithCategory sets the asset category.
func (b *TransactionBuilder) WithCategory(category model.AssetCategory) *TransactionBuilder {
	b.tx.Category = category
	return b
}

// Sell marks the transaction as a SELL.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.tx.Type = model.TransactionTypeSell
	return b
}

// WithQuantity sets the quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.tx.Quantity = model.Q(quantity)
	return b
}

// WithPrice sets the per-unit price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.tx.Price = model.M(price)
	return b
}

// WithFee sets the fee.
func (b *TransactionBuilder) WithFee(fee float64) *TransactionBuilder {
	f := model.M(fee)
	b.tx.Fee = &f
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.tx.Date = date
	return b
}

// Model returns the transaction without persisting it.
func (b *TransactionBuilder) Model() model.Transaction {
	return b.tx
}

// Build inserts the transaction into the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	repo := repository.NewTransactionRepository(db)
	if err := repo.InsertTransaction(context.Background(), &b.tx); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	return b.tx
}
