package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/portfolio-tracker/internal/model"
	"github.com/ndewijer/portfolio-tracker/internal/repository"
	"github.com/ndewijer/portfolio-tracker/internal/testutil"
)

// TestTransactionRepository_RoundTrip tests that stored amounts come back exact.
//
// WHY: Quantities and prices are persisted as decimal text. A float column
// would turn 0.1 BTC into 0.1000000000000000055 and every derived value
// would drift.
func TestTransactionRepository_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	built := testutil.NewTransaction().
		WithSymbol("BTC").
		WithCategory(model.CategoryCrypto).
		WithQuantity(0.1).
		WithPrice(42000.37).
		WithFee(0.05).
		Build(t, db)

	got, err := repo.GetTransaction(context.Background(), testutil.TestUserID, built.ID)
	require.NoError(t, err)

	assert.Equal(t, "0.1", got.Quantity.String())
	assert.Equal(t, "42000.37", got.Price.String())
	require.NotNil(t, got.Fee)
	assert.Equal(t, "0.05", got.Fee.String())
	assert.Equal(t, built.Date, got.Date)
	assert.Equal(t, model.CategoryCrypto, got.Category)
}

func TestTransactionRepository_NullFee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	built := testutil.NewTransaction().Build(t, db)

	got, err := repo.GetTransaction(context.Background(), testutil.TestUserID, built.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Fee)
}

// TestTransactionRepository_Ordering tests the two ledger orders.
//
// WHY: Aggregation replays same-day transactions in the order they were
// recorded, so a same-day sell after a buy must never be read back first.
func TestTransactionRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	day := testutil.Date(2024, time.January, 5)
	later := testutil.NewTransaction().WithDate(day.AddDate(0, 0, 1)).Build(t, db)
	buy := testutil.NewTransaction().WithDate(day).Build(t, db)
	sell := testutil.NewTransaction().WithDate(day).Sell().Build(t, db)

	asc, err := repo.GetTransactions(ctx, testutil.TestUserID)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []string{buy.ID, sell.ID, later.ID}, []string{asc[0].ID, asc[1].ID, asc[2].ID})

	desc, err := repo.GetTransactionsDesc(ctx, testutil.TestUserID)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, []string{later.ID, sell.ID, buy.ID}, []string{desc[0].ID, desc[1].ID, desc[2].ID})
}

func TestTransactionRepository_EmptyLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	txs, err := repo.GetTransactions(context.Background(), testutil.TestUserID)
	require.NoError(t, err)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)
}

func TestTransactionRepository_DeleteTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	tx := testutil.NewTransaction().Build(t, db)

	require.NoError(t, repo.DeleteTransaction(ctx, testutil.TestUserID, tx.ID))
	assert.ErrorIs(t, repo.DeleteTransaction(ctx, testutil.TestUserID, tx.ID), apperrors.ErrTransactionNotFound)
}

func TestParseTime(t *testing.T) {
	want := testutil.Date(2024, time.January, 5)

	for _, in := range []string{"2024-01-05", "2024-01-05T00:00:00Z", "2024-01-05 00:00:00"} {
		got, err := repository.ParseTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := repository.ParseTime("05/01/2024")
	assert.Error(t, err)
}
