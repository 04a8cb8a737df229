package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/portfolio-tracker/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Every query is scoped to a single user.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, symbol, name, category, type, quantity, price, fee, note, date, created_at`

// GetTransactions retrieves the full ledger of a user in aggregation order:
// date ascending, ties broken by insertion order.
func (r *TransactionRepository) GetTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	return r.query(ctx, `
		SELECT `+transactionColumns+`
		FROM "transaction"
		WHERE user_id = ?
		ORDER BY date ASC, seq ASC
	`, userID)
}

// GetTransactionsDesc retrieves the ledger newest first, for listing.
func (r *TransactionRepository) GetTransactionsDesc(ctx context.Context, userID string) ([]model.Transaction, error) {
	return r.query(ctx, `
		SELECT `+transactionColumns+`
		FROM "transaction"
		WHERE user_id = ?
		ORDER BY date DESC, seq DESC
	`, userID)
}

// GetTransaction retrieves one transaction owned by the user.
// Returns apperrors.ErrTransactionNotFound when no such row exists.
func (r *TransactionRepository) GetTransaction(ctx context.Context, userID, id string) (model.Transaction, error) {
	txs, err := r.query(ctx, `
		SELECT `+transactionColumns+`
		FROM "transaction"
		WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return model.Transaction{}, err
	}
	if len(txs) == 0 {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return txs[0], nil
}

// InsertTransaction appends a transaction to the ledger.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	var fee sql.NullString
	if t.Fee != nil {
		fee = sql.NullString{String: t.Fee.String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO "transaction" (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID,
		t.UserID,
		t.Symbol,
		t.Name,
		string(t.Category),
		string(t.Type),
		t.Quantity.String(),
		t.Price.String(),
		fee,
		t.Note,
		formatTime(t.Date),
		formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a whole transaction record owned by the user.
// Returns apperrors.ErrTransactionNotFound when nothing was deleted.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) query(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var t model.Transaction
	var name, note, fee sql.NullString
	var category, txType, quantityStr, priceStr, dateStr, createdAtStr string

	err := rows.Scan(
		&t.ID,
		&t.UserID,
		&t.Symbol,
		&name,
		&category,
		&txType,
		&quantityStr,
		&priceStr,
		&fee,
		&note,
		&dateStr,
		&createdAtStr,
	)
	if err != nil {
		return t, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Name = name.String
	t.Note = note.String
	t.Category = model.AssetCategory(category)
	t.Type = model.TransactionType(txType)

	if t.Quantity, err = model.ParseQuantity(quantityStr); err != nil {
		return t, fmt.Errorf("transaction %s: %w", t.ID, err)
	}
	if t.Price, err = model.ParseMoney(priceStr); err != nil {
		return t, fmt.Errorf("transaction %s: %w", t.ID, err)
	}
	if fee.Valid {
		f, err := model.ParseMoney(fee.String)
		if err != nil {
			return t, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		t.Fee = &f
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return t, fmt.Errorf("transaction %s: %w", t.ID, err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return t, fmt.Errorf("transaction %s: %w", t.ID, err)
	}

	return t, nil
}
