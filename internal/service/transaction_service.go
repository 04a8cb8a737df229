package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/portfolio-tracker/internal/api/request"
	"github.com/ndewijer/portfolio-tracker/internal/model"
	"github.com/ndewijer/portfolio-tracker/internal/repository"
	"github.com/ndewijer/portfolio-tracker/internal/validation"
)

// TransactionService handles ledger operations. Transactions are immutable:
// they can be created or deleted as a whole, never edited.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	now             func() time.Time
	log             zerolog.Logger
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	log zerolog.Logger,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		now:             time.Now,
		log:             log.With().Str("component", "transaction_service").Logger(),
	}
}

// GetTransactions returns the user's ledger, newest first.
func (s *TransactionService) GetTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactionsDesc(ctx, userID)
}

// GetTransaction retrieves a single transaction owned by the user.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, userID, id)
}

// CreateTransaction records a validated request in the user's ledger.
// The symbol is normalized to upper case and a missing date defaults to now.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req request.CreateTransactionRequest) (*model.Transaction, error) {
	now := s.now().UTC()

	date := now
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := validation.ParseTime(req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Symbol:    model.NormalizeSymbol(req.Symbol),
		Name:      strings.TrimSpace(req.Name),
		Category:  model.AssetCategory(strings.ToUpper(req.Category)),
		Type:      model.TransactionType(strings.ToUpper(req.Type)),
		Quantity:  req.Quantity,
		Price:     req.Price,
		Fee:       req.Fee,
		Note:      req.Note,
		Date:      date,
		CreatedAt: now,
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.log.Info().
		Str("transaction_id", transaction.ID).
		Str("symbol", transaction.Symbol).
		Str("type", string(transaction.Type)).
		Msg("transaction recorded")

	return transaction, nil
}

// DeleteTransaction removes a whole transaction owned by the user.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info().Str("transaction_id", id).Msg("transaction deleted")
	return nil
}
