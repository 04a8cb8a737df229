package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/portfolio-tracker/internal/api/request"
	"github.com/ndewijer/portfolio-tracker/internal/api/response"
	"github.com/ndewijer/portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/portfolio-tracker/internal/service"
	"github.com/ndewijer/portfolio-tracker/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transactions handles GET requests to list the user's ledger, newest first.
//
// Endpoint: GET /api/transactions
// Response: 200 OK with array of model.Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	transactions, err := h.transactionService.GetTransactions(r.Context(), userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction handles POST requests to record a buy or sell.
//
// Endpoint: POST /api/transactions
// Request Body: CreateTransactionRequest (symbol, name, category, type, quantity, price, fee, note, date)
// Response: 201 Created with model.Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), userID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// DeleteTransaction handles DELETE requests to remove a whole transaction.
//
// Endpoint: DELETE /api/transactions/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if the user has no such transaction
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	transactionID := chi.URLParam(r, "uuid")

	err := h.transactionService.DeleteTransaction(r.Context(), userID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
