package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist
	// for the requesting user.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Request errors represent rejected input or missing credentials.
var (
	// ErrUnauthorized indicates a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRange indicates an unknown range query value.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	ErrInvalidTransactionID = errors.New("transaction ID is required")
	ErrInvalidUserID        = errors.New("user ID is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToCreateTransaction    = errors.New("failed to create transaction")
	ErrFailedToDeleteTransaction    = errors.New("failed to delete transaction")
	ErrFailedToComputeOverview      = errors.New("failed to compute overview")
	ErrFailedToComputePerformance   = errors.New("failed to compute performance")
	ErrFailedToComputeBenchmarks    = errors.New("failed to compute benchmark comparison")
	ErrFailedToComputeAnalytics     = errors.New("failed to compute analytics")
)
