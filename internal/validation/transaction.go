package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/portfolio-tracker/internal/api/request"
	"github.com/ndewijer/portfolio-tracker/internal/model"
)

const maxSymbolLength = 20

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - symbol: Non-empty, at most 20 characters
//   - category: One of STOCK, ETF, CRYPTO, GOLD (case-insensitive)
//   - type: BUY or SELL (case-insensitive)
//   - quantity: Must be positive
//   - price: Must be positive
//
// Optional fields:
//   - fee: Must not be negative if provided
//   - date: YYYY-MM-DD or RFC3339 if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	symbol := model.NormalizeSymbol(req.Symbol)
	if symbol == "" {
		errors["symbol"] = "symbol is required"
	} else if len(symbol) > maxSymbolLength {
		errors["symbol"] = fmt.Sprintf("symbol must be at most %d characters", maxSymbolLength)
	}

	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "category is required"
	} else if !model.AssetCategory(strings.ToUpper(req.Category)).Valid() {
		errors["category"] = fmt.Sprintf("invalid category: %s", req.Category)
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.TransactionType(strings.ToUpper(req.Type)).Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if !req.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}

	if !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if req.Fee != nil && req.Fee.IsNegative() {
		errors["fee"] = "fee cannot be negative"
	}

	if strings.TrimSpace(req.Date) != "" {
		if _, err := ParseTime(req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		t, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD or RFC3339")
		}
	}
	return t.UTC(), nil
}
