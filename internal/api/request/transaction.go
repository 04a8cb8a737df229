package request

import "github.com/ndewijer/portfolio-tracker/internal/model"

// CreateTransactionRequest is the body of POST /api/transactions.
// Numeric fields accept JSON numbers or decimal strings. Date is optional
// (YYYY-MM-DD or RFC3339) and defaults to now.
type CreateTransactionRequest struct {
	Symbol   string         `json:"symbol"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Type     string         `json:"type"`
	Quantity model.Quantity `json:"quantity"`
	Price    model.Money    `json:"price"`
	Fee      *model.Money   `json:"fee"`
	Note     string         `json:"note"`
	Date     string         `json:"date"`
}
