package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ndewijer/portfolio-tracker/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// Responses are keyed by provider symbol (e.g. "BTC-USD", "^GSPC"); a symbol
// with no configured response fails like an unknown ticker. It is safe for
// concurrent use by the price service's fan-out.
type MockYahooClient struct {
	mu        sync.Mutex
	history   map[string]yahoo.Response
	current   map[string]yahoo.Response
	errors    map[string]error
	mockError error
	queries   map[string]int
}

// NewMockYahooClient creates a mock with no configured symbols.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		history: make(map[string]yahoo.Response),
		current: make(map[string]yahoo.Response),
		errors:  make(map[string]error),
		queries: make(map[string]int),
	}
}

// WithError configures the mock to fail every query with err.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mockError = err
	return m
}

// WithSymbolError configures queries for one provider symbol to fail with err.
func (m *MockYahooClient) WithSymbolError(symbol string, err error) *MockYahooClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[symbol] = err
	return m
}

// WithHistory sets the date-range response for symbol to one close per date.
func (m *MockYahooClient) WithHistory(symbol string, dates []time.Time, closes []float64) *MockYahooClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[symbol] = CreateMockYahooResponseForCloses(symbol, dates, closes)
	return m
}

// WithCurrentPrice sets the five-day response for symbol to end at price.
func (m *MockYahooClient) WithCurrentPrice(symbol string, price float64) *MockYahooClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	m.current[symbol] = CreateMockYahooResponseForCloses(symbol,
		[]time.Time{now.AddDate(0, 0, -1), now},
		[]float64{price, price})
	return m
}

// QueryCount returns how many queries were made for symbol.
func (m *MockYahooClient) QueryCount(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries[symbol]
}

func (m *MockYahooClient) lookup(symbol string, responses map[string]yahoo.Response) (yahoo.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries[symbol]++

	if m.mockError != nil {
		return yahoo.Response{}, m.mockError
	}
	if err, ok := m.errors[symbol]; ok {
		return yahoo.Response{}, err
	}
	resp, ok := responses[symbol]
	if !ok {
		return CreateMockYahooErrorResponse("No data found, symbol may be delisted"),
			fmt.Errorf("yahoo error: Not Found: no data for %s", symbol)
	}
	return resp, nil
}

// QueryYahooFiveDaySymbol returns the configured current-price response.
func (m *MockYahooClient) QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (yahoo.Response, error) {
	if err := ctx.Err(); err != nil {
		return yahoo.Response{}, err
	}
	return m.lookup(symbol, m.current)
}

// QueryYahooSymbolByDateRange returns the configured history; the range is not applied.
func (m *MockYahooClient) QueryYahooSymbolByDateRange(ctx context.Context, symbol string, _, _ time.Time) (yahoo.Response, error) {
	if err := ctx.Err(); err != nil {
		return yahoo.Response{}, err
	}
	return m.lookup(symbol, m.history)
}

// CreateMockYahooResponseForCloses creates a chart response with one bar per date.
// Bars are stamped at 14:30 UTC like US market opens so day truncation is exercised.
func CreateMockYahooResponseForCloses(symbol string, dates []time.Time, closes []float64) yahoo.Response {
	timestamps := make([]int64, len(dates))
	closePtrs := make([]*float64, len(dates))
	volumes := make([]*int64, len(dates))

	for i, d := range dates {
		u := d.UTC()
		timestamps[i] = time.Date(u.Year(), u.Month(), u.Day(), 14, 30, 0, 0, time.UTC).Unix()
		price := closes[i]
		closePtrs[i] = &price
		volume := int64(1000000 + i*10000)
		volumes[i] = &volume
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:       symbol,
						Currency:     "USD",
						ExchangeName: "NMS",
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{
							{
								Open:   closePtrs,
								High:   closePtrs,
								Low:    closePtrs,
								Close:  closePtrs,
								Volume: volumes,
							},
						},
					},
				},
			},
		},
	}
}

// CreateMockYahooErrorResponse creates a mock Yahoo response with an error.
// Useful for testing error handling scenarios.
func CreateMockYahooErrorResponse(description string) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
			Error:  &yahoo.Error{Code: "Not Found", Description: description},
		},
	}
}
