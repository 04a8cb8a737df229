package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance chart API.
//
// The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata (name, currency, exchange)
//   - Chart.Result[].Timestamp: Unix timestamps for each data point
//   - Chart.Result[].Indicators: Price data arrays (open, close, high, low, volume)
//   - Chart.Error: Optional error object from Yahoo API
//
// Price arrays hold pointers because Yahoo emits null for days without a quote.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level chart envelope.
type Chart struct {
	Result []Result `json:"result"`
	Error  *Error   `json:"error"`
}

// Error is the error object Yahoo returns for unknown symbols and bad ranges.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result holds the series for one symbol.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta is the symbol metadata.
type Meta struct {
	Currency           string   `json:"currency"`
	Symbol             string   `json:"symbol"`
	ExchangeName       string   `json:"exchangeName"`
	FullExchangeName   string   `json:"fullExchangeName"`
	LongName           string   `json:"longName"`
	Shortname          string   `json:"shortName"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
}

// IndicatorsContainer wraps the quote arrays.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds parallel OHLCV arrays indexed like Result.Timestamp.
type Quote struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
}

// PriceChart represents a parsed and structured price chart from Yahoo Finance.
// This is the application's internal representation after parsing the raw Response.
type PriceChart struct {
	Currency           string       `json:"currency"`
	Symbol             string       `json:"symbol"`
	ExchangeName       string       `json:"exchangeName"`
	FullExchangeName   string       `json:"fullExchangeName"`
	LongName           string       `json:"longName"`
	Shortname          string       `json:"shortName"`
	RegularMarketPrice float64      `json:"regularMarketPrice"`
	Indicators         []Indicators `json:"indicators"`
}

// Indicators represents a single day's price data for a financial instrument.
// Days where Yahoo reported no close are omitted by ParseChart; missing open,
// high, low or volume values are reported as zero.
type Indicators struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	Volume     int64
	PriceHigh  float64
	PriceLow   float64
}
