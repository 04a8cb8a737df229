package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the market-data collaborator used by the price service.
// FinanceClient is the production implementation; tests substitute a mock.
type Client interface {
	QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error)
	QueryYahooSymbolByDateRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error)
}

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
// It wraps an HTTP client and provides convenient methods for querying
// daily price charts.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client.
// An empty baseURL selects DefaultBaseURL and a nil httpClient selects a
// plain http.Client; request deadlines come from the caller's context.
//
// Parameters:
//   - baseURL: Scheme and host of the chart API
//   - httpClient: HTTP client used for every request
//
// Returns:
//   - *FinanceClient: A new client instance ready for use
func NewFinanceClient(baseURL string, httpClient *http.Client) *FinanceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &FinanceClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ParseChart converts a raw Yahoo Finance API response into a structured price chart.
// This method extracts price data (open, close, high, low, volume) and metadata
// (symbol, currency, exchange) from the Yahoo response format.
//
// The method performs validation to ensure:
//   - A result is present
//   - Timestamp data is present
//   - Close price data is present
//   - Close and timestamp arrays have matching lengths
//
// Days with a null close are skipped rather than reported as zero.
//
// Parameters:
//   - yahooResult: Raw response from Yahoo Finance API
//
// Returns:
//   - PriceChart: Structured chart with indicators and metadata
//   - error: If data is missing, malformed, or arrays have mismatched lengths
func ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no results returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, v := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		indicators = append(indicators, Indicators{
			Date:       time.Unix(v, 0).UTC(),
			PriceOpen:  floatAt(quote.Open, i),
			PriceClose: *quote.Close[i],
			Volume:     intAt(quote.Volume, i),
			PriceHigh:  floatAt(quote.High, i),
			PriceLow:   floatAt(quote.Low, i),
		})
	}

	chart := PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
		Indicators:       indicators,
	}
	if result.Meta.RegularMarketPrice != nil {
		chart.RegularMarketPrice = *result.Meta.RegularMarketPrice
	}
	return chart, nil
}

func floatAt(values []*float64, i int) float64 {
	if i < len(values) && values[i] != nil {
		return *values[i]
	}
	return 0
}

func intAt(values []*int64, i int) int64 {
	if i < len(values) && values[i] != nil {
		return *values[i]
	}
	return 0
}

// LatestClose returns the most recent non-null close, falling back to the
// regular market price from the metadata.
func (c PriceChart) LatestClose() (float64, bool) {
	for i := len(c.Indicators) - 1; i >= 0; i-- {
		if c.Indicators[i].PriceClose > 0 {
			return c.Indicators[i].PriceClose, true
		}
	}
	if c.RegularMarketPrice > 0 {
		return c.RegularMarketPrice, true
	}
	return 0, false
}

// QueryYahooFiveDaySymbol fetches the last 5 days of daily price data for a symbol.
// This method is optimized for retrieving recent price history, typically used
// to get the latest available closing price.
//
// Parameters:
//   - ctx: Bounds the HTTP request
//   - symbol: Provider ticker symbol (e.g., "AAPL", "BTC-USD", "^GSPC")
//
// Returns:
//   - Response: Raw API response containing price data
//   - error: If the HTTP request fails, API returns an error, or no results found
func (c *FinanceClient) QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	query := url.Values{}
	query.Set("interval", "1d")
	query.Set("range", "5d")

	result, err := c.queryYahoo(ctx, c.chartURL(symbol, query))
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// QueryYahooSymbolByDateRange fetches daily price data for a symbol within a specific date range.
// The method uses Yahoo Finance's period-based query format with Unix timestamps.
//
// Parameters:
//   - ctx: Bounds the HTTP request
//   - symbol: Provider ticker symbol
//   - startDate: Beginning of date range (inclusive)
//   - endDate: End of date range (inclusive)
//
// Returns:
//   - Response: Raw API response containing price data for the range
//   - error: If the HTTP request fails, API returns an error, or no results found
func (c *FinanceClient) QueryYahooSymbolByDateRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error) {
	query := url.Values{}
	query.Set("interval", "1d")
	query.Set("period1", fmt.Sprintf("%d", startDate.Unix()))
	query.Set("period2", fmt.Sprintf("%d", endDate.Unix()))

	result, err := c.queryYahoo(ctx, c.chartURL(symbol, query))
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

func (c *FinanceClient) chartURL(symbol string, query url.Values) string {
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())
}

// queryYahoo is an internal helper that executes HTTP requests to Yahoo Finance API.
// This method handles the common logic for making requests, reading responses,
// parsing JSON, and checking for API errors.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(ctx context.Context, rawURL string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Response{}, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
		}
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	return response, nil
}
