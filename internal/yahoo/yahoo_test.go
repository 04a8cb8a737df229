package yahoo

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://yahoo.test"

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"currency": "USD", "symbol": "AAPL", "exchangeName": "NMS", "regularMarketPrice": 189.5},
      "timestamp": [1704205800, 1704292200, 1704378600],
      "indicators": {"quote": [{
        "open":   [187.15, null, 182.15],
        "close":  [185.64, null, 181.91],
        "high":   [188.44, null, 183.09],
        "low":    [183.89, null, 180.88],
        "volume": [82488700, null, 71983600]
      }]}
    }],
    "error": null
  }
}`

const notFoundBody = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func newMockedClient(t *testing.T) (*FinanceClient, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	return NewFinanceClient(testBaseURL, &http.Client{Transport: transport}), transport
}

func TestQueryYahooSymbolByDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("returns parsed chart and skips null closes", func(t *testing.T) {
		client, transport := newMockedClient(t)
		transport.RegisterResponder(http.MethodGet,
			"https://yahoo.test/v8/finance/chart/AAPL?interval=1d&period1=1704067200&period2=1704412800",
			httpmock.NewStringResponder(200, chartBody))

		resp, err := client.QueryYahooSymbolByDateRange(context.Background(), "AAPL", start, end)
		require.NoError(t, err)

		chart, err := ParseChart(resp)
		require.NoError(t, err)
		assert.Equal(t, "AAPL", chart.Symbol)
		require.Len(t, chart.Indicators, 2)
		assert.Equal(t, 185.64, chart.Indicators[0].PriceClose)
		assert.Equal(t, 181.91, chart.Indicators[1].PriceClose)
		assert.Equal(t, 1, transport.GetTotalCallCount())
	})

	t.Run("escapes provider symbols", func(t *testing.T) {
		client, transport := newMockedClient(t)
		transport.RegisterRegexpResponder(http.MethodGet,
			regexp.MustCompile(`^https://yahoo\.test/v8/finance/chart/%5EGSPC\?`),
			httpmock.NewStringResponder(200, chartBody))

		_, err := client.QueryYahooSymbolByDateRange(context.Background(), "^GSPC", start, end)
		require.NoError(t, err)
	})

	t.Run("surfaces yahoo error object", func(t *testing.T) {
		client, transport := newMockedClient(t)
		transport.RegisterRegexpResponder(http.MethodGet,
			regexp.MustCompile(`/v8/finance/chart/NOPE`),
			httpmock.NewStringResponder(404, notFoundBody))

		_, err := client.QueryYahooSymbolByDateRange(context.Background(), "NOPE", start, end)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No data found")
	})

	t.Run("non-json error status", func(t *testing.T) {
		client, transport := newMockedClient(t)
		transport.RegisterRegexpResponder(http.MethodGet,
			regexp.MustCompile(`/v8/finance/chart/AAPL`),
			httpmock.NewStringResponder(429, "Too Many Requests"))

		_, err := client.QueryYahooSymbolByDateRange(context.Background(), "AAPL", start, end)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("transport failure", func(t *testing.T) {
		client, transport := newMockedClient(t)
		transport.RegisterRegexpResponder(http.MethodGet,
			regexp.MustCompile(`/v8/finance/chart/AAPL`),
			httpmock.NewErrorResponder(errors.New("connection reset")))

		_, err := client.QueryYahooSymbolByDateRange(context.Background(), "AAPL", start, end)
		assert.Error(t, err)
	})
}

func TestQueryYahooFiveDaySymbol(t *testing.T) {
	client, transport := newMockedClient(t)
	transport.RegisterResponder(http.MethodGet,
		"https://yahoo.test/v8/finance/chart/AAPL?interval=1d&range=5d",
		httpmock.NewStringResponder(200, chartBody))

	resp, err := client.QueryYahooFiveDaySymbol(context.Background(), "AAPL")
	require.NoError(t, err)

	chart, err := ParseChart(resp)
	require.NoError(t, err)

	latest, ok := chart.LatestClose()
	assert.True(t, ok)
	assert.Equal(t, 181.91, latest)
}

func TestParseChart(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		_, err := ParseChart(Response{})
		assert.Error(t, err)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		price := 10.0
		_, err := ParseChart(Response{Chart: Chart{Result: []Result{{
			Timestamp:  []int64{1, 2},
			Indicators: IndicatorsContainer{Quote: []Quote{{Close: []*float64{&price}}}},
		}}}})
		assert.Error(t, err)
	})

	t.Run("latest close falls back to market price", func(t *testing.T) {
		chart := PriceChart{RegularMarketPrice: 42}
		latest, ok := chart.LatestClose()
		assert.True(t, ok)
		assert.Equal(t, 42.0, latest)
	})
}
