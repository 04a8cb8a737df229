package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-tracker/internal/model"
	"github.com/ndewijer/portfolio-tracker/internal/service"
	"github.com/ndewijer/portfolio-tracker/internal/testutil"
)

func series(start time.Time, closes map[int]float64) model.PriceSeries {
	var s model.PriceSeries
	for offset := 0; offset < 400; offset++ {
		if c, ok := closes[offset]; ok {
			s = append(s, model.PricePoint{Date: start.AddDate(0, 0, offset), Close: model.M(c)})
		}
	}
	return s
}

func values(points []model.TimelinePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value.Float64()
	}
	return out
}

// TestReconstructTimeline tests the daily valuation walk.
//
// WHY: The timeline drives the performance chart, benchmark comparison and
// drawdown. It must be dense, forward-filled, and isolate missing price data
// to the symbol it belongs to.
func TestReconstructTimeline(t *testing.T) {
	d1 := testutil.Date(2024, time.January, 5) // Friday

	t.Run("one point per calendar day with forward fill", func(t *testing.T) {
		txs := []model.Transaction{buy("NVDA", 10, 100, d1)}
		prices := map[string]model.PriceSeries{
			// no quotes over the weekend (offsets 1, 2)
			"NVDA": series(d1, map[int]float64{0: 100, 3: 110, 4: 120}),
		}

		points := service.ReconstructTimeline(txs, prices, d1, d1.AddDate(0, 0, 5), service.AnchorMarketValue)

		require.Len(t, points, 6)
		for i, p := range points {
			assert.Equal(t, d1.AddDate(0, 0, i), p.Date)
		}
		assert.Equal(t, []float64{1000, 1000, 1000, 1100, 1200, 1200}, values(points))
	})

	t.Run("symbol contributes zero before its first price", func(t *testing.T) {
		txs := []model.Transaction{buy("NVDA", 10, 100, d1)}
		prices := map[string]model.PriceSeries{
			"NVDA": series(d1, map[int]float64{2: 105}),
		}

		points := service.ReconstructTimeline(txs, prices, d1, d1.AddDate(0, 0, 3), service.AnchorMarketValue)

		assert.Equal(t, []float64{0, 0, 1050, 1050}, values(points))
	})

	t.Run("holdings change on the transaction day", func(t *testing.T) {
		txs := []model.Transaction{
			buy("NVDA", 10, 100, d1),
			sell("NVDA", 4, 120, d1.AddDate(0, 0, 2)),
		}
		prices := map[string]model.PriceSeries{
			"NVDA": series(d1, map[int]float64{0: 100, 1: 110, 2: 120, 3: 130}),
		}

		points := service.ReconstructTimeline(txs, prices, d1, d1.AddDate(0, 0, 3), service.AnchorMarketValue)

		assert.Equal(t, []float64{1000, 1100, 720, 780}, values(points))
	})

	t.Run("cost basis anchor replaces the first point", func(t *testing.T) {
		txs := []model.Transaction{
			buy("NVDA", 10, 100, d1),
			buy("AMD", 5, 40, d1),
		}
		prices := map[string]model.PriceSeries{
			"NVDA": series(d1, map[int]float64{0: 102, 1: 104}),
			"AMD":  series(d1, map[int]float64{0: 41, 1: 42}),
		}

		points := service.ReconstructTimeline(txs, prices, d1, d1.AddDate(0, 0, 1), service.AnchorCostBasis)

		assert.Equal(t, []float64{1200, 1250}, values(points))
	})

	t.Run("failed symbol contributes zero and leaves others intact", func(t *testing.T) {
		txs := []model.Transaction{
			buy("AAA", 10, 10, d1),
			buy("XYZ", 5, 20, d1),
		}
		prices := map[string]model.PriceSeries{
			"AAA": series(d1, map[int]float64{0: 10, 1: 11, 2: 12}),
			"XYZ": {},
		}

		points := service.ReconstructTimeline(txs, prices, d1, d1.AddDate(0, 0, 2), service.AnchorMarketValue)
		assert.Equal(t, []float64{100, 110, 120}, values(points))

		// with the cost anchor only the first point differs
		anchored := service.ReconstructTimeline(txs, prices, d1, d1.AddDate(0, 0, 2), service.AnchorCostBasis)
		assert.Equal(t, 200.0, anchored[0].Value.Float64())
		assert.Equal(t, values(points)[1:], values(anchored)[1:])
	})

	t.Run("empty ledger or inverted window", func(t *testing.T) {
		assert.Empty(t, service.ReconstructTimeline(nil, nil, d1, d1.AddDate(0, 0, 3), service.AnchorCostBasis))

		txs := []model.Transaction{buy("NVDA", 10, 100, d1)}
		assert.Empty(t, service.ReconstructTimeline(txs, nil, d1, d1.AddDate(0, 0, -1), service.AnchorCostBasis))
	})

	t.Run("decimal accumulation has no float drift", func(t *testing.T) {
		var txs []model.Transaction
		for i := 0; i < 10; i++ {
			txs = append(txs, buy("BTC", 0.1, 0.1, d1))
		}
		prices := map[string]model.PriceSeries{"BTC": series(d1, map[int]float64{0: 0.1})}

		points := service.ReconstructTimeline(txs, prices, d1, d1, service.AnchorMarketValue)

		require.Len(t, points, 1)
		assert.Equal(t, "0.1", points[0].Value.String())
	})

	t.Run("json shape", func(t *testing.T) {
		data, err := json.Marshal(model.TimelinePoint{Date: d1, Value: model.M(1000)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"date":"2024-01-05","portfolioValue":1000}`, string(data))
	})
}
