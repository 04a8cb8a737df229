package service

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/portfolio-tracker/internal/model"
	"github.com/ndewijer/portfolio-tracker/internal/repository"
)

const (
	topHoldingsLimit = 5
	performersLimit  = 3
	projectionYears  = 5
)

// Benchmark is a named market reference series.
type Benchmark struct {
	Name   string
	Symbol string
}

// Benchmarks is the fixed comparison set: broad equity, tech, crypto and commodity.
var Benchmarks = []Benchmark{
	{Name: "sp500", Symbol: "^GSPC"},
	{Name: "nasdaq", Symbol: "^NDX"},
	{Name: "btc", Symbol: "BTC-USD"},
	{Name: "gold", Symbol: "GC=F"},
}

// PortfolioConfig holds valuation policy.
type PortfolioConfig struct {
	RiskFreeRate float64
	Anchor       AnchorPolicy
}

// PortfolioService computes valuations, timelines and analytics for one user's ledger.
//
// Every operation reads the ledger once at the start and recomputes holdings
// from scratch; nothing is shared between requests except the price cache.
type PortfolioService struct {
	transactionRepo *repository.TransactionRepository
	priceService    *PriceService
	cfg             PortfolioConfig
	now             func() time.Time
	log             zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(
	transactionRepo *repository.TransactionRepository,
	priceService *PriceService,
	cfg PortfolioConfig,
	log zerolog.Logger,
) *PortfolioService {
	return &PortfolioService{
		transactionRepo: transactionRepo,
		priceService:    priceService,
		cfg:             cfg,
		now:             time.Now,
		log:             log.With().Str("component", "portfolio_service").Logger(),
	}
}

// WithClock replaces the service's notion of "now". Used by tests.
func (s *PortfolioService) WithClock(now func() time.Time) *PortfolioService {
	s.now = now
	return s
}

func (s *PortfolioService) loadLedger(ctx context.Context, userID string) ([]model.Transaction, error) {
	txs, err := s.transactionRepo.GetTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return txs, nil
}

// pricedHolding is a holding valued at the current price.
type pricedHolding struct {
	state        *model.HoldingState
	price        model.Money
	currentValue model.Money
}

func (s *PortfolioService) priceHoldings(ctx context.Context, txs []model.Transaction, now time.Time) []pricedHolding {
	holdings, order := ComputeHoldings(txs, now)
	prices := s.priceService.CurrentPrices(ctx, order)

	priced := make([]pricedHolding, len(order))
	for i, symbol := range order {
		h := holdings[symbol]
		priced[i] = pricedHolding{
			state:        h,
			price:        prices[symbol],
			currentValue: h.Quantity.Times(prices[symbol]),
		}
	}
	return priced
}

// ComputeOverview returns the current-state snapshot of the user's portfolio.
// An empty ledger yields zero totals and empty arrays.
func (s *PortfolioService) ComputeOverview(ctx context.Context, userID string) (model.Overview, error) {
	overview := model.Overview{
		Categories:  []model.CategorySummary{},
		Allocation:  []model.Allocation{},
		HoldingList: []model.HoldingSummary{},
		TopHoldings: []model.TopHolding{},
	}

	txs, err := s.loadLedger(ctx, userID)
	if err != nil {
		return overview, err
	}
	if len(txs) == 0 {
		return overview, nil
	}

	priced := s.priceHoldings(ctx, txs, s.now())

	totalValue, totalCost := model.Money{}, model.Money{}
	type categoryTotals struct{ value, cost model.Money }
	byCategory := map[model.AssetCategory]*categoryTotals{}
	var categoryOrder []model.AssetCategory

	for _, p := range priced {
		h := p.state
		totalValue = totalValue.Add(p.currentValue)
		totalCost = totalCost.Add(h.CostBasis)

		c, ok := byCategory[h.Category]
		if !ok {
			c = &categoryTotals{}
			byCategory[h.Category] = c
			categoryOrder = append(categoryOrder, h.Category)
		}
		c.value = c.value.Add(p.currentValue)
		c.cost = c.cost.Add(h.CostBasis)

		overview.HoldingList = append(overview.HoldingList, model.HoldingSummary{
			Symbol:       h.Symbol,
			Category:     h.Category,
			Quantity:     h.Quantity,
			AvgCost:      h.AvgCost(),
			CostBasis:    h.CostBasis,
			CurrentPrice: p.price,
			CurrentValue: p.currentValue,
			GainPercent:  model.PercentChange(h.CostBasis, p.currentValue),
		})
	}

	overview.Summary = model.Summary{
		TotalValue:      totalValue,
		TotalCost:       totalCost,
		GainLossPercent: model.PercentChange(totalCost, totalValue),
	}

	for _, name := range categoryOrder {
		c := byCategory[name]
		overview.Categories = append(overview.Categories, model.CategorySummary{
			Name:  name,
			Value: c.value,
			Gain:  model.PercentChange(c.cost, c.value),
		})
		if totalValue.IsPositive() {
			overview.Allocation = append(overview.Allocation, model.Allocation{
				Name:  name,
				Value: sharePercent(c.value, totalValue, 2),
			})
		}
	}

	overview.TopHoldings = topHoldings(priced, totalValue)

	return overview, nil
}

// sharePercent returns part/total*100 rounded to places, or 0 for a non-positive total.
func sharePercent(part, total model.Money, places int32) float64 {
	if !total.IsPositive() {
		return 0
	}
	return model.DivOrZero(part.Decimal(), total.Decimal()).Mul(hundred).Round(places).InexactFloat64()
}

func topHoldings(priced []pricedHolding, totalValue model.Money) []model.TopHolding {
	held := make([]pricedHolding, 0, len(priced))
	for _, p := range priced {
		if p.state.Quantity.IsPositive() {
			held = append(held, p)
		}
	}
	slices.SortStableFunc(held, func(a, b pricedHolding) int {
		return b.currentValue.Cmp(a.currentValue)
	})
	if len(held) > topHoldingsLimit {
		held = held[:topHoldingsLimit]
	}

	rows := make([]model.TopHolding, len(held))
	for i, p := range held {
		rows[i] = model.TopHolding{
			Symbol:     p.state.Symbol,
			Type:       p.state.Category,
			Value:      p.currentValue,
			Gain:       fmt.Sprintf("%.2f%%", model.PercentChange(p.state.CostBasis, p.currentValue)),
			Allocation: fmt.Sprintf("%.1f%%", sharePercent(p.currentValue, totalValue, 1)),
		}
	}
	return rows
}

// reconstruct builds the full daily timeline from the first transaction to today.
func (s *PortfolioService) reconstruct(ctx context.Context, txs []model.Transaction, today time.Time) []model.TimelinePoint {
	return s.reconstructWith(ctx, txs, today, s.cfg.Anchor)
}

func (s *PortfolioService) reconstructWith(ctx context.Context, txs []model.Transaction, today time.Time, anchor AnchorPolicy) []model.TimelinePoint {
	if len(txs) == 0 {
		return []model.TimelinePoint{}
	}
	sorted := SortTransactions(txs)
	first := day(sorted[0].Date)

	symbols := NewHoldingsCursor(sorted).Symbols()
	series := s.priceService.FetchAll(ctx, symbols, first, today)

	timeline := ReconstructTimeline(sorted, series, first, today, anchor)
	s.log.Debug().
		Int("symbols", len(symbols)).
		Int("days", len(timeline)).
		Msg("timeline reconstructed")
	return timeline
}

// ComputePerformanceTimeline returns the daily portfolio value for the
// requested range. The whole history is reconstructed first and then windowed.
func (s *PortfolioService) ComputePerformanceTimeline(ctx context.Context, userID string, r model.Range) ([]model.TimelinePoint, error) {
	txs, err := s.loadLedger(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := day(s.now())
	return FilterRange(s.reconstruct(ctx, txs, today), r, today), nil
}

// ComputeBenchmarkComparison returns the portfolio and every benchmark rebased
// to growth percent over the requested range.
//
// Benchmarks are forward-filled onto the portfolio's calendar so each series
// has one point per portfolio date. Holdings and benchmark prices are fetched
// concurrently.
func (s *PortfolioService) ComputeBenchmarkComparison(ctx context.Context, userID string, r model.Range) (model.BenchmarkComparison, error) {
	comparison := model.BenchmarkComparison{
		Portfolio:  []model.NormalizedPoint{},
		Benchmarks: []model.BenchmarkSeries{},
	}

	txs, err := s.loadLedger(ctx, userID)
	if err != nil {
		return comparison, err
	}
	if len(txs) == 0 {
		return comparison, nil
	}

	today := day(s.now())
	windowStart := day(SortTransactions(txs)[0].Date)
	if cutoff, ok := RangeCutoff(r, today); ok && cutoff.After(windowStart) {
		windowStart = cutoff
	}

	benchmarkSymbols := make([]string, len(Benchmarks))
	for i, b := range Benchmarks {
		benchmarkSymbols[i] = b.Symbol
	}

	var timeline []model.TimelinePoint
	var benchmarkSeries map[string]model.PriceSeries

	var g errgroup.Group
	g.Go(func() error {
		timeline = s.reconstruct(ctx, txs, today)
		return nil
	})
	g.Go(func() error {
		benchmarkSeries = s.priceService.FetchAll(ctx, benchmarkSymbols, windowStart, today)
		return nil
	})
	// neither branch returns an error; price failures are logged and zeroed
	_ = g.Wait()

	filtered := FilterRange(timeline, r, today)
	comparison.Portfolio = NormalizeSeries(filtered)

	dates := make([]time.Time, len(filtered))
	for i, p := range filtered {
		dates[i] = p.Date
	}
	for _, b := range Benchmarks {
		comparison.Benchmarks = append(comparison.Benchmarks, model.BenchmarkSeries{
			Name: b.Name,
			Data: NormalizeSeries(AlignSeries(dates, benchmarkSeries[b.Symbol])),
		})
	}

	return comparison, nil
}

// assetReturn is one asset's point-in-time performance.
type assetReturn struct {
	symbol       string
	currentValue model.Money
	gain         float64 // fraction of cost basis
}

// ComputeAnalytics returns CAGR, Sharpe ratio, max drawdown, best and worst
// performers, and a five-year projection.
//
// CAGR runs from the total cost basis to the current value over YearsHeld.
// The Sharpe ratio is taken across per-asset gain fractions. Drawdown is
// measured over the full reconstructed timeline regardless of any range the
// caller is viewing, on market values only: a cost-basis anchor followed by
// days without a price would otherwise read as a total loss.
func (s *PortfolioService) ComputeAnalytics(ctx context.Context, userID string) (model.Analytics, error) {
	analytics := model.Analytics{
		TopAssets:   []model.AssetPerformer{},
		WorstAssets: []model.AssetPerformer{},
		Projection:  []model.ProjectionPoint{},
	}

	txs, err := s.loadLedger(ctx, userID)
	if err != nil {
		return analytics, err
	}
	if len(txs) == 0 {
		return analytics, nil
	}

	now := s.now()
	today := day(now)

	var priced []pricedHolding
	var timeline []model.TimelinePoint

	var g errgroup.Group
	g.Go(func() error {
		priced = s.priceHoldings(ctx, txs, now)
		return nil
	})
	g.Go(func() error {
		timeline = s.reconstructWith(ctx, txs, today, AnchorMarketValue)
		return nil
	})
	// neither branch returns an error; price failures are logged and zeroed
	_ = g.Wait()

	totalStart, totalEnd := model.Money{}, model.Money{}
	assets := make([]assetReturn, len(priced))
	returns := make([]float64, len(priced))
	for i, p := range priced {
		totalStart = totalStart.Add(p.state.CostBasis)
		totalEnd = totalEnd.Add(p.currentValue)

		gain := 0.0
		if p.state.CostBasis.IsPositive() {
			gain = p.currentValue.Sub(p.state.CostBasis).Ratio(p.state.CostBasis)
		}
		assets[i] = assetReturn{symbol: p.state.Symbol, currentValue: p.currentValue, gain: gain}
		returns[i] = gain
	}

	values := make([]float64, len(timeline))
	for i, p := range timeline {
		values[i] = p.Value.Float64()
	}

	first := SortTransactions(txs)[0].Date
	cagr := CalculateCAGR(totalStart, totalEnd, YearsHeld(first, now))

	analytics.Metrics = model.Metrics{
		CAGR:        cagr,
		Sharpe:      CalculateSharpeRatio(returns, s.cfg.RiskFreeRate),
		MaxDrawdown: CalculateMaxDrawdown(values),
	}
	analytics.TopAssets, analytics.WorstAssets = performers(assets)
	analytics.Projection = project(totalEnd, cagr, now.Year())

	return analytics, nil
}

// performers returns up to three gainers (best first) and three losers (worst first).
func performers(assets []assetReturn) (top, worst []model.AssetPerformer) {
	var gainers, losers []assetReturn
	for _, a := range assets {
		switch {
		case a.gain > 0:
			gainers = append(gainers, a)
		case a.gain < 0:
			losers = append(losers, a)
		}
	}
	slices.SortStableFunc(gainers, func(a, b assetReturn) int { return cmp.Compare(b.gain, a.gain) })
	slices.SortStableFunc(losers, func(a, b assetReturn) int { return cmp.Compare(a.gain, b.gain) })

	return performerRows(gainers), performerRows(losers)
}

func performerRows(assets []assetReturn) []model.AssetPerformer {
	if len(assets) > performersLimit {
		assets = assets[:performersLimit]
	}
	rows := make([]model.AssetPerformer, len(assets))
	for i, a := range assets {
		sign := ""
		if a.gain >= 0 {
			sign = "+"
		}
		rows[i] = model.AssetPerformer{
			Asset: a.symbol,
			Gain:  fmt.Sprintf("%s%.2f%%", sign, a.gain*100),
			Value: a.currentValue.Display(),
		}
	}
	return rows
}

// project extrapolates total × (1+cagr)^i for the next five calendar years.
func project(total model.Money, cagr float64, currentYear int) []model.ProjectionPoint {
	points := make([]model.ProjectionPoint, 0, projectionYears)
	for i := 1; i <= projectionYears; i++ {
		growth := math.Pow(1+cagr, float64(i))
		if math.IsNaN(growth) || math.IsInf(growth, 0) {
			growth = 0
		}
		points = append(points, model.ProjectionPoint{
			Year:  currentYear + i,
			Value: model.M(total.Decimal().Mul(decimal.NewFromFloat(growth)).Round(2)),
		})
	}
	return points
}
