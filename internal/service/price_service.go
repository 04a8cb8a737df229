package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/portfolio-tracker/internal/model"
	"github.com/ndewijer/portfolio-tracker/internal/yahoo"
)

// providerSymbols translates internal tickers to the symbols the market-data provider expects.
var providerSymbols = map[string]string{
	"BTC":    "BTC-USD",
	"ETH":    "ETH-USD",
	"SOL":    "SOL-USD",
	"XAUUSD": "GC=F",
	"GOLD":   "GC=F",
}

// MapSymbol returns the provider symbol for an internal ticker.
// Unmapped symbols pass through unchanged.
func MapSymbol(symbol string) string {
	symbol = model.NormalizeSymbol(symbol)
	if mapped, ok := providerSymbols[symbol]; ok {
		return mapped
	}
	return symbol
}

// PriceServiceConfig bounds how the price service talks to the provider.
type PriceServiceConfig struct {
	RequestTimeout       time.Duration
	MaxConcurrentFetches int
	CacheSize            int           // 0 disables the series cache
	CacheTTL             time.Duration // 0 keeps entries until evicted
}

// PriceService adapts the market-data collaborator into uniform daily price series.
//
// Provider failures never propagate: a failed symbol yields an empty series
// (or a zero current price) and a warning in the log, so one bad ticker cannot
// abort a valuation.
type PriceService struct {
	client yahoo.Client
	cfg    PriceServiceConfig
	cache  *lru.Cache
	now    func() time.Time
	log    zerolog.Logger
}

type cachedSeries struct {
	series    model.PriceSeries
	fetchedAt time.Time
}

// NewPriceService creates a PriceService over the given client.
func NewPriceService(client yahoo.Client, cfg PriceServiceConfig, log zerolog.Logger) (*PriceService, error) {
	if cfg.MaxConcurrentFetches < 1 {
		cfg.MaxConcurrentFetches = 1
	}

	s := &PriceService{
		client: client,
		cfg:    cfg,
		now:    time.Now,
		log:    log.With().Str("component", "price_service").Logger(),
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New(cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create price cache: %w", err)
		}
		s.cache = cache
	}

	return s, nil
}

// WithClock replaces the clock used for cache expiry. Used by tests.
func (s *PriceService) WithClock(now func() time.Time) *PriceService {
	s.now = now
	return s
}

// FetchSeries returns the daily closes for symbol between start and end (inclusive days).
//
// Points are truncated to UTC days, sorted, de-duplicated (the last point of a
// day wins) and stripped of non-positive closes. On any provider failure the
// result is an empty series.
func (s *PriceService) FetchSeries(ctx context.Context, symbol string, start, end time.Time) model.PriceSeries {
	provider := MapSymbol(symbol)
	startDay, endDay := day(start), day(end)
	if endDay.Before(startDay) {
		return model.PriceSeries{}
	}

	key := fmt.Sprintf("%s|%s|%s", provider, startDay.Format(model.DateLayout), endDay.Format(model.DateLayout))
	if series, ok := s.cached(key); ok {
		return series
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	resp, err := s.client.QueryYahooSymbolByDateRange(reqCtx, provider, startDay, endDay.AddDate(0, 0, 1))
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Str("provider_symbol", provider).Msg("historical price fetch failed")
		return model.PriceSeries{}
	}

	chart, err := yahoo.ParseChart(resp)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Str("provider_symbol", provider).Msg("historical price parse failed")
		return model.PriceSeries{}
	}

	series := toSeries(chart, startDay, endDay)
	if s.cache != nil {
		s.cache.Add(key, cachedSeries{series: series, fetchedAt: s.now()})
	}
	return series
}

func (s *PriceService) cached(key string) (model.PriceSeries, bool) {
	if s.cache == nil {
		return nil, false
	}
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	entry := v.(cachedSeries)
	if s.cfg.CacheTTL > 0 && s.now().Sub(entry.fetchedAt) > s.cfg.CacheTTL {
		s.cache.Remove(key)
		return nil, false
	}
	return entry.series, true
}

func toSeries(chart yahoo.PriceChart, startDay, endDay time.Time) model.PriceSeries {
	series := make(model.PriceSeries, 0, len(chart.Indicators))
	for _, ind := range chart.Indicators {
		d := day(ind.Date)
		if ind.PriceClose <= 0 || d.Before(startDay) || d.After(endDay) {
			continue
		}
		series = append(series, model.PricePoint{Date: d, Close: model.M(ind.PriceClose)})
	}

	slices.SortStableFunc(series, func(a, b model.PricePoint) int {
		return a.Date.Compare(b.Date)
	})

	// keep the last point of each day
	deduped := series[:0]
	for i, p := range series {
		if i+1 < len(series) && series[i+1].Date.Equal(p.Date) {
			continue
		}
		deduped = append(deduped, p)
	}
	return deduped
}

// FetchAll fetches the series of every symbol concurrently and returns them keyed by symbol.
// Fan-out is bounded by MaxConcurrentFetches; failed symbols map to empty series.
func (s *PriceService) FetchAll(ctx context.Context, symbols []string, start, end time.Time) map[string]model.PriceSeries {
	results := make([]model.PriceSeries, len(symbols))

	var g errgroup.Group
	g.SetLimit(s.cfg.MaxConcurrentFetches)
	for i, symbol := range symbols {
		g.Go(func() error {
			results[i] = s.FetchSeries(ctx, symbol, start, end)
			return nil
		})
	}
	_ = g.Wait()

	bySymbol := make(map[string]model.PriceSeries, len(symbols))
	for i, symbol := range symbols {
		bySymbol[symbol] = results[i]
	}
	return bySymbol
}

// CurrentPrice returns the latest close for symbol, or zero if the provider fails.
func (s *PriceService) CurrentPrice(ctx context.Context, symbol string) model.Money {
	provider := MapSymbol(symbol)

	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	resp, err := s.client.QueryYahooFiveDaySymbol(reqCtx, provider)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Str("provider_symbol", provider).Msg("current price fetch failed")
		return model.Money{}
	}

	chart, err := yahoo.ParseChart(resp)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Str("provider_symbol", provider).Msg("current price parse failed")
		return model.Money{}
	}

	price, ok := chart.LatestClose()
	if !ok {
		s.log.Warn().Str("symbol", symbol).Str("provider_symbol", provider).Msg("no current price available")
		return model.Money{}
	}
	return model.M(price)
}

// CurrentPrices fetches current prices for all symbols concurrently.
func (s *PriceService) CurrentPrices(ctx context.Context, symbols []string) map[string]model.Money {
	results := make([]model.Money, len(symbols))

	var g errgroup.Group
	g.SetLimit(s.cfg.MaxConcurrentFetches)
	for i, symbol := range symbols {
		g.Go(func() error {
			results[i] = s.CurrentPrice(ctx, symbol)
			return nil
		})
	}
	_ = g.Wait()

	prices := make(map[string]model.Money, len(symbols))
	for i, symbol := range symbols {
		prices[symbol] = results[i]
	}
	return prices
}
