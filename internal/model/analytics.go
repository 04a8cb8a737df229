package model

// Metrics are summary risk/performance figures. CAGR and MaxDrawdown are fractions.
type Metrics struct {
	CAGR        float64 `json:"cagr"`
	Sharpe      float64 `json:"sharpe"`
	MaxDrawdown float64 `json:"drawdown"`
}

// Analytics is the response of the analytics endpoint.
type Analytics struct {
	Metrics     Metrics           `json:"metrics"`
	TopAssets   []AssetPerformer  `json:"topAssets"`
	WorstAssets []AssetPerformer  `json:"worstAssets"`
	Projection  []ProjectionPoint `json:"projection"`
}

// AssetPerformer is a formatted row such as {"NVDA", "+50.00%", "$1,500.00"}.
type AssetPerformer struct {
	Asset string `json:"asset"`
	Gain  string `json:"gain"`
	Value string `json:"value"`
}

// ProjectionPoint is the extrapolated portfolio value at the end of a calendar year.
type ProjectionPoint struct {
	Year  int   `json:"year"`
	Value Money `json:"value"`
}

// BenchmarkSeries is one named benchmark rebased to growth percent.
type BenchmarkSeries struct {
	Name string            `json:"name"`
	Data []NormalizedPoint `json:"data"`
}

// BenchmarkComparison pairs the normalized portfolio with each benchmark.
type BenchmarkComparison struct {
	Portfolio  []NormalizedPoint `json:"portfolio"`
	Benchmarks []BenchmarkSeries `json:"benchmarks"`
}
