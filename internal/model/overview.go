package model

// Overview is the current-state snapshot of a user's portfolio.
type Overview struct {
	Summary     Summary           `json:"summary"`
	Categories  []CategorySummary `json:"categories"`
	Allocation  []Allocation      `json:"allocation"`
	HoldingList []HoldingSummary  `json:"holdingList"`
	TopHoldings []TopHolding      `json:"topHoldings"`
}

// Summary holds portfolio-wide totals.
type Summary struct {
	TotalValue      Money   `json:"totalValue"`
	TotalCost       Money   `json:"totalCost"`
	GainLossPercent float64 `json:"gainLossPercent"`
}

// CategorySummary aggregates holdings of one asset category.
// Gain is a percentage of the category's cost basis.
type CategorySummary struct {
	Name  AssetCategory `json:"name"`
	Value Money         `json:"value"`
	Gain  float64       `json:"gain"`
}

// Allocation is a category's share of total value in percent, rounded to 2 places.
type Allocation struct {
	Name  AssetCategory `json:"name"`
	Value float64       `json:"value"`
}

// HoldingSummary is a priced holding.
type HoldingSummary struct {
	Symbol       string        `json:"symbol"`
	Category     AssetCategory `json:"category"`
	Quantity     Quantity      `json:"quantity"`
	AvgCost      Money         `json:"avgCost"`
	CostBasis    Money         `json:"costBasis"`
	CurrentPrice Money         `json:"currentPrice"`
	CurrentValue Money         `json:"currentValue"`
	GainPercent  float64       `json:"gainPercent"`
}

// TopHolding is a display row for the largest positions.
type TopHolding struct {
	Symbol     string        `json:"symbol"`
	Type       AssetCategory `json:"type"`
	Value      Money         `json:"value"`
	Gain       string        `json:"gain"`
	Allocation string        `json:"allocation"`
}
