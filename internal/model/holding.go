package model

// HoldingState is the running position in one symbol.
// Quantity and CostBasis are never negative.
type HoldingState struct {
	Symbol    string        `json:"symbol"`
	Category  AssetCategory `json:"category"`
	Quantity  Quantity      `json:"quantity"`
	CostBasis Money         `json:"costBasis"`
}

// AvgCost returns CostBasis/Quantity, or zero when nothing is held.
func (h HoldingState) AvgCost() Money {
	if !h.Quantity.IsPositive() {
		return Money{}
	}
	return h.CostBasis.Div(h.Quantity)
}
