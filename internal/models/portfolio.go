package models

// Holding is one position in the user's portfolio.
type Holding struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Shares  float64 `json:"shares"`
	Cost    float64 `json:"cost"`    // average cost per share
	Current float64 `json:"current"` // latest price per share
}

// Value returns the holding's market value.
func (h Holding) Value() float64 { return h.Shares * h.Current }

// CostBasis returns the holding's total cost.
func (h Holding) CostBasis() float64 { return h.Shares * h.Cost }

// Profit returns the holding's unrealized profit.
func (h Holding) Profit() float64 { return h.Value() - h.CostBasis() }

// PortfolioSummary aggregates a set of holdings.
type PortfolioSummary struct {
	Holdings    []Holding `json:"holdings"`
	TotalValue  float64   `json:"total_value"`
	TotalCost   float64   `json:"total_cost"`
	TotalProfit float64   `json:"total_profit"`
	ProfitRate  float64   `json:"profit_rate"` // percent
}
