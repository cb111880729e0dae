package models

import (
	"github.com/shopspring/decimal"
)

// SecurityKind represents the broad instrument class of a holding
type SecurityKind string

const (
	SecurityKindEquity SecurityKind = "equity"
	SecurityKindBond   SecurityKind = "bond"
	SecurityKindFund   SecurityKind = "fund"
	SecurityKindCash   SecurityKind = "cash"
)

// Valid reports whether k is one of the known security kinds.
func (k SecurityKind) Valid() bool {
	switch k {
	case SecurityKindEquity, SecurityKindBond, SecurityKindFund, SecurityKindCash:
		return true
	}
	return false
}

// Holding represents a single position within a portfolio snapshot.
// Weight is a percentage of total portfolio value (22.5 = 22.5%).
// Beta and AnnualizedVolatility are optional; when nil they are filled from
// the sector/kind factor table.
type Holding struct {
	Symbol               string          `json:"symbol" binding:"required"`
	SecurityKind         SecurityKind    `json:"security_kind" binding:"required"`
	Sector               string          `json:"sector"`
	MarketValue          decimal.Decimal `json:"market_value"`
	Weight               float64         `json:"weight"`
	Beta                 *float64        `json:"beta,omitempty"`
	AnnualizedVolatility *float64        `json:"annualized_volatility,omitempty"`
}

// AssetAllocation is a percentage breakdown across the four asset classes
type AssetAllocation struct {
	Equities     float64 `json:"equities" yaml:"equities"`
	FixedIncome  float64 `json:"fixed_income" yaml:"fixed_income"`
	Alternatives float64 `json:"alternatives" yaml:"alternatives"`
	Cash         float64 `json:"cash" yaml:"cash"`
}

// PortfolioSnapshot is the immutable input to every calculation.
// AssetAllocation, when supplied, is the portfolio's declared asset-class
// breakdown and takes precedence over the one derived from holdings.
type PortfolioSnapshot struct {
	TotalValue      decimal.Decimal  `json:"total_value"`
	Holdings        []Holding        `json:"holdings" binding:"required"`
	CashPosition    *decimal.Decimal `json:"cash_position,omitempty"`
	AssetAllocation *AssetAllocation `json:"asset_allocation,omitempty"`
}

// TotalWeight returns the sum of holding weights
func (p *PortfolioSnapshot) TotalWeight() float64 {
	var total float64
	for _, h := range p.Holdings {
		total += h.Weight
	}
	return total
}
