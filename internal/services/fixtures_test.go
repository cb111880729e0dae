package services

import (
	"testing"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/reference"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func holding(symbol string, kind models.SecurityKind, sector string, weight float64, marketValue int64) models.Holding {
	return models.Holding{
		Symbol:       symbol,
		SecurityKind: kind,
		Sector:       sector,
		Weight:       weight,
		MarketValue:  decimal.NewFromInt(marketValue),
	}
}

// samplePortfolio is a $485,000 six-stock portfolio with a blended beta of 1.12
// and a blended volatility of 26%.
func samplePortfolio() *models.PortfolioSnapshot {
	withFactors := func(h models.Holding, beta, vol float64) models.Holding {
		h.Beta = ptr(beta)
		h.AnnualizedVolatility = ptr(vol)
		return h
	}
	return &models.PortfolioSnapshot{
		TotalValue: decimal.NewFromInt(485000),
		Holdings: []models.Holding{
			withFactors(holding("AAPL", models.SecurityKindEquity, "TECHNOLOGY", 22.5, 109125), 1.20, 28),
			withFactors(holding("MSFT", models.SecurityKindEquity, "TECHNOLOGY", 20, 97000), 1.10, 25),
			withFactors(holding("JPM", models.SecurityKindEquity, "FINANCIALS", 15, 72750), 1.20, 22),
			withFactors(holding("JNJ", models.SecurityKindEquity, "HEALTHCARE", 12.5, 60625), 0.80, 16),
			withFactors(holding("XOM", models.SecurityKindEquity, "ENERGY", 10, 48500), 1.00, 30),
			withFactors(holding("AMZN", models.SecurityKindEquity, "CONSUMER_DISCRETIONARY", 20, 97000), 1.25, 32),
		},
	}
}

// balancedPortfolio spreads ten equal positions over five sectors plus bonds
func balancedPortfolio() *models.PortfolioSnapshot {
	return &models.PortfolioSnapshot{
		TotalValue: decimal.NewFromInt(100000),
		Holdings: []models.Holding{
			holding("AAA", models.SecurityKindEquity, "TECHNOLOGY", 10, 10000),
			holding("BBB", models.SecurityKindEquity, "HEALTHCARE", 10, 10000),
			holding("CCC", models.SecurityKindEquity, "UTILITIES", 10, 10000),
			holding("DDD", models.SecurityKindEquity, "INDUSTRIALS", 10, 10000),
			holding("EEE", models.SecurityKindEquity, "CONSUMER_STAPLES", 10, 10000),
			holding("FFF", models.SecurityKindFund, "", 10, 10000),
			holding("GGG", models.SecurityKindBond, "GOVERNMENT", 10, 10000),
			holding("HHH", models.SecurityKindBond, "CORPORATE", 10, 10000),
			holding("III", models.SecurityKindBond, "MUNICIPAL", 10, 10000),
			holding("JJJ", models.SecurityKindCash, "", 10, 10000),
		},
	}
}

func newTestStore(t *testing.T) *reference.Store {
	t.Helper()
	store, err := reference.NewStore()
	require.NoError(t, err)
	return store
}

// aggressiveProfile is an active long-horizon Aggressive profile
func aggressiveProfile() *models.RiskProfile {
	p, _ := reference.ProfileForCategory(models.RiskCategoryAggressive)
	return &models.RiskProfile{
		ID:                    "profile-1",
		InvestorID:            "inv-1",
		RiskCategory:          models.RiskCategoryAggressive,
		RiskCategoryName:      models.RiskCategoryAggressive.String(),
		TimeHorizon:           models.TimeHorizonLong,
		RecommendedAllocation: p.Allocation,
		RiskLimits:            p.Limits,
		IsActive:              true,
	}
}
