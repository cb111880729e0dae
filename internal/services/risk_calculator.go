package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/reference"
	"github.com/shopspring/decimal"
)

// Standard normal multipliers for one-sided VaR and expected shortfall
const (
	z95  = 1.645
	z99  = 2.326
	es95 = 2.063
	es99 = 2.665
)

const (
	// sortinoDownsideFactor approximates downside deviation as a share of total volatility
	sortinoDownsideFactor = 0.6
	maxSystematicRisk     = 95.0
	topContributorCount   = 3
	drawdownMethod        = "heuristic estimate from beta and volatility"
)

// RiskCalculator computes volatility, beta, risk-adjusted ratios, VaR, drawdown and
// risk decomposition from a set of holdings. Drawdown, tracking error and R² are
// closed-form heuristics, not fitted to any price history.
type RiskCalculator struct{}

// NewRiskCalculator creates a new RiskCalculator
func NewRiskCalculator() *RiskCalculator {
	return &RiskCalculator{}
}

// holdingFactors returns the holding's volatility and beta, filling gaps from the factor table
func holdingFactors(h models.Holding) (vol, beta float64) {
	defaults := reference.DefaultFactors(h.SecurityKind, h.Sector)
	vol, beta = defaults.Volatility, defaults.Beta
	if h.AnnualizedVolatility != nil {
		vol = *h.AnnualizedVolatility
	}
	if h.Beta != nil {
		beta = *h.Beta
	}
	return vol, beta
}

// Volatility is the weight-averaged annualized volatility (percent). Empty holdings yield 0.
func (c *RiskCalculator) Volatility(holdings []models.Holding) float64 {
	var total float64
	for _, h := range holdings {
		vol, _ := holdingFactors(h)
		total += h.Weight / 100 * vol
	}
	return total
}

// Beta is the weight-averaged beta of the holdings
func (c *RiskCalculator) Beta(holdings []models.Holding) float64 {
	var total float64
	for _, h := range holdings {
		_, beta := holdingFactors(h)
		total += h.Weight / 100 * beta
	}
	return total
}

// ExpectedReturn is the single-factor estimate riskFree + beta*(market - riskFree)
func (c *RiskCalculator) ExpectedReturn(beta float64) float64 {
	return reference.RiskFreeRate + beta*(reference.MarketReturn-reference.RiskFreeRate)
}

// Sharpe is excess return over total volatility
func (c *RiskCalculator) Sharpe(expectedReturn, volatility float64) float64 {
	return safeDiv(expectedReturn-reference.RiskFreeRate, volatility)
}

// Sortino is excess return over approximated downside deviation
func (c *RiskCalculator) Sortino(expectedReturn, volatility float64) float64 {
	return safeDiv(expectedReturn-reference.RiskFreeRate, volatility*sortinoDownsideFactor)
}

// Treynor is excess return per unit of beta
func (c *RiskCalculator) Treynor(expectedReturn, beta float64) float64 {
	return safeDiv(expectedReturn-reference.RiskFreeRate, beta)
}

// ValueAtRisk computes parametric one-month VaR and expected shortfall assuming
// normally distributed monthly returns.
func (c *RiskCalculator) ValueAtRisk(totalValue decimal.Decimal, volatility float64) models.ValueAtRisk {
	monthly := volatility / math.Sqrt(12)
	amount := func(pct float64) decimal.Decimal {
		return totalValue.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100)).Round(2)
	}

	v := models.ValueAtRisk{
		MonthlyVolatility:   monthly,
		VaR95Percent:        -z95 * monthly,
		VaR99Percent:        -z99 * monthly,
		ExpectedShortfall95: -es95 * monthly,
		ExpectedShortfall99: -es99 * monthly,
	}
	v.VaR95Amount = amount(v.VaR95Percent)
	v.VaR99Amount = amount(v.VaR99Percent)
	v.ExpectedShortfall95Amount = amount(v.ExpectedShortfall95)
	v.ExpectedShortfall99Amount = amount(v.ExpectedShortfall99)
	return v
}

// MaxDrawdown estimates the worst peak-to-trough decline (negative percent).
// It starts at -15% and deepens with beta above 1 and volatility above 15%.
func (c *RiskCalculator) MaxDrawdown(beta, volatility float64) float64 {
	dd := -15.0 - (beta-1)*8 - (volatility-15)*0.5
	return clamp(dd, -100, 0)
}

// TrackingError approximates active risk from the distance of beta to 1 and the volatility level
func (c *RiskCalculator) TrackingError(beta, volatility float64) float64 {
	return math.Abs(beta-1)*10 + volatility*0.15
}

// RSquared approximates how much of the portfolio's variance the market explains
func (c *RiskCalculator) RSquared(beta, volatility float64) float64 {
	return clamp(0.95-math.Abs(beta-1)*0.4-math.Abs(volatility-15)*0.005, 0, 1)
}

// RiskDecomposition splits risk into systematic and unsystematic shares and lists
// the holdings with the largest weight*volatility products.
func (c *RiskCalculator) RiskDecomposition(holdings []models.Holding, beta float64) models.RiskDecomposition {
	systematic := round4(clamp(beta*60, 0, maxSystematicRisk))

	contributors := make([]models.RiskContributor, 0, len(holdings))
	var total float64
	for _, h := range holdings {
		vol, _ := holdingFactors(h)
		contribution := h.Weight * vol / 100
		total += contribution
		contributors = append(contributors, models.RiskContributor{
			Symbol:       h.Symbol,
			Weight:       h.Weight,
			Volatility:   vol,
			Contribution: contribution,
		})
	}
	sort.SliceStable(contributors, func(i, j int) bool {
		return contributors[i].Contribution > contributors[j].Contribution
	})
	if len(contributors) > topContributorCount {
		contributors = contributors[:topContributorCount]
	}
	for i := range contributors {
		contributors[i].ShareOfRisk = round2(safeDiv(contributors[i].Contribution, total) * 100)
		contributors[i].Contribution = round4(contributors[i].Contribution)
	}

	return models.RiskDecomposition{
		SystematicRisk:   systematic,
		UnsystematicRisk: 100 - systematic,
		TopContributors:  contributors,
	}
}

// Calculate produces the full risk picture of a portfolio against a benchmark.
// An empty benchmark symbol selects the default benchmark.
func (c *RiskCalculator) Calculate(ctx context.Context, portfolio *models.PortfolioSnapshot, benchmarkSymbol string) (*models.PortfolioRiskResult, error) {
	if err := validatePortfolio(portfolio); err != nil {
		return nil, err
	}
	if benchmarkSymbol == "" {
		benchmarkSymbol = reference.DefaultBenchmark
	}
	bench, ok := reference.LookupBenchmark(benchmarkSymbol)
	if !ok {
		return nil, fmt.Errorf("%w: unknown benchmark %q", ErrValidation, benchmarkSymbol)
	}

	checkWeightDrift(ctx, portfolio)
	noteDefaultedFactors(ctx, portfolio.Holdings)

	holdings := portfolio.Holdings
	vol := c.Volatility(holdings)
	beta := c.Beta(holdings)
	ret := c.ExpectedReturn(beta)
	v := c.ValueAtRisk(portfolio.TotalValue, vol)

	return &models.PortfolioRiskResult{
		HoldingsCount:  len(holdings),
		Volatility:     round4(vol),
		Beta:           round4(beta),
		ExpectedReturn: round4(ret),
		RiskAdjustedReturns: models.RiskAdjustedReturns{
			Sharpe:  round4(c.Sharpe(ret, vol)),
			Sortino: round4(c.Sortino(ret, vol)),
			Treynor: round4(c.Treynor(ret, beta)),
		},
		ValueAtRisk: models.ValueAtRisk{
			MonthlyVolatility:         round4(v.MonthlyVolatility),
			VaR95Percent:              round4(v.VaR95Percent),
			VaR95Amount:               v.VaR95Amount,
			VaR99Percent:              round4(v.VaR99Percent),
			VaR99Amount:               v.VaR99Amount,
			ExpectedShortfall95:       round4(v.ExpectedShortfall95),
			ExpectedShortfall95Amount: v.ExpectedShortfall95Amount,
			ExpectedShortfall99:       round4(v.ExpectedShortfall99),
			ExpectedShortfall99Amount: v.ExpectedShortfall99Amount,
		},
		MaxDrawdown:       round4(c.MaxDrawdown(beta, vol)),
		DrawdownMethod:    drawdownMethod,
		TrackingError:     round4(c.TrackingError(beta, vol)),
		RSquared:          round4(c.RSquared(beta, vol)),
		RiskDecomposition: c.RiskDecomposition(holdings, beta),
		Benchmark: models.BenchmarkComparison{
			Symbol:              bench.Symbol,
			BenchmarkReturn:     bench.Return,
			BenchmarkVolatility: bench.Volatility,
			Alpha:               round4(ret - bench.Return),
		},
	}, nil
}

// noteDefaultedFactors records which holdings had beta or volatility filled from the table
func noteDefaultedFactors(ctx context.Context, holdings []models.Holding) {
	var symbols []string
	for _, h := range holdings {
		if h.Beta == nil || h.AnnualizedVolatility == nil {
			symbols = append(symbols, h.Symbol)
		}
	}
	if len(symbols) > 0 {
		addWarningf(ctx, models.WarnDefaultedFactor,
			"Beta or volatility taken from sector defaults (tables %s) for: %s",
			reference.TablesVersion, strings.Join(symbols, ", "))
	}
}
