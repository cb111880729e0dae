package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/reference"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	worstHitCount      = 3
	bestProtectedCount = 2
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// recoveryBuckets map the magnitude of a loss to an estimated recovery period
var recoveryBuckets = []struct {
	maxLoss float64
	label   string
}{
	{20, "6-12 months (estimated)"},
	{30, "12-24 months (estimated)"},
	{40, "24-36 months (estimated)"},
}

const longestRecovery = "36+ months (estimated)"

// StressSimulator applies named shock scenarios to portfolio holdings
type StressSimulator struct {
	ref *reference.Store
}

// NewStressSimulator creates a simulator reading scenarios from the reference store
func NewStressSimulator(ref *reference.Store) *StressSimulator {
	return &StressSimulator{ref: ref}
}

// ShockFor returns the percentage shock a scenario applies to a holding. Bonds take the
// bond shock regardless of sector; everything else takes its sector's shock when the
// scenario defines one, else the generic equity shock.
func ShockFor(h models.Holding, sc models.Scenario) float64 {
	if h.SecurityKind == models.SecurityKindBond {
		return sc.ShockParameters.BondShock
	}
	if pct, ok := sc.SectorShocks[reference.NormalizeSector(h.Sector)]; ok {
		return pct
	}
	return sc.ShockParameters.EquityShock
}

// ApplyShock computes the stressed value of one holding
func (s *StressSimulator) ApplyShock(h models.Holding, sc models.Scenario) models.HoldingImpact {
	shock := ShockFor(h, sc)
	factor := one.Add(decimal.NewFromFloat(shock).Div(hundred))
	stressed := h.MarketValue.Mul(factor).Round(2)
	return models.HoldingImpact{
		Symbol:        h.Symbol,
		SecurityKind:  h.SecurityKind,
		Sector:        h.Sector,
		MarketValue:   h.MarketValue,
		StressedValue: stressed,
		Loss:          stressed.Sub(h.MarketValue),
		ShockPercent:  shock,
	}
}

// RecoveryEstimate labels the expected recovery time of a loss
func RecoveryEstimate(lossPct float64) string {
	loss := math.Abs(lossPct)
	for _, b := range recoveryBuckets {
		if loss <= b.maxLoss {
			return b.label
		}
	}
	return longestRecovery
}

// RunScenario stresses every holding and totals the impact. Value not covered by
// holdings (total_value minus summed market values) is carried through unshocked.
// When profile is an active profile, the loss is compared with its drawdown tolerance.
func (s *StressSimulator) RunScenario(ctx context.Context, sc models.Scenario, portfolio *models.PortfolioSnapshot, profile *models.RiskProfile) (*models.StressImpactResult, error) {
	if err := validatePortfolio(portfolio); err != nil {
		return nil, err
	}

	impacts := make([]models.HoldingImpact, 0, len(portfolio.Holdings))
	held := decimal.Zero
	stressedTotal := decimal.Zero
	for _, h := range portfolio.Holdings {
		impact := s.ApplyShock(h, sc)
		impacts = append(impacts, impact)
		held = held.Add(h.MarketValue)
		stressedTotal = stressedTotal.Add(impact.StressedValue)
	}
	if remainder := portfolio.TotalValue.Sub(held); remainder.IsPositive() {
		stressedTotal = stressedTotal.Add(remainder)
	}

	dollarLoss := stressedTotal.Sub(portfolio.TotalValue)
	lossPct := dollarLoss.Div(portfolio.TotalValue).Mul(hundred).Round(4).InexactFloat64()

	result := &models.StressImpactResult{
		ScenarioID:       sc.ScenarioID,
		ScenarioName:     sc.ScenarioName,
		ScenarioCategory: sc.ScenarioCategory,
		ShockParameters:  sc.ShockParameters,
		CurrentValue:     portfolio.TotalValue,
		StressedValue:    stressedTotal,
		DollarLoss:       dollarLoss,
		PercentageLoss:   lossPct,
		HoldingImpacts:   impacts,
		WorstHit:         rankImpacts(impacts, true, worstHitCount),
		BestProtected:    rankImpacts(impacts, false, bestProtectedCount),
		RecoveryTime:     RecoveryEstimate(lossPct),
	}

	if profile != nil && profile.IsActive {
		result.RiskProfileComparison = compareToTolerance(lossPct, profile.RiskLimits.MaxDrawdown)
		if result.RiskProfileComparison.ExceedsTolerance {
			addWarningf(ctx, models.WarnStressOverDrawdown, "%s: %s", sc.ScenarioID, result.RiskProfileComparison.Warning)
		}
	}
	return result, nil
}

// rankImpacts returns up to n impacts ordered by shock, most negative first when worstFirst
func rankImpacts(impacts []models.HoldingImpact, worstFirst bool, n int) []models.HoldingImpact {
	ranked := make([]models.HoldingImpact, len(impacts))
	copy(ranked, impacts)
	sort.SliceStable(ranked, func(i, j int) bool {
		if worstFirst {
			return ranked[i].ShockPercent < ranked[j].ShockPercent
		}
		return ranked[i].ShockPercent > ranked[j].ShockPercent
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// compareToTolerance checks a scenario's percentage change against the profile's
// drawdown tolerance. Gains never exceed it.
func compareToTolerance(lossPct, maxDrawdown float64) *models.RiskProfileComparison {
	loss := math.Max(-lossPct, 0)
	c := &models.RiskProfileComparison{
		MaxDrawdownTolerance: maxDrawdown,
		ExceedsTolerance:     loss > maxDrawdown,
	}
	if c.ExceedsTolerance {
		c.Excess = round4(loss - maxDrawdown)
		c.Warning = fmt.Sprintf("Estimated loss of %.2f%% exceeds the maximum drawdown tolerance of %.2f%% by %.2f percentage points",
			loss, maxDrawdown, c.Excess)
	}
	return c
}

// RunMany runs each scenario independently against the same portfolio and returns the
// results in request order. Every scenario ID is resolved before any scenario runs.
func (s *StressSimulator) RunMany(ctx context.Context, scenarioIDs []string, portfolio *models.PortfolioSnapshot, profile *models.RiskProfile) ([]models.StressImpactResult, error) {
	if len(scenarioIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one scenario id is required", ErrValidation)
	}
	if err := validatePortfolio(portfolio); err != nil {
		return nil, err
	}

	snap := s.ref.Snapshot()
	scenarios := make([]models.Scenario, len(scenarioIDs))
	for i, id := range scenarioIDs {
		sc, ok := snap.Scenario(id)
		if !ok {
			return nil, fmt.Errorf("%w: scenario %s", ErrNotFound, id)
		}
		scenarios[i] = sc
	}

	results := make([]models.StressImpactResult, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := s.RunScenario(gctx, sc, portfolio, profile)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.ScenarioID, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
