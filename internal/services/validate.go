package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/epeers/riskprofile/internal/models"
)

// weightDriftTolerance is how far total holding weight may stray from 100
// before a warning is raised. Drift never fails a calculation.
const weightDriftTolerance = 1.0

// validatePortfolio checks the shape of a snapshot before any calculation runs.
// An empty holdings slice is valid; a nil one means the array was missing.
func validatePortfolio(p *models.PortfolioSnapshot) error {
	if p == nil {
		return fmt.Errorf("%w: portfolio is required", ErrValidation)
	}
	if p.Holdings == nil {
		return fmt.Errorf("%w: holdings array is required", ErrValidation)
	}
	if !p.TotalValue.IsPositive() {
		return fmt.Errorf("%w: total_value must be greater than 0", ErrValidation)
	}
	if p.CashPosition != nil && p.CashPosition.IsNegative() {
		return fmt.Errorf("%w: cash_position must not be negative", ErrValidation)
	}

	var problems []string
	for i, h := range p.Holdings {
		switch {
		case strings.TrimSpace(h.Symbol) == "":
			problems = append(problems, fmt.Sprintf("holding[%d]: symbol is required", i))
		case !h.SecurityKind.Valid():
			problems = append(problems, fmt.Sprintf("holding[%d] %s: unknown security_kind %q", i, h.Symbol, h.SecurityKind))
		case math.IsNaN(h.Weight) || h.Weight < 0 || h.Weight > 100:
			problems = append(problems, fmt.Sprintf("holding[%d] %s: weight %.2f outside [0,100]", i, h.Symbol, h.Weight))
		case h.MarketValue.IsNegative():
			problems = append(problems, fmt.Sprintf("holding[%d] %s: market_value must not be negative", i, h.Symbol))
		case h.AnnualizedVolatility != nil && *h.AnnualizedVolatility < 0:
			problems = append(problems, fmt.Sprintf("holding[%d] %s: annualized_volatility must not be negative", i, h.Symbol))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

func validateThresholds(t models.ConcentrationThresholds) error {
	if t.SinglePositionLimit <= 0 || t.SectorLimit <= 0 || t.Top5Limit <= 0 {
		return fmt.Errorf("%w: concentration thresholds must be positive", ErrValidation)
	}
	if t.SinglePositionLimit > 100 || t.SectorLimit > 100 || t.Top5Limit > 100 {
		return fmt.Errorf("%w: concentration thresholds must not exceed 100", ErrValidation)
	}
	return nil
}

// checkWeightDrift records a warning when weights do not sum to roughly 100
func checkWeightDrift(ctx context.Context, p *models.PortfolioSnapshot) {
	if len(p.Holdings) == 0 {
		return
	}
	total := p.TotalWeight()
	if math.Abs(total-100) > weightDriftTolerance {
		addWarningf(ctx, models.WarnWeightDrift,
			"Holding weights sum to %.2f%%; results use the weights as given.", total)
	}
}
