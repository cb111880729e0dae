package services

import (
	"fmt"
	"math"

	"github.com/epeers/riskprofile/internal/models"
)

// sectorLimitBuffer is added to the profile's concentration limit for the sector check
const sectorLimitBuffer = 5.0

// requiredActionBelow is the dimension score under which an action is required
const requiredActionBelow = 70.0

// suitabilityRatings are checked in order; the first band whose floor the score reaches wins
var suitabilityRatings = []struct {
	floor          float64
	rating         string
	recommendation string
}{
	{80, "Highly Suitable", "The portfolio is well matched to the investor's risk profile. Continue regular monitoring."},
	{70, "Suitable", "The portfolio is broadly appropriate for the investor; minor adjustments may improve alignment."},
	{60, "Moderately Suitable", "The portfolio only partially fits the investor's risk profile; review the flagged dimensions."},
	{50, "Marginally Suitable", "The portfolio shows material mismatches with the risk profile; rebalancing is advised."},
	{math.Inf(-1), "Not Suitable", "The portfolio does not fit the investor's risk profile; significant restructuring is required."},
}

// SuitabilityEvaluator compares portfolio risk and concentration with a risk profile
type SuitabilityEvaluator struct{}

// NewSuitabilityEvaluator creates a new SuitabilityEvaluator
func NewSuitabilityEvaluator() *SuitabilityEvaluator {
	return &SuitabilityEvaluator{}
}

// RiskAlignment compares volatility and estimated drawdown with the profile tolerances.
// Only the amount by which a tolerance is exceeded counts against the portfolio.
func (e *SuitabilityEvaluator) RiskAlignment(volatility, maxDrawdown float64, limits models.RiskLimits) models.RiskAlignment {
	drawdown := math.Abs(maxDrawdown)
	volExcess := math.Max(0, volatility-limits.MaxVolatility)
	ddExcess := math.Max(0, drawdown-limits.MaxDrawdown)

	r := models.RiskAlignment{
		ActualVolatility:    volatility,
		VolatilityTolerance: limits.MaxVolatility,
		ActualDrawdown:      drawdown,
		DrawdownTolerance:   limits.MaxDrawdown,
	}
	switch {
	case volExcess <= 2 && ddExcess <= 5:
		r.DimensionResult = models.DimensionResult{Score: 85, Status: models.StatusAligned}
	case volExcess <= 5 && ddExcess <= 10:
		r.DimensionResult = models.DimensionResult{Score: 70, Status: models.StatusMinorDeviation}
	default:
		r.DimensionResult = models.DimensionResult{Score: 45, Status: models.StatusMisaligned}
	}
	r.Details = fmt.Sprintf("Volatility %.2f%% vs %.2f%% tolerance; estimated drawdown %.2f%% vs %.2f%% tolerance",
		volatility, limits.MaxVolatility, drawdown, limits.MaxDrawdown)
	return r
}

// ActualAllocation returns the portfolio's asset-class breakdown: the declared one when
// present, otherwise derived from holding kinds plus the cash position.
func ActualAllocation(p *models.PortfolioSnapshot) models.AssetAllocation {
	if p.AssetAllocation != nil {
		return *p.AssetAllocation
	}
	var a models.AssetAllocation
	for _, h := range p.Holdings {
		switch h.SecurityKind {
		case models.SecurityKindEquity, models.SecurityKindFund:
			a.Equities += h.Weight
		case models.SecurityKindBond:
			a.FixedIncome += h.Weight
		case models.SecurityKindCash:
			a.Cash += h.Weight
		}
	}
	if p.CashPosition != nil && p.TotalValue.IsPositive() {
		a.Cash += p.CashPosition.Div(p.TotalValue).InexactFloat64() * 100
	}
	a.Equities = round4(a.Equities)
	a.FixedIncome = round4(a.FixedIncome)
	a.Cash = round4(a.Cash)
	return a
}

// AllocationAlignment measures the equity and fixed-income gaps against the recommendation
func (e *SuitabilityEvaluator) AllocationAlignment(actual, recommended models.AssetAllocation) models.AllocationAlignment {
	equityGap := round4(actual.Equities - recommended.Equities)
	fixedIncomeGap := round4(actual.FixedIncome - recommended.FixedIncome)
	worst := math.Max(math.Abs(equityGap), math.Abs(fixedIncomeGap))

	r := models.AllocationAlignment{
		Actual:         actual,
		Recommended:    recommended,
		EquityGap:      equityGap,
		FixedIncomeGap: fixedIncomeGap,
	}
	switch {
	case worst <= 5:
		r.DimensionResult = models.DimensionResult{Score: 90, Status: models.StatusAligned}
	case worst <= 15:
		r.DimensionResult = models.DimensionResult{Score: 72, Status: models.StatusMinorDeviation}
	default:
		r.DimensionResult = models.DimensionResult{Score: 50, Status: models.StatusSignificantDeviation}
	}
	r.Details = fmt.Sprintf("Equities %.2f%% vs %.2f%% recommended (gap %+.2fpp); fixed income %.2f%% vs %.2f%% recommended (gap %+.2fpp)",
		actual.Equities, recommended.Equities, equityGap, actual.FixedIncome, recommended.FixedIncome, fixedIncomeGap)
	return r
}

// ConcentrationCompliance checks the largest position against the profile limit and
// the largest sector against the same limit plus a buffer.
func (e *SuitabilityEvaluator) ConcentrationCompliance(maxPosition, maxSector, limit float64) models.ConcentrationCompliance {
	r := models.ConcentrationCompliance{
		MaxPositionWeight: maxPosition,
		MaxSectorWeight:   maxSector,
		Limit:             limit,
		PositionBreached:  maxPosition > limit,
		SectorBreached:    maxSector > limit+sectorLimitBuffer,
	}
	switch {
	case r.PositionBreached && r.SectorBreached:
		r.DimensionResult = models.DimensionResult{Score: 45, Status: models.StatusNonCompliant}
	case r.PositionBreached || r.SectorBreached:
		r.DimensionResult = models.DimensionResult{Score: 60, Status: models.StatusMinorNonCompliant}
	default:
		r.DimensionResult = models.DimensionResult{Score: 95, Status: models.StatusCompliant}
	}
	r.Details = fmt.Sprintf("Largest position %.2f%% vs %.2f%% limit; largest sector %.2f%% vs %.2f%% limit",
		maxPosition, limit, maxSector, limit+sectorLimitBuffer)
	return r
}

// TimeHorizonFit checks whether volatility suits the investment horizon
func (e *SuitabilityEvaluator) TimeHorizonFit(horizon models.TimeHorizon, volatility float64) (models.TimeHorizonFit, error) {
	r := models.TimeHorizonFit{TimeHorizon: horizon, Volatility: volatility}
	switch horizon {
	case models.TimeHorizonLong:
		r.DimensionResult = models.DimensionResult{Score: 85, Status: models.StatusAligned,
			Details: "A long horizon can absorb short-term volatility"}
	case models.TimeHorizonMedium:
		if volatility > 20 {
			r.DimensionResult = models.DimensionResult{Score: 65, Status: models.StatusCaution,
				Details: fmt.Sprintf("Volatility of %.2f%% is high for a medium horizon", volatility)}
		} else {
			r.DimensionResult = models.DimensionResult{Score: 80, Status: models.StatusAligned,
				Details: "Volatility is appropriate for a medium horizon"}
		}
	case models.TimeHorizonShort:
		if volatility > 15 {
			r.DimensionResult = models.DimensionResult{Score: 40, Status: models.StatusMisaligned,
				Details: fmt.Sprintf("Volatility of %.2f%% is too high for a short horizon", volatility)}
		} else {
			r.DimensionResult = models.DimensionResult{Score: 75, Status: models.StatusAligned,
				Details: "Volatility is acceptable for a short horizon"}
		}
	default:
		return r, fmt.Errorf("%w: unknown time horizon %q", ErrValidation, horizon)
	}
	return r, nil
}

// Rating maps an overall score to its rating band and canned recommendation
func Rating(score float64) (rating, recommendation string) {
	for _, band := range suitabilityRatings {
		if score >= band.floor {
			return band.rating, band.recommendation
		}
	}
	last := suitabilityRatings[len(suitabilityRatings)-1]
	return last.rating, last.recommendation
}

// Evaluate produces the suitability verdict of a portfolio for an active profile
func (e *SuitabilityEvaluator) Evaluate(profile *models.RiskProfile, portfolio *models.PortfolioSnapshot, risk *models.PortfolioRiskResult, conc *models.ConcentrationResult) (*models.SuitabilityResult, error) {
	if profile == nil || !profile.IsActive {
		return nil, fmt.Errorf("%w: no active risk profile", ErrNotFound)
	}
	if err := validatePortfolio(portfolio); err != nil {
		return nil, err
	}
	if risk == nil || conc == nil {
		return nil, fmt.Errorf("%w: portfolio risk and concentration results are required", ErrValidation)
	}

	horizon, err := e.TimeHorizonFit(profile.TimeHorizon, risk.Volatility)
	if err != nil {
		return nil, err
	}
	limits := profile.RiskLimits
	riskAlign := e.RiskAlignment(risk.Volatility, risk.MaxDrawdown, limits)
	allocAlign := e.AllocationAlignment(ActualAllocation(portfolio), profile.RecommendedAllocation)
	concCompliance := e.ConcentrationCompliance(conc.SinglePosition.Weight, conc.Sector.Weight, limits.MaxConcentration)

	overall := (riskAlign.Score + allocAlign.Score + concCompliance.Score + horizon.Score) / 4
	rating, recommendation := Rating(overall)

	actions := []string{}
	if riskAlign.Score < requiredActionBelow {
		actions = append(actions, fmt.Sprintf("Reduce portfolio volatility to within the %.1f%% tolerance and limit drawdown exposure to %.1f%%",
			limits.MaxVolatility, limits.MaxDrawdown))
	}
	if allocAlign.Score < requiredActionBelow {
		actions = append(actions, fmt.Sprintf("Rebalance toward the recommended allocation of %.0f%% equities and %.0f%% fixed income",
			profile.RecommendedAllocation.Equities, profile.RecommendedAllocation.FixedIncome))
	}
	if concCompliance.Score < requiredActionBelow {
		actions = append(actions, fmt.Sprintf("Reduce single-position exposure below %.1f%% and sector exposure below %.1f%%",
			limits.MaxConcentration, limits.MaxConcentration+sectorLimitBuffer))
	}
	if horizon.Score < requiredActionBelow {
		actions = append(actions, fmt.Sprintf("Lower portfolio volatility to suit a %s investment horizon", profile.TimeHorizon))
	}

	return &models.SuitabilityResult{
		InvestorID:              profile.InvestorID,
		RiskCategory:            profile.RiskCategory,
		RiskCategoryName:        profile.RiskCategory.String(),
		RiskAlignment:           riskAlign,
		AllocationAlignment:     allocAlign,
		ConcentrationCompliance: concCompliance,
		TimeHorizonFit:          horizon,
		OverallScore:            overall,
		DisplayScore:            int(math.Round(overall)),
		Rating:                  rating,
		Recommendation:          recommendation,
		RequiredActions:         actions,
	}, nil
}
