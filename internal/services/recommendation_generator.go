package services

import (
	"fmt"
	"math"
	"time"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/util"
)

const (
	positionImpactPerPoint = 0.15
	sectorImpactPerPoint   = 0.10
	equityGapTrigger       = 10.0
	equityGapHigh          = 20.0
	allocationScoreTrigger = 80.0
	volatilityTrigger      = 20.0
	volatilityHigh         = 25.0
	volatilityTarget       = 18.0
	minRecommendations     = 3
)

// RecommendationInput carries the analysis outputs a bundle is built from.
// Any of the result pointers may be nil; rules that need a missing input are skipped.
type RecommendationInput struct {
	InvestorID    string
	Risk          *models.PortfolioRiskResult
	Concentration *models.ConcentrationResult
	Suitability   *models.SuitabilityResult
	Stress        []models.StressImpactResult
	AsOf          time.Time
}

// recommendationRule inspects the input and the recommendations produced so far,
// returning a recommendation and true when it fires.
type recommendationRule struct {
	name  string
	apply func(in RecommendationInput, produced []models.Recommendation) (models.Recommendation, bool)
}

// recommendationRules are evaluated in order; each one is independent of the others
var recommendationRules = []recommendationRule{
	{name: "position_breach", apply: positionBreachRule},
	{name: "sector_breach", apply: sectorBreachRule},
	{name: "equity_gap", apply: equityGapRule},
	{name: "high_volatility", apply: highVolatilityRule},
	{name: "income", apply: incomeRule},
}

func breachPriority(breach, highAbove float64) models.Priority {
	if breach > highAbove {
		return models.PriorityHigh
	}
	return models.PriorityMedium
}

func positionBreachRule(in RecommendationInput, _ []models.Recommendation) (models.Recommendation, bool) {
	if in.Concentration == nil {
		return models.Recommendation{}, false
	}
	p := in.Concentration.SinglePosition
	if p.Status != models.LimitStatusBreached {
		return models.Recommendation{}, false
	}
	return models.Recommendation{
		Category: models.CategoryRebalancing,
		Priority: breachPriority(p.Breach, positionAlertHighBreach),
		Title:    fmt.Sprintf("Reduce %s position", p.Symbol),
		Description: fmt.Sprintf("%s makes up %.2f%% of the portfolio. Trim it to %.2f%% or less and redeploy the proceeds across other holdings.",
			p.Symbol, p.Weight, p.Limit),
		CurrentValue:    p.Weight,
		TargetValue:     p.Limit,
		EstimatedImpact: fmt.Sprintf("Reduces portfolio volatility by approximately %.2f%%", round2(p.Breach*positionImpactPerPoint)),
	}, true
}

func sectorBreachRule(in RecommendationInput, _ []models.Recommendation) (models.Recommendation, bool) {
	if in.Concentration == nil {
		return models.Recommendation{}, false
	}
	s := in.Concentration.Sector
	if s.Status != models.LimitStatusBreached {
		return models.Recommendation{}, false
	}
	return models.Recommendation{
		Category: models.CategoryDiversification,
		Priority: breachPriority(s.Breach, sectorAlertHighBreach),
		Title:    fmt.Sprintf("Diversify away from %s", s.Sector),
		Description: fmt.Sprintf("The %s sector makes up %.2f%% of the portfolio. Reallocate toward under-represented sectors to bring it to %.2f%% or less.",
			s.Sector, s.Weight, s.Limit),
		CurrentValue:    s.Weight,
		TargetValue:     s.Limit,
		EstimatedImpact: fmt.Sprintf("Reduces sector-specific risk by approximately %.2f%%", round2(s.Breach*sectorImpactPerPoint)),
	}, true
}

func equityGapRule(in RecommendationInput, _ []models.Recommendation) (models.Recommendation, bool) {
	if in.Suitability == nil {
		return models.Recommendation{}, false
	}
	a := in.Suitability.AllocationAlignment
	gap := a.EquityGap
	if math.Abs(gap) <= equityGapTrigger || a.Score >= allocationScoreTrigger {
		return models.Recommendation{}, false
	}

	priority := models.PriorityMedium
	if math.Abs(gap) > equityGapHigh {
		priority = models.PriorityHigh
	}
	title, verb := "Increase equity allocation", "below"
	if gap > 0 {
		title, verb = "Reduce equity allocation", "above"
	}
	return models.Recommendation{
		Category: models.CategoryRebalancing,
		Priority: priority,
		Title:    title,
		Description: fmt.Sprintf("Equities are %.2f%% of the portfolio, %.2f percentage points %s the recommended %.2f%%.",
			a.Actual.Equities, math.Abs(gap), verb, a.Recommended.Equities),
		CurrentValue:    a.Actual.Equities,
		TargetValue:     a.Recommended.Equities,
		EstimatedImpact: "Brings the asset mix in line with the investor's risk profile",
	}, true
}

func highVolatilityRule(in RecommendationInput, _ []models.Recommendation) (models.Recommendation, bool) {
	if in.Risk == nil || in.Risk.Volatility <= volatilityTrigger {
		return models.Recommendation{}, false
	}
	priority := models.PriorityMedium
	if in.Risk.Volatility > volatilityHigh {
		priority = models.PriorityHigh
	}
	return models.Recommendation{
		Category: models.CategoryRiskReduction,
		Priority: priority,
		Title:    "Lower portfolio volatility",
		Description: fmt.Sprintf("Estimated annualized volatility is %.2f%%. Add lower-beta or fixed-income holdings to bring it toward %.0f%%.",
			in.Risk.Volatility, volatilityTarget),
		CurrentValue:    in.Risk.Volatility,
		TargetValue:     volatilityTarget,
		EstimatedImpact: fmt.Sprintf("Reduces volatility by %.2f percentage points", round2(in.Risk.Volatility-volatilityTarget)),
	}, true
}

func incomeRule(_ RecommendationInput, produced []models.Recommendation) (models.Recommendation, bool) {
	if len(produced) >= minRecommendations {
		return models.Recommendation{}, false
	}
	return models.Recommendation{
		Category:        models.CategoryIncome,
		Priority:        models.PriorityLow,
		Title:           "Consider income-generating holdings",
		Description:     "Dividend-paying equities or investment-grade bonds can add a steady income stream without materially changing the risk profile.",
		EstimatedImpact: "Adds a recurring income component to total return",
	}, true
}

// RecommendationGenerator synthesizes prioritized recommendations from analysis outputs
type RecommendationGenerator struct {
	rules []recommendationRule
}

// NewRecommendationGenerator creates a generator with the standard rule set
func NewRecommendationGenerator() *RecommendationGenerator {
	return &RecommendationGenerator{rules: recommendationRules}
}

// OverallAssessment summarizes a bundle by the number of actionable recommendations
func OverallAssessment(count int) string {
	switch {
	case count == 0:
		return "The portfolio is well-aligned with the investor's risk profile. No changes are needed at this time."
	case count <= 2:
		return fmt.Sprintf("The portfolio is generally aligned with the investor's risk profile; %d adjustment(s) would improve it.", count)
	default:
		return fmt.Sprintf("The portfolio requires attention: %d recommendations address material gaps against the investor's risk profile.", count)
	}
}

// Generate runs every rule in order and bundles the results. GeneratedAt is the as-of
// instant, so identical inputs produce identical bundles.
func (g *RecommendationGenerator) Generate(in RecommendationInput) *models.RecommendationBundle {
	recs := []models.Recommendation{}
	for _, rule := range g.rules {
		if rec, ok := rule.apply(in, recs); ok {
			recs = append(recs, rec)
		}
	}

	actionable := 0
	for _, r := range recs {
		if r.Category != models.CategoryIncome {
			actionable++
		}
	}
	summary := OverallAssessment(actionable)
	if worst := worstScenario(in.Stress); worst != nil {
		summary += fmt.Sprintf(" The most severe tested scenario, %s, implies a %.2f%% loss.", worst.ScenarioName, worst.PercentageLoss)
	}

	return &models.RecommendationBundle{
		InvestorID:        in.InvestorID,
		Recommendations:   recs,
		OverallAssessment: summary,
		GeneratedAt:       in.AsOf.UTC(),
		NextReviewDate:    util.NextReviewDate(in.AsOf),
	}
}

func worstScenario(results []models.StressImpactResult) *models.StressImpactResult {
	var worst *models.StressImpactResult
	for i := range results {
		if worst == nil || results[i].PercentageLoss < worst.PercentageLoss {
			worst = &results[i]
		}
	}
	return worst
}
