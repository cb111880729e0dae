package services

import (
	"context"
	"testing"
	"time"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2024, 6, 30, 18, 45, 0, 0, time.UTC)

func TestRecommendations_NothingToFix(t *testing.T) {
	g := NewRecommendationGenerator()
	bundle := g.Generate(RecommendationInput{InvestorID: "inv-1", AsOf: asOf})

	require.Len(t, bundle.Recommendations, 1)
	assert.Equal(t, models.CategoryIncome, bundle.Recommendations[0].Category)
	assert.Equal(t, models.PriorityLow, bundle.Recommendations[0].Priority)
	assert.Contains(t, bundle.OverallAssessment, "well-aligned")
	assert.Empty(t, bundle.ID)
	assert.Equal(t, "inv-1", bundle.InvestorID)
	assert.Equal(t, asOf, bundle.GeneratedAt)
	assert.Equal(t, time.Date(2024, 9, 28, 0, 0, 0, 0, time.UTC), bundle.NextReviewDate)
}

func TestRecommendations_PositionBreach(t *testing.T) {
	g := NewRecommendationGenerator()
	testCases := []struct {
		name   string
		weight float64
		want   models.Priority
	}{
		{"large breach", 22.5, models.PriorityHigh},
		{"exactly 10pp over", 20, models.PriorityMedium},
		{"small breach", 12, models.PriorityMedium},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewConcentrationAnalyzer(DefaultThresholds())
			conc := &models.ConcentrationResult{
				SinglePosition: a.SinglePosition([]models.Holding{
					holding("AAPL", models.SecurityKindEquity, "TECHNOLOGY", tc.weight, 0),
				}, 10),
			}
			bundle := g.Generate(RecommendationInput{Concentration: conc, AsOf: asOf})

			require.NotEmpty(t, bundle.Recommendations)
			rec := bundle.Recommendations[0]
			assert.Equal(t, models.CategoryRebalancing, rec.Category)
			assert.Equal(t, tc.want, rec.Priority)
			assert.Equal(t, tc.weight, rec.CurrentValue)
			assert.Equal(t, 10.0, rec.TargetValue)
			assert.Contains(t, rec.Title, "AAPL")
		})
	}
}

func TestRecommendations_FullRuleOrder(t *testing.T) {
	ctx := context.Background()
	p := samplePortfolio()
	risk, err := NewRiskCalculator().Calculate(ctx, p, "")
	require.NoError(t, err)
	conc, err := NewConcentrationAnalyzer(DefaultThresholds()).Analyze(ctx, p, nil)
	require.NoError(t, err)

	profile := aggressiveProfile()
	profile.RecommendedAllocation = models.AssetAllocation{Equities: 50, FixedIncome: 35, Alternatives: 10, Cash: 5}
	suit, err := NewSuitabilityEvaluator().Evaluate(profile, p, risk, conc)
	require.NoError(t, err)

	g := NewRecommendationGenerator()
	bundle := g.Generate(RecommendationInput{
		InvestorID:    "inv-1",
		Risk:          risk,
		Concentration: conc,
		Suitability:   suit,
		AsOf:          asOf,
	})

	require.Len(t, bundle.Recommendations, 4)
	categories := []models.RecommendationCategory{}
	for _, r := range bundle.Recommendations {
		categories = append(categories, r.Category)
	}
	assert.Equal(t, []models.RecommendationCategory{
		models.CategoryRebalancing,
		models.CategoryDiversification,
		models.CategoryRebalancing,
		models.CategoryRiskReduction,
	}, categories)

	equity := bundle.Recommendations[2]
	assert.Equal(t, "Reduce equity allocation", equity.Title)
	assert.Equal(t, models.PriorityHigh, equity.Priority, "a 50pp gap is above 20")

	vol := bundle.Recommendations[3]
	assert.Equal(t, models.PriorityHigh, vol.Priority, "26% volatility is above 25")
	assert.Equal(t, 18.0, vol.TargetValue)

	assert.Contains(t, bundle.OverallAssessment, "requires attention")

	again := g.Generate(RecommendationInput{
		InvestorID:    "inv-1",
		Risk:          risk,
		Concentration: conc,
		Suitability:   suit,
		AsOf:          asOf,
	})
	assert.Equal(t, bundle, again)
}

func TestRecommendations_EquityGapNeedsLowAllocationScore(t *testing.T) {
	g := NewRecommendationGenerator()
	suit := &models.SuitabilityResult{
		AllocationAlignment: models.AllocationAlignment{
			DimensionResult: models.DimensionResult{Score: 72},
			Actual:          models.AssetAllocation{Equities: 38},
			Recommended:     models.AssetAllocation{Equities: 50},
			EquityGap:       -12,
		},
	}
	bundle := g.Generate(RecommendationInput{Suitability: suit, AsOf: asOf})
	require.Len(t, bundle.Recommendations, 2)
	assert.Equal(t, "Increase equity allocation", bundle.Recommendations[0].Title)
	assert.Equal(t, models.PriorityMedium, bundle.Recommendations[0].Priority)
	assert.Contains(t, bundle.OverallAssessment, "generally aligned")

	suit.AllocationAlignment.Score = 90
	bundle = g.Generate(RecommendationInput{Suitability: suit, AsOf: asOf})
	require.Len(t, bundle.Recommendations, 1)
	assert.Equal(t, models.CategoryIncome, bundle.Recommendations[0].Category)
}

func TestRecommendations_VolatilityPriority(t *testing.T) {
	g := NewRecommendationGenerator()

	none := g.Generate(RecommendationInput{Risk: &models.PortfolioRiskResult{Volatility: 20}, AsOf: asOf})
	assert.Equal(t, models.CategoryIncome, none.Recommendations[0].Category)

	medium := g.Generate(RecommendationInput{Risk: &models.PortfolioRiskResult{Volatility: 22}, AsOf: asOf})
	assert.Equal(t, models.CategoryRiskReduction, medium.Recommendations[0].Category)
	assert.Equal(t, models.PriorityMedium, medium.Recommendations[0].Priority)
}

func TestRecommendations_SummaryNamesWorstScenario(t *testing.T) {
	g := NewRecommendationGenerator()
	bundle := g.Generate(RecommendationInput{
		AsOf: asOf,
		Stress: []models.StressImpactResult{
			{ScenarioName: "Rapid Rate Hike", PercentageLoss: -15},
			{ScenarioName: "Dot-com Bust", PercentageLoss: -49},
		},
	})
	assert.Contains(t, bundle.OverallAssessment, "Dot-com Bust")
	assert.Contains(t, bundle.OverallAssessment, "-49.00%")
}

func TestOverallAssessment(t *testing.T) {
	assert.Contains(t, OverallAssessment(0), "well-aligned")
	assert.Contains(t, OverallAssessment(1), "generally aligned")
	assert.Contains(t, OverallAssessment(2), "generally aligned")
	assert.Contains(t, OverallAssessment(3), "requires attention")
	assert.Contains(t, OverallAssessment(7), "requires attention")
}
