package services

import (
	"context"
	"testing"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcentration_SinglePositionBreach(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())
	holdings := []models.Holding{holding("AAPL", models.SecurityKindEquity, "TECHNOLOGY", 22.5, 22500)}

	pos := a.SinglePosition(holdings, 10)
	assert.Equal(t, "AAPL", pos.Symbol)
	assert.Equal(t, models.LimitStatusBreached, pos.Status)
	assert.InDelta(t, 12.5, pos.Breach, 1e-9)

	within := a.SinglePosition(holdings, 25)
	assert.Equal(t, models.LimitStatusWithin, within.Status)
	assert.Equal(t, 0.0, within.Breach)
}

func TestConcentration_HHIBounds(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())
	weightSets := [][]float64{
		{},
		{100},
		{50, 50},
		{22.5, 20, 15, 12.5, 10, 20},
		{10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
		{0, 0, 0},
		{60, 45},
		{100, 100},
		{100, 80, 70},
	}
	for _, weights := range weightSets {
		holdings := make([]models.Holding, 0, len(weights))
		for _, w := range weights {
			holdings = append(holdings, holding("X", models.SecurityKindEquity, "", w, 0))
		}
		hhi := a.HerfindahlIndex(holdings)
		assert.GreaterOrEqual(t, hhi, 0.0, "weights %v", weights)
		assert.LessOrEqual(t, hhi, 1.0+1e-9, "weights %v", weights)

		eff := a.EffectivePositions(hhi)
		if hhi > 0 {
			assert.InDelta(t, 1/hhi, eff, 1e-9)
		} else {
			assert.Equal(t, 0.0, eff)
		}
	}

	equal := a.HerfindahlIndex(balancedPortfolio().Holdings)
	assert.InDelta(t, 0.1, equal, 1e-9)
	assert.InDelta(t, 10, a.EffectivePositions(equal), 1e-9)

	// Overweight sets are measured as shares of their total
	doubled := []models.Holding{
		holding("A", models.SecurityKindEquity, "", 100, 0),
		holding("B", models.SecurityKindEquity, "", 100, 0),
	}
	assert.InDelta(t, 0.5, a.HerfindahlIndex(doubled), 1e-9)
	assert.InDelta(t, 2, a.EffectivePositions(a.HerfindahlIndex(doubled)), 1e-9)
}

func TestConcentration_HHIOverweightPortfolio(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())
	p := &models.PortfolioSnapshot{
		TotalValue: decimal.NewFromInt(100000),
		Holdings: []models.Holding{
			holding("A", models.SecurityKindEquity, "TECHNOLOGY", 100, 50000),
			holding("B", models.SecurityKindEquity, "ENERGY", 100, 50000),
		},
	}

	res, err := a.Analyze(context.Background(), p, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.HerfindahlIndex, 1.0)
	assert.GreaterOrEqual(t, res.EffectivePositions, 1.0)
}

func TestConcentration_SectorConcentration(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())
	s := a.SectorConcentration(samplePortfolio().Holdings, 25)

	assert.Equal(t, "TECHNOLOGY", s.Sector)
	assert.InDelta(t, 42.5, s.Weight, 1e-9)
	assert.Equal(t, models.LimitStatusBreached, s.Status)
	assert.InDelta(t, 17.5, s.Breach, 1e-9)
	assert.Len(t, s.Breakdown, 5)
	assert.InDelta(t, 15, s.Breakdown["FINANCIALS"], 1e-9)

	untagged := a.SectorConcentration([]models.Holding{holding("F", models.SecurityKindFund, "", 30, 0)}, 25)
	assert.Equal(t, unclassifiedSector, untagged.Sector)
	blank := a.SectorConcentration([]models.Holding{holding("G", models.SecurityKindFund, "   ", 30, 0)}, 25)
	assert.Equal(t, unclassifiedSector, blank.Sector)
}

func TestConcentration_SectorTagsAreNormalized(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())
	holdings := []models.Holding{
		holding("AAPL", models.SecurityKindEquity, "Technology", 20, 0),
		holding("MSFT", models.SecurityKindEquity, "TECHNOLOGY", 20, 0),
		holding("BND", models.SecurityKindBond, "bonds", 60, 0),
	}

	s := a.SectorConcentration(holdings, 25)
	assert.Equal(t, map[string]float64{"TECHNOLOGY": 40, "BONDS": 60}, s.Breakdown)
	assert.Equal(t, "BONDS", s.Sector)
	assert.Equal(t, models.LimitStatusBreached, s.Status)

	s = a.SectorConcentration(holdings[:2], 25)
	assert.Equal(t, "TECHNOLOGY", s.Sector)
	assert.InDelta(t, 40, s.Weight, 1e-9)
	assert.Equal(t, models.LimitStatusBreached, s.Status)
	assert.InDelta(t, 15, s.Breach, 1e-9)
}

func TestConcentration_Top5(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())

	top := a.Top5Concentration(samplePortfolio().Holdings, 50)
	assert.Equal(t, []string{"AAPL", "MSFT", "AMZN", "JPM", "JNJ"}, top.Symbols)
	assert.InDelta(t, 90, top.Weight, 1e-9)
	assert.Equal(t, models.LimitStatusBreached, top.Status)
	assert.InDelta(t, 40, top.Breach, 1e-9)

	few := a.Top5Concentration([]models.Holding{
		holding("A", models.SecurityKindEquity, "", 20, 0),
		holding("B", models.SecurityKindEquity, "", 15, 0),
	}, 50)
	assert.InDelta(t, 35, few.Weight, 1e-9)
	assert.Equal(t, models.LimitStatusWithin, few.Status)
}

func riskRank(level models.ConcentrationRiskLevel) int {
	return map[models.ConcentrationRiskLevel]int{
		models.ConcentrationRiskLow:      0,
		models.ConcentrationRiskModerate: 1,
		models.ConcentrationRiskElevated: 2,
		models.ConcentrationRiskHigh:     3,
	}[level]
}

func TestConcentration_OverallRiskMonotonicInBreaches(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())
	for _, hhi := range []float64{0, 0.03, 0.07, 0.12, 0.2, 1} {
		prev := -1
		for breaches := 0; breaches <= 3; breaches++ {
			rank := riskRank(a.OverallRisk(breaches, hhi))
			assert.GreaterOrEqual(t, rank, prev, "hhi %.2f breaches %d", hhi, breaches)
			prev = rank
		}
	}

	assert.Equal(t, models.ConcentrationRiskLow, a.OverallRisk(0, 0.05))
	assert.Equal(t, models.ConcentrationRiskModerate, a.OverallRisk(0, 0.06))
	assert.Equal(t, models.ConcentrationRiskElevated, a.OverallRisk(1, 0.01))
	assert.Equal(t, models.ConcentrationRiskHigh, a.OverallRisk(2, 0.01))
}

func TestConcentration_Analyze(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())
	res, err := a.Analyze(context.Background(), samplePortfolio(), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultThresholds(), res.Thresholds)
	assert.Equal(t, models.ConcentrationRiskHigh, res.OverallRisk)
	require.Len(t, res.Alerts, 3)

	assert.Equal(t, "single_position", res.Alerts[0].Dimension)
	assert.Equal(t, models.AlertSeverityHigh, res.Alerts[0].Severity, "12.5pp breach is above the 10pp secondary threshold")
	assert.Contains(t, res.Alerts[0].Message, "AAPL")
	assert.Contains(t, res.Alerts[0].Message, "22.50%")
	assert.Contains(t, res.Alerts[0].Message, "10.00%")

	assert.Equal(t, "sector", res.Alerts[1].Dimension)
	assert.Equal(t, models.AlertSeverityHigh, res.Alerts[1].Severity)
	assert.Equal(t, "top5", res.Alerts[2].Dimension)
	assert.Equal(t, models.AlertSeverityHigh, res.Alerts[2].Severity)
}

func TestConcentration_AnalyzeCustomThresholds(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())

	loose := &models.ConcentrationThresholds{SinglePositionLimit: 30, SectorLimit: 50, Top5Limit: 95}
	res, err := a.Analyze(context.Background(), samplePortfolio(), loose)
	require.NoError(t, err)
	assert.Empty(t, res.Alerts)
	assert.NotNil(t, res.Alerts)

	_, err = a.Analyze(context.Background(), samplePortfolio(), &models.ConcentrationThresholds{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConcentration_BalancedPortfolio(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())
	res, err := a.Analyze(context.Background(), balancedPortfolio(), nil)
	require.NoError(t, err)

	assert.Equal(t, models.LimitStatusWithin, res.SinglePosition.Status)
	assert.Equal(t, models.LimitStatusWithin, res.Sector.Status)
	assert.Equal(t, models.LimitStatusWithin, res.Top5.Status, "exactly at the limit is not a breach")
	assert.NotEqual(t, models.ConcentrationRiskHigh, res.OverallRisk)
	assert.Empty(t, res.Alerts)
}

func TestConcentration_Idempotent(t *testing.T) {
	a := NewConcentrationAnalyzer(DefaultThresholds())
	p := &models.PortfolioSnapshot{
		TotalValue: decimal.NewFromInt(1000),
		Holdings: []models.Holding{
			holding("A", models.SecurityKindEquity, "ENERGY", 40, 400),
			holding("B", models.SecurityKindEquity, "UTILITIES", 40, 400),
			holding("C", models.SecurityKindBond, "", 20, 200),
		},
	}
	first, err := a.Analyze(context.Background(), p, nil)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// ENERGY and UTILITIES tie; the first sector seen wins
	assert.Equal(t, "ENERGY", first.Sector.Sector)
}
