package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/reference"
)

// Breach magnitudes (percentage points) above which an alert is HIGH rather than MEDIUM
const (
	positionAlertHighBreach = 10.0
	sectorAlertHighBreach   = 15.0
	top5AlertHighBreach     = 15.0
)

// unclassifiedSector groups holdings without a sector tag
const unclassifiedSector = "UNCLASSIFIED"

// DefaultThresholds returns the standard concentration limits
func DefaultThresholds() models.ConcentrationThresholds {
	return models.ConcentrationThresholds{
		SinglePositionLimit: 10,
		SectorLimit:         25,
		Top5Limit:           50,
	}
}

// ConcentrationAnalyzer measures position, sector and top-5 concentration
type ConcentrationAnalyzer struct {
	thresholds models.ConcentrationThresholds
}

// NewConcentrationAnalyzer creates an analyzer whose Analyze falls back to the given
// thresholds when a request does not carry its own.
func NewConcentrationAnalyzer(thresholds models.ConcentrationThresholds) *ConcentrationAnalyzer {
	return &ConcentrationAnalyzer{thresholds: thresholds}
}

// Thresholds returns the analyzer's default limits
func (a *ConcentrationAnalyzer) Thresholds() models.ConcentrationThresholds {
	return a.thresholds
}

// HerfindahlIndex is the sum of squared decimal weights. Weights summing past 100
// are rescaled to shares of their total first, so the index stays within [0,1].
func (a *ConcentrationAnalyzer) HerfindahlIndex(holdings []models.Holding) float64 {
	scale := 100.0
	var total float64
	for _, h := range holdings {
		total += h.Weight
	}
	if total > scale {
		scale = total
	}

	var hhi float64
	for _, h := range holdings {
		w := h.Weight / scale
		hhi += w * w
	}
	return hhi
}

// EffectivePositions is the number of equally weighted positions with the same HHI
func (a *ConcentrationAnalyzer) EffectivePositions(hhi float64) float64 {
	return safeDiv(1, hhi)
}

func limitStatus(weight, limit float64) (models.LimitStatus, float64) {
	if weight > limit {
		return models.LimitStatusBreached, weight - limit
	}
	return models.LimitStatusWithin, 0
}

// SinglePosition checks the largest holding against limit
func (a *ConcentrationAnalyzer) SinglePosition(holdings []models.Holding, limit float64) models.PositionConcentration {
	result := models.PositionConcentration{Limit: limit, Status: models.LimitStatusWithin}
	for i, h := range holdings {
		if i == 0 || h.Weight > result.Weight {
			result.Symbol = h.Symbol
			result.Weight = h.Weight
		}
	}
	result.Status, result.Breach = limitStatus(result.Weight, limit)
	result.Breach = round4(result.Breach)
	return result
}

// SectorConcentration sums weights per normalized sector tag and checks the largest sector
// against limit
func (a *ConcentrationAnalyzer) SectorConcentration(holdings []models.Holding, limit float64) models.SectorConcentration {
	breakdown := make(map[string]float64)
	var order []string
	for _, h := range holdings {
		sector := reference.NormalizeSector(h.Sector)
		if sector == "" {
			sector = unclassifiedSector
		}
		if _, seen := breakdown[sector]; !seen {
			order = append(order, sector)
		}
		breakdown[sector] += h.Weight
	}

	result := models.SectorConcentration{Limit: limit, Status: models.LimitStatusWithin, Breakdown: breakdown}
	// First-seen order keeps ties deterministic
	for _, sector := range order {
		breakdown[sector] = round4(breakdown[sector])
		if result.Sector == "" || breakdown[sector] > result.Weight {
			result.Sector = sector
			result.Weight = breakdown[sector]
		}
	}
	result.Status, result.Breach = limitStatus(result.Weight, limit)
	result.Breach = round4(result.Breach)
	return result
}

// Top5Concentration sums the five largest weights (all of them when fewer than five)
func (a *ConcentrationAnalyzer) Top5Concentration(holdings []models.Holding, limit float64) models.Top5Concentration {
	sorted := make([]models.Holding, len(holdings))
	copy(sorted, holdings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}

	result := models.Top5Concentration{Limit: limit, Symbols: make([]string, 0, len(sorted))}
	for _, h := range sorted {
		result.Symbols = append(result.Symbols, h.Symbol)
		result.Weight += h.Weight
	}
	result.Weight = round4(result.Weight)
	result.Status, result.Breach = limitStatus(result.Weight, limit)
	result.Breach = round4(result.Breach)
	return result
}

// OverallRisk grades concentration from the breach count and the HHI
func (a *ConcentrationAnalyzer) OverallRisk(breaches int, hhi float64) models.ConcentrationRiskLevel {
	switch {
	case breaches >= 2 || hhi > 0.15:
		return models.ConcentrationRiskHigh
	case breaches == 1 || hhi > 0.10:
		return models.ConcentrationRiskElevated
	case hhi > 0.05:
		return models.ConcentrationRiskModerate
	default:
		return models.ConcentrationRiskLow
	}
}

func alertSeverity(breach, highAbove float64) models.AlertSeverity {
	if breach > highAbove {
		return models.AlertSeverityHigh
	}
	return models.AlertSeverityMedium
}

// Alerts raises one alert per breached dimension
func (a *ConcentrationAnalyzer) Alerts(position models.PositionConcentration, sector models.SectorConcentration, top5 models.Top5Concentration) []models.ConcentrationAlert {
	alerts := []models.ConcentrationAlert{}
	if position.Status == models.LimitStatusBreached {
		alerts = append(alerts, models.ConcentrationAlert{
			Dimension: "single_position",
			Severity:  alertSeverity(position.Breach, positionAlertHighBreach),
			Message: fmt.Sprintf("%s represents %.2f%% of the portfolio, exceeding the %.2f%% single-position limit",
				position.Symbol, position.Weight, position.Limit),
		})
	}
	if sector.Status == models.LimitStatusBreached {
		alerts = append(alerts, models.ConcentrationAlert{
			Dimension: "sector",
			Severity:  alertSeverity(sector.Breach, sectorAlertHighBreach),
			Message: fmt.Sprintf("%s sector represents %.2f%% of the portfolio, exceeding the %.2f%% sector limit",
				sector.Sector, sector.Weight, sector.Limit),
		})
	}
	if top5.Status == models.LimitStatusBreached {
		alerts = append(alerts, models.ConcentrationAlert{
			Dimension: "top5",
			Severity:  alertSeverity(top5.Breach, top5AlertHighBreach),
			Message: fmt.Sprintf("Top 5 holdings represent %.2f%% of the portfolio, exceeding the %.2f%% limit",
				top5.Weight, top5.Limit),
		})
	}
	return alerts
}

// Analyze runs every concentration check. A nil thresholds pointer uses the analyzer defaults.
func (a *ConcentrationAnalyzer) Analyze(ctx context.Context, portfolio *models.PortfolioSnapshot, thresholds *models.ConcentrationThresholds) (*models.ConcentrationResult, error) {
	t := a.thresholds
	if thresholds != nil {
		t = *thresholds
	}
	if err := validatePortfolio(portfolio); err != nil {
		return nil, err
	}
	if err := validateThresholds(t); err != nil {
		return nil, err
	}
	checkWeightDrift(ctx, portfolio)

	holdings := portfolio.Holdings
	hhi := a.HerfindahlIndex(holdings)
	position := a.SinglePosition(holdings, t.SinglePositionLimit)
	sector := a.SectorConcentration(holdings, t.SectorLimit)
	top5 := a.Top5Concentration(holdings, t.Top5Limit)

	breaches := 0
	for _, s := range []models.LimitStatus{position.Status, sector.Status, top5.Status} {
		if s == models.LimitStatusBreached {
			breaches++
		}
	}

	return &models.ConcentrationResult{
		HerfindahlIndex:    round4(hhi),
		EffectivePositions: round2(a.EffectivePositions(hhi)),
		SinglePosition:     position,
		Sector:             sector,
		Top5:               top5,
		OverallRisk:        a.OverallRisk(breaches, hhi),
		Alerts:             a.Alerts(position, sector, top5),
		Thresholds:         t,
	}, nil
}
