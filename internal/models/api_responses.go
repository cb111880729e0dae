package models

import (
	"github.com/shopspring/decimal"
)

// RiskAnalysisRequest represents the request body for POST /analysis/risk
type RiskAnalysisRequest struct {
	Portfolio PortfolioSnapshot `json:"portfolio" binding:"required"`
	Benchmark string            `json:"benchmark"`
}

// RiskAnalysisResponse wraps a portfolio risk result with any warnings raised
type RiskAnalysisResponse struct {
	Result   *PortfolioRiskResult `json:"result"`
	Warnings []Warning            `json:"warnings,omitempty"`
}

// ConcentrationRequest represents the request body for POST /analysis/concentration
// Thresholds default to the configured limits when omitted.
type ConcentrationRequest struct {
	Portfolio  PortfolioSnapshot        `json:"portfolio" binding:"required"`
	Thresholds *ConcentrationThresholds `json:"thresholds,omitempty"`
}

// ConcentrationResponse wraps a concentration result with any warnings raised
type ConcentrationResponse struct {
	Result   *ConcentrationResult `json:"result"`
	Warnings []Warning            `json:"warnings,omitempty"`
}

// SuitabilityRequest represents the request body for POST /investors/:investor_id/suitability
type SuitabilityRequest struct {
	Portfolio PortfolioSnapshot `json:"portfolio" binding:"required"`
}

// SuitabilityResponse wraps a suitability result with any warnings raised
type SuitabilityResponse struct {
	Result   *SuitabilityResult `json:"result"`
	Warnings []Warning          `json:"warnings,omitempty"`
}

// StressTestRequest represents the request body for POST /investors/:investor_id/stress-tests
type StressTestRequest struct {
	ScenarioIDs []string          `json:"scenario_ids" binding:"required,min=1"`
	Portfolio   PortfolioSnapshot `json:"portfolio" binding:"required"`
}

// StressTestResponse holds one result per requested scenario, in request order
type StressTestResponse struct {
	Results  []StressImpactResult `json:"results"`
	Warnings []Warning            `json:"warnings,omitempty"`
}

// RecommendationRequest represents the request body for POST /investors/:investor_id/recommendations
type RecommendationRequest struct {
	Portfolio PortfolioSnapshot `json:"portfolio" binding:"required"`
	Benchmark string            `json:"benchmark"`
	AsOf      *AsOfDate         `json:"as_of,omitempty"`
}

// RecommendationResponse wraps a persisted recommendation bundle
type RecommendationResponse struct {
	Bundle   *RecommendationBundle `json:"bundle"`
	Warnings []Warning             `json:"warnings,omitempty"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UpsertInvestorRequest represents the request body for PUT /investors/:investor_id
type UpsertInvestorRequest struct {
	Name           string          `json:"name" binding:"required"`
	Age            int             `json:"age"`
	AnnualIncome   decimal.Decimal `json:"annual_income"`
	LiquidNetWorth decimal.Decimal `json:"liquid_net_worth"`
	TimeHorizon    TimeHorizon     `json:"time_horizon" binding:"required"`
}

// ScenarioListResponse lists the active stress scenario catalog
type ScenarioListResponse struct {
	CatalogVersion string     `json:"catalog_version"`
	Scenarios      []Scenario `json:"scenarios"`
}

// ProfileHistoryResponse lists every profile an investor has held, newest first
type ProfileHistoryResponse struct {
	InvestorID string        `json:"investor_id"`
	Profiles   []RiskProfile `json:"profiles"`
}
