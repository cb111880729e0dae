package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeHorizon is the investor's stated investment horizon
type TimeHorizon string

const (
	TimeHorizonShort  TimeHorizon = "short"
	TimeHorizonMedium TimeHorizon = "medium"
	TimeHorizonLong   TimeHorizon = "long"
)

// RiskCategory is one of five ordinal risk tiers (1 = most conservative)
type RiskCategory int

const (
	RiskCategoryConservative RiskCategory = iota + 1
	RiskCategoryModeratelyConservative
	RiskCategoryModerate
	RiskCategoryModeratelyAggressive
	RiskCategoryAggressive
)

var riskCategoryNames = map[RiskCategory]string{
	RiskCategoryConservative:           "Conservative",
	RiskCategoryModeratelyConservative: "Moderately Conservative",
	RiskCategoryModerate:               "Moderate",
	RiskCategoryModeratelyAggressive:   "Moderately Aggressive",
	RiskCategoryAggressive:             "Aggressive",
}

// String returns the display name of the category
func (c RiskCategory) String() string {
	if name, ok := riskCategoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Investor holds the demographic inputs used to build a risk profile
type Investor struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Age            int             `json:"age"`
	AnnualIncome   decimal.Decimal `json:"annual_income"`
	LiquidNetWorth decimal.Decimal `json:"liquid_net_worth"`
	TimeHorizon    TimeHorizon     `json:"time_horizon"`
}

// AssessmentResponse is a single answered questionnaire item
type AssessmentResponse struct {
	QuestionID string `json:"question_id" binding:"required"`
	OptionID   string `json:"option_id" binding:"required"`
}

// Assessment is a completed questionnaire with its computed scores
type Assessment struct {
	ID              string               `json:"id"`
	InvestorID      string               `json:"investor_id"`
	Responses       []AssessmentResponse `json:"responses"`
	RawScore        int                  `json:"raw_score"`
	PercentileScore float64              `json:"percentile_score"`
	CompletedAt     time.Time            `json:"completed_at"`
}

// RiskLimits are the tolerance limits attached to a risk category (percent values)
type RiskLimits struct {
	MaxDrawdown      float64 `json:"max_drawdown_tolerance"`
	MaxVolatility    float64 `json:"max_volatility_tolerance"`
	MaxConcentration float64 `json:"max_concentration_limit"`
}

// RiskProfile is the scored outcome of an assessment.
// Exactly one profile per investor is active; superseded profiles carry ValidTo.
type RiskProfile struct {
	ID                    string          `json:"id"`
	InvestorID            string          `json:"investor_id"`
	AssessmentID          string          `json:"assessment_id"`
	RiskCategory          RiskCategory    `json:"risk_category"`
	RiskCategoryName      string          `json:"risk_category_name"`
	CompositeScore        float64         `json:"composite_score"`
	ToleranceScore        float64         `json:"tolerance_score"`
	CapacityScore         float64         `json:"capacity_score"`
	TimeHorizonScore      float64         `json:"time_horizon_score"`
	TimeHorizon           TimeHorizon     `json:"time_horizon"`
	RecommendedAllocation AssetAllocation `json:"recommended_allocation"`
	RiskLimits            RiskLimits      `json:"risk_limits"`
	IsActive              bool            `json:"is_active"`
	ValidFrom             time.Time       `json:"valid_from"`
	ValidTo               *time.Time      `json:"valid_to,omitempty"`
}

// SubmitAssessmentRequest is the body for POST /investors/:investor_id/assessments
type SubmitAssessmentRequest struct {
	Responses []AssessmentResponse `json:"responses" binding:"required,dive"`
}
