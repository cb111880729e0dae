package models

import (
	"github.com/shopspring/decimal"
)

// RiskAdjustedReturns groups the return/risk ratios of a portfolio
type RiskAdjustedReturns struct {
	Sharpe  float64 `json:"sharpe_ratio"`
	Sortino float64 `json:"sortino_ratio"`
	Treynor float64 `json:"treynor_ratio"`
}

// ValueAtRisk contains parametric one-month VaR and expected shortfall figures.
// Percent values are negative (a loss); amounts are in the portfolio's currency.
type ValueAtRisk struct {
	MonthlyVolatility         float64         `json:"monthly_volatility"`
	VaR95Percent              float64         `json:"var_95_percent"`
	VaR95Amount               decimal.Decimal `json:"var_95_amount"`
	VaR99Percent              float64         `json:"var_99_percent"`
	VaR99Amount               decimal.Decimal `json:"var_99_amount"`
	ExpectedShortfall95       float64         `json:"expected_shortfall_95_percent"`
	ExpectedShortfall95Amount decimal.Decimal `json:"expected_shortfall_95_amount"`
	ExpectedShortfall99       float64         `json:"expected_shortfall_99_percent"`
	ExpectedShortfall99Amount decimal.Decimal `json:"expected_shortfall_99_amount"`
}

// RiskContributor is one of the holdings contributing most to portfolio risk
type RiskContributor struct {
	Symbol       string  `json:"symbol"`
	Weight       float64 `json:"weight"`
	Volatility   float64 `json:"volatility"`
	Contribution float64 `json:"contribution"`
	ShareOfRisk  float64 `json:"share_of_risk"` // percent of summed weight*volatility
}

// RiskDecomposition splits risk into market-driven and security-specific parts
type RiskDecomposition struct {
	SystematicRisk   float64           `json:"systematic_risk"`
	UnsystematicRisk float64           `json:"unsystematic_risk"`
	TopContributors  []RiskContributor `json:"top_risk_contributors"`
}

// BenchmarkComparison compares expected return against a fixed benchmark profile
type BenchmarkComparison struct {
	Symbol              string  `json:"symbol"`
	BenchmarkReturn     float64 `json:"benchmark_return"`
	BenchmarkVolatility float64 `json:"benchmark_volatility"`
	Alpha               float64 `json:"alpha"`
}

// PortfolioRiskResult is the output of the portfolio risk calculator
type PortfolioRiskResult struct {
	HoldingsCount       int                 `json:"holdings_count"`
	Volatility          float64             `json:"volatility"`
	Beta                float64             `json:"beta"`
	ExpectedReturn      float64             `json:"expected_return"`
	RiskAdjustedReturns RiskAdjustedReturns `json:"risk_adjusted_returns"`
	ValueAtRisk         ValueAtRisk         `json:"value_at_risk"`
	MaxDrawdown         float64             `json:"max_drawdown_estimate"`
	DrawdownMethod      string              `json:"drawdown_method"`
	TrackingError       float64             `json:"tracking_error"`
	RSquared            float64             `json:"r_squared"`
	RiskDecomposition   RiskDecomposition   `json:"risk_decomposition"`
	Benchmark           BenchmarkComparison `json:"benchmark_comparison"`
}

// LimitStatus reports whether a concentration check passed
type LimitStatus string

const (
	LimitStatusWithin   LimitStatus = "WITHIN_LIMIT"
	LimitStatusBreached LimitStatus = "BREACHED"
)

// ConcentrationRiskLevel is the overall concentration risk tier
type ConcentrationRiskLevel string

const (
	ConcentrationRiskLow      ConcentrationRiskLevel = "LOW"
	ConcentrationRiskModerate ConcentrationRiskLevel = "MODERATE"
	ConcentrationRiskElevated ConcentrationRiskLevel = "ELEVATED"
	ConcentrationRiskHigh     ConcentrationRiskLevel = "HIGH"
)

// AlertSeverity grades a concentration alert
type AlertSeverity string

const (
	AlertSeverityMedium AlertSeverity = "MEDIUM"
	AlertSeverityHigh   AlertSeverity = "HIGH"
)

// ConcentrationThresholds are the configurable limits of the concentration analyzer (percent)
type ConcentrationThresholds struct {
	SinglePositionLimit float64 `json:"single_position_limit"`
	SectorLimit         float64 `json:"sector_limit"`
	Top5Limit           float64 `json:"top5_limit"`
}

// PositionConcentration describes the largest single holding
type PositionConcentration struct {
	Symbol string      `json:"symbol"`
	Weight float64     `json:"weight"`
	Limit  float64     `json:"limit"`
	Status LimitStatus `json:"status"`
	Breach float64     `json:"breach"`
}

// SectorConcentration describes the largest sector and the full sector breakdown
type SectorConcentration struct {
	Sector    string             `json:"sector"`
	Weight    float64            `json:"weight"`
	Limit     float64            `json:"limit"`
	Status    LimitStatus        `json:"status"`
	Breach    float64            `json:"breach"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// Top5Concentration describes the combined weight of the five largest holdings
type Top5Concentration struct {
	Symbols []string    `json:"symbols"`
	Weight  float64     `json:"weight"`
	Limit   float64     `json:"limit"`
	Status  LimitStatus `json:"status"`
	Breach  float64     `json:"breach"`
}

// ConcentrationAlert is raised for each breached concentration dimension
type ConcentrationAlert struct {
	Dimension string        `json:"dimension"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
}

// ConcentrationResult is the output of the concentration analyzer
type ConcentrationResult struct {
	HerfindahlIndex    float64                 `json:"herfindahl_index"`
	EffectivePositions float64                 `json:"effective_positions"`
	SinglePosition     PositionConcentration   `json:"single_position"`
	Sector             SectorConcentration     `json:"sector"`
	Top5               Top5Concentration       `json:"top5"`
	OverallRisk        ConcentrationRiskLevel  `json:"overall_risk"`
	Alerts             []ConcentrationAlert    `json:"alerts"`
	Thresholds         ConcentrationThresholds `json:"thresholds"`
}

// SuitabilityStatus is the verdict of a single suitability dimension
type SuitabilityStatus string

const (
	StatusAligned              SuitabilityStatus = "ALIGNED"
	StatusMinorDeviation       SuitabilityStatus = "MINOR_DEVIATION"
	StatusMisaligned           SuitabilityStatus = "MISALIGNED"
	StatusSignificantDeviation SuitabilityStatus = "SIGNIFICANT_DEVIATION"
	StatusCompliant            SuitabilityStatus = "COMPLIANT"
	StatusMinorNonCompliant    SuitabilityStatus = "MINOR_NON_COMPLIANT"
	StatusNonCompliant         SuitabilityStatus = "NON_COMPLIANT"
	StatusCaution              SuitabilityStatus = "CAUTION"
)

// DimensionResult is the common part of every suitability dimension
type DimensionResult struct {
	Score   float64           `json:"score"`
	Status  SuitabilityStatus `json:"status"`
	Details string            `json:"details"`
}

// RiskAlignment compares realized risk against the profile tolerances
type RiskAlignment struct {
	DimensionResult
	ActualVolatility    float64 `json:"actual_volatility"`
	VolatilityTolerance float64 `json:"volatility_tolerance"`
	ActualDrawdown      float64 `json:"actual_drawdown"`
	DrawdownTolerance   float64 `json:"drawdown_tolerance"`
}

// AllocationAlignment compares the asset-class mix with the recommended allocation.
// Gaps are signed: actual minus recommended.
type AllocationAlignment struct {
	DimensionResult
	Actual         AssetAllocation `json:"actual"`
	Recommended    AssetAllocation `json:"recommended"`
	EquityGap      float64         `json:"equity_gap"`
	FixedIncomeGap float64         `json:"fixed_income_gap"`
}

// ConcentrationCompliance checks position and sector weights against the profile limit
type ConcentrationCompliance struct {
	DimensionResult
	MaxPositionWeight float64 `json:"max_position_weight"`
	MaxSectorWeight   float64 `json:"max_sector_weight"`
	Limit             float64 `json:"limit"`
	PositionBreached  bool    `json:"position_breached"`
	SectorBreached    bool    `json:"sector_breached"`
}

// TimeHorizonFit checks volatility against the investor's horizon
type TimeHorizonFit struct {
	DimensionResult
	TimeHorizon TimeHorizon `json:"time_horizon"`
	Volatility  float64     `json:"volatility"`
}

// SuitabilityResult is the output of the suitability evaluator
type SuitabilityResult struct {
	InvestorID              string                  `json:"investor_id"`
	RiskCategory            RiskCategory            `json:"risk_category"`
	RiskCategoryName        string                  `json:"risk_category_name"`
	RiskAlignment           RiskAlignment           `json:"risk_alignment"`
	AllocationAlignment     AllocationAlignment     `json:"allocation_alignment"`
	ConcentrationCompliance ConcentrationCompliance `json:"concentration_compliance"`
	TimeHorizonFit          TimeHorizonFit          `json:"time_horizon_fit"`
	OverallScore            float64                 `json:"overall_score"`
	DisplayScore            int                     `json:"display_score"`
	Rating                  string                  `json:"rating"`
	Recommendation          string                  `json:"recommendation"`
	RequiredActions         []string                `json:"required_actions"`
}

// HoldingImpact is the stressed outcome of a single holding
type HoldingImpact struct {
	Symbol        string          `json:"symbol"`
	SecurityKind  SecurityKind    `json:"security_kind"`
	Sector        string          `json:"sector"`
	MarketValue   decimal.Decimal `json:"market_value"`
	StressedValue decimal.Decimal `json:"stressed_value"`
	Loss          decimal.Decimal `json:"loss"`
	ShockPercent  float64         `json:"shock_percent"`
}

// RiskProfileComparison cross-checks a stress loss against the profile's drawdown tolerance
type RiskProfileComparison struct {
	MaxDrawdownTolerance float64 `json:"max_drawdown_tolerance"`
	ExceedsTolerance     bool    `json:"exceeds_tolerance"`
	Excess               float64 `json:"excess"`
	Warning              string  `json:"warning,omitempty"`
}

// StressImpactResult is the output of one stress scenario run
type StressImpactResult struct {
	ScenarioID            string                 `json:"scenario_id"`
	ScenarioName          string                 `json:"scenario_name"`
	ScenarioCategory      ScenarioCategory       `json:"scenario_category"`
	ShockParameters       ShockParameters        `json:"shock_parameters"`
	CurrentValue          decimal.Decimal        `json:"current_value"`
	StressedValue         decimal.Decimal        `json:"stressed_value"`
	DollarLoss            decimal.Decimal        `json:"dollar_loss"`
	PercentageLoss        float64                `json:"percentage_loss"`
	HoldingImpacts        []HoldingImpact        `json:"holding_impacts"`
	WorstHit              []HoldingImpact        `json:"worst_hit"`
	BestProtected         []HoldingImpact        `json:"best_protected"`
	RecoveryTime          string                 `json:"recovery_time"`
	RiskProfileComparison *RiskProfileComparison `json:"risk_profile_comparison,omitempty"`
}
