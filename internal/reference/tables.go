package reference

import (
	"strings"

	"github.com/epeers/riskprofile/internal/models"
)

// TablesVersion identifies the revision of the static lookup tables below.
// Bump it whenever a factor, band or allocation value changes.
const TablesVersion = "2024.1"

// Single-factor model constants (annual percent)
const (
	RiskFreeRate = 3.5
	MarketReturn = 10.5
)

// FactorDefaults are the fallback volatility (annual percent) and beta of a holding
type FactorDefaults struct {
	Volatility float64
	Beta       float64
}

// kindFactors apply to every holding of the kind, except equities with a sector row
var kindFactors = map[models.SecurityKind]FactorDefaults{
	models.SecurityKindEquity: {Volatility: 20.0, Beta: 1.00},
	models.SecurityKindBond:   {Volatility: 6.0, Beta: 0.10},
	models.SecurityKindFund:   {Volatility: 16.0, Beta: 1.00},
	models.SecurityKindCash:   {Volatility: 0.5, Beta: 0.00},
}

var equitySectorFactors = map[string]FactorDefaults{
	"TECHNOLOGY":             {Volatility: 28.0, Beta: 1.25},
	"HEALTHCARE":             {Volatility: 20.0, Beta: 0.90},
	"FINANCIALS":             {Volatility: 22.0, Beta: 1.10},
	"CONSUMER_DISCRETIONARY": {Volatility: 24.0, Beta: 1.15},
	"CONSUMER_STAPLES":       {Volatility: 14.0, Beta: 0.65},
	"ENERGY":                 {Volatility: 30.0, Beta: 1.20},
	"UTILITIES":              {Volatility: 15.0, Beta: 0.55},
	"INDUSTRIALS":            {Volatility: 21.0, Beta: 1.05},
	"MATERIALS":              {Volatility: 23.0, Beta: 1.05},
	"REAL_ESTATE":            {Volatility: 22.0, Beta: 0.85},
	"COMMUNICATION_SERVICES": {Volatility: 24.0, Beta: 1.05},
}

// NormalizeSector upper-cases a sector tag and joins words with underscores,
// so "Real Estate" and "real_estate" resolve to the same table row.
func NormalizeSector(sector string) string {
	s := strings.ToUpper(strings.TrimSpace(sector))
	return strings.Join(strings.Fields(s), "_")
}

// DefaultFactors returns the table volatility and beta for a holding of the given kind and sector.
// Unknown kinds fall back to the generic equity row.
func DefaultFactors(kind models.SecurityKind, sector string) FactorDefaults {
	if kind == models.SecurityKindEquity {
		if f, ok := equitySectorFactors[NormalizeSector(sector)]; ok {
			return f
		}
	}
	if f, ok := kindFactors[kind]; ok {
		return f
	}
	return kindFactors[models.SecurityKindEquity]
}

// CategoryProfile is the allocation and limit tuple attached to a risk category
type CategoryProfile struct {
	Allocation models.AssetAllocation
	Limits     models.RiskLimits
}

var categoryProfiles = map[models.RiskCategory]CategoryProfile{
	models.RiskCategoryConservative: {
		Allocation: models.AssetAllocation{Equities: 20, FixedIncome: 60, Alternatives: 5, Cash: 15},
		Limits:     models.RiskLimits{MaxDrawdown: 10, MaxVolatility: 8, MaxConcentration: 10},
	},
	models.RiskCategoryModeratelyConservative: {
		Allocation: models.AssetAllocation{Equities: 35, FixedIncome: 50, Alternatives: 5, Cash: 10},
		Limits:     models.RiskLimits{MaxDrawdown: 15, MaxVolatility: 11, MaxConcentration: 12},
	},
	models.RiskCategoryModerate: {
		Allocation: models.AssetAllocation{Equities: 50, FixedIncome: 35, Alternatives: 10, Cash: 5},
		Limits:     models.RiskLimits{MaxDrawdown: 20, MaxVolatility: 14, MaxConcentration: 15},
	},
	models.RiskCategoryModeratelyAggressive: {
		Allocation: models.AssetAllocation{Equities: 70, FixedIncome: 20, Alternatives: 7, Cash: 3},
		Limits:     models.RiskLimits{MaxDrawdown: 28, MaxVolatility: 18, MaxConcentration: 20},
	},
	models.RiskCategoryAggressive: {
		Allocation: models.AssetAllocation{Equities: 85, FixedIncome: 5, Alternatives: 8, Cash: 2},
		Limits:     models.RiskLimits{MaxDrawdown: 35, MaxVolatility: 24, MaxConcentration: 25},
	},
}

// ProfileForCategory returns the allocation/limit tuple of a category
func ProfileForCategory(c models.RiskCategory) (CategoryProfile, bool) {
	p, ok := categoryProfiles[c]
	return p, ok
}

// categoryBands maps a raw questionnaire score to a category.
// Each band is closed at its upper bound; scores above the last bound are Aggressive.
var categoryBands = []struct {
	upper    int
	category models.RiskCategory
}{
	{30, models.RiskCategoryConservative},
	{45, models.RiskCategoryModeratelyConservative},
	{55, models.RiskCategoryModerate},
	{65, models.RiskCategoryModeratelyAggressive},
}

// CategoryForScore classifies a raw questionnaire score
func CategoryForScore(rawScore int) models.RiskCategory {
	for _, b := range categoryBands {
		if rawScore <= b.upper {
			return b.category
		}
	}
	return models.RiskCategoryAggressive
}

// Benchmark is a fixed historical return/volatility profile (annual percent)
type Benchmark struct {
	Symbol     string
	Return     float64
	Volatility float64
}

// DefaultBenchmark is used when a calculation does not name one
const DefaultBenchmark = "SPY"

var benchmarks = map[string]Benchmark{
	"SPY":   {Symbol: "SPY", Return: 10.5, Volatility: 15.0},
	"QQQ":   {Symbol: "QQQ", Return: 13.5, Volatility: 21.0},
	"AGG":   {Symbol: "AGG", Return: 4.0, Volatility: 5.5},
	"VT":    {Symbol: "VT", Return: 9.0, Volatility: 15.5},
	"60/40": {Symbol: "60/40", Return: 7.5, Volatility: 10.0},
}

// LookupBenchmark finds a benchmark by symbol (case-insensitive)
func LookupBenchmark(symbol string) (Benchmark, bool) {
	b, ok := benchmarks[strings.ToUpper(strings.TrimSpace(symbol))]
	return b, ok
}
