package models

// ScenarioCategory classifies the origin of a stress scenario
type ScenarioCategory string

const (
	ScenarioCategoryHistorical   ScenarioCategory = "historical"
	ScenarioCategoryHypothetical ScenarioCategory = "hypothetical"
	ScenarioCategoryRegulatory   ScenarioCategory = "regulatory"
)

// ShockParameters are the market-wide shocks of a scenario.
// Equity and bond shocks are percentages (-45 = -45%), credit spread change is in basis points.
type ShockParameters struct {
	EquityShock        float64 `json:"equity_shock" yaml:"equity_shock"`
	BondShock          float64 `json:"bond_shock" yaml:"bond_shock"`
	CreditSpreadChange float64 `json:"credit_spread_change" yaml:"credit_spread_change"`
	VolatilitySpike    float64 `json:"volatility_spike" yaml:"volatility_spike"`
}

// Scenario is read-only reference data consumed by the stress simulator
type Scenario struct {
	ScenarioID       string             `json:"scenario_id" yaml:"scenario_id"`
	ScenarioName     string             `json:"scenario_name" yaml:"scenario_name"`
	ScenarioCategory ScenarioCategory   `json:"scenario_category" yaml:"scenario_category"`
	Description      string             `json:"description,omitempty" yaml:"description"`
	ShockParameters  ShockParameters    `json:"shock_parameters" yaml:"shock_parameters"`
	SectorShocks     map[string]float64 `json:"sector_shocks,omitempty" yaml:"sector_shocks"`
}
