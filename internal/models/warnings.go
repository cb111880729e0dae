package models

// WarningCode categorizes warnings by subsystem.
// W3xxx = input validation, W4xxx = stress testing.
type WarningCode string

const (
	WarnWeightDrift        WarningCode = "W3001" // holding weights do not sum to ~100%
	WarnDefaultedFactor    WarningCode = "W3002" // beta or volatility filled from the factor table
	WarnStressOverDrawdown WarningCode = "W4001" // stress loss exceeds the profile's drawdown tolerance
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
