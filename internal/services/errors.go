package services

import (
	"errors"

	"github.com/epeers/riskprofile/internal/metrics"
)

// Error kinds returned by the calculation core and the services around it.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrValidation means the input was malformed or incomplete. It is always
	// returned before any computation begins.
	ErrValidation = errors.New("validation error")

	// ErrNotFound means a referenced entity (active profile, scenario, investor) is absent.
	ErrNotFound = errors.New("not found")

	// ErrComputation is reserved for arithmetic impossibility. Every division in the
	// core is guarded, so nothing currently returns it.
	ErrComputation = errors.New("computation error")
)

// errorKind labels an error for metrics
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrComputation):
		return "computation"
	default:
		return "internal"
	}
}

func recordError(operation string, err error) {
	if err != nil {
		metrics.CalculationErrors.WithLabelValues(operation, errorKind(err)).Inc()
	}
}
