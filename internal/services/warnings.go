package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/epeers/riskprofile/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates warnings raised while analysing one request.
// Identical warnings (same code and message) are recorded once, since several
// calculators may inspect the same portfolio in a single call.
type WarningCollector struct {
	mu       sync.Mutex
	seen     map[models.Warning]struct{}
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus a reference to the collector so the handler can retrieve warnings later.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{seen: make(map[models.Warning]struct{})}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning records a warning on the collector in ctx.
// If ctx has no collector, the call is a no-op.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if _, dup := wc.seen[w]; dup {
		return
	}
	wc.seen[w] = struct{}{}
	wc.warnings = append(wc.warnings, w)
}

func addWarningf(ctx context.Context, code models.WarningCode, format string, args ...any) {
	AddWarning(ctx, models.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// GetWarnings returns a copy of the collected warnings in the order they were raised.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return nil
	}
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
