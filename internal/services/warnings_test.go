package services

import (
	"context"
	"sync"
	"testing"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/shopspring/decimal"
)

func TestWarningCollector_BasicUsage(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	AddWarning(ctx, models.Warning{
		Code:    models.WarnWeightDrift,
		Message: "test warning 1",
	})
	AddWarning(ctx, models.Warning{
		Code:    models.WarnStressOverDrawdown,
		Message: "test warning 2",
	})

	warnings := wc.GetWarnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}

	if warnings[0].Code != models.WarnWeightDrift {
		t.Errorf("expected code %s, got %s", models.WarnWeightDrift, warnings[0].Code)
	}
	if warnings[1].Code != models.WarnStressOverDrawdown {
		t.Errorf("expected code %s, got %s", models.WarnStressOverDrawdown, warnings[1].Code)
	}
}

func TestWarningCollector_NoCollectorNoPanic(t *testing.T) {
	// AddWarning with a plain context should not panic
	AddWarning(context.Background(), models.Warning{
		Code:    models.WarnWeightDrift,
		Message: "this should be silently dropped",
	})
}

func TestWarningCollector_EmptyByDefault(t *testing.T) {
	_, wc := NewWarningContext(context.Background())
	if warnings := wc.GetWarnings(); len(warnings) != 0 {
		t.Errorf("expected 0 warnings, got %d", len(warnings))
	}
}

func TestWarningCollector_Dedupes(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())
	p := &models.PortfolioSnapshot{
		TotalValue: decimal.NewFromInt(100),
		Holdings:   []models.Holding{holding("A", models.SecurityKindEquity, "", 80, 80)},
	}

	// Both calculators check the same portfolio for drift
	if _, err := NewRiskCalculator().Calculate(ctx, p, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewConcentrationAnalyzer(DefaultThresholds()).Analyze(ctx, p, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drift := 0
	for _, w := range wc.GetWarnings() {
		if w.Code == models.WarnWeightDrift {
			drift++
		}
	}
	if drift != 1 {
		t.Errorf("expected a single drift warning, got %d", drift)
	}
}

func TestWarningCollector_ConcurrentSafe(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	var wg sync.WaitGroup
	n := 100
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			addWarningf(ctx, models.WarnStressOverDrawdown, "concurrent warning %d", i)
		}()
	}
	wg.Wait()

	warnings := wc.GetWarnings()
	if len(warnings) != n {
		t.Errorf("expected %d warnings, got %d", n, len(warnings))
	}
}

func TestWarningCollector_ReturnsCopy(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())
	AddWarning(ctx, models.Warning{Code: models.WarnWeightDrift, Message: "original"})

	first := wc.GetWarnings()
	first[0].Message = "changed"

	if got := wc.GetWarnings()[0].Message; got != "original" {
		t.Errorf("collector state was modified through the returned slice: %q", got)
	}
}

func TestWarningCollector_ContextPropagation(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	innerFunc := func(ctx context.Context) {
		AddWarning(ctx, models.Warning{Code: models.WarnDefaultedFactor, Message: "from inner function"})
	}
	middleFunc := func(ctx context.Context) {
		innerFunc(ctx)
		AddWarning(ctx, models.Warning{Code: models.WarnWeightDrift, Message: "from middle function"})
	}
	middleFunc(ctx)

	if warnings := wc.GetWarnings(); len(warnings) != 2 {
		t.Fatalf("expected 2 warnings from propagation, got %d", len(warnings))
	}
}
