package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/joshdey/pydemic/internal/config"
)

func TestSweepRunsVariantsConcurrently(t *testing.T) {
	base := config.GetPreset("seir", "textbook")

	configs := make([]*config.Config, 0, 3)
	for _, rate := range []float64{5, 10, 15} {
		c := *base
		c.SEIR.AvgInfectionRate = rate
		configs = append(configs, &c)
	}

	results, err := NewSweep(NewRegistry(), configs).Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// faster transmission leaves fewer susceptibles
	prev := math.Inf(1)
	for i, r := range results {
		final := r.Y["susceptible"][r.Steps][0]
		if final >= prev {
			t.Errorf("variant %d: expected susceptibles to shrink with infection rate, got %v >= %v", i, final, prev)
		}
		prev = final
	}
}

func TestSweepIsDeterministicPerVariant(t *testing.T) {
	cfg := config.GetPreset("seir", "textbook")
	configs := []*config.Config{cfg, cfg}

	results, err := NewSweep(NewRegistry(), configs).Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	a, b := results[0], results[1]
	if a.Steps != b.Steps {
		t.Fatalf("identical configs diverged: %d vs %d steps", a.Steps, b.Steps)
	}
	for k := 0; k <= a.Steps; k++ {
		if a.Y["infectious"][k][0] != b.Y["infectious"][k][0] {
			t.Fatalf("sample %d: identical configs diverged", k)
		}
	}
}

func TestSweepPropagatesBuildErrors(t *testing.T) {
	bad := config.DefaultConfig()
	bad.Model = "nonexistent"

	if _, err := NewSweep(NewRegistry(), []*config.Config{bad}).Run(context.Background()); err == nil {
		t.Error("expected error for unknown model in sweep")
	}
}
