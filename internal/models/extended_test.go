package models

import (
	"context"
	"math"
	"testing"

	"github.com/joshdey/pydemic/internal/epi"
)

func TestExtendedStagedProgression(t *testing.T) {
	m := NewExtended(ExtendedParams{Population: 10000, AvgInfectionRate: 2})

	// exposed->infectious k=3, infectious->recovered k=4, infectious->dead k=3
	if got := len(m.Network().HiddenCompartments()); got < 7 {
		t.Errorf("expected at least 7 hidden stage compartments, got %d", got)
	}

	result, err := m.Run(context.Background(), epi.TimeSpan{End: 60}, m.InitialState(10), 0.01)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	last := result.Steps
	for k := 0; k <= last; k++ {
		if math.Abs(totalAt(result, k)-10000) > 1e-6 {
			t.Fatalf("sample %d: population %v, want 10000", k, totalAt(result, k))
		}
	}
	if got := result.Y["dead"][last].Sum(); got <= 0 {
		t.Errorf("expected deaths through the staged chain, got %v", got)
	}
	if got := result.Y["recovered"][last].Sum(); got <= 0 {
		t.Errorf("expected recoveries through the staged chain, got %v", got)
	}
}
