package viz

import (
	"testing"

	"github.com/joshdey/pydemic/internal/epi"
)

func replayResult() *epi.Result {
	times := make([]float64, 201)
	sus := make([]epi.Array, 201)
	stage := make([]epi.Array, 201)
	for k := range times {
		times[k] = float64(k) * 0.01
		sus[k] = epi.Array{float64(200 - k)}
		stage[k] = epi.Array{float64(k)}
	}
	return &epi.Result{
		Times: times,
		Y: map[string][]epi.Array{
			"susceptible":          sus,
			"exposed:infectious:0": stage,
		},
		Steps: 200,
	}
}

func TestNewModelHidesStageCompartments(t *testing.T) {
	m := NewModel(replayResult(), "extended")

	if len(m.visible) != 1 || m.visible[0] != "susceptible" {
		t.Errorf("expected only top-level compartments, got %v", m.visible)
	}

	m.showStages = true
	m.rebuildVisible()
	if len(m.visible) != 2 {
		t.Errorf("expected stage compartments after toggle, got %v", m.visible)
	}
}

func TestScrubClampsToRange(t *testing.T) {
	m := NewModel(replayResult(), "extended")

	m.scrub(-10)
	if m.playHead != 0 {
		t.Errorf("expected play head clamped to 0, got %d", m.playHead)
	}

	m.scrub(1000)
	if m.playHead != m.result.Steps {
		t.Errorf("expected play head clamped to %d, got %d", m.result.Steps, m.playHead)
	}
	if m.running {
		t.Error("scrubbing should pause playback")
	}
}

func TestSeriesDownsamplesToChartWidth(t *testing.T) {
	m := NewModel(replayResult(), "extended")
	m.playHead = m.result.Steps

	data := m.series("susceptible")
	if len(data) < 2 || len(data) > 2*chartWidth {
		t.Errorf("expected downsampled series near chart width, got %d points", len(data))
	}
	if data[0] != 200 {
		t.Errorf("expected series to start at the first sample, got %v", data[0])
	}
}
