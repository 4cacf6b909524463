package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshdey/pydemic/internal/epi"
)

func sampleResult() *epi.Result {
	return &epi.Result{
		Times: []float64{0.0, 0.01, 0.02},
		Y: map[string][]epi.Array{
			"susceptible": {{9.0}, {8.5}, {0}},
			"infectious":  {{1.0}, {1.5}, {0}},
		},
		Metrics: map[string]float64{"peak_infectious": 1.5},
		Steps:   1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("seir", 0.01, 1.0, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "seir" {
		t.Errorf("expected model 'seir', got '%s'", meta.Model)
	}
	if meta.Metrics["peak_infectious"] != 1.5 {
		t.Errorf("expected peak 1.5, got %f", meta.Metrics["peak_infectious"])
	}
	if len(meta.Compartments) != 2 || meta.Compartments[0] != "infectious" {
		t.Errorf("expected sorted compartment names, got %v", meta.Compartments)
	}

	header, times, rows, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	// only samples 0..Steps are persisted; trailing zero rows are dropped
	if len(times) != 2 || len(rows) != 2 {
		t.Fatalf("expected 2 persisted samples, got %d times, %d rows", len(times), len(rows))
	}
	if len(header) != 3 || header[1] != "infectious" || header[2] != "susceptible" {
		t.Errorf("unexpected header %v", header)
	}
	if rows[1][0] != 1.5 || rows[1][1] != 8.5 {
		t.Errorf("unexpected sample row %v", rows[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("seir", 0.01, 1.0, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("extended", 0.01, 1.0, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "trajectory.csv")); os.IsNotExist(err) {
		t.Error("trajectory.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, "seir", 0.01, 1.0, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty export")
	}
}
