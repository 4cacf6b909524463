package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/joshdey/pydemic/internal/epi"
)

type ExportData struct {
	Model      string                 `json:"model"`
	Dt         float64                `json:"dt"`
	Days       float64                `json:"days"`
	Steps      int                    `json:"steps"`
	Times      []float64              `json:"times"`
	Trajectory map[string][][]float64 `json:"trajectory"`
	Metrics    map[string]float64     `json:"metrics"`
}

func exportData(model string, dt, days float64, result *epi.Result) ExportData {
	n := result.Steps + 1
	if n > len(result.Times) {
		n = len(result.Times)
	}

	trajectory := make(map[string][][]float64, len(result.Y))
	for name, series := range result.Y {
		rows := make([][]float64, n)
		for k := 0; k < n; k++ {
			rows[k] = series[k]
		}
		trajectory[name] = rows
	}

	return ExportData{
		Model:      model,
		Dt:         dt,
		Days:       days,
		Steps:      result.Steps,
		Times:      result.Times[:n],
		Trajectory: trajectory,
		Metrics:    result.Metrics,
	}
}

func exportTo(w io.Writer, model string, dt, days float64, result *epi.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(model, dt, days, result))
}

func ExportJSON(path, model string, dt, days float64, result *epi.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportTo(file, model, dt, days, result)
}

func ExportJSONStdout(model string, dt, days float64, result *epi.Result) error {
	return exportTo(os.Stdout, model, dt, days, result)
}
