package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/joshdey/pydemic/internal/epi"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Model        string             `json:"model"`
	Timestamp    time.Time          `json:"timestamp"`
	Dt           float64            `json:"dt"`
	Days         float64            `json:"days"`
	Compartments []string           `json:"compartments"`
	Metrics      map[string]float64 `json:"metrics"`
}

// columns flattens the trajectory's compartment map into a deterministic
// column order: sorted by name, age bins expanded in index order.
func columns(result *epi.Result) ([]string, []string, int) {
	names := make([]string, 0, len(result.Y))
	for name := range result.Y {
		names = append(names, name)
	}
	sort.Strings(names)

	shape := 0
	if len(names) > 0 && len(result.Y[names[0]]) > 0 {
		shape = len(result.Y[names[0]][0])
	}

	header := []string{"time"}
	for _, name := range names {
		if shape == 1 {
			header = append(header, name)
			continue
		}
		for j := 0; j < shape; j++ {
			header = append(header, fmt.Sprintf("%s[%d]", name, j))
		}
	}
	return names, header, shape
}

func (s *Store) Save(model string, dt, days float64, result *epi.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	names, header, _ := columns(result)

	meta := RunMetadata{
		ID:           runID,
		Model:        model,
		Timestamp:    time.Now(),
		Dt:           dt,
		Days:         days,
		Compartments: names,
		Metrics:      result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trajectory.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(names) == 0 {
		return runID, nil
	}

	if err := w.Write(header); err != nil {
		return "", err
	}

	for k := 0; k <= result.Steps && k < len(result.Times); k++ {
		row := []string{strconv.FormatFloat(result.Times[k], 'f', 6, 64)}
		for _, name := range names {
			for _, val := range result.Y[name][k] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads a saved run back as its column header, sample times
// and per-sample value rows.
func (s *Store) LoadTrajectory(runID string) ([]string, []float64, [][]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return nil, []float64{}, [][]float64{}, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		row := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	return header, times, rows, nil
}
