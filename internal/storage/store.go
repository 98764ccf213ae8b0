package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/simgallery/internal/export"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

// Store keeps headless runs on disk, one directory per run.
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
	ID          string             `json:"id"`
	Simulations []string           `json:"simulations"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Frames      int                `json:"frames"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Backend     string             `json:"backend"`
	Elapsed     float64            `json:"elapsed"`
	Final       map[string]float64 `json:"final"`
}

// Save writes meta and the sampled series, one column per simulation, and
// returns the new run id.
func (s *Store) Save(meta RunMetadata, columns [][]float64) (string, error) {
	if len(columns) != len(meta.Simulations) {
		return "", fmt.Errorf("%d series for %d simulations", len(columns), len(meta.Simulations))
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("%s_%d", strings.Join(meta.Simulations, "+"), meta.Timestamp.UnixMilli())
	meta.Final = make(map[string]float64, len(columns))
	for i, c := range columns {
		if len(c) > 0 {
			meta.Final[meta.Simulations[i]] = c[len(c)-1]
		}
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	err := export.Save(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	header := append([]string{"sample"}, meta.Simulations...)
	index := make([]float64, 0)
	for _, c := range columns {
		for len(index) < len(c) {
			index = append(index, float64(len(index)))
		}
	}
	err = export.Save(filepath.Join(runDir, seriesFile), func(w io.Writer) error {
		return export.WriteSeriesCSV(w, header, append([][]float64{index}, columns...))
	})
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, oldest first. A missing store is empty.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	slices.SortFunc(runs, func(a, b RunMetadata) int { return a.Timestamp.Compare(b.Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads a run's columns back, keyed by simulation name. Empty
// cells end a column.
func (s *Store) LoadSeries(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s series: %w", runID, err)
	}
	if len(records) == 0 {
		return map[string][]float64{}, nil
	}

	header := records[0]
	out := make(map[string][]float64, len(header))
	for _, record := range records[1:] {
		for j := 1; j < len(record) && j < len(header); j++ {
			if record[j] == "" {
				continue
			}
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			out[header[j]] = append(out[header[j]], val)
		}
	}
	return out, nil
}
