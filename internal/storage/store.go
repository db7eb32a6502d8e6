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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/twobody/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"step", "ax", "ay", "bx", "by"}

type Store struct {
	baseDir string
	logger  *zap.Logger
}

func New(baseDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	G          float64            `json:"g"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	BodyA      dynamo.Particle    `json:"body_a"`
	BodyB      dynamo.Particle    `json:"body_b"`
	Metrics    map[string]float64 `json:"metrics"`
}

func newRunID(label string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", label, now.Format("20060102T150405"), uuid.NewString()[:8])
}

// Save writes meta and the trajectory under a fresh run directory and
// returns the run ID. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, tr dynamo.Trajectory) (string, error) {
	if meta.Label == "" {
		meta.Label = "run"
	}
	meta.Timestamp = time.Now().UTC()
	meta.ID = newRunID(meta.Label, meta.Timestamp)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), tr); err != nil {
		return "", err
	}

	s.logger.Debug("run saved",
		zap.String("id", meta.ID),
		zap.String("dir", runDir),
		zap.Int("samples", len(tr)),
	)
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrajectory(path string, tr dynamo.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCSV(f, tr); err != nil {
		return err
	}
	return f.Sync()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first. Directories without
// valid metadata are skipped.
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
			s.logger.Debug("skipping run directory", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (dynamo.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(trajectoryHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if len(records) < 2 {
		return dynamo.Trajectory{}, nil
	}

	tr := make(dynamo.Trajectory, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [4]float64
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
			}
		}
		tr = append(tr, dynamo.Sample{
			A: dynamo.Vec2{X: vals[0], Y: vals[1]},
			B: dynamo.Vec2{X: vals[2], Y: vals[3]},
		})
	}

	return tr, nil
}
