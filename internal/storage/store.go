package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/config"
	"github.com/san-kum/cubeloop/internal/cube"
	"github.com/san-kum/cubeloop/internal/sim"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	turnsFile    = "turns.csv"
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
	ID        string             `json:"id"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	MinSteps  int                `json:"min_steps"`
	MaxSteps  int                `json:"max_steps"`
	Rate      float64            `json:"rate"`
	Dwell     float64            `json:"dwell"`
	Frames    int                `json:"frames"`
	Cycles    int                `json:"cycles"`
	MaxDepth  int                `json:"max_depth"`
	Turns     int                `json:"turns"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewMetadata describes a finished run. The id is assigned by Save.
func NewMetadata(cfg *config.Config, preset string, res *sim.Result) RunMetadata {
	return RunMetadata{
		Preset:   preset,
		Seed:     res.Seed,
		Dt:       cfg.Run.Dt,
		Duration: cfg.Run.Duration,
		MinSteps: cfg.Scramble.MinSteps,
		MaxSteps: cfg.Scramble.MaxSteps,
		Rate:     cfg.Motion.Rate,
		Dwell:    cfg.Motion.Dwell,
		Frames:   res.Frames,
		Cycles:   res.Cycles,
		MaxDepth: res.MaxDepth,
		Turns:    len(res.Commits),
		Metrics:  res.Metrics,
	}
}

// TurnRecord is one row of a run's turn journal.
type TurnRecord struct {
	Time  float64   `json:"time"`
	Turn  cube.Turn `json:"turn"`
	Phase string    `json:"phase"`
	Depth int       `json:"depth"`
}

func recordOf(c anim.Commit) TurnRecord {
	phase := anim.PhaseReverse
	if c.Scramble {
		phase = anim.PhaseScramble
	}
	return TurnRecord{Time: c.Time, Turn: c.Turn, Phase: phase.String(), Depth: c.Depth}
}

// Save writes the metadata and the turn journal of a run and returns its id.
// Files are staged in a hidden directory and renamed into place, so a failed
// save leaves nothing behind.
func (s *Store) Save(meta RunMetadata, commits []anim.Commit) (string, error) {
	meta.ID = "run_" + uuid.NewString()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	staging, err := os.MkdirTemp(s.baseDir, ".staging_")
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(staging, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(staging, turnsFile), func(w io.Writer) error {
			return writeTurns(w, commits)
		})
	}
	if err == nil {
		err = os.Rename(staging, filepath.Join(s.baseDir, meta.ID))
	}
	if err != nil {
		os.RemoveAll(staging)
		return "", fmt.Errorf("storage: save %s: %w", meta.ID, err)
	}

	return meta.ID, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func writeTurns(out io.Writer, commits []anim.Commit) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"time", "move", "direction", "phase", "depth"}); err != nil {
		return err
	}
	for _, c := range commits {
		r := recordOf(c)
		row := []string{
			strconv.FormatFloat(r.Time, 'f', 6, 64),
			r.Turn.Move.String(),
			r.Turn.Dir.String(),
			r.Phase,
			strconv.Itoa(r.Depth),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every saved run, newest first.
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
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), metadataFile))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTurns(runID string) ([]TurnRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, turnsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: read turns of %s: %w", runID, err)
	}

	if len(records) < 2 {
		return []TurnRecord{}, nil
	}

	turns := make([]TurnRecord, 0, len(records)-1)
	for i, rec := range records[1:] {
		tr, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", runID, i+2, err)
		}
		turns = append(turns, tr)
	}

	return turns, nil
}

func parseRecord(rec []string) (TurnRecord, error) {
	t, err := strconv.ParseFloat(rec[0], 64)
	if err != nil {
		return TurnRecord{}, err
	}
	m, err := cube.ParseMove(rec[1])
	if err != nil {
		return TurnRecord{}, err
	}
	d, err := cube.ParseDirection(rec[2])
	if err != nil {
		return TurnRecord{}, err
	}
	depth, err := strconv.Atoi(rec[4])
	if err != nil {
		return TurnRecord{}, err
	}
	return TurnRecord{Time: t, Turn: cube.Turn{Move: m, Dir: d}, Phase: rec[3], Depth: depth}, nil
}
