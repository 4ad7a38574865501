package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/dwanav/internal/drive"
	"github.com/san-kum/dwanav/internal/dwa"
)

// Store persists run histories under a base directory, one subdirectory per
// run holding metadata.json and states.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one recorded run. Goals and obstacles are kept so
// plots can be reproduced without the original scenario file.
type RunMetadata struct {
	ID           string             `json:"id"`
	Scenario     string             `json:"scenario"`
	Timestamp    time.Time          `json:"timestamp"`
	Agents       int                `json:"agents"`
	Dt           float64            `json:"dt"`
	Steps        int                `json:"steps"`
	GoalsReached int                `json:"goals_reached"`
	Goals        [][]float64        `json:"goals"`
	Obstacles    [][]float64        `json:"obstacles"`
	Metrics      map[string]float64 `json:"metrics"`
}

// StateRow is one agent's state (and committed command) at one tick.
type StateRow struct {
	Time     float64
	Agent    int
	X        float64
	Y        float64
	Yaw      float64
	V        float64
	Omega    float64
	CmdV     float64
	CmdOmega float64
}

var csvHeader = []string{"time", "agent", "x", "y", "yaw", "v", "omega", "cmd_v", "cmd_omega"}

// Save writes a run to disk and returns its id.
func (s *Store) Save(scenario string, dt float64, goals, obstacles []dwa.Point, result *drive.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Scenario:     scenario,
		Timestamp:    time.Now(),
		Agents:       result.Agents,
		Dt:           dt,
		Steps:        result.Steps,
		GoalsReached: result.GoalsReached,
		Goals:        toRows(goals),
		Obstacles:    toRows(obstacles),
		Metrics:      result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for i := range result.States {
		for a, st := range result.States[i] {
			var cmd dwa.Command
			if i > 0 && i-1 < len(result.Commands) {
				cmd = result.Commands[i-1][a]
			}
			row := []string{
				formatFloat(result.Times[i]),
				strconv.Itoa(a),
				formatFloat(st.X),
				formatFloat(st.Y),
				formatFloat(st.Yaw),
				formatFloat(st.V),
				formatFloat(st.Omega),
				formatFloat(cmd.V),
				formatFloat(cmd.Omega),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

// List returns metadata for every recorded run.
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
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads back the state history, one row per agent per tick.
func (s *Store) LoadStates(runID string) ([]StateRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []StateRow{}, nil
	}

	rows := make([]StateRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < len(csvHeader) {
			continue
		}
		vals := make([]float64, len(csvHeader))
		ok := true
		for i := range csvHeader {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		rows = append(rows, StateRow{
			Time:     vals[0],
			Agent:    int(vals[1]),
			X:        vals[2],
			Y:        vals[3],
			Yaw:      vals[4],
			V:        vals[5],
			Omega:    vals[6],
			CmdV:     vals[7],
			CmdOmega: vals[8],
		})
	}
	return rows, nil
}

func toRows(pts []dwa.Point) [][]float64 {
	rows := make([][]float64, 0, len(pts))
	for _, p := range pts {
		rows = append(rows, []float64{p.X, p.Y})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
