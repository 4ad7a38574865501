package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dwanav/internal/drive"
	"github.com/san-kum/dwanav/internal/dwa"
)

// Scenario is the on-disk description of one run: robot limits, cost gains,
// start pose(s), the ordered goal sequence and the obstacle field. Angular
// limits are given in degrees, matching how the parameters are usually
// quoted, and converted once at Build time.
type Scenario struct {
	Name       string       `yaml:"name"`
	Robot      RobotConfig  `yaml:"robot"`
	Gains      GainsConfig  `yaml:"gains"`
	Start      PoseConfig   `yaml:"start"`
	Agents     []PoseConfig `yaml:"agents"`
	Goals      [][]float64  `yaml:"goals"`
	Obstacles  [][]float64  `yaml:"obstacles"`
	GoalPolicy string       `yaml:"goal_policy"`
	MaxSteps   int          `yaml:"max_steps"`
}

type RobotConfig struct {
	MaxSpeed           float64 `yaml:"max_speed"`
	MinSpeed           float64 `yaml:"min_speed"`
	MaxYawRateDeg      float64 `yaml:"max_yaw_rate_deg"`
	MaxAccel           float64 `yaml:"max_accel"`
	MaxDeltaYawRateDeg float64 `yaml:"max_delta_yaw_rate_deg"`
	VResolution        float64 `yaml:"v_resolution"`
	YawResolutionDeg   float64 `yaml:"yaw_resolution_deg"`
	Dt                 float64 `yaml:"dt"`
	PredictTime        float64 `yaml:"predict_time"`
	StuckThreshold     float64 `yaml:"stuck_threshold"`
	Shape              string  `yaml:"shape"`
	Radius             float64 `yaml:"radius"`
	Width              float64 `yaml:"width"`
	Length             float64 `yaml:"length"`
}

type GainsConfig struct {
	Goal     float64 `yaml:"goal"`
	Speed    float64 `yaml:"speed"`
	Obstacle float64 `yaml:"obstacle"`
}

type PoseConfig struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Yaw float64 `yaml:"yaw"`
}

// Default returns a scenario with the reference robot parameters, a single
// robot at the corridor entrance and the corridor goal sequence.
func Default() *Scenario {
	return &Scenario{
		Name: "corridor",
		Robot: RobotConfig{
			MaxSpeed:           0.8,
			MinSpeed:           -0.5,
			MaxYawRateDeg:      60.0,
			MaxAccel:           0.2,
			MaxDeltaYawRateDeg: 40.0,
			VResolution:        0.01,
			YawResolutionDeg:   1.0,
			Dt:                 0.1,
			PredictTime:        1.5,
			StuckThreshold:     1e-4,
			Shape:              "circle",
			Radius:             0.5,
			Width:              0.5,
			Length:             1.2,
		},
		Gains:      GainsConfig{Goal: 0.15, Speed: 1.0, Obstacle: 1.0},
		Start:      PoseConfig{X: 2.5, Y: -5.0},
		Goals:      [][]float64{{26.5, -5}, {20, -15}, {2.5, -15}},
		Obstacles:  corridorObstacles(),
		GoalPolicy: "all",
		MaxSteps:   drive.DefaultStepLimit,
	}
}

// Load reads a yaml scenario file over the defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := Default()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return sc, nil
}

// Save writes the scenario as yaml.
func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildConfig converts the scenario into the planner config, validating the
// shape variant and the numeric limits up front.
func (s *Scenario) BuildConfig() (*dwa.Config, error) {
	shape, err := dwa.ParseShape(s.Robot.Shape)
	if err != nil {
		return nil, err
	}

	obstacles, err := toPoints(s.Obstacles)
	if err != nil {
		return nil, fmt.Errorf("config: obstacles: %w", err)
	}

	cfg := &dwa.Config{
		MaxSpeed:        s.Robot.MaxSpeed,
		MinSpeed:        s.Robot.MinSpeed,
		MaxYawRate:      s.Robot.MaxYawRateDeg * math.Pi / 180.0,
		MaxAccel:        s.Robot.MaxAccel,
		MaxDeltaYawRate: s.Robot.MaxDeltaYawRateDeg * math.Pi / 180.0,
		VResolution:     s.Robot.VResolution,
		YawResolution:   s.Robot.YawResolutionDeg * math.Pi / 180.0,
		Dt:              s.Robot.Dt,
		PredictTime:     s.Robot.PredictTime,
		GoalGain:        s.Gains.Goal,
		SpeedGain:       s.Gains.Speed,
		ObstacleGain:    s.Gains.Obstacle,
		StuckThreshold:  s.Robot.StuckThreshold,
		Shape:           shape,
		Radius:          s.Robot.Radius,
		Width:           s.Robot.Width,
		Length:          s.Robot.Length,
		Obstacles:       obstacles,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildGoals converts the goal rows into points.
func (s *Scenario) BuildGoals() ([]dwa.Point, error) {
	goals, err := toPoints(s.Goals)
	if err != nil {
		return nil, fmt.Errorf("config: goals: %w", err)
	}
	if len(goals) == 0 {
		return nil, drive.ErrNoGoals
	}
	return goals, nil
}

// BuildStart returns the single-robot initial state at rest.
func (s *Scenario) BuildStart() dwa.State {
	return dwa.State{X: s.Start.X, Y: s.Start.Y, Yaw: s.Start.Yaw}
}

// BuildAgents returns the per-agent initial states for swarm runs, falling
// back to the single start pose when no agent list is given.
func (s *Scenario) BuildAgents() []dwa.State {
	if len(s.Agents) == 0 {
		return []dwa.State{s.BuildStart()}
	}
	agents := make([]dwa.State, 0, len(s.Agents))
	for _, p := range s.Agents {
		agents = append(agents, dwa.State{X: p.X, Y: p.Y, Yaw: p.Yaw})
	}
	return agents
}

// BuildPolicy parses the swarm goal-advance policy.
func (s *Scenario) BuildPolicy() (drive.GoalPolicy, error) {
	if s.GoalPolicy == "" {
		return drive.AdvanceWhenAll, nil
	}
	return drive.ParseGoalPolicy(s.GoalPolicy)
}

func toPoints(rows [][]float64) ([]dwa.Point, error) {
	pts := make([]dwa.Point, 0, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("row %d: want [x y], got %d values", i, len(row))
		}
		pts = append(pts, dwa.Point{X: row[0], Y: row[1]})
	}
	return pts, nil
}
