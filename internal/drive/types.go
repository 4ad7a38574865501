package drive

import (
	"context"
	"errors"

	"github.com/san-kum/dwanav/internal/dwa"
)

// DefaultStepLimit bounds runaway loops when a goal is unreachable.
const DefaultStepLimit = 10000

var (
	// ErrNoGoals indicates an empty goal sequence at construction.
	ErrNoGoals = errors.New("drive: at least one goal required")

	// ErrNoAgents indicates an empty start set for a swarm.
	ErrNoAgents = errors.New("drive: at least one agent required")

	// ErrStepLimit indicates the loop hit its step budget before the final
	// goal was reached.
	ErrStepLimit = errors.New("drive: step limit reached before final goal")
)

// Frame is the per-tick snapshot handed to observers: everything a renderer
// needs to draw one frame. Slices are owned by the loop and only valid for
// the duration of the callback.
type Frame struct {
	Tick      int
	Time      float64
	States    []dwa.State
	Commands  []dwa.Command
	Goal      dwa.Point
	GoalIndex int
	Best      dwa.Trajectory
}

// Observer receives a Frame after every control step.
type Observer interface {
	OnFrame(f Frame)
}

// Metric accumulates one scalar over a run.
type Metric interface {
	Name() string
	Observe(s dwa.State, u dwa.Command, t float64)
	Value() float64
	Reset()
}

// Stepper is the common stepping surface of Controller and Swarm, used by
// the live view.
type Stepper interface {
	Step(ctx context.Context) (bool, error)
	Frame() Frame
}

// Result is the recorded history of a run. States[i] holds every agent's
// state after tick i; row 0 is the initial state and has no command row.
type Result struct {
	Agents       int
	Times        []float64
	States       [][]dwa.State
	Commands     [][]dwa.Command
	GoalsReached int
	Steps        int
	Metrics      map[string]float64
}
