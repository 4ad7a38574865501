package drive

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dwanav/internal/dwa"
)

type frameRecorder struct {
	frames []Frame
}

func (r *frameRecorder) OnFrame(f Frame) { r.frames = append(r.frames, f) }

func TestNewControllerRequiresGoals(t *testing.T) {
	cfg := dwa.Default()
	_, err := NewController(&cfg, dwa.State{}, nil)
	assert.ErrorIs(t, err, ErrNoGoals)
}

func TestNewControllerValidatesConfig(t *testing.T) {
	cfg := dwa.Default()
	cfg.Dt = 0
	_, err := NewController(&cfg, dwa.State{}, []dwa.Point{{X: 1}})
	assert.Error(t, err)
}

func TestControllerReachesStraightGoal(t *testing.T) {
	cfg := dwa.Default()
	start := dwa.State{X: 2.5, Y: -5}
	goal := dwa.Point{X: 26.5, Y: -5}

	c, err := NewController(&cfg, start, []dwa.Point{goal})
	require.NoError(t, err)

	result, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.GoalsReached)
	assert.True(t, c.Done())

	final := c.State()
	assert.LessOrEqual(t, final.Pos().Dist(goal), cfg.Radius)

	// Every committed command respects the absolute limits.
	for _, cmds := range result.Commands {
		u := cmds[0]
		assert.GreaterOrEqual(t, u.V, cfg.MinSpeed)
		assert.LessOrEqual(t, u.V, cfg.MaxSpeed)
		assert.LessOrEqual(t, math.Abs(u.Omega), cfg.MaxYawRate)
	}

	// History slices stay aligned: one more state row than command rows.
	assert.Len(t, result.States, result.Steps+1)
	assert.Len(t, result.Times, result.Steps+1)
	assert.Len(t, result.Commands, result.Steps)
}

func TestControllerTurnsTowardGoalBehind(t *testing.T) {
	cfg := dwa.Default()
	c, err := NewController(&cfg, dwa.State{}, []dwa.Point{{X: -5, Y: 0}})
	require.NoError(t, err)

	done, err := c.Step(context.Background())
	require.NoError(t, err)
	require.False(t, done)

	// With the goal directly behind, the cheapest heading improvement is an
	// extreme admissible yaw rate; either sign works from a dead-behind goal.
	assert.Greater(t, math.Abs(c.Frame().Commands[0].Omega), 0.04)
}

func TestControllerSequentialGoals(t *testing.T) {
	cfg := dwa.Default()
	goals := []dwa.Point{{X: 1, Y: 0}, {X: 2, Y: 0}}

	c, err := NewController(&cfg, dwa.State{}, goals)
	require.NoError(t, err)
	c.StepLimit = 500

	result, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.GoalsReached)
	assert.LessOrEqual(t, c.State().Pos().Dist(goals[1]), cfg.Radius)
}

func TestControllerStepLimit(t *testing.T) {
	cfg := dwa.Default()
	c, err := NewController(&cfg, dwa.State{}, []dwa.Point{{X: 100, Y: 100}})
	require.NoError(t, err)
	c.StepLimit = 3

	result, err := c.Run(context.Background())
	assert.ErrorIs(t, err, ErrStepLimit)
	assert.Equal(t, 3, result.Steps)
	assert.Equal(t, 0, result.GoalsReached)
}

func TestControllerCanceledContext(t *testing.T) {
	cfg := dwa.Default()
	c, err := NewController(&cfg, dwa.State{}, []dwa.Point{{X: 10, Y: 0}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Steps)
}

func TestControllerObserversAndMetrics(t *testing.T) {
	cfg := dwa.Default()
	c, err := NewController(&cfg, dwa.State{}, []dwa.Point{{X: 1, Y: 0}})
	require.NoError(t, err)
	c.StepLimit = 200

	rec := &frameRecorder{}
	c.AddObserver(rec)
	c.AddMetric(NewPathLength())
	c.AddMetric(NewControlEffort())

	result, err := c.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rec.frames, result.Steps)
	for i, f := range rec.frames {
		assert.Equal(t, i+1, f.Tick)
		assert.Len(t, f.States, 1)
	}

	assert.Greater(t, result.Metrics["path_length"], 0.0)
	assert.Greater(t, result.Metrics["control_effort"], 0.0)
}

func TestControllerStepAfterDone(t *testing.T) {
	cfg := dwa.Default()
	// Start already inside the goal radius: the first step both plans and
	// finishes the sequence.
	c, err := NewController(&cfg, dwa.State{}, []dwa.Point{{X: 0.1, Y: 0}})
	require.NoError(t, err)

	done, err := c.Step(context.Background())
	require.NoError(t, err)
	assert.True(t, done)

	tick := c.Frame().Tick
	done, err = c.Step(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, tick, c.Frame().Tick, "a finished controller must not advance")
}
