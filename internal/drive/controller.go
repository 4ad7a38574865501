package drive

import (
	"context"

	"github.com/san-kum/dwanav/internal/dwa"
)

// Controller drives one robot through an ordered goal sequence. It owns the
// robot state exclusively: nothing else mutates it, once per tick, after the
// search completes.
type Controller struct {
	planner   *dwa.Planner
	cfg       *dwa.Config
	state     dwa.State
	goals     []dwa.Point
	goalIdx   int
	tick      int
	time      float64
	lastCmd   dwa.Command
	best      dwa.Trajectory
	observers []Observer
	metrics   []Metric

	// StepLimit bounds Run; zero means DefaultStepLimit.
	StepLimit int
}

// NewController validates the config and goal sequence and returns a loop
// positioned at start with the first goal active.
func NewController(cfg *dwa.Config, start dwa.State, goals []dwa.Point) (*Controller, error) {
	if len(goals) == 0 {
		return nil, ErrNoGoals
	}
	planner, err := dwa.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Controller{
		planner: planner,
		cfg:     cfg,
		state:   start,
		goals:   goals,
		best:    dwa.Trajectory{start},
	}, nil
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }
func (c *Controller) AddMetric(m Metric)     { c.metrics = append(c.metrics, m) }

// State returns the current robot state.
func (c *Controller) State() dwa.State { return c.state }

// Goal returns the active goal. After the last goal is reached it keeps
// returning that goal.
func (c *Controller) Goal() dwa.Point {
	if c.goalIdx >= len(c.goals) {
		return c.goals[len(c.goals)-1]
	}
	return c.goals[c.goalIdx]
}

// Done reports whether the goal sequence is exhausted.
func (c *Controller) Done() bool { return c.goalIdx >= len(c.goals) }

// Frame snapshots the current tick for rendering.
func (c *Controller) Frame() Frame {
	idx := c.goalIdx
	if idx >= len(c.goals) {
		idx = len(c.goals) - 1
	}
	return Frame{
		Tick:      c.tick,
		Time:      c.time,
		States:    []dwa.State{c.state},
		Commands:  []dwa.Command{c.lastCmd},
		Goal:      c.goals[idx],
		GoalIndex: idx,
		Best:      c.best,
	}
}

// Step runs one control step: plan inside the dynamic window, advance the
// real state by exactly one tick with the committed command, then check the
// goal distance against the collision radius. It returns true once the last
// goal has been reached.
func (c *Controller) Step(ctx context.Context) (bool, error) {
	if c.Done() {
		return true, nil
	}

	goal := c.goals[c.goalIdx]
	u, traj, err := c.planner.Plan(ctx, c.state, goal)
	if err != nil {
		return false, err
	}

	c.state = dwa.Step(c.state, u, c.cfg.Dt)
	c.tick++
	c.time += c.cfg.Dt
	c.lastCmd = u
	c.best = traj

	for _, m := range c.metrics {
		m.Observe(c.state, u, c.time)
	}
	for _, o := range c.observers {
		o.OnFrame(c.Frame())
	}

	if c.state.Pos().Dist(goal) <= c.cfg.Radius {
		c.goalIdx++
	}
	return c.Done(), nil
}

// Run steps until the goal sequence is exhausted, the context is canceled,
// or the step limit is hit. The partial history is returned alongside any
// error.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	limit := c.StepLimit
	if limit <= 0 {
		limit = DefaultStepLimit
	}

	for _, m := range c.metrics {
		m.Reset()
	}

	result := &Result{
		Agents:   1,
		Times:    []float64{c.time},
		States:   [][]dwa.State{{c.state}},
		Commands: make([][]dwa.Command, 0, 256),
		Metrics:  make(map[string]float64),
	}

	var runErr error
	for !c.Done() {
		if result.Steps >= limit {
			runErr = ErrStepLimit
			break
		}
		if _, err := c.Step(ctx); err != nil {
			runErr = err
			break
		}
		result.Steps++
		result.Times = append(result.Times, c.time)
		result.States = append(result.States, []dwa.State{c.state})
		result.Commands = append(result.Commands, []dwa.Command{c.lastCmd})
	}

	result.GoalsReached = c.goalIdx
	for _, m := range c.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}
