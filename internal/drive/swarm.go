package drive

import (
	"context"
	"fmt"

	"github.com/san-kum/dwanav/internal/dwa"
)

// GoalPolicy decides when a swarm advances to the next goal in the shared
// sequence.
type GoalPolicy int

const (
	// AdvanceWhenAll moves on once every agent is within the collision
	// radius of the active goal.
	AdvanceWhenAll GoalPolicy = iota

	// AdvanceWhenAny moves on as soon as the first agent reaches it.
	AdvanceWhenAny
)

func (p GoalPolicy) String() string {
	switch p {
	case AdvanceWhenAll:
		return "all"
	case AdvanceWhenAny:
		return "any"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseGoalPolicy maps a policy name to its variant.
func ParseGoalPolicy(name string) (GoalPolicy, error) {
	switch name {
	case "all":
		return AdvanceWhenAll, nil
	case "any":
		return AdvanceWhenAny, nil
	}
	return 0, fmt.Errorf("drive: unknown goal policy %q", name)
}

// Swarm steps a fixed ordered set of agents once per global tick. Every
// agent plans independently against the shared config, obstacle set and the
// current goal; agents are invisible to each other's obstacle cost, so any
// flocking behavior emerges purely from the shared field.
type Swarm struct {
	planner   *dwa.Planner
	cfg       *dwa.Config
	states    []dwa.State
	lastCmds  []dwa.Command
	goals     []dwa.Point
	goalIdx   int
	policy    GoalPolicy
	tick      int
	time      float64
	best      dwa.Trajectory
	observers []Observer
	metrics   []Metric

	// StepLimit bounds Run; zero means DefaultStepLimit.
	StepLimit int
}

// NewSwarm builds a multi-agent loop over a copy of the start states.
func NewSwarm(cfg *dwa.Config, starts []dwa.State, goals []dwa.Point, policy GoalPolicy) (*Swarm, error) {
	if len(starts) == 0 {
		return nil, ErrNoAgents
	}
	if len(goals) == 0 {
		return nil, ErrNoGoals
	}
	planner, err := dwa.New(cfg)
	if err != nil {
		return nil, err
	}
	states := make([]dwa.State, len(starts))
	copy(states, starts)
	return &Swarm{
		planner:  planner,
		cfg:      cfg,
		states:   states,
		lastCmds: make([]dwa.Command, len(starts)),
		goals:    goals,
		policy:   policy,
		best:     dwa.Trajectory{starts[0]},
	}, nil
}

func (s *Swarm) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Swarm) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }

// States returns the live agent states; callers must not mutate them.
func (s *Swarm) States() []dwa.State { return s.states }

// Done reports whether the shared goal sequence is exhausted.
func (s *Swarm) Done() bool { return s.goalIdx >= len(s.goals) }

// Frame snapshots the current tick for rendering. Best holds the predicted
// trajectory of the last agent planned this tick.
func (s *Swarm) Frame() Frame {
	idx := s.goalIdx
	if idx >= len(s.goals) {
		idx = len(s.goals) - 1
	}
	return Frame{
		Tick:      s.tick,
		Time:      s.time,
		States:    s.states,
		Commands:  s.lastCmds,
		Goal:      s.goals[idx],
		GoalIndex: idx,
		Best:      s.best,
	}
}

// Step plans and advances every agent in order, then applies the goal
// policy. It returns true once the last goal has been reached.
func (s *Swarm) Step(ctx context.Context) (bool, error) {
	if s.Done() {
		return true, nil
	}

	goal := s.goals[s.goalIdx]
	for i := range s.states {
		u, traj, err := s.planner.Plan(ctx, s.states[i], goal)
		if err != nil {
			return false, err
		}
		s.states[i] = dwa.Step(s.states[i], u, s.cfg.Dt)
		s.lastCmds[i] = u
		s.best = traj

		for _, m := range s.metrics {
			m.Observe(s.states[i], u, s.time)
		}
	}
	s.tick++
	s.time += s.cfg.Dt

	for _, o := range s.observers {
		o.OnFrame(s.Frame())
	}

	if s.goalReached(goal) {
		s.goalIdx++
	}
	return s.Done(), nil
}

func (s *Swarm) goalReached(goal dwa.Point) bool {
	switch s.policy {
	case AdvanceWhenAny:
		for i := range s.states {
			if s.states[i].Pos().Dist(goal) <= s.cfg.Radius {
				return true
			}
		}
		return false
	default:
		for i := range s.states {
			if s.states[i].Pos().Dist(goal) > s.cfg.Radius {
				return false
			}
		}
		return true
	}
}

// Run steps until the goal sequence is exhausted, the context is canceled,
// or the step limit is hit.
func (s *Swarm) Run(ctx context.Context) (*Result, error) {
	limit := s.StepLimit
	if limit <= 0 {
		limit = DefaultStepLimit
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Agents:   len(s.states),
		Times:    []float64{s.time},
		States:   [][]dwa.State{cloneStates(s.states)},
		Commands: make([][]dwa.Command, 0, 256),
		Metrics:  make(map[string]float64),
	}

	var runErr error
	for !s.Done() {
		if result.Steps >= limit {
			runErr = ErrStepLimit
			break
		}
		if _, err := s.Step(ctx); err != nil {
			runErr = err
			break
		}
		result.Steps++
		result.Times = append(result.Times, s.time)
		result.States = append(result.States, cloneStates(s.states))

		cmds := make([]dwa.Command, len(s.lastCmds))
		copy(cmds, s.lastCmds)
		result.Commands = append(result.Commands, cmds)
	}

	result.GoalsReached = s.goalIdx
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}

func cloneStates(states []dwa.State) []dwa.State {
	c := make([]dwa.State, len(states))
	copy(c, states)
	return c
}
