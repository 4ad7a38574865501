package dwa

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func mustPlanner(t *testing.T, cfg *Config) *Planner {
	t.Helper()
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.Dt = 0
	if _, err := New(&cfg); err == nil {
		t.Fatal("expected error for zero dt")
	}
}

func TestPlanEmptyWindowYieldsDefault(t *testing.T) {
	cfg := Default()
	cfg.MinSpeed = 1.0 // no admissible velocity band
	p := mustPlanner(t, &cfg)

	u, traj, err := p.Plan(context.Background(), State{X: 1, Y: 2}, Point{X: 10, Y: 2})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if u.V != 0 {
		t.Errorf("empty window should keep the default zero velocity, got %f", u.V)
	}
	if len(traj) != 1 || traj[0].X != 1 || traj[0].Y != 2 {
		t.Errorf("expected single-point trajectory at the current state, got %v", traj)
	}
	// Standing still with a zero best velocity still trips the anti-stall
	// override.
	if u.Omega != -cfg.MaxDeltaYawRate {
		t.Errorf("omega: got %f, want %f", u.Omega, -cfg.MaxDeltaYawRate)
	}
}

func TestPlanAntiStallOverride(t *testing.T) {
	cfg := Default()
	cfg.MinSpeed = 0
	cfg.MaxSpeed = 0.005 // only the v=0 candidate survives sampling
	p := mustPlanner(t, &cfg)

	u, _, err := p.Plan(context.Background(), State{}, Point{X: 10, Y: 0})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if u.V != 0 {
		t.Fatalf("expected zero best velocity, got %f", u.V)
	}
	if u.Omega != -cfg.MaxDeltaYawRate {
		t.Errorf("anti-stall omega: got %f, want %f", u.Omega, -cfg.MaxDeltaYawRate)
	}
}

func TestPlanNoAntiStallWhenMoving(t *testing.T) {
	cfg := Default()
	p := mustPlanner(t, &cfg)

	u, _, err := p.Plan(context.Background(), State{V: 0.4}, Point{X: 10, Y: 0})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if u.V < 0.38-1e-9 {
		t.Errorf("moving robot should keep moving, got v=%f", u.V)
	}
}

func TestPlanAllCollisionYieldsDefault(t *testing.T) {
	cfg := Default()
	// An obstacle on the robot itself makes every candidate a predicted
	// collision (the initial sample is part of every trajectory).
	cfg.Obstacles = []Point{{X: 0, Y: 0}}
	p := mustPlanner(t, &cfg)

	u, traj, err := p.Plan(context.Background(), State{}, Point{X: 10, Y: 0})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if u.V != 0 {
		t.Errorf("all-collision set should keep the zero command, got v=%f", u.V)
	}
	if len(traj) != 1 {
		t.Errorf("expected single-point trajectory, got %d samples", len(traj))
	}
}

func TestPlanTieBreakLastCandidateWins(t *testing.T) {
	cfg := Default()
	cfg.GoalGain = 0
	cfg.SpeedGain = 0
	cfg.ObstacleGain = 0
	p := mustPlanner(t, &cfg)

	s := State{V: 0.3}
	u, _, err := p.Plan(context.Background(), s, Point{X: 10, Y: 0})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	cands := sampleGrid(DynamicWindow(s, &cfg), &cfg)
	want := cands[len(cands)-1]
	if u != want {
		t.Errorf("all-equal costs must select the last candidate in scan order: got %+v, want %+v", u, want)
	}
}

func TestPlanDeterministicAcrossWorkers(t *testing.T) {
	cfg := Default()
	cfg.Obstacles = []Point{{X: 2, Y: 0.5}, {X: 3, Y: -1}, {X: 4, Y: 0}}
	// Fine resolutions grow the grid past the inline-scoring cutoff so the
	// chunked path is actually exercised.
	cfg.VResolution = 0.002
	cfg.YawResolution = 0.002
	s := State{V: 0.3, Omega: 0.1}
	goal := Point{X: 8, Y: 2}

	serial := mustPlanner(t, &cfg)
	serial.Workers = 1
	parallel := mustPlanner(t, &cfg)
	parallel.Workers = 8

	u1, t1, err := serial.Plan(context.Background(), s, goal)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	u2, t2, err := parallel.Plan(context.Background(), s, goal)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if u1 != u2 {
		t.Errorf("worker count changed the command: %+v vs %+v", u1, u2)
	}
	if !reflect.DeepEqual(t1, t2) {
		t.Error("worker count changed the best trajectory")
	}
}

func TestPlanCommandInsideWindow(t *testing.T) {
	cfg := Default()
	p := mustPlanner(t, &cfg)
	s := State{V: 0.5, Omega: 0.2}

	u, _, err := p.Plan(context.Background(), s, Point{X: 10, Y: 3})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	w := DynamicWindow(s, &cfg)
	if u.V < w.VMin || u.V > w.VMax {
		t.Errorf("v %f outside window [%f, %f]", u.V, w.VMin, w.VMax)
	}
	if u.Omega < w.YawMin || u.Omega > w.YawMax {
		t.Errorf("omega %f outside window [%f, %f]", u.Omega, w.YawMin, w.YawMax)
	}
}

func TestPlanCanceledContext(t *testing.T) {
	cfg := Default()
	p := mustPlanner(t, &cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u, traj, err := p.Plan(ctx, State{}, Point{X: 10, Y: 0})
	if err == nil {
		t.Fatal("expected context error")
	}
	if u != (Command{}) || len(traj) != 1 {
		t.Error("cancellation must return the zero fallback command")
	}
}

func TestSampleGridEmptyWindow(t *testing.T) {
	cfg := Default()
	w := Window{VMin: 1, VMax: 0.8, YawMin: -1, YawMax: 1}
	if cands := sampleGrid(w, &cfg); len(cands) != 0 {
		t.Errorf("empty window produced %d candidates", len(cands))
	}
}

func TestSampleGridScanOrder(t *testing.T) {
	cfg := Default()
	cfg.VResolution = 0.01
	cfg.YawResolution = 0.5
	w := Window{VMin: 0, VMax: 0.025, YawMin: -0.5, YawMax: 0.6}

	cands := sampleGrid(w, &cfg)
	// v in {0, 0.01, 0.02}, yaw in {-0.5, 0, 0.5}; upper bounds exclusive.
	if len(cands) != 9 {
		t.Fatalf("got %d candidates, want 9", len(cands))
	}
	if cands[0] != (Command{V: 0, Omega: -0.5}) {
		t.Errorf("first candidate: %+v", cands[0])
	}
	last := cands[len(cands)-1]
	if math.Abs(last.V-0.02) > 1e-12 || math.Abs(last.Omega-0.5) > 1e-12 {
		t.Errorf("last candidate: %+v", last)
	}
}
