package dwa

import (
	"context"
	"math"
	"runtime"
	"sync"
)

// minChunk is the smallest candidate batch worth handing to a goroutine.
const minChunk = 64

// Planner runs the dynamic-window search. Workers bounds the number of
// goroutines scoring candidates; zero means GOMAXPROCS. Scoring order never
// affects the result: the reduction replays the deterministic scan order.
type Planner struct {
	cfg     *Config
	Workers int
}

// New validates the config and returns a planner bound to it. The config is
// shared by reference and must not be mutated afterwards.
func New(cfg *Config) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Planner{cfg: cfg}, nil
}

// Plan selects the minimum-cost command inside the dynamic window of s.
//
// An empty window or an all-collision candidate set yields the zero command
// and a single-point trajectory at s; both are legitimate "no safe motion
// found" outcomes, not errors. The only error path is context cancellation,
// which returns the zero fallback command.
//
// Ties are resolved in favor of the later candidate in scan order (velocity
// outer ascending, yaw rate inner ascending), and the anti-stall override is
// applied after selection: when both the chosen and the current velocity sit
// below the stuck threshold, the yaw rate is forced to the most negative
// admissible change so the robot turns away instead of idling forever in
// front of an obstacle.
func (p *Planner) Plan(ctx context.Context, s State, goal Point) (Command, Trajectory, error) {
	if err := ctx.Err(); err != nil {
		return Command{}, Trajectory{s}, err
	}

	window := DynamicWindow(s, p.cfg)
	cands := sampleGrid(window, p.cfg)

	best := Command{}
	bestTraj := Trajectory{s}

	if len(cands) > 0 {
		costs := make([]float64, len(cands))
		trajs := make([]Trajectory, len(cands))

		parallelFor(len(cands), p.workers(), func(start, end int) {
			for i := start; i < end; i++ {
				traj := Predict(s, cands[i], p.cfg)
				trajs[i] = traj
				costs[i] = cost(traj, goal, p.cfg)
			}
		})

		if err := ctx.Err(); err != nil {
			return Command{}, Trajectory{s}, err
		}

		minCost := math.Inf(1)
		for i, c := range costs {
			if math.IsInf(c, 1) {
				// Predicted collision: hard rejection.
				continue
			}
			if c <= minCost {
				minCost = c
				best = cands[i]
				bestTraj = trajs[i]
			}
		}
	}

	if math.Abs(best.V) < p.cfg.StuckThreshold && math.Abs(s.V) < p.cfg.StuckThreshold {
		best.Omega = -p.cfg.MaxDeltaYawRate
	}

	return best, bestTraj, nil
}

func (p *Planner) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// sampleGrid enumerates the full candidate grid in scan order. The upper
// bounds are exclusive; an empty window produces zero candidates.
func sampleGrid(w Window, cfg *Config) []Command {
	cands := make([]Command, 0, 128)
	for v := w.VMin; v < w.VMax; v += cfg.VResolution {
		for y := w.YawMin; y < w.YawMax; y += cfg.YawResolution {
			cands = append(cands, Command{V: v, Omega: y})
		}
	}
	return cands
}

// parallelFor splits [0, n) into contiguous chunks across at most `workers`
// goroutines. Small ranges run inline.
func parallelFor(n, workers int, fn func(start, end int)) {
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
