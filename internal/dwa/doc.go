// Package dwa implements the Dynamic Window Approach local motion planner.
//
// The planner picks one velocity command per control step by searching the
// window of commands reachable within a single tick:
//
//   - [Config]: robot limits, cost gains, shape, obstacle set
//   - [DynamicWindow]: admissible (velocity, yaw rate) rectangle
//   - [Predict]: unicycle forward simulation over the horizon
//   - [Planner]: grid search over the window, minimum-cost command
//
// # Example
//
//	cfg := dwa.Default()
//	p, _ := dwa.New(&cfg)
//	u, traj, _ := p.Plan(ctx, state, goal)
//	state = dwa.Step(state, u, cfg.Dt)
//
// # Thread Safety
//
// Planner instances are safe for concurrent Plan calls; each call scores
// candidates on its own worker set and never mutates the Config.
package dwa
