// Package drive runs the receding-horizon control loop around the dwa
// planner.
//
//   - [Controller]: one robot chasing an ordered goal sequence
//   - [Swarm]: a fixed set of agents sharing one goal sequence and obstacle
//     field, planned independently per tick
//   - [Observer]: per-tick rendering boundary; the loop never blocks on it
//   - [Metric]: per-step scalar accumulators reported in the final Result
//
// Each control step is atomic: plan, advance the real state by one tick with
// the committed command, check goal distance. Failures degrade to "stand
// still and replan", never to a crash.
package drive
