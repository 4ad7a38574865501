package dwa

import "math"

// Point is a 2-D position in world coordinates.
type Point struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance to q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// State is the full pose and velocity of one robot. The controller owns one
// instance per agent and rewrites it once per control step.
type State struct {
	X     float64 // [m]
	Y     float64 // [m]
	Yaw   float64 // [rad]
	V     float64 // [m/s]
	Omega float64 // [rad/s]
}

// Pos returns the position component of the state.
func (s State) Pos() Point {
	return Point{s.X, s.Y}
}

// Command is a (linear velocity, yaw rate) control input.
type Command struct {
	V     float64 // [m/s]
	Omega float64 // [rad/s]
}

// Trajectory is a time-ordered pose sequence produced by forward simulation,
// one entry per tick including the initial state.
type Trajectory []State

// Final returns the last sample. A trajectory always has at least one entry.
func (t Trajectory) Final() State {
	return t[len(t)-1]
}

// Window is the admissible command rectangle for one control step. It is
// recomputed fresh every step and discarded after use.
type Window struct {
	VMin   float64
	VMax   float64
	YawMin float64
	YawMax float64
}

// Empty reports whether the rectangle is degenerate in either dimension.
// An empty window yields zero candidates, which the planner treats as
// "no safe motion found" rather than an error.
func (w Window) Empty() bool {
	return w.VMin > w.VMax || w.YawMin > w.YawMax
}
