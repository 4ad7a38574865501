package dwa

import "math"

// normalizeAngle wraps d into (-pi, pi] via the atan2 identity, avoiding the
// discontinuity at the +/-pi boundary.
func normalizeAngle(d float64) float64 {
	return math.Atan2(math.Sin(d), math.Cos(d))
}

// HeadingCost is the absolute wrapped angle between the trajectory's final
// heading and the bearing from its final position to the goal. Zero when the
// robot ends up pointing straight at the goal.
func HeadingCost(traj Trajectory, goal Point) float64 {
	last := traj.Final()
	bearing := math.Atan2(goal.Y-last.Y, goal.X-last.X)
	return math.Abs(normalizeAngle(bearing - last.Yaw))
}

// VelocityCost penalizes commands that leave the robot below its maximum
// speed, biasing the search toward progress.
func VelocityCost(traj Trajectory, cfg *Config) float64 {
	return cfg.MaxSpeed - traj.Final().V
}

// ClearanceCost returns +Inf when any trajectory sample passes within the
// collision radius (inclusive) of any obstacle, and otherwise the reciprocal
// of the smallest obstacle distance over the whole trajectory. An empty
// obstacle set contributes nothing.
func ClearanceCost(traj Trajectory, obstacles []Point, radius float64) float64 {
	if len(obstacles) == 0 {
		return 0
	}

	minDist := math.Inf(1)
	for _, s := range traj {
		for _, ob := range obstacles {
			d := math.Hypot(s.X-ob.X, s.Y-ob.Y)
			if d <= radius {
				return math.Inf(1)
			}
			if d < minDist {
				minDist = d
			}
		}
	}
	return 1.0 / minDist
}

// cost is the weighted sum of the three terms for one candidate trajectory.
func cost(traj Trajectory, goal Point, cfg *Config) float64 {
	return cfg.GoalGain*HeadingCost(traj, goal) +
		cfg.SpeedGain*VelocityCost(traj, cfg) +
		cfg.ObstacleGain*ClearanceCost(traj, cfg.Obstacles, cfg.Radius)
}
