package dwa

import "math"

// Step advances a state by one tick under the unicycle motion model with
// forward-Euler integration. The velocity fields are overwritten with the
// command: they are control inputs, not integrated quantities. The same rule
// advances both predicted trajectories and the real robot state.
func Step(s State, u Command, dt float64) State {
	s.Yaw += u.Omega * dt
	s.X += u.V * math.Cos(s.Yaw) * dt
	s.Y += u.V * math.Sin(s.Yaw) * dt
	s.V = u.V
	s.Omega = u.Omega
	return s
}

// Predict forward-simulates a fixed command over the configured horizon and
// returns ceil(PredictTime/Dt)+1 samples, the initial state included. The
// result is fully deterministic in its inputs.
func Predict(init State, u Command, cfg *Config) Trajectory {
	ticks := int(math.Ceil(cfg.PredictTime / cfg.Dt))
	traj := make(Trajectory, 0, ticks+1)
	traj = append(traj, init)

	s := init
	for i := 0; i < ticks; i++ {
		s = Step(s, u, cfg.Dt)
		traj = append(traj, s)
	}
	return traj
}
