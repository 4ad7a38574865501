package dwa

import "math"

// DynamicWindow intersects the static command rectangle from the robot
// specification with the rectangle reachable from the current velocities
// within one tick under the acceleration limits.
//
// The intersection may be empty when the config bounds are inconsistent;
// callers must treat that as zero candidates, not as an error.
func DynamicWindow(s State, cfg *Config) Window {
	// Rectangle from the robot specification.
	vs := Window{
		VMin:   cfg.MinSpeed,
		VMax:   cfg.MaxSpeed,
		YawMin: -cfg.MaxYawRate,
		YawMax: cfg.MaxYawRate,
	}

	// Rectangle reachable from the current motion within one tick.
	vd := Window{
		VMin:   s.V - cfg.MaxAccel*cfg.Dt,
		VMax:   s.V + cfg.MaxAccel*cfg.Dt,
		YawMin: s.Omega - cfg.MaxDeltaYawRate*cfg.Dt,
		YawMax: s.Omega + cfg.MaxDeltaYawRate*cfg.Dt,
	}

	return Window{
		VMin:   math.Max(vs.VMin, vd.VMin),
		VMax:   math.Min(vs.VMax, vd.VMax),
		YawMin: math.Max(vs.YawMin, vd.YawMin),
		YawMax: math.Min(vs.YawMax, vd.YawMax),
	}
}
