package dwa

import (
	"fmt"
	"math"
)

// Shape selects the robot footprint used by geometry queries. It is a closed
// variant: values outside the two constants are rejected by ParseShape and
// never constructed elsewhere.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRectangle
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape maps a shape name to its variant. Unknown names are a
// construction-time error, never coerced.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "circle":
		return ShapeCircle, nil
	case "rectangle":
		return ShapeRectangle, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// Config holds robot limits, search resolutions, cost gains, footprint and
// the static obstacle set. It is constructed once by the caller and treated
// as read-only by every planner function; there is no ambient global config.
type Config struct {
	MaxSpeed        float64 // [m/s]
	MinSpeed        float64 // [m/s]
	MaxYawRate      float64 // [rad/s]
	MaxAccel        float64 // [m/s^2]
	MaxDeltaYawRate float64 // [rad/s^2]

	VResolution   float64 // [m/s] grid step in velocity
	YawResolution float64 // [rad/s] grid step in yaw rate
	Dt            float64 // [s] tick for prediction and state advance
	PredictTime   float64 // [s] forward simulation horizon

	GoalGain     float64
	SpeedGain    float64
	ObstacleGain float64

	// StuckThreshold is the near-zero velocity band that triggers the
	// anti-stall yaw override.
	StuckThreshold float64

	Shape  Shape
	Radius float64 // [m] collision radius; also the goal-reached distance
	Width  float64 // [m] footprint width when Shape is ShapeRectangle
	Length float64 // [m] footprint length when Shape is ShapeRectangle

	// Obstacles is a fixed point set shared by reference across all cost
	// evaluations and, in the multi-agent case, across all agents. It is
	// never mutated after construction.
	Obstacles []Point
}

// Default returns the reference parameter set: a small differential-drive
// robot with a 0.5 m collision radius.
func Default() Config {
	return Config{
		MaxSpeed:        0.8,
		MinSpeed:        -0.5,
		MaxYawRate:      60.0 * math.Pi / 180.0,
		MaxAccel:        0.2,
		MaxDeltaYawRate: 40.0 * math.Pi / 180.0,
		VResolution:     0.01,
		YawResolution:   1.0 * math.Pi / 180.0,
		Dt:              0.1,
		PredictTime:     1.5,
		GoalGain:        0.15,
		SpeedGain:       1.0,
		ObstacleGain:    1.0,
		StuckThreshold:  1e-4,
		Shape:           ShapeCircle,
		Radius:          0.5,
		Width:           0.5,
		Length:          1.2,
	}
}

// Validate checks the values the planner cannot run with at all. A window
// that intersects to empty (e.g. MinSpeed > MaxSpeed) is deliberately not
// rejected here: it degrades to the zero command at plan time.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if c.PredictTime <= 0 {
		return fmt.Errorf("%w: predict time must be positive, got %g", ErrInvalidConfig, c.PredictTime)
	}
	if c.VResolution <= 0 || c.YawResolution <= 0 {
		return fmt.Errorf("%w: sampling resolutions must be positive", ErrInvalidConfig)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("%w: collision radius must be positive, got %g", ErrInvalidConfig, c.Radius)
	}
	if c.Shape != ShapeCircle && c.Shape != ShapeRectangle {
		return fmt.Errorf("%w: shape %v", ErrUnknownShape, c.Shape)
	}
	if c.Shape == ShapeRectangle && (c.Width <= 0 || c.Length <= 0) {
		return fmt.Errorf("%w: rectangle footprint must have positive width and length", ErrInvalidConfig)
	}
	return nil
}
