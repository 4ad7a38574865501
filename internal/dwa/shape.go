package dwa

import "math"

// circleSegments controls how finely a circular footprint is polygonized.
const circleSegments = 24

// Outline returns the robot footprint at state s as a closed polyline in
// world coordinates, dispatching on the configured shape variant. Renderers
// consume this; the planner itself only ever uses the collision radius.
func (c *Config) Outline(s State) []Point {
	switch c.Shape {
	case ShapeRectangle:
		return rectangleOutline(s, c.Length, c.Width)
	default:
		return circleOutline(s, c.Radius)
	}
}

// HeadingRay returns a segment from the robot center to the footprint edge
// along the current heading, used to draw orientation.
func (c *Config) HeadingRay(s State) (Point, Point) {
	r := c.Radius
	if c.Shape == ShapeRectangle {
		r = c.Length / 2
	}
	tip := Point{
		X: s.X + r*math.Cos(s.Yaw),
		Y: s.Y + r*math.Sin(s.Yaw),
	}
	return s.Pos(), tip
}

func circleOutline(s State, radius float64) []Point {
	pts := make([]Point, 0, circleSegments+1)
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts = append(pts, Point{
			X: s.X + radius*math.Cos(a),
			Y: s.Y + radius*math.Sin(a),
		})
	}
	return pts
}

func rectangleOutline(s State, length, width float64) []Point {
	// Corner offsets in the body frame, closed loop.
	xs := []float64{-length / 2, length / 2, length / 2, -length / 2, -length / 2}
	ys := []float64{width / 2, width / 2, -width / 2, -width / 2, width / 2}

	sin, cos := math.Sincos(s.Yaw)
	pts := make([]Point, 0, len(xs))
	for i := range xs {
		pts = append(pts, Point{
			X: s.X + xs[i]*cos - ys[i]*sin,
			Y: s.Y + xs[i]*sin + ys[i]*cos,
		})
	}
	return pts
}
