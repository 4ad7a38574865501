package drive

import (
	"math"

	"github.com/san-kum/dwanav/internal/dwa"
)

// PathLength accumulates the distance actually traveled.
type PathLength struct {
	prev  dwa.State
	first bool
	sum   float64
}

func NewPathLength() *PathLength {
	return &PathLength{first: true}
}

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(s dwa.State, u dwa.Command, t float64) {
	if !p.first {
		p.sum += s.Pos().Dist(p.prev.Pos())
	}
	p.prev = s
	p.first = false
}

func (p *PathLength) Value() float64 { return p.sum }

func (p *PathLength) Reset() {
	p.sum = 0
	p.first = true
}

// ControlEffort averages |v| + |omega| over all committed commands.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(s dwa.State, u dwa.Command, t float64) {
	c.sum += math.Abs(u.V) + math.Abs(u.Omega)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// MinClearance tracks the smallest obstacle distance seen along the real
// path. Infinite when the obstacle set is empty.
type MinClearance struct {
	obstacles []dwa.Point
	min       float64
}

func NewMinClearance(obstacles []dwa.Point) *MinClearance {
	return &MinClearance{obstacles: obstacles, min: math.Inf(1)}
}

func (m *MinClearance) Name() string { return "min_clearance" }

func (m *MinClearance) Observe(s dwa.State, u dwa.Command, t float64) {
	for _, ob := range m.obstacles {
		d := s.Pos().Dist(ob)
		if d < m.min {
			m.min = d
		}
	}
}

func (m *MinClearance) Value() float64 { return m.min }

func (m *MinClearance) Reset() { m.min = math.Inf(1) }
