package viz

import (
	"strings"

	"github.com/san-kum/dwanav/internal/dwa"
)

// Braille patterns, 2x4 dots per cell:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel canvas with a fixed world-to-pixel transform.
// The drawable resolution is (Width*2) x (Height*4) sub-pixels.
type Canvas struct {
	Width, Height int
	grid          [][]rune

	xMin, xMax float64
	yMin, yMax float64
}

// NewCanvas allocates a w x h cell canvas mapping the given world rectangle.
// A degenerate rectangle is padded so the transform stays finite.
func NewCanvas(w, h int, xMin, xMax, yMin, yMax float64) *Canvas {
	if xMax-xMin <= 0 {
		xMax = xMin + 1
	}
	if yMax-yMin <= 0 {
		yMax = yMin + 1
	}
	c := &Canvas{
		Width: w, Height: h,
		xMin: xMin, xMax: xMax,
		yMin: yMin, yMax: yMax,
		grid: make([][]rune, h),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Clear resets every cell to the empty braille rune.
func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// project maps world coordinates to sub-pixel coordinates, y up.
func (c *Canvas) project(p dwa.Point) (int, int) {
	px := int(float64(c.Width*2-1) * (p.X - c.xMin) / (c.xMax - c.xMin))
	py := int(float64(c.Height*4-1) * (p.Y - c.yMin) / (c.yMax - c.yMin))
	return px, c.Height*4 - 1 - py
}

func (c *Canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Point plots a single world point.
func (c *Canvas) Point(p dwa.Point) {
	x, y := c.project(p)
	c.set(x, y)
}

// Line draws a world segment with Bresenham's algorithm.
func (c *Canvas) Line(p, q dwa.Point) {
	x0, y0 := c.project(p)
	x1, y1 := c.project(q)

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Polyline draws consecutive segments through the points.
func (c *Canvas) Polyline(pts []dwa.Point) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1], pts[i])
	}
}

// Cross draws an X marker of the given world half-size, used for goals.
func (c *Canvas) Cross(p dwa.Point, r float64) {
	c.Line(dwa.Point{X: p.X - r, Y: p.Y - r}, dwa.Point{X: p.X + r, Y: p.Y + r})
	c.Line(dwa.Point{X: p.X - r, Y: p.Y + r}, dwa.Point{X: p.X + r, Y: p.Y - r})
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
