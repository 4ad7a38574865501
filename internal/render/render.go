// Package render draws recorded runs as figures: PNG via gonum/plot, SVG
// hand-built for dark terminal-styled output.
package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/dwanav/internal/storage"
)

// TrajectoryPNG renders the traveled paths of every agent together with the
// obstacle field and the goal sequence.
func TrajectoryPNG(path string, meta *storage.RunMetadata, rows []storage.StateRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("render: no state rows for run %s", meta.ID)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%d steps)", meta.Scenario, meta.Steps)
	p.X.Label.Text = "x [m]"
	p.Y.Label.Text = "y [m]"

	obstacles := make(plotter.XYs, 0, len(meta.Obstacles))
	for _, ob := range meta.Obstacles {
		obstacles = append(obstacles, plotter.XY{X: ob[0], Y: ob[1]})
	}
	if len(obstacles) > 0 {
		scatter, err := plotter.NewScatter(obstacles)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Radius = vg.Points(1.5)
		scatter.GlyphStyle.Color = color.Gray{Y: 60}
		p.Add(scatter)
	}

	for agent := 0; agent < meta.Agents; agent++ {
		pts := make(plotter.XYs, 0, len(rows)/meta.Agents)
		for _, row := range rows {
			if row.Agent == agent {
				pts = append(pts, plotter.XY{X: row.X, Y: row.Y})
			}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotter.DefaultLineStyle.Color
		if meta.Agents > 1 {
			line.LineStyle.Color = color.RGBA{
				R: uint8(40 * (agent + 1)), G: 80, B: uint8(255 - 30*agent), A: 255,
			}
		}
		p.Add(line)
	}

	goals := make(plotter.XYs, 0, len(meta.Goals))
	for _, g := range meta.Goals {
		goals = append(goals, plotter.XY{X: g[0], Y: g[1]})
	}
	if len(goals) > 0 {
		marks, err := plotter.NewScatter(goals)
		if err != nil {
			return err
		}
		marks.GlyphStyle.Radius = vg.Points(4)
		marks.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
		p.Add(marks)
	}

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}
