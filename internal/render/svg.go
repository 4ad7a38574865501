package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/dwanav/internal/storage"
)

var agentStrokes = []string{
	"#00ff00", "#00ccff", "#ff8800", "#ff00cc", "#ffee00", "#8844ff",
}

// TrajectorySVG renders the traveled paths of every agent as a hand-built
// SVG: obstacle dots, one path per agent and an X marker per goal, all in a
// shared world viewport.
func TrajectorySVG(path string, meta *storage.RunMetadata, rows []storage.StateRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("render: no state rows for run %s", meta.ID)
	}

	const width, height = 800, 600

	minX, maxX := rows[0].X, rows[0].X
	minY, maxY := rows[0].Y, rows[0].Y
	expand := func(x, y float64) {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, row := range rows {
		expand(row.X, row.Y)
	}
	for _, ob := range meta.Obstacles {
		expand(ob[0], ob[1])
	}
	for _, g := range meta.Goals {
		expand(g[0], g[1])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeX = maxX - minX
	rangeY = maxY - minY

	// y flipped: world y up, SVG y down.
	px := func(x float64) float64 { return (x - minX) / rangeX * width }
	py := func(y float64) float64 { return height - (y-minY)/rangeY*height }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if len(meta.Obstacles) > 0 {
		sb.WriteString(`<g fill="#555555">` + "\n")
		for _, ob := range meta.Obstacles {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.5"/>
`, px(ob[0]), py(ob[1])))
		}
		sb.WriteString("</g>\n")
	}

	for agent := 0; agent < meta.Agents; agent++ {
		stroke := agentStrokes[agent%len(agentStrokes)]
		first := true
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke))
		for _, row := range rows {
			if row.Agent != agent {
				continue
			}
			if first {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", px(row.X), py(row.Y)))
				first = false
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(row.X), py(row.Y)))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(`<g stroke="#ff3333" stroke-width="2">` + "\n")
	for _, g := range meta.Goals {
		x, y := px(g[0]), py(g[1])
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x-5, y-5, x+5, y+5))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x-5, y+5, x+5, y-5))
	}
	sb.WriteString("</g>\n</svg>\n")

	return os.WriteFile(path, []byte(sb.String()), 0644)
}
