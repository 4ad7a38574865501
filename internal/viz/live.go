package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dwanav/internal/drive"
	"github.com/san-kum/dwanav/internal/dwa"
)

const (
	canvasWidth   = 90
	canvasHeight  = 26
	trailCapacity = 600
	worldPadding  = 1.5
)

type TickMsg time.Time

// Model is the live view over a running control loop. It owns the stepping:
// each animation tick advances the loop by one control step per agent.
type Model struct {
	stepper drive.Stepper
	cfg     *dwa.Config
	goals   []dwa.Point
	fps     int

	running bool
	done    bool
	err     error
	trails  [][]dwa.Point

	xMin, xMax float64
	yMin, yMax float64
}

// NewModel sizes the world viewport around everything the run can touch:
// obstacle field, goal sequence and start poses.
func NewModel(stepper drive.Stepper, cfg *dwa.Config, goals []dwa.Point, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	frame := stepper.Frame()

	m := Model{
		stepper: stepper,
		cfg:     cfg,
		goals:   goals,
		fps:     fps,
		running: true,
		trails:  make([][]dwa.Point, len(frame.States)),
	}

	pts := make([]dwa.Point, 0, len(cfg.Obstacles)+len(goals)+len(frame.States))
	pts = append(pts, cfg.Obstacles...)
	pts = append(pts, goals...)
	for _, s := range frame.States {
		pts = append(pts, s.Pos())
	}
	m.xMin, m.xMax, m.yMin, m.yMax = bounds(pts)
	return m
}

func bounds(pts []dwa.Point) (xMin, xMax, yMin, yMax float64) {
	if len(pts) == 0 {
		return -worldPadding, worldPadding, -worldPadding, worldPadding
	}
	xMin, xMax = pts[0].X, pts[0].X
	yMin, yMax = pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < xMin {
			xMin = p.X
		}
		if p.X > xMax {
			xMax = p.X
		}
		if p.Y < yMin {
			yMin = p.Y
		}
		if p.Y > yMax {
			yMax = p.Y
		}
	}
	return xMin - worldPadding, xMax + worldPadding, yMin - worldPadding, yMax + worldPadding
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input and advances the simulation on animation ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.advance()
			}
		}
	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	done, err := m.stepper.Step(context.Background())
	if err != nil {
		m.err = err
		m.done = true
		return
	}
	m.done = done

	frame := m.stepper.Frame()
	for i, s := range frame.States {
		m.trails[i] = append(m.trails[i], s.Pos())
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}
}

// View renders one frame: obstacle field, traveled trails, the predicted
// best trajectory, each robot footprint, and the active goal.
func (m Model) View() string {
	frame := m.stepper.Frame()

	canvas := NewCanvas(canvasWidth, canvasHeight, m.xMin, m.xMax, m.yMin, m.yMax)
	for _, ob := range m.cfg.Obstacles {
		canvas.Point(ob)
	}
	for _, trail := range m.trails {
		canvas.Polyline(trail)
	}

	best := make([]dwa.Point, 0, len(frame.Best))
	for _, s := range frame.Best {
		best = append(best, s.Pos())
	}
	canvas.Polyline(best)

	for _, s := range frame.States {
		canvas.Polyline(m.cfg.Outline(s))
		from, to := m.cfg.HeadingRay(s)
		canvas.Line(from, to)
	}
	canvas.Cross(frame.Goal, m.cfg.Radius/2)

	status := statusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = statusDone.Render("ERROR: " + m.err.Error())
	case m.done:
		status = statusDone.Render("ALL GOALS REACHED")
	case !m.running:
		status = statusPaused.Render("PAUSED")
	}

	var stats strings.Builder
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("tick", fmt.Sprintf("%d", frame.Tick))
	row("sim time", fmt.Sprintf("%.1fs", frame.Time))
	row("goal", fmt.Sprintf("%d/%d  (%.1f, %.1f)", frame.GoalIndex+1, len(m.goals), frame.Goal.X, frame.Goal.Y))
	row("agents", fmt.Sprintf("%d", len(frame.States)))
	lead := frame.States[0]
	row("pose", fmt.Sprintf("(%.2f, %.2f) yaw %.2f", lead.X, lead.Y, lead.Yaw))
	row("command", fmt.Sprintf("v %.3f m/s  w %.3f rad/s", lead.V, lead.Omega))
	row("dist", fmt.Sprintf("%.2f m", lead.Pos().Dist(frame.Goal)))

	var b strings.Builder
	b.WriteString(headerStyle.Render("DWANAV LIVE") + "  " + status + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(canvas.String()),
		statsStyle.Render(stats.String()),
	))
	b.WriteString(helpStyle.Render("space pause · n step · q quit"))
	return b.String()
}
