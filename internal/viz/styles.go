package viz

import "github.com/charmbracelet/lipgloss"

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statusRunning = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	statusPaused  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	statusDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)
