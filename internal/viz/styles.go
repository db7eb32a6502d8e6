package viz

import "github.com/charmbracelet/lipgloss"

var (
	BodyAStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	BodyBStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4488ff"))
	// cells crossed by both trajectories
	OverlapStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cc66ff"))
	EmptyStyle   = lipgloss.NewStyle()

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(16)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

func layerStyle(l Layer) lipgloss.Style {
	switch l {
	case LayerA:
		return BodyAStyle
	case LayerB:
		return BodyBStyle
	case LayerA | LayerB:
		return OverlapStyle
	default:
		return EmptyStyle
	}
}

// Metric renders a label/value line.
func Metric(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}

// Legend names the colour of each body.
func Legend() string {
	return BodyAStyle.Render("━ body a") + "  " + BodyBStyle.Render("━ body b")
}
