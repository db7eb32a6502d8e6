package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/twobody/internal/dynamo"
)

type TickMsg time.Time

const (
	replayFPS = 30
	maxSpeed  = 64
	canvasW   = 60
	canvasH   = 20
)

// Replay steps through a recorded trajectory. Space toggles playback,
// left/right scrub one step, +/- change the playback speed.
type Replay struct {
	title   string
	tr      dynamo.Trajectory
	bounds  Bounds
	canvas  *Canvas
	head    int
	speed   int
	playing bool
}

func NewReplay(title string, tr dynamo.Trajectory) Replay {
	return Replay{
		title:   title,
		tr:      tr,
		bounds:  BoundsOf(tr),
		canvas:  NewCanvas(canvasW, canvasH),
		speed:   1,
		playing: true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/replayFPS, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Replay) Init() tea.Cmd {
	return tick()
}

func (m Replay) Head() int { return m.head }

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "left", "h":
			m.playing = false
			m.seek(m.head - 1)
		case "right", "l":
			m.playing = false
			m.seek(m.head + 1)
		case "home", "r":
			m.seek(0)
		case "end":
			m.seek(len(m.tr) - 1)
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.playing {
			m.seek(m.head + m.speed)
			if m.head == len(m.tr)-1 {
				m.playing = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Replay) seek(i int) {
	if last := len(m.tr) - 1; i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	m.head = i
}

func (m Replay) View() string {
	if len(m.tr) == 0 {
		return HeaderStyle.Render(m.title) + "\n\nempty trajectory\n"
	}

	m.canvas.Clear()
	Draw(m.canvas, m.tr, m.bounds, m.head+1)

	status := StatusRunning.Render("PLAYING")
	if !m.playing {
		status = StatusPaused.Render("PAUSED")
	}

	s := m.tr[m.head]
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(strings.ToUpper(m.title)) + "\n")
	b.WriteString(status + "\n\n")
	b.WriteString(Metric("step", fmt.Sprintf("%d / %d", m.head+1, len(m.tr))) + "\n")
	b.WriteString(Metric("speed", fmt.Sprintf("%dx", m.speed)) + "\n")
	b.WriteString(Metric("body a", s.A.String()) + "\n")
	b.WriteString(Metric("body b", s.B.String()) + "\n")
	b.WriteString(Metric("separation", fmt.Sprintf("%.4f", s.A.Sub(s.B).Norm())) + "\n\n")
	b.WriteString(Legend() + "\n\n")
	b.WriteString(KeyHint.Render("SP:Play/Pause ←→:Step +/-:Speed R:Restart Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(m.canvas.Render()),
		PanelStyle.Render(b.String()),
	)
}
