// Package viz renders a completed run as a live terminal replay: speed
// and pack-current traces with a per-wheel telemetry panel.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/launchsim/internal/sim"
)

const (
	graphWidth  = 70
	graphHeight = 8
	historyCap  = 600
)

type TickMsg time.Time

// Model replays a Result snapshot-by-snapshot at the requested frame
// rate. The run itself has already completed; replay never mutates it.
type Model struct {
	result        *sim.Result
	burst         float64
	playHead      int
	ticksPerFrame int
	fps           int
	running       bool
}

func NewModel(result *sim.Result, burst float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	perFrame := len(result.Snapshots) / (fps * 10)
	if perFrame < 1 {
		perFrame = 1
	}
	return Model{
		result:        result,
		burst:         burst,
		ticksPerFrame: perFrame,
		fps:           fps,
		running:       true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
		case "[":
			m.scrub(-m.ticksPerFrame * 10)
		case "]":
			m.scrub(m.ticksPerFrame * 10)
		}
	case TickMsg:
		if m.running {
			m.scrub(m.ticksPerFrame)
		}
		return m, tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) scrub(delta int) {
	m.playHead += delta
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.result.Snapshots) {
		m.playHead = len(m.result.Snapshots) - 1
	}
}

func (m Model) View() string {
	if len(m.result.Snapshots) == 0 {
		return "no data"
	}
	snap := m.result.Snapshots[m.playHead]

	var b strings.Builder
	b.WriteString(headerStyle.Render("launchsim replay"))
	b.WriteString("\n")

	b.WriteString(graphStyle.Render(m.trace("speed (m/s)", func(s sim.Snapshot) float64 { return s.XDot })))
	b.WriteString("\n")
	b.WriteString(graphStyle.Render(m.trace("pack current (A)", sim.Snapshot.TotalAmps)))
	b.WriteString("\n")
	b.WriteString(m.stats(snap))
	b.WriteString(helpStyle.Render("space pause · [ ] scrub · r restart · q quit"))
	return b.String()
}

// trace plots a channel's history up to the play head.
func (m Model) trace(caption string, get func(sim.Snapshot) float64) string {
	start := 0
	if m.playHead > historyCap {
		start = m.playHead - historyCap
	}
	data := make([]float64, 0, m.playHead-start+1)
	for i := start; i <= m.playHead; i++ {
		data = append(data, get(m.result.Snapshots[i]))
	}
	if len(data) < 2 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(caption),
	)
}

func (m Model) stats(snap sim.Snapshot) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("time", fmt.Sprintf("%8.3f s", snap.Time))
	row("distance", fmt.Sprintf("%8.3f m", snap.X))
	row("speed", fmt.Sprintf("%8.3f m/s", snap.XDot))
	row("accel", fmt.Sprintf("%8.3f m/s²", snap.XDdot))
	for i, label := range []string{"RF", "LF", "LR", "RR"} {
		w := snap.Wheels[i]
		line := fmt.Sprintf("%6.1f A  slip %5.3f  w %8.2f rad/s", w.Amps, w.Slip, w.Omega)
		if w.Amps >= m.burst {
			line = limitStyle.Render(line + "  LIMIT")
		}
		row("wheel "+label, line)
	}
	return statsStyle.Render(b.String()) + "\n"
}
