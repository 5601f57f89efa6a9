package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rhizotron/rhizosim/internal/grow"
)

const (
	liveWidth  = 68
	liveHeight = 22
)

type TickMsg time.Time

// DaySnapshot is one committed day delivered to the live view.
type DaySnapshot struct {
	Record grow.DayRecord
	Lines  []grow.Polyline
	Roots  int
	Tips   int
	Depth  float64
}

// LiveModel animates a running season day by day. The simulation runs in its
// own goroutine and feeds snapshots through the channel; the view consumes
// one snapshot per tick, which paces growth to the frame rate. Consumed days
// stay in history so the season can be replayed while it runs.
type LiveModel struct {
	days      <-chan DaySnapshot
	plant     string
	totalDays int
	interval  time.Duration

	history  []DaySnapshot
	playHead int // -1 means live
	running  bool
	finished bool
	canvas   *Canvas
	showHelp bool
}

func NewLive(plant string, totalDays int, days <-chan DaySnapshot, interval time.Duration) LiveModel {
	return LiveModel{
		days:      days,
		plant:     plant,
		totalDays: totalDays,
		interval:  interval,
		playHead:  -1,
		running:   true,
		canvas:    NewCanvas(liveWidth, liveHeight),
	}
}

func (m LiveModel) Init() tea.Cmd { return m.tick() }

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and pulls committed days from the simulation.
func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.finished && m.playHead == -1 {
			select {
			case snap, ok := <-m.days:
				if !ok {
					m.finished = true
				} else {
					m.history = append(m.history, snap)
				}
			default:
				// simulation still computing this day
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// scrub changes the replay position in the recorded days.
func (m *LiveModel) scrub(dir int) {
	if len(m.history) == 0 {
		return
	}
	if m.playHead == -1 {
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m LiveModel) current() (DaySnapshot, bool) {
	if len(m.history) == 0 {
		return DaySnapshot{}, false
	}
	idx := len(m.history) - 1
	if m.playHead >= 0 && m.playHead < len(m.history) {
		idx = m.playHead
	}
	return m.history[idx], true
}

// View renders the root system beside the day's accounting.
func (m LiveModel) View() string {
	snap, ok := m.current()

	m.canvas.Clear()
	if ok && len(snap.Lines) > 0 {
		v := FitView(snap.Lines)
		pw, ph := m.canvas.PixelSize()
		_, surfaceY := v.project(0, 0, pw, ph)
		m.canvas.DrawHLine(surfaceY)
		DrawRoots(m.canvas, snap.Lines, v)
	}
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.plant)) + "\n")

	status := "GROWING"
	switch {
	case m.playHead != -1:
		status = fmt.Sprintf("REPLAY day %d", snap.Record.Day)
	case m.finished:
		status = "SEASON DONE"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		committed := make([]float64, 0, len(m.history))
		for _, h := range m.history {
			committed = append(committed, h.Record.CommittedIncrement)
		}
		chart := asciigraph.Plot(committed, asciigraph.Height(4), asciigraph.Width(30),
			asciigraph.Caption("committed cm/day"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	if ok {
		rec := snap.Record
		s.WriteString(labelStyle.Render("Day") + valueStyle.Render(fmt.Sprintf("%d of %d", rec.Day, m.totalDays)) + "\n")
		s.WriteString(labelStyle.Render("Length") + valueStyle.Render(fmt.Sprintf("%.1f cm", rec.EndLength)) + "\n")
		s.WriteString(labelStyle.Render("Trial") + valueStyle.Render(fmt.Sprintf("%.1f cm", rec.TrialIncrement)) + "\n")
		committedVal := fmt.Sprintf("%.1f cm", rec.CommittedIncrement)
		if rec.Limited {
			s.WriteString(labelStyle.Render("Committed") + limitedStyle.Render(committedVal+"  limited") + "\n")
		} else {
			s.WriteString(labelStyle.Render("Committed") + valueStyle.Render(committedVal) + "\n")
		}
		s.WriteString(labelStyle.Render("Scale") + valueStyle.Render(fmt.Sprintf("%.2f", rec.Scale)) + "\n")
		s.WriteString(labelStyle.Render("Roots") + valueStyle.Render(fmt.Sprintf("%d (%d tips)", snap.Roots, snap.Tips)) + "\n")
		s.WriteString(labelStyle.Render("Depth") + valueStyle.Render(fmt.Sprintf("%.1f cm", snap.Depth)) + "\n")
		s.WriteString("\n" + ProgressBar(float64(rec.Day)/float64(m.totalDays), 26) + "\n")
	} else {
		s.WriteString(labelStyle.Render("Day") + valueStyle.Render("germinating...") + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause  [ ]:Replay  Q:Quit  ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔═══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS           ║
╠═══════════════════════════════════════╣
║  Space    - Pause/Resume growth       ║
║  [        - Step back one day         ║
║  ]        - Step forward one day      ║
║  Q        - Quit                      ║
║  ?        - Toggle this help          ║
╚═══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
