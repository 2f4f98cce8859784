// Package viewer implements the recorded session browser TUI with a
// tick scrubber over a machine log file.
package viewer

import (
	"fmt"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arlo/motorwatch/internal/chart"
	"github.com/arlo/motorwatch/internal/sensor"
	"github.com/arlo/motorwatch/internal/store"
)

// Run launches the session browser over the machine log at path.
func Run(path string, lim sensor.Limits) {
	rows, err := store.LoadFile(path)
	if err != nil || len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "No session data found in %s\n", path)
		os.Exit(1)
	}

	p := tea.NewProgram(
		initModel(path, rows, lim),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorName     = lipgloss.Color("147")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorOk       = lipgloss.Color("78")
	colorWarn     = lipgloss.Color("220")
	colorCrit     = lipgloss.Color("196")
)

// ── Model ────────────────────────────────────────────────────────────

type model struct {
	path   string
	rows   []store.Row
	lim    sensor.Limits
	cursor int // index into rows
	scroll int
	width  int
	height int
}

func initModel(path string, rows []store.Row, lim sensor.Limits) model {
	return model{
		path:   path,
		rows:   rows,
		lim:    lim,
		cursor: len(rows) - 1,
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "shift+left", "H":
			m.cursor -= 10
			if m.cursor < 0 {
				m.cursor = 0
			}
		case "shift+right", "L":
			m.cursor += 10
			if m.cursor >= len(m.rows) {
				m.cursor = len(m.rows) - 1
			}
		case "home":
			m.cursor = 0
		case "end":
			m.cursor = len(m.rows) - 1

		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// ── View ─────────────────────────────────────────────────────────────

func (m model) View() string {
	if m.width == 0 {
		return "  Loading..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitle(contentWidth))
	sections = append(sections, m.renderCursorInfo(contentWidth))
	sections = append(sections, m.renderSeriesPanel(contentWidth))
	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}

	start := m.scroll
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (m model) renderTitle(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("MOTORWATCH SESSION")

	info := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("%s  (%d ticks)", m.path, len(m.rows)))

	gap := width - lipgloss.Width(logo) - lipgloss.Width(info) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + info)
}

func (m model) renderCursorInfo(width int) string {
	row := m.rows[m.cursor]

	tick := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true).
		Render(fmt.Sprintf("tick %d", row.Tick))

	pos := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("  [ %d/%d ]", m.cursor+1, len(m.rows)))

	var statusColor lipgloss.Color
	switch row.Status {
	case sensor.StatusCritical:
		statusColor = colorCrit
	case sensor.StatusWarning:
		statusColor = colorWarn
	default:
		statusColor = colorOk
	}
	status := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render("  " + row.Status.String())

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(tick + pos + status)
}

func (m model) renderSeriesPanel(totalWidth int) string {
	innerWidth := totalWidth - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	chartWidth := innerWidth - 50
	if chartWidth < 15 {
		chartWidth = 15
	}
	if chartWidth > 140 {
		chartWidth = 140
	}

	labelW := 12
	row := m.rows[m.cursor]

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")

	type channel struct {
		label string
		value float64
		unit  string
		warn  float64
		crit  float64
		pick  func(store.Row) float64
	}
	channels := []channel{
		{"Temperature", row.Temperature, "°C", m.lim.WarningTemp(), m.lim.CriticalTemp,
			func(r store.Row) float64 { return r.Temperature }},
		{"Vibration", row.Vibration, " Hz", 0, m.lim.CriticalVibration,
			func(r store.Row) float64 { return r.Vibration }},
	}

	var rows []string

	name := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorName).
		Render("Factory Motor")
	rows = append(rows, name)

	// window of values ending at the cursor
	start := m.cursor + 1 - chartWidth
	if start < 0 {
		start = 0
	}
	window := m.rows[start : m.cursor+1]

	for _, ch := range channels {
		values := make([]float64, len(window))
		lo, hi := math.MaxFloat64, -math.MaxFloat64
		for i, r := range window {
			v := ch.pick(r)
			values[i] = v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}

		rangeMin := math.Max(0, lo-5)
		rangeMax := hi + 5
		if ch.crit > rangeMax {
			rangeMax = ch.crit + 5
		}

		label := lipgloss.NewStyle().
			Foreground(colorLabel).
			Width(labelW).
			Render(ch.label)

		value := lipgloss.NewStyle().
			Width(9).
			Align(lipgloss.Right).
			Render(chart.RenderValue(ch.value, ch.warn, ch.crit, ch.unit))

		spark := chart.RenderSparkline(values, chartWidth, rangeMin, rangeMax, ch.warn, ch.crit)

		stats := dimS.Render(" lo") + valS.Render(fmt.Sprintf("%6.1f", lo)) +
			dimS.Render(" hi") + valS.Render(fmt.Sprintf("%6.1f", hi))

		rows = append(rows, label+" "+value+" "+frameL+spark+frameR+stats)
	}

	panel := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(panel)
}

func (m model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	labS := lipgloss.NewStyle().Foreground(colorLabel)

	keys := dimS.Render("h/l") + labS.Render(":step") +
		dimS.Render("  H/L") + labS.Render(":jump 10") +
		dimS.Render("  home/end") + labS.Render(":ends") +
		dimS.Render("  q") + labS.Render(":quit")

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(keys)
}
