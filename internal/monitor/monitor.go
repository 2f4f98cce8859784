// Package monitor implements the live machine monitoring TUI using
// BubbleTea: one reading per tick, classified, logged, charted, and
// extrapolated until the first CRITICAL reading halts the loop.
package monitor

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/arlo/motorwatch/internal/chart"
	"github.com/arlo/motorwatch/internal/config"
	"github.com/arlo/motorwatch/internal/forecast"
	"github.com/arlo/motorwatch/internal/history"
	"github.com/arlo/motorwatch/internal/sensor"
	"github.com/arlo/motorwatch/internal/store"
)

const (
	seriesTemp = "temperature"
	seriesVib  = "vibration"
)

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the live monitor. The loop is
// strictly sequential: each tick acquires, logs, renders, and
// forecasts before the next is scheduled.
type Model struct {
	sim      *sensor.Simulator
	mlog     *store.MachineLog
	history  *history.Store
	ops      *zap.SugaredLogger
	lim      sensor.Limits
	interval time.Duration
	dataFile string

	tick    int
	cur     sensor.Reading
	prev    sensor.Reading
	proj    forecast.Projection
	hasProj bool
	halted  bool

	err       error
	width     int
	height    int
	scroll    int
	lastPoll  time.Time
	startTime time.Time
	paused    bool
}

// New creates the initial model for the live monitor.
func New(cfg *config.Config, ops *zap.SugaredLogger) Model {
	return NewSeeded(cfg, ops, time.Now().UnixNano())
}

// NewSeeded is New with a fixed simulator seed.
func NewSeeded(cfg *config.Config, ops *zap.SugaredLogger, seed int64) Model {
	lim := cfg.SensorLimits()
	m := Model{
		sim:       sensor.NewSimulator(cfg.Degradation(), lim, seed),
		history:   history.NewStore(cfg.Monitor.HistorySize),
		ops:       ops,
		lim:       lim,
		interval:  cfg.Monitor.Interval,
		dataFile:  cfg.Log.DataFile,
		startTime: time.Now(),
	}

	mlog, err := store.New(cfg.Log.DataFile)
	if err != nil {
		// Non-fatal: the loop keeps running without the machine log.
		m.err = fmt.Errorf("machine log: %w", err)
		ops.Errorw("machine log unavailable", "path", cfg.Log.DataFile, "error", err)
	} else {
		m.mlog = mlog
	}

	ops.Infow("session started",
		"data_file", cfg.Log.DataFile,
		"interval", cfg.Monitor.Interval,
		"critical_temp", lim.CriticalTemp,
		"critical_vibration", lim.CriticalVibration)

	return m
}

// Halted reports whether the loop stopped on a CRITICAL reading.
func (m Model) Halted() bool { return m.halted }

// Ticks returns the number of ticks executed.
func (m Model) Ticks() int { return m.tick }

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.halted {
			return m, nil
		}
		if m.paused {
			return m, m.tickCmd()
		}
		return m.advance(time.Time(msg))
	}

	return m, nil
}

// advance runs one full tick: acquire, log, record, forecast, and
// decide whether to halt.
func (m Model) advance(now time.Time) (Model, tea.Cmd) {
	m.tick++
	r := m.sim.Read(m.tick)

	if m.mlog != nil {
		if err := m.mlog.Append(r); err != nil {
			m.err = fmt.Errorf("machine log: %w", err)
			m.ops.Errorw("append failed", "tick", m.tick, "error", err)
		}
	}

	m.history.Record(seriesTemp, r.Temperature, now)
	m.history.Record(seriesVib, r.Vibration, now)

	m.prev = m.cur
	m.cur = r
	m.lastPoll = now

	// Two readings are needed before the trend means anything.
	if m.tick > 1 {
		m.proj = forecast.Project(m.cur, m.prev, m.lim.CriticalTemp)
		m.hasProj = true
	}

	if r.Status == sensor.StatusCritical {
		m.halted = true
		m.ops.Warnw("critical reading, halting",
			"tick", m.tick,
			"temperature", r.Temperature,
			"vibration", r.Vibration)
		return m, tea.Quit
	}

	return m, m.tickCmd()
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorName     = lipgloss.Color("147")
	colorAdapter  = lipgloss.Color("243")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorOk       = lipgloss.Color("78")
	colorWarn     = lipgloss.Color("220")
	colorCrit     = lipgloss.Color("196")
	colorPaused   = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitleBar(contentWidth))

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
	}

	if m.tick == 0 {
		waiting := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Connecting to sensors...")
		sections = append(sections, waiting)
	} else {
		sections = append(sections, m.renderMachinePanel(contentWidth))
		sections = append(sections, m.renderStatusLine(contentWidth))
		if m.hasProj {
			sections = append(sections, m.renderAnalyticsPanel(contentWidth))
		}
		if m.halted {
			sections = append(sections, m.renderHaltBanner(contentWidth))
		}
	}

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

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("MOTORWATCH")

	var statusParts []string

	uptime := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime))))
	statusParts = append(statusParts, uptime)

	tick := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("tick %d", m.tick))
	statusParts = append(statusParts, tick)

	if !m.lastPoll.IsZero() {
		ts := lipgloss.NewStyle().
			Foreground(colorDim).
			Render(m.lastPoll.Format("15:04:05"))
		statusParts = append(statusParts, ts)
	}

	if m.paused {
		p := lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED")
		statusParts = append(statusParts, p)
	}

	if m.mlog != nil {
		rec := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Render("REC") +
			lipgloss.NewStyle().
				Foreground(colorDim).
				Render(" "+m.dataFile)
		statusParts = append(statusParts, rec)
	}

	sep := lipgloss.NewStyle().Foreground(colorDim).Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + right)
}

func (m Model) renderMachinePanel(totalWidth int) string {
	innerWidth := totalWidth - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	chartWidth := innerWidth - 62
	if chartWidth < 15 {
		chartWidth = 15
	}
	if chartWidth > 140 {
		chartWidth = 140
	}

	labelW := 12

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")

	var rows []string

	name := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorName).
		Render("Factory Motor")
	id := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Render("motor-sim-0")
	adapter := lipgloss.NewStyle().
		Foreground(colorAdapter).
		Render("simulated sensors")
	rows = append(rows, name+"  "+id+"  "+adapter)

	warnTemp := m.lim.WarningTemp()

	var lastPts []history.Point

	type channel struct {
		label string
		key   string
		value float64
		unit  string
		warn  float64
		crit  float64
		tags  string
	}
	channels := []channel{
		{
			label: "Temperature",
			key:   seriesTemp,
			value: m.cur.Temperature,
			unit:  "°C",
			warn:  warnTemp,
			crit:  m.lim.CriticalTemp,
			tags: dimS.Render(" W") + lipgloss.NewStyle().Foreground(colorWarn).Render(fmt.Sprintf("%.0f", warnTemp)) +
				dimS.Render(" C") + lipgloss.NewStyle().Foreground(colorCrit).Render(fmt.Sprintf("%.0f", m.lim.CriticalTemp)),
		},
		{
			label: "Vibration",
			key:   seriesVib,
			value: m.cur.Vibration,
			unit:  " Hz",
			warn:  0,
			crit:  m.lim.CriticalVibration,
			tags:  dimS.Render(" C") + lipgloss.NewStyle().Foreground(colorCrit).Render(fmt.Sprintf("%.0f", m.lim.CriticalVibration)),
		},
	}

	for _, ch := range channels {
		hist := m.history.Get(ch.key)
		if hist == nil {
			continue
		}

		rangeMin := math.Max(0, hist.Min-5)
		rangeMax := hist.Peak + 5
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

		gauge := chart.RenderGauge(ch.value, ch.warn, ch.crit)

		pts := hist.LastNPoints(chartWidth)
		lastPts = pts
		spark := chart.RenderSparklinePoints(pts, chartWidth, rangeMin, rangeMax, ch.warn, ch.crit)
		framedSpark := frameL + spark + frameR

		stats := dimS.Render(" avg") + valS.Render(fmt.Sprintf("%6.1f", hist.Avg())) +
			dimS.Render(" lo") + valS.Render(fmt.Sprintf("%6.1f", hist.Min)) +
			dimS.Render(" pk") + valS.Render(fmt.Sprintf("%6.1f", hist.Peak))

		rows = append(rows, label+" "+value+" "+gauge+" "+framedSpark+stats+ch.tags)
	}

	if lastPts != nil {
		timeline := chart.RenderTimeline(lastPts, chartWidth)
		if strings.TrimSpace(timeline) != "" {
			pad := strings.Repeat(" ", labelW+9+gaugePad+2)
			rows = append(rows, pad+" "+timeline)
		}
	}

	panel := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(panel)
}

// gaugePad is the rendered width of the gauge column (brackets plus
// ten cells) used to align the timeline row.
const gaugePad = 12

func (m Model) renderStatusLine(width int) string {
	var (
		text  string
		color lipgloss.Color
	)
	switch m.cur.Status {
	case sensor.StatusCritical:
		text = "CRITICAL [ X ]"
		color = colorCrit
	case sensor.StatusWarning:
		text = "WARNING [ ! ]"
		color = colorWarn
	default:
		text = "NORMAL [ OK ]"
		color = colorOk
	}

	label := lipgloss.NewStyle().Foreground(colorLabel).Render("SYSTEM STATUS : ")
	status := lipgloss.NewStyle().Foreground(color).Bold(true).Render(text)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(label + status)
}

func (m Model) renderAnalyticsPanel(width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorName).
		Render("ANALYTICS")

	dimS := lipgloss.NewStyle().Foreground(colorDim)

	var lines []string
	lines = append(lines, title)

	switch m.proj.Level {
	case forecast.Stable:
		lines = append(lines, dimS.Render(">> ")+
			lipgloss.NewStyle().Foreground(colorOk).Render("Stable. No immediate risk detected."))

	default:
		trend := fmt.Sprintf("Trend detected: temperature rising %.2f °C/tick", m.proj.Rate)
		lines = append(lines, dimS.Render(">> ")+
			lipgloss.NewStyle().Foreground(colorWarn).Render(trend))

		if m.proj.Level == forecast.Urgent {
			alert := fmt.Sprintf("ALERT: predicted failure in %.0f ticks", m.proj.Steps)
			lines = append(lines, dimS.Render(">> ")+
				lipgloss.NewStyle().Foreground(colorCrit).Bold(true).Render(alert))
			lines = append(lines, dimS.Render(">> ")+
				lipgloss.NewStyle().Foreground(colorCrit).Bold(true).Render("Recommending emergency shutdown."))
		} else {
			safe := fmt.Sprintf("Safe operation for the next %.0f ticks.", m.proj.Steps)
			lines = append(lines, dimS.Render(">> ")+
				lipgloss.NewStyle().Foreground(colorOk).Render(safe))
		}
	}

	panel := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(panel)
}

func (m Model) renderHaltBanner(width int) string {
	return lipgloss.NewStyle().
		Foreground(colorCrit).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Render("*** CRITICAL FAILURE DETECTED / SYSTEM HALTED ***")
}

func (m Model) renderFooter(width int) string {
	okS := lipgloss.NewStyle().Foreground(colorOk).Render("██")
	warnS := lipgloss.NewStyle().Foreground(colorWarn).Render("██")
	critS := lipgloss.NewStyle().Foreground(colorCrit).Render("██")
	tickS := lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Render("│")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	legend := okS + dimS.Render(" ok ") +
		warnS + dimS.Render(" warning ") +
		critS + dimS.Render(" critical ") +
		tickS + dimS.Render(" 1min")

	keys := dimS.Render("q") + lipgloss.NewStyle().Foreground(colorLabel).Render(":quit") +
		dimS.Render("  j/k") + lipgloss.NewStyle().Foreground(colorLabel).Render(":scroll") +
		dimS.Render("  p") + lipgloss.NewStyle().Foreground(colorLabel).Render(":pause")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + filler + keys)
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
