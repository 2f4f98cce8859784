// Package chart provides sparkline and gauge rendering with
// color-coded thresholds, minute tick marks, and timeline labels.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arlo/motorwatch/internal/history"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// ValueColor returns the appropriate color for a value given its
// warning and critical limits. A warn of 0 means the channel has no
// warning tier.
func ValueColor(v, warn, crit float64) lipgloss.Color {
	switch {
	case crit > 0 && v > crit:
		return lipgloss.Color("196") // red
	case warn > 0 && v > warn:
		return lipgloss.Color("208") // orange
	case warn > 0 && v > warn*0.85:
		return lipgloss.Color("220") // yellow
	default:
		return lipgloss.Color("78") // soft green
	}
}

// RenderSparkline renders a sparkline chart with color-coded blocks
// from plain values (no timestamp ticks).
func RenderSparkline(values []float64, width int, rangeMin, rangeMax, warn, crit float64) string {
	if width <= 0 {
		return ""
	}
	pts := make([]history.Point, len(values))
	for i, v := range values {
		pts[i] = history.Point{Value: v}
	}
	return RenderSparklinePoints(pts, width, rangeMin, rangeMax, warn, crit)
}

// RenderSparklinePoints renders a sparkline with minute tick marks on
// the timeline. A subtle pipe is drawn at each minute boundary.
func RenderSparklinePoints(points []history.Point, width int, rangeMin, rangeMax, warn, crit float64) string {
	if width <= 0 {
		return ""
	}

	if len(points) == 0 {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	for i := 0; i < padLen; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	tickStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	for i, p := range points {
		norm := (p.Value - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))

		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}

		isMinuteTick := false
		if !p.Time.IsZero() {
			if p.Time.Second() == 0 {
				isMinuteTick = true
			} else if i > 0 && !points[i-1].Time.IsZero() {
				if p.Time.Minute() != points[i-1].Time.Minute() {
					isMinuteTick = true
				}
			}
		}

		if isMinuteTick {
			sb.WriteString(tickStyle.Render("│"))
		} else {
			ch := string(sparkBlocks[idx])
			color := ValueColor(p.Value, warn, crit)
			style := lipgloss.NewStyle().Foreground(color)
			if crit > 0 && p.Value > crit {
				style = style.Bold(true)
			}
			sb.WriteString(style.Render(ch))
		}
	}

	return sb.String()
}

// RenderTimeline renders the time labels under the sparkline, showing
// HH:MM at each minute tick position.
func RenderTimeline(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	tickStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	type tick struct {
		pos   int
		label string
	}
	var ticks []tick

	for i, p := range points {
		if p.Time.IsZero() {
			continue
		}
		isMinuteTick := false
		if p.Time.Second() == 0 {
			isMinuteTick = true
		} else if i > 0 && !points[i-1].Time.IsZero() {
			if p.Time.Minute() != points[i-1].Time.Minute() {
				isMinuteTick = true
			}
		}
		if isMinuteTick {
			pos := padLen + i
			label := p.Time.Format("15:04")
			ticks = append(ticks, tick{pos: pos, label: label})
		}
	}

	lastEnd := -1
	for _, t := range ticks {
		start := t.pos - 2
		if start < 0 {
			start = 0
		}
		end := start + len(t.label)
		if end > width {
			continue
		}
		if start <= lastEnd+1 {
			continue
		}
		for j, ch := range t.label {
			line[start+j] = ch
		}
		lastEnd = end
	}

	result := string(line)
	return tickStyle.Render(result)
}

// gauge geometry: the bar has ten cells and fills in three coarse
// steps relative to the critical limit.
const gaugeCells = 10

// GaugeFill returns how many of the ten gauge cells are lit for a
// value against its critical limit.
func GaugeFill(v, crit float64) int {
	switch {
	case v < crit*0.6:
		return 4
	case v < crit*0.9:
		return 8
	default:
		return gaugeCells
	}
}

// RenderGauge renders the coarse ten-cell bar indicator. A full bar
// carries an alarm marker.
func RenderGauge(v, warn, crit float64) string {
	fill := GaugeFill(v, crit)

	color := ValueColor(v, warn, crit)
	lit := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("=", fill))
	rest := strings.Repeat(" ", gaugeCells-fill)

	frame := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	bar := frame.Render("[") + lit + rest + frame.Render("]")

	if fill == gaugeCells {
		bar += lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Render(" !!!")
	}
	return bar
}

// RenderValue renders a sensor value with its unit, color coded.
func RenderValue(v, warn, crit float64, unit string) string {
	s := fmt.Sprintf("%6.2f%s", v, unit)
	color := ValueColor(v, warn, crit)
	style := lipgloss.NewStyle().Foreground(color)
	if crit > 0 && v > crit {
		style = style.Bold(true)
	}
	return style.Render(s)
}
