package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle   lipgloss.Style
	Subtle       lipgloss.Style
	MetricLabel  lipgloss.Style
	MetricValue  lipgloss.Style
	InfoPrefix   lipgloss.Style
	WarnPrefix   lipgloss.Style
	ErrorPrefix  lipgloss.Style
	StatusDone   lipgloss.Style
	StatusFailed lipgloss.Style
	KeyHint      lipgloss.Style

	// Progress bar colors
	BarHigh lipgloss.Style
	BarMid  lipgloss.Style
	BarLow  lipgloss.Style
)

func init() { applyTheme(currentTheme) }

func applyTheme(t Theme) {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	MetricLabel = lipgloss.NewStyle().Foreground(t.Muted)
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	InfoPrefix = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	WarnPrefix = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
	ErrorPrefix = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	StatusDone = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	StatusFailed = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	KeyHint = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)

	BarHigh = lipgloss.NewStyle().Foreground(t.Success)
	BarMid = lipgloss.NewStyle().Foreground(t.Warning)
	BarLow = lipgloss.NewStyle().Foreground(t.Error)
}

// ProgressBar renders a bar of the given width, colored by completion
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return BarHigh.Render(bar)
	} else if percent > 0.4 {
		return BarMid.Render(bar)
	}
	return BarLow.Render(bar)
}

// Sparkline renders values as a one-line bar chart, sampled to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func Separator(width int) string {
	return Subtle.Render(strings.Repeat("─", width))
}
