package viz

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg reports one finished frame to a running Progress program.
type FrameMsg struct {
	Done      int
	Total     int
	Path      string
	Drawn     int
	Anomalies int
}

// DoneMsg ends the program; Err is shown if set.
type DoneMsg struct {
	Summary string
	Err     error
}

// Progress is a Bubble Tea model tracking a render or video run. The run
// itself happens elsewhere and feeds it with Program.Send.
type Progress struct {
	title     string
	total     int
	done      int
	last      string
	anomalies int
	drawn     []float64
	summary   string
	err       error
	finished  bool
	width     int
	cancel    func()
}

// NewProgress creates the model; cancel, when not nil, is called if the
// user quits before the run finishes.
func NewProgress(title string, total int, cancel func()) Progress {
	return Progress{title: title, total: total, width: 40, cancel: cancel}
}

func (m Progress) Init() tea.Cmd { return nil }

func (m Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.finished && m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = max(10, min(60, msg.Width-30))
	case FrameMsg:
		m.done = msg.Done
		if msg.Total > 0 {
			m.total = msg.Total
		}
		m.last = msg.Path
		m.anomalies += msg.Anomalies
		m.drawn = append(m.drawn, float64(msg.Drawn))
	case DoneMsg:
		m.finished = true
		m.summary = msg.Summary
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Progress) Percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m Progress) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title) + "\n\n")
	b.WriteString(fmt.Sprintf("%s %3.0f%%  %d/%d\n", ProgressBar(m.Percent(), m.width), m.Percent()*100, m.done, m.total))

	if m.last != "" {
		b.WriteString(MetricLabel.Render("last      ") + filepath.Base(m.last) + "\n")
	}
	if len(m.drawn) > 0 {
		b.WriteString(MetricLabel.Render("cells     ") + Sparkline(m.drawn, m.width) + "\n")
	}
	if m.anomalies > 0 {
		b.WriteString(MetricLabel.Render("anomalies ") + WarnPrefix.Render(fmt.Sprint(m.anomalies)) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + StatusFailed.Render("failed: ") + m.err.Error() + "\n")
	case m.finished:
		b.WriteString("\n" + StatusDone.Render("done") + " " + m.summary + "\n")
	default:
		b.WriteString("\n" + KeyHint.Render("q: cancel") + "\n")
	}
	return b.String()
}
