package viz

import (
	"fmt"
	"io"
	"os"
)

// Logger writes human-oriented status lines. Info lines are dropped when
// Quiet is set. Warnings share the info stream so per-frame anomalies stay
// in order with the progress lines; errors go to the error stream.
type Logger struct {
	out   io.Writer
	err   io.Writer
	Quiet bool
}

func NewLogger(out, err io.Writer) *Logger {
	return &Logger{out: out, err: err}
}

// StdLogger logs info and warnings to stdout and errors to stderr.
func StdLogger() *Logger {
	return NewLogger(os.Stdout, os.Stderr)
}

func (l *Logger) Infof(format string, args ...any) {
	if l.Quiet {
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", InfoPrefix.Render("•"), fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.out, "%s %s\n", WarnPrefix.Render("warn"), fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	fmt.Fprintf(l.err, "%s %s\n", ErrorPrefix.Render("error"), fmt.Sprintf(format, args...))
}

// Metric prints a label/value pair, used for run summaries.
func (l *Logger) Metric(label string, value any) {
	if l.Quiet {
		return
	}
	fmt.Fprintf(l.out, "  %s %s\n", MetricLabel.Render(fmt.Sprintf("%-12s", label)), MetricValue.Render(fmt.Sprint(value)))
}
