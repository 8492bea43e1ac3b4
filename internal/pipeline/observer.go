package pipeline

import (
	"github.com/san-kum/cellrender/internal/render"
	"github.com/san-kum/cellrender/internal/storage"
)

// FrameEvent is delivered to observers after a frame has been rendered.
// Path is where the image goes; it is only on disk when Stats.Image is set.
type FrameEvent struct {
	Index  int
	Total  int
	Path   string
	Stats  storage.FrameStats
	Result *render.Result
}

type Observer interface {
	OnFrame(ev FrameEvent)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(ev FrameEvent)

func (f ObserverFunc) OnFrame(ev FrameEvent) { f(ev) }

// Logger is the subset of the console logger the pipeline reports through.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// LogObserver prints one line per frame and every anomaly as a warning.
type LogObserver struct {
	Log     Logger
	Verbose bool
}

func (o LogObserver) OnFrame(ev FrameEvent) {
	for _, err := range ev.Result.Anomalies {
		o.Log.Warnf("%v", err)
	}
	if o.Verbose {
		// nothing is written in a dry run
		name := ev.Path
		if ev.Stats.Image == "" {
			name = "frame " + ev.Stats.Frame
		}
		o.Log.Infof("[%d/%d] %s  drawn=%d hidden=%d edges=%d",
			ev.Index+1, ev.Total, name, ev.Stats.Drawn, ev.Stats.Hidden, ev.Stats.Edges)
	}
}
