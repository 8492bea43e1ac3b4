package viz

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cellrender/internal/storage"
)

// PlotStats charts visible, worker and dead counts per frame. The caption
// uses simulated minutes when the run has them.
func PlotStats(stats []storage.FrameStats, width, height int) string {
	if len(stats) == 0 {
		return ""
	}

	drawn := make([]float64, len(stats))
	workers := make([]float64, len(stats))
	dead := make([]float64, len(stats))
	for i, s := range stats {
		drawn[i] = float64(s.Drawn)
		workers[i] = float64(s.Workers)
		dead[i] = float64(s.Dead)
	}

	caption := fmt.Sprintf("cells per frame (%s to %s)", stats[0].Frame, stats[len(stats)-1].Frame)
	if last := stats[len(stats)-1].Minutes; last > 0 {
		caption = fmt.Sprintf("cells over %.1f min", last)
	}

	graph := asciigraph.PlotMany([][]float64{drawn, workers, dead},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Green, asciigraph.Red),
	)
	legend := Subtle.Render("visible") + "  " + BarHigh.Render("worker") + "  " + BarLow.Render("dead")
	return graph + "\n" + legend
}

// StatsTable lays the stats out in aligned columns.
func StatsTable(stats []storage.FrameStats) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tSTEP\tMIN\tCELLS\tDRAWN\tHIDDEN\tWORKER\tDEAD\tEDGES\tANOMALIES")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			s.Frame, s.Step, s.Minutes, s.Entities, s.Drawn, s.Hidden, s.Workers, s.Dead, s.Edges, s.Anomalies)
	}
	w.Flush()
	return b.String()
}
