// Package viz is the console side of cellrender.
//
// It provides:
//
//   - [Logger]: styled Infof/Warnf/Errorf output with a quiet switch
//   - [Progress]: a Bubble Tea view of a render or video run
//   - [Canvas] and [Preview]: Braille-dot previews of a frame
//   - [PlotStats] and [StatsTable]: per-frame statistics as charts and tables
//
// Colors come from the active [Theme]; see [SetTheme].
package viz
