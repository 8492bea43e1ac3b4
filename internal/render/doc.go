// Package render rasterizes one simulation snapshot into an RGBA frame.
//
// Layers are painted in a fixed order, each overwriting the pixels below it:
//
//   - background fill
//   - field layer (colormapped concentration, copied with draw.Src)
//   - guides (dish outline and centre axes)
//   - cell outlines, in record order
//   - adhesion edges
//   - step label
//
// Cells and edges are skipped when cells are turned off, leaving a
// field-only frame.
//
// Positions that land outside the canvas and adhesion references to unknown
// cells are reported as [AnomalyError] values on the [Result]; they never
// stop a frame from being written. Primitives are clipped to the canvas
// before they are walked, so far-off coordinates cost nothing.
package render
