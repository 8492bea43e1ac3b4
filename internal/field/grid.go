package field

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	layerSep = "|"
	valueSep = " "
)

// Grid is a parsed field snapshot. Values are stored as an X×Y×Z volume in
// the order the simulator writes them: one line per X slab, one
// "|"-terminated segment per Y row, one space-terminated value per Z cell.
// Files without "|" are two-dimensional: one line per X, one value per Y.
type Grid struct {
	X, Y, Z int
	data    []float64
}

func (g *Grid) At(x, y, z int) float64 {
	return g.data[(x*g.Y+y)*g.Z+z]
}

func ParseFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func Parse(r io.Reader) (*Grid, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	g := &Grid{}
	for n, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		rows, err := parseSlab(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedField, n+1, err)
		}

		y, z := len(rows), len(rows[0])
		if g.X == 0 {
			g.Y, g.Z = y, z
		} else if y != g.Y || z != g.Z {
			return nil, fmt.Errorf("%w: line %d: shape %dx%d, expected %dx%d", ErrMalformedField, n+1, y, z, g.Y, g.Z)
		}
		for _, row := range rows {
			g.data = append(g.data, row...)
		}
		g.X++
	}

	if g.X == 0 {
		return nil, fmt.Errorf("%w: no values", ErrMalformedField)
	}
	return g, nil
}

// parseSlab returns the rows of one line. A two-dimensional line yields one
// single-value row per number so both layouts share the X×Y×Z indexing.
func parseSlab(line string) ([][]float64, error) {
	if !strings.Contains(line, layerSep) {
		vals, err := parseRow(line)
		if err != nil {
			return nil, err
		}
		rows := make([][]float64, len(vals))
		for i, v := range vals {
			rows[i] = []float64{v}
		}
		return rows, nil
	}

	segs := strings.Split(line, layerSep)
	segs = segs[:len(segs)-1]
	if len(segs) == 0 {
		return nil, fmt.Errorf("no rows")
	}

	rows := make([][]float64, 0, len(segs))
	for i, seg := range segs {
		vals, err := parseRow(seg)
		if err != nil {
			return nil, fmt.Errorf("row %d: %v", i, err)
		}
		if i > 0 && len(vals) != len(rows[0]) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(vals), len(rows[0]))
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// parseRow splits on single spaces and discards the trailing token.
func parseRow(s string) ([]float64, error) {
	toks := strings.Split(s, valueSep)
	toks = toks[:len(toks)-1]
	if len(toks) == 0 {
		return nil, fmt.Errorf("no values")
	}
	vals := make([]float64, len(toks))
	for i, tok := range toks {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// Plane squeezes singleton axes and transposes, giving an image-ordered
// matrix: rows follow the later remaining axis, columns the earlier one.
// A volume with three non-singleton axes is cut at z = slice first.
func (g *Grid) Plane(slice int) (*mat.Dense, error) {
	dims := [3]int{g.X, g.Y, g.Z}
	var axes []int
	for i, d := range dims {
		if d > 1 {
			axes = append(axes, i)
		}
	}

	switch len(axes) {
	case 0:
		return mat.NewDense(1, 1, []float64{g.data[0]}), nil
	case 1:
		row := make([]float64, len(g.data))
		copy(row, g.data)
		return mat.NewDense(1, len(row), row), nil
	case 2:
		a, b := dims[axes[0]], dims[axes[1]]
		sq := make([]float64, len(g.data))
		copy(sq, g.data)
		return mat.DenseCopyOf(mat.NewDense(a, b, sq).T()), nil
	default:
		if slice >= g.Z {
			return nil, fmt.Errorf("%w: z=%d, depth %d", ErrSliceRange, slice, g.Z)
		}
		xy := mat.NewDense(g.X, g.Y, nil)
		for x := 0; x < g.X; x++ {
			for y := 0; y < g.Y; y++ {
				xy.Set(x, y, g.At(x, y, slice))
			}
		}
		return mat.DenseCopyOf(xy.T()), nil
	}
}

// Range returns the smallest and largest value in the volume.
func (g *Grid) Range() (lo, hi float64) {
	return floats.Min(g.data), floats.Max(g.data)
}

// FrameID derives a zero-padded frame identifier from a field filename
// such as molecule_12 or molecule_00012.
func FrameID(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndex(base, "_"); i >= 0 {
		if n, err := strconv.Atoi(base[i+1:]); err == nil {
			return fmt.Sprintf("%05d", n)
		}
	}
	if len(base) > 5 {
		return base[len(base)-5:]
	}
	return base
}
