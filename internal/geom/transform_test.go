package geom

import (
	"math"
	"math/rand"
	"testing"
)

func TestToPixel(t *testing.T) {
	tr := NewTransform(1024, 100, true)

	if tr.Scale != 10.24 {
		t.Fatalf("expected scale 10.24, got %f", tr.Scale)
	}

	tests := []struct {
		sim  float64
		want int
	}{
		{0, 512},
		{10, 614},
		{-10, 409},
		{50, 1024},
		{-50, 0},
		{0.01, 512},
	}
	for _, tt := range tests {
		if got := tr.ToPixel(tt.sim); got != tt.want {
			t.Errorf("ToPixel(%f) = %d, want %d", tt.sim, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, grid := range []int{1, 37, 100, 256, 4096} {
		tr := NewTransform(1024, grid, true)
		for i := 0; i < 200; i++ {
			sim := (rng.Float64() - 0.5) * float64(grid) * 2
			back := tr.ToSim(tr.Apply(sim))
			if math.Abs(back-sim) > 1e-9*math.Max(1, math.Abs(sim)) {
				t.Fatalf("grid %d: round trip %f -> %f", grid, sim, back)
			}
		}
	}
}

func TestRadius(t *testing.T) {
	scaled := NewTransform(1024, 100, true)
	if got := scaled.Radius(5); got != 51 {
		t.Errorf("scaled radius: expected 51, got %d", got)
	}

	raw := NewTransform(1024, 100, false)
	if got := raw.Radius(5.9); got != 5 {
		t.Errorf("unscaled radius: expected 5, got %d", got)
	}
}

func TestInBounds(t *testing.T) {
	tr := NewTransform(100, 100, true)

	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{50, 50, true},
		{-50, -50, true},
		{-50.1, 0, false},
		{0, 50.5, false},
	}
	for _, tt := range tests {
		if got := tr.InBounds(tr.Project(tt.x, tt.y)); got != tt.want {
			t.Errorf("InBounds(%f, %f) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPixel(t *testing.T) {
	x, y := Point{X: 614.4, Y: -0.5}.Pixel()
	if x != 614 || y != -1 {
		t.Errorf("expected (614, -1), got (%d, %d)", x, y)
	}
}

func TestDrawable(t *testing.T) {
	tr := NewTransform(1024, 100, true)

	tests := []struct {
		name string
		x, r float64
		want bool
	}{
		{"centre", 0, 2, true},
		{"off canvas", 5000, 2, true},
		{"nan position", math.NaN(), 2, false},
		{"inf position", math.Inf(-1), 2, false},
		{"far position", 1e12, 2, false},
		{"nan radius", 0, math.NaN(), false},
		{"huge radius", 0, 1e12, false},
	}
	for _, tt := range tests {
		if got := Drawable(tr.Project(tt.x, 0), tr.RadiusF(tt.r)); got != tt.want {
			t.Errorf("%s: Drawable = %v, want %v", tt.name, got, tt.want)
		}
	}
}
