package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// SimConfig is the positional config.txt written by the simulator:
//
//	line 1  grid width
//	line 2  grid height
//	line 3  step count (optional)
//	line 4  minutes per output file (optional)
type SimConfig struct {
	GridWidth       int     `json:"grid_width"`
	GridHeight      int     `json:"grid_height"`
	StepCount       int     `json:"step_count,omitempty"`
	MinutesPerFrame float64 `json:"minutes_per_frame,omitempty"`
}

func LoadSimConfig(path string) (SimConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return SimConfig{}, err
	}
	defer f.Close()

	cfg, err := ParseSimConfig(f)
	if err != nil {
		return SimConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseSimConfig(r io.Reader) (SimConfig, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return SimConfig{}, err
	}

	var cfg SimConfig
	var err error

	if cfg.GridWidth, err = intLine(lines, 0, "grid width"); err != nil {
		return SimConfig{}, err
	}
	if cfg.GridHeight, err = intLine(lines, 1, "grid height"); err != nil {
		return SimConfig{}, err
	}
	if cfg.GridWidth <= 0 || cfg.GridHeight <= 0 {
		return SimConfig{}, fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, cfg.GridWidth, cfg.GridHeight)
	}

	if len(lines) > 2 && lines[2] != "" {
		if cfg.StepCount, err = intLine(lines, 2, "step count"); err != nil {
			return SimConfig{}, err
		}
	}
	if len(lines) > 3 && lines[3] != "" {
		cfg.MinutesPerFrame, err = strconv.ParseFloat(lines[3], 64)
		if err != nil {
			return SimConfig{}, fmt.Errorf("%w: line 4 (minutes per frame): %v", ErrMalformedConfig, err)
		}
	}

	return cfg, nil
}

// FrameSeconds is the simulated time between two consecutive snapshots.
func (c SimConfig) FrameSeconds() float64 {
	return c.MinutesPerFrame * 60
}

func intLine(lines []string, idx int, name string) (int, error) {
	if idx >= len(lines) {
		return 0, fmt.Errorf("%w: line %d (%s) missing", ErrMalformedConfig, idx+1, name)
	}
	v, err := strconv.Atoi(lines[idx])
	if err != nil {
		return 0, fmt.Errorf("%w: line %d (%s): %v", ErrMalformedConfig, idx+1, name, err)
	}
	return v, nil
}
