package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/cellrender/internal/config"
)

const (
	ManifestFile = "render.json"
	StatsFile    = "stats.csv"
)

// Store keeps the record of a render run next to its images.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type Manifest struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Preset    string           `json:"preset,omitempty"`
	Sim       config.SimConfig `json:"sim"`
	Settings  config.Settings  `json:"settings"`
	Snapshots []string         `json:"snapshots"`
	Fields    []string         `json:"fields,omitempty"`
	Frames    int              `json:"frames"`
	Anomalies int              `json:"anomalies"`
	Video     *VideoInfo       `json:"video,omitempty"`
}

type VideoInfo struct {
	Path      string  `json:"path"`
	Encoder   string  `json:"encoder"`
	Frames    int     `json:"frames"`
	FPS       float64 `json:"fps"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Truncated bool    `json:"truncated"`
}

// FrameStats is one row of stats.csv.
type FrameStats struct {
	Frame     string  `csv:"frame" json:"frame"`
	Step      int     `csv:"step" json:"step"`
	Minutes   float64 `csv:"minutes" json:"minutes"`
	Entities  int     `csv:"entities" json:"entities"`
	Drawn     int     `csv:"drawn" json:"drawn"`
	Hidden    int     `csv:"hidden" json:"hidden"`
	Workers   int     `csv:"workers" json:"workers"`
	Dead      int     `csv:"dead" json:"dead"`
	Edges     int     `csv:"edges" json:"edges"`
	Anomalies int     `csv:"anomalies" json:"anomalies"`
	Image     string  `csv:"image" json:"image"`
}

// NewRunID names a run by the time it started.
func NewRunID(now time.Time) string {
	return fmt.Sprintf("render_%d", now.Unix())
}

// Save writes the manifest and the per-frame stats. An empty ID or
// timestamp is filled in.
func (s *Store) Save(m *Manifest, stats []FrameStats) error {
	if err := s.Init(); err != nil {
		return err
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	if m.ID == "" {
		m.ID = NewRunID(m.Timestamp)
	}

	if err := s.SaveManifest(m); err != nil {
		return err
	}
	return WriteStats(filepath.Join(s.baseDir, StatsFile), stats)
}

func (s *Store) SaveManifest(m *Manifest) error {
	metaFile, err := os.Create(filepath.Join(s.baseDir, ManifestFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func (s *Store) Load() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, ManifestFile))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}
	return &m, nil
}

func (s *Store) LoadStats() ([]FrameStats, error) {
	return ReadStats(filepath.Join(s.baseDir, StatsFile))
}

// WriteStats writes rows with a header line, replacing path.
func WriteStats(path string, stats []FrameStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if stats == nil {
		stats = []FrameStats{}
	}
	if err := gocsv.Marshal(stats, f); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

func ReadStats(path string) ([]FrameStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var stats []FrameStats
	if err := gocsv.UnmarshalFile(f, &stats); err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}
	return stats, nil
}
