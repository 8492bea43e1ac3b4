package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column layout of a snapshot line:
//
//	ID  type  X  Y  Z  Vx  Vy  Vz  R  N_contact  Contact_IDs
const (
	colID = iota
	colType
	colX
	colY
	colZ
	colVX
	colVY
	colVZ
	colRadius
	colContacts
	colAdjacency

	minFields = colRadius + 1
)

// NoAdjacency is the placeholder the simulator writes for an empty
// contact list.
const NoAdjacency = "_"

// FrameIDLen is how many trailing characters of a snapshot filename form
// its frame identifier (a zero-padded step number).
const FrameIDLen = 5

type Vec3 struct {
	X, Y, Z float64
}

type Record struct {
	ID        int
	Kind      Kind
	Pos       Vec3
	Vel       Vec3
	Radius    float64
	Contacts  int
	Adjacency []int
}

// ParseFile reads one snapshot file.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Parse splits the text on newlines, discards the header line and the
// trailing element, and maps each remaining line onto a Record.
func Parse(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) <= 2 {
		return []Record{}, nil
	}
	body := lines[1 : len(lines)-1]

	recs := make([]Record, 0, len(body))
	for i, line := range body {
		rec, err := parseLine(strings.TrimSuffix(line, "\r"))
		if err != nil {
			err.Line = i + 2
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseLine(line string) (Record, *RecordError) {
	fields := strings.Split(line, "\t")
	if len(fields) < minFields {
		return Record{}, &RecordError{Err: fmt.Errorf("expected at least %d fields, got %d", minFields, len(fields))}
	}

	var rec Record
	var err error

	if rec.ID, err = strconv.Atoi(strings.TrimSpace(fields[colID])); err != nil {
		return Record{}, &RecordError{Field: "id", Err: err}
	}
	if rec.Kind, err = ParseKind(fields[colType]); err != nil {
		return Record{}, &RecordError{Field: "type", Err: err}
	}

	floats := []struct {
		name string
		col  int
		dst  *float64
	}{
		{"x", colX, &rec.Pos.X},
		{"y", colY, &rec.Pos.Y},
		{"z", colZ, &rec.Pos.Z},
		{"vx", colVX, &rec.Vel.X},
		{"vy", colVY, &rec.Vel.Y},
		{"vz", colVZ, &rec.Vel.Z},
		{"r", colRadius, &rec.Radius},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(strings.TrimSpace(fields[f.col]), 64); err != nil {
			return Record{}, &RecordError{Field: f.name, Err: err}
		}
	}

	if len(fields) > colContacts {
		if s := strings.TrimSpace(fields[colContacts]); s != "" {
			if rec.Contacts, err = strconv.Atoi(s); err != nil {
				return Record{}, &RecordError{Field: "n_contact", Err: err}
			}
		}
	}

	if len(fields) > colAdjacency {
		if rec.Adjacency, err = parseAdjacency(fields[colAdjacency:]); err != nil {
			return Record{}, &RecordError{Field: "contact_ids", Err: err}
		}
	}

	return rec, nil
}

func parseAdjacency(fields []string) ([]int, error) {
	var ids []int
	for _, field := range fields {
		for _, tok := range strings.Split(field, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" || tok == NoAdjacency {
				continue
			}
			id, err := strconv.Atoi(tok)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// FrameID returns the frame identifier embedded in a snapshot filename.
func FrameID(path string) string {
	base := filepath.Base(path)
	if len(base) <= FrameIDLen {
		return base
	}
	return base[len(base)-FrameIDLen:]
}
