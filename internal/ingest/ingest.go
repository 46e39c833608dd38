// Package ingest reads point locations from CSV and keeps those inside
// the study area.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/geocluster/internal/fsutil"
	"github.com/banshee-data/geocluster/internal/kmeans"
)

// Column names looked up in the CSV header.
const (
	EastingColumn  = "Easting"
	NorthingColumn = "Northing"
)

// Bounds is the study area in UTM metres. Every edge is inclusive.
type Bounds struct {
	OriginEasting  int
	OriginNorthing int
	ExtentEasting  int
	ExtentNorthing int
}

// Contains reports whether (easting, northing) lies within b.
func (b Bounds) Contains(easting, northing int) bool {
	return easting >= b.OriginEasting && easting <= b.ExtentEasting &&
		northing >= b.OriginNorthing && northing <= b.ExtentNorthing
}

// Validate checks that the origin is not past the extent.
func (b Bounds) Validate() error {
	if b.OriginEasting > b.ExtentEasting {
		return fmt.Errorf("origin easting %d exceeds extent easting %d", b.OriginEasting, b.ExtentEasting)
	}
	if b.OriginNorthing > b.ExtentNorthing {
		return fmt.Errorf("origin northing %d exceeds extent northing %d", b.OriginNorthing, b.ExtentNorthing)
	}
	return nil
}

// Stats counts what ReadPoints saw.
type Stats struct {
	Rows     int // Data rows read, header excluded
	Kept     int
	Filtered int // Rows outside Bounds
}

// ReadPoints parses CSV from r and returns the (easting, northing) pairs that
// fall within b, in file order. The first row is a header naming the
// Easting and Northing columns; other columns are ignored.
func ReadPoints(r io.Reader, b Bounds) ([]kmeans.Point, Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, fmt.Errorf("missing CSV header")
		}
		return nil, stats, fmt.Errorf("failed to read CSV header: %w", err)
	}
	eCol, nCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case EastingColumn:
			eCol = i
		case NorthingColumn:
			nCol = i
		}
	}
	if eCol < 0 || nCol < 0 {
		return nil, stats, fmt.Errorf("CSV header must contain %q and %q columns, got %v", EastingColumn, NorthingColumn, header)
	}

	var points []kmeans.Point
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read CSV: %w", err)
		}
		stats.Rows++
		line, _ := reader.FieldPos(0)

		if eCol >= len(record) || nCol >= len(record) {
			return nil, stats, fmt.Errorf("line %d: expected at least %d fields, got %d", line, max(eCol, nCol)+1, len(record))
		}
		easting, err := strconv.Atoi(strings.TrimSpace(record[eCol]))
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: invalid %s %q: %w", line, EastingColumn, record[eCol], err)
		}
		northing, err := strconv.Atoi(strings.TrimSpace(record[nCol]))
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: invalid %s %q: %w", line, NorthingColumn, record[nCol], err)
		}

		if !b.Contains(easting, northing) {
			stats.Filtered++
			continue
		}
		points = append(points, kmeans.Point{X: easting, Y: northing})
		stats.Kept++
	}
	return points, stats, nil
}

// LoadPoints opens path on fsys and reads it with ReadPoints.
func LoadPoints(fsys fsutil.FileSystem, path string, b Bounds) ([]kmeans.Point, Stats, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open point data: %w", err)
	}
	defer f.Close()

	points, stats, err := ReadPoints(f, b)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	return points, stats, nil
}
