// Package testutil provides shared test fixtures for clustering runs.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/banshee-data/geocluster/internal/fsutil"
	"github.com/banshee-data/geocluster/internal/kmeans"
)

// ClusteredPoints scatters perCentre points uniformly in a spread x spread
// square anchored at each centre.
func ClusteredPoints(rng *rand.Rand, centres []kmeans.Point, perCentre, spread int) []kmeans.Point {
	points := make([]kmeans.Point, 0, len(centres)*perCentre)
	for _, c := range centres {
		for i := 0; i < perCentre; i++ {
			points = append(points, kmeans.Point{X: c.X + rng.Intn(spread), Y: c.Y + rng.Intn(spread)})
		}
	}
	return points
}

// LocationsCSV formats points as a locations file with an ID column
// followed by Easting and Northing.
func LocationsCSV(points []kmeans.Point) string {
	var b strings.Builder
	b.WriteString("FireID,Easting,Northing\n")
	for i, p := range points {
		fmt.Fprintf(&b, "%d,%d,%d\n", i, p.X, p.Y)
	}
	return b.String()
}

// WriteLocations stores points as a locations CSV at path.
func WriteLocations(t *testing.T, fsys fsutil.FileSystem, path string, points []kmeans.Point) {
	t.Helper()
	if err := fsys.WriteFile(path, []byte(LocationsCSV(points)), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
