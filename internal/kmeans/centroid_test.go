package kmeans

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCentroid(t *testing.T) {
	tests := []struct {
		name string
		in   Cluster
		want Point
	}{
		{"empty is sentinel", Cluster{}, Point{0, 0}},
		{"nil is sentinel", nil, Point{0, 0}},
		{"single", Cluster{{5, 9}}, Point{5, 9}},
		{"exact mean", Cluster{{0, 0}, {4, 8}}, Point{2, 4}},
		{"floor division", Cluster{{1, 1}, {2, 2}}, Point{1, 1}},
		{"floor on negatives", Cluster{{-1, 0}, {-2, 1}}, Point{-2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Centroid(tt.in); got != tt.want {
				t.Errorf("Centroid(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{-6, 2, -3},
		{0, 3, 0},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestClusterCentroids(t *testing.T) {
	p := Partition{
		{{1, 1}, {3, 3}},
		{},
		{{10, 20}},
	}
	want := CentroidSet{{2, 2}, {0, 0}, {10, 20}}
	if diff := cmp.Diff(want, ClusterCentroids(p)); diff != "" {
		t.Errorf("ClusterCentroids mismatch (-want +got):\n%s", diff)
	}
}

// Every centroid of a reassigned partition is the floor mean of its
// members, or the sentinel when the cluster is empty.
func TestClusterCentroidsAreMeans(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := make([]Point, 500)
	for i := range points {
		points[i] = Point{X: rng.Intn(10000), Y: rng.Intn(10000)}
	}

	for n := 1; n <= 8; n++ {
		seed := make(CentroidSet, n)
		for i := range seed {
			seed[i] = Point{X: rng.Intn(10000), Y: rng.Intn(10000)}
		}
		part, err := AssignClosest(points, seed)
		if err != nil {
			t.Fatalf("AssignClosest: %v", err)
		}
		centroids := ClusterCentroids(part)
		if len(centroids) != n {
			t.Fatalf("n=%d: got %d centroids", n, len(centroids))
		}
		for i, c := range part {
			if len(c) == 0 {
				if centroids[i] != Sentinel {
					t.Errorf("n=%d cluster %d empty but centroid %v", n, i, centroids[i])
				}
				continue
			}
			var sx, sy int
			for _, p := range c {
				sx += p.X
				sy += p.Y
			}
			want := Point{sx / len(c), sy / len(c)}
			if centroids[i] != want {
				t.Errorf("n=%d cluster %d centroid = %v, want %v", n, i, centroids[i], want)
			}
		}
	}
}
