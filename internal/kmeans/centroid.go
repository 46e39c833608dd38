package kmeans

// Sentinel is the centroid reported for an empty cluster.
// A real point at (0,0) is indistinguishable from it.
var Sentinel = Point{}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Centroid returns the mean position of c using floor division per axis.
// An empty cluster yields Sentinel.
func Centroid(c Cluster) Point {
	if len(c) == 0 {
		return Sentinel
	}
	var sumX, sumY int
	for _, p := range c {
		sumX += p.X
		sumY += p.Y
	}
	return Point{X: floorDiv(sumX, len(c)), Y: floorDiv(sumY, len(c))}
}

// ClusterCentroids returns one centroid per cluster of p, empty clusters
// included.
func ClusterCentroids(p Partition) CentroidSet {
	centroids := make(CentroidSet, len(p))
	for i, c := range p {
		centroids[i] = Centroid(c)
	}
	return centroids
}
