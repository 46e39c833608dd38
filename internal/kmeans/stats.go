package kmeans

import "gonum.org/v1/gonum/floats"

// Inertia returns the sum of squared distances from each point to the
// centroid of its cluster. Lower is tighter.
func Inertia(p Partition, centroids CentroidSet) float64 {
	perCluster := make([]float64, len(p))
	for i, c := range p {
		if i >= len(centroids) {
			break
		}
		dists := make([]float64, len(c))
		for j, pt := range c {
			dists[j] = float64(SqDist(pt, centroids[i]))
		}
		perCluster[i] = floats.Sum(dists)
	}
	return floats.Sum(perCluster)
}
