package kmeans

// Cluster holds the points currently assigned to one centroid slot,
// in input order.
type Cluster []Point

// Partition is an ordered sequence of clusters, index-aligned with a
// CentroidSet. Every input point appears in exactly one cluster.
type Partition []Cluster

// CentroidSet holds one centroid per cluster index.
type CentroidSet []Point

// newPartition returns a partition of n empty clusters.
func newPartition(n int) Partition {
	p := make(Partition, n)
	for i := range p {
		p[i] = Cluster{}
	}
	return p
}

// Equal reports whether p and other hold the same points in the same
// clusters. Comparison is by value over the full nested sequence.
func (p Partition) Equal(other Partition) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if len(p[i]) != len(other[i]) {
			return false
		}
		for j := range p[i] {
			if p[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Len returns the total number of points across all clusters.
func (p Partition) Len() int {
	n := 0
	for _, c := range p {
		n += len(c)
	}
	return n
}

// Sizes returns the number of points in each cluster.
func (p Partition) Sizes() []int {
	sizes := make([]int, len(p))
	for i, c := range p {
		sizes[i] = len(c)
	}
	return sizes
}
