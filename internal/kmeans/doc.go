// Package kmeans partitions 2-D points into a fixed number of clusters
// using Lloyd's algorithm.
//
// Responsibilities: squared-distance geometry, random initial partition,
// centroid recomputation, nearest-centroid reassignment and the
// convergence loop that alternates the last two.
// Key types: Point, Cluster, Partition, CentroidSet, Result.
//
// Dependency rule: no file, image or network IO in this package. Callers
// observe progress through the Observer interface.
package kmeans
