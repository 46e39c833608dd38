package kmeans

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest slice of points handed to one worker.
const minChunk = 1024

// ClosestIndex returns the index of the centroid nearest to p.
// Ties go to the lowest index because only a strict improvement moves
// the best index.
func ClosestIndex(p Point, centroids CentroidSet) (int, error) {
	if len(centroids) == 0 {
		return -1, fmt.Errorf("%w: empty centroid set", ErrInvalidConfiguration)
	}
	return closestIndex(p, centroids), nil
}

func closestIndex(p Point, centroids CentroidSet) int {
	best := 0
	bestDist := SqDist(p, centroids[0])
	for i := 1; i < len(centroids); i++ {
		if d := SqDist(p, centroids[i]); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// AssignClosest builds a fresh partition with one cluster per centroid and
// places every point in the cluster of its nearest centroid, keeping input
// order within each cluster.
func AssignClosest(points []Point, centroids CentroidSet) (Partition, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("%w: empty centroid set", ErrInvalidConfiguration)
	}
	p := newPartition(len(centroids))
	for _, pt := range points {
		i := closestIndex(pt, centroids)
		p[i] = append(p[i], pt)
	}
	return p, nil
}

// AssignClosestParallel is AssignClosest with the nearest-centroid search
// split across at most workers goroutines. The returned partition is
// identical to the serial one: indices are computed concurrently, then
// clusters are assembled in input order once every worker has finished.
func AssignClosestParallel(ctx context.Context, points []Point, centroids CentroidSet, workers int) (Partition, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("%w: empty centroid set", ErrInvalidConfiguration)
	}
	if workers <= 1 || len(points) < 2*minChunk {
		return AssignClosest(points, centroids)
	}

	chunk := (len(points) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	idx := make([]int, len(points))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(points); start += chunk {
		start := start
		end := min(start+chunk, len(points))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				idx[i] = closestIndex(points[i], centroids)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := newPartition(len(centroids))
	for i, pt := range points {
		p[idx[i]] = append(p[idx[i]], pt)
	}
	return p, nil
}
