package kmeans

import (
	"fmt"
	"math/rand"
)

// AssignRandom places each point into one of n clusters chosen uniformly
// at random from rng. Point order is preserved within each cluster and
// some clusters may be empty.
func AssignRandom(points []Point, n int, rng *rand.Rand) (Partition, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one cluster, got %d", ErrInvalidConfiguration, n)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfiguration)
	}

	p := newPartition(n)
	for _, pt := range points {
		choice := rng.Intn(n)
		p[choice] = append(p[choice], pt)
	}
	return p, nil
}
