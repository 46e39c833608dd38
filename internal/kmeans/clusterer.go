package kmeans

import (
	"context"
	"math/rand"
)

// Clusterer binds Params and a random source so callers can run repeatedly
// and retune between runs.
type Clusterer struct {
	params Params
	rng    *rand.Rand
}

// NewClusterer creates a clusterer seeded with seed.
func NewClusterer(params Params, seed int64) *Clusterer {
	return &Clusterer{
		params: params,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Cluster runs Lloyd's algorithm over points. Successive calls continue
// drawing from the same random source.
func (c *Clusterer) Cluster(ctx context.Context, points []Point, obs Observer) (*Result, error) {
	return Run(ctx, points, c.params, c.rng, obs)
}

// GetParams returns the current clustering parameters.
func (c *Clusterer) GetParams() Params {
	return c.params
}

// SetParams updates the clustering parameters.
func (c *Clusterer) SetParams(params Params) {
	c.params = params
}
