package kmeans

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// State is the driver's position in its lifecycle.
type State int

const (
	StateInitializing State = iota
	StateIterating
	StateConverged
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Params holds the clustering parameters supplied by the caller.
type Params struct {
	NClusters     int // Number of clusters, N >= 1
	MaxIterations int // Round budget, >= 1
	Workers       int // Goroutines for the assignment step; <= 1 runs serially
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		NClusters:     5,
		MaxIterations: 20,
		Workers:       1,
	}
}

// Validate checks that p can drive a run.
func (p Params) Validate() error {
	if p.NClusters < 1 {
		return fmt.Errorf("%w: n_clusters must be >= 1, got %d", ErrInvalidConfiguration, p.NClusters)
	}
	if p.MaxIterations < 1 {
		return fmt.Errorf("%w: max_iterations must be >= 1, got %d", ErrInvalidConfiguration, p.MaxIterations)
	}
	return nil
}

// Result is the outcome of a run. Converged and Exhausted runs return the
// same shape; State tells them apart.
type Result struct {
	RunID     string
	Partition Partition
	Centroids CentroidSet
	State     State
	Rounds    int // Assignment rounds executed, including the convergent one
	Duration  time.Duration
}

// Converged reports whether the run stopped on a fixed point.
func (r *Result) Converged() bool {
	return r.State == StateConverged
}

// Run clusters points with Lloyd's algorithm. The initial partition draws
// from rng, so a fixed seed and point set give a fixed result.
// obs may be nil.
func Run(ctx context.Context, points []Point, params Params, rng *rand.Rand, obs Observer) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = NopObserver{}
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString(), State: StateInitializing}
	Opsf("run %s: start points=%d n=%d max_iterations=%d workers=%d",
		res.RunID, len(points), params.NClusters, params.MaxIterations, params.Workers)

	partition, err := AssignRandom(points, params.NClusters, rng)
	if err != nil {
		return nil, err
	}
	centroids := ClusterCentroids(partition)
	obs.Initialized(centroids)
	Tracef("run %s: round 0 centroids=%v", res.RunID, centroids)

	res.State = StateIterating
	for round := 1; round <= params.MaxIterations; round++ {
		if err := ctx.Err(); err != nil {
			Opsf("run %s: cancelled at round %d: %v", res.RunID, round, err)
			return nil, err
		}
		res.Rounds = round

		old := partition
		partition, err = AssignClosestParallel(ctx, points, centroids, params.Workers)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		if partition.Equal(old) {
			res.State = StateConverged
			break
		}

		centroids = ClusterCentroids(partition)
		Tracef("run %s: round %d centroids=%v", res.RunID, round, centroids)
		obs.CentroidsMoved(round, centroids)
	}
	if res.State == StateIterating {
		res.State = StateExhausted
	}

	res.Partition = partition
	res.Centroids = centroids
	res.Duration = time.Since(start)

	Opsf("run %s: %s after %d rounds in %v", res.RunID, res.State, res.Rounds, res.Duration)
	Diagf("run %s: sizes=%v inertia=%.0f", res.RunID, partition.Sizes(), Inertia(partition, centroids))

	obs.Finished(res)
	return res, nil
}
