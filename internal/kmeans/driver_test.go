package kmeans

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	initialized int
	moves       []int
	finished    []*Result
}

func (r *recordingObserver) Initialized(CentroidSet) { r.initialized++ }
func (r *recordingObserver) CentroidsMoved(round int, _ CentroidSet) {
	r.moves = append(r.moves, round)
}
func (r *recordingObserver) Finished(res *Result) { r.finished = append(r.finished, res) }

// blobs returns perBlob points scattered tightly around each center.
func blobs(rng *rand.Rand, perBlob int, centers ...Point) []Point {
	var points []Point
	for i := 0; i < perBlob; i++ {
		for _, c := range centers {
			points = append(points, Point{X: c.X + rng.Intn(200) - 100, Y: c.Y + rng.Intn(200) - 100})
		}
	}
	return points
}

func TestRunConverges(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	points := blobs(rng, 25, Point{10_000, 10_000}, Point{90_000, 90_000})

	obs := &recordingObserver{}
	res, err := Run(context.Background(), points, Params{NClusters: 2, MaxIterations: 50}, rand.New(rand.NewSource(1)), obs)
	require.NoError(t, err)

	assert.Equal(t, StateConverged, res.State)
	assert.True(t, res.Converged())
	assert.Len(t, res.Partition, 2)
	assert.Equal(t, len(points), res.Partition.Len())
	assert.ElementsMatch(t, []int{25, 25}, res.Partition.Sizes())
	assert.NotEmpty(t, res.RunID)

	// The convergent round does not notify the observer.
	assert.Equal(t, 1, obs.initialized)
	assert.Len(t, obs.moves, res.Rounds-1)
	require.Len(t, obs.finished, 1)
	assert.Same(t, res, obs.finished[0])
}

func TestRunResultIsFixedPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	points := blobs(rng, 30, Point{0, 0}, Point{50_000, 0}, Point{0, 50_000}, Point{50_000, 50_000})

	res, err := Run(context.Background(), points, Params{NClusters: 4, MaxIterations: 100}, rand.New(rand.NewSource(5)), nil)
	require.NoError(t, err)
	require.Equal(t, StateConverged, res.State)

	assert.Equal(t, ClusterCentroids(res.Partition), res.Centroids)

	// One more round from the final centroids gives the same partition.
	again, err := AssignClosest(points, res.Centroids)
	require.NoError(t, err)
	assert.True(t, again.Equal(res.Partition))
}

func TestRunExhausted(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	points := blobs(rng, 10, Point{0, 0}, Point{50_000, 0}, Point{0, 50_000}, Point{50_000, 50_000})

	obs := &recordingObserver{}
	res, err := Run(context.Background(), points, Params{NClusters: 4, MaxIterations: 1}, rand.New(rand.NewSource(1)), obs)
	require.NoError(t, err)

	assert.Equal(t, StateExhausted, res.State)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, []int{1}, obs.moves)
	assert.Len(t, res.Partition, 4)
	assert.Equal(t, ClusterCentroids(res.Partition), res.Centroids)
}

func TestRunTerminatesWithinBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	points := make([]Point, 300)
	for i := range points {
		points[i] = Point{X: rng.Intn(1000), Y: rng.Intn(1000)}
	}
	for n := 1; n <= 12; n++ {
		for _, budget := range []int{1, 3, 10} {
			res, err := Run(context.Background(), points, Params{NClusters: n, MaxIterations: budget}, rand.New(rand.NewSource(int64(n))), nil)
			require.NoError(t, err)
			assert.LessOrEqual(t, res.Rounds, budget)
			assert.Len(t, res.Partition, n)
			assert.Len(t, res.Centroids, n)
			assert.Equal(t, len(points), res.Partition.Len())
		}
	}
}

func TestRunDeterministicForSeed(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	points := blobs(rng, 20, Point{0, 0}, Point{10_000, 0}, Point{5_000, 9_000})
	params := Params{NClusters: 3, MaxIterations: 30, Workers: 4}

	a, err := Run(context.Background(), points, params, rand.New(rand.NewSource(77)), nil)
	require.NoError(t, err)
	b, err := Run(context.Background(), points, params, rand.New(rand.NewSource(77)), nil)
	require.NoError(t, err)

	assert.True(t, a.Partition.Equal(b.Partition))
	assert.Equal(t, a.Centroids, b.Centroids)
	assert.Equal(t, a.Rounds, b.Rounds)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunEmptyInput(t *testing.T) {
	res, err := Run(context.Background(), nil, Params{NClusters: 3, MaxIterations: 5}, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	assert.Equal(t, StateConverged, res.State)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, CentroidSet{Sentinel, Sentinel, Sentinel}, res.Centroids)
}

func TestRunInvalidParams(t *testing.T) {
	tests := []Params{
		{NClusters: 0, MaxIterations: 5},
		{NClusters: -1, MaxIterations: 5},
		{NClusters: 2, MaxIterations: 0},
	}
	for _, p := range tests {
		_, err := Run(context.Background(), samplePoints(3), p, rand.New(rand.NewSource(1)), nil)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration), "params %+v: %v", p, err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, samplePoints(10), Params{NClusters: 2, MaxIterations: 5}, rand.New(rand.NewSource(1)), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunLogsToStreams(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(LogWriters{Ops: &ops, Diag: &diag, Trace: &trace})
	defer SetLogWriters(LogWriters{})

	_, err := Run(context.Background(), samplePoints(20), Params{NClusters: 2, MaxIterations: 5}, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)

	assert.True(t, strings.Contains(ops.String(), "[kmeans] "))
	assert.Contains(t, ops.String(), "start points=20")
	assert.Contains(t, diag.String(), "inertia=")
	assert.Contains(t, trace.String(), "round 0 centroids=")
}

func TestClusterer(t *testing.T) {
	c := NewClusterer(DefaultParams(), 1)
	assert.Equal(t, 5, c.GetParams().NClusters)

	c.SetParams(Params{NClusters: 2, MaxIterations: 10})
	res, err := c.Cluster(context.Background(), samplePoints(10), nil)
	require.NoError(t, err)
	assert.Len(t, res.Partition, 2)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "converged", StateConverged.String())
	assert.Equal(t, "exhausted", StateExhausted.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestMultiObserverFansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	points := blobs(rand.New(rand.NewSource(5)), 10, Point{0, 0}, Point{50_000, 0})

	res, err := Run(context.Background(), points, Params{NClusters: 2, MaxIterations: 20}, rand.New(rand.NewSource(2)), MultiObserver{a, NopObserver{}, b})
	require.NoError(t, err)

	for _, o := range []*recordingObserver{a, b} {
		assert.Equal(t, 1, o.initialized)
		assert.Len(t, o.moves, len(a.moves))
		require.Len(t, o.finished, 1)
		assert.Same(t, res, o.finished[0])
	}
}
