package kmeans

// Observer receives progress from Run. Implementations must not retain or
// mutate the slices they are handed beyond the call unless they copy them.
type Observer interface {
	// Initialized is called once with the centroids of the random partition.
	Initialized(centroids CentroidSet)

	// CentroidsMoved is called after each round whose partition changed.
	// It is not called for the round that detects convergence.
	CentroidsMoved(round int, centroids CentroidSet)

	// Finished is called once with the final result.
	Finished(res *Result)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) Initialized(CentroidSet)         {}
func (NopObserver) CentroidsMoved(int, CentroidSet) {}
func (NopObserver) Finished(*Result)                {}

// MultiObserver fans notifications out to each observer in order.
type MultiObserver []Observer

func (m MultiObserver) Initialized(c CentroidSet) {
	for _, o := range m {
		o.Initialized(c)
	}
}

func (m MultiObserver) CentroidsMoved(round int, c CentroidSet) {
	for _, o := range m {
		o.CentroidsMoved(round, c)
	}
}

func (m MultiObserver) Finished(res *Result) {
	for _, o := range m {
		o.Finished(res)
	}
}

var (
	_ Observer = NopObserver{}
	_ Observer = MultiObserver(nil)
)
