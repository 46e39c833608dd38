package kmeans

import "errors"

// ErrInvalidConfiguration is returned when the cluster count or iteration
// budget cannot produce a partition, e.g. N < 1 or an empty centroid set.
var ErrInvalidConfiguration = errors.New("invalid clustering configuration")
