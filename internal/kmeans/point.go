package kmeans

import "fmt"

// Point is a 2-D integer coordinate pair, typically UTM easting/northing.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Number is the set of coordinate types SqDistOf accepts.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// SqDistOf returns the squared Euclidean distance between (x1,y1) and (x2,y2).
// The result has the same type as the inputs.
func SqDistOf[T Number](x1, y1, x2, y2 T) T {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// SqDist returns the squared Euclidean distance between p1 and p2.
// No square root is taken; ordering of distances is all the assigner needs.
func SqDist(p1, p2 Point) int {
	return SqDistOf(p1.X, p1.Y, p2.X, p2.Y)
}
