// Package render draws clustering runs onto a map of the study area.
//
// MapRenderer implements kmeans.Observer: it follows each centroid as it
// moves between rounds and, once the run finishes, connects every
// centroid to the points of its cluster. Output is a PNG (gonum/plot)
// and an optional interactive HTML scatter (go-echarts).
package render
