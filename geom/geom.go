// Package geom provides 3-D vector math for the galaxy point cloud.
//
// Coordinates are float32, matching the snapshot encoding. All functions are
// pure and safe for concurrent use.
package geom

import "math"

// Point is a position in 3-D space (light years).
type Point [3]float32

// X returns the first coordinate.
func (p Point) X() float32 { return p[0] }

// Y returns the second coordinate.
func (p Point) Y() float32 { return p[1] }

// Z returns the third coordinate.
func (p Point) Z() float32 { return p[2] }

// SquaredDistance returns the squared Euclidean distance between a and b.
// Preferred for comparisons: it avoids the sqrt.
func SquaredDistance(a, b Point) float32 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float32 {
	return float32(math.Sqrt(float64(SquaredDistance(a, b))))
}
