// Package common contains shared data available for all systems.
package common

// Point defines a single map coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zone defines a rectangle on the vacuum map.
// Corner order follows the service schema: x1, y2, x2, y1.
type Zone struct {
	X1 float64
	Y2 float64
	X2 float64
	Y1 float64
}
