// Package math provides float32 vector and matrix types for rendering.
package math

// Vec2 is a 2D vector. Terrain UVs are stored as Vec2.
type Vec2 struct {
	X, Y float32
}
