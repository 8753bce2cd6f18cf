// Package core provides the simulation core of the endless runner.
// It streams pooled ground segments ahead of the player, recycles them once
// they scroll off-screen and reacts to terminal player events.
// This package is host-agnostic and deterministic for a given seed.
package core

import "math"

// Vec2 is a point or offset in world space.
// X grows to the right (scroll axis), Y grows upward.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// ViewportPoint is a world point projected into normalized viewport space.
// X and Y are in [0, 1] when visible; Z < 0 means behind the viewing plane.
type ViewportPoint struct {
	X, Y, Z float64
}

// Viewport projects world points into normalized viewport space.
// Hosts with a real camera supply their own implementation.
type Viewport interface {
	WorldToViewport(p Vec2) ViewportPoint
}

// ViewportFunc adapts a plain function to the Viewport interface.
type ViewportFunc func(p Vec2) ViewportPoint

// WorldToViewport implements Viewport.
func (f ViewportFunc) WorldToViewport(p Vec2) ViewportPoint {
	return f(p)
}

// OrthoCamera is a fixed orthographic camera looking at a world rectangle.
type OrthoCamera struct {
	Origin Vec2    // World position of the bottom-left corner
	Width  float64 // Visible world width
	Height float64 // Visible world height
}

// WorldToViewport implements Viewport. Z is always 1 (in front of the camera).
func (c OrthoCamera) WorldToViewport(p Vec2) ViewportPoint {
	vp := ViewportPoint{Z: 1}
	if c.Width > 0 {
		vp.X = (p.X - c.Origin.X) / c.Width
	}
	if c.Height > 0 {
		vp.Y = (p.Y - c.Origin.Y) / c.Height
	}
	return vp
}

// IsOffScreen reports whether a projected point lies outside
// [0-margin, 1+margin] on either axis or behind the viewing plane.
func IsOffScreen(vp ViewportPoint, margin float64) bool {
	if vp.Z < 0 {
		return true
	}
	return vp.X < 0-margin || vp.X > 1+margin ||
		vp.Y < 0-margin || vp.Y > 1+margin
}
