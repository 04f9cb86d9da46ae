// Package geometry provides basic geometric types used throughout the application.
package geometry

import "image"

// PointInt represents a 2D point with integer pixel coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the sum of two points.
func (p PointInt) Add(other PointInt) PointInt {
	return PointInt{X: p.X + other.X, Y: p.Y + other.Y}
}

// SizeInt represents a 2D size in pixels.
type SizeInt struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectInt represents a rectangle with integer pixel coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// TopLeft returns the top-left corner.
func (r RectInt) TopLeft() PointInt {
	return PointInt{X: r.X, Y: r.Y}
}

// Center returns the center point of the rectangle.
func (r RectInt) Center() PointInt {
	return PointInt{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Shift returns the rectangle translated by the given offset.
func (r RectInt) Shift(offset PointInt) RectInt {
	return RectInt{X: r.X + offset.X, Y: r.Y + offset.Y, Width: r.Width, Height: r.Height}
}

// Within interprets r as relative to the top-left corner of outer and
// returns it in absolute coordinates. Used to place a named field rect
// inside an extracted record row.
func (r RectInt) Within(outer RectInt) RectInt {
	return r.Shift(outer.TopLeft())
}

// Clamp clips the rectangle to a width×height image. The result may be
// empty (zero width or height) if r lies outside the image.
func (r RectInt) Clamp(width, height int) RectInt {
	x0 := max(r.X, 0)
	y0 := max(r.Y, 0)
	x1 := min(r.X+r.Width, width)
	y1 := min(r.Y+r.Height, height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return RectInt{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point is inside the rectangle.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// ToImageRect converts to the stdlib image.Rectangle form used by gocv.
func (r RectInt) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}
