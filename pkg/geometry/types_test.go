package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectShiftAndWithin(t *testing.T) {
	row := NewRectInt(157, 178, 976, 144)
	field := NewRectInt(120, 0, 856, 144)

	abs := field.Within(row)
	assert.Equal(t, RectInt{X: 277, Y: 178, Width: 856, Height: 144}, abs)

	back := abs.Shift(PointInt{X: -row.X, Y: -row.Y})
	assert.Equal(t, field, back)
}

func TestRectClamp(t *testing.T) {
	r := NewRectInt(-10, -5, 100, 50)
	clamped := r.Clamp(1920, 1080)
	assert.Equal(t, RectInt{X: 0, Y: 0, Width: 90, Height: 45}, clamped)

	// Fully outside collapses to empty.
	outside := NewRectInt(2000, 50, 100, 100).Clamp(1920, 1080)
	assert.True(t, outside.Empty())

	inside := NewRectInt(10, 20, 30, 40).Clamp(1920, 1080)
	assert.Equal(t, NewRectInt(10, 20, 30, 40), inside)
}

func TestRectContains(t *testing.T) {
	r := NewRectInt(10, 10, 20, 20)
	assert.True(t, r.Contains(PointInt{X: 10, Y: 10}))
	assert.True(t, r.Contains(PointInt{X: 29, Y: 29}))
	assert.False(t, r.Contains(PointInt{X: 30, Y: 30}))
}

func TestRectCenter(t *testing.T) {
	r := NewRectInt(0, 0, 10, 10)
	assert.Equal(t, PointInt{X: 5, Y: 5}, r.Center())
}
