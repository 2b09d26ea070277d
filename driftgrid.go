package driftgrid

import "math"

// Vec2 is a 2D vector used for positions, offsets, velocities, and sizes
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns the component-wise difference of v and other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v with both components multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Inflate returns r expanded by amount on every side. A negative amount
// shrinks the rectangle.
func (r Rect) Inflate(amount float64) Rect {
	return Rect{
		X:      r.X - amount,
		Y:      r.Y - amount,
		Width:  r.Width + 2*amount,
		Height: r.Height + 2*amount,
	}
}

// Coord is a cell address on the unbounded virtual grid. Columns grow to the
// right and rows grow downward; both may be negative.
type Coord struct {
	Col, Row int
}

// Dist returns the distance between c and other under the given metric,
// measured in whole cells.
func (c Coord) Dist(other Coord, metric DistanceMetric) float64 {
	dc := float64(c.Col - other.Col)
	dr := float64(c.Row - other.Row)
	if metric == MetricManhattan {
		return math.Abs(dc) + math.Abs(dr)
	}
	return math.Hypot(dc, dr)
}

// --- Internal helpers ---

// smoothAlpha converts a time constant into a per-step blend factor so that
// exponential smoothing converges at the same rate regardless of step size.
// A non-positive tau snaps immediately.
func smoothAlpha(dt, tau float64) float64 {
	if tau <= 0 {
		return 1
	}
	return 1 - math.Exp(-dt/tau)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampVec limits the length of v to max, preserving direction.
func clampVec(v Vec2, max float64) Vec2 {
	if max <= 0 {
		return Vec2{}
	}
	l := v.Len()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}
