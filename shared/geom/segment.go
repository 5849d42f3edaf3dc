// Package geom provides the collision primitives: points, segments, the
// axis-aligned checkbox and the oriented rectangle hitbox.
// It has no dependencies on ebitengine or donburi.
package geom

import (
	"math"

	"github.com/automoto/skidrift/shared/gamemath"
)

type Point struct {
	X, Y float64
}

// Segment is a boundary side of a polygon.
type Segment struct {
	A, B Point
}

// Len returns the segment length.
func (s Segment) Len() float64 {
	return math.Hypot(s.B.X-s.A.X, s.B.Y-s.A.Y)
}

// Degenerate reports whether both endpoints coincide.
func (s Segment) Degenerate() bool {
	return s.A == s.B
}

// Angle returns the side's orientation in [0, 2π). The segment is read from
// its left endpoint to its right one, so swapping A and B gives the same angle.
// Vertical segments always point up.
func (s Segment) Angle() float64 {
	dx := s.B.X - s.A.X
	dy := s.B.Y - s.A.Y
	switch {
	case dx < 0:
		dy = -dy
	case dx == 0:
		dy = math.Abs(dy)
	}
	return gamemath.NormalizeRadians(math.Atan2(dy, math.Abs(dx)))
}

// Intersects reports whether s and o cross, using the counter-clockwise
// orientation test. Touching collinear segments do not count.
func (s Segment) Intersects(o Segment) bool {
	if s.Degenerate() || o.Degenerate() {
		return false
	}
	return ccw(s.A, o.A, o.B) != ccw(s.B, o.A, o.B) &&
		ccw(s.A, s.B, o.A) != ccw(s.A, s.B, o.B)
}

// ccw reports whether p1, p2, p3 wind counter-clockwise.
func ccw(p1, p2, p3 Point) bool {
	return (p3.Y-p1.Y)*(p2.X-p1.X) > (p2.Y-p1.Y)*(p3.X-p1.X)
}
