package geom

import (
	"image/color"
	"math"

	"github.com/automoto/skidrift/debug"
	"github.com/automoto/skidrift/shared/gamemath"
	"github.com/google/uuid"
)

var (
	polygonColour  = color.RGBA{50, 50, 255, 255}
	checkboxColour = color.RGBA{50, 255, 255, 255}
)

// Contact is the result of a narrow-phase hit: the touched side of the other
// shape and that shape's friction.
type Contact struct {
	Side     Segment
	Friction float64
}

// OrientedRect is a rotated polygon hitbox with a cached checkbox.
type OrientedRect struct {
	X, Y, Rot float64
	Friction  float64

	ref   []Point
	world []Point
	box   Checkbox
	// degenerate polygons never contact anything.
	degenerate bool

	debugID   uuid.UUID
	debugSink debug.Sink
}

var _ debug.Debuggable = (*OrientedRect)(nil)

// NewOrientedRect builds a hitbox from a local polygon centred on (x, y), at
// rotation 0.
func NewOrientedRect(x, y float64, local []Point, friction float64) *OrientedRect {
	r := &OrientedRect{
		Friction: friction,
		ref:      append([]Point(nil), local...),
		world:    make([]Point, len(local)),
	}
	r.degenerate = isDegenerate(r.ref)
	r.Update(x, y, 0)
	return r
}

// Update moves the hitbox to (x, y) rotated rot degrees clockwise on screen.
// The engine is y-up, so the local points turn by -rot.
func (r *OrientedRect) Update(x, y, rot float64) {
	r.X, r.Y, r.Rot = x, y, rot

	rad := gamemath.Radians(-rot)
	c, s := math.Cos(rad), math.Sin(rad)
	for i, p := range r.ref {
		r.world[i] = Point{
			X: c*p.X - s*p.Y + x,
			Y: s*p.X + c*p.Y + y,
		}
	}
	r.box = BoxOf(r.world)

	if r.debugSink != nil {
		r.debugSink.Set(r.debugID, r.debugLines())
	}
}

// Points returns a copy of the world polygon.
func (r *OrientedRect) Points() []Point {
	return append([]Point(nil), r.world...)
}

// Local returns a copy of the reference polygon.
func (r *OrientedRect) Local() []Point {
	return append([]Point(nil), r.ref...)
}

func (r *OrientedRect) Box() Checkbox {
	return r.box
}

// Segments returns the world sides. Side i joins point i-1 to point i, so the
// closing side comes first.
func (r *OrientedRect) Segments() []Segment {
	n := len(r.world)
	if n < 2 {
		return nil
	}
	out := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Segment{A: r.world[(i+n-1)%n], B: r.world[i]})
	}
	return out
}

// Contacts tests r against other. Checkboxes that do not overlap are
// rejected at once. Otherwise each side of r is tested against each side of
// other in order and the first crossing yields other's side. Callers get the
// first hit in iteration order, not the geometrically closest one.
func (r *OrientedRect) Contacts(other *OrientedRect) (Contact, bool) {
	if r.degenerate || other.degenerate || !r.box.Overlaps(other.box) {
		return Contact{}, false
	}
	mine := r.Segments()
	theirs := other.Segments()
	for _, m := range mine {
		for _, t := range theirs {
			if m.Intersects(t) {
				return Contact{Side: t, Friction: other.Friction}, true
			}
		}
	}
	return Contact{}, false
}

// Degenerate reports whether the polygon has fewer than three points, a
// zero-length side or no area.
func (r *OrientedRect) Degenerate() bool {
	return r.degenerate
}

func isDegenerate(pts []Point) bool {
	n := len(pts)
	if n < 3 {
		return true
	}
	area := 0.0
	for i := 0; i < n; i++ {
		a, b := pts[(i+n-1)%n], pts[i]
		if a == b {
			return true
		}
		area += a.X*b.Y - b.X*a.Y
	}
	return area == 0
}

// DebugEnable attaches the polygon and checkbox outlines to sink.
func (r *OrientedRect) DebugEnable(sink debug.Sink) {
	if r.debugSink != nil {
		return
	}
	r.debugID = uuid.New()
	r.debugSink = sink
	sink.Set(r.debugID, r.debugLines())
}

// DebugDisable removes the outlines from the sink.
func (r *OrientedRect) DebugDisable() {
	if r.debugSink == nil {
		return
	}
	r.debugSink.Clear(r.debugID)
	r.debugSink = nil
}

func (r *OrientedRect) debugLines() []debug.Line {
	lines := outline(r.world, polygonColour)
	return append(lines, outline(r.box.Corners(), checkboxColour)...)
}

func outline(pts []Point, c color.RGBA) []debug.Line {
	n := len(pts)
	lines := make([]debug.Line, 0, n)
	for i := 0; i < n; i++ {
		a, b := pts[(i+n-1)%n], pts[i]
		lines = append(lines, debug.Line{X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y, Colour: c})
	}
	return lines
}
