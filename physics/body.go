// Package physics integrates a single controllable body against the static
// hitboxes registered with it.
package physics

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/automoto/skidrift/collision"
	"github.com/automoto/skidrift/debug"
	"github.com/automoto/skidrift/shared/gamemath"
	"github.com/automoto/skidrift/shared/geom"
	"github.com/google/uuid"
)

// WrapMargin is how far past an edge a body may travel before it wraps.
const WrapMargin = 5.0

var ErrInvalidMode = errors.New("physics: invalid acceleration mode")

// Mode selects how Accelerate interprets its arguments.
type Mode int

const (
	// Absolute adds world-space acceleration, capped per axis.
	Absolute Mode = iota
	// Relative treats y as forward thrust and x as lateral thrust relative to
	// the body's heading, capped by speed.
	Relative
)

func (m Mode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Config holds the caps and drag factors of a body.
type Config struct {
	MaxXVel   float64
	MaxYVel   float64
	MaxVel    float64
	MaxRotVel float64
	DragX     float64
	DragY     float64
	DragRot   float64
}

var velocityColour = color.RGBA{255, 0, 0, 255}

// Body is a moving hitbox. Rotation is in degrees, clockwise on screen.
type Body struct {
	X, Y, Rot    float64
	VX, VY, VRot float64

	Config Config
	Hitbox *geom.OrientedRect

	// Landed is set when the last ResolveContacts found a contact.
	Landed      bool
	LastContact collision.Hit

	nearby   []*geom.OrientedRect
	detector collision.Detector

	debugID   uuid.UUID
	debugSink debug.Sink
}

var _ debug.Debuggable = (*Body)(nil)

// New creates a body at rest with a hitbox built from local.
func New(x, y float64, local []geom.Point, cfg Config) *Body {
	return &Body{
		X:        x,
		Y:        y,
		Config:   cfg,
		Hitbox:   geom.NewOrientedRect(x, y, local, 1),
		detector: collision.Naive{},
	}
}

// Accelerate changes velocity according to mode.
func (b *Body) Accelerate(x, y float64, mode Mode) error {
	switch mode {
	case Absolute:
		b.VX = gamemath.ClampSpeed(b.VX+x, b.Config.MaxXVel)
		b.VY = gamemath.ClampSpeed(b.VY+y, b.Config.MaxYVel)
	case Relative:
		fwd := gamemath.Radians(b.Rot + 90)
		side := gamemath.Radians(b.Rot)
		vx := b.VX - math.Cos(fwd)*y + math.Cos(side)*x
		vy := b.VY + math.Sin(fwd)*y - math.Sin(side)*x
		b.VX, b.VY = gamemath.ClampMagnitude(vx, vy, b.Config.MaxVel)
	default:
		return fmt.Errorf("accelerate %s: %w", mode, ErrInvalidMode)
	}
	return nil
}

// AccelerateRotation adds a to the rotational velocity, capped at MaxRotVel.
func (b *Body) AccelerateRotation(a float64) {
	b.VRot = gamemath.ClampSpeed(b.VRot+a, b.Config.MaxRotVel)
}

// Integrate advances the body by dt seconds, applies drag and syncs the
// hitbox.
func (b *Body) Integrate(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
	b.Rot += b.VRot * dt

	b.VX = gamemath.ApplyDrag(b.VX, b.Config.DragX)
	b.VY = gamemath.ApplyDrag(b.VY, b.Config.DragY)
	b.VRot = gamemath.ApplyDrag(b.VRot, b.Config.DragRot)

	b.Rot = gamemath.WrapDegrees(b.Rot)
	b.sync()
}

// WrapWithin teleports the body to the opposite edge of a w by h world once
// it strays more than margin outside it.
func (b *Body) WrapWithin(w, h, margin float64) {
	x := gamemath.Wrap(b.X, w, margin)
	y := gamemath.Wrap(b.Y, h, margin)
	if x == b.X && y == b.Y {
		return
	}
	b.X, b.Y = x, y
	b.sync()
}

// Reset puts the body at (x, y) at rest and upright.
func (b *Body) Reset(x, y float64) {
	b.X, b.Y, b.Rot = x, y, 0
	b.VX, b.VY, b.VRot = 0, 0, 0
	b.Landed = false
	b.LastContact = collision.Hit{}
	b.sync()
}

// RegisterNearby adds a static hitbox to the per-tick query set. The body
// never owns it.
func (b *Body) RegisterNearby(hb *geom.OrientedRect) {
	b.nearby = append(b.nearby, hb)
}

// ClearNearby forgets every registered hitbox.
func (b *Body) ClearNearby() {
	b.nearby = b.nearby[:0]
}

// Nearby returns the number of registered hitboxes.
func (b *Body) Nearby() int {
	return len(b.nearby)
}

// UseDetector swaps the contact query. A nil detector restores Naive.
func (b *Body) UseDetector(d collision.Detector) {
	if d == nil {
		d = collision.Naive{}
	}
	b.detector = d
}

// ResolveContacts finds the first contact in registration order. If the
// body is moving into the touched side, its velocity is replaced by the
// slide along that side.
func (b *Body) ResolveContacts() (collision.Hit, bool) {
	hit, ok := b.detector.FirstContact(b.Hitbox, b.nearby)
	b.Landed = ok
	b.LastContact = hit
	if !ok {
		return hit, false
	}
	angle := hit.Side.Angle()
	if FacesInto(angle, b.VX, b.VY) {
		b.VX, b.VY = Slide(b.VX, b.VY, angle, hit.Friction)
	}
	return hit, true
}

// FacesInto reports whether a velocity heads into a side with the given
// angle: angle - π < atan2(vy, vx) < angle, compared modulo a full turn. A
// body at rest faces nothing.
func FacesInto(angle, vx, vy float64) bool {
	if vx == 0 && vy == 0 {
		return false
	}
	d := gamemath.NormalizeRadians(angle - math.Atan2(vy, vx))
	return d > 0 && d < math.Pi
}

// Slide projects (vx, vy) onto the direction of a side and scales it by the
// side's friction.
func Slide(vx, vy, angle, friction float64) (float64, float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	along := vx*c + vy*s
	return along * c * friction, along * s * friction
}

func (b *Body) sync() {
	b.Hitbox.Update(b.X, b.Y, b.Rot)
	if b.debugSink != nil {
		b.debugSink.Set(b.debugID, b.debugLines())
	}
}

// DebugEnable draws the hitbox and the velocity vector.
func (b *Body) DebugEnable(sink debug.Sink) {
	if b.debugSink != nil {
		return
	}
	b.Hitbox.DebugEnable(sink)
	b.debugID = uuid.New()
	b.debugSink = sink
	sink.Set(b.debugID, b.debugLines())
}

func (b *Body) DebugDisable() {
	if b.debugSink == nil {
		return
	}
	b.Hitbox.DebugDisable()
	b.debugSink.Clear(b.debugID)
	b.debugSink = nil
}

func (b *Body) debugLines() []debug.Line {
	return []debug.Line{{
		X0: b.X, Y0: b.Y,
		X1: b.X + b.VX*0.1, Y1: b.Y + b.VY*0.1,
		Colour: velocityColour,
	}}
}
