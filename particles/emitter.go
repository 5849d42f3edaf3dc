// Package particles implements point emitters: a rate-limited spawn schedule
// with randomised particle parameters and a per-tick lifecycle.
package particles

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/automoto/skidrift/debug"
	"github.com/automoto/skidrift/shared/gamemath"
	"github.com/google/uuid"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Defaults used when an emitter attribute is not given.
const (
	DefaultMaxParticles = 10
	DefaultRate         = 1.0
	DefaultDirection    = 0.0
	DefaultSpread       = 360.0
	DefaultSpeed        = 10.0
	DefaultSize         = 10.0
	DefaultDrag         = 1.0
	DefaultLifetime     = 1.0
)

// DefaultColour is the particle tint when none is set.
var DefaultColour = color.RGBA{255, 255, 255, 255}

var (
	coneColour      = color.RGBA{50, 50, 255, 255}
	directionColour = color.RGBA{255, 0, 0, 255}
	headingColour   = color.RGBA{0, 255, 0, 255}
	motionColour    = color.RGBA{255, 0, 0, 255}
)

// Template holds the nominal particle parameters. Each value with a Rand
// counterpart is drawn from [v - rand/2, v + rand/2] at spawn.
type Template struct {
	Speed, SpeedRand       float64
	RotVel, RotVelRand     float64
	Size, SizeRand         float64
	Lifetime, LifetimeRand float64
	Drag, DragRand         float64
	Colour                 color.RGBA
}

// Particle is a single live particle owned by its emitter.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Rot      float64
	VRot     float64
	Drag     float64
	Size     float64
	Age      float64
	Lifetime float64
	Colour   color.RGBA
}

// Expired reports whether the particle has outlived its lifetime.
func (p *Particle) Expired() bool {
	return p.Age >= p.Lifetime
}

// Emitter spawns particles from a point. Direction and Spread are in
// degrees, Rate in particles per second.
type Emitter struct {
	X, Y         float64
	Direction    float64
	Spread       float64
	Rate         float64
	MaxParticles int
	Template     Template

	particles []Particle
	sinceEmit float64
	rng       *rand.Rand
	ramp      *gween.Tween

	debugID   uuid.UUID
	debugSink debug.Sink
}

var _ debug.Debuggable = (*Emitter)(nil)

// NewEmitter creates an emitter at (x, y) with default parameters, then
// applies opts.
func NewEmitter(x, y float64, opts ...Option) *Emitter {
	e := &Emitter{
		X:            x,
		Y:            y,
		Direction:    DefaultDirection,
		Spread:       DefaultSpread,
		Rate:         DefaultRate,
		MaxParticles: DefaultMaxParticles,
		Template: Template{
			Speed:    DefaultSpeed,
			Size:     DefaultSize,
			Drag:     DefaultDrag,
			Lifetime: DefaultLifetime,
			Colour:   DefaultColour,
		},
	}
	e.seed(rand.Uint64(), rand.Uint64())
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Emitter) seed(seed1, seed2 uint64) {
	e.rng = rand.New(rand.NewPCG(seed1, seed2))
}

// Tick advances the emitter by dt seconds. At most one particle spawns per
// tick, so a long stall never produces a burst.
func (e *Emitter) Tick(dt float64) {
	if e.ramp != nil {
		rate, done := e.ramp.Update(float32(dt))
		e.Rate = float64(rate)
		if done {
			e.ramp = nil
		}
	}

	e.sinceEmit += dt
	if e.Rate > 0 && e.sinceEmit >= 1/e.Rate && len(e.particles) < e.MaxParticles {
		e.particles = append(e.particles, e.spawn())
		e.sinceEmit = 0
	}

	// Compact in place: the write index never passes the read index.
	live := e.particles[:0]
	for i := range e.particles {
		p := e.particles[i]
		p.Age += dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Rot += p.VRot * dt
		p.VX *= p.Drag
		p.VY *= p.Drag
		if p.Expired() {
			continue
		}
		live = append(live, p)
	}
	clear(e.particles[len(live):])
	e.particles = live

	if e.debugSink != nil {
		e.debugSink.Set(e.debugID, e.debugLines())
	}
}

func (e *Emitter) spawn() Particle {
	t := e.Template
	theta := gamemath.Radians(gamemath.Jitter(e.rng, e.Direction, e.Spread))
	speed := gamemath.Jitter(e.rng, t.Speed, t.SpeedRand)
	return Particle{
		X:        e.X,
		Y:        e.Y,
		VX:       math.Cos(theta) * speed,
		VY:       -math.Sin(theta) * speed,
		VRot:     gamemath.Jitter(e.rng, t.RotVel, t.RotVelRand),
		Drag:     gamemath.Jitter(e.rng, t.Drag, t.DragRand),
		Size:     gamemath.Jitter(e.rng, t.Size, t.SizeRand),
		Lifetime: gamemath.Jitter(e.rng, t.Lifetime, t.LifetimeRand),
		Colour:   t.Colour,
	}
}

// SetPosition moves the spawn point. Live particles keep their course.
func (e *Emitter) SetPosition(x, y float64) {
	e.X, e.Y = x, y
}

// SetDirection turns the emission cone.
func (e *Emitter) SetDirection(deg float64) {
	e.Direction = deg
}

// SetIntensity retunes the emitter without touching live particles.
func (e *Emitter) SetIntensity(opts ...Option) {
	for _, opt := range opts {
		opt(e)
	}
}

// RampRate eases the emission rate to target over the given seconds. A
// later WithRate cancels the ramp.
func (e *Emitter) RampRate(target, seconds float64) {
	if seconds <= 0 {
		e.Rate = target
		e.ramp = nil
		return
	}
	e.ramp = gween.New(float32(e.Rate), float32(target), float32(seconds), ease.Linear)
}

// Ramping reports whether a rate ramp is in progress.
func (e *Emitter) Ramping() bool {
	return e.ramp != nil
}

func (e *Emitter) Count() int {
	return len(e.particles)
}

// Particles returns a copy of the live particles.
func (e *Emitter) Particles() []Particle {
	return append([]Particle(nil), e.particles...)
}

// Release drops every live particle and detaches the debug overlay.
func (e *Emitter) Release() {
	e.DebugDisable()
	clear(e.particles)
	e.particles = e.particles[:0]
	e.sinceEmit = 0
	e.ramp = nil
}

// DebugEnable draws the direction, the spread cone and every particle's
// heading and velocity.
func (e *Emitter) DebugEnable(sink debug.Sink) {
	if e.debugSink != nil {
		return
	}
	e.debugID = uuid.New()
	e.debugSink = sink
	sink.Set(e.debugID, e.debugLines())
}

func (e *Emitter) DebugDisable() {
	if e.debugSink == nil {
		return
	}
	e.debugSink.Clear(e.debugID)
	e.debugSink = nil
}

func (e *Emitter) debugLines() []debug.Line {
	reach := e.Template.Speed * e.Template.Lifetime
	ray := func(deg float64, c color.RGBA) debug.Line {
		r := gamemath.Radians(deg)
		return debug.Line{
			X0: e.X, Y0: e.Y,
			X1: e.X + math.Cos(r)*reach, Y1: e.Y - math.Sin(r)*reach,
			Colour: c,
		}
	}

	lines := make([]debug.Line, 0, 3+2*len(e.particles))
	lines = append(lines,
		ray(e.Direction-e.Spread/2, coneColour),
		ray(e.Direction+e.Spread/2, coneColour),
		ray(e.Direction, directionColour),
	)
	for _, p := range e.particles {
		r := gamemath.Radians(p.Rot)
		lines = append(lines,
			debug.Line{X0: p.X, Y0: p.Y, X1: p.X + math.Cos(r)*30, Y1: p.Y - math.Sin(r)*30, Colour: headingColour},
			debug.Line{X0: p.X, Y0: p.Y, X1: p.X + p.VX*0.1, Y1: p.Y + p.VY*0.1, Colour: motionColour},
		)
	}
	return lines
}
