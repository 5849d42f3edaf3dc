package particles

import "image/color"

// Option changes an emitter parameter. The same options configure a new
// emitter and retune a live one.
type Option func(e *Emitter)

// WithMaxParticles caps the number of live particles.
func WithMaxParticles(n int) Option {
	return func(e *Emitter) { e.MaxParticles = n }
}

// WithRate sets the emission rate in particles per second.
func WithRate(rate float64) Option {
	return func(e *Emitter) {
		e.Rate = rate
		e.ramp = nil
	}
}

// WithDirection sets the emission direction in degrees.
func WithDirection(deg float64) Option {
	return func(e *Emitter) { e.Direction = deg }
}

// WithSpread sets the emission cone width in degrees.
func WithSpread(deg float64) Option {
	return func(e *Emitter) { e.Spread = deg }
}

// WithSpeed sets the initial particle speed and its random range.
func WithSpeed(v, rand float64) Option {
	return func(e *Emitter) { e.Template.Speed, e.Template.SpeedRand = v, rand }
}

// WithRotVel sets the particle rotational velocity in degrees per second.
func WithRotVel(v, rand float64) Option {
	return func(e *Emitter) { e.Template.RotVel, e.Template.RotVelRand = v, rand }
}

func WithSize(v, rand float64) Option {
	return func(e *Emitter) { e.Template.Size, e.Template.SizeRand = v, rand }
}

// WithLifetime sets the particle lifetime in seconds.
func WithLifetime(v, rand float64) Option {
	return func(e *Emitter) { e.Template.Lifetime, e.Template.LifetimeRand = v, rand }
}

// WithDrag sets the per-tick velocity factor of new particles.
func WithDrag(v, rand float64) Option {
	return func(e *Emitter) { e.Template.Drag, e.Template.DragRand = v, rand }
}

func WithColour(c color.RGBA) Option {
	return func(e *Emitter) { e.Template.Colour = c }
}

// WithSeed reseeds the emitter's random source.
func WithSeed(seed1, seed2 uint64) Option {
	return func(e *Emitter) { e.seed(seed1, seed2) }
}
