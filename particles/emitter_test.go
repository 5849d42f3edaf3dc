package particles

import (
	"math"
	"testing"

	"github.com/automoto/skidrift/debug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

func TestNewEmitterDefaults(t *testing.T) {
	e := NewEmitter(3, 4)
	assert.Equal(t, 10, e.MaxParticles)
	assert.Equal(t, 1.0, e.Rate)
	assert.Equal(t, 0.0, e.Direction)
	assert.Equal(t, 360.0, e.Spread)
	assert.Equal(t, Template{Speed: 10, Size: 10, Drag: 1, Lifetime: 1, Colour: DefaultColour}, e.Template)
	assert.Zero(t, e.Count())
}

func TestMaxParticlesNeverExceeded(t *testing.T) {
	cases := []struct {
		name string
		dts  []float64
	}{
		{"steady", repeat(tick, 2000)},
		{"stalls", []float64{5, 5, 5, 10, 100, 0.001, 50, 50, 50, 50, 50, 50}},
		{"mixed", append(repeat(0.5, 40), repeat(1e-4, 40)...)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := NewEmitter(0, 0, WithMaxParticles(4), WithRate(30), WithLifetime(1e6, 0), WithSeed(1, 2))
			for _, dt := range c.dts {
				e.Tick(dt)
				require.LessOrEqual(t, e.Count(), 4)
			}
		})
	}
}

func TestStallSpawnsOnce(t *testing.T) {
	e := NewEmitter(0, 0, WithRate(10), WithLifetime(1000, 0), WithSeed(1, 2))
	e.Tick(60)
	assert.Equal(t, 1, e.Count())
	e.Tick(tick)
	assert.Equal(t, 1, e.Count())
}

func TestSpawnRateLimited(t *testing.T) {
	e := NewEmitter(0, 0, WithRate(2), WithMaxParticles(100), WithLifetime(1000, 0), WithSeed(1, 2))
	for i := 0; i < 60; i++ {
		e.Tick(0.125)
	}
	// One spawn every fourth tick, when the accumulator reaches half a second.
	assert.Equal(t, 15, e.Count())
}

func TestZeroRateNeverSpawns(t *testing.T) {
	e := NewEmitter(0, 0, WithRate(0))
	e.Tick(100)
	assert.Zero(t, e.Count())
}

func TestSpawnRandomisationBounds(t *testing.T) {
	e := NewEmitter(100, 50,
		WithRate(1e6),
		WithMaxParticles(1<<20),
		WithDirection(90), WithSpread(40),
		WithSpeed(20, 10),
		WithRotVel(30, 20),
		WithSize(8, 4),
		WithLifetime(1000, 200),
		WithDrag(1, 0),
		WithSeed(9, 9),
	)
	for i := 0; i < 500; i++ {
		e.Tick(1e-6)
	}
	ps := e.Particles()
	require.Len(t, ps, 500)
	for _, p := range ps {
		speed := math.Hypot(p.VX, p.VY)
		assert.GreaterOrEqual(t, speed, 15-1e-9)
		assert.LessOrEqual(t, speed, 25+1e-9)

		// Direction 90 with y inverted points down the screen.
		deg := math.Atan2(-p.VY, p.VX) * 180 / math.Pi
		assert.GreaterOrEqual(t, deg, 70-1e-6)
		assert.LessOrEqual(t, deg, 110+1e-6)

		assert.GreaterOrEqual(t, p.VRot, 20.0)
		assert.LessOrEqual(t, p.VRot, 40.0)
		assert.GreaterOrEqual(t, p.Size, 6.0)
		assert.LessOrEqual(t, p.Size, 10.0)
		assert.GreaterOrEqual(t, p.Lifetime, 900.0)
		assert.LessOrEqual(t, p.Lifetime, 1100.0)
	}
}

func TestParticleLifecycle(t *testing.T) {
	e := NewEmitter(0, 0, WithRate(1), WithSpread(0), WithSpeed(10, 0), WithDrag(0.5, 0), WithLifetime(1.5, 0), WithSeed(3, 4))

	e.Tick(1)
	require.Equal(t, 1, e.Count())
	p := e.Particles()[0]
	// The new particle ages in its spawn tick.
	assert.Equal(t, 1.0, p.Age)
	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 5, p.VX, 1e-9)

	e.Tick(0.5)
	assert.Zero(t, e.Count())
}

func TestExpiryKeepsOrder(t *testing.T) {
	e := NewEmitter(0, 0, WithRate(1), WithMaxParticles(6), WithSeed(5, 6))
	// Lifetimes chosen so particles 1, 2 and 4 expire on the same tick.
	for _, lt := range []float64{10, 5.5, 4.5, 10, 2.5, 10} {
		e.SetIntensity(WithLifetime(lt, 0))
		e.Tick(1)
	}
	require.Equal(t, 6, e.Count())
	before := e.Particles()

	e.Tick(1)
	after := e.Particles()
	require.Len(t, after, 3)
	assert.Equal(t, before[0].Lifetime, after[0].Lifetime)
	assert.InDelta(t, before[0].Age+1, after[0].Age, 1e-9)
	assert.InDelta(t, before[3].Age+1, after[1].Age, 1e-9)
	assert.InDelta(t, before[5].Age+1, after[2].Age, 1e-9)
}

func TestSetPositionKeepsParticles(t *testing.T) {
	e := NewEmitter(0, 0, WithRate(1), WithLifetime(100, 0), WithSpeed(0, 0), WithSeed(1, 1))
	e.Tick(1)
	e.SetPosition(50, 60)
	e.SetDirection(180)
	e.SetIntensity(WithMaxParticles(1), WithSpread(10))
	e.Tick(1)

	ps := e.Particles()
	require.Len(t, ps, 1)
	assert.Zero(t, ps[0].X)
	assert.Equal(t, 50.0, e.X)
	assert.Equal(t, 180.0, e.Direction)
	assert.Equal(t, 10.0, e.Spread)
}

func TestRampRate(t *testing.T) {
	e := NewEmitter(0, 0, WithRate(0))
	e.RampRate(20, 1)
	require.True(t, e.Ramping())

	e.Tick(0.5)
	assert.InDelta(t, 10, e.Rate, 1e-4)
	e.Tick(0.6)
	assert.InDelta(t, 20, e.Rate, 1e-4)
	assert.False(t, e.Ramping())

	e.RampRate(5, 0)
	assert.Equal(t, 5.0, e.Rate)

	e.RampRate(50, 2)
	e.SetIntensity(WithRate(3))
	assert.False(t, e.Ramping())
	assert.Equal(t, 3.0, e.Rate)
}

func TestReleaseAndDebug(t *testing.T) {
	sink := debug.NewOverlay()
	e := NewEmitter(0, 0, WithRate(100), WithLifetime(10, 0), WithSeed(1, 1))
	e.DebugEnable(sink)
	for i := 0; i < 5; i++ {
		e.Tick(0.1)
	}
	require.Equal(t, 1, sink.Owners())
	lines := 0
	sink.Each(func(debug.Line) { lines++ })
	assert.Equal(t, 3+2*5, lines)

	e.Release()
	assert.Zero(t, e.Count())
	assert.Zero(t, sink.Owners())
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
