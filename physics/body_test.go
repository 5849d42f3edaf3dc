package physics

import (
	"math"
	"testing"

	"github.com/automoto/skidrift/collision"
	"github.com/automoto/skidrift/debug"
	"github.com/automoto/skidrift/shared/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bodyShape = []geom.Point{{-5, -8}, {-5, 8}, {5, 8}, {5, -8}}
	testCfg   = Config{
		MaxXVel: 200, MaxYVel: 300, MaxVel: 250, MaxRotVel: 180,
		DragX: 0.99, DragY: 0.99, DragRot: 0.9,
	}
)

func newFloor(friction float64) *geom.OrientedRect {
	return geom.NewOrientedRect(0, 0, []geom.Point{{-100, -10}, {-100, 10}, {100, 10}, {100, -10}}, friction)
}

func TestAccelerateAbsoluteClampsPerAxis(t *testing.T) {
	cases := []struct {
		name   string
		x, y   float64
		wx, wy float64
	}{
		{"huge", 1e9, 1e9, 200, 300},
		{"huge_negative", -1e9, -1e9, -200, -300},
		{"within", 10, -20, 10, -20},
		{"mixed", 1e6, -5, 200, -5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := New(0, 0, bodyShape, testCfg)
			require.NoError(t, b.Accelerate(c.x, c.y, Absolute))
			assert.Equal(t, c.wx, b.VX)
			assert.Equal(t, c.wy, b.VY)
		})
	}
}

func TestAccelerateRelative(t *testing.T) {
	t.Run("forward_at_rest_heading", func(t *testing.T) {
		b := New(0, 0, bodyShape, testCfg)
		require.NoError(t, b.Accelerate(0, 10, Relative))
		assert.InDelta(t, 0, b.VX, 1e-9)
		assert.InDelta(t, 10, b.VY, 1e-9)
	})
	t.Run("forward_turned_clockwise", func(t *testing.T) {
		b := New(0, 0, bodyShape, testCfg)
		b.Rot = 90
		require.NoError(t, b.Accelerate(0, 10, Relative))
		assert.InDelta(t, 10, b.VX, 1e-9)
		assert.InDelta(t, 0, b.VY, 1e-9)
	})
	t.Run("lateral", func(t *testing.T) {
		b := New(0, 0, bodyShape, testCfg)
		require.NoError(t, b.Accelerate(10, 0, Relative))
		assert.InDelta(t, 10, b.VX, 1e-9)
		assert.InDelta(t, 0, b.VY, 1e-9)
	})
	t.Run("magnitude_clamped", func(t *testing.T) {
		b := New(0, 0, bodyShape, testCfg)
		b.Rot = 30
		require.NoError(t, b.Accelerate(1e6, 1e6, Relative))
		assert.InDelta(t, testCfg.MaxVel, math.Hypot(b.VX, b.VY), 1e-6)
		// Per-axis caps do not apply to piloted thrust.
		assert.LessOrEqual(t, math.Abs(b.VX), testCfg.MaxVel)
	})
}

func TestAccelerateInvalidMode(t *testing.T) {
	b := New(0, 0, bodyShape, testCfg)
	err := b.Accelerate(1, 1, Mode(7))
	require.ErrorIs(t, err, ErrInvalidMode)
	assert.Zero(t, b.VX)
	assert.Zero(t, b.VY)
}

func TestAccelerateRotationClamped(t *testing.T) {
	b := New(0, 0, bodyShape, testCfg)
	b.AccelerateRotation(1000)
	assert.Equal(t, 180.0, b.VRot)
	b.AccelerateRotation(-5000)
	assert.Equal(t, -180.0, b.VRot)
}

func TestIntegrate(t *testing.T) {
	b := New(10, 20, bodyShape, testCfg)
	b.VX, b.VY, b.VRot = 100, -50, 90

	b.Integrate(0.5)

	assert.InDelta(t, 60, b.X, 1e-9)
	assert.InDelta(t, -5, b.Y, 1e-9)
	assert.InDelta(t, 45, b.Rot, 1e-9)
	assert.InDelta(t, 99, b.VX, 1e-9)
	assert.InDelta(t, -49.5, b.VY, 1e-9)
	assert.InDelta(t, 81, b.VRot, 1e-9)

	box := b.Hitbox.Box()
	assert.InDelta(t, b.X, (box.MinX+box.MaxX)/2, 1e-9)
	assert.InDelta(t, b.Y, (box.MinY+box.MaxY)/2, 1e-9)
}

func TestIntegrateSnapsSmallVelocities(t *testing.T) {
	b := New(0, 0, bodyShape, testCfg)
	b.VX, b.VY, b.VRot = 0.1, -0.05, 0.11

	b.Integrate(1.0 / 60)

	assert.Zero(t, b.VX)
	assert.Zero(t, b.VY)
	assert.Zero(t, b.VRot)
}

func TestIntegrateWrapsRotation(t *testing.T) {
	b := New(0, 0, bodyShape, testCfg)
	b.Rot = 350
	b.VRot = 40
	b.Integrate(1)
	assert.InDelta(t, 30, b.Rot, 1e-9)

	b.Rot = -350
	b.VRot = -40
	b.Integrate(1)
	assert.Greater(t, b.Rot, -360.0)
	assert.InDelta(t, -30, b.Rot, 1e-9)
}

func TestSlideScenario(t *testing.T) {
	vx, vy := Slide(100, 0, 0, 0.9)
	assert.InDelta(t, 90, vx, 1e-9)
	assert.InDelta(t, 0, vy, 1e-9)
}

func TestFacesInto(t *testing.T) {
	cases := []struct {
		name   string
		angle  float64
		vx, vy float64
		want   bool
	}{
		{"falling_onto_floor", 0, 0, -10, true},
		{"falling_diagonal", 0, 10, -10, true},
		{"rising_off_floor", 0, 0, 10, false},
		{"parallel", 0, 10, 0, false},
		{"at_rest", 0, 0, 0, false},
		{"slope_into", math.Pi / 4, 10, -10, true},
		{"slope_away", math.Pi / 4, -10, 10, false},
		{"wraps_past_zero", 7 * math.Pi / 4, 0, -10, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FacesInto(c.angle, c.vx, c.vy))
		})
	}
}

func TestResolveContactsSlidesOnFloor(t *testing.T) {
	floor := newFloor(0.9)
	b := New(0, 15, bodyShape, testCfg)
	b.RegisterNearby(floor)
	b.VX, b.VY = 30, -40

	hit, ok := b.ResolveContacts()
	require.True(t, ok)
	assert.Same(t, floor, hit.Static)
	assert.True(t, b.Landed)
	assert.InDelta(t, 27, b.VX, 1e-9)
	assert.InDelta(t, 0, b.VY, 1e-9)
}

func TestResolveContactsLeavesBodyMovingAway(t *testing.T) {
	b := New(0, 15, bodyShape, testCfg)
	b.RegisterNearby(newFloor(0.9))
	b.VX, b.VY = 30, 40

	_, ok := b.ResolveContacts()
	require.True(t, ok)
	assert.Equal(t, 30.0, b.VX)
	assert.Equal(t, 40.0, b.VY)
}

func TestResolveContactsNone(t *testing.T) {
	b := New(0, 500, bodyShape, testCfg)
	b.RegisterNearby(newFloor(0.9))
	b.VX, b.VY = 30, -40

	_, ok := b.ResolveContacts()
	assert.False(t, ok)
	assert.False(t, b.Landed)
	assert.Equal(t, -40.0, b.VY)
}

func TestResolveContactsWithSpaceDetector(t *testing.T) {
	space := collision.NewSpace(400, 400, 32)
	floor := geom.NewOrientedRect(200, 100, []geom.Point{{-100, -10}, {-100, 10}, {100, 10}, {100, -10}}, 0.5)
	space.Track(floor)

	b := New(200, 115, bodyShape, testCfg)
	b.UseDetector(space)
	b.RegisterNearby(floor)
	b.VX, b.VY = 10, -10

	_, ok := b.ResolveContacts()
	require.True(t, ok)
	assert.InDelta(t, 5, b.VX, 1e-9)
	assert.InDelta(t, 0, b.VY, 1e-9)

	b.UseDetector(nil)
	b.ClearNearby()
	assert.Zero(t, b.Nearby())
	_, ok = b.ResolveContacts()
	assert.False(t, ok)
}

func TestWrapWithin(t *testing.T) {
	cases := []struct {
		name   string
		x, y   float64
		wx, wy float64
	}{
		{"inside", 100, 100, 100, 100},
		{"margin_left", -5, 100, -5, 100},
		{"past_left", -5.5, 100, 640, 100},
		{"past_right", 646, 100, 0, 100},
		{"past_bottom", 50, -6, 50, 480},
		{"past_top", 50, 486, 50, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := New(c.x, c.y, bodyShape, testCfg)
			b.WrapWithin(640, 480, WrapMargin)
			assert.Equal(t, c.wx, b.X)
			assert.Equal(t, c.wy, b.Y)
			assert.Equal(t, b.X, b.Hitbox.X)
		})
	}
}

func TestReset(t *testing.T) {
	b := New(0, 0, bodyShape, testCfg)
	b.VX, b.VY, b.Rot = 4, 5, 33
	b.Reset(0, 200)
	assert.Equal(t, 200.0, b.Y)
	assert.Zero(t, b.VX)
	assert.Zero(t, b.Rot)
	assert.Equal(t, 200.0, b.Hitbox.Y)
}

func TestBodyDebugHooks(t *testing.T) {
	sink := debug.NewOverlay()
	b := New(0, 0, bodyShape, testCfg)
	b.DebugEnable(sink)
	b.DebugEnable(sink)
	assert.Equal(t, 2, sink.Owners())

	b.VX = 100
	b.Integrate(0.1)
	b.DebugDisable()
	assert.Zero(t, sink.Owners())
}
