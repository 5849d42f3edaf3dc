package geom

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/automoto/skidrift/debug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square40 = []Point{{-20, -20}, {-20, 20}, {20, 20}, {20, -20}}

func TestUpdateCheckbox(t *testing.T) {
	r := NewOrientedRect(0, 0, square40, 0.95)
	r.Update(200, 300, 0)

	assert.Equal(t, Checkbox{MinX: 180, MinY: 280, MaxX: 220, MaxY: 320}, r.Box())
}

func TestUpdateFullTurnMatchesZero(t *testing.T) {
	shapes := map[string][]Point{
		"square": square40,
		"pipe":   {{-20, -10}, {-20, 10}, {20, 10}, {20, -10}},
		"skew":   {{-7, -3}, {-12, 9}, {15, 4}, {6, -11}},
	}
	for name, local := range shapes {
		t.Run(name, func(t *testing.T) {
			r := NewOrientedRect(0, 0, local, 1)
			r.Update(37.5, -12, 0)
			zero := r.Points()
			r.Update(37.5, -12, 360)
			turned := r.Points()

			require.Len(t, turned, len(zero))
			for i := range zero {
				assert.InDelta(t, zero[i].X, turned[i].X, 1e-9)
				assert.InDelta(t, zero[i].Y, turned[i].Y, 1e-9)
			}
		})
	}
}

func TestUpdateRotatesClockwise(t *testing.T) {
	// A point straight up from the centre ends up to the right after +90.
	r := NewOrientedRect(0, 0, []Point{{0, 10}, {1, 0}, {-1, 0}}, 1)
	r.Update(0, 0, 90)
	p := r.Points()[0]

	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
}

func TestReferencePolygonNeverMutated(t *testing.T) {
	local := append([]Point(nil), square40...)
	r := NewOrientedRect(5, 5, local, 1)
	r.Update(100, 100, 45)
	r.Update(-30, 12, 210)

	assert.Equal(t, square40, r.Local())
	local[0] = Point{99, 99}
	assert.Equal(t, square40, r.Local())
}

func TestContactsDisjointCheckboxes(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		a := NewOrientedRect(0, 0, square40, 1)
		b := NewOrientedRect(0, 0, square40, 1)
		a.Update(rng.Float64()*1000, rng.Float64()*1000, rng.Float64()*360)

		// Place b far enough along one axis that the boxes cannot touch.
		box := a.Box()
		gap := 1 + rng.Float64()*200
		x, y := a.X, a.Y
		switch rng.IntN(4) {
		case 0:
			x = box.MaxX + 30 + gap
		case 1:
			x = box.MinX - 30 - gap
		case 2:
			y = box.MaxY + 30 + gap
		default:
			y = box.MinY - 30 - gap
		}
		b.Update(x, y, rng.Float64()*360)

		require.False(t, a.Box().Overlaps(b.Box()))
		_, ok := a.Contacts(b)
		require.False(t, ok, "iteration %d", i)
	}
}

func TestContactsReturnsOtherSideAndFriction(t *testing.T) {
	floor := NewOrientedRect(0, 0, []Point{{-100, -10}, {-100, 10}, {100, 10}, {100, -10}}, 0.9)
	body := NewOrientedRect(0, 15, []Point{{-5, -8}, {-5, 8}, {5, 8}, {5, -8}}, 1)

	c, ok := body.Contacts(floor)
	require.True(t, ok)
	assert.Equal(t, 0.9, c.Friction)
	// Only the floor's top side is crossed by the body.
	assert.Equal(t, Segment{A: Point{-100, 10}, B: Point{100, 10}}, c.Side)
	assert.InDelta(t, 0, c.Side.Angle(), 1e-12)
}

func TestContactsFirstHitInIterationOrder(t *testing.T) {
	tile := NewOrientedRect(0, 0, square40, 0.95)
	// A body straddling the tile's top right corner crosses two sides.
	body := NewOrientedRect(20, 20, []Point{{-4, -4}, {-4, 4}, {4, 4}, {4, -4}}, 1)

	c, ok := body.Contacts(tile)
	require.True(t, ok)

	var want Segment
	found := false
	for _, m := range body.Segments() {
		for _, s := range tile.Segments() {
			if !found && m.Intersects(s) {
				want, found = s, true
			}
		}
	}
	require.True(t, found)
	assert.Equal(t, want, c.Side)
}

func TestContactsDegeneratePolygons(t *testing.T) {
	tile := NewOrientedRect(0, 0, square40, 0.95)
	cases := map[string][]Point{
		"empty":      nil,
		"single":     {{0, 0}},
		"collapsed":  {{0, 0}, {0, 0}, {0, 0}, {0, 0}},
		"zero_sides": {{-20, 0}, {-20, 0}, {20, 0}, {20, 0}},
		"two_points": {{-30, 0}, {30, 0}},
		"repeated":   {{-5, -5}, {-5, -5}, {5, 5}, {5, -5}},
		"line":       {{0, -30}, {0, -30}, {0, 30}, {0, 30}},
		"flat":       {{-30, 0}, {0, 0}, {30, 0}},
	}
	for name, pts := range cases {
		t.Run(name, func(t *testing.T) {
			r := NewOrientedRect(0, 20, pts, 1)
			assert.True(t, r.Degenerate())
			assert.NotPanics(t, func() {
				r.Contacts(tile)
				tile.Contacts(r)
			})
			_, ok := r.Contacts(tile)
			assert.False(t, ok)
			_, ok = tile.Contacts(r)
			assert.False(t, ok)
		})
	}
	assert.False(t, tile.Degenerate())
}

func TestSegmentAngle(t *testing.T) {
	cases := []struct {
		name string
		seg  Segment
		want float64
	}{
		{"flat", Segment{Point{0, 0}, Point{10, 0}}, 0},
		{"flat_reversed", Segment{Point{10, 0}, Point{0, 0}}, 0},
		{"rising", Segment{Point{0, 0}, Point{10, 10}}, math.Pi / 4},
		{"rising_reversed", Segment{Point{10, 10}, Point{0, 0}}, math.Pi / 4},
		{"falling", Segment{Point{0, 0}, Point{10, -10}}, 7 * math.Pi / 4},
		{"falling_reversed", Segment{Point{10, -10}, Point{0, 0}}, 7 * math.Pi / 4},
		{"vertical", Segment{Point{0, 10}, Point{0, 0}}, math.Pi / 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := c.seg.Angle()
			assert.InDelta(t, c.want, a, 1e-12)
			assert.GreaterOrEqual(t, a, 0.0)
			assert.Less(t, a, 2*math.Pi)
		})
	}
}

func TestDebugHooks(t *testing.T) {
	sink := debug.NewOverlay()
	r := NewOrientedRect(0, 0, square40, 1)

	r.DebugEnable(sink)
	require.Equal(t, 1, sink.Owners())

	r.Update(10, 10, 0)
	sink.Each(func(l debug.Line) {
		assert.True(t, l.X0 >= -10 && l.X0 <= 30)
	})

	r.DebugDisable()
	assert.Equal(t, 0, sink.Owners())
}
