package level

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/automoto/skidrift/particles"
	"github.com/automoto/skidrift/shared/gamemath"
)

// Level files are a header followed by records:
//
//	header  version:u8 gravity:u8 spawnX:c16 spawnY:c16
//	record  type:u8 (tag:u8 value)* 0
//
// A c16 is two bytes [n/255, n%255]. Radix 255 is kept so existing level
// files still load; it caps values at maxCustom.
const (
	maxByte   = 255
	maxCustom = 255*255 + 254

	recordEmitter byte = 4
	endOfRecord   byte = 0
	unknownWidth       = 3
)

// Tile attribute tags.
const (
	tileX byte = iota + 1
	tileY
	tileRot
	tileStyle
	tileOutline
	tileFill
	tileOutlineColour
)

// Emitter attribute tags.
const (
	emitterX byte = iota + 1
	emitterY
	emitterDirection
	emitterSpread
	emitterMax
	emitterRate
	emitterLifetime
	emitterLifetimeRand
	emitterSize
	emitterSizeRand
	emitterSpeed
	emitterSpeedRand
	emitterRotVel
	emitterRotVelRand
	emitterDrag
	emitterColour
)

// Lifetimes are stored in centiseconds and drag in percent.
const (
	lifetimeScale = 100
	dragScale     = 100
)

// Codec encodes and decodes levels. Current is stamped on every encoded
// level; Decode accepts only the Supported versions.
type Codec struct {
	Current   uint8
	Supported []uint8
}

// NewCodec returns a codec writing current. With no supported versions given
// only current is accepted.
func NewCodec(current uint8, supported ...uint8) Codec {
	if len(supported) == 0 {
		supported = []uint8{current}
	}
	return Codec{Current: current, Supported: supported}
}

// Encode serialises l. Attributes equal to their default are left out.
func (c Codec) Encode(l *Level) ([]byte, error) {
	w := &writer{buf: []byte{c.Current}}
	w.value("gravity", l.Gravity, maxByte)
	w.value("spawn x", l.Spawn.X, maxCustom)
	w.value("spawn y", l.Spawn.Y, maxCustom)
	if w.err != nil {
		return nil, fmt.Errorf("encode header: %w", w.err)
	}

	for i, t := range l.Tiles {
		if err := w.tile(t); err != nil {
			return nil, fmt.Errorf("encode tile %d: %w", i, err)
		}
	}
	for i, e := range l.Emitters {
		if err := w.emitter(e); err != nil {
			return nil, fmt.Errorf("encode emitter %d: %w", i, err)
		}
	}
	return w.buf, nil
}

// Decode parses a level file. Any read past the end of data or any unknown
// record type fails with a *CorruptDataError.
func (c Codec) Decode(data []byte) (*Level, error) {
	r := &reader{data: data}
	version, err := r.u8("version")
	if err != nil {
		return nil, err
	}
	if !slices.Contains(c.Supported, version) {
		return nil, fmt.Errorf("version %d: %w", version, ErrUnsupportedVersion)
	}

	gravity, err := r.u8("gravity")
	if err != nil {
		return nil, err
	}
	sx, err := r.c16("spawn x")
	if err != nil {
		return nil, err
	}
	sy, err := r.c16("spawn y")
	if err != nil {
		return nil, err
	}

	l := &Level{Version: version, Gravity: float64(gravity)}
	l.Spawn.X, l.Spawn.Y = float64(sx), float64(sy)

	for !r.done() {
		start := r.off
		kind, _ := r.u8("object type")
		switch {
		case kind == recordEmitter:
			e, err := r.emitter()
			if err != nil {
				l.Release()
				return nil, err
			}
			l.AddEmitter(e)
		case validShape(kind):
			t, err := r.tile(Shape(kind))
			if err != nil {
				l.Release()
				return nil, err
			}
			l.AddTile(t)
		default:
			l.Release()
			return nil, &CorruptDataError{Offset: start, Reason: fmt.Sprintf("unknown object type %d", kind)}
		}
	}
	return l, nil
}

func validShape(kind byte) bool {
	_, ok := Shape(kind).Info()
	return ok
}

type writer struct {
	buf []byte
	err error
}

// quantise rounds v and checks it fits in [0, max].
func quantise(what string, v float64, max int) (int, error) {
	n := math.Round(v)
	if math.IsNaN(n) || n < 0 || n > float64(max) {
		return 0, fmt.Errorf("%s %v: %w", what, v, ErrValueOutOfRange)
	}
	return int(n), nil
}

func (w *writer) put(n, width int) {
	if width == 1 {
		w.buf = append(w.buf, byte(n))
		return
	}
	w.buf = append(w.buf, byte(n/255), byte(n%255))
}

func width(max int) int {
	if max == maxByte {
		return 1
	}
	return 2
}

func (w *writer) value(what string, v float64, max int) {
	if w.err != nil {
		return
	}
	n, err := quantise(what, v, max)
	if err != nil {
		w.err = err
		return
	}
	w.put(n, width(max))
}

// attr writes tag and v unless v rounds to the same value as def.
func (w *writer) attr(tag byte, what string, v, def float64, max int) {
	if w.err != nil {
		return
	}
	n, err := quantise(what, v, max)
	if err != nil {
		w.err = err
		return
	}
	if d, err := quantise(what, def, max); err == nil && d == n {
		return
	}
	w.buf = append(w.buf, tag)
	w.put(n, width(max))
}

func (w *writer) colour(tag byte, c color.RGBA) {
	w.buf = append(w.buf, tag, c.R, c.G, c.B)
}

// angle maps degrees onto the whole-degree value stored in files.
func angle(deg float64) float64 {
	return math.Mod(math.Round(gamemath.NormalizeDegrees(deg)), 360)
}

func (w *writer) tile(t *Tile) error {
	info, ok := t.Shape.Info()
	if !ok {
		return fmt.Errorf("%s: %w", t.Shape, ErrUnknownShape)
	}
	w.buf = append(w.buf, byte(t.Shape))
	w.attr(tileX, "x", t.X, 0, maxCustom)
	w.attr(tileY, "y", t.Y, 0, maxCustom)
	w.attr(tileRot, "rotation", angle(t.Rot), 0, maxCustom)
	w.attr(tileStyle, "style", float64(t.Style), float64(info.Style), maxByte)
	if t.Outline {
		w.buf = append(w.buf, tileOutline, 1)
	}
	if t.Fill != nil {
		w.colour(tileFill, *t.Fill)
	}
	if t.OutlineColour != nil {
		w.colour(tileOutlineColour, *t.OutlineColour)
	}
	w.buf = append(w.buf, endOfRecord)
	return w.err
}

func (w *writer) emitter(e *particles.Emitter) error {
	t := e.Template
	w.buf = append(w.buf, recordEmitter)
	w.attr(emitterX, "x", e.X, 0, maxCustom)
	w.attr(emitterY, "y", e.Y, 0, maxCustom)
	w.attr(emitterDirection, "direction", angle(e.Direction), particles.DefaultDirection, maxCustom)
	w.attr(emitterSpread, "spread", e.Spread, particles.DefaultSpread, maxCustom)
	w.attr(emitterMax, "max particles", float64(e.MaxParticles), particles.DefaultMaxParticles, maxCustom)
	w.attr(emitterRate, "emit speed", e.Rate, particles.DefaultRate, maxByte)
	w.attr(emitterLifetime, "lifetime", t.Lifetime*lifetimeScale, particles.DefaultLifetime*lifetimeScale, maxCustom)
	w.attr(emitterLifetimeRand, "lifetime rand", t.LifetimeRand*lifetimeScale, 0, maxCustom)
	w.attr(emitterSize, "size", t.Size, particles.DefaultSize, maxByte)
	w.attr(emitterSizeRand, "size rand", t.SizeRand, 0, maxCustom)
	w.attr(emitterSpeed, "velocity", t.Speed, particles.DefaultSpeed, maxCustom)
	w.attr(emitterSpeedRand, "velocity rand", t.SpeedRand, 0, maxCustom)
	w.attr(emitterRotVel, "rotational velocity", t.RotVel, 0, maxCustom)
	w.attr(emitterRotVelRand, "rotational velocity rand", t.RotVelRand, 0, maxCustom)
	w.attr(emitterDrag, "drag", t.Drag*dragScale, particles.DefaultDrag*dragScale, maxByte)
	if rgb(t.Colour) != rgb(particles.DefaultColour) {
		w.colour(emitterColour, t.Colour)
	}
	w.buf = append(w.buf, endOfRecord)
	return w.err
}

func rgb(c color.RGBA) [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) done() bool {
	return r.off >= len(r.data)
}

func (r *reader) need(n int, what string) error {
	if r.off+n > len(r.data) {
		return &CorruptDataError{Offset: r.off, Reason: "truncated " + what}
	}
	return nil
}

func (r *reader) u8(what string) (byte, error) {
	if err := r.need(1, what); err != nil {
		return 0, err
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *reader) c16(what string) (int, error) {
	if err := r.need(2, what); err != nil {
		return 0, err
	}
	n := int(r.data[r.off])*255 + int(r.data[r.off+1])
	r.off += 2
	return n, nil
}

func (r *reader) rgb(what string) (color.RGBA, error) {
	if err := r.need(3, what); err != nil {
		return color.RGBA{}, err
	}
	c := color.RGBA{R: r.data[r.off], G: r.data[r.off+1], B: r.data[r.off+2], A: 255}
	r.off += 3
	return c, nil
}

func (r *reader) skip(n int, what string) error {
	if err := r.need(n, what); err != nil {
		return err
	}
	r.off += n
	return nil
}

// attrs walks a record's attributes up to its terminator. read is called
// with each tag and returns false for tags it does not know.
func (r *reader) attrs(read func(tag byte) (bool, error)) error {
	for {
		tag, err := r.u8("attribute tag")
		if err != nil {
			return err
		}
		if tag == endOfRecord {
			return nil
		}
		known, err := read(tag)
		if err != nil {
			return err
		}
		if !known {
			if err := r.skip(unknownWidth, fmt.Sprintf("attribute %d", tag)); err != nil {
				return err
			}
		}
	}
}

func (r *reader) tile(shape Shape) (*Tile, error) {
	t, err := NewTile(shape, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	var x, y, rot int
	err = r.attrs(func(tag byte) (bool, error) {
		var err error
		switch tag {
		case tileX:
			x, err = r.c16("tile x")
		case tileY:
			y, err = r.c16("tile y")
		case tileRot:
			rot, err = r.c16("tile rotation")
		case tileStyle:
			t.Style, err = r.u8("tile style")
		case tileOutline:
			var b byte
			b, err = r.u8("tile outline")
			t.Outline = b != 0
		case tileFill:
			var c color.RGBA
			c, err = r.rgb("tile fill")
			t.Fill = &c
		case tileOutlineColour:
			var c color.RGBA
			c, err = r.rgb("tile outline colour")
			t.OutlineColour = &c
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	t.Place(float64(x), float64(y), float64(rot))
	return t, nil
}

func (r *reader) emitter() (*particles.Emitter, error) {
	e := particles.NewEmitter(0, 0)
	t := &e.Template
	c16 := func(what string, dst *float64, scale float64) error {
		n, err := r.c16(what)
		*dst = float64(n) / scale
		return err
	}
	u8 := func(what string, dst *float64, scale float64) error {
		n, err := r.u8(what)
		*dst = float64(n) / scale
		return err
	}

	err := r.attrs(func(tag byte) (bool, error) {
		switch tag {
		case emitterX:
			return true, c16("emitter x", &e.X, 1)
		case emitterY:
			return true, c16("emitter y", &e.Y, 1)
		case emitterDirection:
			return true, c16("emitter direction", &e.Direction, 1)
		case emitterSpread:
			return true, c16("emitter spread", &e.Spread, 1)
		case emitterMax:
			n, err := r.c16("emitter max particles")
			e.MaxParticles = n
			return true, err
		case emitterRate:
			return true, u8("emitter speed", &e.Rate, 1)
		case emitterLifetime:
			return true, c16("particle lifetime", &t.Lifetime, lifetimeScale)
		case emitterLifetimeRand:
			return true, c16("particle lifetime rand", &t.LifetimeRand, lifetimeScale)
		case emitterSize:
			return true, u8("particle size", &t.Size, 1)
		case emitterSizeRand:
			return true, c16("particle size rand", &t.SizeRand, 1)
		case emitterSpeed:
			return true, c16("particle velocity", &t.Speed, 1)
		case emitterSpeedRand:
			return true, c16("particle velocity rand", &t.SpeedRand, 1)
		case emitterRotVel:
			return true, c16("particle rotational velocity", &t.RotVel, 1)
		case emitterRotVelRand:
			return true, c16("particle rotational velocity rand", &t.RotVelRand, 1)
		case emitterDrag:
			return true, u8("particle drag", &t.Drag, dragScale)
		case emitterColour:
			c, err := r.rgb("particle colour")
			t.Colour = c
			return true, err
		default:
			return false, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}
