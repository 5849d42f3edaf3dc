// Package level holds the level model, its binary codec and the library
// that loads and saves levels.
package level

import (
	"errors"
	"fmt"
	"image/color"
	"slices"

	"github.com/automoto/skidrift/particles"
	"github.com/automoto/skidrift/shared/geom"
)

var ErrUnknownShape = errors.New("level: unknown tile shape")

// Shape selects a tile's polygon. The values double as the record type in
// level files.
type Shape uint8

const (
	ShapeAll  Shape = 1
	ShapeEnd  Shape = 2
	ShapePipe Shape = 3
)

// ShapeInfo is the fixed data behind a shape.
type ShapeInfo struct {
	Name     string
	Local    []geom.Point
	Friction float64
	Style    uint8
}

var shapes = map[Shape]ShapeInfo{
	ShapeAll: {
		Name:     "all",
		Local:    []geom.Point{{-20, -20}, {-20, 20}, {20, 20}, {20, -20}},
		Friction: 0.95,
		Style:    uint8(ShapeAll),
	},
	ShapeEnd: {
		Name:     "end",
		Local:    []geom.Point{{-20, -10}, {-20, 10}, {20, 20}, {20, -20}},
		Friction: 0.95,
		Style:    uint8(ShapeEnd),
	},
	ShapePipe: {
		Name:     "pipe",
		Local:    []geom.Point{{-20, -10}, {-20, 10}, {20, 10}, {20, -10}},
		Friction: 0.95,
		Style:    uint8(ShapePipe),
	},
}

// Info returns the table entry for s.
func (s Shape) Info() (ShapeInfo, bool) {
	info, ok := shapes[s]
	return info, ok
}

func (s Shape) String() string {
	if info, ok := shapes[s]; ok {
		return info.Name
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// ParseShape maps a shape name back to its value.
func ParseShape(name string) (Shape, error) {
	for s, info := range shapes {
		if info.Name == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownShape)
}

// Tile is a static piece of level geometry. Rot is in degrees, clockwise.
type Tile struct {
	X, Y, Rot float64
	Shape     Shape
	Style     uint8

	// Fill and OutlineColour are nil when the renderer's default applies.
	Fill          *color.RGBA
	Outline       bool
	OutlineColour *color.RGBA

	Hitbox *geom.OrientedRect
}

// NewTile creates a tile of the given shape with the shape's default style.
func NewTile(shape Shape, x, y, rot float64) (*Tile, error) {
	info, ok := shape.Info()
	if !ok {
		return nil, fmt.Errorf("new tile: %w", ErrUnknownShape)
	}
	t := &Tile{
		Shape:  shape,
		Style:  info.Style,
		Hitbox: geom.NewOrientedRect(x, y, info.Local, info.Friction),
	}
	t.Place(x, y, rot)
	return t, nil
}

// Place sets the tile's pose and recomputes its hitbox.
func (t *Tile) Place(x, y, rot float64) {
	t.X, t.Y, t.Rot = x, y, rot
	t.Hitbox.Update(x, y, rot)
}

// Move shifts the tile by (dx, dy).
func (t *Tile) Move(dx, dy float64) {
	t.Place(t.X+dx, t.Y+dy, t.Rot)
}

// Release detaches the tile's debug overlay.
func (t *Tile) Release() {
	t.Hitbox.DebugDisable()
}

// Level is a loaded level. It owns its tiles and emitters.
type Level struct {
	Version  uint8
	Gravity  float64
	Spawn    geom.Point
	Tiles    []*Tile
	Emitters []*particles.Emitter
}

// AddTile appends a tile. Registration order is contact order.
func (l *Level) AddTile(t *Tile) {
	l.Tiles = append(l.Tiles, t)
}

// RemoveTile releases t and drops it from the level.
func (l *Level) RemoveTile(t *Tile) bool {
	i := slices.Index(l.Tiles, t)
	if i < 0 {
		return false
	}
	t.Release()
	l.Tiles = slices.Delete(l.Tiles, i, i+1)
	return true
}

func (l *Level) AddEmitter(e *particles.Emitter) {
	l.Emitters = append(l.Emitters, e)
}

// RemoveEmitter releases e and drops it from the level.
func (l *Level) RemoveEmitter(e *particles.Emitter) bool {
	i := slices.Index(l.Emitters, e)
	if i < 0 {
		return false
	}
	e.Release()
	l.Emitters = slices.Delete(l.Emitters, i, i+1)
	return true
}

// Release frees every tile and emitter. The level is empty afterwards.
func (l *Level) Release() {
	for _, t := range l.Tiles {
		t.Release()
	}
	for _, e := range l.Emitters {
		e.Release()
	}
	l.Tiles = nil
	l.Emitters = nil
}
