// Package debug holds the hooks entities use to expose their collision
// shapes and motion vectors to an overlay, plus a registry that groups those
// entities and toggles them with explicit state transitions.
package debug

import (
	"image/color"
	"sort"

	"github.com/google/uuid"
)

// Line is a single overlay segment in world space.
type Line struct {
	X0, Y0, X1, Y1 float64
	Colour         color.RGBA
}

// Sink is an externally supplied drawing surface. Owners replace their whole
// set of lines on every Set and remove them with Clear.
type Sink interface {
	Set(owner uuid.UUID, lines []Line)
	Clear(owner uuid.UUID)
}

// Debuggable is anything that can attach a representation of itself to a Sink.
type Debuggable interface {
	DebugEnable(sink Sink)
	DebugDisable()
}

// Overlay is a retained Sink that keeps the last lines set by every owner.
type Overlay struct {
	owners map[uuid.UUID][]Line
}

var _ Sink = (*Overlay)(nil)

func NewOverlay() *Overlay {
	return &Overlay{owners: make(map[uuid.UUID][]Line)}
}

func (o *Overlay) Set(owner uuid.UUID, lines []Line) {
	o.owners[owner] = append(o.owners[owner][:0], lines...)
}

func (o *Overlay) Clear(owner uuid.UUID) {
	delete(o.owners, owner)
}

// Owners returns the number of owners currently attached.
func (o *Overlay) Owners() int {
	return len(o.owners)
}

// Lines returns the lines set by owner.
func (o *Overlay) Lines(owner uuid.UUID) []Line {
	return o.owners[owner]
}

// Each visits every line in a stable owner order.
func (o *Overlay) Each(fn func(Line)) {
	keys := make([]uuid.UUID, 0, len(o.owners))
	for k := range o.owners {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		for _, l := range o.owners[k] {
			fn(l)
		}
	}
}
