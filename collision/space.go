package collision

import (
	"github.com/automoto/skidrift/shared/geom"
	"github.com/solarlune/resolv"
)

const (
	tagStatic = "static"
	tagProbe  = "probe"

	// pad keeps resolv's cell rounding from dropping boxes that only touch.
	pad = 2
)

// Space culls static hitboxes with a resolv cell grid before the narrow
// phase. It only narrows the candidates: the answer is always the one Naive
// would give for the same statics.
type Space struct {
	space         *resolv.Space
	width, height float64
	objects       map[*geom.OrientedRect]*resolv.Object
	outside       map[*geom.OrientedRect]bool
	probe         *resolv.Object
}

var _ Detector = (*Space)(nil)

// NewSpace covers [0, width] x [0, height] with square cells. resolv only
// builds whole cells, so the grid is rounded up to cover the full extent.
func NewSpace(width, height, cell int) *Space {
	if cell < 1 {
		cell = 1
	}
	cols := (width + cell - 1) / cell
	rows := (height + cell - 1) / cell
	s := &Space{
		space:   resolv.NewSpace(cols*cell, rows*cell, cell, cell),
		width:   float64(cols * cell),
		height:  float64(rows * cell),
		objects: make(map[*geom.OrientedRect]*resolv.Object),
		outside: make(map[*geom.OrientedRect]bool),
		probe:   resolv.NewObject(0, 0, 1, 1, tagProbe),
	}
	s.space.Add(s.probe)
	return s
}

// Track indexes a static hitbox by its current checkbox.
func (s *Space) Track(hb *geom.OrientedRect) {
	if _, ok := s.objects[hb]; ok {
		s.Sync(hb)
		return
	}
	obj := resolv.NewObject(0, 0, 1, 1, tagStatic)
	obj.Data = hb
	s.place(obj, hb.Box())
	s.objects[hb] = obj
	s.outside[hb] = !s.inside(hb.Box())
	s.space.Add(obj)
}

// Untrack drops hb from the index.
func (s *Space) Untrack(hb *geom.OrientedRect) {
	obj, ok := s.objects[hb]
	if !ok {
		return
	}
	s.space.Remove(obj)
	delete(s.objects, hb)
	delete(s.outside, hb)
}

// Sync re-indexes hb after it moved.
func (s *Space) Sync(hb *geom.OrientedRect) {
	obj, ok := s.objects[hb]
	if !ok {
		return
	}
	s.place(obj, hb.Box())
	s.outside[hb] = !s.inside(hb.Box())
	obj.Update()
}

// Len returns the number of tracked hitboxes.
func (s *Space) Len() int {
	return len(s.objects)
}

func (s *Space) FirstContact(moving *geom.OrientedRect, statics []*geom.OrientedRect) (Hit, bool) {
	box := moving.Box()
	if !s.inside(box) {
		return Naive{}.FirstContact(moving, statics)
	}

	s.place(s.probe, box)
	s.probe.Update()

	near := make(map[*geom.OrientedRect]struct{})
	if check := s.probe.Check(0, 0, tagStatic); check != nil {
		for _, obj := range check.ObjectsByTags(tagStatic) {
			if hb, ok := obj.Data.(*geom.OrientedRect); ok {
				near[hb] = struct{}{}
			}
		}
	}

	for _, st := range statics {
		if s.culled(st, near) {
			continue
		}
		if c, ok := moving.Contacts(st); ok {
			return Hit{Contact: c, Static: st}, true
		}
	}
	return Hit{}, false
}

// culled reports whether st can be skipped. Hitboxes that are not tracked or
// that stick out of the grid are always tested.
func (s *Space) culled(st *geom.OrientedRect, near map[*geom.OrientedRect]struct{}) bool {
	if _, tracked := s.objects[st]; !tracked || s.outside[st] {
		return false
	}
	_, ok := near[st]
	return !ok
}

// inside reports whether b, padded, lies strictly within the indexed cells.
func (s *Space) inside(b geom.Checkbox) bool {
	return b.MinX-pad >= 0 && b.MinY-pad >= 0 &&
		b.MaxX+pad < s.width && b.MaxY+pad < s.height
}

func (s *Space) place(obj *resolv.Object, b geom.Checkbox) {
	obj.X = b.MinX - pad
	obj.Y = b.MinY - pad
	obj.W = b.Width() + 2*pad
	obj.H = b.Height() + 2*pad
}
