package geom

import "math"

// Checkbox is the axis-aligned bounding box of a hitbox's world points.
type Checkbox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoxOf returns the bounding box of pts. An empty slice yields the zero box.
func BoxOf(pts []Point) Checkbox {
	if len(pts) == 0 {
		return Checkbox{}
	}
	b := Checkbox{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range pts {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// Overlaps is the broad-phase test. Boxes that only share an edge overlap.
func (b Checkbox) Overlaps(o Checkbox) bool {
	if b.MinX > o.MaxX || b.MaxX < o.MinX {
		return false
	}
	if b.MinY > o.MaxY || b.MaxY < o.MinY {
		return false
	}
	return true
}

func (b Checkbox) Width() float64 {
	return b.MaxX - b.MinX
}

func (b Checkbox) Height() float64 {
	return b.MaxY - b.MinY
}

// Corners returns the box as a polygon starting at the minimum corner.
func (b Checkbox) Corners() []Point {
	return []Point{
		{b.MinX, b.MinY},
		{b.MinX, b.MaxY},
		{b.MaxX, b.MaxY},
		{b.MaxX, b.MinY},
	}
}
