// Package collision finds the contact between a moving hitbox and the static
// hitboxes registered with it. Nothing is kept between ticks: every query is
// derived from the current poses.
package collision

import "github.com/automoto/skidrift/shared/geom"

// Hit is a contact plus the static hitbox it came from.
type Hit struct {
	geom.Contact
	Static *geom.OrientedRect
}

// Detector returns at most one hit per query, walking statics in the order
// they were registered.
type Detector interface {
	FirstContact(moving *geom.OrientedRect, statics []*geom.OrientedRect) (Hit, bool)
}

// Naive tests every static hitbox.
type Naive struct{}

var _ Detector = Naive{}

func (Naive) FirstContact(moving *geom.OrientedRect, statics []*geom.OrientedRect) (Hit, bool) {
	for _, s := range statics {
		if c, ok := moving.Contacts(s); ok {
			return Hit{Contact: c, Static: s}, true
		}
	}
	return Hit{}, false
}
