package components

import (
	"github.com/automoto/skidrift/debug"
	"github.com/yohamta/donburi"
)

// DebugData is a singleton wiring the overlay to the registry.
type DebugData struct {
	Overlay  *debug.Overlay
	Registry *debug.Registry
	Enabled  bool
	Values   bool
}

var Debug = donburi.NewComponentType[DebugData]()
