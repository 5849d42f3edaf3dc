package components

import (
	"github.com/automoto/skidrift/particles"
	"github.com/yohamta/donburi"
)

// EmitterData points at a level emitter or the player's thruster.
type EmitterData struct {
	*particles.Emitter
}

var Emitter = donburi.NewComponentType[EmitterData]()
