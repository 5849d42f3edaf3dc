package components

import (
	"github.com/automoto/skidrift/physics"
	"github.com/yohamta/donburi"
)

type BodyData struct {
	*physics.Body
}

var Body = donburi.NewComponentType[BodyData]()
