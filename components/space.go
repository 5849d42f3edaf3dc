package components

import (
	"github.com/automoto/skidrift/collision"
	"github.com/yohamta/donburi"
)

type SpaceData struct {
	*collision.Space
}

var Space = donburi.NewComponentType[SpaceData]()
