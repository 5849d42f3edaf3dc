package components

import (
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Thrusting bool
	Burning   bool           // thruster ramped to the burn rate
	Thruster  *donburi.Entry // smoke emitter trailing the player
	Respawns  int
}

var Player = donburi.NewComponentType[PlayerData]()
