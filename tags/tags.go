package tags

import "github.com/yohamta/donburi"

var (
	Player   = donburi.NewTag().SetName("Player")
	Tile     = donburi.NewTag().SetName("Tile")
	Emitter  = donburi.NewTag().SetName("Emitter")
	Thruster = donburi.NewTag().SetName("Thruster")
)

// Debug registry groups
const (
	GroupTiles     = "tiles"
	GroupPlayer    = "player"
	GroupParticles = "particles"
)
