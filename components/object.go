package components

import (
	"github.com/automoto/skidrift/level"
	"github.com/yohamta/donburi"
)

// TileData points at a tile owned by the current level.
type TileData struct {
	*level.Tile
}

var Tile = donburi.NewComponentType[TileData]()
