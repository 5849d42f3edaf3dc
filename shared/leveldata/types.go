// Package leveldata imports levels authored in Tiled. It has no dependencies
// on ebitengine or donburi: it only turns TMX maps into level.Level values.
package leveldata

import "github.com/automoto/skidrift/level"

// TMX layout conventions.
const (
	// TileLayer holds the level tiles. The tileset's "shape" property names
	// the tile shape; "rotation" and "style" are optional.
	TileLayer = "tiles"
	// SpawnGroup holds the player spawn. The first object wins.
	SpawnGroup = "PlayerSpawn"
	// EmitterGroup holds one object per particle emitter.
	EmitterGroup = "Emitters"
)

// Map is an imported level plus the pixel size of the map it came from.
type Map struct {
	Level  *level.Level
	Width  float64
	Height float64
	// Skipped counts tiles whose shape property was not recognised.
	Skipped int
}
