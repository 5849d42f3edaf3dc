package factory

import (
	"github.com/automoto/skidrift/archetypes"
	"github.com/automoto/skidrift/components"
	"github.com/automoto/skidrift/level"
	"github.com/automoto/skidrift/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateTile spawns an entity for a level tile, indexes its hitbox and
// registers it with every player body.
func CreateTile(ecs *ecs.ECS, t *level.Tile) *donburi.Entry {
	tile := archetypes.Tile.Spawn(ecs)
	components.Tile.SetValue(tile, components.TileData{Tile: t})

	// Add to space if it exists
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Track(t.Hitbox)
	}

	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		components.Body.Get(e).RegisterNearby(t.Hitbox)
	})

	return tile
}
