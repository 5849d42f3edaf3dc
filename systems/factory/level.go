package factory

import (
	"github.com/automoto/skidrift/archetypes"
	"github.com/automoto/skidrift/components"
	"github.com/automoto/skidrift/level"
	"github.com/automoto/skidrift/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// CreateLevel spawns the level singleton around lib.
func CreateLevel(ecs *ecs.ECS, lib *level.Library, log *zap.Logger, width, height float64) *donburi.Entry {
	if log == nil {
		log = zap.NewNop()
	}
	entry := archetypes.Level.Spawn(ecs)
	components.Level.SetValue(entry, components.LevelData{
		Library: lib,
		Log:     log,
		Width:   width,
		Height:  height,
	})
	return entry
}

// SpawnLevel creates entities for every tile and emitter in l, in level
// order, so contact order follows tile order.
func SpawnLevel(ecs *ecs.ECS, l *level.Level) {
	for _, t := range l.Tiles {
		CreateTile(ecs, t)
	}
	for _, e := range l.Emitters {
		CreateEmitter(ecs, e)
	}
}

// ClearLevel removes tile and emitter entities and unregisters their
// hitboxes. The level itself keeps ownership of the tiles and emitters.
func ClearLevel(ecs *ecs.ECS) {
	var space *components.SpaceData
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		space = components.Space.Get(spaceEntry)
	}

	var doomed []*donburi.Entry
	tags.Tile.Each(ecs.World, func(e *donburi.Entry) {
		if space != nil {
			space.Untrack(components.Tile.Get(e).Hitbox)
		}
		doomed = append(doomed, e)
	})
	tags.Emitter.Each(ecs.World, func(e *donburi.Entry) {
		doomed = append(doomed, e)
	})
	for _, e := range doomed {
		ecs.World.Remove(e.Entity())
	}

	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		components.Body.Get(e).ClearNearby()
	})
}
