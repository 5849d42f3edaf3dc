package factory

import (
	"github.com/automoto/skidrift/archetypes"
	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/physics"
	"github.com/automoto/skidrift/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// BodyConfig converts the tuned player values into body caps and drag.
func BodyConfig(p cfg.PlayerConfig) physics.Config {
	return physics.Config{
		MaxXVel:   p.MaxXVel,
		MaxYVel:   p.MaxYVel,
		MaxVel:    p.MaxVel,
		MaxRotVel: p.MaxRotVel,
		DragX:     p.DragX,
		DragY:     p.DragY,
		DragRot:   p.DragRot,
	}
}

// CreatePlayer spawns the player body at (x, y) along with its thruster.
// Every tile already in the world is registered with the body.
func CreatePlayer(ecs *ecs.ECS, x, y float64) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	body := physics.New(x, y, cfg.Player.Hitbox(), BodyConfig(cfg.Player))
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		body.UseDetector(components.Space.Get(spaceEntry).Space)
	}
	tags.Tile.Each(ecs.World, func(e *donburi.Entry) {
		body.RegisterNearby(components.Tile.Get(e).Hitbox)
	})
	body.Reset(x, y)
	components.Body.SetValue(player, components.BodyData{Body: body})

	components.Player.SetValue(player, components.PlayerData{
		Thruster: CreateThruster(ecs, x, y),
	})

	return player
}
