package archetypes

import (
	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Body,
	)
	Tile = newArchetype(
		tags.Tile,
		components.Tile,
	)
	Emitter = newArchetype(
		tags.Emitter,
		components.Emitter,
	)
	Thruster = newArchetype(
		tags.Thruster,
		components.Emitter,
	)
	Space = newArchetype(
		components.Space,
	)
	Level = newArchetype(
		components.Level,
	)
	Input = newArchetype(
		components.Input,
	)
	Debug = newArchetype(
		components.Debug,
	)
	Message = newArchetype(
		components.Message,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
