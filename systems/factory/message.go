package factory

import (
	"github.com/automoto/skidrift/archetypes"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateMessage(ecs *ecs.ECS) *donburi.Entry {
	return archetypes.Message.Spawn(ecs)
}
