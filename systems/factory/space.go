package factory

import (
	"github.com/automoto/skidrift/archetypes"
	"github.com/automoto/skidrift/collision"
	"github.com/automoto/skidrift/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateSpace(ecs *ecs.ECS, width, height float64, cell int) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	components.Space.SetValue(space, components.SpaceData{
		Space: collision.NewSpace(int(width), int(height), cell),
	})
	return space
}
