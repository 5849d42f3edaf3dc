package factory

import (
	"github.com/automoto/skidrift/archetypes"
	"github.com/automoto/skidrift/components"
	"github.com/automoto/skidrift/debug"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateDebug spawns the overlay singleton. Nothing is drawn until enabled.
func CreateDebug(ecs *ecs.ECS, enabled bool) *donburi.Entry {
	entry := archetypes.Debug.Spawn(ecs)
	overlay := debug.NewOverlay()
	components.Debug.SetValue(entry, components.DebugData{
		Overlay:  overlay,
		Registry: debug.NewRegistry(overlay),
		Enabled:  enabled,
	})
	return entry
}
