package systems

import (
	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/physics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// TickSeconds is the fixed timestep.
func TickSeconds() float64 {
	if cfg.World.TPS <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(cfg.World.TPS)
}

// UpdatePhysics applies gravity, resolves contacts, integrates and wraps
// every body, in that order.
func UpdatePhysics(ecs *ecs.ECS) {
	gravity := 0.0
	width, height := cfg.World.Width, cfg.World.Height
	if entry, ok := components.Level.First(ecs.World); ok {
		levelData := components.Level.Get(entry)
		if l := levelData.Library.Current(); l != nil {
			gravity = l.Gravity
		}
		if levelData.Width > 0 && levelData.Height > 0 {
			width, height = levelData.Width, levelData.Height
		}
	}

	dt := TickSeconds()
	components.Body.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)

		// Gravity is a per-tick impulse
		if gravity != 0 {
			accelerate(ecs, body.Body, 0, -gravity, physics.Absolute)
		}
		body.ResolveContacts()
		body.Integrate(dt)
		body.WrapWithin(width, height, cfg.World.WrapMargin)
	})
}

// accelerate applies an acceleration and logs a rejected mode through the
// level logger.
func accelerate(ecs *ecs.ECS, body *physics.Body, x, y float64, mode physics.Mode) {
	if err := body.Accelerate(x, y, mode); err != nil {
		levelLogger(ecs).Error("acceleration rejected", zap.Error(err))
	}
}

func levelLogger(ecs *ecs.ECS) *zap.Logger {
	if levelData, err := getLevel(ecs); err == nil && levelData.Log != nil {
		return levelData.Log
	}
	return zap.NewNop()
}
