package factory

import (
	"github.com/automoto/skidrift/archetypes"
	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/particles"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateEmitter spawns an entity for a level emitter.
func CreateEmitter(ecs *ecs.ECS, e *particles.Emitter) *donburi.Entry {
	emitter := archetypes.Emitter.Spawn(ecs)
	components.Emitter.SetValue(emitter, components.EmitterData{Emitter: e})
	return emitter
}

// CreateThruster spawns the player's smoke trail. It idles until thrust
// ramps it up.
func CreateThruster(ecs *ecs.ECS, x, y float64) *donburi.Entry {
	t := cfg.Thruster
	e := particles.NewEmitter(x, y,
		particles.WithMaxParticles(t.MaxParticles),
		particles.WithRate(t.IdleRate),
		particles.WithDirection(90),
		particles.WithSpread(t.Spread),
		particles.WithSpeed(t.Speed, t.SpeedRand),
		particles.WithLifetime(t.Lifetime, t.LifetimeRand),
		particles.WithSize(t.Size, t.SizeRand),
		particles.WithDrag(t.Drag, 0),
	)
	thruster := archetypes.Thruster.Spawn(ecs)
	components.Emitter.SetValue(thruster, components.EmitterData{Emitter: e})
	return thruster
}
