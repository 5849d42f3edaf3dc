package systems

import (
	"math"

	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/physics"
	"github.com/automoto/skidrift/shared/gamemath"
	"github.com/automoto/skidrift/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateParticles keeps each thruster behind its player, eases its rate when
// thrust starts or stops, then ticks every emitter.
func UpdateParticles(ecs *ecs.ECS) {
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		player := components.Player.Get(e)
		if player.Thruster == nil || !player.Thruster.Valid() {
			return
		}
		body := components.Body.Get(e)
		thruster := components.Emitter.Get(player.Thruster)

		x, y, dir := ThrusterPose(body.Body, cfg.Thruster.Offset)
		thruster.SetPosition(x, y)
		thruster.SetDirection(dir)

		if player.Thrusting != player.Burning {
			target := cfg.Thruster.IdleRate
			if player.Thrusting {
				target = cfg.Thruster.BurnRate
			}
			thruster.RampRate(target, cfg.Thruster.RampSeconds)
			player.Burning = player.Thrusting
		}
	})

	dt := TickSeconds()
	components.Emitter.Each(ecs.World, func(e *donburi.Entry) {
		components.Emitter.Get(e).Tick(dt)
	})
}

// ThrusterPose places an emitter offset units behind b, pointing away from
// its nose.
func ThrusterPose(b *physics.Body, offset float64) (x, y, direction float64) {
	r := gamemath.Radians(b.Rot)
	return b.X - math.Sin(r)*offset, b.Y - math.Cos(r)*offset, b.Rot + 90
}
