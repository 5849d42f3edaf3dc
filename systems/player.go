package systems

import (
	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/physics"
	"github.com/automoto/skidrift/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer turns held actions into heading-relative thrust and turning.
// Must run after UpdateInput and before UpdatePhysics.
func UpdatePlayer(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	p := cfg.Player

	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		player := components.Player.Get(e)

		var forward, lateral, turn float64
		if GetAction(input, cfg.ActionThrust).Pressed {
			forward += p.Thrust
		}
		if GetAction(input, cfg.ActionBrake).Pressed {
			forward -= p.Thrust
		}
		if GetAction(input, cfg.ActionStrafeLeft).Pressed {
			lateral -= p.Lateral
		}
		if GetAction(input, cfg.ActionStrafeRight).Pressed {
			lateral += p.Lateral
		}
		// Positive rotation is clockwise on screen
		if GetAction(input, cfg.ActionTurnLeft).Pressed {
			turn -= p.Turn
		}
		if GetAction(input, cfg.ActionTurnRight).Pressed {
			turn += p.Turn
		}

		if forward != 0 || lateral != 0 {
			accelerate(ecs, body.Body, lateral, forward, physics.Relative)
		}
		if turn != 0 {
			body.AccelerateRotation(turn)
		}
		player.Thrusting = forward > 0
	})
}
