package systems

import (
	"errors"
	"fmt"

	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/debug"
	"github.com/automoto/skidrift/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var debugGroups = []string{tags.GroupTiles, tags.GroupPlayer, tags.GroupParticles}

func getDebug(ecs *ecs.ECS) (*components.DebugData, bool) {
	entry, ok := components.Debug.First(ecs.World)
	if !ok {
		return nil, false
	}
	return components.Debug.Get(entry), true
}

// RegisterDebug rebuilds the registry groups from the entities in the world
// and enables them when the overlay is on.
func RegisterDebug(ecs *ecs.ECS) error {
	dbg, ok := getDebug(ecs)
	if !ok {
		return nil
	}
	reg := dbg.Registry
	for _, g := range debugGroups {
		if err := reg.RemoveGroup(g); err != nil && !errors.Is(err, debug.ErrUnknownGroup) {
			return err
		}
	}

	var hitboxes, bodies, emitters []debug.Debuggable
	tags.Tile.Each(ecs.World, func(e *donburi.Entry) {
		hitboxes = append(hitboxes, components.Tile.Get(e).Hitbox)
	})
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		bodies = append(bodies, components.Body.Get(e).Body)
	})
	components.Emitter.Each(ecs.World, func(e *donburi.Entry) {
		emitters = append(emitters, components.Emitter.Get(e).Emitter)
	})

	for _, g := range []struct {
		name    string
		members []debug.Debuggable
	}{
		{tags.GroupTiles, hitboxes},
		{tags.GroupPlayer, bodies},
		{tags.GroupParticles, emitters},
	} {
		if _, err := reg.AddGroup(g.name, g.members...); err != nil {
			return err
		}
	}
	return setDebugGroups(dbg, dbg.Enabled)
}

func setDebugGroups(dbg *components.DebugData, on bool) error {
	for _, g := range debugGroups {
		var err error
		if on {
			err = dbg.Registry.EnableGroup(g)
		} else {
			err = dbg.Registry.DisableGroup(g)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WatchPlayer adds the player's pose and contact state to the values panel.
func WatchPlayer(ecs *ecs.ECS, player *donburi.Entry) {
	dbg, ok := getDebug(ecs)
	if !ok {
		return
	}
	body := components.Body.Get(player).Body
	dbg.Registry.Watch("pos", func() string {
		return fmt.Sprintf("%.1f, %.1f", body.X, body.Y)
	})
	dbg.Registry.Watch("vel", func() string {
		return fmt.Sprintf("%.1f, %.1f", body.VX, body.VY)
	})
	dbg.Registry.Watch("rot", func() string {
		return fmt.Sprintf("%.1f (%.1f/s)", body.Rot, body.VRot)
	})
	dbg.Registry.Watch("landed", func() string {
		if !body.Landed {
			return "no"
		}
		return fmt.Sprintf("side %.2f rad, friction %.2f", body.LastContact.Side.Angle(), body.LastContact.Friction)
	})
	dbg.Registry.Watch("nearby", func() string {
		return fmt.Sprint(body.Nearby())
	})
}

// UpdateDebug handles the overlay toggles.
func UpdateDebug(ecs *ecs.ECS) {
	dbg, ok := getDebug(ecs)
	if !ok {
		return
	}
	input := getOrCreateInput(ecs)

	if GetAction(input, cfg.ActionToggleDebug).JustPressed {
		dbg.Enabled = !dbg.Enabled
		_ = setDebugGroups(dbg, dbg.Enabled)
	}
	if GetAction(input, cfg.ActionToggleValues).JustPressed {
		dbg.Values = !dbg.Values
		dbg.Registry.ShowValues(dbg.Values)
	}
}

// DrawDebug draws every overlay line in world space and the watched values
// in the top-right corner.
func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	dbg, ok := getDebug(ecs)
	if !ok {
		return
	}
	dbg.Overlay.Each(func(l debug.Line) {
		vector.StrokeLine(screen,
			float32(l.X0), screenY(ecs, l.Y0),
			float32(l.X1), screenY(ecs, l.Y1),
			cfg.Debug.LineWidth, l.Colour, false)
	})

	x := screen.Bounds().Dx() - 260
	for i, v := range dbg.Registry.Values() {
		ebitenutil.DebugPrintAt(screen, v, x, 10+i*16)
	}
}
