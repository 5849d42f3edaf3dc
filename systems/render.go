package systems

import (
	"image/color"

	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/shared/geom"
	"github.com/automoto/skidrift/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// The world is y-up. screenY flips a world y onto the screen.
func screenY(ecs *ecs.ECS, y float64) float32 {
	h := cfg.World.Height
	if entry, ok := components.Level.First(ecs.World); ok {
		if lh := components.Level.Get(entry).Height; lh > 0 {
			h = lh
		}
	}
	return float32(h - y)
}

func strokePolygon(ecs *ecs.ECS, screen *ebiten.Image, pts []geom.Point, width float32, c color.Color) {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		vector.StrokeLine(screen,
			float32(a.X), screenY(ecs, a.Y),
			float32(b.X), screenY(ecs, b.Y),
			width, c, true)
	}
}

// DrawLevel outlines every tile with its fill colour and, when set, its
// outline colour on top.
func DrawLevel(ecs *ecs.ECS, screen *ebiten.Image) {
	tags.Tile.Each(ecs.World, func(e *donburi.Entry) {
		tile := components.Tile.Get(e)
		pts := tile.Hitbox.Points()

		fill := cfg.TileFill
		if tile.Fill != nil {
			fill = *tile.Fill
		}
		strokePolygon(ecs, screen, pts, 3, fill)

		if tile.Outline {
			outline := cfg.TileOutline
			if tile.OutlineColour != nil {
				outline = *tile.OutlineColour
			}
			strokePolygon(ecs, screen, pts, 1, outline)
		}
	})
}

func DrawPlayer(ecs *ecs.ECS, screen *ebiten.Image) {
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		strokePolygon(ecs, screen, body.Hitbox.Points(), 2, cfg.PlayerColour)
	})
}

// DrawParticles renders each particle as a square fading with age.
func DrawParticles(ecs *ecs.ECS, screen *ebiten.Image) {
	components.Emitter.Each(ecs.World, func(e *donburi.Entry) {
		for _, p := range components.Emitter.Get(e).Particles() {
			c := p.Colour
			if p.Lifetime > 0 {
				c = fade(c, 1-p.Age/p.Lifetime)
			}
			half := float32(p.Size / 2)
			vector.FillRect(screen,
				float32(p.X)-half, screenY(ecs, p.Y)-half,
				2*half, 2*half, c, false)
		}
	})
}

// fade scales a premultiplied colour by f.
func fade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}
