package systems

import (
	"fmt"
	"math"

	"github.com/automoto/skidrift/components"
	"github.com/automoto/skidrift/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi/ecs"
)

const hudMargin = 10

// DrawHUD prints the level name and the player's speed in the top-left corner.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	name := "-"
	if levelData, err := getLevel(ecs); err == nil && levelData.Library.Name() != "" {
		name = levelData.Library.Name()
	}

	line := "level " + name
	if playerEntry, ok := tags.Player.First(ecs.World); ok {
		body := components.Body.Get(playerEntry)
		line += fmt.Sprintf("  speed %.0f", math.Hypot(body.VX, body.VY))
	}
	ebitenutil.DebugPrintAt(screen, line, hudMargin, hudMargin)
}
