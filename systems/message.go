package systems

import (
	"github.com/automoto/skidrift/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

const (
	messageSeconds = 2.5
	messageX       = 10
	messageY       = 40
)

// ShowMessage puts text on the status line and starts its fade.
func ShowMessage(ecs *ecs.ECS, text string) {
	entry, ok := components.Message.First(ecs.World)
	if !ok {
		return
	}
	msg := components.Message.Get(entry)
	msg.Text = text
	msg.Alpha = 1
	msg.Fade = gween.New(1, 0, messageSeconds, ease.InQuad)
}

// UpdateMessage advances the status line fade.
func UpdateMessage(ecs *ecs.ECS) {
	entry, ok := components.Message.First(ecs.World)
	if !ok {
		return
	}
	msg := components.Message.Get(entry)
	if msg.Fade == nil {
		return
	}
	alpha, done := msg.Fade.Update(float32(TickSeconds()))
	msg.Alpha = alpha
	if done {
		msg.Fade = nil
		msg.Text = ""
		msg.Alpha = 0
	}
}

func DrawMessage(ecs *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Message.First(ecs.World)
	if !ok {
		return
	}
	msg := components.Message.Get(entry)
	if msg.Text == "" || msg.Alpha <= 0 {
		return
	}
	ebitenutil.DebugPrintAt(screen, msg.Text, messageX, messageY)
}
