package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// MessageData is a singleton status line that fades out.
type MessageData struct {
	Text  string
	Alpha float32
	Fade  *gween.Tween
}

var Message = donburi.NewComponentType[MessageData]()
