package components

import (
	"github.com/automoto/skidrift/level"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// LevelData is a singleton holding the level library and the world size the
// level is simulated in.
type LevelData struct {
	Library       *level.Library
	Log           *zap.Logger
	Width, Height float64
}

var Level = donburi.NewComponentType[LevelData]()
