package systems

import (
	"errors"
	"fmt"

	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/level"
	"github.com/automoto/skidrift/systems/factory"
	"github.com/automoto/skidrift/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// maxSaveSlots bounds the suffixes tried when a save name is taken.
const maxSaveSlots = 99

var errNoLevelEntity = errors.New("no level entity")

func getLevel(ecs *ecs.ECS) (*components.LevelData, error) {
	entry, ok := components.Level.First(ecs.World)
	if !ok {
		return nil, errNoLevelEntity
	}
	return components.Level.Get(entry), nil
}

// LoadLevel loads name and rebuilds the world around it. On error the
// current level and its entities are left alone.
func LoadLevel(ecs *ecs.ECS, name string) error {
	levelData, err := getLevel(ecs)
	if err != nil {
		return err
	}
	l, err := levelData.Library.Load(name)
	if err != nil {
		return err
	}
	ApplyLevel(ecs, l)
	return nil
}

// ReloadLevel loads name again if its bytes changed. It reports whether the
// world was rebuilt.
func ReloadLevel(ecs *ecs.ECS, name string) (bool, error) {
	levelData, err := getLevel(ecs)
	if err != nil {
		return false, err
	}
	changed, err := levelData.Library.Reload(name)
	if err != nil || !changed {
		return false, err
	}
	ApplyLevel(ecs, levelData.Library.Current())
	return true, nil
}

// ApplyLevel replaces the tile and emitter entities with those of l and puts
// every player back on the spawn point.
func ApplyLevel(ecs *ecs.ECS, l *level.Level) {
	factory.ClearLevel(ecs)
	factory.SpawnLevel(ecs, l)
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		components.Body.Get(e).Reset(l.Spawn.X, l.Spawn.Y)
		components.Player.Get(e).Respawns++
	})
	if err := RegisterDebug(ecs); err != nil {
		if levelData, lerr := getLevel(ecs); lerr == nil {
			levelData.Log.Warn("debug registration failed", zap.Error(err))
		}
	}
}

// SaveLevel writes the current level under its name, or under the first
// free "<name>-<n>" when that name is taken. It returns the name used.
func SaveLevel(ecs *ecs.ECS) (string, error) {
	levelData, err := getLevel(ecs)
	if err != nil {
		return "", err
	}
	lib := levelData.Library
	base := lib.Name()
	if base == "" {
		base = cfg.Levels.Start
	}

	name := base
	for n := 2; n <= maxSaveSlots+1; n++ {
		err = lib.Save(name)
		if !errors.Is(err, level.ErrFileAlreadyExists) {
			return name, err
		}
		name = fmt.Sprintf("%s-%d", base, n)
	}
	return "", err
}

// UpdateLevel handles the save and reload actions.
func UpdateLevel(ecs *ecs.ECS) {
	levelData, err := getLevel(ecs)
	if err != nil {
		return
	}
	input := getOrCreateInput(ecs)
	log := levelData.Log

	if GetAction(input, cfg.ActionSave).JustPressed {
		name, err := SaveLevel(ecs)
		if err != nil {
			log.Error("save failed", zap.Error(err))
			ShowMessage(ecs, "save failed: "+err.Error())
		} else {
			ShowMessage(ecs, "saved "+name)
		}
	}

	if GetAction(input, cfg.ActionReload).JustPressed {
		name := levelData.Library.Name()
		if name == "" {
			name = cfg.Levels.Start
		}
		if err := LoadLevel(ecs, name); err != nil {
			log.Error("reload failed", zap.String("name", name), zap.Error(err))
			ShowMessage(ecs, "reload failed: "+err.Error())
		} else {
			ShowMessage(ecs, "loaded "+name)
		}
	}
}
