package scenes

import (
	"errors"
	"sync"

	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/level"
	"github.com/automoto/skidrift/shared/geom"
	"github.com/automoto/skidrift/systems"
	"github.com/automoto/skidrift/systems/factory"
	"github.com/automoto/skidrift/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// InputSource supplies the thrust, lateral and turn intent read each tick.
type InputSource = components.InputSource

// Options wires a LevelScene to the outside world. Only Library is required.
type Options struct {
	Library *level.Library
	Input   InputSource
	Log     *zap.Logger

	// Start names the first level. Empty means the last session's level,
	// then config.Levels.Start.
	Start string
	Debug bool

	// Session persists the last level and overlay state. Optional.
	Session systems.ItemStore

	// Changes carries names of level files changed on disk. Optional.
	Changes <-chan string
	Errors  <-chan error
}

// LevelScene runs one level: the player body, the level's tiles and
// emitters, and the player's thruster.
type LevelScene struct {
	ecs    *ecs.ECS
	opts   Options
	player *donburi.Entry
	once   sync.Once
	err    error
}

func NewLevelScene(opts Options) *LevelScene {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &LevelScene{opts: opts}
}

// Load builds the world and loads the first level. Update calls it on first
// use.
func (ls *LevelScene) Load() error {
	ls.once.Do(func() { ls.err = ls.configure() })
	return ls.err
}

func (ls *LevelScene) Update() error {
	if err := ls.Load(); err != nil {
		return err
	}
	ls.drainChanges()
	ls.ecs.Update()
	return nil
}

func (ls *LevelScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.Background)
	if ls.ecs == nil {
		return
	}
	ls.ecs.Draw(screen)
}

// ECS exposes the scene's world.
func (ls *LevelScene) ECS() *ecs.ECS {
	return ls.ecs
}

// Unload remembers the session and releases the current level.
func (ls *LevelScene) Unload() {
	if ls.ecs == nil {
		return
	}
	if ls.opts.Session != nil {
		s := &systems.Session{LastLevel: ls.opts.Library.Name()}
		if entry, ok := components.Debug.First(ls.ecs.World); ok {
			s.Debug = components.Debug.Get(entry).Enabled
		}
		if err := systems.SaveSession(ls.opts.Session, s); err != nil {
			ls.opts.Log.Warn("session not saved", zap.Error(err))
		}
	}
	tags.Thruster.Each(ls.ecs.World, func(e *donburi.Entry) {
		components.Emitter.Get(e).Release()
	})
	factory.ClearLevel(ls.ecs)
	ls.opts.Library.Unload()
	ls.ecs = nil
}

func (ls *LevelScene) configure() error {
	if ls.opts.Library == nil {
		return errors.New("level scene: no library")
	}
	start, debugOn := ls.restoreSession()

	e := ecs.NewECS(donburi.NewWorld())

	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.UpdateDebug)
	e.AddSystem(systems.UpdateLevel)
	e.AddSystem(systems.UpdatePlayer)
	e.AddSystem(systems.UpdatePhysics)
	e.AddSystem(systems.UpdateParticles)
	e.AddSystem(systems.UpdateMessage)

	e.AddRenderer(cfg.Default, systems.DrawLevel)
	e.AddRenderer(cfg.Default, systems.DrawParticles)
	e.AddRenderer(cfg.Default, systems.DrawPlayer)
	e.AddRenderer(cfg.Default, systems.DrawDebug)
	e.AddRenderer(cfg.Default, systems.DrawHUD)
	e.AddRenderer(cfg.Default, systems.DrawMessage)

	ls.ecs = e

	systems.SetInputSource(e, ls.opts.Input)
	factory.CreateDebug(e, debugOn)
	factory.CreateMessage(e)
	factory.CreateLevel(e, ls.opts.Library, ls.opts.Log, cfg.World.Width, cfg.World.Height)
	factory.CreateSpace(e, cfg.World.Width, cfg.World.Height, cfg.World.CellSize)

	ls.player = factory.CreatePlayer(e, cfg.World.Width/2, cfg.World.Height/2)
	systems.WatchPlayer(e, ls.player)

	// A level set on the library beforehand, such as an import, wins.
	if l := ls.opts.Library.Current(); l != nil {
		systems.ApplyLevel(e, l)
		return nil
	}

	err := systems.LoadLevel(e, start)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, level.ErrFileNotFound):
		ls.opts.Log.Warn("level not found, starting empty", zap.String("name", start))
		l := &level.Level{
			Version: ls.opts.Library.Codec().Current,
			Spawn:   geom.Point{X: cfg.World.Width / 2, Y: cfg.World.Height / 2},
		}
		ls.opts.Library.Set(start, l)
		systems.ApplyLevel(e, l)
		return nil
	default:
		return err
	}
}

func (ls *LevelScene) restoreSession() (start string, debugOn bool) {
	start, debugOn = ls.opts.Start, ls.opts.Debug
	if ls.opts.Session != nil {
		s, err := systems.LoadSession(ls.opts.Session)
		if err != nil {
			ls.opts.Log.Warn("session ignored", zap.Error(err))
		} else if s != nil {
			if start == "" {
				start = s.LastLevel
			}
			debugOn = debugOn || s.Debug
		}
	}
	if start == "" {
		start = cfg.Levels.Start
	}
	return start, debugOn
}

// drainChanges reloads the current level when its file changed on disk.
func (ls *LevelScene) drainChanges() {
	for {
		select {
		case name, ok := <-ls.opts.Changes:
			if !ok {
				ls.opts.Changes = nil
				continue
			}
			if name != ls.opts.Library.Name() {
				continue
			}
			changed, err := systems.ReloadLevel(ls.ecs, name)
			if err != nil {
				ls.opts.Log.Warn("hot reload failed", zap.String("name", name), zap.Error(err))
				systems.ShowMessage(ls.ecs, "reload failed: "+err.Error())
			} else if changed {
				systems.ShowMessage(ls.ecs, "reloaded "+name)
			}
		case err, ok := <-ls.opts.Errors:
			if !ok {
				ls.opts.Errors = nil
				continue
			}
			ls.opts.Log.Warn("level watcher", zap.Error(err))
		default:
			return
		}
	}
}
