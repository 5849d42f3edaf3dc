package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/level"
	"github.com/automoto/skidrift/logging"
	"github.com/automoto/skidrift/scenes"
	"github.com/automoto/skidrift/shared/leveldata"
	"github.com/automoto/skidrift/storage"
	"github.com/automoto/skidrift/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

type Game struct {
	scene *scenes.LevelScene
}

func (g *Game) Update() error {
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

type flags struct {
	level    string
	debug    bool
	tuning   string
	versions string
	importTo string
	drafts   bool
	logLevel string
	dev      bool
}

func main() {
	var f flags
	flag.StringVar(&f.level, "level", "", "level to start on (default: last played)")
	flag.BoolVar(&f.debug, "debug", false, "start with the debug overlay on")
	flag.StringVar(&f.tuning, "tuning", "", "YAML file overriding world, player and thruster values")
	flag.StringVar(&f.versions, "versions", "", "level format version file")
	flag.StringVar(&f.importTo, "import", "", "directory of .tmx maps to convert into levels before starting")
	flag.BoolVar(&f.drafts, "drafts", false, "load and save levels in the per-user profile")
	flag.StringVar(&f.logLevel, "log-level", "info", "log level")
	flag.BoolVar(&f.dev, "dev", false, "human readable logs")
	flag.Parse()

	logger, err := logging.New(logging.Options{Level: f.logLevel, Development: f.dev})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, f); err != nil {
		logger.Fatal("skidrift stopped", zap.Error(err))
	}
}

func run(log *zap.Logger, f flags) error {
	if f.tuning != "" {
		if err := config.LoadTuning(f.tuning); err != nil {
			return err
		}
	}

	versions := config.Versions{Current: 1, Supported: []uint8{1}}
	if f.versions != "" {
		v, err := config.LoadVersions(f.versions)
		if err != nil {
			return err
		}
		versions = v
	}
	codec := level.NewCodec(versions.Current, versions.Supported...)

	dir := storage.NewDir(config.Levels.Dir, config.Levels.Ext)
	if err := os.MkdirAll(dir.Root, 0o755); err != nil {
		return fmt.Errorf("levels dir: %w", err)
	}

	profile, err := storage.OpenProfile(config.Levels.AppName)
	if err != nil {
		log.Warn("profile unavailable", zap.Error(err))
		profile = nil
	}

	var store storage.Store = dir
	if f.drafts {
		if profile == nil {
			return errors.New("drafts need a profile")
		}
		store = profile
	}

	if f.importTo != "" {
		if err := importLevels(log, codec, store, f.importTo); err != nil {
			return err
		}
	}

	opts := scenes.Options{
		Library: level.NewLibrary(codec, store, log),
		Input:   &systems.KeyboardSource{},
		Log:     log,
		Start:   f.level,
		Debug:   f.debug || config.Debug.Enabled,
	}
	if profile != nil {
		opts.Session = profile
	}
	if !f.drafts {
		watcher, err := storage.NewWatcher(dir)
		if err != nil {
			log.Warn("hot reload disabled", zap.Error(err))
		} else {
			defer func() { _ = watcher.Close() }()
			opts.Changes = watcher.Events
			opts.Errors = watcher.Errors
		}
	}

	scene := scenes.NewLevelScene(opts)
	if err := scene.Load(); err != nil {
		return err
	}
	defer scene.Unload()

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("skidrift")
	ebiten.SetTPS(config.World.TPS)

	return ebiten.RunGame(&Game{scene: scene})
}

// importLevels converts every map in tmxDir and stores the ones not already
// present.
func importLevels(log *zap.Logger, codec level.Codec, store storage.Store, tmxDir string) error {
	fsys := os.DirFS(filepath.Dir(tmxDir))
	maps, names, err := leveldata.ImportAll(fsys, filepath.Base(tmxDir))
	if err != nil {
		return err
	}
	for _, name := range names {
		m := maps[name]
		data, err := codec.Encode(m.Level)
		if err != nil {
			return fmt.Errorf("import %s: %w", name, err)
		}
		err = store.Write(name, data)
		switch {
		case errors.Is(err, fs.ErrExist):
			log.Info("import skipped, level exists", zap.String("name", name))
		case err != nil:
			return fmt.Errorf("import %s: %w", name, err)
		default:
			log.Info("level imported",
				zap.String("name", name),
				zap.Int("tiles", len(m.Level.Tiles)),
				zap.Int("skipped", m.Skipped),
			)
		}
		m.Level.Release()
	}
	return nil
}
