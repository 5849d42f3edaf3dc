package leveldata

import (
	"fmt"
	"image/color"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/automoto/skidrift/level"
	"github.com/automoto/skidrift/particles"
	"github.com/automoto/skidrift/shared/geom"
	"github.com/lafriks/go-tiled"
)

// ImportTMX parses a TMX file into a level. Tiled is y-down and levels are
// y-up, so every y is flipped against the map height. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
func ImportTMX(fsys fs.FS, tmxPath string) (*Map, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	m := &Map{
		Level:  &level.Level{},
		Width:  float64(levelMap.Width) * tileW,
		Height: float64(levelMap.Height) * tileH,
	}
	flip := func(y float64) float64 { return m.Height - y }

	for _, layer := range levelMap.Layers {
		if layer.Name != TileLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				shapeName, rot, style := "all", 0, 0
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					if s := tilesetTile.Properties.GetString("shape"); s != "" {
						shapeName = s
					}
					rot = tilesetTile.Properties.GetInt("rotation")
					style = tilesetTile.Properties.GetInt("style")
				}
				shape, err := level.ParseShape(strings.ToLower(shapeName))
				if err != nil {
					m.Skipped++
					continue
				}

				cx := float64(x)*tileW + tileW/2
				cy := flip(float64(y)*tileH + tileH/2)
				t, err := level.NewTile(shape, cx, cy, float64(rot))
				if err != nil {
					return nil, fmt.Errorf("tile %d,%d: %w", x, y, err)
				}
				if style > 0 && style <= 255 {
					t.Style = uint8(style)
				}
				m.Level.AddTile(t)
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case SpawnGroup:
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				m.Level.Spawn = geom.Point{X: o.X, Y: flip(o.Y)}
			}
		case EmitterGroup:
			for _, o := range og.Objects {
				e, err := emitterFrom(o.Properties, o.X, flip(o.Y))
				if err != nil {
					return nil, fmt.Errorf("emitter %d: %w", o.ID, err)
				}
				m.Level.AddEmitter(e)
			}
		}
	}

	return m, nil
}

// emitterFrom builds an emitter from object properties. Missing properties
// keep the emitter defaults.
func emitterFrom(props tiled.Properties, x, y float64) (*particles.Emitter, error) {
	e := particles.NewEmitter(x, y)
	floats := []struct {
		name string
		dst  *float64
	}{
		{"direction", &e.Direction},
		{"spread", &e.Spread},
		{"rate", &e.Rate},
		{"speed", &e.Template.Speed},
		{"speed_rand", &e.Template.SpeedRand},
		{"rot_vel", &e.Template.RotVel},
		{"rot_vel_rand", &e.Template.RotVelRand},
		{"size", &e.Template.Size},
		{"size_rand", &e.Template.SizeRand},
		{"lifetime", &e.Template.Lifetime},
		{"lifetime_rand", &e.Template.LifetimeRand},
		{"drag", &e.Template.Drag},
	}
	for _, f := range floats {
		raw := props.GetString(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", f.name, err)
		}
		*f.dst = v
	}
	if n := props.GetInt("max_particles"); n > 0 {
		e.MaxParticles = n
	}
	if raw := props.GetString("colour"); raw != "" {
		c, err := parseHex(raw)
		if err != nil {
			return nil, fmt.Errorf("property colour: %w", err)
		}
		e.Template.Colour = c
	}
	return e, nil
}

// parseHex reads #rrggbb or Tiled's #aarrggbb.
func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 8 {
		s = s[2:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q: want #rrggbb", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, nil
}

// ImportAll discovers all .tmx files in levelsDir within fsys, imports each,
// and returns them keyed by stem name plus a sorted list of names.
func ImportAll(fsys fs.FS, levelsDir string) (map[string]*Map, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	maps := make(map[string]*Map, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		m, err := ImportTMX(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("import %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		maps[stem] = m
		names = append(names, stem)
	}

	sort.Strings(names)
	return maps, names, nil
}
