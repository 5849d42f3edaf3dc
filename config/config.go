package config

import (
	"image/color"

	"github.com/automoto/skidrift/shared/geom"
	"github.com/yohamta/donburi/ecs"
)

// Default is the only render layer.
const Default ecs.LayerID = 0

// Config holds the window size.
type Config struct {
	Width  int
	Height int
}

// WorldConfig describes the simulated area. The world is y-up; the renderer
// flips it onto the screen.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	WrapMargin float64 `yaml:"wrap_margin"`
	CellSize   int     `yaml:"cell_size"`
	TPS        int     `yaml:"tps"`
}

// PlayerConfig contains the player body's caps, drag and controls.
type PlayerConfig struct {
	// Caps
	MaxXVel   float64 `yaml:"max_x_vel"`
	MaxYVel   float64 `yaml:"max_y_vel"`
	MaxVel    float64 `yaml:"max_vel"`
	MaxRotVel float64 `yaml:"max_rot_vel"`

	// Drag factors applied every tick
	DragX   float64 `yaml:"drag_x"`
	DragY   float64 `yaml:"drag_y"`
	DragRot float64 `yaml:"drag_rot"`

	// Controls, per tick
	Thrust  float64 `yaml:"thrust"`
	Lateral float64 `yaml:"lateral"`
	Turn    float64 `yaml:"turn"`

	// Hitbox
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Hitbox returns the player's local polygon.
func (p PlayerConfig) Hitbox() []geom.Point {
	w, h := p.Width/2, p.Height/2
	return []geom.Point{{X: -w, Y: -h}, {X: -w, Y: h}, {X: w, Y: h}, {X: w, Y: -h}}
}

// ThrusterConfig tunes the smoke trail behind the player. It is never saved
// with a level.
type ThrusterConfig struct {
	IdleRate     float64 `yaml:"idle_rate"`
	BurnRate     float64 `yaml:"burn_rate"`
	RampSeconds  float64 `yaml:"ramp_seconds"`
	MaxParticles int     `yaml:"max_particles"`
	Spread       float64 `yaml:"spread"`
	Speed        float64 `yaml:"speed"`
	SpeedRand    float64 `yaml:"speed_rand"`
	Lifetime     float64 `yaml:"lifetime"`
	LifetimeRand float64 `yaml:"lifetime_rand"`
	Size         float64 `yaml:"size"`
	SizeRand     float64 `yaml:"size_rand"`
	Drag         float64 `yaml:"drag"`
	Offset       float64 `yaml:"offset"`
}

// LevelsConfig says where level files live.
type LevelsConfig struct {
	Dir     string
	Ext     string
	Start   string
	AppName string
}

// DebugConfig controls the debug overlay.
type DebugConfig struct {
	Enabled   bool
	LineWidth float32
}

var C *Config
var World WorldConfig
var Player PlayerConfig
var Thruster ThrusterConfig
var Levels LevelsConfig
var Debug DebugConfig

// Colours
var (
	Background   = color.RGBA{R: 20, G: 22, B: 30, A: 255}
	TileFill     = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	TileOutline  = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	PlayerColour = color.RGBA{R: 240, G: 180, B: 60, A: 255}
	HUDText      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func init() {
	C = &Config{
		Width:  1280,
		Height: 720,
	}

	World = WorldConfig{
		Width:      1280,
		Height:     720,
		WrapMargin: 5,
		CellSize:   32,
		TPS:        60,
	}

	Player = PlayerConfig{
		MaxXVel:   400,
		MaxYVel:   600,
		MaxVel:    450,
		MaxRotVel: 360,

		DragX:   0.995,
		DragY:   0.995,
		DragRot: 0.9,

		Thrust:  30,
		Lateral: 10,
		Turn:    40,

		Width:  20,
		Height: 32,
	}

	Thruster = ThrusterConfig{
		IdleRate:     4,
		BurnRate:     40,
		RampSeconds:  0.25,
		MaxParticles: 60,
		Spread:       30,
		Speed:        120,
		SpeedRand:    40,
		Lifetime:     0.6,
		LifetimeRand: 0.3,
		Size:         6,
		SizeRand:     4,
		Drag:         0.96,
		Offset:       18,
	}

	Levels = LevelsConfig{
		Dir:     "levels",
		Ext:     ".dat",
		Start:   "level1",
		AppName: "skidrift",
	}

	Debug = DebugConfig{
		Enabled:   false,
		LineWidth: 1,
	}
}
