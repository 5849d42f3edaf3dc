package systems

import (
	"io/fs"
	"testing"

	"github.com/automoto/skidrift/components"
	cfg "github.com/automoto/skidrift/config"
	"github.com/automoto/skidrift/physics"
	"github.com/automoto/skidrift/systems/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type held []cfg.ActionID

func (h held) Poll(actions *[cfg.ActionCount]bool) components.InputMethod {
	for _, id := range h {
		actions[id] = true
	}
	return components.InputKeyboard
}

type items map[string][]byte

func (m items) LoadItem(key string) ([]byte, error) {
	data, ok := m[key]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: key, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m items) SaveItem(key string, data []byte) error {
	m[key] = data
	return nil
}

func TestThrusterPose(t *testing.T) {
	cases := []struct {
		name       string
		rot        float64
		wx, wy, wd float64
	}{
		{"upright", 0, 100, 90, 90},
		{"quarter_turn", 90, 90, 100, 180},
		{"upside_down", 180, 100, 110, 270},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := physics.New(100, 100, cfg.Player.Hitbox(), factory.BodyConfig(cfg.Player))
			b.Rot = c.rot
			x, y, dir := ThrusterPose(b, 10)
			assert.InDelta(t, c.wx, x, 1e-9)
			assert.InDelta(t, c.wy, y, 1e-9)
			assert.InDelta(t, c.wd, dir, 1e-9)
		})
	}
}

func TestUpdatePlayerMapsActions(t *testing.T) {
	cases := []struct {
		name    string
		actions held
		check   func(t *testing.T, b *physics.Body)
	}{
		{"thrust_goes_up", held{cfg.ActionThrust}, func(t *testing.T, b *physics.Body) {
			assert.InDelta(t, 0, b.VX, 1e-9)
			assert.InDelta(t, cfg.Player.Thrust, b.VY, 1e-9)
		}},
		{"brake_goes_down", held{cfg.ActionBrake}, func(t *testing.T, b *physics.Body) {
			assert.InDelta(t, -cfg.Player.Thrust, b.VY, 1e-9)
		}},
		{"strafe_right", held{cfg.ActionStrafeRight}, func(t *testing.T, b *physics.Body) {
			assert.InDelta(t, cfg.Player.Lateral, b.VX, 1e-9)
		}},
		{"turn_right_is_clockwise", held{cfg.ActionTurnRight}, func(t *testing.T, b *physics.Body) {
			assert.Equal(t, cfg.Player.Turn, b.VRot)
		}},
		{"turns_cancel", held{cfg.ActionTurnLeft, cfg.ActionTurnRight}, func(t *testing.T, b *physics.Body) {
			assert.Zero(t, b.VRot)
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := ecs.NewECS(donburi.NewWorld())
			SetInputSource(e, c.actions)
			entry := factory.CreatePlayer(e, 0, 0)

			UpdateInput(e)
			UpdatePlayer(e)

			c.check(t, components.Body.Get(entry).Body)
			assert.Equal(t, c.actions[0] == cfg.ActionThrust, components.Player.Get(entry).Thrusting)
		})
	}
}

func TestAccelerateLogsRejectedMode(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	core, logs := observer.New(zapcore.ErrorLevel)
	factory.CreateLevel(e, nil, zap.New(core), 100, 100)
	body := components.Body.Get(factory.CreatePlayer(e, 0, 0)).Body

	accelerate(e, body, 1, 1, physics.Mode(42))
	assert.Zero(t, body.VX)
	assert.Zero(t, body.VY)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "acceleration rejected", logs.All()[0].Message)

	accelerate(e, body, 0, -2, physics.Absolute)
	assert.InDelta(t, -2, body.VY, 1e-9)
	assert.Equal(t, 1, logs.Len())
}

func TestGetAction(t *testing.T) {
	input := &components.InputData{}
	input.Current[cfg.ActionSave] = true
	assert.Equal(t, components.ActionState{Pressed: true, JustPressed: true}, GetAction(input, cfg.ActionSave))

	input.Previous = input.Current
	assert.Equal(t, components.ActionState{Pressed: true}, GetAction(input, cfg.ActionSave))

	input.Current[cfg.ActionSave] = false
	assert.Equal(t, components.ActionState{JustReleased: true}, GetAction(input, cfg.ActionSave))
}

func TestSession(t *testing.T) {
	store := items{}
	s, err := LoadSession(store)
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, SaveSession(store, &Session{LastLevel: "level3", Debug: true}))
	s, err = LoadSession(store)
	require.NoError(t, err)
	assert.Equal(t, &Session{LastLevel: "level3", Debug: true}, s)

	store[sessionKey] = []byte("{")
	_, err = LoadSession(store)
	require.Error(t, err)
}

func TestMessageFades(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	entry := factory.CreateMessage(e)
	ShowMessage(e, "saved level1")

	msg := components.Message.Get(entry)
	assert.Equal(t, float32(1), msg.Alpha)

	for i := 0; i < int(messageSeconds*float64(cfg.World.TPS))+2; i++ {
		UpdateMessage(e)
	}
	assert.Empty(t, msg.Text)
	assert.Zero(t, msg.Alpha)
}
