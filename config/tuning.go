package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the YAML override file. Keys that are absent keep the current
// values.
type Tuning struct {
	World    WorldConfig    `yaml:"world"`
	Player   PlayerConfig   `yaml:"player"`
	Thruster ThrusterConfig `yaml:"thruster"`
}

// LoadTuning reads path and applies it over World, Player and Thruster.
// Unknown keys are an error so typos do not pass silently.
func LoadTuning(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	t, err := ParseTuning(data, Tuning{World: World, Player: Player, Thruster: Thruster})
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	World, Player, Thruster = t.World, t.Player, t.Thruster
	return nil
}

// ParseTuning decodes data over base. Empty data returns base.
func ParseTuning(data []byte, base Tuning) (Tuning, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&base); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("unmarshal tuning: %w", err)
	}
	return base, nil
}
