// Package config loads the demo application's settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the fieldscope binary.
type Config struct {
	SampleRate int     `yaml:"sample_rate"`
	BlockSize  int     `yaml:"block_size"`
	RefreshHz  int     `yaml:"refresh_hz"`
	ShapePair  string  `yaml:"shape_pair"`
	LogFile    string  `yaml:"log_file"`
	Character  float64 `yaml:"character"`
	Mix        float64 `yaml:"mix"`
	GainDb     float64 `yaml:"gain_db"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		SampleRate: 48000,
		BlockSize:  512,
		RefreshHz:  30,
		ShapePair:  "vowel",
		Character:  50,
		Mix:        100,
		GainDb:     0,
	}
}

// Load reads a YAML config file, filling unset fields from defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample_rate %d out of range [8000, 192000]", c.SampleRate)
	}
	if c.BlockSize < 16 || c.BlockSize > 8192 {
		return fmt.Errorf("block_size %d out of range [16, 8192]", c.BlockSize)
	}
	if c.RefreshHz < 1 || c.RefreshHz > 120 {
		return fmt.Errorf("refresh_hz %d out of range [1, 120]", c.RefreshHz)
	}
	switch c.ShapePair {
	case "vowel", "bell", "low", "sub":
	default:
		return fmt.Errorf("unknown shape_pair %q", c.ShapePair)
	}
	if c.Character < 0 || c.Character > 100 {
		return fmt.Errorf("character %.1f out of range [0, 100]", c.Character)
	}
	if c.Mix < 0 || c.Mix > 100 {
		return fmt.Errorf("mix %.1f out of range [0, 100]", c.Mix)
	}
	if c.GainDb < -12 || c.GainDb > 12 {
		return fmt.Errorf("gain_db %.1f out of range [-12, 12]", c.GainDb)
	}
	return nil
}
