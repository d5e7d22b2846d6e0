package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Display DisplayConfig `toml:"display"`
	Spawn   SpawnConfig   `toml:"spawn"`
	Logging LoggingConfig `toml:"logging"`
	Scene   SceneConfig   `toml:"scene"`
}

type DisplayConfig struct {
	Width    int           `toml:"width"`  // 0 = terminal width
	Height   int           `toml:"height"` // 0 = terminal height
	TickRate time.Duration `toml:"tick_rate"`
}

// SpawnConfig is the burst used for clicks when the scene names no default.
type SpawnConfig struct {
	Burst       int     `toml:"burst"`
	SpeedMin    float64 `toml:"speed_min"`    // cells per second
	SpeedMax    float64 `toml:"speed_max"`    // cells per second
	LifetimeMin float64 `toml:"lifetime_min"` // seconds
	LifetimeMax float64 `toml:"lifetime_max"` // seconds
	Symbol      string  `toml:"symbol"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`
}

type SceneConfig struct {
	Path string `toml:"path"` // empty = no scene file
}

// Load reads the TOML file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Display.Width < 0 || c.Display.Height < 0:
		return errors.New("display size must not be negative")
	case c.Display.TickRate <= 0:
		return errors.New("display.tick_rate must be positive")
	case c.Spawn.Burst < 0:
		return errors.New("spawn.burst must not be negative")
	case c.Spawn.SpeedMin > c.Spawn.SpeedMax:
		return errors.New("spawn.speed_min exceeds spawn.speed_max")
	case c.Spawn.LifetimeMin > c.Spawn.LifetimeMax:
		return errors.New("spawn.lifetime_min exceeds spawn.lifetime_max")
	case c.Spawn.Symbol == "":
		return errors.New("spawn.symbol is empty")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:    80,
			Height:   24,
			TickRate: 33 * time.Millisecond,
		},
		Spawn: SpawnConfig{
			Burst:       50,
			SpeedMin:    2,
			SpeedMax:    20,
			LifetimeMin: 1,
			LifetimeMax: 3,
			Symbol:      "*",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "particles.log",
		},
	}
}
