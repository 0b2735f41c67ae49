// Package config loads the game's settings from YAML, a .env file and
// environment variables.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Environment overrides, applied after the YAML file.
const (
	EnvDB        = "PLATFORMER_DB"
	EnvLogLevel  = "PLATFORMER_LOG_LEVEL"
	EnvLives     = "PLATFORMER_LIVES"
	EnvHotReload = "PLATFORMER_HOT_RELOAD"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Audio   AudioConfig   `yaml:"audio"`
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Dev     DevConfig     `yaml:"dev"`

	// Source is the file the config was read from, or "embedded".
	Source string `yaml:"-"`
}

type WindowConfig struct {
	Title      string  `yaml:"title"`
	Scale      float64 `yaml:"scale"`
	Fullscreen bool    `yaml:"fullscreen"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Master  float64 `yaml:"master"`
	Music   float64 `yaml:"music"`
	SFX     float64 `yaml:"sfx"`
}

type GameConfig struct {
	Lives      int     `yaml:"lives"`
	StartLevel int     `yaml:"start_level"`
	MaxDelta   float64 `yaml:"max_delta"`
}

type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type DevConfig struct {
	HotReload bool `yaml:"hot_reload"`
	ShowGoal  bool `yaml:"show_goal"`
}

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	cfg.Source = "embedded"
	return cfg
}

// Load reads the configuration.
// Search order: customPath -> ~/.platformer/config.yaml -> ./configs/config.yaml -> embedded default.
// Values in the file override the defaults; environment variables (after
// loading .env if present) override the file.
func Load(customPath string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if customPath != "" {
		if err := readInto(&cfg, customPath); err != nil {
			return cfg, err
		}
	} else {
		for _, p := range []string{userConfigPath(), filepath.Join("configs", "config.yaml")} {
			if p == "" {
				continue
			}
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := readInto(&cfg, p); err != nil {
				return cfg, err
			}
			break
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readInto(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Source = path
	return nil
}

// userConfigPath returns the per-user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "config.yaml")
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDB); ok && v != "" {
		c.Storage.DBPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLives); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvLives, v, err)
		}
		c.Game.Lives = n
	}
	if v, ok := lookup(EnvHotReload); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvHotReload, v, err)
		}
		c.Dev.HotReload = b
	}
	return nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	if c.Game.Lives <= 0 {
		return fmt.Errorf("%w: game.lives must be positive, got %d", ErrInvalid, c.Game.Lives)
	}
	if c.Game.MaxDelta <= 0 {
		return fmt.Errorf("%w: game.max_delta must be positive", ErrInvalid)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("%w: window.scale must be positive", ErrInvalid)
	}
	for name, v := range map[string]float64{
		"audio.master": c.Audio.Master,
		"audio.music":  c.Audio.Music,
		"audio.sfx":    c.Audio.SFX,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be in [0,1], got %v", ErrInvalid, name, v)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
