package engine

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/constraints"

	"github.com/lumine-engine/lumine/engine/core"
)

// ApplicationConfig is the immutable startup configuration. It is loaded
// once, validated, and passed by value into the engine; nothing mutates it
// afterwards.
type ApplicationConfig struct {
	// Window starting position, if the window system honors it.
	StartPosX uint32 `toml:"start_pos_x"`
	StartPosY uint32 `toml:"start_pos_y"`
	// Window dimensions. The window is not resizable.
	StartWidth  uint32 `toml:"start_width"`
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing and instance metadata.
	Name     string        `toml:"name"`
	LogLevel core.LogLevel `toml:"log_level"`

	// Path records where the config was loaded from so the engine can watch
	// it. Empty when defaults were used.
	Path string `toml:"-"`
}

// DefaultConfig matches the window parameters the bootstrap was written
// against: 800x600, fixed size.
func DefaultConfig() ApplicationConfig {
	return ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  800,
		StartHeight: 600,
		Name:        "Lumine",
		LogLevel:    core.LogLevelDebug,
	}
}

// LoadConfig reads a TOML config file over the defaults. A missing file is
// not an error; the defaults apply.
func LoadConfig(path string) (ApplicationConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			core.LogDebug("no config file at %s, using defaults", path)
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	cfg.Path = path
	cfg.sanitize()
	return cfg, nil
}

// sanitize keeps window parameters inside what window systems accept.
func (cfg *ApplicationConfig) sanitize() {
	cfg.StartWidth = clamp(cfg.StartWidth, 160, 7680)
	cfg.StartHeight = clamp(cfg.StartHeight, 120, 4320)
	if cfg.Name == "" {
		cfg.Name = DefaultConfig().Name
	}
}

func clamp[T constraints.Ordered](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
