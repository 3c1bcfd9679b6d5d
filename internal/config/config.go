// Package config handles pathtool configuration loading and management.
package config

import "time"

// Config holds all pathtool settings.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Path     PathConfig     `yaml:"path"`
	Follower FollowerConfig `yaml:"follower"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format" validate:"omitempty,oneof=console json"`
}

// PathConfig describes where the baked polyline comes from and where the
// serialized asset goes.
type PathConfig struct {
	Source        string        `yaml:"source"`     // baked polyline source (YAML)
	Asset         string        `yaml:"asset"`      // serialized .vpa output
	LocalFrame    bool          `yaml:"local_frame"` // ignore the source frame
	WatchDebounce time.Duration `yaml:"watch_debounce" validate:"gte=0"`
	AssetRoots    []string      `yaml:"asset_roots"` // searched last to first for relative assets
}

// FollowerConfig holds settings for the path follower.
type FollowerConfig struct {
	Speed     float64 `yaml:"speed"`
	EndOfPath string  `yaml:"end_of_path" validate:"endofpath"`
	TickRate  int     `yaml:"tick_rate" validate:"gt=0,lte=1000"` // updates per second
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Path: PathConfig{
			Source:        "path.yaml",
			Asset:         "path.vpa",
			WatchDebounce: 200 * time.Millisecond,
		},
		Follower: FollowerConfig{
			Speed:     5,
			EndOfPath: "loop",
			TickRate:  60,
		},
	}
}

// TickInterval returns the follower update period.
func (f FollowerConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(f.TickRate)
}
