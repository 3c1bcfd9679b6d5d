package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides registered on a pflag.FlagSet.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath string
	Debug      bool
	LogFile    string
	Source     string
	Asset      string
	AssetRoots []string
	Local      bool
	Speed      float64
	EndOfPath  string
}

// RegisterFlags registers the config overrides on fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&f.Source, "source", "", "Baked polyline source file")
	fs.StringVar(&f.Asset, "asset", "", "Serialized path asset")
	fs.StringSliceVar(&f.AssetRoots, "asset-root", nil, "Directory to search for relative assets (repeatable)")
	fs.BoolVar(&f.Local, "local", false, "Keep the path in its local frame")
	fs.Float64Var(&f.Speed, "speed", 0, "Follower speed in units per second")
	fs.StringVar(&f.EndOfPath, "end-of-path", "", "Follower end-of-path policy (loop, reverse, stop)")
	return f
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Source != "" {
		cfg.Path.Source = f.Source
	}
	if f.Asset != "" {
		cfg.Path.Asset = f.Asset
	}
	if len(f.AssetRoots) > 0 {
		cfg.Path.AssetRoots = append(cfg.Path.AssetRoots, f.AssetRoots...)
	}
	if f.changed("local") {
		cfg.Path.LocalFrame = f.Local
	}
	if f.changed("speed") {
		cfg.Follower.Speed = f.Speed
	}
	if f.EndOfPath != "" {
		cfg.Follower.EndOfPath = f.EndOfPath
	}
}
