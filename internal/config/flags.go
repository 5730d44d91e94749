package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the global CLI overrides.
type Flags struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Scale      float64
	Normals    string
}

// Register adds the global flags to a flag set.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	fs.Float64Var(&f.Scale, "scale", 0, "Mesh to editor scale factor (default from config)")
	fs.StringVar(&f.Normals, "normals", "", "Face normal source: computed or file (default from config)")
}

// Apply applies CLI flag overrides to the config (highest priority).
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Scale > 0 {
		cfg.Conversion.Scale = f.Scale
	}
	if f.Normals != "" {
		cfg.Conversion.NormalSource = f.Normals
	}
}

// Load loads the config file named by the flags and applies the overrides.
func (f *Flags) Load() (*Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	return cfg, cfg.Validate()
}
