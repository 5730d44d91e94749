// Package config handles forgemesh configuration loading and management.
package config

import (
	"fmt"

	"github.com/philipparndt/forgemesh/pkg/forge"
	"github.com/philipparndt/forgemesh/pkg/macro"
	"github.com/philipparndt/forgemesh/pkg/mesh"
)

// Config holds all settings.
type Config struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Macro      MacroConfig      `yaml:"macro"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ConversionConfig holds the mesh to primitive settings.
type ConversionConfig struct {
	Scale               float64 `yaml:"scale"`
	VerticalOffset      float64 `yaml:"vertical_offset"`
	NormalSource        string  `yaml:"normal_source"` // computed or file
	MaxSubdivisionDepth int     `yaml:"max_subdivision_depth"`
	ForcedTolerance     float64 `yaml:"forced_tolerance"` // degrees around 90
	OpenSCADBinary      string  `yaml:"openscad_binary"`
}

// MacroConfig holds the AutoHotkey output settings.
type MacroConfig struct {
	WindowTitle  string          `yaml:"window_title"`
	StartDelayMs int             `yaml:"start_delay_ms"`
	MenuWaitMs   int             `yaml:"menu_wait_ms"`
	KeyDelays    macro.KeyDelays `yaml:"key_delays"`
	ActionTree   *macro.Action   `yaml:"action_tree"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Conversion: ConversionConfig{
			Scale:               forge.DefaultScale,
			VerticalOffset:      forge.DefaultVerticalOffset,
			NormalSource:        string(mesh.NormalComputed),
			MaxSubdivisionDepth: forge.DefaultMaxDepth,
			ForcedTolerance:     forge.DefaultTolerance,
			OpenSCADBinary:      "openscad",
		},
		Macro: MacroConfig{
			WindowTitle:  macro.DefaultWindowTitle,
			StartDelayMs: macro.DefaultStartDelay,
			MenuWaitMs:   macro.DefaultMenuWait,
			KeyDelays:    macro.DefaultKeyDelays(),
			ActionTree:   macro.DefaultActionTree(),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would otherwise fail deep inside a conversion.
func (c *Config) Validate() error {
	if c.Conversion.Scale <= 0 {
		return fmt.Errorf("conversion.scale must be positive, got %v", c.Conversion.Scale)
	}
	if c.Conversion.MaxSubdivisionDepth <= 0 {
		return fmt.Errorf("conversion.max_subdivision_depth must be positive, got %d", c.Conversion.MaxSubdivisionDepth)
	}
	if c.Conversion.ForcedTolerance <= 0 || c.Conversion.ForcedTolerance >= 45 {
		return fmt.Errorf("conversion.forced_tolerance must be between 0 and 45 degrees, got %v", c.Conversion.ForcedTolerance)
	}
	if _, err := mesh.ParseNormalSource(c.Conversion.NormalSource); err != nil {
		return fmt.Errorf("conversion.normal_source: %w", err)
	}
	if c.Macro.ActionTree == nil {
		return fmt.Errorf("macro.action_tree is empty")
	}
	return nil
}

// Normals returns the configured normal source.
func (c *Config) Normals() mesh.NormalSource {
	source, err := mesh.ParseNormalSource(c.Conversion.NormalSource)
	if err != nil {
		return mesh.NormalComputed
	}
	return source
}

// ForgeOptions returns the decomposition options.
func (c *Config) ForgeOptions() forge.Options {
	return forge.Options{
		Mapper: forge.Mapper{
			Scale:          c.Conversion.Scale,
			VerticalOffset: c.Conversion.VerticalOffset,
		},
		MaxDepth:  c.Conversion.MaxSubdivisionDepth,
		Tolerance: c.Conversion.ForcedTolerance,
	}
}

// MacroOptions returns the script generation options.
func (c *Config) MacroOptions() macro.Options {
	return macro.Options{
		WindowTitle: c.Macro.WindowTitle,
		StartDelay:  c.Macro.StartDelayMs,
		MenuWait:    c.Macro.MenuWaitMs,
		KeyDelays:   c.Macro.KeyDelays,
		Tree:        c.Macro.ActionTree,
	}
}
