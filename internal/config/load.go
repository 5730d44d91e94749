package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the standard locations.
const FileName = "forgemesh.yaml"

// Load loads configuration with priority: defaults < file. An empty path
// searches the standard locations; CLI flags are applied by the caller.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "forgemesh")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "forgemesh")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "forgemesh")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "forgemesh")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Key delays merge per key; an action tree in the file replaces the default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var tree struct {
		Macro struct {
			ActionTree *yaml.Node `yaml:"action_tree"`
		} `yaml:"macro"`
	}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	if tree.Macro.ActionTree != nil {
		cfg.Macro.ActionTree = nil
	}

	return yaml.Unmarshal(data, cfg)
}
