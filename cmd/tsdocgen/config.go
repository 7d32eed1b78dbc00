package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/tsdocgen/pkg/workspace"
)

// ProjectConfig holds the contents of .tsdocgen/config.yaml.
type ProjectConfig struct {
	Version             string   `yaml:"version"`
	Include             []string `yaml:"include"`
	Exclude             []string `yaml:"exclude"`
	Output              string   `yaml:"output"`
	LogLevel            string   `yaml:"log_level"`
	LogFormat           string   `yaml:"log_format"`
	IncludeDeclarations bool     `yaml:"include_declarations"`
}

// loadProjectConfig reads .tsdocgen/config.yaml under root.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig(root string) (*ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(root, ".tsdocgen", "config.yaml"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// workspaceConfig returns the include/exclude patterns to use, applying
// the fallback chain: project config when it sets them, else defaults.
func workspaceConfig(cfg *ProjectConfig) workspace.Config {
	ws := workspace.DefaultConfig()
	if cfg == nil {
		return ws
	}
	if len(cfg.Include) > 0 {
		ws.Include = cfg.Include
	}
	if len(cfg.Exclude) > 0 {
		ws.Exclude = cfg.Exclude
	}
	return ws
}

// resolveString applies the flag > config > default chain for one
// string-valued setting.
func resolveString(flagValue, configValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return fallback
}
