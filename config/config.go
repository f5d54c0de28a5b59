// Package config loads the flowlens YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Every field has a usable
// default, so running without a config file is fine.
type Config struct {
	Output struct {
		Dir      string `yaml:"dir"`
		Summary  bool   `yaml:"summary"`
		Key      bool   `yaml:"key"`
		Matrix   bool   `yaml:"matrix"`
		Markdown bool   `yaml:"markdown"`
	} `yaml:"output"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	DB struct {
		Path string `yaml:"path"`
	} `yaml:"db"`
	Logging struct {
		Level        string `yaml:"level"`
		Filename     string `yaml:"filename"`
		MaxSizeMB    int    `yaml:"maxSizeMB"`
		MaxAgeDays   int    `yaml:"maxAgeDays"`
		MaxBackups   int    `yaml:"maxBackups"`
		Compress     bool   `yaml:"compress"`
		LogToConsole bool   `yaml:"logToConsole"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.Output.Dir = "."
	cfg.Output.Summary = true
	cfg.Output.Key = true
	cfg.Output.Matrix = true
	cfg.Output.Markdown = true
	cfg.Server.Port = ":8080"
	cfg.DB.Path = "flowlens.db"
	cfg.Logging.Level = "info"
	cfg.Logging.LogToConsole = true
	cfg.Logging.MaxSizeMB = 50
	cfg.Logging.MaxAgeDays = 14
	cfg.Logging.MaxBackups = 3
	return &cfg
}

// LoadConfig reads a YAML config file, layering it over the defaults.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filePath, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filePath, err)
	}
	return cfg, nil
}

// ResolvePath anchors a "./" path under the given workdir; absolute and
// bare-relative paths pass through untouched.
func ResolvePath(path, workDir string) string {
	if strings.HasPrefix(path, "./") {
		return filepath.Join(workDir, path[2:])
	}
	return path
}
