package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts Go duration strings ("2s", "500ms") in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the optional YAML project configuration. Command-line flags
// override any value set here.
type Config struct {
	// TemplateRoot is the directory scanned for frame templates.
	TemplateRoot string `yaml:"template_root"`

	// ControllerRoot is the directory scanned for client-side controllers.
	// Empty disables controller discovery.
	ControllerRoot string `yaml:"controller_root"`

	Generate struct {
		// Out is the path the generated routing module is written to.
		// Empty disables generation.
		Out string `yaml:"out"`
		// Package is the generated module's package name (default: "routes").
		Package string `yaml:"package"`
	} `yaml:"generate"`

	Watch struct {
		// Interval is the polling frequency (default: 1s).
		Interval Duration `yaml:"interval"`
		// Debounce is the quiet period before a rebuild fires (default: 300ms).
		Debounce Duration `yaml:"debounce"`
	} `yaml:"watch"`
}

func (c *Config) defaults() {
	if c.TemplateRoot == "" {
		c.TemplateRoot = "."
	}
	if c.Generate.Package == "" {
		c.Generate.Package = "routes"
	}
	if c.Watch.Interval <= 0 {
		c.Watch.Interval = Duration(time.Second)
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = Duration(300 * time.Millisecond)
	}
}

// loadConfig reads a YAML config file. A missing path returns an empty
// config so flags alone are enough to run.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
