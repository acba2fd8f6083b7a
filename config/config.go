// Package config handles nasko.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/nasko/vm"
)

// FileName is the configuration file looked up by Load and FindAndLoad.
const FileName = "nasko.toml"

// DefaultTimestampFormat renders event times as e.g. "Sat, 09 Mar 2024 14:30:00".
// Milliseconds are appended by the caller.
const DefaultTimestampFormat = "%a, %d %b %Y %T"

// Config represents a nasko.toml configuration.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Runner RunnerConfig `toml:"runner"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// EngineConfig sizes the reserved regions of every engine.
type EngineConfig struct {
	HeapSize     int  `toml:"heap-size"`
	StackSize    int  `toml:"stack-size"`
	LogicalCores int  `toml:"logical-cores"`
	Trace        bool `toml:"trace"`
}

// LogConfig configures commonlog.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Color           bool   `toml:"color"`
	TimestampFormat string `toml:"timestamp-format"`
}

// RunnerConfig bounds concurrent program runs. Zero means one worker per
// logical core.
type RunnerConfig struct {
	Workers int `toml:"workers"`
}

// Default returns the configuration used when no nasko.toml exists.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			HeapSize:  vm.DefaultHeapSize,
			StackSize: vm.DefaultStackSize,
		},
		Output: OutputConfig{
			Color:           true,
			TimestampFormat: DefaultTimestampFormat,
		},
	}
}

// Load parses nasko.toml from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses a configuration file at an explicit path. Keys missing from
// the file keep their Default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	// Defaults
	if c.Output.TimestampFormat == "" {
		c.Output.TimestampFormat = DefaultTimestampFormat
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a nasko.toml file, then loads
// and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

func (c *Config) validate() error {
	switch {
	case c.Engine.HeapSize < 0:
		return fmt.Errorf("engine.heap-size must not be negative (got %d)", c.Engine.HeapSize)
	case c.Engine.StackSize < 0:
		return fmt.Errorf("engine.stack-size must not be negative (got %d)", c.Engine.StackSize)
	case c.Runner.Workers < 0:
		return fmt.Errorf("runner.workers must not be negative (got %d)", c.Runner.Workers)
	}
	return nil
}

// EngineOptions translates the [engine] section into vm options.
func (c *Config) EngineOptions() []vm.Option {
	opts := []vm.Option{
		vm.WithHeapSize(c.Engine.HeapSize),
		vm.WithStackSize(c.Engine.StackSize),
		vm.WithTrace(c.Engine.Trace),
	}
	if c.Engine.LogicalCores > 0 {
		opts = append(opts, vm.WithLogicalCores(c.Engine.LogicalCores))
	}
	return opts
}

// LogFile returns the configured log path, or nil to log to stderr.
func (c *Config) LogFile() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.Log.File
	if c.Path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(c.Path), path)
	}
	return &path
}
