// Package config manages YAML-based configuration and CLI flags.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for dirscope.
type Config struct {
	// Workspace roots. Plain paths or file:// URIs; the first filesystem
	// root is served, any others are ignored. Empty means an empty tree.
	Roots []string `yaml:"roots"`

	Port     int    `yaml:"port"`
	Watch    bool   `yaml:"watch"`
	Open     bool   `yaml:"open"`
	LogLevel string `yaml:"log_level"`

	// Internal: path the config was loaded from.
	configPath string
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Port:     8080,
		Watch:    true,
		Open:     false,
		LogLevel: "info",
	}
}

// GetConfigDir returns the config directory path.
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/dirscope"
	}
	return filepath.Join(home, ".config", "dirscope")
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load loads configuration from file and command line flags.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	flags := flag.NewFlagSet("dirscope", flag.ContinueOnError)
	root := flags.String("root", "", "Workspace root directory")
	port := flags.Int("port", 0, "HTTP server port")
	watch := flags.Bool("watch", true, "Enable file watching")
	open := flags.Bool("open", false, "Open browser on startup")
	logLevel := flags.String("log-level", "", "Log level (trace/debug/info/warn/error)")
	configFile := flags.String("config", "", "Configuration file path")

	flags.StringVar(root, "r", "", "Workspace root directory (shorthand)")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// Find a config file: explicit flag, then global, then local.
	var cfgPath string
	if *configFile != "" {
		cfgPath = *configFile
	} else {
		globalConfig := GetConfigPath()
		if _, err := os.Stat(globalConfig); err == nil {
			cfgPath = globalConfig
		} else if _, err := os.Stat("dirscope.yaml"); err == nil {
			cfgPath = "dirscope.yaml"
		}
	}

	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil && *configFile != "" {
			// Only fail when the user explicitly named the file.
			return nil, err
		}
		cfg.configPath = cfgPath
	}

	// Flags override the file, only where explicitly passed. Bool flags have
	// meaningful defaults, so presence on the command line is what counts.
	passed := map[string]bool{}
	flags.Visit(func(f *flag.Flag) {
		passed[f.Name] = true
	})

	if *root != "" {
		cfg.Roots = []string{*root}
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if passed["watch"] {
		cfg.Watch = *watch
	}
	if passed["open"] {
		cfg.Open = *open
	}

	cfg.resolveRoots()

	return cfg, nil
}

// resolveRoots makes plain-path roots absolute. file:// and other URI roots
// are left untouched; scheme selection happens in the tree materializer.
func (c *Config) resolveRoots() {
	for i, r := range c.Roots {
		if strings.Contains(r, "://") {
			continue
		}
		if abs, err := filepath.Abs(r); err == nil {
			c.Roots[i] = abs
		}
	}
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// GetConfigFilePath returns the path of the loaded config file, or "" when
// defaults were used.
func (c *Config) GetConfigFilePath() string {
	return c.configPath
}
