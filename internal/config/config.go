// Package config handles repolist configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/justrnr500/repolist/internal/repo"
	"github.com/justrnr500/repolist/internal/storage"
)

const (
	// ConfigFile is the name of the optional config file.
	ConfigFile = ".repolist.yaml"
	// StoreFile is the default name of the store file.
	StoreFile = "repositories.csv"
	// EnvFile is the name of the dotenv file read at startup.
	EnvFile = ".env"
	// EnvStoreFile overrides the store file path.
	EnvStoreFile = "REPOLIST_FILE"
	// GitIgnoreFile is the name of the gitignore file.
	GitIgnoreFile = ".gitignore"
)

// Config represents the repolist configuration.
type Config struct {
	Store  StoreConfig `yaml:"store"`
	Limits repo.Limits `yaml:"limits"`
	Shell  ShellConfig `yaml:"shell"`
	Log    LogConfig   `yaml:"log"`
}

// StoreConfig holds store file settings.
type StoreConfig struct {
	File    string          `yaml:"file"`
	Dialect storage.Dialect `yaml:"dialect"`
}

// ShellConfig holds interactive prompt settings.
type ShellConfig struct {
	Prompt string `yaml:"prompt"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			File:    StoreFile,
			Dialect: storage.DefaultDialect(),
		},
		Limits: repo.DefaultLimits(),
		Shell: ShellConfig{
			Prompt: "repolist> ",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the configuration from a file. Settings missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the tool cannot use.
func (c *Config) Validate() error {
	if c.Store.File == "" {
		return errors.New("store.file cannot be empty")
	}
	if err := c.Store.Dialect.Validate(); err != nil {
		return fmt.Errorf("store.dialect: %w", err)
	}

	l := c.Limits
	if l.Command < 0 || l.Alias < 0 || l.Link < 0 || l.Line < 0 {
		return errors.New("limits cannot be negative")
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvStoreFile); v != "" {
		c.Store.File = v
	}
}

// StorePath returns the store file path, resolving a relative path
// against baseDir.
func (c *Config) StorePath(baseDir string) string {
	if filepath.IsAbs(c.Store.File) {
		return c.Store.File
	}
	return filepath.Join(baseDir, c.Store.File)
}

// LoadEnv reads dir/.env into the process environment. Variables that are
// already set win. A missing file is not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Resolved is a loaded configuration together with where it came from.
type Resolved struct {
	*Config
	// Path is the config file that was read, or empty for defaults.
	Path string
	// BaseDir anchors relative store paths: the config file's directory,
	// or the start directory when no config file was found.
	BaseDir string
}

// Resolve finds and loads the configuration for startDir. An explicit
// path must exist; otherwise the nearest .repolist.yaml in startDir or a
// parent is used, falling back to defaults. The .env file next to the
// config (or in startDir) is loaded before environment overrides apply.
func Resolve(startDir, explicit string) (*Resolved, error) {
	res := &Resolved{BaseDir: startDir}

	path := explicit
	if path == "" {
		if root, err := FindRoot(startDir); err == nil {
			path = filepath.Join(root, ConfigFile)
		}
	}

	if path != "" {
		cfg, err := Load(path)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve path: %w", err)
		}
		res.Config = cfg
		res.Path = abs
		res.BaseDir = filepath.Dir(abs)
	} else {
		res.Config = Default()
	}

	if err := LoadEnv(res.BaseDir); err != nil {
		return nil, err
	}
	res.ApplyEnv()

	return res, nil
}

// FindRoot searches for a .repolist.yaml file starting from the given path
// and walking up the directory tree.
func FindRoot(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	current := absPath
	for {
		candidate := filepath.Join(current, ConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root
			return "", fmt.Errorf("no %s in %s or any parent", ConfigFile, startPath)
		}
		current = parent
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ConfigFile))
	return err == nil && !info.IsDir()
}
