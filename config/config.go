// Package config loads the palette's YAML configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// EnvPath overrides the config file location.
const EnvPath = "CMDPALETTE_CONFIG"

type Config struct {
	Debug   bool          `yaml:"debug"`
	LogFile string        `yaml:"log_file"`
	Storage StorageConfig `yaml:"storage"`
	Suggest SuggestConfig `yaml:"suggest"`
	Output  OutputConfig  `yaml:"output"`
	Submit  SubmitConfig  `yaml:"submit"`
}

// StorageConfig selects where usage history and the submission journal
// live. Path is a database file for sqlite and a directory for file.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type SuggestConfig struct {
	MaxResults int `yaml:"max_results"`
}

type OutputConfig struct {
	MaxColumnWidth int `yaml:"max_column_width"`
}

// SubmitConfig controls duplicate detection. A mutating command submitted
// again within RetryWindow of its last submission is not run twice.
type SubmitConfig struct {
	RetryWindow time.Duration `yaml:"retry_window"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want sqlite, file or memory)", c.Storage.Backend)
	}
	if c.Storage.Backend != BackendMemory && c.Storage.Path == "" {
		return errors.New("storage.path: required for the " + c.Storage.Backend + " backend")
	}
	if c.Suggest.MaxResults <= 0 {
		return fmt.Errorf("suggest.max_results: must be positive, got %d", c.Suggest.MaxResults)
	}
	if c.Output.MaxColumnWidth <= 0 {
		return fmt.Errorf("output.max_column_width: must be positive, got %d", c.Output.MaxColumnWidth)
	}
	if c.Submit.RetryWindow < 0 {
		return fmt.Errorf("submit.retry_window: must not be negative, got %s", c.Submit.RetryWindow)
	}
	return nil
}

// FileLoader loads configuration from ~/.cmdpalette/config.yaml, or from
// the path in CMDPALETTE_CONFIG, or from an explicit path.
type FileLoader struct {
	overridePath string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Path returns the file Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".cmdpalette", "config.yaml")
}

// Load reads and validates the config. A missing file is created with the
// defaults.
func (l *FileLoader) Load(context.Context) (Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Config{}, fmt.Errorf("create config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := writeDefault(path, cfg); err != nil {
				return Config{}, fmt.Errorf("write default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg = hydrateDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func writeDefault(path string, cfg Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// Default returns the built-in configuration.
func Default() Config {
	dir := filepath.Join(userHomeDir(), ".cmdpalette")
	return Config{
		LogFile: filepath.Join(dir, "palette.log"),
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(dir, "palette.db"),
		},
		Suggest: SuggestConfig{MaxResults: 8},
		Output:  OutputConfig{MaxColumnWidth: 40},
		Submit:  SubmitConfig{RetryWindow: 30 * time.Second},
	}
}

func hydrateDefaults(cfg Config) Config {
	def := Default()
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = def.Storage.Backend
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Backend {
		case BackendSQLite:
			cfg.Storage.Path = def.Storage.Path
		case BackendFile:
			cfg.Storage.Path = filepath.Join(filepath.Dir(def.Storage.Path), "state")
		}
	}
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	if cfg.LogFile == "" {
		cfg.LogFile = def.LogFile
	}
	cfg.LogFile = expandPath(cfg.LogFile)
	if cfg.Suggest.MaxResults == 0 {
		cfg.Suggest.MaxResults = def.Suggest.MaxResults
	}
	if cfg.Output.MaxColumnWidth == 0 {
		cfg.Output.MaxColumnWidth = def.Output.MaxColumnWidth
	}
	if cfg.Submit.RetryWindow == 0 {
		cfg.Submit.RetryWindow = def.Submit.RetryWindow
	}
	return cfg
}

func expandPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
