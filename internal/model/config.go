package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Backend preferences accepted by StorageConfig.Backend.
const (
	BackendAuto = "auto"
	BackendFlat = "flat"
)

// Flat-store slot kinds accepted by FlatConfig.Slot.
const (
	SlotFile    = "file"
	SlotKeyring = "keyring"
)

// DefaultFlatMaxBytes mirrors the usual per-origin browser key-value quota.
const DefaultFlatMaxBytes = 5 << 20

// FlatConfig controls where the flat-store document lives.
type FlatConfig struct {
	// Slot selects the key-value slot kind ("file" or "keyring").
	Slot string `mapstructure:"slot" yaml:"slot"`

	// File is the document file name, relative to the data directory.
	File string `mapstructure:"file" yaml:"file"`

	// MaxBytes caps the serialized document size. Zero disables the cap.
	MaxBytes int `mapstructure:"max_bytes" yaml:"max_bytes"`
}

// StorageConfig selects and locates the persistence backends.
type StorageConfig struct {
	// Backend is "auto" (probe the indexed engine, fall back to flat) or
	// "flat" (skip the indexed engine entirely).
	Backend string `mapstructure:"backend" yaml:"backend"`

	// DataDir holds the database file and the flat document.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// DatabaseFile is the SQLite file name, relative to DataDir.
	DatabaseFile string `mapstructure:"database_file" yaml:"database_file"`

	Flat FlatConfig `mapstructure:"flat" yaml:"flat"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DatabasePath returns the absolute location of the SQLite file.
func (c StorageConfig) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// FlatPath returns the absolute location of the flat-store document.
func (c StorageConfig) FlatPath() string {
	return filepath.Join(c.DataDir, c.Flat.File)
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/chckd/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "chckd", "config.yaml")
}

// DefaultDataDir returns ~/.local/share/chckd, or ./data when the home
// directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "data")
	}
	return filepath.Join(home, ".local", "share", "chckd")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Backend:      BackendAuto,
			DataDir:      DefaultDataDir(),
			DatabaseFile: "chckd.db",
			Flat: FlatConfig{
				Slot:     SlotFile,
				File:     "chckd.json",
				MaxBytes: DefaultFlatMaxBytes,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("storage.database_file", d.Storage.DatabaseFile)
	v.SetDefault("storage.flat.slot", d.Storage.Flat.Slot)
	v.SetDefault("storage.flat.file", d.Storage.Flat.File)
	v.SetDefault("storage.flat.max_bytes", d.Storage.Flat.MaxBytes)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration. Values can
// be overridden with CHCKD_* environment variables (e.g. CHCKD_STORAGE_BACKEND).
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("chckd")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unknown backend and slot names.
func (c *AppConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendAuto, BackendFlat:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Storage.Flat.Slot {
	case SlotFile, SlotKeyring:
	default:
		return fmt.Errorf("unknown flat slot %q", c.Storage.Flat.Slot)
	}
	if c.Storage.Flat.MaxBytes < 0 {
		return fmt.Errorf("storage.flat.max_bytes must not be negative")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", map[string]any{
		"backend":       cfg.Storage.Backend,
		"data_dir":      cfg.Storage.DataDir,
		"database_file": cfg.Storage.DatabaseFile,
		"flat": map[string]any{
			"slot":      cfg.Storage.Flat.Slot,
			"file":      cfg.Storage.Flat.File,
			"max_bytes": cfg.Storage.Flat.MaxBytes,
		},
	})
	v.Set("log", map[string]any{
		"level":  cfg.Log.Level,
		"format": cfg.Log.Format,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

var envKeyReplacer = strings.NewReplacer(".", "_")
