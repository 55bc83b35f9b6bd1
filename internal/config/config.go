package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the ledger file used when nothing else is configured.
const DefaultFile = "~/.moneybags"

// Environment variables read by ApplyEnv.
const (
	EnvFile     = "MONEYBAGS_FILE"
	EnvAutosave = "MONEYBAGS_AUTOSAVE"
	EnvYear     = "MONEYBAGS_YEAR"
	EnvDotenv   = "MONEYBAGS_ENV_FILE"
)

// Config represents the moneybags configuration file.
type Config struct {
	File     string `yaml:"file"`
	Autosave bool   `yaml:"autosave"`
	Year     int    `yaml:"year,omitempty"` // year of a newly created ledger
}

// Load reads a YAML config file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

const fileHeader = "# moneybags configuration. Flags and MONEYBAGS_* variables override these.\n"

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// LoadOrCreate reads the config at path. A missing file is created holding
// the defaults that do not depend on the current date, and created is set.
func LoadOrCreate(path string) (cfg *Config, created bool, err error) {
	cfg, err = Load(path)
	if !errors.Is(err, fs.ErrNotExist) {
		return cfg, false, err
	}
	cfg = &Config{File: DefaultFile}
	if err := Save(path, cfg); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Default returns the configuration used when no file or environment sets anything.
func Default(now time.Time) *Config {
	return &Config{
		File:     DefaultFile,
		Autosave: false,
		Year:     now.Year(),
	}
}

// Merge fills zero fields of cfg from fallback. Autosave is only ever turned on.
func (cfg *Config) Merge(fallback *Config) {
	if cfg.File == "" {
		cfg.File = fallback.File
	}
	if cfg.Year == 0 {
		cfg.Year = fallback.Year
	}
	cfg.Autosave = cfg.Autosave || fallback.Autosave
}

// ApplyEnv loads a .env file, if any, and overrides cfg from MONEYBAGS_* variables.
func ApplyEnv(cfg *Config) error {
	if err := loadEnv(); err != nil {
		return err
	}

	if v, ok := os.LookupEnv(EnvFile); ok && v != "" {
		cfg.File = v
	}
	if v, ok := os.LookupEnv(EnvAutosave); ok && v != "" {
		autosave, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvAutosave, v, err)
		}
		cfg.Autosave = autosave
	}
	if v, ok := os.LookupEnv(EnvYear); ok && v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvYear, v, err)
		}
		cfg.Year = year
	}
	return nil
}

func loadEnv() error {
	if envFile := os.Getenv(EnvDotenv); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
