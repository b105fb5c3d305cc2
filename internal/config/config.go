// Package config loads and persists the tool configuration (TOML).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hammyapp/hammy/internal/logutil"
)

const (
	// DefaultFileName is the config file created under the user config dir.
	DefaultFileName = "hammy_config.toml"
	appDirName      = "hammy"
)

// Config is the persisted tool configuration. An empty API key is fatal
// before any upload attempt; the CLI prompts for one on first run.
type Config struct {
	APIKey  string `toml:"api_key"`
	TxtPath string `toml:"txt_path"`
}

// DefaultPath returns <UserConfigDir>/hammy/hammy_config.toml.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, DefaultFileName), nil
}

// Load reads the config file at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// LoadOrCreate returns the config at path (default location when path
// is empty), writing a fresh default file when none exists. HAMMY_*
// environment variables override file values either way.
func LoadOrCreate(path string) (Config, string, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, "", err
		}
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
		logutil.Debugf("previous config found in: %s", path)
	case errors.Is(err, fs.ErrNotExist):
		cfg = Config{TxtPath: filepath.Join(filepath.Dir(path), "txt")}
		if err := Save(cfg, path); err != nil {
			return Config{}, "", err
		}
		logutil.Infof("new default config saved in: %s", path)
	default:
		return Config{}, "", fmt.Errorf("load config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, path, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HAMMY_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("HAMMY_TXT_PATH"); v != "" {
		cfg.TxtPath = v
	}
}

// EnsureDirs creates the output directories named by the config.
func (c Config) EnsureDirs() error {
	if c.TxtPath == "" {
		return nil
	}
	return os.MkdirAll(c.TxtPath, 0o755)
}
