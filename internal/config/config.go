// Package config loads the client configuration from config.toml in the
// planner config directory, creating it with defaults on first run.
package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const configFileName = "config.toml"

const defaultBaseURL = "https://api.timelessplanner.app/api/v1"

type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string `toml:"base_url"`

	// DefaultMedium is preselected in the event reminder form.
	DefaultMedium string `toml:"default_medium"`

	// DefaultWorkspace opens directly when set, skipping the picker.
	DefaultWorkspace string `toml:"default_workspace,omitempty"`
}

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir is ~/.config/planner (or the platform equivalent).
func DefaultDir() string {
	if d, err := os.UserConfigDir(); err == nil {
		return filepath.Join(d, "planner")
	}
	return ".planner"
}

func (s *Store) path() string {
	return filepath.Join(s.dir, configFileName)
}

// LoadOrInit reads config.toml, writing one with defaults if it is missing.
func (s *Store) LoadOrInit() (Config, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Config{}, err
	}

	if b, err := os.ReadFile(s.path()); err == nil {
		var cfg Config
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
		return normalize(cfg), nil
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	cfg := normalize(Config{})
	if err := s.Save(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s *Store) Save(cfg Config) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return writeTOMLAtomically(s.path(), normalize(cfg))
}

func normalize(cfg Config) Config {
	// Env override beats the file; flags beat both (applied by the CLI layer).
	if env := strings.TrimSpace(os.Getenv("PLANNER_BASE_URL")); env != "" {
		cfg.BaseURL = env
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if strings.TrimSpace(cfg.DefaultMedium) == "" {
		cfg.DefaultMedium = "sms"
	}
	return cfg
}

func writeTOMLAtomically(path string, cfg Config) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
