package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration. All paths have
// platform-appropriate defaults under the user's home directory.
type Config struct {
	// MasterSourcesRoot is the directory holding all region documents.
	MasterSourcesRoot string `toml:"master_sources_root"`

	// ProjectsRoot is the directory tree holding project files.
	ProjectsRoot string `toml:"projects_root"`

	// ReportDir is where the reporting index database lives.
	ReportDir string `toml:"report_dir"`
}

// DefaultConfigDir returns the srcmgr configuration directory,
// ~/.srcmgr by default.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".srcmgr"), nil
}

// LoadConfig reads config.toml from the given directory, falling back
// to defaults for missing values. A missing file is not an error; a
// malformed one is.
func LoadConfig(configDir string) (*Config, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	cfg := &Config{}
	path := filepath.Join(configDir, "config.toml")
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// no config file yet, defaults apply
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if cfg.MasterSourcesRoot == "" {
		cfg.MasterSourcesRoot = filepath.Join(configDir, "master_sources")
	}
	if cfg.ProjectsRoot == "" {
		cfg.ProjectsRoot = filepath.Join(configDir, "projects")
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = filepath.Join(configDir, "reports")
	}
	return cfg, nil
}

// SaveConfig writes the configuration to config.toml in the given
// directory, creating the directory if needed.
func SaveConfig(configDir string, cfg *Config) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0o600)
}
