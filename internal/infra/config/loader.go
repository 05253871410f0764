// Package config provides configuration loading functionality.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/tally/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// EnvConfigPath names the environment variable that points at an explicit config file.
const EnvConfigPath = "TALLY_CONFIG"

// Loader loads configuration from TOML files.
type Loader struct {
	explicitPath  string // File from --config or TALLY_CONFIG; must exist when set
	globalConfDir string // Path to global config directory (e.g., ~/.config/tally)
}

// NewLoader creates a new Loader.
// An empty explicitPath falls back to $TALLY_CONFIG.
func NewLoader(explicitPath string) *Loader {
	if explicitPath == "" {
		explicitPath = os.Getenv(EnvConfigPath)
	}
	return &Loader{
		explicitPath:  explicitPath,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(explicitPath, globalConfDir string) *Loader {
	return &Loader{
		explicitPath:  explicitPath,
		globalConfDir: globalConfDir,
	}
}

// ExplicitPath returns the explicit config file, or "" if none was given.
func (l *Loader) ExplicitPath() string {
	return l.explicitPath
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// DefaultDataDir returns $XDG_DATA_HOME/tally or ~/.local/share/tally.
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome), nil
}

// Load returns the merged configuration.
// Sources, later wins: defaults <- global file <- explicit file.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if l.globalConfDir != "" {
		globalPath := filepath.Join(l.globalConfDir, domain.ConfigFileName)
		if err := l.applyFile(cfg, globalPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if l.explicitPath != "" {
		if err := l.applyFile(cfg, l.explicitPath); err != nil {
			return nil, err
		}
	}

	sanitize(cfg)
	return cfg, nil
}

// applyFile decodes path on top of cfg. Keys absent from the file keep their value.
func (l *Loader) applyFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	warnings := cfg.Warnings
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Warnings = append(warnings, unknownKeys(path, data)...)
	return nil
}

// unknownKeys reports keys that do not map to a Config field.
func unknownKeys(path string, data []byte) []string {
	var probe domain.Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(&probe)
	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		return nil
	}

	warnings := make([]string, 0, len(strict.Errors))
	for _, e := range strict.Errors {
		warnings = append(warnings, fmt.Sprintf("%s: unknown key %s", path, strings.Join(e.Key(), ".")))
	}
	return warnings
}

// sanitize replaces invalid enum values with defaults and records a warning.
func sanitize(cfg *domain.Config) {
	def := domain.NewDefaultConfig()

	switch cfg.Store.Backend {
	case domain.BackendFile, domain.BackendSQLite, domain.BackendRedis:
	default:
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("unknown store backend %q, using %q", cfg.Store.Backend, def.Store.Backend))
		cfg.Store.Backend = def.Store.Backend
	}

	if strings.TrimSpace(cfg.Store.Key) == "" {
		cfg.Store.Key = def.Store.Key
	}

	if !cfg.Timer.Flush.Valid() {
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("unknown timer flush policy %q, using %q", cfg.Timer.Flush, def.Timer.Flush))
		cfg.Timer.Flush = def.Timer.Flush
	}

	if !knownLevel(cfg.Log.Level) {
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("unknown log level %q, using %q", cfg.Log.Level, def.Log.Level))
		cfg.Log.Level = def.Log.Level
	}
}

func knownLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// Marshal renders cfg as TOML for "config show".
func Marshal(cfg *domain.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
