package domain

import (
	_ "embed"
	"path/filepath"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented config file written by "config init".
func ConfigTemplate() string {
	return configTemplateContent
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Store    StoreConfig  `toml:"store"`
	Timer    TimerConfig  `toml:"timer"`
	Log      LogConfig    `toml:"log"`
	Server   ServerConfig `toml:"server"`
}

// StoreConfig holds settings from the [store] section.
type StoreConfig struct {
	Backend string      `toml:"backend"` // file | sqlite | redis
	Path    string      `toml:"path"`    // Data dir (file) or database file (sqlite)
	Key     string      `toml:"key"`     // Slot key holding the task list
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig holds settings from the [store.redis] section.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	Prefix   string `toml:"prefix"`
	DB       int    `toml:"db"`
}

// TimerConfig holds settings from the [timer] section.
type TimerConfig struct {
	Flush FlushPolicy `toml:"flush"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

// ServerConfig holds HTTP API settings from the [server] section.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// FlushPolicy decides when running timers write their seconds to the store.
type FlushPolicy string

// Flush policies.
const (
	FlushEveryTick FlushPolicy = "tick" // Write on every tick
	FlushOnStop    FlushPolicy = "stop" // Write on stop and reset only
)

// Valid reports whether p is a known policy.
func (p FlushPolicy) Valid() bool {
	return p == FlushEveryTick || p == FlushOnStop
}

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Default configuration values.
const (
	DefaultStoreKey    = "tasks"
	DefaultRedisAddr   = "localhost:6379"
	DefaultRedisPrefix = "tally:"
	DefaultLogLevel    = "info"
	DefaultServerAddr  = ":8080"
)

// Directory and file names for tally.
const (
	AppDirName     = "tally"
	ConfigFileName = "config.toml"
	SQLiteFileName = "tally.db"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Key:     DefaultStoreKey,
			Redis: RedisConfig{
				Addr:   DefaultRedisAddr,
				Prefix: DefaultRedisPrefix,
			},
		},
		Timer: TimerConfig{Flush: FlushEveryTick},
		Log:   LogConfig{Level: DefaultLogLevel},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}

// GlobalConfigDir returns the global tally config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// DataDir returns the tally data directory.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "tally.log")
}

// TaskLogPath returns the path to the task log file.
func TaskLogPath(dataDir string, id TaskID) string {
	return filepath.Join(dataDir, "logs", "task-"+id.Short()+".log")
}
