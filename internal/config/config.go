// Package config provides configuration types, defaults and loading for calories.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// EnvPrefix prefixes environment overrides, e.g. CALORIES_STORAGE_BACKEND.
const EnvPrefix = "CALORIES"

// Config holds all configuration options.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
}

// StorageConfig selects where items are persisted.
type StorageConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"`       // "file" (default), "sqlite" or "memory"
	Dir        string `mapstructure:"dir" yaml:"dir"`               // data directory; empty means ~/.calories
	Collection string `mapstructure:"collection" yaml:"collection"` // key the item list lives under
}

// LogConfig controls the log file.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	File   string `mapstructure:"file" yaml:"file"` // empty means <data dir>/calories.log
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// UIConfig holds presentation options.
type UIConfig struct {
	Theme     string `mapstructure:"theme" yaml:"theme"` // "classic", "neon" or "mono"
	DailyGoal int    `mapstructure:"daily_goal" yaml:"daily_goal"`
	AltScreen bool   `mapstructure:"alt_screen" yaml:"alt_screen"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Backend:    BackendFile,
			Collection: "items",
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Theme:     "classic",
			DailyGoal: 2000,
			AltScreen: true,
		},
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.collection", d.Storage.Collection)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.pretty", d.Log.Pretty)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.daily_goal", d.UI.DailyGoal)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
}

// Load reads configuration into a fresh viper instance.
// Lookup order when path is empty:
//  1. .calories/config.yaml (current directory)
//  2. <user config dir>/calories/config.yaml
//
// A missing file is not an error; defaults and CALORIES_* env vars still apply.
func Load(path string) (Config, *viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(filepath.Join(".calories", "config.yaml")); err == nil {
		v.SetConfigFile(filepath.Join(".calories", "config.yaml"))
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "calories"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, v, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, v, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, v, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want file, sqlite or memory)", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Collection) == "" {
		return errors.New("storage.collection: must not be empty")
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "error", "off", "disabled", "":
	default:
		return fmt.Errorf("log.level: unknown level %q (want debug, info, warn, error or off)", c.Log.Level)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono", "":
	default:
		return fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	if c.UI.DailyGoal < 0 {
		return fmt.Errorf("ui.daily_goal: must not be negative, got %d", c.UI.DailyGoal)
	}
	return nil
}

// DataDir returns the directory items (and the default log) live in.
func (c Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".calories"), nil
}

// LogPath returns the log file path, defaulting into the data dir.
func (c Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "calories.log"), nil
}

const defaultHeader = `# calories configuration
# storage.backend: file | sqlite | memory
# ui.theme: classic | neon | mono
`

// WriteDefault writes the default configuration as YAML to path.
// An existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	b, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(defaultHeader), b...), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
