package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"hackerstories/internal/store"
)

// EnvPrefix is prepended to every environment override, e.g.
// HACKERSTORIES_API_BASE_URL for api.base_url.
const EnvPrefix = "HACKERSTORIES"

// Config represents the application configuration
type Config struct {
	API   APISettings   `mapstructure:"api"`
	Store StoreSettings `mapstructure:"store"`
	Log   LogSettings   `mapstructure:"log"`
	UI    UISettings    `mapstructure:"ui"`
}

// APISettings configures the search API client
type APISettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 disables the client timeout
}

// StoreSettings configures where the last search term is kept
type StoreSettings struct {
	Backend     string `mapstructure:"backend"` // memory, file or sqlite
	Path        string `mapstructure:"path"`
	Key         string `mapstructure:"key"`
	DefaultTerm string `mapstructure:"default_term"`
}

// LogSettings configures the log file
type LogSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	RecentLimit int  `mapstructure:"recent_limit"`
	AltScreen   bool `mapstructure:"alt_screen"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	Path() string
}

type configService struct {
	v        *viper.Viper
	filePath string
	envFile  string
}

// Option customises a ConfigService
type Option func(*configService)

// WithViper loads through v instead of a fresh instance. The CLI passes the
// instance its flags are bound to.
func WithViper(v *viper.Viper) Option {
	return func(cs *configService) { cs.v = v }
}

// WithEnvFile sets the dotenv file read before the environment (default ".env").
func WithEnvFile(path string) Option {
	return func(cs *configService) { cs.envFile = path }
}

// NewConfigService creates a config service for the TOML file at path.
// An empty path means DefaultPath().
func NewConfigService(path string, opts ...Option) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	cs := &configService{filePath: path, envFile: ".env"}
	for _, opt := range opts {
		opt(cs)
	}
	if cs.v == nil {
		cs.v = viper.New()
	}
	return cs
}

// Dir returns the per-user directory holding config, state and logs.
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "hackerstories")
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load layers defaults, the config file, the dotenv file and the
// environment. Flags bound to the viper instance win over all of them.
// A missing config file is not an error.
func (cs *configService) Load() (*Config, error) {
	if cs.envFile != "" {
		if err := godotenv.Load(cs.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", cs.envFile, err)
		}
	}

	v := cs.v
	setDefaults(v)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(cs.filePath); err == nil {
		v.SetConfigFile(cs.filePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.resolvePaths()
	return &cfg, nil
}

// Save writes cfg to the config file as TOML
func (cs *configService) Save(config *Config) error {
	dir := filepath.Dir(cs.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Encode(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cs.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EnsureFile writes the default configuration when the config file does not
// exist yet. It reports whether a file was created.
func EnsureFile(cs ConfigService) (bool, error) {
	if _, err := os.Stat(cs.Path()); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}
	if err := cs.Save(DefaultConfig()); err != nil {
		return false, err
	}
	return true, nil
}

// fileDocument is the on-disk shape. Durations are kept as strings so the
// file stays readable ("10s" rather than nanoseconds).
type fileDocument struct {
	API struct {
		BaseURL string `toml:"base_url"`
		Timeout string `toml:"timeout"`
	} `toml:"api"`
	Store struct {
		Backend     string `toml:"backend"`
		Path        string `toml:"path"`
		Key         string `toml:"key"`
		DefaultTerm string `toml:"default_term"`
	} `toml:"store"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
	UI struct {
		RecentLimit int  `toml:"recent_limit"`
		AltScreen   bool `toml:"alt_screen"`
	} `toml:"ui"`
}

// Encode renders cfg as a TOML document
func Encode(cfg *Config) ([]byte, error) {
	var doc fileDocument
	doc.API.BaseURL = cfg.API.BaseURL
	doc.API.Timeout = cfg.API.Timeout.String()
	doc.Store.Backend = cfg.Store.Backend
	doc.Store.Path = cfg.Store.Path
	doc.Store.Key = cfg.Store.Key
	doc.Store.DefaultTerm = cfg.Store.DefaultTerm
	doc.Log.Level = cfg.Log.Level
	doc.Log.File = cfg.Log.File
	doc.UI.RecentLimit = cfg.UI.RecentLimit
	doc.UI.AltScreen = cfg.UI.AltScreen

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APISettings{
			BaseURL: "https://hn.algolia.com/api/v1",
		},
		Store: StoreSettings{
			Backend:     store.BackendFile,
			Key:         "search",
			DefaultTerm: "React",
		},
		Log: LogSettings{
			Level: "info",
			File:  "hackerstories.log",
		},
		UI: UISettings{
			RecentLimit: 5,
			AltScreen:   true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.key", d.Store.Key)
	v.SetDefault("store.default_term", d.Store.DefaultTerm)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("ui.recent_limit", d.UI.RecentLimit)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
}

// resolvePaths fills in backend-specific defaults for an empty store path.
func (c *Config) resolvePaths() {
	if c.Store.Path != "" {
		return
	}
	switch c.Store.Backend {
	case store.BackendSQLite:
		c.Store.Path = filepath.Join(Dir(), "state.db")
	case store.BackendMemory:
	default:
		c.Store.Path = filepath.Join(Dir(), "state.toml")
	}
}
