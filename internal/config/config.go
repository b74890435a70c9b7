// Package config handles the XDG configuration directory and settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "itemsync"

	// ConfigFile is the base name of the settings file inside Dir.
	ConfigFile = "config"

	// EnvPrefix prefixes environment overrides, e.g. ITEMSYNC_API_TENANT.
	EnvPrefix = "ITEMSYNC"

	// DefaultBaseURL is the public item API.
	DefaultBaseURL = "https://assignment-todolist-api.vercel.app/api"
)

// ErrNoTenant is returned by Validate when no tenant namespace is configured.
var ErrNoTenant = errors.New("tenant not configured (set api.tenant or ITEMSYNC_API_TENANT)")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the API root; the tenant is appended as the first path segment.
	BaseURL string

	// Tenant is the namespace all items live under.
	Tenant string

	// Timeout bounds each API call.
	Timeout time.Duration

	// Page and PageSize are the list defaults.
	Page     int
	PageSize int

	// LogFile, when set, receives a rotated copy of the debug log.
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with defaults only and the default or specified config
// directory. It does not read files or the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:           dir,
		BaseURL:       DefaultBaseURL,
		Timeout:       5 * time.Second,
		Page:          1,
		PageSize:      10,
		LogMaxSizeMB:  5,
		LogMaxBackups: 3,
	}, nil
}

// Load reads config.toml from the config directory (if present) and applies
// ITEMSYNC_* environment overrides on top of the defaults.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("api.base_url", cfg.BaseURL)
	v.SetDefault("api.tenant", "")
	v.SetDefault("api.timeout", cfg.Timeout)
	v.SetDefault("list.page", cfg.Page)
	v.SetDefault("list.page_size", cfg.PageSize)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", cfg.LogMaxSizeMB)
	v.SetDefault("log.max_backups", cfg.LogMaxBackups)

	v.SetConfigType("toml")
	v.AddConfigPath(cfg.Dir)
	v.SetConfigName(ConfigFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.BaseURL = v.GetString("api.base_url")
	cfg.Tenant = strings.TrimSpace(v.GetString("api.tenant"))
	cfg.Timeout = v.GetDuration("api.timeout")
	cfg.Page = v.GetInt("list.page")
	cfg.PageSize = v.GetInt("list.page_size")
	cfg.LogFile = v.GetString("log.file")
	cfg.LogMaxSizeMB = v.GetInt("log.max_size_mb")
	cfg.LogMaxBackups = v.GetInt("log.max_backups")
	return cfg, nil
}

// Validate checks the settings needed to talk to the API.
func (c *Config) Validate() error {
	if c.Tenant == "" {
		return ErrNoTenant
	}
	if strings.ContainsAny(c.Tenant, "/?#") {
		return fmt.Errorf("invalid tenant: %q", c.Tenant)
	}
	if c.Page < 1 {
		return fmt.Errorf("invalid list.page: %d", c.Page)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("invalid list.page_size: %d", c.PageSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid api.timeout: %s", c.Timeout)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to the settings file.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile+".toml")
}
