package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cinegraph/cinegraph/errors"
)

// Config is the application configuration, loaded with Viper from an
// optional TOML file plus CINEGRAPH_* environment variables.
type Config struct {
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Viewport ViewportConfig `mapstructure:"viewport"`
	Graph    GraphConfig    `mapstructure:"graph"`
}

// DatasetConfig names the dataset sources in fallback order.
type DatasetConfig struct {
	PrimaryURL   string `mapstructure:"primary_url"`
	FallbackPath string `mapstructure:"fallback_path"`
	CachePath    string `mapstructure:"cache_path"`
}

// ViewportConfig sizes the render surface.
type ViewportConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// GraphConfig tunes graph construction.
type GraphConfig struct {
	// TopK caps the retained neighbors per node in the analytical views.
	TopK int `mapstructure:"top_k"`
	// LinkStrength is the base edge-attraction strength.
	LinkStrength float64 `mapstructure:"link_strength"`
}

// ConfigDir returns the per-user configuration directory (~/.cinegraph).
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cinegraph"
	}
	return filepath.Join(home, ".cinegraph")
}

// SetDefaults installs configuration defaults on a Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset.primary_url", "")
	v.SetDefault("dataset.fallback_path", "")
	v.SetDefault("dataset.cache_path", filepath.Join(ConfigDir(), "datasets.db"))
	v.SetDefault("viewport.width", 1280.0)
	v.SetDefault("viewport.height", 800.0)
	v.SetDefault("graph.top_k", 6)
	v.SetDefault("graph.link_strength", 0.5)
}

// LoadConfig reads configuration from ~/.cinegraph/config.toml when present,
// environment variables, and defaults. A missing config file is not an
// error; a malformed one is.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CINEGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	v.SetConfigFile(filepath.Join(ConfigDir(), "config.toml"))
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	return LoadConfigWithViper(v)
}

// LoadConfigWithViper unmarshals configuration from a caller-provided Viper
// instance. Useful for tests.
func LoadConfigWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}
