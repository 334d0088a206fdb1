package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	envPrefix = "QUOTEOFTHEDAY"
)

// Config is the merged result of defaults, an optional YAML file and
// QUOTEOFTHEDAY_* environment variables.
type Config struct {
	Env    string       `mapstructure:"env" yaml:"env"`
	API    APIConfig    `mapstructure:"api" yaml:"api"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
}

// APIConfig points the client at the quote API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ServerConfig configures cmd/quoteapi.
type ServerConfig struct {
	Address    string        `mapstructure:"address" yaml:"address"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	SeedQuotes []string      `mapstructure:"seed_quotes" yaml:"seed_quotes"`
}

// DefaultSeedQuotes fill the server's book when nothing else is configured.
var DefaultSeedQuotes = []string{
	"Just do it",
	"Optimise for Clarity",
	"Make it work, make it right, make it fast",
	"Simplicity is prerequisite for reliability",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvLocal)
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("log.file", "")
	v.SetDefault("server.address", "localhost:8080")
	v.SetDefault("server.timeout", 4*time.Second)
	v.SetDefault("server.seed_quotes", DefaultSeedQuotes)
}

// Load reads the YAML file at path, when path is not empty, overlays
// environment variables and returns Config.
// QUOTEOFTHEDAY_API_BASE_URL overrides api.base_url.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}
	if c.Server.Timeout < 0 {
		errs = append(errs, errors.New("server.timeout must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// YAML renders the effective configuration in the file format Load reads.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return out, nil
}
