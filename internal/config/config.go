// Package config loads the roster service configuration from an optional YAML
// file with ROSTER_* environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-roster/pkg/gateway"
)

// LogConfig controls the zap logger built by the CLI.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`             // debug, info, warn, error
	Development bool   `mapstructure:"development" yaml:"development"` // Human-readable console output
}

// BackendConfig is the demo data microservice.
type BackendConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	SeedFile string `mapstructure:"seed_file" yaml:"seed_file"` // Optional YAML roster replacing the embedded one
}

// GatewayConfig is the API gateway.
type GatewayConfig struct {
	Addr           string          `mapstructure:"addr" yaml:"addr"`
	Routes         []gateway.Route `mapstructure:"routes" yaml:"routes"`
	AllowedOrigins []string        `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// FrontendConfig is the HTML front-end.
type FrontendConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// ClientConfig is how the front-end reaches the gateway.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Prefix  string        `mapstructure:"prefix" yaml:"prefix"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Config wraps the entire configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Backend  BackendConfig  `mapstructure:"backend" yaml:"backend"`
	Gateway  GatewayConfig  `mapstructure:"gateway" yaml:"gateway"`
	Frontend FrontendConfig `mapstructure:"frontend" yaml:"frontend"`
	Client   ClientConfig   `mapstructure:"client" yaml:"client"`
}

var defaults = map[string]any{
	"log.level":         "info",
	"log.development":   false,
	"backend.addr":      ":8002",
	"backend.seed_file": "",
	"gateway.addr":      ":8001",
	"frontend.addr":     ":8000",
	"client.base_url":   "http://localhost:8001",
	"client.prefix":     "/Rugby",
	"client.timeout":    "10s",
}

// envBindings maps config keys to the environment variables that can provide
// them, preferred name first.
var envBindings = map[string][]string{
	"log.level":               {"ROSTER_LOG_LEVEL"},
	"log.development":         {"ROSTER_LOG_DEVELOPMENT"},
	"backend.addr":            {"ROSTER_BACKEND_ADDR"},
	"backend.seed_file":       {"ROSTER_BACKEND_SEED_FILE"},
	"gateway.addr":            {"ROSTER_GATEWAY_ADDR"},
	"gateway.allowed_origins": {"ROSTER_GATEWAY_ALLOWED_ORIGINS"},
	"frontend.addr":           {"ROSTER_FRONTEND_ADDR"},
	"client.base_url":         {"ROSTER_CLIENT_BASE_URL", "ROSTER_GATEWAY_URL"},
	"client.prefix":           {"ROSTER_CLIENT_PREFIX"},
	"client.timeout":          {"ROSTER_CLIENT_TIMEOUT"},
}

// Load reads filePath when it exists and applies environment overrides. An
// empty path loads defaults and environment only.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("config: bind env: %w", err)
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot start the services.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Client.BaseURL) == "" {
		errs = append(errs, errors.New("config: client.base_url is required"))
	}
	if c.Client.Timeout < 0 {
		errs = append(errs, errors.New("config: client.timeout must not be negative"))
	}
	for i, route := range c.Gateway.Routes {
		if strings.Trim(route.Prefix, "/ ") == "" || strings.TrimSpace(route.Target) == "" {
			errs = append(errs, fmt.Errorf("config: gateway.routes[%d] needs prefix and target", i))
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

// applyDefaults routes the client prefix to the local backend when no gateway
// routes are configured.
func (c *Config) applyDefaults() {
	if len(c.Gateway.Routes) == 0 {
		c.Gateway.Routes = []gateway.Route{{
			Prefix: c.Client.Prefix,
			Target: "http://" + loopback(c.Backend.Addr),
		}}
	}
}

func loopback(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)
		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}
	return nil
}
