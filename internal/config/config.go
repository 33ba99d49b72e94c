package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"
	// Embedded zone database so TimeZone resolves on images without tzdata.
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from environment variables before they are mapped
	// onto config keys, e.g. STUDENTAPI_LOG_LEVEL -> log_level.
	EnvPrefix = "STUDENTAPI_"
	// FileEnvVar names an optional YAML file loaded beneath the environment.
	FileEnvVar = EnvPrefix + "CONFIG"
)

// AppConfig is the centralized configuration struct for the application.
// Values are layered: defaults, then the optional YAML file, then env vars.
type AppConfig struct {
	AppName  string `koanf:"app_name" validate:"required"`
	Env      string `koanf:"env" validate:"required,oneof=development staging production"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port" validate:"required,numeric"`
	TimeZone string `koanf:"timezone" validate:"required"`

	LogLevel  string `koanf:"log_level" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `koanf:"log_format" validate:"required,oneof=json console"`

	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	MetricsEnabled bool `koanf:"metrics_enabled"`
	SwaggerEnabled bool `koanf:"swagger_enabled"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *AppConfig {
	return &AppConfig{
		AppName:         "studentapi",
		Env:             "development",
		Port:            "8080",
		TimeZone:        "UTC",
		LogLevel:        "info",
		LogFormat:       "json",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MetricsEnabled:  true,
		SwaggerEnabled:  true,
	}
}

// Load builds the configuration from defaults, the YAML file named by
// STUDENTAPI_CONFIG (if set) and STUDENTAPI_* environment variables, in
// increasing order of precedence. A .env file is picked up by the godotenv
// autoload import in main before this runs.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Keys stay flat: STUDENTAPI_SHUTDOWN_TIMEOUT -> shutdown_timeout.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the timezone can be resolved.
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid config: timezone %q: %w", c.TimeZone, err)
	}
	return nil
}

// Addr is the listen address handed to fiber.App.Listen.
func (c *AppConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Location resolves TimeZone, falling back to UTC when it cannot be loaded.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
