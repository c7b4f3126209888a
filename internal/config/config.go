// Package config loads zoocore settings from defaults, an optional YAML
// file and ZOOCORE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"zoocore/internal/blob"
	"zoocore/internal/core"
	"zoocore/internal/logging"
	"zoocore/internal/observability"
)

// EnvPrefix prefixes every environment override, e.g. ZOOCORE_SERVER_ADDR.
const EnvPrefix = "ZOOCORE"

// Config is the full process configuration.
type Config struct {
	Server   ServerConfig                `mapstructure:"server"`
	Storage  StorageConfig               `mapstructure:"storage"`
	Blob     blob.Config                 `mapstructure:"blob"`
	Log      logging.Config              `mapstructure:"log"`
	Location LocationConfig              `mapstructure:"location"`
	Seed     SeedConfig                  `mapstructure:"seed"`
	Tracing  observability.TracingConfig `mapstructure:"tracing"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// LocationConfig places the zoo for sun calculations. Zero coordinates
// disable location-aware day cycles.
type LocationConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Timezone  string  `mapstructure:"timezone"`
}

type SeedConfig struct {
	File string `mapstructure:"file"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.driver", string(core.StorageSQLite))
	v.SetDefault("storage.sqlite_path", "zoocore.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("blob.driver", string(blob.DriverFilesystem))
	v.SetDefault("blob.fs_root", "./blobdata")
	v.SetDefault("blob.s3.region", "")
	v.SetDefault("blob.s3.bucket", "")
	v.SetDefault("blob.s3.endpoint", "")
	v.SetDefault("blob.s3.access_key_id", "")
	v.SetDefault("blob.s3.secret_access_key", "")
	v.SetDefault("blob.s3.session_token", "")
	v.SetDefault("blob.s3.path_style", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)
	v.SetDefault("location.timezone", "UTC")
	v.SetDefault("seed.file", "")
	v.SetDefault("tracing.exporter", string(observability.ExporterNone))
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", false)
	v.SetDefault("tracing.service_name", "zoocore")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (if non-empty) into v and decodes the merged settings.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config file %s not found", file)
			}
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	switch core.StorageDriver(c.Storage.Driver) {
	case core.StorageMemory, core.StorageSQLite, core.StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("latitude %g out of range", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("longitude %g out of range", c.Location.Longitude)
	}
	if _, err := c.Location.TimeLocation(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return c.Tracing.Validate()
}

// CoreStorage converts the storage section for core.OpenPersistentStore.
func (c Config) CoreStorage() core.StorageConfig {
	return core.StorageConfig{
		Driver:      core.StorageDriver(c.Storage.Driver),
		SQLitePath:  c.Storage.SQLitePath,
		PostgresDSN: c.Storage.PostgresDSN,
	}
}

// Enabled reports whether coordinates were configured.
func (l LocationConfig) Enabled() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// TimeLocation resolves the configured timezone.
func (l LocationConfig) TimeLocation() (*time.Location, error) {
	if l.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", l.Timezone, err)
	}
	return loc, nil
}
