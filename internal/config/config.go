package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultPath = "config.yml"
	PathEnv     = "WORKTRACKER_CONFIG"
	EnvPrefix   = "WORKTRACKER"
)

const (
	RepositoryPostgres = "postgres"
	RepositoryInMemory = "inmemory"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Worklist   WorklistConfig   `mapstructure:"worklist"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RateLimit       int           `mapstructure:"rate_limit"` // requests per minute per client
}

type DatabaseConfig struct {
	URL                string        `mapstructure:"url"`
	MaxConnections     int32         `mapstructure:"max_connections"`
	MinConnections     int32         `mapstructure:"min_connections"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

type RepositoryConfig struct {
	Type string `mapstructure:"type"` // "postgres" or "inmemory"
}

type WorklistConfig struct {
	// Timezone decides which calendar day counts as today.
	Timezone string `mapstructure:"timezone"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 100)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)
	v.SetDefault("database.slow_query_threshold", 100*time.Millisecond)

	v.SetDefault("logging.development", false)
	v.SetDefault("repository.type", RepositoryInMemory)
	v.SetDefault("worklist.timezone", "Local")
}

// Load reads the file named by WORKTRACKER_CONFIG, or config.yml. A missing
// file is not an error: defaults and WORKTRACKER_* variables still apply.
func Load() (*Config, error) {
	path := os.Getenv(PathEnv)
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case RepositoryInMemory:
	case RepositoryPostgres:
		if c.Database.URL == "" {
			return errors.New("database.url is required for the postgres repository")
		}
	default:
		return fmt.Errorf("unknown repository type %q", c.Repository.Type)
	}

	if _, err := c.Worklist.Location(); err != nil {
		return fmt.Errorf("worklist.timezone: %w", err)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (w WorklistConfig) Location() (*time.Location, error) {
	if w.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(w.Timezone)
}
