package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUOTEDESK_"

// Config defines application configuration shared by every subcommand.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
	Client ClientConfig `yaml:"client"`
	Ingest IngestConfig `yaml:"ingest"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// AuthConfig enables bearer-token auth on the API service. The client sends
// the same token when it is set.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

type ClientConfig struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type IngestConfig struct {
	BaseURL  string `yaml:"base_url"`
	MaxPages int    `yaml:"max_pages"`
	Reset    bool   `yaml:"reset"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		DB: DBConfig{
			Path: "quotes.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Client: ClientConfig{
			APIURL:  "http://127.0.0.1:8000",
			Timeout: 10 * time.Second,
		},
		Ingest: IngestConfig{
			BaseURL:  "http://quotes.toscrape.com",
			MaxPages: 5,
			Reset:    true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. An empty path falls back to QUOTEDESK_CONFIG_PATH.
func Load(fsys afero.Fs, path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(fsys, path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Auth.Enabled && c.Auth.Token == "" {
		return errors.New("auth.enabled requires auth.token")
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("invalid client.timeout %s", c.Client.Timeout)
	}
	if c.Ingest.MaxPages < 1 {
		return fmt.Errorf("invalid ingest.max_pages %d", c.Ingest.MaxPages)
	}
	return nil
}

func loadFromFile(fsys afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found: %w", path, err)
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("SERVER_HOST", &cfg.Server.Host)
	if err := integer("SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	str("DB_PATH", &cfg.DB.Path)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_PATH", &cfg.Log.Path)
	if err := boolean("AUTH_ENABLED", &cfg.Auth.Enabled); err != nil {
		return err
	}
	str("AUTH_TOKEN", &cfg.Auth.Token)
	str("API_URL", &cfg.Client.APIURL)
	if v, ok := lookup(EnvPrefix + "CLIENT_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sCLIENT_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Client.Timeout = d
	}
	str("INGEST_BASE_URL", &cfg.Ingest.BaseURL)
	if err := integer("INGEST_MAX_PAGES", &cfg.Ingest.MaxPages); err != nil {
		return err
	}
	return boolean("INGEST_RESET", &cfg.Ingest.Reset)
}
