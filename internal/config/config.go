package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// CacheConfig controls the in-memory store
type CacheConfig struct {
	Enabled      bool `yaml:"enabled"`
	MaxEntries   int  `yaml:"max_entries"`
	DefaultTTLMs int  `yaml:"default_ttl_ms"`
}

// ServerConfig controls the HTTP surface
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	SocketPath string `yaml:"socket_path"` // when set, serve on a Unix socket instead of TCP
}

// Config represents the main configuration structure
type Config struct {
	Cache  CacheConfig  `yaml:"cache"`
	Server ServerConfig `yaml:"server"`
}

// Configuration validation errors
var (
	ErrInvalidMaxEntries = errors.New("cache.max_entries must be positive")
	ErrInvalidTTL        = errors.New("cache.default_ttl_ms must be positive")
)

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults sets default values for missing configuration. Zero means
// unset; explicit non-positive values are rejected by Validate, not clamped.
func (c *Config) applyDefaults() {
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 1000
	}
	if c.Cache.DefaultTTLMs == 0 {
		c.Cache.DefaultTTLMs = 60000
	}
	if c.Server.ListenAddr == "" && c.Server.SocketPath == "" {
		c.Server.ListenAddr = ":8090"
	}
}

// Validate fails fast on misconfiguration so an unbounded or zero-TTL cache
// never starts.
func (c *Config) Validate() error {
	if c.Cache.MaxEntries <= 0 {
		return ErrInvalidMaxEntries
	}
	if c.Cache.DefaultTTLMs <= 0 {
		return ErrInvalidTTL
	}
	return nil
}
