package main

import (
	"fmt"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-gql-cache/internal/cache/memory"
	"go-gql-cache/internal/cache/noop"
	"go-gql-cache/internal/cache/service"
	"go-gql-cache/internal/config"
	"go-gql-cache/internal/httpserver"
	"go-gql-cache/internal/interfaces"
)

// CompositionRoot holds all application dependencies and provides a centralized
// place for dependency injection and service initialization. The cache is
// constructed exactly once here and handed to the request layer explicitly,
// never reached as ambient global state.
type CompositionRoot struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger

	// Cache components
	Store interfaces.Store

	// Services
	CacheService *service.CacheService
	HTTPServer   *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration (defines how components should be configured)
// 3. Store (memory or noop depending on config)
// 4. Services (CacheService with metrics)
// 5. HTTP Server (uses all above components)
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initStore(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache store: %w", err)
	}

	root.initServices()
	root.initHTTPServer()

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("CACHE_CONFIG_FILE")
	if configPath == "" {
		configPath = "/app/cache_config.yaml"
	}

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// initStore initializes the cache store
func (r *CompositionRoot) initStore() error {
	if !r.Config.Cache.Enabled {
		r.Store = noop.NewNoOpStore()
		r.Logger.Info("Cache disabled")
		return nil
	}

	store, err := memory.New(
		r.Config.Cache.MaxEntries,
		time.Duration(r.Config.Cache.DefaultTTLMs)*time.Millisecond,
		clock.New(),
		r.Logger,
	)
	if err != nil {
		return err
	}

	r.Store = store
	r.Logger.Info("In-memory cache initialized",
		zap.Int("max_entries", r.Config.Cache.MaxEntries),
		zap.Int("default_ttl_ms", r.Config.Cache.DefaultTTLMs))
	return nil
}

// initServices initializes application services
func (r *CompositionRoot) initServices() {
	r.CacheService = service.NewCacheService(r.Store, r.Logger)
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	r.HTTPServer = httpserver.NewServer(
		r.CacheService,
		GetJWTSecret(),
		r.Logger,
	)
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	if r.Logger != nil {
		if err := r.Logger.Sync(); err != nil {
			return fmt.Errorf("failed to sync logger: %w", err)
		}
	}
	return nil
}

// GetJWTSecret returns the secret used to verify caller tokens
func GetJWTSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return "supersecret"
}
