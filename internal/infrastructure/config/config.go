package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Redis       RedisConfig
	Sync        SyncConfig
	Swagger     SwaggerConfig
	Telemetry   TelemetryConfig
	Store       StoreConfig
	Marketplace MarketplaceConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Version string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	BasePath         string // route prefix of the catalog endpoints
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration // must outlast a full sync run
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// SyncConfig holds catalog sync run settings
type SyncConfig struct {
	RunGuardEnabled bool
	RunLockTTL      time.Duration // how long a crashed run keeps its store locked
	RunLockPrefix   string
	CleanupInterval time.Duration // in-memory guard expiry sweep
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled    bool
	AllowedIPs []string // IPs or CIDRs allowed to read the docs, empty = all
}

// TelemetryConfig holds OpenTelemetry and profiling configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable tracing
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string
	Insecure          bool // Use insecure (non-TLS) connection (development only)

	MetricsEnabled        bool
	MetricsExporter       string // otlp or prometheus
	MetricsExportInterval time.Duration

	LogsEnabled bool

	ProfilingEnabled       bool
	ProfilingServerAddress string
	ProfilingBasicAuthUser string
	ProfilingBasicAuthPass string
	ProfilingTypes         []string
	SpanProfilesEnabled    bool
}

// StoreConfig holds Tiendanube (Nuvemshop) API settings
type StoreConfig struct {
	APIBaseURL     string
	AccessToken    string
	UserAgent      string
	PageSize       int
	MaxPages       int
	TimeoutSeconds int
}

// MarketplaceConfig holds TikTok Shop API settings.
// Missing credentials are reported per product, never at load time.
type MarketplaceConfig struct {
	APIBaseURL     string
	AccessToken    string
	ClientKey      string
	ClientSecret   string
	PartnerID      string
	TimeoutSeconds int
}

// legacyEnv maps config keys to the unprefixed variable names used by
// existing deployments
var legacyEnv = map[string]string{
	"app.port":                  "PORT",
	"marketplace.access_token":  "TIKTOK_ACCESS_TOKEN",
	"marketplace.client_key":    "TIKTOK_CLIENT_KEY",
	"marketplace.client_secret": "TIKTOK_CLIENT_SECRET",
	"marketplace.partner_id":    "TIKTOK_PARTNER_ID",
	"store.access_token":        "TIENDANUBE_ACCESS_TOKEN",
	"store.user_agent":          "TIENDANUBE_USER_AGENT",
}

var knownLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load loads configuration from .env, TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with CATALOGSYNC_ prefix (e.g., CATALOGSYNC_REDIS_HOST)
// 2. Legacy unprefixed variables (TIKTOK_ACCESS_TOKEN, PORT, ...)
// 3. config.toml
// 4. Built-in defaults
//
// A .env file in the working directory is loaded into the process
// environment first. Variables already set win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CATALOGSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		prefixed := "CATALOGSYNC_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			Version: v.GetString("app.version"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			BasePath:         v.GetString("http.base_path"),
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Sync: SyncConfig{
			RunGuardEnabled: !v.IsSet("sync.run_guard_enabled") || v.GetBool("sync.run_guard_enabled"),
			RunLockTTL:      v.GetDuration("sync.run_lock_ttl"),
			RunLockPrefix:   v.GetString("sync.run_lock_prefix"),
			CleanupInterval: v.GetDuration("sync.cleanup_interval"),
		},
		Swagger: SwaggerConfig{
			Enabled:    v.GetBool("swagger.enabled"),
			AllowedIPs: v.GetStringSlice("swagger.allowed_ips"),
		},
		Telemetry: TelemetryConfig{
			Enabled:                v.GetBool("telemetry.enabled"),
			CollectorEndpoint:      v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:          v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:            v.GetString("telemetry.service_name"),
			Insecure:               v.GetBool("telemetry.insecure"),
			MetricsEnabled:         v.GetBool("telemetry.metrics_enabled"),
			MetricsExporter:        v.GetString("telemetry.metrics_exporter"),
			MetricsExportInterval:  v.GetDuration("telemetry.metrics_export_interval"),
			LogsEnabled:            v.GetBool("telemetry.logs_enabled"),
			ProfilingEnabled:       v.GetBool("telemetry.profiling_enabled"),
			ProfilingServerAddress: v.GetString("telemetry.profiling_server_address"),
			ProfilingBasicAuthUser: v.GetString("telemetry.profiling_basic_auth_user"),
			ProfilingBasicAuthPass: v.GetString("telemetry.profiling_basic_auth_password"),
			ProfilingTypes:         v.GetStringSlice("telemetry.profiling_types"),
			SpanProfilesEnabled:    v.GetBool("telemetry.span_profiles_enabled"),
		},
		Store: StoreConfig{
			APIBaseURL:     v.GetString("store.api_base_url"),
			AccessToken:    v.GetString("store.access_token"),
			UserAgent:      v.GetString("store.user_agent"),
			PageSize:       v.GetInt("store.page_size"),
			MaxPages:       v.GetInt("store.max_pages"),
			TimeoutSeconds: v.GetInt("store.timeout_seconds"),
		},
		Marketplace: MarketplaceConfig{
			APIBaseURL:     v.GetString("marketplace.api_base_url"),
			AccessToken:    v.GetString("marketplace.access_token"),
			ClientKey:      v.GetString("marketplace.client_key"),
			ClientSecret:   v.GetString("marketplace.client_secret"),
			PartnerID:      v.GetString("marketplace.partner_id"),
			TimeoutSeconds: v.GetInt("marketplace.timeout_seconds"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "catalog-sync"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "7200"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.BasePath == "" {
		cfg.HTTP.BasePath = "/tiktok"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 10 * time.Minute
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Accept-Language", "X-Request-ID"}
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Sync.RunLockTTL == 0 {
		cfg.Sync.RunLockTTL = 15 * time.Minute
	}
	if cfg.Sync.RunLockPrefix == "" {
		cfg.Sync.RunLockPrefix = "catalogsync:run:"
	}
	if cfg.Sync.CleanupInterval == 0 {
		cfg.Sync.CleanupInterval = time.Minute
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsExporter == "" {
		cfg.Telemetry.MetricsExporter = "otlp"
	}
	if cfg.Telemetry.MetricsExportInterval == 0 {
		cfg.Telemetry.MetricsExportInterval = 60 * time.Second
	}
	if cfg.Telemetry.ProfilingServerAddress == "" {
		cfg.Telemetry.ProfilingServerAddress = "http://localhost:4040"
	}
	// Store and Marketplace defaults are filled by the ecommerce configs
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	port, err := strconv.Atoi(c.App.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("app.port must be a TCP port number, got %q", c.App.Port)
	}

	if !knownLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if !strings.HasPrefix(c.HTTP.BasePath, "/") {
		return fmt.Errorf("http.base_path must start with '/', got %q", c.HTTP.BasePath)
	}

	if c.Sync.RunLockTTL < 0 {
		return fmt.Errorf("sync.run_lock_ttl cannot be negative")
	}

	if c.Store.PageSize < 0 || c.Store.MaxPages < 0 {
		return fmt.Errorf("store.page_size and store.max_pages cannot be negative")
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	switch c.Telemetry.MetricsExporter {
	case "otlp", "prometheus":
	default:
		return fmt.Errorf("telemetry.metrics_exporter must be otlp or prometheus, got %q", c.Telemetry.MetricsExporter)
	}

	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// Addr returns the listen address of the HTTP server
func (a *AppConfig) Addr() string {
	return ":" + a.Port
}

// Addr returns host:port of the Redis server
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
