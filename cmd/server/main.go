package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/catalogsync/backend/docs"
	appintegration "github.com/catalogsync/backend/internal/application/integration"
	"github.com/catalogsync/backend/internal/infrastructure/cache"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/ecommerce"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
	"github.com/catalogsync/backend/internal/interfaces/http/handler"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/catalogsync/backend/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version string

//	@title			Catalog Sync API
//	@version		1.0
//	@description	Syncs Tiendanube (Nuvem Shop) store catalogs to TikTok Shop

//	@contact.name	API Support
//	@contact.url	https://github.com/catalogsync/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath	/tiktok

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	if version != "" {
		cfg.App.Version = version
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// OTEL logs export, bridged into zap when enabled
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize OTEL logs", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, loggerProvider, logger.ParseLevel(cfg.Log.Level))
		log = telemetry.BridgeLogger(log, otelCore)
	}

	log.Info("Starting catalog sync service",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("base_path", cfg.HTTP.BasePath),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	if cfg.Telemetry.SpanProfilesEnabled {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Metrics
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		Exporter:          cfg.Telemetry.MetricsExporter,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	// Continuous profiling
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.ProfilingBasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.ProfilingBasicAuthPass,
		ProfileTypes:      cfg.Telemetry.ProfilingTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}

	// Platform clients
	storeConfig := &ecommerce.TiendanubeConfig{
		APIBaseURL:     cfg.Store.APIBaseURL,
		AccessToken:    cfg.Store.AccessToken,
		UserAgent:      cfg.Store.UserAgent,
		PageSize:       cfg.Store.PageSize,
		MaxPages:       cfg.Store.MaxPages,
		TimeoutSeconds: cfg.Store.TimeoutSeconds,
	}
	storeClient, err := ecommerce.NewTiendanubeClient(storeConfig, log)
	if err != nil {
		log.Fatal("Invalid store configuration", zap.Error(err))
	}

	marketplaceConfig := ecommerce.NewTikTokShopConfig(
		cfg.Marketplace.AccessToken,
		cfg.Marketplace.ClientKey,
		cfg.Marketplace.ClientSecret,
		cfg.Marketplace.PartnerID,
	)
	if cfg.Marketplace.APIBaseURL != "" {
		marketplaceConfig.APIBaseURL = cfg.Marketplace.APIBaseURL
	}
	if cfg.Marketplace.TimeoutSeconds > 0 {
		marketplaceConfig.TimeoutSeconds = cfg.Marketplace.TimeoutSeconds
	}
	marketplaceClient, err := ecommerce.NewTikTokShopAdapter(marketplaceConfig, log)
	if err != nil {
		log.Fatal("Invalid marketplace configuration", zap.Error(err))
	}
	if !marketplaceConfig.CredentialStatus().IsConfigured() {
		log.Warn("TikTok Shop credentials incomplete, dispatches will report failures")
	}

	// Sync service
	syncMetrics, err := telemetry.NewSyncMetrics(meterProvider.Meter("catalog_sync"))
	if err != nil {
		log.Fatal("Failed to create sync metrics", zap.Error(err))
	}

	serviceOpts := []appintegration.SyncServiceOption{
		appintegration.WithSyncMetrics(syncMetrics),
	}

	var healthChecks []handler.HealthCheck
	if cfg.Sync.RunGuardEnabled {
		guardOpts := []cache.RunGuardFactoryOption{
			cache.WithLogger(log),
			cache.WithInMemoryFallback(true),
			cache.WithCleanupInterval(cfg.Sync.CleanupInterval),
		}
		if cfg.Redis.Enabled {
			guardOpts = append(guardOpts, cache.WithRedis(cache.RedisConfig{
				Host:     cfg.Redis.Host,
				Port:     cfg.Redis.Port,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			}, cfg.Sync.RunLockPrefix))
		}

		guard, closeGuard, err := cache.NewRunGuardFactory(guardOpts...).CreateGuard(ctx)
		if err != nil {
			log.Fatal("Failed to create sync run guard", zap.Error(err))
		}
		defer func() {
			if err := closeGuard(); err != nil {
				log.Error("Error closing sync run guard", zap.Error(err))
			}
		}()

		if redisGuard, ok := guard.(*cache.RedisSyncRunGuard); ok {
			healthChecks = append(healthChecks, handler.HealthCheck{Name: "redis", Check: redisGuard.Ping})
		}
		serviceOpts = append(serviceOpts, appintegration.WithRunGuard(guard, cfg.Sync.RunLockTTL))
	}

	fetcher := appintegration.NewCatalogFetcher(storeClient, syncMetrics, log)
	syncService := appintegration.NewSyncService(fetcher, marketplaceClient, marketplaceConfig, log, serviceOpts...)

	// Handlers
	catalogSyncHandler := handler.NewCatalogSyncHandler(syncService)
	systemHandler := handler.NewSystemHandler(cfg.App.Version, healthChecks...)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. Tracing - Server span plus request attributes
	// 8. Metrics and profiling labels
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	tracingConfig := middleware.DefaultTracingConfig()
	tracingConfig.ServiceName = cfg.Telemetry.ServiceName
	tracingConfig.Enabled = tracerProvider.IsEnabled()
	engine.Use(middleware.TracingWithConfig(tracingConfig))
	engine.Use(middleware.SpanAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())

	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       meterProvider.IsEnabled(),
		Logger:        log,
	}))

	profilingConfig := middleware.DefaultProfilingConfig()
	profilingConfig.Enabled = profiler.IsEnabled()
	profilingConfig.SkipPaths = append(profilingConfig.SkipPaths, cfg.HTTP.BasePath+"/system/ping")
	engine.Use(middleware.ProfilingWithConfig(profilingConfig))

	// Health check endpoint (outside the API base path)
	engine.GET("/health", systemHandler.Health)

	// Prometheus scrape endpoint
	if promHandler := meterProvider.PrometheusHandler(); promHandler != nil {
		engine.GET("/metrics", gin.WrapH(promHandler))
	}

	// Swagger documentation endpoint
	docs.SwaggerInfo.BasePath = cfg.HTTP.BasePath
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// API routes
	r := router.NewRouter(engine, router.WithBasePath(cfg.HTTP.BasePath))
	r.Register(handler.CatalogSyncRoutes(catalogSyncHandler)).
		Register(handler.SystemRoutes(systemHandler))
	r.Setup()
	for _, route := range r.Routes() {
		log.Debug("Route registered",
			zap.String("group", route.Group),
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	srv := &http.Server{
		Addr:           cfg.App.Addr(),
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	shutdownTelemetry(shutdownCtx, log, tracerProvider, meterProvider, loggerProvider, profiler)

	log.Info("Server exited gracefully")
}

// shutdownTelemetry flushes exporters. Logs go last so the lines above are
// still exported.
func shutdownTelemetry(
	ctx context.Context,
	log *zap.Logger,
	tp *telemetry.TracerProvider,
	mp *telemetry.MeterProvider,
	lp *telemetry.LoggerProvider,
	profiler *telemetry.Profiler,
) {
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := mp.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down metrics", zap.Error(err))
	}
	if err := tp.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down tracing", zap.Error(err))
	}
	if err := lp.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down OTEL logs", zap.Error(err))
	}
}
