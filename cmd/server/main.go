package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/c5551051011/insidelab-frontend/internal/api"
	"github.com/c5551051011/insidelab-frontend/internal/auth"
	"github.com/c5551051011/insidelab-frontend/internal/cache"
	"github.com/c5551051011/insidelab-frontend/internal/config"
	"github.com/c5551051011/insidelab-frontend/internal/handlers/web"
	"github.com/c5551051011/insidelab-frontend/internal/response"
	"github.com/c5551051011/insidelab-frontend/internal/router"
	"github.com/c5551051011/insidelab-frontend/internal/services"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting insidelab frontend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	cacheInstance, err := cache.New(&cache.Config{
		Provider:      cfg.Cache.Provider,
		TTL:           cfg.Cache.TTL,
		MaxKeys:       cfg.Cache.MaxKeys,
		RedisURL:      cfg.Cache.RedisURL,
		RedisDB:       cfg.Cache.RedisDB,
		RedisPassword: cfg.Cache.RedisPassword,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create cache", zap.Error(err))
	}
	defer cacheInstance.Close()

	tokenStore, err := auth.NewFileStore(cfg.Auth.TokenFile)
	if err != nil {
		logger.Fatal("Failed to open token store", zap.Error(err))
	}
	authCtx := auth.NewContext(tokenStore, logger)
	authCtx.Init()

	apiClient := api.NewClient(api.Config{
		BaseURL:        cfg.Backend.BaseURL,
		RequestTimeout: cfg.Backend.RequestTimeout,
		MaxRetries:     cfg.Backend.MaxRetries,
	}, authCtx, logger)

	degraded := cfg.Features.DegradedMode
	authService := services.NewAuthService(apiClient, authCtx, logger)
	universityService := services.NewUniversityService(apiClient, cacheInstance, degraded, logger)
	reviewService := services.NewReviewService(apiClient, cacheInstance, degraded, logger)
	searchService := services.NewSearchService(apiClient, cacheInstance, degraded, cfg.Features.OfflineSearch, logger)

	// Drop a stale session early instead of failing the first
	// authenticated call.
	if authCtx.IsAuthenticated() && !authService.VerifyToken(context.Background()) {
		logger.Info("Persisted session was invalid, starting signed out")
	}

	builder := response.NewBuilder(response.DefaultConfig(), logger)
	handler := web.NewHandler(
		authService, universityService, reviewService, searchService,
		authCtx, builder, googleOAuthConfig(cfg), logger,
	)
	if err := handler.InitTemplates(cfg.Server.TemplateDir); err != nil {
		logger.Fatal("Failed to initialize templates", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router.New(handler, authCtx, cfg.Server.StaticDir, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal("HTTP server failed", zap.Error(err))
	case sig := <-stop:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// googleOAuthConfig builds the Google sign-in config, or nil when the
// client credentials are not set.
func googleOAuthConfig(cfg *config.Config) *oauth2.Config {
	if cfg.Auth.GoogleClientID == "" || cfg.Auth.GoogleClientSecret == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.Auth.GoogleClientID,
		ClientSecret: cfg.Auth.GoogleClientSecret,
		RedirectURL:  cfg.Auth.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// initLogger builds the structured logger from the logging config.
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Logging.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	zapCfg.Level = level

	return zapCfg.Build()
}
