// Package main is the entrypoint for the study spot board web server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/studyspot/studyspot/internal/auth"
	"github.com/studyspot/studyspot/internal/cache"
	"github.com/studyspot/studyspot/internal/config"
	"github.com/studyspot/studyspot/internal/handler"
	"github.com/studyspot/studyspot/internal/metrics"
	"github.com/studyspot/studyspot/internal/middleware"
	"github.com/studyspot/studyspot/internal/model"
	"github.com/studyspot/studyspot/internal/repository"
	"github.com/studyspot/studyspot/internal/server"
	"github.com/studyspot/studyspot/internal/service"
	"github.com/studyspot/studyspot/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := initLogger(cfg)
	databaseURL := cfg.DatabaseURL()

	if cfg.AutoMigrate {
		if err := migrateUp(databaseURL, logger); err != nil {
			logger.Error("failed to apply migrations", slog.String("error", sanitizeError(err, databaseURL)))
			return err
		}
	}

	repo, err := repository.New(ctx, databaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, databaseURL)),
			slog.String("database_url", redactURL(databaseURL)),
		)
		return err
	}
	logger.Info("connected to database")

	// Without Redis, sessions live in process memory and the auth rate
	// limit is off.
	var (
		sessionStore session.Store = session.NewMemoryStore()
		readiness    handler.HealthChecker
		limiter      middleware.IPRateLimiter
		cacheClient  *cache.Cache
	)
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			repo.Close()
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return err
		}
		sessionStore, readiness, limiter = cacheClient, cacheClient, cacheClient
		logger.Info("connected to Redis")
	} else {
		logger.Warn("REDIS_URL not set; using in-memory sessions without rate limiting")
	}

	recorder := metrics.NewPrometheus()

	accounts := service.NewAccountService(repo, auth.NewHasher(auth.DefaultParams), cfg.InstitutionDomain, recorder)
	listings := service.NewListingService(repo, cfg.MapHosts, recorder)

	sessions, err := session.NewManager(sessionStore, session.Config{
		Secret: cfg.SecretKey,
		TTL:    cfg.SessionTTL,
		Secure: !cfg.IsDevelopment(),
	})
	if err != nil {
		return err
	}

	views, err := handler.NewRenderer(logger)
	if err != nil {
		return err
	}

	security := middleware.DefaultSecurityConfig()
	security.IsDevelopment = cfg.IsDevelopment()
	security.MaxRequestBodySize = cfg.MaxRequestBodySize

	router := handler.NewRouter(handler.RouterConfig{
		Deps: handler.Deps{
			Accounts: accounts,
			Listings: listings,
			Sessions: sessions,
			Views:    views,
			Logger:   logger,
			Map: handler.MapConfig{
				Center: model.LatLng{Lat: cfg.MapCenterLat, Lng: cfg.MapCenterLng},
				Zoom:   cfg.MapZoom,
			},
		},
		Health:   handler.NewHealthHandler(repo, readiness),
		Gatherer: recorder.Registry(),
		Recorder: recorder,
		Security: security,
		AuthLimits: middleware.RateLimitConfig{
			Logger:  logger,
			Limiter: limiter,
			Enabled: cfg.RateLimitAuthEnabled,
			RPS:     cfg.RateLimitAuthRPS,
			Burst:   cfg.RateLimitAuthBurst,
		},
	})

	srv := server.New(router, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"institution_domain", cfg.InstitutionDomain,
	)

	return srv.Run(ctx)
}

func migrateUp(databaseURL string, logger *slog.Logger) error {
	mg, err := repository.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer mg.Close()

	mg.SetLogger(func(format string, v ...any) {
		logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrate")
	})
	if err := mg.Up(); err != nil {
		return err
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	logger.Info("schema up to date", "version", version, "dirty", dirty)
	return nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
