// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the ByteAndBlog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Connect to Redis when configured.
//  6. Pick mail, upload and cache backends.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/byteandblog/internal/api"
	"github.com/taibuivan/byteandblog/internal/blog"
	"github.com/taibuivan/byteandblog/internal/contact"
	"github.com/taibuivan/byteandblog/internal/news"
	"github.com/taibuivan/byteandblog/internal/platform/config"
	"github.com/taibuivan/byteandblog/internal/platform/constants"
	"github.com/taibuivan/byteandblog/internal/platform/mailer"
	"github.com/taibuivan/byteandblog/internal/platform/migration"
	pgstore "github.com/taibuivan/byteandblog/internal/platform/postgres"
	redisstore "github.com/taibuivan/byteandblog/internal/platform/redis"
	"github.com/taibuivan/byteandblog/internal/platform/sec"
	"github.com/taibuivan/byteandblog/internal/platform/storage"
	"github.com/taibuivan/byteandblog/internal/portfolio"
	"github.com/taibuivan/byteandblog/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("[ByteAndBlog] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("redis", cfg.RedisURL != ""),
		slog.Bool("smtp", cfg.SMTPEnabled()),
		slog.Bool("s3", cfg.S3Enabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives as long as the process. Cancelled on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log, cfg.Debug), "run migrations")

	// ── 5. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 6. Backends ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService([]byte(cfg.JWTSecret), constants.AuthIssuer, constants.AccessTokenTTL)
	must(log, err, "initialize jwt service")

	var otpStore auth.OTPStore = auth.NewMemoryOTPStore()
	var newsCache news.Cache = news.NewMemoryCache()
	if rdb != nil {
		otpStore = auth.NewRedisOTPStore(rdb)
		newsCache = news.NewRedisCache(rdb)
	}

	var mail mailer.Sender = mailer.NewLogSender(log)
	if cfg.SMTPEnabled() {
		mail, err = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		must(log, err, "initialize smtp sender")
	}

	var uploader storage.Uploader
	if cfg.S3Enabled() {
		uploader, err = storage.NewS3Uploader(startupCtx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	} else {
		uploader, err = storage.NewLocalUploader(cfg.UploadDir, "/uploads")
	}
	must(log, err, "initialize uploader")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}
	if rdb != nil {
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewOTPRegistry(otpStore),
		sec.NewPasswordHasher(cfg.BcryptCost),
		tokens,
		mail,
	)

	blogRepository := blog.NewPostgresRepository(pool)
	blogService := blog.NewService(blogRepository, blogRepository)

	portfolioService := portfolio.NewService(portfolio.NewPostgresRepository(pool), uploader)
	contactService := contact.NewService(contact.NewPostgresRepository(pool), mail, cfg.ContactRecipient())
	newsService := news.NewService(cfg.NewsFeedURL, newsCache, cfg.NewsCacheTTL)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Blog:      blog.NewHandler(blogService),
		Portfolio: portfolio.NewHandler(portfolioService),
		Contact:   contact.NewHandler(contactService),
		News:      news.NewHandler(newsService),
		SPA:       api.NewSPAHandler(cfg.UploadDir, cfg.StaticDir),
	}

	server := api.NewServer(appCtx, cfg, log, tokens, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	appCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		return
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the process-wide JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", "byteandblog"))

	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
