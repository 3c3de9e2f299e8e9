// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command ozpolat serves the Özpolat İnşaat website and its admin API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/olegiv/ozpolat-cms/internal/auth"
	"github.com/olegiv/ozpolat-cms/internal/cache"
	"github.com/olegiv/ozpolat-cms/internal/config"
	"github.com/olegiv/ozpolat-cms/internal/geoip"
	"github.com/olegiv/ozpolat-cms/internal/handler"
	"github.com/olegiv/ozpolat-cms/internal/handler/api"
	"github.com/olegiv/ozpolat-cms/internal/logging"
	"github.com/olegiv/ozpolat-cms/internal/middleware"
	"github.com/olegiv/ozpolat-cms/internal/render"
	"github.com/olegiv/ozpolat-cms/internal/scheduler"
	"github.com/olegiv/ozpolat-cms/internal/service"
	"github.com/olegiv/ozpolat-cms/internal/session"
	"github.com/olegiv/ozpolat-cms/internal/site"
	"github.com/olegiv/ozpolat-cms/internal/store"
	"github.com/olegiv/ozpolat-cms/internal/version"
	"github.com/olegiv/ozpolat-cms/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ozpolat - Özpolat İnşaat website server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OZ_ADMIN_PASSWORD   Admin password or argon2id hash (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OZ_SESSION_SECRET   Token and session key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OZ_STORE_DRIVER     file|sqlite|mongo (default: file)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OZ_DATA_PATH        JSON document or SQLite path (default: ./data/db.json)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OZ_SERVER_PORT      Server port (default: 5000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OZ_ENV              development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OZ_REDIS_URL        Redis URL for the response cache (optional)\n")
	}
	flag.Parse()

	if *showVersion {
		_, _ = fmt.Println("ozpolat " + version.Current().String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx := context.Background()

	st, db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
		if db != nil {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}
	}()
	if err := st.Ping(ctx); err != nil {
		return fmt.Errorf("store not reachable: %w", err)
	}
	slog.Info("store ready", "driver", cfg.StoreDriver)

	respCache, err := cache.New(cache.Config{
		Type:       cfg.CacheType,
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTL,
		MaxSize:    cfg.CacheMaxSize,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = respCache.Close() }()
	slog.Info("cache initialized", "backend", cfg.CacheType)

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("geoip database not loaded, continuing without country lookup", "error", err)
	}
	defer func() { _ = geo.Close() }()

	uploads := service.NewUploadService(cfg.UploadsDir, service.UploadLimits{
		MaxFileSize: cfg.MaxUploadSize,
		MaxFiles:    cfg.MaxUploadFiles,
	}, logger)
	svc := service.New(st, uploads)

	authenticator, err := auth.NewAuthenticator(cfg.AdminPassword, cfg.SessionSecret, cfg.SessionLifetime)
	if err != nil {
		return fmt.Errorf("initializing auth: %w", err)
	}
	sessions := session.New(db, cfg.SessionLifetime, cfg.IsDevelopment())
	gate := middleware.NewAdminAuth(authenticator, sessions)

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesRoot(),
		SessionManager: sessions.SessionManager,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	contactLimiter := middleware.NewRateLimiter("contact", cfg.ContactRate, cfg.ContactBurst)
	loginLimiter := middleware.NewRateLimiter("login", cfg.LoginRate, cfg.LoginBurst)

	jobs := scheduler.New(logger)
	for _, j := range []scheduler.Job{
		{
			Name:        scheduler.JobBackup,
			Description: "Write a JSON snapshot of the site document",
			Schedule:    cfg.BackupSchedule,
			Run:         scheduler.BackupJob(st, cfg.BackupDir, cfg.BackupRetention, logger),
		},
		{
			Name:        scheduler.JobSweepUploads,
			Description: "Find uploaded files no content refers to",
			Schedule:    cfg.SweepSchedule,
			Run:         scheduler.SweepJob(st, uploads, cfg.SweepMinAge, cfg.SweepDelete, logger),
		},
		{
			Name:        scheduler.JobGeoIPReload,
			Description: "Reopen the GeoIP database after an update",
			Schedule:    geoIPSchedule(cfg),
			Run:         scheduler.ReloadJob(geo),
		},
	} {
		if err := jobs.Add(j); err != nil {
			return fmt.Errorf("scheduling %s: %w", j.Name, err)
		}
	}
	jobs.Start()
	defer jobs.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	// An empty origin list would make cors allow every origin.
	if len(cfg.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(sessions.LoadAndSave)
	r.Use(middleware.CSRF(middleware.CSRFConfig{
		AuthKey:        []byte(cfg.SessionSecret),
		TrustedOrigins: middleware.TrustedHosts(cfg.TrustedOrigins),
	}))

	health := handler.NewHealthHandler(st, respCache, cfg.UploadsDir)
	r.With(gate.Detect).Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)

	seoHandler := handler.NewSEOHandler(st, cfg.SiteURL, !cfg.IsProduction(), logger)
	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)

	apiHandler := api.NewHandler(svc, authenticator, sessions, geo, logger)
	r.Mount("/api", apiHandler.Routes(api.RouterOptions{
		Gate:           gate,
		ContactLimiter: contactLimiter,
		LoginLimiter:   loginLimiter,
		Cache:          middleware.NewResponseCache(respCache, cfg.CacheTTL),
	}))

	// Uploads: cache for 1 week (604800 seconds)
	uploadsHandler := middleware.StaticCache(604800)(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	r.Handle("/uploads/*", uploadsHandler)

	// Static assets: cache for 1 day (86400 seconds)
	staticHandler := middleware.StaticCache(86400)(http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticRoot()))))
	r.Handle("/static/*", staticHandler)

	siteHandler := site.NewHandler(svc, renderer, geo, cfg.SiteURL, logger)
	r.Mount("/", siteHandler.Routes(contactLimiter))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// openStore opens the configured backend. For sqlite the returned *sql.DB
// also holds the session table; it is nil for the other drivers.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, *sql.DB, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DataPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}
		slog.Info("initializing database", "path", cfg.DataPath)
		db, err := store.NewDB(cfg.DataPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing database: %w", err)
		}
		if err := store.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		return store.New(store.NewSQLiteBackend(db)), db, nil

	case config.StoreMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongodb: %w", err)
		}
		return store.New(store.NewMongoBackend(client, client.Database(cfg.MongoDB))), nil, nil

	default:
		if err := os.MkdirAll(filepath.Dir(cfg.DataPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}
		return store.New(store.NewFileBackend(cfg.DataPath, cfg.Seed)), nil, nil
	}
}

// geoIPSchedule disables the reload job when no database is configured.
func geoIPSchedule(cfg *config.Config) string {
	if !cfg.GeoIPEnabled() {
		return ""
	}
	return cfg.GeoIPSchedule
}
