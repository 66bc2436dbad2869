package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"aurevo-menu/auth"
	"aurevo-menu/config"
	"aurevo-menu/credentials"
	"aurevo-menu/handlers"
	"aurevo-menu/menu"
	"aurevo-menu/middleware"
	"aurevo-menu/routes"
	"aurevo-menu/session"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(config.FilePath("config.yaml"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.UsingFallbackSecret() {
		slog.Warn("SESSION_SECRET not set, signing sessions with the insecure built-in secret")
	}

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open credential store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	// `aurevo-menu migrate` only prepares the database.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		slog.Info("migrations applied", slog.String("driver", cfg.Database.Driver))
		return
	}

	authService, err := auth.New(store)
	if err != nil {
		slog.Error("failed to initialize auth", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.CookieName, cfg.IsProduction())
	h := handlers.New(menu.NewStore(cfg.Menu.File), authService, sessions, logger)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.NewRouter(h, middleware.NewGate(sessions), routes.Options{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StaticDir:      cfg.Server.StaticDir,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		slog.Info("starting server",
			slog.String("addr", "http://localhost:"+cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("menu_file", cfg.Menu.File),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
	slog.Info("server exited")
}

// openStore connects the configured credential backend and makes sure its
// schema exists.
func openStore(ctx context.Context, cfg *config.Config) (credentials.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		store, err := credentials.NewPgStore(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	default:
		db, err := config.OpenSQLite(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		return credentials.NewGormStore(db), nil
	}
}
