package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/onthegorentals/onthego/internal/api"
	"github.com/onthegorentals/onthego/internal/auth"
	"github.com/onthegorentals/onthego/internal/booking"
	"github.com/onthegorentals/onthego/internal/car"
	"github.com/onthegorentals/onthego/internal/config"
	"github.com/onthegorentals/onthego/internal/database"
	"github.com/onthegorentals/onthego/internal/faq"
	"github.com/onthegorentals/onthego/internal/insurance"
	"github.com/onthegorentals/onthego/internal/sweeper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := auth.NewUserRepository(db.Pool())
	roleRepo := auth.NewRoleRepository(db.Pool())
	tokenRepo := auth.NewRefreshTokenRepository(db.Pool())

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL())
	sessions := auth.NewService(userRepo, roleRepo, tokenRepo, hasher, issuer, cfg.RefreshTokenTTL())
	google := auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL)

	// Seed before the listener starts so default accounts exist from the
	// first request onward.
	auth.SeedDefaults(ctx, roleRepo, userRepo, hasher)

	router := api.NewRouter(api.RouterDeps{
		Sessions:            sessions,
		TokenIssuer:         issuer,
		Google:              google,
		UserRepo:            userRepo,
		RoleRepo:            roleRepo,
		CarRepo:             car.NewPostgresRepository(db.Pool()),
		BookingRepo:         booking.NewPostgresRepository(db.Pool()),
		InsuranceRepo:       insurance.NewPostgresRepository(db.Pool()),
		FAQRepo:             faq.NewPostgresRepository(db.Pool()),
		DBPinger:            db,
		Version:             cfg.Version,
		RefreshCookieName:   cfg.RefreshCookieName,
		RefreshCookieSecure: cfg.RefreshCookieSecure,
		FrontendCallbackURL: cfg.FrontendCallbackURL,
	})

	sweep := sweeper.New(tokenRepo, cfg.TokenSweepInterval())
	go sweep.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting OnTheGoRentals server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
