package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacecadet3008/Kristo-mfalme/internal/cache"
	"github.com/spacecadet3008/Kristo-mfalme/internal/config"
	"github.com/spacecadet3008/Kristo-mfalme/internal/events"
	"github.com/spacecadet3008/Kristo-mfalme/internal/httpclient"
	"github.com/spacecadet3008/Kristo-mfalme/internal/logging"
	"github.com/spacecadet3008/Kristo-mfalme/internal/notify"
	"github.com/spacecadet3008/Kristo-mfalme/internal/phone"
	"github.com/spacecadet3008/Kristo-mfalme/internal/server"
	"github.com/spacecadet3008/Kristo-mfalme/internal/sms"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store/postgres"
	"github.com/spacecadet3008/Kristo-mfalme/internal/tithe"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	migrate := flag.Bool("migrate", true, "run schema migrations on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *migrate {
		if err := db.Migrate(ctx); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	var statusCache *cache.StatusCache
	if cfg.RedisURL != "" {
		statusCache, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer statusCache.Close()
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		slog.Error("failed to build sms provider", "error", err)
		os.Exit(1)
	}
	slog.Info("sms provider ready", "provider", provider.Name(), "send_sms", cfg.SendSMS)

	fallback := phone.PrefixFallback
	if cfg.PhoneFallback == "mobile" {
		fallback = phone.MobileHeuristic
	}
	normalizer := phone.New(cfg.CountryCode, fallback)

	notifications := postgres.NewNotificationStore(db)
	logs := postgres.NewNotificationLogStore(db)
	members := postgres.NewMemberStore(db)
	ministries := postgres.NewMinistryStore(db)
	communities := postgres.NewCommunityStore(db)
	tithes := postgres.NewTitheStore(db)

	hub := events.NewHub()
	dispatcher := notify.NewDispatcher(
		notifications, logs, notify.NewResolver(members),
		provider, normalizer, hub, statusCache,
	)

	srv := server.New(server.Deps{
		Notifications: notifications,
		Logs:          logs,
		Members:       members,
		Ministries:    ministries,
		Communities:   communities,
		Dispatcher:    dispatcher,
		Tithes:        tithe.NewService(tithes, members, provider, normalizer, cfg.SendSMS),
		Provider:      provider,
		Hub:           hub,
		StatusCache:   statusCache,
		DB:            db,
		APIKeyHash:    cfg.APIKeyHash,
	})

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}
}

// buildProvider wires the configured gateway. With send_sms disabled the
// mock provider stands in so every dispatch path still works end to end.
func buildProvider(cfg *config.Config) (sms.Provider, error) {
	if !cfg.SendSMS {
		return sms.NewMock(), nil
	}
	return sms.FromSettings(cfg.SMS, httpclient.New(httpclient.DefaultTimeout))
}
