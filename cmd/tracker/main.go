package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/okulov/casetrack/internal/cache"
	"github.com/okulov/casetrack/internal/config"
	"github.com/okulov/casetrack/internal/history"
	"github.com/okulov/casetrack/internal/hub"
	"github.com/okulov/casetrack/internal/model"
	"github.com/okulov/casetrack/internal/price"
	"github.com/okulov/casetrack/internal/steam"
	"github.com/okulov/casetrack/internal/tracker"
	"github.com/okulov/casetrack/internal/version"
	"github.com/okulov/casetrack/internal/web"
)

func main() {
	// .env is optional; real env vars win either way
	godotenv.Load()

	configPath := flag.String("config", "configs/tracker.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting tracker",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"steam_id", cfg.Steam.SteamID,
		"poll_interval", cfg.Tracker.PollInterval,
		"cache", cfg.Cache.Type,
		"history", cfg.History.Enabled,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Price cache
	var priceCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		priceCache, err = cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
	default:
		priceCache = cache.NewMemory()
	}
	defer priceCache.Close()

	// Steam client
	steamClient := steam.NewClient(
		cfg.Steam.BaseURL,
		cfg.Steam.SteamID,
		steam.Credentials{
			SessionID:   cfg.Steam.SessionID,
			LoginSecure: cfg.Steam.LoginSecure,
		},
		steam.WithLogger(logger),
		steam.WithTimeout(cfg.Steam.Timeout),
		steam.WithApp(cfg.Steam.AppID, cfg.Steam.ContextID),
		steam.WithMarket(cfg.Steam.Currency, cfg.Steam.Language),
		steam.WithInventoryCount(cfg.Steam.Count),
		steam.WithCDNBaseURL(cfg.Steam.CDNBaseURL),
	)

	resolver := price.NewResolver(steamClient, priceCache, cfg.Cache.TTL, logger)

	// Optional drop history
	var (
		dropLog  *history.Writer
		dropPool web.Pinger
	)
	if cfg.History.Enabled {
		logger.Info("connecting to database",
			"host", cfg.History.Database.Host,
			"port", cfg.History.Database.Port,
			"database", cfg.History.Database.Name,
		)

		pool, err := history.Connect(ctx, cfg.History.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		dropPool = pool

		dropLog = history.NewWriter(history.WriterConfig{
			BatchSize:     cfg.History.BatchSize,
			FlushInterval: cfg.History.FlushInterval,
		}, pool, logger)
		if err := dropLog.Start(ctx); err != nil {
			logger.Error("failed to start history writer", "error", err)
			os.Exit(1)
		}
		defer stopComponent(dropLog.Stop, "history writer", logger)
	}

	// Overlay hub
	overlay := hub.New(logger)
	if err := overlay.Start(ctx); err != nil {
		logger.Error("failed to start overlay hub", "error", err)
		os.Exit(1)
	}
	defer stopComponent(overlay.Stop, "overlay hub", logger)

	// Tracker
	tr := tracker.New(tracker.Config{
		CasePrice:     cfg.Tracker.CasePrice,
		KeyPrice:      cfg.Tracker.KeyPrice,
		PollInterval:  cfg.Tracker.PollInterval,
		MetadataDelay: cfg.Tracker.MetadataDelay,
		FetchTimeout:  cfg.Steam.Timeout,
		EventBuffer:   cfg.Tracker.EventBuffer,
	}, steamClient, resolver, logger)

	if err := tr.Start(ctx); err != nil {
		logger.Error("failed to start tracker", "error", err)
		os.Exit(1)
	}
	defer stopComponent(tr.Stop, "tracker", logger)

	// Fan events out to the overlay hub and the drop log. Stats arrive
	// first each cycle and are held until the matching drop.
	go dispatch(tr, overlay, dropLog)

	// HTTP surface
	server := web.New(cfg.Server, tr, overlay, dropPool, logger)
	if err := server.Start(ctx); err != nil {
		logger.Error("failed to start http server", "error", err)
		os.Exit(1)
	}
	defer stopComponent(server.Stop, "http server", logger)

	logger.Info("tracker running",
		"steam_id", cfg.Steam.SteamID,
		"addr", cfg.Server.Host, "port", cfg.Server.Port,
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")
}

// dispatch drains the tracker feed until it closes.
func dispatch(tr *tracker.Tracker, overlay *hub.Hub, dropLog *history.Writer) {
	var pending model.Stats

	for {
		ev, ok := tr.Events().Next()
		if !ok {
			return
		}

		overlay.Publish(ev)

		switch ev.Kind {
		case model.EventStats:
			pending = ev.Stats
		case model.EventDrop:
			if dropLog != nil {
				dropLog.Record(ev.Drop, pending)
			}
		}
	}
}

// stopComponent runs a component's Stop with a shutdown timeout.
func stopComponent(stop func(context.Context) error, name string, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := stop(ctx); err != nil {
		logger.Warn("component stop failed", "component", name, "error", err)
	}
}
