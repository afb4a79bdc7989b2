package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/sortarr/internal/api/v1"
	"github.com/vmunix/sortarr/internal/config"
	"github.com/vmunix/sortarr/internal/download"
	"github.com/vmunix/sortarr/internal/events"
	"github.com/vmunix/sortarr/internal/handlers"
	"github.com/vmunix/sortarr/internal/history"
	"github.com/vmunix/sortarr/internal/library"
	"github.com/vmunix/sortarr/internal/migrations"
	"github.com/vmunix/sortarr/internal/notify"
	"github.com/vmunix/sortarr/internal/plex"
	"github.com/vmunix/sortarr/internal/recognize"
	"github.com/vmunix/sortarr/internal/server"
	"github.com/vmunix/sortarr/internal/storage"
	"github.com/vmunix/sortarr/internal/tmdb"
	"github.com/vmunix/sortarr/internal/transfer"
)

func runServer(configPath string) error {
	if configPath == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		configPath = found
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := config.SetupLogger(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = closeLog.Close() }()

	for _, w := range cfg.Warnings() {
		logger.Warn("config", "warning", w)
	}

	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrations.Apply(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Stores ===
	historyStore := history.NewStore(db)
	downloadStore := download.NewStore(db)
	eventLog := events.NewEventLog(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	bus := events.NewBus(eventLog, logger, events.WithRegisterer(reg))
	defer func() { _ = bus.Close() }()

	// === Clients (optional - nil if not configured) ===
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithCacheTTL(cfg.TMDB.CacheTTL),
	)
	recognizer := recognize.New(tmdbClient, logger)

	var notifier transfer.Notifier = notify.Noop{}
	if n := cfg.Notifications.Ntfy; n != nil {
		notifier = notify.NewNtfy(n.Server, n.Topic, n.Token, 0, logger)
	}

	var gateway *download.Gateway
	if len(cfg.Downloaders.QBittorrent) > 0 {
		clients := make([]download.Client, 0, len(cfg.Downloaders.QBittorrent))
		for _, qb := range cfg.Downloaders.QBittorrent {
			clients = append(clients, download.NewQBittorrentClient(qb.Name, qb.URL, qb.Username, qb.Password, logger))
		}
		gateway = download.NewGateway(clients, bus, logger)
	}

	// === Services ===
	deps := transfer.Deps{
		Recognizer: recognizer,
		Episodes:   recognizer,
		Resolver:   library.NewResolver(cfg.TargetDirectories(), cfg.Sources(), logger),
		Storage:    storage.NewLocal(cfg.Transfer.Overwrite, logger),
		Namer:      storage.NewRenamer(cfg.Transfer.MovieTemplate, cfg.Transfer.SeriesTemplate),
		History:    historyStore,
		Downloads:  downloadStore,
		Events:     bus,
		Notifier:   notifier,
		Registerer: reg,
		Logger:     logger,
	}
	if gateway != nil {
		deps.Gateway = gateway
	}
	svc, err := transfer.New(deps, cfg.TransferSettings())
	if err != nil {
		return fmt.Errorf("transfer: %w", err)
	}

	var poller *download.Poller
	if gateway != nil {
		poller = download.NewPoller(gateway, svc, cfg.Downloads.Dirs, cfg.Downloads.LockFile, logger)
		poller.RecordTo(downloadStore)
	}

	// === Background Handlers ===
	hs := []handlers.Handler{
		handlers.NewRetentionHandler(bus, eventLog, cfg.Database.EventRetention, 0, logger),
	}
	if p := cfg.Notifications.Plex; p != nil {
		plexClient := plex.NewClient(p.URL, p.Token, p.LocalPath, p.RemotePath, logger)
		checkPlex(ctx, plexClient, logger)
		hs = append(hs, handlers.NewLibraryScanHandler(bus, plexClient, logger))
	}

	// === HTTP Setup ===
	apiDeps := v1.ServerDeps{
		Transfer:   svc,
		History:    historyStore,
		Recognizer: recognizer,
		Events:     eventLog,
		Metrics:    reg,
		APIKey:     cfg.Server.APIKey,
		Version:    version,
		Logger:     logger,
	}
	if poller != nil {
		apiDeps.Poller = poller
	}
	api, err := v1.New(apiDeps)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: v1.LogRequests(mux, logger)}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	comp := server.Components{
		Worker:   svc,
		Handlers: hs,
		HTTP:     srv,
		Reload:   reloader(configPath, svc, logger),
		Signals:  hup,
	}
	if poller != nil {
		comp.Poller = poller
	}

	logger.Info("server starting",
		"addr", addr,
		"config", configPath,
		"database", cfg.Database.Path,
		"libraries", len(cfg.Libraries),
		"downloaders", len(cfg.Downloaders.QBittorrent),
		"workers", svc.Workers(),
		"plex", cfg.Notifications.Plex != nil,
		"ntfy", cfg.Notifications.Ntfy != nil,
	)

	runner := server.NewRunner(comp, server.Config{PollInterval: cfg.Downloads.PollInterval}, logger)
	if err := runner.Run(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// reloader re-reads the config file and applies its transfer settings.
// Other sections take effect on restart.
func reloader(path string, svc *transfer.Service, logger *slog.Logger) func(context.Context) error {
	return func(context.Context) error {
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("reload %s: %w", path, err)
		}
		if err := svc.Apply(cfg.TransferSettings()); err != nil {
			return fmt.Errorf("apply settings: %w", err)
		}
		logger.Info("config reloaded", "path", path, "workers", svc.Workers())
		return nil
	}
}

// checkPlex logs whether the media server answers. Scans are still
// attempted when it does not; it may come up later.
func checkPlex(ctx context.Context, c *plex.Client, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	id, err := c.GetIdentity(ctx)
	if err != nil {
		logger.Warn("plex unreachable, library scans may fail", "error", err)
		return
	}
	logger.Info("plex connected", "name", id.Name, "version", id.Version)
}
