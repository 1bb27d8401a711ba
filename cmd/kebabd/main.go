package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kebabpro/kebabd/config"
	"github.com/kebabpro/kebabd/internal/adapters/notify"
	"github.com/kebabpro/kebabd/internal/adapters/oracle"
	"github.com/kebabpro/kebabd/internal/adapters/storage"
	"github.com/kebabpro/kebabd/internal/adapters/ws"
	"github.com/kebabpro/kebabd/internal/engine"
	"github.com/kebabpro/kebabd/internal/market"
	"github.com/kebabpro/kebabd/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one tick and exit")
	table := flag.Bool("table", false, "print full market board + portfolio (default: compact 1-line)")
	serve := flag.String("serve", "", "address for the websocket endpoint (e.g. :8080)")
	sync := flag.Bool("sync", false, "run one reality sync via the oracle and exit")
	ask := flag.String("ask", "", "ask the guru a question and exit")
	reset := flag.Bool("reset", false, "wipe persisted state and start from the seed portfolio")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("kebabd starting",
		"config", *configPath,
		"interval", cfg.TickInterval(),
		"once", *once,
		"serve", *serve,
	)

	store, err := storage.NewSQLiteStore(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	guru := oracle.NewClient(cfg.Oracle.BaseURL, cfg.Oracle.Model, cfg.Oracle.APIKey)
	if !guru.Enabled() {
		slog.Warn("oracle disabled: no API key, running pure simulation")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	notifiers := []ports.Notifier{notify.NewConsole(*table)}

	var hub *ws.Hub
	if *serve != "" {
		hub = ws.NewHub(slog.Default())
		go hub.Run(ctx)
		notifiers = append(notifiers, hub)
	}

	marketCfg := market.Config{
		HistoryCapacity: cfg.Engine.HistoryCapacity,
		SeedBalance:     cfg.Engine.SeedBalance,
	}
	engCfg := engine.Config{TickInterval: cfg.TickInterval()}
	eng := engine.New(engCfg, market.New(marketCfg), guru, store, notifiers...)

	if *reset {
		if err := eng.Reset(ctx); err != nil {
			slog.Error("reset failed", "err", err)
			os.Exit(1)
		}
		slog.Info("state reset to seed portfolio")
	} else if err := eng.Load(ctx); err != nil {
		slog.Error("failed to load persisted state", "err", err)
		os.Exit(1)
	}

	if *ask != "" {
		runAsk(ctx, eng, *ask)
		return
	}

	if *sync {
		if err := eng.SyncWithReality(ctx); err != nil {
			slog.Error("reality sync failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if *once {
		eng.Tick(ctx, time.Now())
		return
	}

	if *serve != "" {
		go serveWs(ctx, hub, *serve)
	}

	if err := eng.Run(ctx); err != nil {
		slog.Error("engine exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("kebabd stopped cleanly")
}

func runAsk(ctx context.Context, eng *engine.Engine, question string) {
	reply, err := eng.Ask(ctx, question)
	if err != nil {
		slog.Error("guru unavailable", "err", err)
		os.Exit(1)
	}
	if reply.UnlockBlackMarket {
		slog.Info("el bazar nero se ha abierto")
	}
	os.Stdout.WriteString(reply.Reply + "\n")
}

func serveWs(ctx context.Context, hub *ws.Hub, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWs)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("websocket endpoint listening", "addr", addr, "path", "/ws")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("websocket server error", "err", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
