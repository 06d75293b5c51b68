package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/tankarena/internal/config"
	"github.com/udisondev/tankarena/internal/data"
	"github.com/udisondev/tankarena/internal/db"
	"github.com/udisondev/tankarena/internal/game/battle"
	"github.com/udisondev/tankarena/internal/metrics"

	// weapon handlers register themselves with the battle package
	_ "github.com/udisondev/tankarena/internal/game/weapon"
)

const ConfigPath = "config/battleserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("BATTLESERVER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadBattleServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("battle server starting", "log_level", cfg.LogLevel, "config", cfgPath)

	catalog, err := data.LoadItems(cfg.Data.Items)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}
	if weapons, hulls, _ := catalog.Len(); weapons == 0 || hulls == 0 {
		return fmt.Errorf("item catalog %s has no weapons or hulls", cfg.Data.Items)
	}
	maps, err := data.LoadMaps(cfg.Data.Maps)
	if err != nil {
		return fmt.Errorf("loading maps: %w", err)
	}

	var results battle.ResultRecorder
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		results = db.NewResultRepository(database.Pool())
	} else {
		slog.Warn("database disabled, battle results are not stored")
	}

	var rec *metrics.Recorder
	if cfg.Metrics.Enabled {
		rec, err = metrics.New()
		if err != nil {
			return fmt.Errorf("creating metrics: %w", err)
		}
		slog.Info("metrics registered on the global meter provider")
	}

	registry := battle.NewRegistry()
	for _, preset := range cfg.Battles {
		m, ok := maps.Get(preset.Map)
		if !ok {
			return fmt.Errorf("battle preset %q: unknown map %q", preset.Title, preset.Map)
		}
		props := battle.DefaultProperties()
		props.ScoreLimit = preset.ScoreLimit
		props.TimeLimit = preset.TimeLimit

		b, err := registry.Create(battle.Options{
			Title:      preset.Title,
			Map:        m,
			Mode:       preset.Mode,
			Properties: props,
			Tunables:   cfg.Battle,
			Results:    results,
			Metrics:    rec,
			Persistent: true,
		})
		if err != nil {
			return fmt.Errorf("creating battle %q: %w", preset.Title, err)
		}
		slog.Info("battle opened", "battle", b.ID(), "title", b.Title(), "mode", b.Mode())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting battle reaper", "interval", cfg.ReapInterval)
		if err := registry.Run(gctx, cfg.ReapInterval); err != nil {
			return fmt.Errorf("battle registry: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("battle server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
