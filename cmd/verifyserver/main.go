package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/daidr/mcverify-go/internal/config"
	"github.com/daidr/mcverify-go/internal/verify"
	"github.com/daidr/mcverify-go/internal/verifystore"
)

const ConfigPath = "config/verifyserver.yaml"

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
	// Configure slog
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	slog.Info("mcverify server starting")

	// Load config
	cfgPath := ConfigPath
	if p := os.Getenv("MCVERIFY_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.Info("config loaded", "bind", cfg.BindAddress, "port", cfg.Port, "online_mode", cfg.OnlineMode, "endpoint", cfg.Endpoint)

	// Connect to the bindings database
	bindings, err := verifystore.NewBindings(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer bindings.Close()
	slog.Info("database connected")

	// Run migrations
	if err := verifystore.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// Connect to the code cache
	cacheCfg := verifystore.DefaultCodeCacheConfig()
	cacheCfg.URL = cfg.RedisURL
	cacheCfg.CodeTTL = cfg.VerifyTimeoutDuration()
	codes, err := verifystore.NewCodeCache(cacheCfg)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer codes.Close()
	slog.Info("code cache connected")

	oracle := verifystore.NewOracle(bindings, codes)

	server, err := verify.NewServer(cfg, oracle)
	if err != nil {
		return fmt.Errorf("creating verification server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting verification server")
		if err := server.Run(gctx); err != nil {
			return fmt.Errorf("verification server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
