package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/wnt/guiverse/internal/api"
	"github.com/wnt/guiverse/internal/chain"
	"github.com/wnt/guiverse/internal/config"
	"github.com/wnt/guiverse/internal/database"
	"github.com/wnt/guiverse/internal/game"
	"github.com/wnt/guiverse/internal/ledger"
	"github.com/wnt/guiverse/internal/logger"
	"github.com/wnt/guiverse/internal/models"
	"github.com/wnt/guiverse/internal/storage"
	"github.com/wnt/guiverse/internal/view"
	"github.com/wnt/guiverse/internal/worker"
)

func main() {
	// Parse command-line arguments
	envFile := flag.String("envFile", ".env", "Path to .env file")
	flag.Parse()

	envErr := godotenv.Load(*envFile)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if envErr != nil {
		log.Info().Str("path", *envFile).Msg("No .env file found, using environment variables")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("GUIverse stopped with error")
	}
	log.Info().Msg("GUIverse stopped")
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()
	session := storage.NewSession(store)

	client, err := newChain(cfg, log)
	if err != nil {
		return err
	}

	pets, err := newCollection(cfg)
	if err != nil {
		return err
	}

	l := ledger.New(session, log)
	g := game.New(game.Deps{
		Chain:   client,
		Ledger:  l,
		Session: session,
		Pets:    pets,
		Logger:  log,
	})
	server := api.NewServer(g, client, view.NewFeed(log), log)

	// the API serves only after the stored session is restored
	restored := make(chan struct{})

	manager := worker.NewManager(ctx, cfg.ShutdownTimeout, log)
	tasks := map[string]func(context.Context) error{
		"ledger":  l.Run,
		"api":     worker.After(restored, worker.ServeHTTP(&http.Server{Addr: ":" + cfg.HTTPPort, Handler: server.Router(), ReadHeaderTimeout: 10 * time.Second}, cfg.ShutdownTimeout)),
		"metrics": worker.ServeHTTP(&http.Server{Addr: ":" + cfg.MetricsPort, Handler: metricsMux(), ReadHeaderTimeout: 10 * time.Second}, cfg.ShutdownTimeout),
	}
	if cfg.BalanceMonitorInterval > 0 {
		tasks["balance_monitor"] = worker.NewBalanceMonitor(g, client, cfg.BalanceMonitorInterval, log).Run
	}
	for name, task := range tasks {
		if err := manager.Add(name, task); err != nil {
			return fmt.Errorf("add task %s: %w", name, err)
		}
	}
	if err := manager.Start(); err != nil {
		return fmt.Errorf("start tasks: %w", err)
	}

	// the ledger loop is running, so the session can be restored
	if _, err := g.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to restore wallet session")
	}
	close(restored)

	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("metrics_port", cfg.MetricsPort).
		Str("storage", cfg.StorageBackend).
		Str("chain", cfg.ChainBackend).
		Bool("postgres", cfg.UsePostgres()).
		Msg("GUIverse started")

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	case <-manager.Done():
	}

	if err := manager.Stop(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newStore(cfg config.Config, log zerolog.Logger) (storage.Store, func(), error) {
	if cfg.StorageBackend != config.BackendRedis {
		return storage.NewMemory(), func() {}, nil
	}

	r, err := storage.NewRedis(cfg.RedisURL, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	return r, func() {
		if err := r.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close redis")
		}
	}, nil
}

func newChain(cfg config.Config, log zerolog.Logger) (chain.Client, error) {
	if cfg.ChainBackend == config.ChainSolana {
		c, err := chain.NewSolanaClient(cfg.RPCEndpoints, cfg.WalletAddress, cfg.StartingBalance, cfg.ChainRateLimit, log)
		if err != nil {
			return nil, fmt.Errorf("create solana client: %w", err)
		}
		return c, nil
	}

	options := []chain.MockOption{
		chain.WithMockLogger(log),
		chain.WithMockAccount(chain.MockAccount, cfg.StartingBalance),
	}
	if !cfg.MockLatency {
		options = append(options, chain.WithoutLatency())
	}
	return chain.NewMockClient(options...), nil
}

func newCollection(cfg config.Config) (game.Collection, error) {
	if !cfg.UsePostgres() {
		return game.NewMemoryCollection(models.SeedPets()), nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return database.NewCollection(db), nil
}

func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
