// Package main is the hafalan engine status binary. It wires the configured
// snapshot store, loads the journal, and reports today's review queue and the
// derived statistics. The engine itself is a library; embedding apps wire the
// same pieces and drive the command handlers instead.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hafalan-hub/hafalan-engine/config"
	"github.com/hafalan-hub/hafalan-engine/internal/application/query"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/infrastructure/messaging"
	"github.com/hafalan-hub/hafalan-engine/internal/infrastructure/persistence/memory"
	"github.com/hafalan-hub/hafalan-engine/internal/infrastructure/persistence/postgres"
	"github.com/hafalan-hub/hafalan-engine/internal/infrastructure/persistence/redis"
	"github.com/hafalan-hub/hafalan-engine/internal/infrastructure/persistence/snapshot"
	"github.com/hafalan-hub/hafalan-engine/internal/infrastructure/persistence/sqlite"
	"github.com/hafalan-hub/hafalan-engine/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Options{Level: logger.ParseLevel(cfg.Observability.LogLevel)})
	log.Info("starting hafalan engine",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("store", string(cfg.Store.Backend)),
	)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("store close failed", logger.Err(err))
		}
	}()

	bus := messaging.NewEventBus(log)
	defer bus.Close()

	repo := snapshot.NewRepository(store)
	report(ctx, log, repo, cfg)
	return nil
}

// openStore builds the snapshot store the configuration selects.
func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return memory.NewStore(), nil

	case config.StoreSQLite:
		return sqlite.Open(cfg.Store.SQLitePath)

	case config.StorePostgres:
		pc := postgres.DefaultConfig()
		pc.Host = cfg.Postgres.Host
		pc.Port = cfg.Postgres.Port
		pc.Database = cfg.Postgres.Database
		pc.User = cfg.Postgres.User
		pc.Password = cfg.Postgres.Password
		pc.SSLMode = cfg.Postgres.SSLMode
		pc.MaxConns = cfg.Postgres.MaxConns
		pc.MinConns = cfg.Postgres.MinConns
		pc.MaxConnLifetime = cfg.Postgres.MaxConnLifetime
		pc.MaxConnIdleTime = cfg.Postgres.MaxConnIdleTime
		pc.ConnectTimeout = cfg.Postgres.ConnectTimeout
		return postgres.NewStore(ctx, pc)

	case config.StoreRedis:
		rc := redis.DefaultConfig()
		rc.Host = cfg.Redis.Host
		rc.Port = cfg.Redis.Port
		rc.Password = cfg.Redis.Password
		rc.DB = cfg.Redis.DB
		rc.PoolSize = cfg.Redis.PoolSize
		rc.MinIdleConns = cfg.Redis.MinIdleConns
		rc.MaxRetries = cfg.Redis.MaxRetries
		rc.DialTimeout = cfg.Redis.DialTimeout
		rc.ReadTimeout = cfg.Redis.ReadTimeout
		rc.WriteTimeout = cfg.Redis.WriteTimeout
		return redis.NewStore(ctx, rc)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// report logs the current statistics and today's review queue.
func report(ctx context.Context, log *logger.Logger, repo journal.Repository, cfg *config.Config) {
	deps := query.NewDependenciesFromConfig(cfg, repo)

	statsResult, err := query.NewGetStatisticsHandler(deps).Handle(ctx)
	if err != nil {
		log.Error("statistics query failed", logger.Err(err))
		return
	}
	log.Info("journal statistics",
		logger.Int("targets", statsResult.TotalTargets),
		logger.Int("memorized", statsResult.MemorizedTargets),
		logger.Int("total_ayah", statsResult.Statistics.TotalAyahMemorized),
		logger.Int("current_streak", statsResult.Statistics.CurrentStreak),
		logger.Int("longest_streak", statsResult.Statistics.LongestStreak),
		logger.Int("achievements", len(statsResult.Achievements)),
	)

	queueResult, err := query.NewGetReviewQueueHandler(deps).Handle(ctx)
	if err != nil {
		log.Error("review queue query failed", logger.Err(err))
		return
	}
	for _, item := range queueResult.Schedule {
		log.Info("cadence entry due",
			logger.TargetID(item.TargetID),
			logger.String("range", item.Range),
			logger.String("due", item.DueDate),
			logger.Bool("overdue", item.Overdue),
			logger.Int("remaining_reviews", item.Remaining),
		)
	}
	for _, item := range queueResult.Murojaah {
		log.Info("murojaah chapter",
			logger.SurahNumber(item.SurahNumber),
			logger.String("name", item.SurahName),
			logger.Int("progress", item.Progress),
			logger.String("urgency", string(item.Urgency)),
			logger.Bool("done_today", item.DoneToday),
		)
	}
}
