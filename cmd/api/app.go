package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/fithub/ledger-engine/internal/adapters/cache"
	adapterHTTP "github.com/fithub/ledger-engine/internal/adapters/handler/http"
	"github.com/fithub/ledger-engine/internal/adapters/handler/http/middleware"
	"github.com/fithub/ledger-engine/internal/adapters/repository"
	"github.com/fithub/ledger-engine/internal/config"
	"github.com/fithub/ledger-engine/internal/core/domain"
	"github.com/fithub/ledger-engine/internal/core/services"
)

type app struct {
	router  *gin.Engine
	closers []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

type storage struct {
	ledger   domain.LedgerRepository
	foodLogs domain.FoodLogRepository
	pinger   adapterHTTP.Pinger
	close    func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *log.Logger, clock services.Clock) (*app, error) {
	a := &app{}

	store, err := openStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.close)

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis disabled, running without cache and rate limiting", "err", err)
			rdb = nil
		} else {
			a.closers = append(a.closers, rdb.Close)
			logger.Info("redis connected", "host", cfg.Redis.Host, "db", cfg.Redis.DB)
		}
	}

	ledger := store.ledger
	if rdb != nil {
		ledger = repository.NewCachedLedgerRepository(ledger, rdb, cfg.CacheTTL, logger.With("component", "cache"))
	}

	calendar := services.NewCalendar(clock, cfg.Location)

	ledgerService := services.NewLedgerService(ledger, store.foodLogs, calendar)
	dashboardService := services.NewDashboardService(ledger, calendar, logger.With("component", "dashboard"))
	historyService := services.NewHistoryService(ledger, calendar)

	httpLogger := logger.With("component", "http")
	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		LedgerHandler:    adapterHTTP.NewLedgerHandler(ledgerService, httpLogger),
		DashboardHandler: adapterHTTP.NewDashboardHandler(dashboardService, httpLogger),
		HistoryHandler:   adapterHTTP.NewHistoryHandler(historyService, httpLogger),
		DB:               store.pinger,
		Redis:            rdb,
		RateLimit: middleware.RateLimitConfig{
			Limit:  cfg.RateLimit,
			Window: cfg.RateWindow,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         httpLogger,
		StartTime:      time.Now(),
	})

	return a, nil
}

func openStorage(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) (*storage, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		mem := repository.NewInMemoryLedgerRepository()
		return &storage{ledger: mem, foodLogs: mem, close: func() error { return nil }}, nil

	case config.StorageSQLite:
		logger.Info("opening sqlite ledger", "path", cfg.SQLitePath)
		gdb, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		repo := repository.NewGormLedgerRepository(gdb)
		return &storage{ledger: repo, foodLogs: repo, pinger: sqlDB, close: sqlDB.Close}, nil

	case config.StoragePostgres:
		logger.Info("connecting to database", "driver", cfg.DBDriver, "host", cfg.Host, "name", cfg.Name)
		db, err := sqlx.ConnectContext(ctx, cfg.DBDriver, cfg.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := repository.EnsurePostgresSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("database connected")

		return &storage{
			ledger:   repository.NewPostgresLedgerRepository(db),
			foodLogs: repository.NewPostgresFoodLogRepository(db),
			pinger:   db,
			close:    db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
