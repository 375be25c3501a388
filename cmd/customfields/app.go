package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/customfields/internal/config"
	"github.com/kailas-cloud/customfields/internal/db"
	"github.com/kailas-cloud/customfields/internal/db/memory"
	dbRedis "github.com/kailas-cloud/customfields/internal/db/redis"
	logpkg "github.com/kailas-cloud/customfields/internal/logger"
	"github.com/kailas-cloud/customfields/internal/metrics"
	cfrepo "github.com/kailas-cloud/customfields/internal/repository/customfield"
	cfuc "github.com/kailas-cloud/customfields/internal/usecase/customfield"
	healthuc "github.com/kailas-cloud/customfields/internal/usecase/health"
	"github.com/kailas-cloud/customfields/internal/version"
)

// app wires config, storage and services for one bootstrap run.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  db.Store
	repo   *cfrepo.Repo
	fields *cfuc.Service
	health *healthuc.Service
}

// newApp loads config for env and wires the store and services.
func newApp(ctx context.Context, env string) (*app, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	logger.Info("Starting customfields", append(version.Fields(),
		zap.String("env", env),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)...)

	return newAppFromConfig(ctx, cfg, logger)
}

// newAppFromConfig wires an app from an already loaded config.
func newAppFromConfig(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	store, err := newStore(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	// Register domain metrics explicitly (no init())
	metrics.Register()

	repo := cfrepo.New(store).WithKeyPrefix(cfg.Storage.KeyPrefix)
	fields := cfuc.New(repo, logger)

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		repo:   repo,
		fields: fields,
		health: healthuc.New(store, fields),
	}, nil
}

// close releases the store and flushes the logger.
func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

// newStore creates the database store for the configured driver.
// valkey speaks the same protocol and shares the redis adapter.
func newStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
