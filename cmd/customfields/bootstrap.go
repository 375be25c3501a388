package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/customfields/internal/host"
	logpkg "github.com/kailas-cloud/customfields/internal/logger"
	healthuc "github.com/kailas-cloud/customfields/internal/usecase/health"
	"github.com/kailas-cloud/customfields/internal/usecase/registry"
)

// bootstrap seeds the configured fields, checks the store, then runs one
// registration pass against a fresh host registry. Every log line of the
// pass carries the same run_id.
func bootstrap(ctx context.Context, a *app) (*host.Registry, error) {
	log := a.logger.With(zap.String("run_id", uuid.NewString()))
	ctx = logpkg.ContextWithLogger(ctx, log)

	if err := seed(ctx, a, a.cfg.Fields); err != nil {
		return nil, err
	}

	if report := a.health.Check(ctx); report.Status != healthuc.Healthy {
		log.Error("Health check failed",
			zap.String("status", string(report.Status)),
			zap.Any("checks", report.Checks),
		)
		return nil, fmt.Errorf("health check: %s", report.Status)
	}

	kinds := host.NewStandardRegistry()
	svc := registry.New(a.repo, kinds, kinds, a.logger).WithPolicy(registry.Policy{
		OnError:    registry.ErrorPolicy(a.cfg.Registration.OnError),
		Collisions: registry.CollisionPolicy(a.cfg.Registration.Collisions),
	})

	regCtx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.Registration.TimeoutSec)*time.Second)
	defer cancel()

	report, err := svc.RegisterAll(regCtx)
	if err != nil {
		return nil, fmt.Errorf("register custom fields: %w", err)
	}

	for _, skipped := range report.Skipped {
		log.Warn("Definition not registered", zap.Error(skipped))
	}
	for _, target := range kinds.ViewTargets() {
		log.Info("View attributes",
			zap.String("target", string(target)),
			zap.Strings("attributes", kinds.ViewKind(target).Attributes()),
		)
	}
	log.Info("Bootstrap complete",
		zap.Int("registered", report.Registered),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("collisions", len(report.Collisions)),
	)
	return kinds, nil
}

// seed saves the definitions listed in config before registration.
func seed(ctx context.Context, a *app, fields []map[string]any) error {
	log := logpkg.FromContext(ctx)
	for i, raw := range fields {
		def, err := a.fields.Create(ctx, raw)
		if err != nil {
			return fmt.Errorf("seed fields[%d]: %w", i, err)
		}
		log.Debug("Seeded custom field", zap.String("name", def.NormalizedName()))
	}
	return nil
}
