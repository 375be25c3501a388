package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/customfields/internal/domain"
	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
	logpkg "github.com/kailas-cloud/customfields/internal/logger"
	"github.com/kailas-cloud/customfields/internal/metrics"
)

// ErrorPolicy decides what a failed definition does to the pass.
type ErrorPolicy string

const (
	// OnErrorAbort stops the pass at the first failed definition.
	OnErrorAbort ErrorPolicy = "abort"
	// OnErrorSkip reports the failed definition and carries on.
	OnErrorSkip ErrorPolicy = "skip"
)

// CollisionPolicy decides what happens when two definitions attach the
// same accessor name to the same entity or view kind in one pass.
type CollisionPolicy string

const (
	// CollisionOverride lets the later definition replace the earlier accessor.
	CollisionOverride CollisionPolicy = "override"
	// CollisionReject fails the later definition with domain.ErrAccessorCollision.
	CollisionReject CollisionPolicy = "reject"
)

// Policy configures a registration pass.
type Policy struct {
	OnError    ErrorPolicy
	Collisions CollisionPolicy
}

// DefaultPolicy aborts on the first error and lets later definitions win.
func DefaultPolicy() Policy {
	return Policy{OnError: OnErrorAbort, Collisions: CollisionOverride}
}

// Collision records an accessor replaced during a pass.
type Collision struct {
	Field string
	Kind  string
}

// Report summarizes a registration pass.
type Report struct {
	Registered int
	Skipped    []error
	Collisions []Collision
}

// Service attaches stored definitions to host entity and view kinds.
type Service struct {
	defs     DefinitionLister
	entities EntityKinds
	views    ViewKinds
	policy   Policy
	logger   *zap.Logger
}

// New creates a registry service with DefaultPolicy. logger may be nil.
func New(defs DefinitionLister, entities EntityKinds, views ViewKinds, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		defs:     defs,
		entities: entities,
		views:    views,
		policy:   DefaultPolicy(),
		logger:   logger,
	}
}

// WithPolicy overrides the registration policy. Empty fields keep their defaults.
func (s *Service) WithPolicy(p Policy) *Service {
	if p.OnError != "" {
		s.policy.OnError = p.OnError
	}
	if p.Collisions != "" {
		s.policy.Collisions = p.Collisions
	}
	return s
}

// RegisterAll loads every stored definition and attaches it, in list order.
// It is a startup pass and must not run concurrently with itself.
// A logger stored in ctx takes precedence over the service logger.
func (s *Service) RegisterAll(ctx context.Context) (Report, error) {
	log := logpkg.FromContextOr(ctx, s.logger)
	start := time.Now()
	defer func() {
		metrics.RegistrationDuration.Observe(time.Since(start).Seconds())
	}()

	defs, err := s.defs.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list definitions: %w", err)
	}

	var report Report
	attached := make(map[string]bool)

	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("register definitions: %w", err)
		}

		if err := s.register(log, def, attached, &report); err != nil {
			if s.policy.OnError == OnErrorAbort {
				return report, err
			}
			log.Error("Custom field skipped",
				zap.String("name", def.Name()),
				zap.Error(err),
			)
			report.Skipped = append(report.Skipped, err)
			continue
		}
		report.Registered++
	}

	log.Info("Custom fields registered",
		zap.Int("registered", report.Registered),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("collisions", len(report.Collisions)),
	)
	return report, nil
}

// register resolves every handle a definition needs before touching any of
// them, so a failed definition leaves the host unchanged.
func (s *Service) register(log *zap.Logger, def domcf.Definition, attached map[string]bool, report *Report) error {
	name := def.NormalizedName()
	class := def.Class()

	entity, ok := s.entities.ResolveEntityKind(class)
	if !ok {
		metrics.RegistrationsTotal.WithLabelValues(entitySlot(class), "error").Inc()
		return &domain.RegistrationError{Field: name, Kind: entitySlot(class), Err: domain.ErrUnknownEntityKind}
	}

	targets := uniqueTargets(def.Serializers())
	views := make([]ViewKind, len(targets))
	for i, target := range targets {
		vk, ok := s.views.ResolveViewKind(target)
		if !ok {
			metrics.RegistrationsTotal.WithLabelValues(viewSlot(target), "error").Inc()
			return &domain.RegistrationError{Field: name, Kind: viewSlot(target), Err: domain.ErrUnknownViewKind}
		}
		views[i] = vk
	}

	slots := make([]string, 0, len(targets)+1)
	slots = append(slots, entitySlot(class))
	for _, target := range targets {
		slots = append(slots, viewSlot(target))
	}
	if err := s.checkCollisions(log, name, slots, attached, report); err != nil {
		return err
	}

	read := fieldAccessor(name)
	entity.RegisterCustomField(name, def.Type())
	entity.DefineAccessor(name, read)
	metrics.RegistrationsTotal.WithLabelValues(entitySlot(class), "ok").Inc()

	for i, target := range targets {
		views[i].DeclareAttribute(name)
		views[i].DefineAccessor(name, viewAccessor(target, read))
		metrics.RegistrationsTotal.WithLabelValues(viewSlot(target), "ok").Inc()
	}

	for _, slot := range slots {
		attached[slot+"/"+name] = true
	}

	log.Debug("Custom field attached",
		zap.String("name", name),
		zap.String("klass", string(class)),
		zap.String("type", string(def.Type())),
		zap.Int("views", len(targets)),
	)
	return nil
}

func (s *Service) checkCollisions(
	log *zap.Logger, name string, slots []string, attached map[string]bool, report *Report,
) error {
	var clashes []Collision
	for _, slot := range slots {
		if attached[slot+"/"+name] {
			clashes = append(clashes, Collision{Field: name, Kind: slot})
		}
	}
	if len(clashes) == 0 {
		return nil
	}

	if s.policy.Collisions == CollisionReject {
		errs := make([]error, len(clashes))
		for i, c := range clashes {
			metrics.RegistrationsTotal.WithLabelValues(c.Kind, "collision").Inc()
			errs[i] = &domain.RegistrationError{Field: name, Kind: c.Kind, Err: domain.ErrAccessorCollision}
		}
		return errors.Join(errs...)
	}

	for _, c := range clashes {
		metrics.RegistrationsTotal.WithLabelValues(c.Kind, "collision").Inc()
		log.Warn("Custom field accessor replaced",
			zap.String("name", c.Field),
			zap.String("kind", c.Kind),
		)
	}
	report.Collisions = append(report.Collisions, clashes...)
	return nil
}

// Slots name the accessor namespaces a definition writes into. They double
// as metric labels and collision keys.
func entitySlot(class domcf.EntityClass) string { return "entity:" + string(class) }
func viewSlot(target domcf.ViewTarget) string   { return "view:" + string(target) }

func uniqueTargets(targets []domcf.ViewTarget) []domcf.ViewTarget {
	seen := make(map[domcf.ViewTarget]bool, len(targets))
	out := make([]domcf.ViewTarget, 0, len(targets))
	for _, t := range targets {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
