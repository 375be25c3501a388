package customfield

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
	"github.com/kailas-cloud/customfields/internal/metrics"
)

// Service handles the administrative path: validate, then persist.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates a definition service. logger may be nil.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create builds a definition from raw key/value input and saves it.
func (s *Service) Create(ctx context.Context, raw map[string]any) (domcf.Definition, error) {
	def := domcf.Construct(raw)
	if err := s.Save(ctx, def); err != nil {
		return domcf.Definition{}, err
	}
	return def, nil
}

// Save re-validates the definition and upserts it under its normalized name.
// An invalid definition returns domcf.Errors and touches no storage.
func (s *Service) Save(ctx context.Context, def domcf.Definition) error {
	if errs := def.Validate(); len(errs) > 0 {
		metrics.DefinitionsSavedTotal.WithLabelValues("invalid").Inc()
		s.logger.Debug("Custom field rejected",
			zap.String("name", def.Name()),
			zap.Error(errs),
		)
		return fmt.Errorf("validate definition: %w", errs)
	}

	if err := s.repo.Save(ctx, def); err != nil {
		metrics.DefinitionsSavedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("save definition: %w", err)
	}

	metrics.DefinitionsSavedTotal.WithLabelValues("saved").Inc()
	s.logger.Info("Custom field saved",
		zap.String("name", def.NormalizedName()),
		zap.String("klass", string(def.Class())),
		zap.String("type", string(def.Type())),
	)
	return nil
}

// List returns all stored definitions.
func (s *Service) List(ctx context.Context) ([]domcf.Definition, error) {
	defs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	return defs, nil
}

// CheckDefinitions reports whether every stored definition can be loaded.
func (s *Service) CheckDefinitions(ctx context.Context) error {
	_, err := s.List(ctx)
	return err
}
