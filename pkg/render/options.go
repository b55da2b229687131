package render

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-roster/pkg/projection"
	"github.com/goliatone/go-roster/pkg/store"
	"github.com/goliatone/go-roster/pkg/substitute"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	store       *store.Store
	engine      *substitute.Engine
	logger      *zap.Logger
	projections []projection.Projection
	skipDefault bool
}

// WithStore renders from a custom fragment store.
func WithStore(s *store.Store) Option {
	return func(cfg *config) {
		if s != nil {
			cfg.store = s
		}
	}
}

// WithEngine swaps the substitution engine.
func WithEngine(engine *substitute.Engine) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithLogger routes degraded-row warnings to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithProjections registers extra projections next to the built-in ones.
func WithProjections(projections ...projection.Projection) Option {
	return func(cfg *config) {
		cfg.projections = append(cfg.projections, projections...)
	}
}

// WithoutDefaultProjections skips the built-in full/name-only/form set.
func WithoutDefaultProjections() Option {
	return func(cfg *config) {
		cfg.skipDefault = true
	}
}
