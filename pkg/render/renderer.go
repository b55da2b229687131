// Package render composes header, substituted rows and footer into complete
// HTML views for a collection of records.
package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-roster/pkg/projection"
	"github.com/goliatone/go-roster/pkg/record"
	"github.com/goliatone/go-roster/pkg/store"
	"github.com/goliatone/go-roster/pkg/substitute"
	"github.com/goliatone/go-roster/pkg/tags"
)

// Result is one rendered view. It is not cached anywhere.
type Result struct {
	Projection string
	HTML       string
	Rows       int
	Issues     []Issue
}

// Degraded reports whether any row kept unresolved placeholders.
func (r Result) Degraded() bool {
	return len(r.Issues) > 0
}

// Issue describes a row that rendered with unresolved fields.
type Issue struct {
	Index    int
	RecordID string
	Fields   []tags.Field
	NoData   bool
}

// Renderer turns record collections into projection views.
type Renderer struct {
	store    *store.Store
	engine   *substitute.Engine
	registry *Registry
	logger   *zap.Logger
}

// New constructs a Renderer with the embedded fragments and the built-in
// projections unless options say otherwise.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.store == nil {
		s, err := store.New()
		if err != nil {
			return nil, fmt.Errorf("render: configure store: %w", err)
		}
		cfg.store = s
	}
	if cfg.engine == nil {
		cfg.engine = substitute.New()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	registry := NewRegistry(cfg.store)
	var projections []projection.Projection
	if !cfg.skipDefault {
		projections = append(projections, projection.Defaults(cfg.store.Dictionary())...)
	}
	projections = append(projections, cfg.projections...)
	for _, p := range projections {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	return &Renderer{
		store:    cfg.store,
		engine:   cfg.engine,
		registry: registry,
		logger:   cfg.logger.Named("render"),
	}, nil
}

// Registry exposes the projection registry.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Render produces header ∥ rows ∥ footer for the named projection. A nil or
// empty collection renders header and footer only. Rows for malformed
// records degrade and are reported in Result.Issues; only contract
// violations (unknown projection, projection/template mismatch) fail.
func (r *Renderer) Render(ctx context.Context, records []record.Record, name string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	p, err := r.registry.Get(name)
	if err != nil {
		return Result{}, err
	}

	header, err := r.static(p.Header)
	if err != nil {
		return Result{}, err
	}
	footer, err := r.static(p.Footer)
	if err != nil {
		return Result{}, err
	}
	row, err := r.store.Get(p.Row)
	if err != nil {
		return Result{}, fmt.Errorf("render: %w", err)
	}

	var body strings.Builder
	result := Result{Projection: p.Name}
	for i, rec := range records {
		text, err := r.engine.Substitute(row, rec, p)
		if err != nil {
			var missing *substitute.MissingFieldsError
			if !errors.As(err, &missing) {
				return Result{}, err
			}
			result.Issues = append(result.Issues, Issue{
				Index:    i,
				RecordID: missing.RecordID,
				Fields:   missing.Fields,
				NoData:   missing.NoData,
			})
			r.logger.Warn("degraded row",
				zap.String("projection", p.Name),
				zap.Int("index", i),
				zap.String("record", missing.RecordID),
				zap.Strings("fields", fieldNames(missing.Fields)),
			)
		}
		body.WriteString(text)
		result.Rows++
	}

	result.HTML = header + body.String() + footer
	return result, nil
}

// RenderRecord renders a single record, typically with the form projection.
func (r *Renderer) RenderRecord(ctx context.Context, rec record.Record, name string) (Result, error) {
	return r.Render(ctx, []record.Record{rec}, name)
}

// RenderJSON decodes a raw list payload and renders it. Payloads that are
// absent or not a JSON array render with an empty body.
func (r *Renderer) RenderJSON(ctx context.Context, raw json.RawMessage, name string) (Result, error) {
	var records []record.Record
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &records); err != nil {
			r.logger.Debug("payload is not a record list", zap.Error(err))
			records = nil
		}
	}
	return r.Render(ctx, records, name)
}

func (r *Renderer) static(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	frag, err := r.store.Get(name)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	text, _ := frag.Execute(nil)
	return text, nil
}

func fieldNames(fields []tags.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, string(f))
	}
	return out
}
