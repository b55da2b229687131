// Package roster is the top-level entry point for rendering the rugby roster:
// it re-exports the core types and offers one-call helpers over the
// record, sorter and render packages.
package roster

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-roster/pkg/fetch"
	"github.com/goliatone/go-roster/pkg/frontend"
	"github.com/goliatone/go-roster/pkg/projection"
	"github.com/goliatone/go-roster/pkg/record"
	"github.com/goliatone/go-roster/pkg/render"
	"github.com/goliatone/go-roster/pkg/sorter"
)

// Record aliases record.Record for callers that only import the root package.
type Record = record.Record

// Result aliases render.Result.
type Result = render.Result

// Projection names re-exported from the projection package.
const (
	Full     = projection.Full
	NameOnly = projection.NameOnly
	Form     = projection.Form
)

// NewRenderer exposes the renderer constructor from the top-level module.
func NewRenderer(options ...render.Option) (*render.Renderer, error) {
	return render.New(options...)
}

// Render renders records with the named projection using the embedded
// fragments.
func Render(ctx context.Context, records []Record, projectionName string, options ...render.Option) (Result, error) {
	r, err := render.New(options...)
	if err != nil {
		return Result{}, err
	}
	return r.Render(ctx, records, projectionName)
}

// RenderJSON decodes a list endpoint payload ({"data": [...]}) and renders it.
func RenderJSON(ctx context.Context, payload []byte, projectionName string, options ...render.Option) (Result, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return Result{}, err
	}
	r, err := render.New(options...)
	if err != nil {
		return Result{}, err
	}
	return r.RenderJSON(ctx, envelope.Data, projectionName)
}

// SortBy sorts records in place by a record key or field name and returns
// them.
func SortBy(records []Record, field string) ([]Record, error) {
	return sorter.SortBy(records, field)
}

// NewController builds a front-end controller talking to the gateway at
// gatewayURL.
func NewController(gatewayURL string, clientOptions []fetch.Option, options ...frontend.Option) (*frontend.Controller, error) {
	client, err := fetch.New(gatewayURL, clientOptions...)
	if err != nil {
		return nil, err
	}
	return frontend.New(client, options...)
}
