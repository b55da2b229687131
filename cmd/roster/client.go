package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-roster/pkg/fetch"
	"github.com/goliatone/go-roster/pkg/frontend"
	"github.com/goliatone/go-roster/pkg/schema"
)

// newController wires the gateway client and the front-end controller from
// the loaded config. Transport alerts go to alerts.
func newController(ctx context.Context, alerts io.Writer, options ...frontend.Option) (*frontend.Controller, error) {
	validator, err := schema.New(ctx)
	if err != nil {
		return nil, err
	}

	client, err := fetch.New(cfg.Client.BaseURL,
		fetch.WithPrefix(cfg.Client.Prefix),
		fetch.WithTimeout(cfg.Client.Timeout),
		fetch.WithLogger(logger),
		fetch.WithValidator(validator),
		fetch.WithAlerter(fetch.AlerterFunc(func(msg string) {
			_, _ = fmt.Fprintln(alerts, msg)
		})),
	)
	if err != nil {
		return nil, err
	}

	options = append([]frontend.Option{frontend.WithLogger(logger)}, options...)
	controller, err := frontend.New(client, options...)
	if err != nil {
		return nil, err
	}
	logger.Debug("controller ready", zap.String("gateway", client.URL("/")))
	return controller, nil
}
