// Package fetch requests roster payloads from the backend through the API
// gateway. Transport failures raise a one-shot user alert; nothing is retried.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-roster/pkg/record"
	"github.com/goliatone/go-roster/pkg/schema"
)

// TransportAlert is the message shown when the gateway cannot be reached.
const TransportAlert = "Error: No se han podido acceder al API Gateway"

// DefaultPrefix is the gateway route prefix of the roster service.
const DefaultPrefix = "/Rugby"

// ErrTransport wraps network-level failures reaching the gateway.
var ErrTransport = errors.New("fetch: gateway unreachable")

// Alerter surfaces user-visible failures.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(message string)

// Alert calls f.
func (f AlerterFunc) Alert(message string) { f(message) }

// StatusError reports a non-2xx gateway response.
type StatusError struct {
	Route string
	Code  int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: %s: unexpected status %d %s", e.Route, e.Code, http.StatusText(e.Code))
}

// StatusCode returns the HTTP status.
func (e *StatusError) StatusCode() int { return e.Code }

// Info is the payload of the home and about routes.
type Info struct {
	Mensaje string `json:"mensaje"`
	Autor   string `json:"autor,omitempty"`
	Email   string `json:"email,omitempty"`
	Fecha   string `json:"fecha,omitempty"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects the HTTP client used for every request.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			clone := *client
			c.http = &clone
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithPrefix sets the gateway route prefix ("/Rugby" by default).
func WithPrefix(prefix string) Option {
	return func(c *Client) {
		c.prefix = normalizePrefix(prefix)
	}
}

// WithAlerter routes transport alerts to alerter.
func WithAlerter(alerter Alerter) Option {
	return func(c *Client) {
		if alerter != nil {
			c.alerter = alerter
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithValidator checks list payloads against the backend schema and logs
// records that do not match. Rendering still proceeds.
func WithValidator(v *schema.Validator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// Client talks to the gateway.
type Client struct {
	base      *url.URL
	prefix    string
	http      *http.Client
	timeout   time.Duration
	alerter   Alerter
	logger    *zap.Logger
	validator *schema.Validator
}

// New builds a client for the gateway at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errors.New("fetch: gateway url is required")
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse gateway url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("fetch: unsupported scheme %q", base.Scheme)
	}

	c := &Client{
		base:    base,
		prefix:  DefaultPrefix,
		http:    &http.Client{},
		timeout: 10 * time.Second,
		alerter: AlerterFunc(func(string) {}),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.logger = c.logger.Named("fetch")
	return c, nil
}

// URL resolves route against the gateway and prefix.
func (c *Client) URL(route string) string {
	route = strings.TrimSpace(route)
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	out := *c.base
	out.Path = strings.TrimRight(c.base.Path, "/") + c.prefix + route
	return out.String()
}

// FetchRoute downloads the JSON body served at route. Network failures alert
// the user once and return an error wrapping ErrTransport.
func (c *Client) FetchRoute(ctx context.Context, route string) (json.RawMessage, error) {
	target := c.URL(route)

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.alerter.Alert(TransportAlert)
		c.logger.Error("gateway unreachable", zap.String("url", target), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Route: route, Code: resp.StatusCode}
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("fetch: %s: response is not JSON", route)
	}

	c.logger.Debug("fetched route", zap.String("url", target), zap.Int("bytes", len(data)))
	return json.RawMessage(data), nil
}

// Download fetches route and hands the payload to fn. fn runs only when a
// response body was obtained.
func (c *Client) Download(ctx context.Context, route string, fn func(json.RawMessage)) error {
	data, err := c.FetchRoute(ctx, route)
	if err != nil {
		return err
	}
	if fn != nil {
		fn(data)
	}
	return nil
}

// List fetches every record.
func (c *Client) List(ctx context.Context) ([]record.Record, error) {
	data, err := c.FetchRoute(ctx, "/getTodas")
	if err != nil {
		return nil, err
	}
	if c.validator != nil {
		issues, err := c.validator.ValidateList(data)
		if err != nil {
			c.logger.Warn("list payload does not match schema", zap.Error(err))
		}
		for _, issue := range issues {
			c.logger.Warn("malformed record",
				zap.Int("index", issue.Index),
				zap.String("record", issue.RecordID),
				zap.Error(issue.Err),
			)
		}
	}
	records, err := record.DecodeList(data)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return records, nil
}

// Get fetches one record by identifier.
func (c *Client) Get(ctx context.Context, id string) (record.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return record.Record{}, errors.New("fetch: record id is required")
	}
	data, err := c.FetchRoute(ctx, "/getPorId/"+url.PathEscape(id))
	if err != nil {
		return record.Record{}, err
	}
	if c.validator != nil {
		if err := c.validator.ValidateRecord(data); err != nil {
			c.logger.Warn("malformed record", zap.String("record", id), zap.Error(err))
		}
	}
	rec, err := record.Decode(data)
	if err != nil {
		return record.Record{}, fmt.Errorf("fetch: %w", err)
	}
	return rec, nil
}

// Info fetches a home/about payload.
func (c *Client) Info(ctx context.Context, route string) (Info, error) {
	data, err := c.FetchRoute(ctx, route)
	if err != nil {
		return Info{}, err
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return Info{}, fmt.Errorf("fetch: decode info: %w", err)
	}
	return info, nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || prefix == "/" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return strings.TrimRight(prefix, "/")
}
