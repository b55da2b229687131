// Package gateway is the API gateway in front of the roster microservices. It
// forwards requests by path prefix ("/Rugby" to the roster backend) through a
// reverse proxy, stripping the prefix before the request reaches the service.
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Route maps a path prefix onto a backend base URL.
type Route struct {
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
	Target string `mapstructure:"target" yaml:"target"`
}

type Options struct {
	Routes         []Route
	AllowedOrigins []string
	Transport      http.RoundTripper
	Logger         *zap.Logger
}

type OptionFn func(*Options)

func NewOptions(fns ...OptionFn) Options {
	opts := Options{}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.Routes = append([]Route{}, opts.Routes...)
	opts.AllowedOrigins = append([]string{}, opts.AllowedOrigins...)
	return opts
}

// WithRoute forwards requests under prefix to target.
func WithRoute(prefix, target string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Routes = append(o.Routes, Route{Prefix: prefix, Target: target})
	}
}

func WithRoutes(routes []Route) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Routes = append(o.Routes, routes...)
	}
}

// WithAllowedOrigins restricts CORS to the listed origins. Empty allows all.
func WithAllowedOrigins(origins ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AllowedOrigins = append(o.AllowedOrigins, origins...)
	}
}

func WithTransport(rt http.RoundTripper) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Transport = rt
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

type upstream struct {
	prefix string
	target *url.URL
	proxy  *httputil.ReverseProxy
}

// Gateway routes requests to upstream services.
type Gateway struct {
	upstreams []upstream
	opts      Options
	logger    *zap.Logger
}

// New validates the routes and builds one reverse proxy per upstream.
func New(fns ...OptionFn) (*Gateway, error) {
	opts := NewOptions(fns...)
	if len(opts.Routes) == 0 {
		return nil, errors.New("gateway: at least one route is required")
	}

	g := &Gateway{opts: opts, logger: opts.Logger.Named("gateway")}
	seen := make(map[string]struct{}, len(opts.Routes))
	for _, route := range opts.Routes {
		prefix := normalizePrefix(route.Prefix)
		if prefix == "" {
			return nil, fmt.Errorf("gateway: route prefix %q is invalid", route.Prefix)
		}
		if _, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("gateway: duplicate route prefix %q", prefix)
		}
		seen[prefix] = struct{}{}

		target, err := url.Parse(strings.TrimSpace(route.Target))
		if err != nil {
			return nil, fmt.Errorf("gateway: parse target for %s: %w", prefix, err)
		}
		if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
			return nil, fmt.Errorf("gateway: target for %s must be an absolute http(s) url", prefix)
		}
		g.upstreams = append(g.upstreams, upstream{
			prefix: prefix,
			target: target,
			proxy:  g.newProxy(prefix, target),
		})
	}

	// Longest prefix wins.
	sort.SliceStable(g.upstreams, func(i, j int) bool {
		return len(g.upstreams[i].prefix) > len(g.upstreams[j].prefix)
	})
	return g, nil
}

// Prefixes lists the configured route prefixes.
func (g *Gateway) Prefixes() []string {
	out := make([]string, 0, len(g.upstreams))
	for _, u := range g.upstreams {
		out = append(out, u.prefix)
	}
	sort.Strings(out)
	return out
}

// ServeHTTP proxies the request without the middleware chain.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, u := range g.upstreams {
		if r.URL.Path == u.prefix || strings.HasPrefix(r.URL.Path, u.prefix+"/") {
			u.proxy.ServeHTTP(w, r)
			return
		}
	}
	writeError(w, http.StatusNotFound)
}

// Handler returns the gateway wrapped with request IDs, CORS and access logs.
func (g *Gateway) Handler() http.Handler {
	var handler http.Handler = g
	handler = CORS(g.opts.AllowedOrigins, handler)
	handler = AccessLog(g.logger, handler)
	return RequestID(handler)
}

func (g *Gateway) newProxy(prefix string, target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			rest := strings.TrimPrefix(pr.In.URL.Path, prefix)
			if rest == "" {
				rest = "/"
			}
			pr.Out.URL.Path = strings.TrimRight(target.Path, "/") + rest
			pr.Out.URL.RawPath = ""
			pr.SetXForwarded()
		},
		Transport: g.opts.Transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			g.logger.Error("upstream unavailable",
				zap.String("prefix", prefix),
				zap.String("target", target.String()),
				zap.String("request_id", RequestIDFromContext(r.Context())),
				zap.Error(err),
			)
			writeError(w, http.StatusBadGateway)
		},
	}
}

func writeError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": http.StatusText(code)})
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimRight(prefix, "/")
	return prefix
}
