// Package frontend drives the roster user actions: it fetches payloads
// through the gateway, sorts and renders them, and hands the result to a
// display sink. A newer action always wins; results of superseded actions
// are dropped instead of displayed.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goliatone/go-roster/pkg/fetch"
	"github.com/goliatone/go-roster/pkg/projection"
	"github.com/goliatone/go-roster/pkg/record"
	"github.com/goliatone/go-roster/pkg/render"
	"github.com/goliatone/go-roster/pkg/render/template"
	"github.com/goliatone/go-roster/pkg/sorter"
	"github.com/goliatone/go-roster/pkg/tags"
)

// ErrSuperseded is returned when a newer action started before this one
// completed. The view was built but not displayed.
var ErrSuperseded = errors.New("frontend: superseded by a newer action")

// NullInfo replaces home/about payloads that are missing or incomplete.
var NullInfo = fetch.Info{
	Mensaje: "Datos Descargados No válidos",
	Autor:   "Álvaro Expósito Carrillo",
	Email:   "aec00028@red.ujaen.es",
	Fecha:   "28/03/2023",
}

// Fetcher is the subset of the gateway client the controller needs.
type Fetcher interface {
	Info(ctx context.Context, route string) (fetch.Info, error)
	List(ctx context.Context) ([]record.Record, error)
	Get(ctx context.Context, id string) (record.Record, error)
}

// Kind identifies a user action.
type Kind int

const (
	KindHome Kind = iota
	KindAbout
	KindList
	KindNames
	KindSorted
	KindShow
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindAbout:
		return "about"
	case KindList:
		return "list"
	case KindNames:
		return "names"
	case KindSorted:
		return "sorted"
	case KindShow:
		return "show"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Request describes one action. Field is used by KindSorted, ID by KindShow.
type Request struct {
	Kind  Kind
	Field string
	ID    string
}

// View is a built page body.
type View struct {
	Title     string
	HTML      string
	Result    *render.Result
	Displayed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer overrides the projection renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(c *Controller) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithSorter overrides the collection sorter.
func WithSorter(s *sorter.Sorter) Option {
	return func(c *Controller) {
		if s != nil {
			c.sorter = s
		}
	}
}

// WithViews overrides the engine rendering the home and about bodies.
func WithViews(views template.TemplateRenderer) Option {
	return func(c *Controller) {
		if views != nil {
			c.views = views
		}
	}
}

// WithArticle sets the display sink.
func WithArticle(a Article) Option {
	return func(c *Controller) {
		if a != nil {
			c.article = a
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller runs user actions against the gateway.
type Controller struct {
	fetcher  Fetcher
	renderer *render.Renderer
	sorter   *sorter.Sorter
	views    template.TemplateRenderer
	article  Article
	logger   *zap.Logger

	generation atomic.Uint64
	displayMu  sync.Mutex
}

// New builds a controller around fetcher.
func New(fetcher Fetcher, options ...Option) (*Controller, error) {
	if fetcher == nil {
		return nil, errors.New("frontend: fetcher is required")
	}
	c := &Controller{
		fetcher: fetcher,
		article: &Memory{},
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.renderer == nil {
		r, err := render.New(render.WithLogger(c.logger))
		if err != nil {
			return nil, fmt.Errorf("frontend: configure renderer: %w", err)
		}
		c.renderer = r
	}
	if c.sorter == nil {
		c.sorter = sorter.New(tags.Default())
	}
	if c.views == nil {
		views, err := NewViews(nil)
		if err != nil {
			return nil, err
		}
		c.views = views
	}
	c.logger = c.logger.Named("frontend")
	return c, nil
}

// Article returns the display sink.
func (c *Controller) Article() Article {
	return c.article
}

// Home shows the backend home message.
func (c *Controller) Home(ctx context.Context) (View, error) {
	return c.Run(ctx, Request{Kind: KindHome})
}

// About shows the backend author information.
func (c *Controller) About(ctx context.Context) (View, error) {
	return c.Run(ctx, Request{Kind: KindAbout})
}

// List shows every record with the full projection.
func (c *Controller) List(ctx context.Context) (View, error) {
	return c.Run(ctx, Request{Kind: KindList})
}

// ListNames shows every record with the name-only projection.
func (c *Controller) ListNames(ctx context.Context) (View, error) {
	return c.Run(ctx, Request{Kind: KindNames})
}

// ListSorted sorts the records by field and shows them with the full
// projection.
func (c *Controller) ListSorted(ctx context.Context, field string) (View, error) {
	return c.Run(ctx, Request{Kind: KindSorted, Field: field})
}

// Show renders one record as a form.
func (c *Controller) Show(ctx context.Context, id string) (View, error) {
	return c.Run(ctx, Request{Kind: KindShow, ID: id})
}

// Run builds the view for req and displays it unless another action started
// in the meantime, in which case ErrSuperseded is returned with the view.
func (c *Controller) Run(ctx context.Context, req Request) (View, error) {
	token := c.generation.Add(1)

	view, err := c.Build(ctx, req)
	if err != nil {
		return View{}, err
	}

	c.displayMu.Lock()
	defer c.displayMu.Unlock()
	if c.generation.Load() != token {
		c.logger.Debug("discarding stale view",
			zap.Stringer("action", req.Kind),
			zap.Uint64("token", token),
		)
		return view, ErrSuperseded
	}
	c.article.Update(view.Title, view.HTML)
	view.Displayed = true
	return view, nil
}

// Build fetches and renders the view for req without displaying it.
func (c *Controller) Build(ctx context.Context, req Request) (View, error) {
	switch req.Kind {
	case KindHome:
		return c.infoView(ctx, "/", "Plantilla Home", HomeTemplate, false)
	case KindAbout:
		return c.infoView(ctx, "/acercade", "Plantilla Acerca de", AboutTemplate, true)
	case KindList:
		return c.listView(ctx, "Listado de personas", projection.Full, "")
	case KindNames:
		return c.listView(ctx, "Listado de nombres", projection.NameOnly, "")
	case KindSorted:
		field := strings.TrimSpace(req.Field)
		return c.listView(ctx, "Listado de personas ordenado por "+field, projection.Full, field)
	case KindShow:
		return c.recordView(ctx, req.ID)
	default:
		return View{}, fmt.Errorf("frontend: unknown action %s", req.Kind)
	}
}

func (c *Controller) infoView(ctx context.Context, route, title, tpl string, full bool) (View, error) {
	info, err := c.fetcher.Info(ctx, route)
	if err != nil {
		if isTransport(ctx, err) {
			return View{}, err
		}
		c.logger.Warn("invalid info payload", zap.String("route", route), zap.Error(err))
		info = NullInfo
	} else if !validInfo(info, full) {
		c.logger.Warn("incomplete info payload", zap.String("route", route))
		info = NullInfo
	}

	html, err := c.views.RenderTemplate(tpl, info)
	if err != nil {
		return View{}, fmt.Errorf("frontend: render %s: %w", tpl, err)
	}
	return View{Title: title, HTML: html}, nil
}

func (c *Controller) listView(ctx context.Context, title, name, field string) (View, error) {
	records, err := c.fetcher.List(ctx)
	if err != nil {
		return View{}, err
	}
	if field != "" {
		if records, err = c.sorter.SortBy(records, field); err != nil {
			return View{}, err
		}
	}
	result, err := c.renderer.Render(ctx, records, name)
	if err != nil {
		return View{}, err
	}
	return View{Title: title, HTML: result.HTML, Result: &result}, nil
}

func (c *Controller) recordView(ctx context.Context, id string) (View, error) {
	rec, err := c.fetcher.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	result, err := c.renderer.RenderRecord(ctx, rec, projection.Form)
	if err != nil {
		return View{}, err
	}
	return View{Title: "Ficha de persona", HTML: result.HTML, Result: &result}, nil
}

func validInfo(info fetch.Info, full bool) bool {
	if info.Mensaje == "" {
		return false
	}
	if full && (info.Autor == "" || info.Email == "" || info.Fecha == "") {
		return false
	}
	return true
}

func isTransport(ctx context.Context, err error) bool {
	return errors.Is(err, fetch.ErrTransport) || ctx.Err() != nil
}
