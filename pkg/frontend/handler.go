package frontend

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-roster/pkg/fetch"
	"github.com/goliatone/go-roster/pkg/projection"
	"github.com/goliatone/go-roster/pkg/render"
	"github.com/goliatone/go-roster/pkg/sorter"
	"github.com/goliatone/go-roster/pkg/substitute"
	"github.com/goliatone/go-roster/pkg/tags"
)

// Query parameters understood by the roster page.
const (
	ViewParam  = "vista"
	OrderParam = "orden"
)

// Handler serves the controller views as complete HTML pages. Requests are
// independent of each other and never touch the controller's display sink.
type Handler struct {
	controller *Controller
	mux        *http.ServeMux
}

// NewHandler mounts the pages:
//
//	GET /                 home
//	GET /acercade         about
//	GET /personas         list (?vista=full|name-only, ?orden=<field>)
//	GET /personas/{id}    record form
func NewHandler(c *Controller) *Handler {
	h := &Handler{controller: c, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /{$}", h.page(func(r *http.Request) Request {
		return Request{Kind: KindHome}
	}))
	h.mux.HandleFunc("GET /acercade", h.page(func(r *http.Request) Request {
		return Request{Kind: KindAbout}
	}))
	h.mux.HandleFunc("GET /personas", h.page(listRequest))
	h.mux.HandleFunc("GET /personas/{id}", h.page(func(r *http.Request) Request {
		return Request{Kind: KindShow, ID: r.PathValue("id")}
	}))
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func listRequest(r *http.Request) Request {
	q := r.URL.Query()
	if field := q.Get(OrderParam); field != "" {
		return Request{Kind: KindSorted, Field: field}
	}
	if q.Get(ViewParam) == projection.NameOnly {
		return Request{Kind: KindNames}
	}
	return Request{Kind: KindList}
}

func (h *Handler) page(build func(*http.Request) Request) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := build(r)
		if req.Kind == KindNames || req.Kind == KindList {
			if v := r.URL.Query().Get(ViewParam); v != "" && v != projection.Full && v != projection.NameOnly {
				h.fail(w, r, http.StatusBadRequest, "Vista desconocida: "+v, nil)
				return
			}
		}

		view, err := h.controller.Build(r.Context(), req)
		if err != nil {
			code, message := classify(err)
			h.fail(w, r, code, message, err)
			return
		}
		h.write(w, r, http.StatusOK, view.Title, view.HTML)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, code int, message string, err error) {
	if err != nil {
		h.controller.logger.Warn("page failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", code),
			zap.Error(err),
		)
	}
	body, rerr := h.controller.views.RenderTemplate(ErrorTemplate, map[string]any{"message": message})
	if rerr != nil {
		http.Error(w, message, code)
		return
	}
	h.write(w, r, code, http.StatusText(code), body)
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, code int, title, content string) {
	page, err := h.controller.views.RenderTemplate(LayoutTemplate, map[string]any{
		"title":       title,
		"content":     content,
		"site":        "Plantilla Rugby",
		"sort_fields": sortFields(),
	})
	if err != nil {
		h.controller.logger.Error("render layout", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(page))
}

func classify(err error) (int, string) {
	var statusErr *fetch.StatusError
	switch {
	case errors.Is(err, fetch.ErrTransport):
		return http.StatusBadGateway, fetch.TransportAlert
	case errors.As(err, &statusErr):
		if statusErr.StatusCode() == http.StatusNotFound {
			return http.StatusNotFound, "Persona no encontrada"
		}
		return http.StatusBadGateway, statusErr.Error()
	case errors.Is(err, sorter.ErrUnknownField):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, render.ErrUnknownProjection), errors.Is(err, substitute.ErrProjectionMismatch):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func sortFields() []string {
	var out []string
	for _, tag := range tags.Default().Tags() {
		if tag.Key == "" {
			continue
		}
		out = append(out, tag.Key)
	}
	return out
}
