package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-roster/pkg/backend"
	"github.com/goliatone/go-roster/pkg/gateway"
	"github.com/goliatone/go-roster/pkg/record"
)

func newGateway(t *testing.T, fns ...gateway.OptionFn) (*gateway.Gateway, *httptest.Server) {
	t.Helper()
	upstream := httptest.NewServer(backend.NewHandler())
	t.Cleanup(upstream.Close)

	g, err := gateway.New(append([]gateway.OptionFn{gateway.WithRoute("/Rugby", upstream.URL)}, fns...)...)
	require.NoError(t, err)
	srv := httptest.NewServer(g.Handler())
	t.Cleanup(srv.Close)
	return g, srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestGateway_ForwardsHomeAndAbout(t *testing.T) {
	_, srv := newGateway(t)

	resp := get(t, srv.URL+"/Rugby/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "json")
	var home map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&home))
	assert.Equal(t, "Microservicio MS Plantilla: home", home["mensaje"])

	resp = get(t, srv.URL+"/Rugby/acercade")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var about map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&about))
	assert.Equal(t, "Microservicio MS Plantilla: acerca de", about["mensaje"])
	assert.Equal(t, "Álvaro Expósito Carrillo", about["autor"])
	assert.Equal(t, "aec00028@red.ujaen.es", about["email"])
	assert.Equal(t, "28/03/2023", about["fecha"])
}

func TestGateway_ForwardsRosterList(t *testing.T) {
	_, srv := newGateway(t)

	resp := get(t, srv.URL+"/Rugby/getTodas")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "json")

	var payload record.ListPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Data, 11)
	_, hasID := payload.Data[0].Raw("id")
	assert.True(t, hasID)
	name, _ := payload.Data[2].Text("nombre")
	assert.Equal(t, "William", name)
}

func TestGateway_UnknownPrefixIs404(t *testing.T) {
	_, srv := newGateway(t)

	resp := get(t, srv.URL+"/Futbol/getTodas")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = get(t, srv.URL+"/RugbyX/getTodas")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGateway_UpstreamDownIs502(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	target := dead.URL
	dead.Close()

	core, logs := observer.New(zapcore.ErrorLevel)
	g, err := gateway.New(gateway.WithRoute("Rugby/", target), gateway.WithLogger(zap.New(core)))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Rugby/getTodas", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("upstream unavailable").Len())
}

func TestGateway_RequestIDPropagation(t *testing.T) {
	seen := make(chan string, 2)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(gateway.RequestIDHeader)
		assert.Equal(t, "/getTodas", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(upstream.Close)

	core, logs := observer.New(zapcore.InfoLevel)
	g, err := gateway.New(gateway.WithRoute("/Rugby", upstream.URL), gateway.WithLogger(zap.New(core)))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Rugby/getTodas", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	id := rec.Header().Get(gateway.RequestIDHeader)
	_, err = uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, <-seen)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])

	fixed := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/Rugby/getTodas", nil)
	req.Header.Set(gateway.RequestIDHeader, fixed)
	rec = httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)
	assert.Equal(t, fixed, rec.Header().Get(gateway.RequestIDHeader))
	assert.Equal(t, fixed, <-seen)
}

func TestGateway_CORS(t *testing.T) {
	g, err := gateway.New(gateway.WithRoute("/Rugby", "http://127.0.0.1:1"), gateway.WithAllowedOrigins("http://localhost:8000"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/Rugby/getTodas", nil)
	req.Header.Set("Origin", "http://localhost:8000")
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:8000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/Rugby/getTodas", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNew_ValidatesRoutes(t *testing.T) {
	_, err := gateway.New()
	assert.Error(t, err)

	_, err = gateway.New(gateway.WithRoute("/Rugby", "localhost:8002"))
	assert.Error(t, err)

	_, err = gateway.New(gateway.WithRoute("/", "http://localhost:8002"))
	assert.Error(t, err)

	_, err = gateway.New(
		gateway.WithRoute("/Rugby", "http://localhost:8002"),
		gateway.WithRoute("Rugby/", "http://localhost:8003"),
	)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "duplicate"))

	g, err := gateway.New(gateway.WithRoutes([]gateway.Route{
		{Prefix: "/Rugby", Target: "http://localhost:8002"},
		{Prefix: "/Rugby/v2", Target: "http://localhost:8003"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"/Rugby", "/Rugby/v2"}, g.Prefixes())
}
