package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-roster/pkg/gateway"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8002", cfg.Backend.Addr)
	assert.Equal(t, ":8001", cfg.Gateway.Addr)
	assert.Equal(t, ":8000", cfg.Frontend.Addr)
	assert.Equal(t, "http://localhost:8001", cfg.Client.BaseURL)
	assert.Equal(t, "/Rugby", cfg.Client.Prefix)
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
	assert.Equal(t, []gateway.Route{{Prefix: "/Rugby", Target: "http://localhost:8002"}}, cfg.Gateway.Routes)
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("ROSTER_GATEWAY_URL", "http://gateway:9000")
	t.Setenv("ROSTER_CLIENT_TIMEOUT", "3s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://gateway:9000", cfg.Client.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
backend:
  addr: ":9002"
gateway:
  addr: ":9001"
  allowed_origins: ["http://localhost:9000"]
  routes:
    - prefix: /Rugby
      target: http://backend:9002
    - prefix: /Futbol
      target: http://futbol:9003
client:
  base_url: http://localhost:9001
  timeout: 2s
`)
	t.Setenv("ROSTER_BACKEND_ADDR", ":7002")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":7002", cfg.Backend.Addr, "env wins over file")
	assert.Equal(t, ":9001", cfg.Gateway.Addr)
	assert.Equal(t, []string{"http://localhost:9000"}, cfg.Gateway.AllowedOrigins)
	assert.Equal(t, []gateway.Route{
		{Prefix: "/Rugby", Target: "http://backend:9002"},
		{Prefix: "/Futbol", Target: "http://futbol:9003"},
	}, cfg.Gateway.Routes)
	assert.Equal(t, 2*time.Second, cfg.Client.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "log:\n  level: loud\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")

	_, err = Load(writeConfig(t, "gateway:\n  routes:\n    - prefix: /\n      target: http://x\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "log: [not, a, map"))
	require.Error(t, err)
}
