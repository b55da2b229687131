package backend

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath(""); got != "/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("api"); got != "/api/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/api/", WithRoutePath("plantilla")); got != "/api/plantilla/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_StripsMountPrefix(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := New().RegisterRoutes(mux, "/api")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/api/" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/getTodas", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if _, err := RegisterRoutes(nil, "/api"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
