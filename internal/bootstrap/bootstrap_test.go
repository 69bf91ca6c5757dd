package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"verdian/internal/modkit"
	"verdian/internal/platform/config"
	"verdian/internal/platform/logger"
	kit "verdian/internal/platform/testkit"
	meta "verdian/internal/services/meta/module"
)

func testDeps() modkit.Deps {
	return modkit.Deps{Log: logger.Get(), Cfg: config.New()}
}

func TestGenerator_NoKeyIsNil(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "  ")
	if g := Generator(context.Background(), testDeps()); g != nil {
		t.Fatalf("expected nil generator without a key, got %T", g)
	}
}

func TestGenerator_WithKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GEMINI_MODEL", "gemini-test")
	t.Setenv("GEMINI_BASE_URL", "http://127.0.0.1:1")
	if g := Generator(context.Background(), testDeps()); g == nil {
		t.Fatalf("expected a generator when the key is set")
	}
}

func TestServerOptions_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("HTTP_CORS_ORIGINS", "")
	t.Setenv("HTTP_SLOW", "")
	t.Setenv("HTTP_SHUTDOWN_GRACE", "")

	so, mo := ServerOptions(testDeps(), "8082")
	if so.Addr != ":8082" || so.ShutdownGrace != 10*time.Second {
		t.Fatalf("server options = %+v", so)
	}
	if mo.Slow != 2*time.Second || len(mo.CORS.AllowedOrigins) != 1 || mo.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("middleware options = %+v", mo)
	}
}

func TestServerOptions_Overrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("HTTP_SLOW", "500ms")
	t.Setenv("HTTP_SHUTDOWN_GRACE", "3s")

	so, mo := ServerOptions(testDeps(), "8000")
	if so.Addr != ":9001" || so.ShutdownGrace != 3*time.Second {
		t.Fatalf("server options = %+v", so)
	}
	if mo.Slow != 500*time.Millisecond || len(mo.CORS.AllowedOrigins) != 2 {
		t.Fatalf("middleware options = %+v", mo)
	}
}

func TestNewServer_MountsModulesBehindDefaults(t *testing.T) {
	deps := testDeps()
	so, mo := ServerOptions(deps, "8082")
	t.Setenv("GEMINI_API_KEY", "k")
	srv := NewServer(deps, so, mo, meta.New(deps, "verdian-test"))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	kit.MustContain(t, rec.Body.String(), `"gemini":true`)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id middleware not mounted")
	}
}
