package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"verdian/internal/platform/logger"
	phttp "verdian/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestBuild_DefaultsAndOptions(t *testing.T) {
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Mw != nil || b.Ports != nil {
		t.Fatalf("expected zero build, got %+v", b)
	}

	mw := func(next http.Handler) http.Handler { return next }
	b = Build(WithName("x"), WithPrefix("/p"), WithMiddlewares(mw, mw), WithPorts(42))
	if b.Name != "x" || b.Prefix != "/p" || len(b.Mw) != 2 {
		t.Fatalf("unexpected build %+v", b)
	}
	if p, ok := b.Ports.(int); !ok || p != 42 {
		t.Fatalf("ports %v", b.Ports)
	}
}

type fakeModule struct {
	name    string
	mounted bool
}

func (f *fakeModule) MountRoutes(r phttp.Router) {
	f.mounted = true
	phttp.GetJSON(r, "/"+f.name, func(*http.Request) (any, error) { return f.name, nil })
}
func (f *fakeModule) Ports() any   { return nil }
func (f *fakeModule) Name() string { return f.name }

func TestMountAll(t *testing.T) {
	m := chi.NewRouter()
	a, b := &fakeModule{name: "a"}, &fakeModule{name: "b"}
	MountAll(Deps{Log: logger.Get()}, phttp.AdaptChi(m), a, b)
	if !a.mounted || !b.mounted {
		t.Fatal("modules not mounted")
	}
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/b", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestMountUnder_PrefixAndScopedMiddleware(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Mod", "1")
			next.ServeHTTP(w, r)
		})
	}
	reg := func(r phttp.Router) {
		phttp.GetJSON(r, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	}

	m := chi.NewRouter()
	r := phttp.AdaptChi(m)
	MountUnder(r, Build(WithPrefix("/v1"), WithMiddlewares(tag)), reg)
	MountUnder(r, Build(), func(r phttp.Router) {
		phttp.GetJSON(r, "/root", func(*http.Request) (any, error) { return "ok", nil })
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if rr.Code != http.StatusOK || rr.Header().Get("X-Mod") != "1" {
		t.Fatalf("prefixed: %d %v", rr.Code, rr.Header())
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/root", nil))
	if rr.Code != http.StatusOK || rr.Header().Get("X-Mod") != "" {
		t.Fatalf("root: %d %v", rr.Code, rr.Header())
	}
}
