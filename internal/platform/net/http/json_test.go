package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "verdian/internal/platform/errors"
	kit "verdian/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type echoIn struct {
	Title string `json:"title" validate:"required"`
}

func newTestRouter() (*chi.Mux, Router) {
	m := chi.NewRouter()
	return m, AdaptChi(m)
}

func TestPostJSON_RoundTrip(t *testing.T) {
	m, r := newTestRouter()
	PostJSON(r, "/echo", func(_ *stdhttp.Request, in echoIn) (any, error) {
		return map[string]string{"title": strings.ToUpper(in.Title)}, nil
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, "/echo", strings.NewReader(`{"title":"hi","x":1}`)))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}
	if got := kit.DecodeJSON[map[string]string](t, rr.Body); got["title"] != "HI" {
		t.Fatalf("got %v", got)
	}
}

func TestPostJSON_BindErrorSkipsHandler(t *testing.T) {
	m, r := newTestRouter()
	called := false
	PostJSON(r, "/echo", func(_ *stdhttp.Request, _ echoIn) (any, error) {
		called = true
		return nil, nil
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, "/echo", strings.NewReader(`{}`)))
	if called {
		t.Fatal("handler must not run on validation failure")
	}
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
	if body := kit.DecodeJSON[ErrorBody](t, rr.Body); body.Code != perr.ErrorCodeValidation || body.Field != "title" {
		t.Fatalf("body %+v", body)
	}
}

func TestGetJSON_HandlerError(t *testing.T) {
	m, r := newTestRouter()
	GetJSON(r, "/missing", func(*stdhttp.Request) (any, error) {
		return nil, perr.NotFoundf("nothing here")
	})
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/missing", nil))
	if rr.Code != stdhttp.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestRouter_GroupRouteUse(t *testing.T) {
	m, r := newTestRouter()
	r.Group(func(g Router) {
		g.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.Header().Set("X-Grouped", "1")
				next.ServeHTTP(w, req)
			})
		})
		g.Route("/v", func(sub Router) {
			GetJSON(sub, "/ping", func(*stdhttp.Request) (any, error) { return "pong", nil })
		})
	})

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/v/ping", nil))
	if rr.Code != stdhttp.StatusOK || rr.Header().Get("X-Grouped") != "1" {
		t.Fatalf("status %d headers %v", rr.Code, rr.Header())
	}
	_ = m
}
