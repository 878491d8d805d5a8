package metrics

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// newAPIRouter mirrors the vetdex route layout with stub handlers.
func newAPIRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/ask", func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength == 0 {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"status":"single"}`))
		})
		r.Get("/drugs/{name}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "name") == "инсулин" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{"status":"single"}`))
		})
	})
	return r
}

func serve(h http.Handler, method, target, body string) int {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func requests(method, path, status string) float64 {
	return testutil.ToFloat64(httpRequestsTotal.WithLabelValues(method, path, status))
}

func TestMiddleware_AskCountsByStatus(t *testing.T) {
	h := newAPIRouter()

	okBefore := requests("POST", "/v1/ask", "200")
	badBefore := requests("POST", "/v1/ask", "400")

	if code := serve(h, "POST", "/v1/ask", `{"query":"мелоксикам"}`); code != http.StatusOK {
		t.Fatalf("status: got %d", code)
	}
	serve(h, "POST", "/v1/ask", "")

	if got := requests("POST", "/v1/ask", "200") - okBefore; got != 1 {
		t.Errorf("200 count grew by %v, want 1", got)
	}
	if got := requests("POST", "/v1/ask", "400") - badBefore; got != 1 {
		t.Errorf("400 count grew by %v, want 1", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_DrugNamesCollapseToPattern(t *testing.T) {
	h := newAPIRouter()
	const pattern = "/v1/drugs/{name}"

	okBefore := requests("GET", pattern, "200")
	missBefore := requests("GET", pattern, "404")

	for _, name := range []string{"Мелоксикам", "Пироксикам", "Ивермектин"} {
		serve(h, "GET", "/v1/drugs/"+url.PathEscape(name), "")
	}
	serve(h, "GET", "/v1/drugs/"+url.PathEscape("инсулин"), "")

	if got := requests("GET", pattern, "200") - okBefore; got != 3 {
		t.Errorf("200 count grew by %v, want 3", got)
	}
	if got := requests("GET", pattern, "404") - missBefore; got != 1 {
		t.Errorf("404 count grew by %v, want 1", got)
	}
	if got := requests("GET", "/v1/drugs/Мелоксикам", "200"); got != 0 {
		t.Errorf("raw drug names must not become labels, got %v", got)
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	h := newAPIRouter()

	before := requests("GET", unmatchedRoute, "404")
	serve(h, "GET", "/v2/anything", "")

	if got := requests("GET", unmatchedRoute, "404") - before; got != 1 {
		t.Errorf("unmatched count grew by %v, want 1", got)
	}
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	h := newAPIRouter()

	before := requests("GET", "/health", "200")
	serve(h, "GET", "/health", "")
	if got := requests("GET", "/health", "200") - before; got != 1 {
		t.Errorf("handler without WriteHeader must count as 200, grew by %v", got)
	}
}

func TestRouteLabel_WithoutRouter(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/ask", http.NoBody)
	if got := routeLabel(req); got != unmatchedRoute {
		t.Errorf("routeLabel() = %q, want %q", got, unmatchedRoute)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", unmatchedRoute},
		{"/*", unmatchedRoute},
		{"/v1/drugs/{name}", "/v1/drugs/{name}"},
		{"/metrics", "/metrics"},
	}
	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
