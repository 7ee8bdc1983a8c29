package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"animal-rescue/internal/middleware"
	"animal-rescue/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func TestWhoami(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req = req.WithContext(middleware.WithPrincipal(req.Context(), auth.Principal{Name: "alice"}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "alice" {
		t.Fatalf("expected 200 alice, got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "" {
		t.Fatalf("expected 200 empty, got %d %q", rec.Code, rec.Body.String())
	}
}
