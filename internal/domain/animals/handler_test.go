package animals

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"animal-rescue/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func TestListAnimalsHandler_EmitsZeroValueFields(t *testing.T) {
	repo := &testRepo{items: []Animal{{ID: 9, Name: "Newborn"}}}
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(repo), &testLister{}, logger.Nop())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var raw []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 animal, got %d", len(raw))
	}

	a := raw[0]
	if a["age"] != float64(0) {
		t.Fatalf("expected age 0, got %v", a["age"])
	}
	if a["species"] != "" || a["sex"] != "" {
		t.Fatalf("expected empty species and sex, got %v %v", a["species"], a["sex"])
	}
	if _, ok := a["rescueDate"]; ok {
		t.Fatalf("rescueDate should be omitted when unknown")
	}
	if reqs, ok := a["adoptionRequests"].([]any); !ok || len(reqs) != 0 {
		t.Fatalf("expected empty adoptionRequests, got %v", a["adoptionRequests"])
	}
}
