package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"animal-rescue/internal/gateway"
	"animal-rescue/internal/middleware"
	"animal-rescue/internal/router"
)

type adoptionRequestDTO struct {
	ID          string `json:"id"`
	AnimalID    int64  `json:"animalId"`
	AdopterName string `json:"adopterName"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
}

type animalDTO struct {
	ID               int64                `json:"id"`
	Name             string               `json:"name"`
	AdoptionRequests []adoptionRequestDTO `json:"adoptionRequests"`
}

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_QuotaRejectsSecondRequest(t *testing.T) {
	ts := newServer(t, router.Options{AdoptionRequestLimit: 1})

	// 1) alice pide el animal 5
	if st, body := doReq(t, ts.URL, "POST", "/animals/5/adoption-requests", "alice", map[string]any{
		"email": "alice@example.com",
		"notes": "big yard",
	}); st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	// 2) segunda solicitud excede el tope
	st, body := doReq(t, ts.URL, "POST", "/animals/7/adoption-requests", "alice", map[string]any{
		"email": "alice@example.com",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 quota, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "Too many existing adoption requests") {
		t.Fatalf("unexpected body: %s", string(body))
	}

	// 3) alice sigue con exactamente una solicitud
	if n := countByAdopter(listAnimals(t, ts.URL), "alice"); n != 1 {
		t.Fatalf("expected 1 request for alice, got %d", n)
	}
}

func TestHTTP_UnknownAnimal(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "POST", "/animals/999/adoption-requests", "alice", map[string]any{"email": "a@x"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "Animal with id 999 doesn't exist!") {
		t.Fatalf("unexpected body: %s", string(body))
	}

	if st, _ := doReq(t, ts.URL, "PUT", "/animals/999/adoption-requests/any", "alice", map[string]any{"email": "a@x"}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 on edit, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/animals/999/adoption-requests/any", "alice", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 on delete, got %d", st)
	}

	if n := countByAdopter(listAnimals(t, ts.URL), "alice"); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestHTTP_NonOwnerCannotModify(t *testing.T) {
	ts := newServer(t, router.Options{})

	reqID := submit(t, ts.URL, "bob", 3, "bob@example.com")

	st, body := doReq(t, ts.URL, "DELETE", "/animals/3/adoption-requests/"+reqID, "carol", nil)
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 on delete, got %d body=%s", st, string(body))
	}
	if strings.Contains(string(body), "bob") {
		t.Fatalf("forbidden message must not include owner: %s", string(body))
	}

	if st, _ := doReq(t, ts.URL, "PUT", "/animals/3/adoption-requests/"+reqID, "carol", map[string]any{"email": "carol@example.com"}); st != http.StatusForbidden {
		t.Fatalf("expected 403 on edit, got %d", st)
	}

	ar, ok := findRequest(listAnimals(t, ts.URL), reqID)
	if !ok {
		t.Fatalf("request %s should still exist", reqID)
	}
	if ar.Email != "bob@example.com" || ar.AdopterName != "bob" {
		t.Fatalf("request was modified: %#v", ar)
	}
}

func TestHTTP_EditOnlyChangesEmailAndNotes(t *testing.T) {
	ts := newServer(t, router.Options{})

	reqID := submit(t, ts.URL, "bob", 3, "bob@example.com")

	st, body := doReq(t, ts.URL, "PUT", "/animals/3/adoption-requests/"+reqID, "bob", map[string]any{
		"id":          "forged",
		"animalId":    9,
		"adopterName": "mallory",
		"email":       "new@example.com",
		"notes":       "updated",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}

	items := listAnimals(t, ts.URL)
	ar, ok := findRequest(items, reqID)
	if !ok {
		t.Fatalf("request %s not found after edit", reqID)
	}
	if ar.AnimalID != 3 || ar.AdopterName != "bob" {
		t.Fatalf("immutable fields changed: %#v", ar)
	}
	if ar.Email != "new@example.com" || ar.Notes != "updated" {
		t.Fatalf("mutable fields not updated: %#v", ar)
	}
	if _, forged := findRequest(items, "forged"); forged {
		t.Fatalf("client supplied id must be ignored")
	}
}

func TestHTTP_SubmitIgnoresClientOwnership(t *testing.T) {
	ts := newServer(t, router.Options{})

	if st, _ := doReq(t, ts.URL, "POST", "/animals/4/adoption-requests", "dave", map[string]any{
		"adopterName": "mallory",
		"animalId":    8,
		"email":       "dave@example.com",
	}); st != http.StatusCreated {
		t.Fatalf("expected 201, got %d", st)
	}

	for _, a := range listAnimals(t, ts.URL) {
		for _, ar := range a.AdoptionRequests {
			if ar.AdopterName != "dave" || ar.AnimalID != 4 || a.ID != 4 {
				t.Fatalf("unexpected request %#v on animal %d", ar, a.ID)
			}
		}
	}
}

func TestHTTP_DeleteOwnRequest(t *testing.T) {
	ts := newServer(t, router.Options{})

	reqID := submit(t, ts.URL, "erin", 2, "erin@example.com")

	if st, _ := doReq(t, ts.URL, "DELETE", "/animals/2/adoption-requests/"+reqID, "erin", nil); st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	if _, ok := findRequest(listAnimals(t, ts.URL), reqID); ok {
		t.Fatalf("request should be gone")
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/animals/2/adoption-requests/"+reqID, "erin", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 on second delete, got %d", st)
	}
}

func TestHTTP_ListGroupsRequestsPerAnimal(t *testing.T) {
	ts := newServer(t, router.Options{AdoptionRequestLimit: 5})

	a1 := submit(t, ts.URL, "frank", 1, "f@example.com")
	a2 := submit(t, ts.URL, "grace", 1, "g@example.com")
	b1 := submit(t, ts.URL, "frank", 6, "f@example.com")

	want := map[int64][]string{1: {a1, a2}, 6: {b1}}
	for _, a := range listAnimals(t, ts.URL) {
		if a.AdoptionRequests == nil {
			t.Fatalf("animal %d: adoptionRequests must be [] not null", a.ID)
		}
		got := make([]string, 0, len(a.AdoptionRequests))
		for _, ar := range a.AdoptionRequests {
			got = append(got, ar.ID)
		}
		if strings.Join(got, ",") != strings.Join(want[a.ID], ",") {
			t.Fatalf("animal %d: expected %v, got %v", a.ID, want[a.ID], got)
		}
	}
}

func TestHTTP_AuthAndInputErrors(t *testing.T) {
	ts := newServer(t, router.Options{})

	if st, _ := doReq(t, ts.URL, "POST", "/animals/1/adoption-requests", "", map[string]any{"email": "x"}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/animals/1/adoption-requests/x", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/animals/abc/adoption-requests", "alice", map[string]any{"email": "x"}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad animal id, got %d", st)
	}

	req, _ := http.NewRequest("POST", ts.URL+"/animals/1/adoption-requests", strings.NewReader("{"))
	req.Header.Set(middleware.DebugUserHeader, "alice")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid json, got %d", res.StatusCode)
	}
}

func TestHTTP_Whoami(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "GET", "/whoami", "alice", nil)
	if st != http.StatusOK || string(body) != "alice" {
		t.Fatalf("expected 200 alice, got %d %q", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/whoami", "", nil)
	if st != http.StatusOK || string(body) != "" {
		t.Fatalf("expected 200 empty, got %d %q", st, string(body))
	}
}

func TestHTTP_AmbientEndpoints(t *testing.T) {
	ts := newServer(t, router.Options{})

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %q", st, string(body))
	}

	st, body := doReq(t, ts.URL, "GET", "/api-config", "", nil)
	if st != http.StatusOK {
		t.Fatalf("api-config: %d", st)
	}
	var cfg gateway.Config
	if err := json.Unmarshal(body, &cfg); err != nil || len(cfg.Routes) == 0 {
		t.Fatalf("api-config body invalid: %v %s", err, string(body))
	}

	if st, _ := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil); st != http.StatusOK {
		t.Fatalf("swagger doc: %d", st)
	}

	// un request para que haya series
	doReq(t, ts.URL, "GET", "/animals", "", nil)
	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "animal_rescue_http_requests_total") {
		t.Fatalf("metrics: %d", st)
	}
}

func TestHTTP_RateLimitFromDescriptor(t *testing.T) {
	doc, err := gateway.Parse([]byte(`{"routes":[{
		"title": "whoami",
		"predicates": ["Path=/api/whoami", "Method=GET"],
		"filters": ["RateLimit=2,1m", "StripPrefix=1"],
		"tokenRelay": true
	}]}`), gateway.FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	table, err := gateway.Compile(doc.Config)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	ts := newServer(t, router.Options{
		RouteDocument: doc,
		RateLimiter:   gateway.NewLimiter(table, gateway.WithKeyFunc(middleware.ClientKey)),
	})

	for i := 0; i < 2; i++ {
		if st, _ := doReq(t, ts.URL, "GET", "/whoami", "alice", nil); st != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, st)
		}
	}
	if st, _ := doReq(t, ts.URL, "GET", "/whoami", "alice", nil); st != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", st)
	}

	// bucket por adoptante
	if st, _ := doReq(t, ts.URL, "GET", "/whoami", "bob", nil); st != http.StatusOK {
		t.Fatalf("bob should have his own bucket, got %d", st)
	}
	// /animals no tiene RateLimit en este descriptor
	for i := 0; i < 3; i++ {
		if st, _ := doReq(t, ts.URL, "GET", "/animals", "alice", nil); st != http.StatusOK {
			t.Fatalf("animals: expected 200, got %d", st)
		}
	}
}

func TestHTTP_SubmitRateLimitIgnoresRotatedHeader(t *testing.T) {
	doc, err := gateway.Default()
	if err != nil {
		t.Fatalf("default descriptor: %v", err)
	}
	table, err := gateway.Compile(doc.Config)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	ts := newServer(t, router.Options{
		AdoptionRequestLimit: 100,
		RouteDocument:        doc,
		RateLimiter: gateway.NewLimiter(table,
			gateway.WithKeyFunc(middleware.ClientKey),
			gateway.WithIdentity(middleware.PrincipalKey),
		),
	})

	post := func(adopter, header string) int {
		req, _ := http.NewRequest("POST", ts.URL+"/animals/1/adoption-requests", strings.NewReader(`{"email":"a@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		if adopter != "" {
			req.Header.Set(middleware.DebugUserHeader, adopter)
		}
		req.Header.Set("X-Adopter", header)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		res.Body.Close()
		return res.StatusCode
	}

	// RateLimit=5,1m,{header:X-Adopter}
	for i := 0; i < 5; i++ {
		if st := post("alice", "rotated-"+strconv.Itoa(i)); st != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, st)
		}
	}
	if st := post("alice", "rotated-5"); st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after 5 requests with rotated header, got %d", st)
	}

	// otro adoptante tiene su propio bucket
	if st := post("bob", "rotated-0"); st != http.StatusCreated {
		t.Fatalf("bob: expected 201, got %d", st)
	}

	// anónimos se identifican por el header (y el handler responde 401)
	if st := post("", "anon-1"); st != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", st)
	}
}

func TestHTTP_ListAlwaysEmitsAnimalFields(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "GET", "/animals", "", nil)
	if st != http.StatusOK {
		t.Fatalf("list animals: expected 200, got %d", st)
	}
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		t.Fatalf("decode animals: %v", err)
	}
	for _, a := range raw {
		for _, k := range []string{"id", "name", "species", "sex", "age", "description", "avatarUrl", "adoptionRequests"} {
			if _, ok := a[k]; !ok {
				t.Fatalf("animal %v: missing %q", a["id"], k)
			}
		}
	}
}

func submit(t *testing.T, baseURL, adopter string, animalID int64, email string) string {
	t.Helper()

	before := map[string]bool{}
	for _, a := range listAnimals(t, baseURL) {
		for _, ar := range a.AdoptionRequests {
			before[ar.ID] = true
		}
	}

	path := "/animals/" + strconv.FormatInt(animalID, 10) + "/adoption-requests"
	st, body := doReq(t, baseURL, "POST", path, adopter, map[string]any{"email": email})
	if st != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d body=%s", st, string(body))
	}

	for _, a := range listAnimals(t, baseURL) {
		for _, ar := range a.AdoptionRequests {
			if !before[ar.ID] && ar.AdopterName == adopter && ar.AnimalID == animalID {
				return ar.ID
			}
		}
	}
	t.Fatalf("submitted request not found in listing")
	return ""
}

func listAnimals(t *testing.T, baseURL string) []animalDTO {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/animals", "", nil)
	if st != http.StatusOK {
		t.Fatalf("list animals: expected 200, got %d body=%s", st, string(body))
	}
	var out []animalDTO
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode animals: %v", err)
	}
	return out
}

func findRequest(items []animalDTO, id string) (adoptionRequestDTO, bool) {
	for _, a := range items {
		for _, ar := range a.AdoptionRequests {
			if ar.ID == id {
				return ar, true
			}
		}
	}
	return adoptionRequestDTO{}, false
}

func countByAdopter(items []animalDTO, adopter string) int {
	n := 0
	for _, a := range items {
		for _, ar := range a.AdoptionRequests {
			if ar.AdopterName == adopter {
				n++
			}
		}
	}
	return n
}

func doReq(t *testing.T, baseURL, method, path, debugUser string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUser != "" {
		req.Header.Set(middleware.DebugUserHeader, debugUser)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
