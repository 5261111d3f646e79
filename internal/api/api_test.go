package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starford/skyroute/internal/booking"
	"github.com/starford/skyroute/internal/routing"
	"github.com/starford/skyroute/internal/testutil"
)

// testEnv sets up loaded graphs, a seeded booking store, and the router.
// authToken="" means disabled mode; non-empty means token mode.
func testEnv(t *testing.T, authToken string) http.Handler {
	t.Helper()

	gs, _ := testutil.TestGraphs(t,
		",Shire,Isengard,Mordor\nShire,0,10,\nIsengard,,0,5\nMordor,,,0\n",
		",Shire,Isengard,Mordor\nShire,0,400,\nIsengard,,0,800\nMordor,,,0\n",
		",Shire,Isengard,Mordor\nShire,0,1,\nIsengard,,0,5\nMordor,,,0\n",
	)
	db := testutil.TestStore(t)
	testutil.SeedCatalogs(t, db)

	idx, err := booking.LoadMetricsIndex(db)
	if err != nil {
		t.Fatalf("LoadMetricsIndex: %v", err)
	}
	svc := booking.NewService(db, idx, nil)
	return NewRouter(routing.NewResolver(gs), svc, authToken != "", authToken, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bookBody() map[string]any {
	return map[string]any{
		"holder": map[string]string{
			"given_name":       "Frodo",
			"paternal_surname": "Baggins",
			"birth_date":       "2968-09-22",
			"nationality":      "Shire",
			"category":         "general",
			"email":            "frodo@shire.me",
			"phone":            "555-0001",
		},
		"path":        []string{"Shire", "Isengard", "Mordor"},
		"flight_date": "2026-10-01",
	}
}

func TestBestRoutesEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/routes?origin=Shire&destination=Mordor", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp RoutesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Cost.Reachable || resp.Cost.Totals == nil {
		t.Fatalf("cost itinerary = %+v, want reachable with totals", resp.Cost)
	}
	if resp.Cost.Totals.Cost != 15 || resp.Cost.Totals.Distance != 1200 || resp.Cost.Totals.Time != 6 {
		t.Errorf("cost totals = %+v, want {15 1200 6}", resp.Cost.Totals)
	}
	if len(resp.Cost.Path) != 3 {
		t.Errorf("cost path = %v", resp.Cost.Path)
	}
}

func TestBestRoutesErrors(t *testing.T) {
	router := testEnv(t, "")

	if w := doJSON(t, router, http.MethodGet, "/routes?origin=Shire&destination=Shire", nil); w.Code != http.StatusBadRequest {
		t.Errorf("same endpoints: status = %d, want 400", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/routes?origin=Rivendell&destination=Mordor", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown origin: status = %d, want 404", w.Code)
	}
	// Unknown destination is not an error, just unreachable everywhere.
	w := doJSON(t, router, http.MethodGet, "/routes?origin=Shire&destination=Rivendell", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unknown destination: status = %d, want 200", w.Code)
	}
	var resp RoutesResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Cost.Reachable || resp.Cost.Totals != nil {
		t.Errorf("cost itinerary = %+v, want unreachable without totals", resp.Cost)
	}
}

func TestBookingLifecycle(t *testing.T) {
	router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/bookings", bookBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var res BookResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	code := res.Reservation.Code
	if len(code) != 6 {
		t.Fatalf("code = %q", code)
	}

	w = doJSON(t, router, http.MethodGet, "/bookings/"+code, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", w.Code, w.Body.String())
	}
	var detail ReservationDetail
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if len(detail.Legs) != 2 || detail.Totals.Passengers != 1 {
		t.Errorf("detail = %d legs, %d passengers; want 2, 1", len(detail.Legs), detail.Totals.Passengers)
	}

	w = doJSON(t, router, http.MethodGet, "/bookings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list BookingListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Codes) != 1 || list.Codes[0] != code {
		t.Errorf("codes = %v, want [%s]", list.Codes, code)
	}
}

func TestBookingErrorMapping(t *testing.T) {
	router := testEnv(t, "")

	// First booking succeeds, the duplicate conflicts.
	if w := doJSON(t, router, http.MethodPost, "/bookings", bookBody()); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/bookings", bookBody()); w.Code != http.StatusConflict {
		t.Errorf("duplicate holder: status = %d, want 409", w.Code)
	}

	body := bookBody()
	body["holder"].(map[string]string)["email"] = "oops"
	body["holder"].(map[string]string)["phone"] = "555-0009"
	if w := doJSON(t, router, http.MethodPost, "/bookings", body); w.Code != http.StatusBadRequest {
		t.Errorf("bad email: status = %d, want 400", w.Code)
	}

	body = bookBody()
	body["holder"].(map[string]string)["email"] = "pippin@shire.me"
	body["holder"].(map[string]string)["phone"] = "555-0010"
	body["path"] = []string{"Mordor", "Shire"}
	if w := doJSON(t, router, http.MethodPost, "/bookings", body); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("uncatalogued leg: status = %d, want 422", w.Code)
	}

	if w := doJSON(t, router, http.MethodGet, "/bookings/ZZZZZZ", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing booking: status = %d, want 404", w.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/categories", map[string]string{"name": "Adulto Mayor"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	// Same normalized name again: existing row, 200.
	if w := doJSON(t, router, http.MethodPost, "/categories", map[string]string{"name": "adulto mayor!!"}); w.Code != http.StatusOK {
		t.Errorf("repeat status = %d, want 200", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/categories", map[string]string{"name": "1234"}); w.Code != http.StatusBadRequest {
		t.Errorf("empty-after-normalization status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list CategoryListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Categories) != 2 {
		t.Fatalf("categories = %+v, want adulto mayor + general", list.Categories)
	}
	if list.Categories[0].Name != "adulto mayor" {
		t.Errorf("first category = %q, want adulto mayor", list.Categories[0].Name)
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := testEnv(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200", w.Code)
	}
}
