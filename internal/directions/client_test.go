package directions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"roadwatch/internal/config"
)

const directionsPayload = `{
	"status": "OK",
	"routes": [{
		"overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC"},
		"legs": [
			{"distance": {"value": 60000}, "duration": {"value": 2400},
			 "duration_in_traffic": {"value": 2700}},
			{"distance": {"value": 45000}, "duration": {"value": 1800},
			 "duration_in_traffic": {"value": 1900}}
		]
	}]
}`

func TestFetchRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("waypoints"); got != "via:Kamas, UT|via:Francis, UT" {
			t.Errorf("unexpected waypoints: %q", got)
		}
		if r.URL.Query().Get("mode") != "driving" {
			t.Errorf("missing driving mode")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(directionsPayload))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	def := config.RouteDef{
		RouteID:   "parleys-wolfcreek",
		Name:      "Parley's / Wolf Creek",
		Color:     "#3b82f6",
		Waypoints: []string{"Kamas, UT", "Francis, UT"},
	}

	route, err := client.FetchRoute(context.Background(), "Riverton, UT", "Hanna, UT", def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if route.Polyline != "_p~iF~ps|U_ulLnnqC" {
		t.Errorf("unexpected polyline: %q", route.Polyline)
	}
	// Leg sums
	if route.DistanceM != 105000 {
		t.Errorf("expected distance 105000, got %d", route.DistanceM)
	}
	if route.DurationS != 4200 {
		t.Errorf("expected duration 4200, got %d", route.DurationS)
	}
	if route.DurationInTrafficS == nil || *route.DurationInTrafficS != 4600 {
		t.Errorf("expected traffic duration 4600, got %v", route.DurationInTrafficS)
	}
}

func TestFetchRouteNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	_, err := client.FetchRoute(context.Background(), "a", "b", config.RouteDef{RouteID: "r"})
	if err == nil {
		t.Fatal("expected error for empty result")
	}
}

func TestFetchRoutesStubsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	defs := []config.RouteDef{
		{RouteID: "r1", Name: "Route One", Color: "#111111"},
		{RouteID: "r2", Name: "Route Two", Color: "#222222"},
	}

	routes := client.FetchRoutes(context.Background(), "a", "b", defs)
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	// Failed fetches still yield stub routes with identity fields set.
	for i, route := range routes {
		if route.RouteID != defs[i].RouteID || route.Color != defs[i].Color {
			t.Errorf("stub route %d lost identity: %+v", i, route)
		}
		if route.Polyline != "" {
			t.Errorf("stub route %d should have no polyline", i)
		}
	}
}
