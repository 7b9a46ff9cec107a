package config

import "testing"

func TestAllCameraIDs(t *testing.T) {
	ids := AllCameraIDs()

	seen := make(map[int]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("camera %d appears twice", id)
		}
		seen[id] = true
	}

	// Shared Wolf Creek cameras must survive deduplication exactly once.
	if !seen[90544] || !seen[90779] {
		t.Error("Wolf Creek Pass cameras missing from union")
	}

	// Union preserves first-route ordering: primary route cameras lead.
	if ids[0] != Routes[0].CameraIDs[0] {
		t.Errorf("expected first camera %d, got %d", Routes[0].CameraIDs[0], ids[0])
	}
}

func TestRouteIDsForCamera(t *testing.T) {
	// 90544 sits on both Wolf Creek routes but not the Tabiona fallback.
	routes := RouteIDsForCamera(90544)
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes for camera 90544, got %v", routes)
	}
	if routes[0] != "parleys-wolfcreek" || routes[1] != "provo-wolfcreek" {
		t.Errorf("unexpected routes: %v", routes)
	}

	if routes := RouteIDsForCamera(1); len(routes) != 0 {
		t.Errorf("expected no routes for unknown camera, got %v", routes)
	}
}
