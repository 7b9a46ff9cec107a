package udot

import (
	"testing"

	"roadwatch/internal/model"
	"roadwatch/internal/polyline"
)

func f(v float64) *float64 { return &v }

// testRoute returns a route whose polyline runs roughly north along a
// meridian, so position-along-route ordering is easy to reason about.
func testRoute(t *testing.T) *model.Route {
	t.Helper()
	path := [][2]float64{
		{40.0, -111.5},
		{40.1, -111.5},
		{40.2, -111.5},
		{40.3, -111.5},
	}
	return &model.Route{RouteID: "test", Polyline: polyline.Encode(path)}
}

func TestSelectCamerasByID(t *testing.T) {
	cameras := []model.Camera{{ID: 1}, {ID: 2}, {ID: 3}}

	selected := SelectCamerasByID(cameras, []int{3, 99, 1})
	if len(selected) != 2 {
		t.Fatalf("expected 2 cameras, got %d", len(selected))
	}
	// Configured order wins, unknown IDs are skipped.
	if selected[0].ID != 3 || selected[1].ID != 1 {
		t.Errorf("unexpected order: %v, %v", selected[0].ID, selected[1].ID)
	}
}

func TestFilterCamerasByRoute(t *testing.T) {
	route := testRoute(t)
	cameras := []model.Camera{
		{ID: 1, Latitude: f(40.25), Longitude: f(-111.5)}, // near the north end
		{ID: 2, Latitude: f(40.05), Longitude: f(-111.5)}, // near the south end
		{ID: 3, Latitude: f(41.5), Longitude: f(-111.5)},  // far away
		{ID: 4},                                           // no coordinates
	}

	// Vertices are ~11 km apart, so mid-segment cameras can be a few km
	// from the nearest vertex.
	matched := FilterCamerasByRoute(cameras, route, 6.0)
	if len(matched) != 2 {
		t.Fatalf("expected 2 cameras, got %d", len(matched))
	}
	// Sorted by position along the route, south to north.
	if matched[0].ID != 2 || matched[1].ID != 1 {
		t.Errorf("unexpected order: %d, %d", matched[0].ID, matched[1].ID)
	}
	if matched[0].DistanceFromRouteKm == nil {
		t.Error("matched camera should have its route distance populated")
	}
}

func TestFilterCamerasByRouteNoGeometry(t *testing.T) {
	cameras := []model.Camera{{ID: 1}, {ID: 2}}
	matched := FilterCamerasByRoute(cameras, &model.Route{}, 2.0)
	if len(matched) != 2 {
		t.Errorf("with no geometry all cameras pass through, got %d", len(matched))
	}
}

func TestFilterConditionsByRoadway(t *testing.T) {
	conditions := []model.RoadCondition{
		{RoadwayName: "SR-35 Wolf Creek"},
		{RoadwayName: "I-70 Eastbound"},
		{RoadwayName: "US-40 Daniels"},
	}

	kept := FilterConditionsByRoadway(conditions, []string{"sr-35", "us-40"})
	if len(kept) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(kept))
	}
	if kept[0].RoadwayName != "SR-35 Wolf Creek" || kept[1].RoadwayName != "US-40 Daniels" {
		t.Errorf("unexpected conditions kept: %+v", kept)
	}
}

func TestFilterEventsByRoute(t *testing.T) {
	route := testRoute(t)
	events := []model.Event{
		// On a polyline vertex; distance is vertex-to-point, so a
		// mid-segment position could sit several km from the path.
		{EventID: "near", Latitude: f(40.1), Longitude: f(-111.5)},
		{EventID: "far", Latitude: f(44.0), Longitude: f(-111.5)},
		{EventID: "no-pos"},
	}

	kept := FilterEventsByRoute(events, route, 5.0)
	if len(kept) != 1 || kept[0].EventID != "near" {
		t.Errorf("expected only the near event, got %+v", kept)
	}

	// Without route geometry everything is kept.
	kept = FilterEventsByRoute(events, &model.Route{}, 5.0)
	if len(kept) != 3 {
		t.Errorf("expected all events without geometry, got %d", len(kept))
	}
}

func TestFilterStationsByName(t *testing.T) {
	stations := []model.WeatherStation{
		{StationName: "Wolf Creek Summit"},
		{StationName: "Logan Canyon"},
		{StationName: "Daniels Summit RWIS"},
	}

	kept := FilterStationsByName(stations, []string{"wolf creek", "daniels"})
	if len(kept) != 2 {
		t.Errorf("expected 2 stations, got %d", len(kept))
	}
}

func TestFilterPlowsByRoutes(t *testing.T) {
	route := testRoute(t)
	plows := []model.SnowPlow{
		{PlowID: 1, Latitude: f(40.1), Longitude: f(-111.5)},
		{PlowID: 2, Latitude: f(44.0), Longitude: f(-120.0)},
	}

	kept := FilterPlowsByRoutes(plows, []*model.Route{route}, 10.0)
	if len(kept) != 1 || kept[0].PlowID != 1 {
		t.Errorf("expected only plow 1, got %+v", kept)
	}
}

func TestRoutePointsCachesDecode(t *testing.T) {
	route := testRoute(t)

	first := RoutePoints(route)
	if len(first) != 4 {
		t.Fatalf("expected 4 points, got %d", len(first))
	}
	if route.RoutePoints == nil {
		t.Fatal("decode result should be cached on the route")
	}
	second := RoutePoints(route)
	if &first[0] != &second[0] {
		t.Error("second call should return the cached slice")
	}
}

func TestRoutePointsMalformed(t *testing.T) {
	route := &model.Route{RouteID: "bad", Polyline: "_p~iF~ps|"}
	if points := RoutePoints(route); points != nil {
		t.Errorf("malformed polyline should yield no path, got %v", points)
	}
}
