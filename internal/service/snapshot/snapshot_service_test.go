package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/geojson"

	"roadwatch/internal/model"
	"roadwatch/internal/polyline"
)

func float64Ptr(v float64) *float64 { return &v }

func testCycleData(cycleID string) *model.CycleData {
	encoded := polyline.Encode([][2]float64{
		{40.12, -111.24},
		{40.30, -111.10},
		{40.48, -111.03},
	})
	return &model.CycleData{
		Cycle: model.CycleSummary{
			CycleID:          cycleID,
			StartedAt:        cycleID,
			CamerasProcessed: 2,
		},
		Routes: []*model.Route{
			{RouteID: "parleys-wolfcreek", Name: "Via Parleys", Color: "#4285F4", Polyline: encoded, DistanceM: 120000},
		},
		Conditions: []model.RoadCondition{
			{RoadwayName: "SR-35", RoadCondition: "Snow packed", EncodedPolyline: encoded},
			{RoadwayName: "US-40", RoadCondition: "Wet", EncodedPolyline: ""},
		},
		Events: []model.Event{
			{EventID: "ev-1", EventType: "accidentsAndIncidents", Latitude: float64Ptr(40.2), Longitude: float64Ptr(-111.1)},
			{EventID: "ev-2", EventType: "closures"},
		},
		Plows: []model.SnowPlow{
			{PlowID: 7, Name: "Plow 7", Latitude: float64Ptr(40.25), Longitude: float64Ptr(-111.15), Heading: float64Ptr(90)},
		},
	}
}

func TestExportCycleWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	service := &SnapshotService{outputDir: dir}

	if err := service.ExportCycle(testCycleData("2026-01-15T09:00:00")); err != nil {
		t.Fatalf("ExportCycle failed: %v", err)
	}

	for _, name := range []string{"cycle-2026-01-15T09-00-00.json", "latest.json", "index.json", "routes.geojson"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, "latest.json"))
	if err != nil {
		t.Fatalf("reading latest.json: %v", err)
	}
	var decoded model.CycleData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("latest.json is not valid CycleData JSON: %v", err)
	}
	if decoded.Cycle.CycleID != "2026-01-15T09:00:00" {
		t.Errorf("latest.json cycle_id = %q", decoded.Cycle.CycleID)
	}
	if len(decoded.Routes) != 1 || decoded.Routes[0].Polyline == "" {
		t.Errorf("latest.json should carry the route with its polyline")
	}
}

func TestIndexNewestFirst(t *testing.T) {
	dir := t.TempDir()
	service := &SnapshotService{outputDir: dir}

	if err := service.ExportCycle(testCycleData("2026-01-15T09:00:00")); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if err := service.ExportCycle(testCycleData("2026-01-15T12:00:00")); err != nil {
		t.Fatalf("second export failed: %v", err)
	}

	index := service.Index()
	if index.Count != 2 {
		t.Fatalf("index count = %d, want 2", index.Count)
	}
	if index.Cycles[0].CycleID != "2026-01-15T12:00:00" {
		t.Errorf("newest cycle should be first, got %q", index.Cycles[0].CycleID)
	}

	// A fresh service restores the index from disk.
	restored := &SnapshotService{outputDir: dir}
	if err := restored.LoadIndex(); err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	if restored.Index().Count != 2 {
		t.Errorf("restored index count = %d, want 2", restored.Index().Count)
	}
}

func TestLoadIndexMissingFile(t *testing.T) {
	service := &SnapshotService{outputDir: t.TempDir()}
	if err := service.LoadIndex(); err != nil {
		t.Fatalf("LoadIndex on empty dir should be a no-op, got %v", err)
	}
}

func TestBuildFeatureCollection(t *testing.T) {
	fc := BuildFeatureCollection(testCycleData("2026-01-15T09:00:00"))

	// 1 route line + 1 condition line (the empty polyline is skipped) +
	// 1 event point (the one without coordinates is skipped) + 1 plow point.
	if len(fc.Features) != 4 {
		t.Fatalf("feature count = %d, want 4", len(fc.Features))
	}

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kind, _ := f.Properties["kind"].(string)
		kinds[kind]++
	}
	for _, want := range []string{"route", "condition", "event", "plow"} {
		if kinds[want] != 1 {
			t.Errorf("kind %q count = %d, want 1", want, kinds[want])
		}
	}
}

func TestGeoJSONCoordinateOrder(t *testing.T) {
	dir := t.TempDir()
	service := &SnapshotService{outputDir: dir}
	if err := service.ExportCycle(testCycleData("2026-01-15T09:00:00")); err != nil {
		t.Fatalf("ExportCycle failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "routes.geojson"))
	if err != nil {
		t.Fatalf("reading routes.geojson: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		t.Fatalf("routes.geojson is not a valid FeatureCollection: %v", err)
	}

	for _, f := range fc.Features {
		if f.Properties["kind"] != "plow" {
			continue
		}
		point := f.Geometry.Bound().Min
		// lng,lat order
		if point[0] > -100 || point[1] < 30 {
			t.Errorf("plow point not in lng,lat order: %v", point)
		}
	}
}
