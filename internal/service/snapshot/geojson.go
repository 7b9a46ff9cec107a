package snapshot

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"roadwatch/internal/model"
	"roadwatch/internal/polyline"
)

// exportGeoJSON writes routes.geojson: route and condition polylines as
// LineString features, events and plows as Point features. Used as a map
// overlay by the frontend.
func (s *SnapshotService) exportGeoJSON(data *model.CycleData) error {
	fc := BuildFeatureCollection(data)

	payload, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}

	geoPath := filepath.Join(s.outputDir, "routes.geojson")
	if err := os.WriteFile(geoPath, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write routes.geojson: %w", err)
	}
	return nil
}

// BuildFeatureCollection assembles the GeoJSON overlay for one cycle.
func BuildFeatureCollection(data *model.CycleData) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, route := range data.Routes {
		feature := lineFeature(route.Polyline)
		if feature == nil {
			continue
		}
		feature.Properties = geojson.Properties{
			"kind":       "route",
			"route_id":   route.RouteID,
			"name":       route.Name,
			"color":      route.Color,
			"distance_m": route.DistanceM,
			"duration_s": route.DurationS,
		}
		fc.Append(feature)
	}

	for _, cond := range data.Conditions {
		feature := lineFeature(cond.EncodedPolyline)
		if feature == nil {
			continue
		}
		feature.Properties = geojson.Properties{
			"kind":              "condition",
			"roadway_name":      cond.RoadwayName,
			"road_condition":    cond.RoadCondition,
			"weather_condition": cond.WeatherCondition,
			"restriction":       cond.Restriction,
		}
		fc.Append(feature)
	}

	for _, event := range data.Events {
		if event.Latitude == nil || event.Longitude == nil {
			continue
		}
		feature := geojson.NewFeature(orb.Point{*event.Longitude, *event.Latitude})
		feature.Properties = geojson.Properties{
			"kind":            "event",
			"event_id":        event.EventID,
			"event_type":      event.EventType,
			"roadway_name":    event.RoadwayName,
			"description":     event.Description,
			"severity":        event.Severity,
			"is_full_closure": event.IsFullClosure,
		}
		fc.Append(feature)
	}

	for _, plow := range data.Plows {
		if plow.Latitude == nil || plow.Longitude == nil {
			continue
		}
		feature := geojson.NewFeature(orb.Point{*plow.Longitude, *plow.Latitude})
		feature.Properties = geojson.Properties{
			"kind":    "plow",
			"plow_id": plow.PlowID,
			"name":    plow.Name,
		}
		if plow.Heading != nil {
			feature.Properties["heading"] = *plow.Heading
		}
		if plow.Speed != nil {
			feature.Properties["speed"] = *plow.Speed
		}
		fc.Append(feature)
	}

	return fc
}

// lineFeature decodes an encoded polyline into a LineString feature.
// Returns nil when the polyline is empty or malformed; GeoJSON coordinate
// order is lng,lat.
func lineFeature(encoded string) *geojson.Feature {
	if encoded == "" {
		return nil
	}
	points, err := polyline.Decode(encoded)
	if err != nil {
		log.Printf("Skipping malformed polyline in GeoJSON export: %v", err)
		return nil
	}
	if len(points) == 0 {
		return nil
	}

	line := make(orb.LineString, 0, len(points))
	for _, p := range points {
		line = append(line, orb.Point{p[1], p[0]})
	}
	return geojson.NewFeature(line)
}
