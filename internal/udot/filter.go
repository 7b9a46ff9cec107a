package udot

import (
	"log"
	"sort"
	"strings"

	"roadwatch/internal/model"
	"roadwatch/internal/polyline"
	"roadwatch/internal/util"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SelectCamerasByID picks cameras by the configured IDs, preserving the
// configured ordering. Unknown IDs are skipped.
func SelectCamerasByID(cameras []model.Camera, ids []int) []model.Camera {
	lookup := make(map[int]model.Camera, len(cameras))
	for _, c := range cameras {
		lookup[c.ID] = c
	}

	selected := make([]model.Camera, 0, len(ids))
	for _, id := range ids {
		if c, ok := lookup[id]; ok {
			selected = append(selected, c)
		}
	}
	return selected
}

// FilterCamerasByRoute keeps cameras within bufferKm of the route's decoded
// polyline, sorted by their position along the route. Each kept camera gets
// its DistanceFromRouteKm populated.
func FilterCamerasByRoute(cameras []model.Camera, route *model.Route, bufferKm float64) []model.Camera {
	points := RoutePoints(route)
	if len(points) == 0 {
		log.Println("No route points to filter cameras against")
		return cameras
	}

	type match struct {
		alongIdx int
		camera   model.Camera
	}
	var matched []match

	for _, camera := range cameras {
		if !camera.HasPosition() {
			continue
		}

		dist := util.MinDistanceToPathKm(*camera.Latitude, *camera.Longitude, points)
		if dist > bufferKm {
			continue
		}

		d := dist
		camera.DistanceFromRouteKm = &d
		matched = append(matched, match{
			alongIdx: util.ClosestPointIndex(*camera.Latitude, *camera.Longitude, points),
			camera:   camera,
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].alongIdx < matched[j].alongIdx
	})

	result := make([]model.Camera, 0, len(matched))
	for _, m := range matched {
		result = append(result, m.camera)
	}
	return result
}

// FilterConditionsByRoadway keeps conditions whose roadway name contains any
// of the configured roadway keywords.
func FilterConditionsByRoadway(conditions []model.RoadCondition, roadways []string) []model.RoadCondition {
	var result []model.RoadCondition
	for _, c := range conditions {
		for _, road := range roadways {
			if containsFold(c.RoadwayName, road) {
				result = append(result, c)
				break
			}
		}
	}
	return result
}

// FilterEventsByRoute keeps events within bufferKm of the route. Events
// without coordinates are dropped. With no route geometry every event is
// kept, matching upstream behavior when the route fetch failed.
func FilterEventsByRoute(events []model.Event, route *model.Route, bufferKm float64) []model.Event {
	points := RoutePoints(route)
	if len(points) == 0 {
		return events
	}

	var result []model.Event
	for _, e := range events {
		if e.Latitude == nil || e.Longitude == nil {
			continue
		}
		if util.MinDistanceToPathKm(*e.Latitude, *e.Longitude, points) <= bufferKm {
			result = append(result, e)
		}
	}
	return result
}

// FilterStationsByName keeps stations whose name contains any keyword. The
// upstream feed has no coordinates for weather stations.
func FilterStationsByName(stations []model.WeatherStation, keywords []string) []model.WeatherStation {
	var result []model.WeatherStation
	for _, s := range stations {
		for _, kw := range keywords {
			if containsFold(s.StationName, kw) {
				result = append(result, s)
				break
			}
		}
	}
	return result
}

// FilterPassesByName keeps mountain passes whose name contains any keyword.
func FilterPassesByName(passes []model.MountainPass, keywords []string) []model.MountainPass {
	var result []model.MountainPass
	for _, p := range passes {
		for _, kw := range keywords {
			if containsFold(p.Name, kw) {
				result = append(result, p)
				break
			}
		}
	}
	return result
}

// FilterPlowsByRoutes keeps plows within bufferKm of any of the given routes.
func FilterPlowsByRoutes(plows []model.SnowPlow, routes []*model.Route, bufferKm float64) []model.SnowPlow {
	var combined [][2]float64
	for _, route := range routes {
		combined = append(combined, RoutePoints(route)...)
	}
	if len(combined) == 0 {
		return plows
	}

	var result []model.SnowPlow
	for _, p := range plows {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		if util.MinDistanceToPathKm(*p.Latitude, *p.Longitude, combined) <= bufferKm {
			result = append(result, p)
		}
	}
	return result
}

// RoutePoints returns the decoded polyline of a route, decoding and caching
// it on first use. A malformed polyline yields no path: the route is still
// usable, only proximity filtering degrades.
func RoutePoints(route *model.Route) [][2]float64 {
	if route == nil || route.Polyline == "" {
		return nil
	}
	if route.RoutePoints != nil {
		return route.RoutePoints
	}

	points, err := polyline.Decode(route.Polyline)
	if err != nil {
		log.Printf("Failed to decode polyline for route %s: %v", route.RouteID, err)
		return nil
	}
	route.RoutePoints = points
	return points
}
