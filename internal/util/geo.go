package util

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	return angle.Radians() * earthRadiusMeters
}

// DistanceKm returns the great-circle distance between two points in kilometers.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	return DistanceMeters(lat1, lng1, lat2, lng2) / 1000.0
}

// MinDistanceToPathKm returns the minimum distance in kilometers from a point
// to any vertex of a decoded route path. Returns +Inf for an empty path.
func MinDistanceToPathKm(lat, lng float64, path [][2]float64) float64 {
	if len(path) == 0 {
		return math.Inf(1)
	}

	min := math.Inf(1)
	for _, p := range path {
		if d := DistanceKm(lat, lng, p[0], p[1]); d < min {
			min = d
		}
	}
	return min
}

// ClosestPointIndex returns the index of the path vertex nearest to the point.
// Used to order cameras by their position along a route. Returns -1 for an
// empty path.
func ClosestPointIndex(lat, lng float64, path [][2]float64) int {
	best := -1
	min := math.Inf(1)
	for i, p := range path {
		if d := DistanceKm(lat, lng, p[0], p[1]); d < min {
			min = d
			best = i
		}
	}
	return best
}
