package model

import "time"

// CameraView is a single camera view with an image URL.
type CameraView struct {
	URL string `json:"url"`
}

// Camera is a DOT traffic camera. Lat/lng may be missing in the upstream
// feed, hence the pointer fields.
type Camera struct {
	ID        int      `json:"id" gorm:"primaryKey"`
	SourceID  string   `json:"source_id" gorm:"size:64"`
	Roadway   string   `json:"roadway" gorm:"size:128"`
	Direction string   `json:"direction" gorm:"size:32"`
	Location  string   `json:"location" gorm:"size:255"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// Populated when the camera is matched against a route
	DistanceFromRouteKm *float64 `json:"distance_from_route_km,omitempty" gorm:"column:distance_from_route_km"`

	UpdatedAt time.Time `json:"-"`
	CreatedAt time.Time `json:"-"`

	Views []CameraView `json:"views" gorm:"-"`
}

// ImageURL returns the first view URL, or "" when the camera has none.
func (c *Camera) ImageURL() string {
	if len(c.Views) == 0 {
		return ""
	}
	return c.Views[0].URL
}

// HasPosition reports whether the upstream feed supplied coordinates.
func (c *Camera) HasPosition() bool {
	return c.Latitude != nil && c.Longitude != nil
}
