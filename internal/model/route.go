package model

import "time"

// Route is a named driving route with its encoded overview polyline and
// travel info from the directions provider.
type Route struct {
	RouteID     string `json:"route_id" gorm:"primaryKey;size:64"`
	Name        string `json:"name" gorm:"size:128"`
	Color       string `json:"color" gorm:"size:16"`
	Origin      string `json:"origin" gorm:"size:255"`
	Destination string `json:"destination" gorm:"size:255"`
	Polyline    string `json:"polyline" gorm:"type:text"`

	DistanceM          int  `json:"distance_m"`
	DurationS          int  `json:"duration_s"`
	DurationInTrafficS *int `json:"duration_in_traffic_s"`

	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"-"`

	// Decoded polyline, populated on demand
	RoutePoints [][2]float64 `json:"-" gorm:"-"`
}
