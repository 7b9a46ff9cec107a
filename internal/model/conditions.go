package model

import "strings"

// RoadCondition is road surface/weather conditions for a highway segment.
// The segment geometry arrives as an encoded polyline.
type RoadCondition struct {
	RowID            uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	CycleID          string `json:"-" gorm:"size:64;index"`
	ConditionID      int    `json:"id"`
	RoadwayName      string `json:"roadway_name" gorm:"size:128"`
	RoadCondition    string `json:"road_condition" gorm:"size:128"`
	WeatherCondition string `json:"weather_condition" gorm:"size:128"`
	Restriction      string `json:"restriction" gorm:"size:255"`
	EncodedPolyline  string `json:"encoded_polyline" gorm:"type:text"`
	LastUpdated      int64  `json:"last_updated"`
}

// Event is a traffic event: accident, construction, closure.
type Event struct {
	RowID         uint     `json:"-" gorm:"primaryKey;autoIncrement"`
	CycleID       string   `json:"-" gorm:"size:64;index"`
	EventID       string   `json:"id" gorm:"size:64"`
	EventType     string   `json:"event_type" gorm:"size:64"`
	EventSubType  string   `json:"event_sub_type" gorm:"size:64"`
	RoadwayName   string   `json:"roadway_name" gorm:"size:128"`
	Direction     string   `json:"direction" gorm:"size:32"`
	Description   string   `json:"description" gorm:"type:text"`
	Severity      string   `json:"severity" gorm:"size:32"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	IsFullClosure bool     `json:"is_full_closure"`
}

// WeatherStation is road weather information system station data.
// Readings arrive as display strings from the upstream API.
type WeatherStation struct {
	RowID            uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	CycleID          string `json:"-" gorm:"size:64;index"`
	StationID        int    `json:"id"`
	StationName      string `json:"station_name" gorm:"size:128"`
	AirTemperature   string `json:"air_temperature" gorm:"size:32"`
	SurfaceTemp      string `json:"surface_temp" gorm:"size:32"`
	SurfaceStatus    string `json:"surface_status" gorm:"size:64"`
	WindSpeedAvg     string `json:"wind_speed_avg" gorm:"size:32"`
	WindSpeedGust    string `json:"wind_speed_gust" gorm:"size:32"`
	WindDirection    string `json:"wind_direction" gorm:"size:32"`
	Precipitation    string `json:"precipitation" gorm:"size:32"`
	RelativeHumidity string `json:"relative_humidity" gorm:"size:32"`
}

// MountainPass is current conditions and seasonal closure state of a pass.
type MountainPass struct {
	RowID              uint     `json:"-" gorm:"primaryKey;autoIncrement"`
	CycleID            string   `json:"-" gorm:"size:64;index"`
	PassID             int      `json:"id"`
	Name               string   `json:"name" gorm:"size:128"`
	Roadway            string   `json:"roadway" gorm:"size:64"`
	ElevationFt        string   `json:"elevation_ft" gorm:"size:32"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	AirTemperature     string   `json:"air_temperature" gorm:"size:32"`
	WindSpeed          string   `json:"wind_speed" gorm:"size:32"`
	WindGust           string   `json:"wind_gust" gorm:"size:32"`
	WindDirection      string   `json:"wind_direction" gorm:"size:32"`
	SurfaceTemp        string   `json:"surface_temp" gorm:"size:32"`
	SurfaceStatus      string   `json:"surface_status" gorm:"size:64"`
	Visibility         string   `json:"visibility" gorm:"size:32"`
	Forecasts          string   `json:"forecasts" gorm:"type:text"`
	ClosureStatus      string   `json:"closure_status" gorm:"size:32"`
	ClosureDescription string   `json:"closure_description" gorm:"type:text"`
}

// IsClosed reports whether the pass is seasonally closed.
func (p *MountainPass) IsClosed() bool {
	return strings.EqualFold(p.ClosureStatus, "CLOSED")
}

// SnowPlow is a real-time service vehicle position.
type SnowPlow struct {
	RowID       uint     `json:"-" gorm:"primaryKey;autoIncrement"`
	CycleID     string   `json:"-" gorm:"size:64;index"`
	PlowID      int      `json:"id"`
	Name        string   `json:"name" gorm:"size:128"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Heading     *float64 `json:"heading"`
	Speed       *float64 `json:"speed"`
	LastUpdated string   `json:"last_updated" gorm:"size:64"`
}
