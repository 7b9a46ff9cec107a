package model

// CycleSummary is the summary row for one complete capture cycle.
type CycleSummary struct {
	CycleID          string `json:"cycle_id" gorm:"primaryKey;size:64"`
	StartedAt        string `json:"started_at" gorm:"size:64"`
	CompletedAt      string `json:"completed_at" gorm:"size:64"`
	CamerasProcessed int    `json:"cameras_processed"`
	SnowCount        int    `json:"snow_count"`
	EventCount       int    `json:"event_count"`
	TravelTimeS      *int   `json:"travel_time_s"`
	DistanceM        *int   `json:"distance_m"`
}
