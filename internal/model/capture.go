package model

import (
	"time"

	"gorm.io/gorm"
)

// AnalysisResult is the structured outcome of a vision-model pass over a
// camera image. Nil means the model gave no answer for that question.
type AnalysisResult struct {
	HasSnow   *bool  `json:"has_snow"`
	HasCar    *bool  `json:"has_car"`
	HasTruck  *bool  `json:"has_truck"`
	HasAnimal *bool  `json:"has_animal"`
	Notes     string `json:"notes"`
}

// CaptureRecord is the unified model for a single camera capture
// (used for both PostgreSQL and Redis)
type CaptureRecord struct {
	ID         string `json:"id" gorm:"primaryKey"`
	CameraID   int    `json:"camera_id" gorm:"index;not null"`
	CycleID    string `json:"cycle_id" gorm:"size:64;index;not null"`
	CapturedAt string `json:"captured_at" gorm:"size:64"`
	ImageKey   string `json:"image_key" gorm:"size:255"`

	HasSnow       *bool  `json:"has_snow"`
	HasCar        *bool  `json:"has_car"`
	HasTruck      *bool  `json:"has_truck"`
	HasAnimal     *bool  `json:"has_animal"`
	AnalysisNotes string `json:"analysis_notes" gorm:"type:text"`

	// Denormalized camera info so a capture renders without a join
	Roadway   string   `json:"roadway" gorm:"size:128"`
	Direction string   `json:"direction" gorm:"size:32"`
	Location  string   `json:"location" gorm:"size:255"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// Which configured routes this camera belongs to; empty for cameras
	// discovered by route proximity
	RouteIDs []string `json:"route_ids,omitempty" gorm:"-"`

	// Resolved at export time, never persisted
	ImageURL string `json:"image_url,omitempty" gorm:"-"`

	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	CreatedAt time.Time      `json:"-" gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

// ApplyAnalysis copies a vision result onto the capture.
func (c *CaptureRecord) ApplyAnalysis(a AnalysisResult) {
	c.HasSnow = a.HasSnow
	c.HasCar = a.HasCar
	c.HasTruck = a.HasTruck
	c.HasAnimal = a.HasAnimal
	c.AnalysisNotes = a.Notes
}

// ToLight returns a lighter version of the capture for Redis
func (c *CaptureRecord) ToLight() *CaptureRecord {
	return &CaptureRecord{
		ID:            c.ID,
		CameraID:      c.CameraID,
		CycleID:       c.CycleID,
		CapturedAt:    c.CapturedAt,
		ImageKey:      c.ImageKey,
		HasSnow:       c.HasSnow,
		HasCar:        c.HasCar,
		HasTruck:      c.HasTruck,
		HasAnimal:     c.HasAnimal,
		AnalysisNotes: c.AnalysisNotes,
		UpdatedAt:     c.UpdatedAt,
	}
}
