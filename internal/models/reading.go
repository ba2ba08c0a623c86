package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WindReading is a wind speed sample at a map coordinate.
type WindReading struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Speed     float64   `gorm:"not null" json:"speed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (WindReading) TableName() string { return "wind_readings" }

func (w *WindReading) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

// SolarReading is an insolation sample at a map coordinate.
type SolarReading struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Unit      float64   `gorm:"not null" json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SolarReading) TableName() string { return "solar_readings" }

func (s *SolarReading) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
