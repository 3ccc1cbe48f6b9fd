package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DisasterType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_disaster_types_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *DisasterType) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Disaster is a reported incident that actions are attached to.
type Disaster struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string        `gorm:"size:255;not null" json:"title"`
	Description    string        `gorm:"type:text" json:"description"`
	Lat            float64       `gorm:"not null" json:"lat"`
	Lon            float64       `gorm:"not null" json:"lon"`
	IsExpired      bool          `gorm:"default:false;index" json:"is_expired"`
	DisasterTypeID *uuid.UUID    `gorm:"type:uuid;index" json:"disaster_type_id"`
	DisasterType   *DisasterType `gorm:"foreignKey:DisasterTypeID" json:"disaster_type,omitempty"`
	UserID         *uuid.UUID    `gorm:"type:uuid;index" json:"user_id"`
	User           *User         `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (d *Disaster) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
