package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActionType string

const (
	ActionSeek      ActionType = "SEEK"
	ActionOffer     ActionType = "OFFER"
	ActionKnowledge ActionType = "KNOWLEDGE"
)

func (t ActionType) Valid() bool {
	switch t {
	case ActionSeek, ActionOffer, ActionKnowledge:
		return true
	}
	return false
}

// Action is a request for, or an offer of, supply items near a location.
type Action struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActionType    ActionType     `gorm:"size:20;not null;index" json:"action_type"`
	Description   string         `gorm:"type:text" json:"description"`
	Lat           float64        `gorm:"not null" json:"lat"`
	Lon           float64        `gorm:"not null" json:"lon"`
	IsExpired     bool           `gorm:"default:false" json:"is_expired"`
	DisasterID    *uuid.UUID     `gorm:"type:uuid;index" json:"disaster_id"`
	Disaster      *Disaster      `gorm:"foreignKey:DisasterID" json:"-"`
	UserID        *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	User          *User          `gorm:"foreignKey:UserID" json:"-"`
	ActionObjects []ActionObject `gorm:"many2many:action_action_objects" json:"action_objects"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (a *Action) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
