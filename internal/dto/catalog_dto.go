package dto

import "github.com/google/uuid"

type CategoryRequest struct {
	Name string `json:"name"`
}

type ActionObjectRequest struct {
	Name       string     `json:"name"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type DisasterTypeRequest struct {
	Name string `json:"name"`
}

type DisasterRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Lat            *float64   `json:"lat"`
	Lon            *float64   `json:"lon"`
	IsExpired      bool       `json:"is_expired"`
	DisasterTypeID *uuid.UUID `json:"disaster_type_id"`
}

type ActionRequest struct {
	ActionType      string      `json:"action_type"`
	Description     string      `json:"description"`
	Lat             *float64    `json:"lat"`
	Lon             *float64    `json:"lon"`
	IsExpired       bool        `json:"is_expired"`
	DisasterID      *uuid.UUID  `json:"disaster_id"`
	ActionObjectIDs []uuid.UUID `json:"action_object_ids"`
}
