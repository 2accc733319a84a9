package models

import "github.com/google/uuid"

// Venue is owned by the venue service; this service only reads it.
type Venue struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	City string    `json:"city" db:"city"`
}
