package models

import "github.com/google/uuid"

// Region is a static risk-map entry: a city with a coarse risk level and the
// phone numbers historically tied to it. Seeded at startup, read-only after.
type Region struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `json:"name" gorm:"unique;not null"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Risk        string    `json:"risk"`
	Problems    int       `json:"problems"`
	Phones      string    `json:"phones" gorm:"type:varchar(500)"`
	Description string    `json:"description"`
}
