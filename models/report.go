package models

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses. A report starts open and any signed-in user may mark it
// solved once the dispute is settled.
const (
	StatusOpen   = "open"
	StatusSolved = "solved"
)

// Report is a single fraud complaint tied to one phone number. The reporter
// name is a denormalized copy taken at submission time, not a live reference
// to the user record.
type Report struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PhoneNumber      string    `json:"phone_number" gorm:"index;not null"`
	ReporterName     string    `json:"reporter_name"`
	Description      string    `json:"description" gorm:"type:varchar(1000)"`
	EvidenceImageURL string    `json:"evidence_image_url,omitempty"`
	City             string    `json:"city,omitempty"`
	Status           string    `json:"status" gorm:"default:open"`
	Priority         string    `json:"priority,omitempty"`
	UserID           uint      `json:"user_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// KnownNumber is the registry behind the clean-number feature: a phone number
// lands here the first time it is referenced (looked up or seeded). Registry
// members owning zero reports surface as "clean" instead of "no results".
type KnownNumber struct {
	PhoneNumber string    `json:"phone_number" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
}

// NumberRating holds one mutable running average + count per phone number.
// There is no per-user record: rating twice counts twice.
type NumberRating struct {
	PhoneNumber string    `json:"phone_number" gorm:"primaryKey"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateReportRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Description string `json:"description" binding:"required"`
	City        string `json:"city"`
	Priority    string `json:"priority"`
}

type UpdateReportRequest struct {
	Description string `json:"description" binding:"required"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open solved"`
}

type RateNumberRequest struct {
	Stars int `json:"stars" binding:"required"`
}

// PlatformStats backs the landing-page counters.
type PlatformStats struct {
	UniqueNumbers int64 `json:"unique_numbers"`
	TotalReports  int64 `json:"total_reports"`
	SolvedReports int64 `json:"solved_reports"`
}
