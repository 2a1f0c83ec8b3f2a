package model

import (
	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Doctor struct {
	Base
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	SpecialtyID     *uuid.UUID `json:"specialty_id" db:"specialty_id"`
	SpecialtyName   *string    `json:"specialty_name" db:"specialty_name"`
	Bio             string     `json:"bio" db:"bio"`
	Education       string     `json:"education" db:"education"`
	ExperienceYears int        `json:"experience_years" db:"experience_years"`
	ConsultationFee float64    `json:"consultation_fee" db:"consultation_fee"`
	AvailableDays   string     `json:"available_days" db:"available_days"`
	StartTime       *TimeOfDay `json:"start_time" db:"start_time"`
	EndTime         *TimeOfDay `json:"end_time" db:"end_time"`
	IsAvailable     bool       `json:"is_available" db:"is_available"`
	IsFeatured      bool       `json:"is_featured" db:"is_featured"`

	// Derived from reviews; only the review repository writes these.
	Rating       float64 `json:"rating" db:"rating"`
	TotalReviews int     `json:"total_reviews" db:"total_reviews"`

	User UserSummary `json:"user" db:"user"`
}

type DoctorFilter struct {
	Search      string
	SpecialtyID *uuid.UUID
	IsFeatured  *bool
	IsAvailable *bool
}

type CreateDoctorRequest struct {
	UserID          uuid.UUID  `json:"user_id" binding:"required"`
	SpecialtyID     *uuid.UUID `json:"specialty_id"`
	Bio             string     `json:"bio"`
	Education       string     `json:"education"`
	ExperienceYears int        `json:"experience_years" binding:"gte=0"`
	ConsultationFee float64    `json:"consultation_fee" binding:"gte=0"`
	AvailableDays   string     `json:"available_days" binding:"omitempty,weekdays"`
	StartTime       string     `json:"start_time" binding:"omitempty,hhmm"`
	EndTime         string     `json:"end_time" binding:"omitempty,hhmm"`
	IsAvailable     *bool      `json:"is_available"`
	IsFeatured      bool       `json:"is_featured"`
}

// UpdateDoctorRequest serves PUT and PATCH; nil fields are left unchanged.
type UpdateDoctorRequest struct {
	SpecialtyID     *uuid.UUID `json:"specialty_id"`
	Bio             *string    `json:"bio"`
	Education       *string    `json:"education"`
	ExperienceYears *int       `json:"experience_years" binding:"omitempty,gte=0"`
	ConsultationFee *float64   `json:"consultation_fee" binding:"omitempty,gte=0"`
	AvailableDays   *string    `json:"available_days" binding:"omitempty,weekdays"`
	StartTime       *string    `json:"start_time" binding:"omitempty,hhmm"`
	EndTime         *string    `json:"end_time" binding:"omitempty,hhmm"`
	IsAvailable     *bool      `json:"is_available"`
	IsFeatured      *bool      `json:"is_featured"`
}

// ParseWorkingHours parses optional HH:MM bounds; when both are given the
// end must come after the start.
func ParseWorkingHours(startRaw, endRaw string) (*TimeOfDay, *TimeOfDay, error) {
	var start, end *TimeOfDay
	if startRaw != "" {
		t, err := ParseTimeOfDay(startRaw)
		if err != nil {
			return nil, nil, apperrors.FieldError("start_time", "Time has wrong format. Use HH:MM.")
		}
		start = &t
	}
	if endRaw != "" {
		t, err := ParseTimeOfDay(endRaw)
		if err != nil {
			return nil, nil, apperrors.FieldError("end_time", "Time has wrong format. Use HH:MM.")
		}
		end = &t
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, apperrors.FieldError("end_time", "End time must be after start time.")
	}
	return start, end, nil
}
