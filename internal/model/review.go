package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	DoctorID      uuid.UUID  `json:"doctor_id" db:"doctor_id"`
	PatientID     uuid.UUID  `json:"patient_id" db:"patient_id"`
	AppointmentID *uuid.UUID `json:"appointment_id" db:"appointment_id"`
	Rating        int        `json:"rating" db:"rating"`
	Comment       string     `json:"comment" db:"comment"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`

	Patient Party `json:"patient" db:"patient"`
}

type ReviewFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
}

type CreateReviewRequest struct {
	DoctorID      uuid.UUID  `json:"doctor_id" binding:"required"`
	PatientID     *uuid.UUID `json:"patient_id"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	Rating        int        `json:"rating" binding:"required,gte=1,lte=5"`
	Comment       string     `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment"`
}

// RatingSummary is the doctor aggregate after a review write.
type RatingSummary struct {
	DoctorID     uuid.UUID `json:"doctor_id"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"total_reviews"`
}

// AggregateRating returns the mean rating, rounded to two decimals, and the
// review count. No reviews means a zero rating.
func AggregateRating(count, sum int) (float64, int) {
	if count <= 0 {
		return 0, 0
	}
	mean := float64(sum) / float64(count)
	return math.Round(mean*100) / 100, count
}
