package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is advisory weekly availability. Appointment creation never checks it.
type TimeSlot struct {
	ID          uuid.UUID `json:"id" db:"id"`
	DoctorID    uuid.UUID `json:"doctor_id" db:"doctor_id"`
	DayOfWeek   Weekday   `json:"day_of_week" db:"day_of_week"`
	StartTime   TimeOfDay `json:"start_time" db:"start_time"`
	EndTime     TimeOfDay `json:"end_time" db:"end_time"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	DoctorUserID uuid.UUID `json:"-" db:"doctor_user_id"`
}

type TimeSlotFilter struct {
	DoctorID  *uuid.UUID
	DayOfWeek *Weekday
}

type CreateTimeSlotRequest struct {
	DoctorID    *uuid.UUID `json:"doctor_id"`
	DayOfWeek   string     `json:"day_of_week" binding:"required,weekday"`
	StartTime   string     `json:"start_time" binding:"required,hhmm"`
	EndTime     string     `json:"end_time" binding:"required,hhmm"`
	IsAvailable *bool      `json:"is_available"`
}

type UpdateTimeSlotRequest struct {
	DayOfWeek   *string `json:"day_of_week" binding:"omitempty,weekday"`
	StartTime   *string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime     *string `json:"end_time" binding:"omitempty,hhmm"`
	IsAvailable *bool   `json:"is_available"`
}
