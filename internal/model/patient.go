package model

import (
	"github.com/google/uuid"
)

type Patient struct {
	Base
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	EmergencyContact string    `json:"emergency_contact" db:"emergency_contact"`
	MedicalHistory   string    `json:"medical_history" db:"medical_history"`
	Allergies        string    `json:"allergies" db:"allergies"`
	DateOfBirth      *Date     `json:"date_of_birth" db:"date_of_birth"`
	BloodGroup       string    `json:"blood_group" db:"blood_group"`

	User UserSummary `json:"user" db:"user"`
}

type PatientFilter struct {
	Search string
	UserID *uuid.UUID
}

type CreatePatientRequest struct {
	UserID           uuid.UUID `json:"user_id" binding:"required"`
	EmergencyContact string    `json:"emergency_contact" binding:"omitempty,max=15"`
	MedicalHistory   string    `json:"medical_history"`
	Allergies        string    `json:"allergies"`
	DateOfBirth      string    `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	BloodGroup       string    `json:"blood_group" binding:"omitempty,blood_group"`
}

type UpdatePatientRequest struct {
	EmergencyContact *string `json:"emergency_contact" binding:"omitempty,max=15"`
	MedicalHistory   *string `json:"medical_history"`
	Allergies        *string `json:"allergies"`
	DateOfBirth      *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	BloodGroup       *string `json:"blood_group" binding:"omitempty,blood_group"`
}
