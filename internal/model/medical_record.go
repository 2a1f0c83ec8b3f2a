package model

import (
	"github.com/google/uuid"
)

type MedicalRecord struct {
	Base
	PatientID     uuid.UUID  `json:"patient_id" db:"patient_id"`
	DoctorID      uuid.UUID  `json:"doctor_id" db:"doctor_id"`
	AppointmentID *uuid.UUID `json:"appointment_id" db:"appointment_id"`
	Diagnosis     string     `json:"diagnosis" db:"diagnosis"`
	Prescription  string     `json:"prescription" db:"prescription"`
	Notes         string     `json:"notes" db:"notes"`

	Doctor  Party `json:"doctor" db:"doctor"`
	Patient Party `json:"patient" db:"patient"`
}

type MedicalRecordFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
}

type CreateMedicalRecordRequest struct {
	PatientID     uuid.UUID  `json:"patient_id" binding:"required"`
	DoctorID      *uuid.UUID `json:"doctor_id"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	Diagnosis     string     `json:"diagnosis" binding:"required"`
	Prescription  string     `json:"prescription"`
	Notes         string     `json:"notes"`
}

type UpdateMedicalRecordRequest struct {
	Diagnosis    *string `json:"diagnosis" binding:"omitempty,min=1"`
	Prescription *string `json:"prescription"`
	Notes        *string `json:"notes"`
}
