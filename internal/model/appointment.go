package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

type Appointment struct {
	Base
	DoctorID        uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	PatientID       uuid.UUID         `json:"patient_id" db:"patient_id"`
	AppointmentDate Date              `json:"appointment_date" db:"appointment_date"`
	AppointmentTime TimeOfDay         `json:"appointment_time" db:"appointment_time"`
	Reason          string            `json:"reason" db:"reason"`
	Status          AppointmentStatus `json:"status" db:"status"`
	PaymentStatus   PaymentStatus     `json:"payment_status" db:"payment_status"`

	Doctor  Party `json:"doctor" db:"doctor"`
	Patient Party `json:"patient" db:"patient"`
}

// Owners lists the users allowed to see and edit the appointment besides admins.
func (a *Appointment) Owners() []uuid.UUID {
	return []uuid.UUID{a.Doctor.UserID, a.Patient.UserID}
}

// AppointmentFilter narrows list queries. DoctorID/PatientID double as the
// role scope when set by the service.
type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Status    *AppointmentStatus
	Date      *Date
	// Search matches doctor and patient first or last names.
	Search string
}

type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID  `json:"doctor_id" binding:"required"`
	PatientID       *uuid.UUID `json:"patient_id"`
	AppointmentDate string     `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime string     `json:"appointment_time" binding:"required,hhmm"`
	Reason          string     `json:"reason"`
}

// UpdateAppointmentRequest only touches the two status fields.
type UpdateAppointmentRequest struct {
	Status        *AppointmentStatus `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	PaymentStatus *PaymentStatus     `json:"payment_status" binding:"omitempty,oneof=unpaid paid refunded"`
}
