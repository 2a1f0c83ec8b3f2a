package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
)

type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		EmailExists(ctx context.Context, email string) (bool, error)
		Update(ctx context.Context, user *model.User) error
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

		// CreateDoctorAccount inserts the user, gets or creates the named
		// specialty and inserts the doctor profile in one transaction.
		CreateDoctorAccount(ctx context.Context, user *model.User, doctor *model.Doctor, specialtyName string) error
		// CreatePatientAccount inserts the user and the patient profile in one transaction.
		CreatePatientAccount(ctx context.Context, user *model.User, patient *model.Patient) error
	}

	SpecialtyRepository interface {
		Create(ctx context.Context, specialty *model.Specialty) error
		Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error)
		GetByName(ctx context.Context, name string) (*model.Specialty, error)
		Update(ctx context.Context, specialty *model.Specialty) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, search string) ([]*model.Specialty, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter model.DoctorFilter) ([]*model.Doctor, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error)
	}

	// AppointmentRepository writes an outbox event in the same transaction
	// as every create, update and delete.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error)
	}

	// ReviewRepository recomputes the doctor's rating and review count in the
	// same transaction as every write and returns the new aggregate.
	ReviewRepository interface {
		Create(ctx context.Context, review *model.Review) (*model.RatingSummary, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Review, error)
		Update(ctx context.Context, review *model.Review) (*model.RatingSummary, error)
		Delete(ctx context.Context, id uuid.UUID) (*model.RatingSummary, error)
		List(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error)
	}

	TimeSlotRepository interface {
		Create(ctx context.Context, slot *model.TimeSlot) error
		Get(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error)
		Update(ctx context.Context, slot *model.TimeSlot) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter model.TimeSlotFilter) ([]*model.TimeSlot, error)
	}

	MedicalRecordRepository interface {
		Create(ctx context.Context, record *model.MedicalRecord) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error)
		Update(ctx context.Context, record *model.MedicalRecord) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter model.MedicalRecordFilter) ([]*model.MedicalRecord, error)
		ExistsForDoctorAndPatient(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error)
	}

	// OutboxRepository hands pending events to handle while holding row locks;
	// a nil return marks the event processed, an error schedules a retry.
	OutboxRepository interface {
		ProcessPending(ctx context.Context, limit, maxAttempts int, handle func(context.Context, *model.OutboxEvent) error) (int, error)
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
