package medical

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

const msgViewDenied = "You do not have permission to view these medical records."

// Service manages medical records. Only the authoring doctor or an admin
// may write; the patient may read their own.
type Service struct {
	records      repository.MedicalRecordRepository
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	access       *rbac.Service
	logger       *logger.Logger
}

func NewService(records repository.MedicalRecordRepository, patients repository.PatientRepository,
	appointments repository.AppointmentRepository, access *rbac.Service, logger *logger.Logger) *Service {
	return &Service{
		records:      records,
		patients:     patients,
		appointments: appointments,
		access:       access,
		logger:       logger,
	}
}

func (s *Service) List(ctx context.Context, actor *model.User) ([]*model.MedicalRecord, error) {
	scope, err := s.access.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.records.List(ctx, model.MedicalRecordFilter{
		DoctorID:  scope.DoctorID(),
		PatientID: scope.PatientID(),
	})
}

func (s *Service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.MedicalRecord, error) {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.IsOwnerOrAdmin(actor, record.Doctor.UserID, record.Patient.UserID) {
		return nil, s.access.Deny(actor, "view_medical_record", msgViewDenied)
	}
	return record, nil
}

func (s *Service) Create(ctx context.Context, actor *model.User, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	scope, err := s.access.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}

	record := &model.MedicalRecord{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		Notes:         req.Notes,
	}
	switch {
	case scope.Doctor != nil:
		if req.DoctorID != nil && *req.DoctorID != scope.Doctor.ID {
			return nil, s.access.Deny(actor, "create_medical_record", "Doctors can only author records as themselves.")
		}
		record.DoctorID = scope.Doctor.ID
	case scope.Admin:
		if req.DoctorID == nil {
			return nil, apperrors.FieldError("doctor_id", "This field is required.")
		}
		record.DoctorID = *req.DoctorID
	default:
		return nil, s.access.Deny(actor, "create_medical_record", "Only doctors can create medical records.")
	}

	if _, err := s.patients.Get(ctx, record.PatientID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.FieldError("patient_id", "Patient does not exist.")
		}
		return nil, err
	}
	if record.AppointmentID != nil {
		appt, err := s.appointments.Get(ctx, *record.AppointmentID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.FieldError("appointment_id", "Appointment does not exist.")
			}
			return nil, err
		}
		if appt.DoctorID != record.DoctorID || appt.PatientID != record.PatientID {
			return nil, apperrors.FieldError("appointment_id", "Appointment does not belong to this doctor and patient.")
		}
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("medical record created",
		"record_id", record.ID.String(),
		"doctor_id", record.DoctorID.String(),
	)
	return s.records.Get(ctx, record.ID)
}

func (s *Service) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateMedicalRecordRequest) (*model.MedicalRecord, error) {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOwnerOrAdmin(actor, "update_medical_record", record.Doctor.UserID); err != nil {
		return nil, err
	}

	if req.Diagnosis != nil {
		record.Diagnosis = *req.Diagnosis
	}
	if req.Prescription != nil {
		record.Prescription = *req.Prescription
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.access.RequireOwnerOrAdmin(actor, "delete_medical_record", record.Doctor.UserID); err != nil {
		return err
	}
	return s.records.Delete(ctx, id)
}
