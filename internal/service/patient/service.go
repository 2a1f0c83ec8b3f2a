package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

const (
	msgViewDenied         = "You do not have permission to view this patient."
	msgCreateDenied       = "You do not have permission to create patients."
	msgUpdateDenied       = "You do not have permission to update this patient."
	msgDeleteDenied       = "You do not have permission to delete patients."
	msgAppointmentsDenied = "You do not have permission to view these appointments."
	msgRecordsDenied      = "You do not have permission to view these medical records."
)

type Service struct {
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	records      repository.MedicalRecordRepository
	access       *rbac.Service
	logger       *logger.Logger
}

func NewService(patients repository.PatientRepository, appointments repository.AppointmentRepository,
	records repository.MedicalRecordRepository, access *rbac.Service, logger *logger.Logger) *Service {
	return &Service{
		patients:     patients,
		appointments: appointments,
		records:      records,
		access:       access,
		logger:       logger,
	}
}

// List returns every patient to admins and doctors; a patient only sees
// their own record.
func (s *Service) List(ctx context.Context, actor *model.User, search string) ([]*model.Patient, error) {
	filter := model.PatientFilter{Search: search}
	switch {
	case actor.IsAdmin() || actor.UserType == model.UserTypeDoctor:
	case actor.UserType == model.UserTypePatient:
		filter.UserID = &actor.ID
	default:
		return nil, apperrors.BadRequest("Invalid user type. Please contact admin.", nil)
	}
	return s.patients.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.UserType == model.UserTypeDoctor || rbac.IsOwnerOrAdmin(actor, patient.UserID) {
		return patient, nil
	}
	return nil, s.access.Deny(actor, "view_patient", msgViewDenied)
}

func (s *Service) Create(ctx context.Context, actor *model.User, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := s.access.RequireAdmin(actor, "create_patient", msgCreateDenied); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		UserID:           req.UserID,
		EmergencyContact: req.EmergencyContact,
		MedicalHistory:   req.MedicalHistory,
		Allergies:        req.Allergies,
		BloodGroup:       req.BloodGroup,
	}
	if req.DateOfBirth != "" {
		dob, err := model.ParseDate(req.DateOfBirth)
		if err != nil {
			return nil, apperrors.FieldError("date_of_birth", "Date has wrong format. Use YYYY-MM-DD.")
		}
		patient.DateOfBirth = &dob
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.FieldError("user_id", "This user already has a patient profile.")
		}
		return nil, err
	}
	return s.patients.Get(ctx, patient.ID)
}

func (s *Service) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.IsSelfOrAdmin(actor, patient.UserID) {
		return nil, s.access.Deny(actor, "update_patient", msgUpdateDenied)
	}

	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			patient.DateOfBirth = nil
		} else {
			dob, err := model.ParseDate(*req.DateOfBirth)
			if err != nil {
				return nil, apperrors.FieldError("date_of_birth", "Date has wrong format. Use YYYY-MM-DD.")
			}
			patient.DateOfBirth = &dob
		}
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if err := s.access.RequireAdmin(actor, "delete_patient", msgDeleteDenied); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}

func (s *Service) Appointments(ctx context.Context, actor *model.User, id uuid.UUID) ([]*model.Appointment, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.IsSelfOrAdmin(actor, patient.UserID) {
		return nil, s.access.Deny(actor, "patient_appointments", msgAppointmentsDenied)
	}
	return s.appointments.List(ctx, model.AppointmentFilter{PatientID: &patient.ID})
}

// MedicalRecords is open to admins, the patient, and any doctor who has
// already written a record for them.
func (s *Service) MedicalRecords(ctx context.Context, actor *model.User, id uuid.UUID) ([]*model.MedicalRecord, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := rbac.IsSelfOrAdmin(actor, patient.UserID)
	if !allowed && actor.UserType == model.UserTypeDoctor {
		scope, err := s.access.Scope(ctx, actor)
		if err != nil {
			return nil, err
		}
		allowed, err = s.records.ExistsForDoctorAndPatient(ctx, scope.Doctor.ID, patient.ID)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		return nil, s.access.Deny(actor, "patient_medical_records", msgRecordsDenied)
	}

	return s.records.List(ctx, model.MedicalRecordFilter{PatientID: &patient.ID})
}
