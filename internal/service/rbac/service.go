package rbac

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

const (
	msgDoctorProfileMissing  = "Doctor profile not found. Please contact admin."
	msgPatientProfileMissing = "Patient profile not found. Please contact admin."
	msgInvalidUserType       = "Invalid user type. Please contact admin."
)

// Scope is the caller's view of role-scoped collections. Exactly one of
// Admin, Doctor or Patient is set.
type Scope struct {
	Admin   bool
	Doctor  *model.Doctor
	Patient *model.Patient
}

// DoctorID narrows a query to the caller's doctor profile, nil for admins and patients.
func (s *Scope) DoctorID() *uuid.UUID {
	if s == nil || s.Doctor == nil {
		return nil
	}
	return &s.Doctor.ID
}

func (s *Scope) PatientID() *uuid.UUID {
	if s == nil || s.Patient == nil {
		return nil
	}
	return &s.Patient.ID
}

// IsAdmin reports whether actor bypasses ownership checks.
func IsAdmin(actor *model.User) bool {
	return actor.IsAdmin()
}

// IsSelfOrAdmin is the profile mutation rule.
func IsSelfOrAdmin(actor *model.User, userID uuid.UUID) bool {
	return actor != nil && (actor.IsAdmin() || actor.ID == userID)
}

// IsOwnerOrAdmin is the object edit rule; owners are the user ids the
// object resolves to through its doctor or patient relation.
func IsOwnerOrAdmin(actor *model.User, owners ...uuid.UUID) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	for _, id := range owners {
		if id == actor.ID {
			return true
		}
	}
	return false
}

type Service struct {
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	logger   *logger.Logger
}

func NewService(doctors repository.DoctorRepository, patients repository.PatientRepository, logger *logger.Logger) *Service {
	return &Service{
		doctors:  doctors,
		patients: patients,
		logger:   logger,
	}
}

// Scope resolves actor's role to the profile its lists are filtered by.
// The role tag wins over is_staff so a staff doctor still sees their own rows.
func (s *Service) Scope(ctx context.Context, actor *model.User) (*Scope, error) {
	if actor == nil {
		return nil, apperrors.Unauthorized("Authentication credentials were not provided.")
	}

	switch actor.UserType {
	case model.UserTypeDoctor:
		doctor, err := s.doctors.GetByUserID(ctx, actor.ID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.New(apperrors.ErrNotFound, msgDoctorProfileMissing, err)
			}
			return nil, err
		}
		return &Scope{Doctor: doctor}, nil

	case model.UserTypePatient:
		patient, err := s.patients.GetByUserID(ctx, actor.ID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.New(apperrors.ErrNotFound, msgPatientProfileMissing, err)
			}
			return nil, err
		}
		return &Scope{Patient: patient}, nil
	}

	if actor.IsAdmin() {
		return &Scope{Admin: true}, nil
	}
	return nil, apperrors.BadRequest(msgInvalidUserType, nil)
}

// Deny logs the refusal and returns a 403 carrying message.
func (s *Service) Deny(actor *model.User, action, message string) error {
	ev := s.logger.Zerolog().Warn().Str("action", action)
	if actor != nil {
		ev = ev.Str("user_id", actor.ID.String()).Str("user_type", string(actor.UserType))
	}
	ev.Msg("access denied")
	return apperrors.Forbidden(message)
}

// RequireAdmin returns a logged 403 unless actor is an admin.
func (s *Service) RequireAdmin(actor *model.User, action, message string) error {
	if actor.IsAdmin() {
		return nil
	}
	return s.Deny(actor, action, message)
}

func (s *Service) RequireOwnerOrAdmin(actor *model.User, action string, owners ...uuid.UUID) error {
	if IsOwnerOrAdmin(actor, owners...) {
		return nil
	}
	return s.Deny(actor, action, "")
}
