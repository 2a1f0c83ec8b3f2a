package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

const msgViewDenied = "You do not have permission to view these appointments."

type Config struct {
	// PublicFeed opens all_appointments to unauthenticated callers.
	PublicFeed bool
}

type Service struct {
	repo     repository.AppointmentRepository
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	access   *rbac.Service
	config   Config
	logger   *logger.Logger
}

func NewService(repo repository.AppointmentRepository, doctors repository.DoctorRepository,
	patients repository.PatientRepository, access *rbac.Service, config Config, logger *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		doctors:  doctors,
		patients: patients,
		access:   access,
		config:   config,
		logger:   logger,
	}
}

// List applies the caller's role scope on top of filter: doctors and
// patients only ever see appointments they are a leg of.
func (s *Service) List(ctx context.Context, actor *model.User, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	scope, err := s.access.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if id := scope.DoctorID(); id != nil {
		filter.DoctorID = id
	}
	if id := scope.PatientID(); id != nil {
		filter.PatientID = id
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) MyAppointments(ctx context.Context, actor *model.User) ([]*model.Appointment, error) {
	return s.List(ctx, actor, model.AppointmentFilter{})
}

// PublicFeed reports whether AllAppointments may be called anonymously.
func (s *Service) PublicFeed() bool {
	return s.config.PublicFeed
}

// AllAppointments is the unscoped feed. actor may be nil when the public
// feed is enabled.
func (s *Service) AllAppointments(ctx context.Context, actor *model.User) ([]*model.Appointment, error) {
	if !s.config.PublicFeed && !actor.IsAdmin() {
		return nil, s.access.Deny(actor, "all_appointments", msgViewDenied)
	}
	return s.repo.List(ctx, model.AppointmentFilter{})
}

func (s *Service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOwnerOrAdmin(actor, "view_appointment", appt.Owners()...); err != nil {
		return nil, err
	}
	return appt, nil
}

// Create books an appointment. Patients book for themselves, doctors for
// their own calendar, admins for anyone. Overlapping bookings are accepted.
func (s *Service) Create(ctx context.Context, actor *model.User, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	scope, err := s.access.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}

	date, err := model.ParseDate(req.AppointmentDate)
	if err != nil {
		return nil, apperrors.FieldError("appointment_date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	at, err := model.ParseTimeOfDay(req.AppointmentTime)
	if err != nil {
		return nil, apperrors.FieldError("appointment_time", "Time has wrong format. Use HH:MM.")
	}

	appt := &model.Appointment{
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		AppointmentTime: at,
		Reason:          req.Reason,
	}

	switch {
	case scope.Patient != nil:
		if req.PatientID != nil && *req.PatientID != scope.Patient.ID {
			return nil, s.access.Deny(actor, "create_appointment", "Patients can only book appointments for themselves.")
		}
		appt.PatientID = scope.Patient.ID
	case scope.Doctor != nil:
		if req.DoctorID != scope.Doctor.ID {
			return nil, s.access.Deny(actor, "create_appointment", "Doctors can only create appointments on their own calendar.")
		}
		if req.PatientID == nil {
			return nil, apperrors.FieldError("patient_id", "This field is required.")
		}
		appt.PatientID = *req.PatientID
	default:
		if req.PatientID == nil {
			return nil, apperrors.FieldError("patient_id", "This field is required.")
		}
		appt.PatientID = *req.PatientID
	}

	if err := s.checkLegs(ctx, appt); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info("appointment created",
		"appointment_id", appt.ID.String(),
		"doctor_id", appt.DoctorID.String(),
		"patient_id", appt.PatientID.String(),
	)
	return appt, nil
}

// Update changes status and payment status only. Any enum value may follow
// any other.
func (s *Service) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appt, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.FieldError("status", "Invalid status.")
		}
		appt.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		if !req.PaymentStatus.Valid() {
			return nil, apperrors.FieldError("payment_status", "Invalid payment status.")
		}
		appt.PaymentStatus = *req.PaymentStatus
	}

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkLegs(ctx context.Context, appt *model.Appointment) error {
	if _, err := s.doctors.Get(ctx, appt.DoctorID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return apperrors.FieldError("doctor_id", "Doctor does not exist.")
		}
		return err
	}
	if _, err := s.patients.Get(ctx, appt.PatientID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return apperrors.FieldError("patient_id", "Patient does not exist.")
		}
		return err
	}
	return nil
}
