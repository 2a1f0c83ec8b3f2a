package doctor

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
	msgCreateDenied       = "You do not have permission to create doctors. Admin access required."
	msgUpdateDenied       = "You do not have permission to update doctors. Admin access required."
	msgDeleteDenied       = "You do not have permission to delete doctors. Admin access required."
	msgAppointmentsDenied = "You do not have permission to view these appointments."
)

type Service struct {
	doctors      repository.DoctorRepository
	slots        repository.TimeSlotRepository
	reviews      repository.ReviewRepository
	appointments repository.AppointmentRepository
	access       *rbac.Service
	logger       *logger.Logger
}

func NewService(doctors repository.DoctorRepository, slots repository.TimeSlotRepository,
	reviews repository.ReviewRepository, appointments repository.AppointmentRepository,
	access *rbac.Service, logger *logger.Logger) *Service {
	return &Service{
		doctors:      doctors,
		slots:        slots,
		reviews:      reviews,
		appointments: appointments,
		access:       access,
		logger:       logger,
	}
}

func (s *Service) List(ctx context.Context, filter model.DoctorFilter) ([]*model.Doctor, error) {
	return s.doctors.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.doctors.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *model.User, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := s.access.RequireAdmin(actor, "create_doctor", msgCreateDenied); err != nil {
		return nil, err
	}

	start, end, err := model.ParseWorkingHours(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	doctor := &model.Doctor{
		UserID:          req.UserID,
		SpecialtyID:     req.SpecialtyID,
		Bio:             req.Bio,
		Education:       req.Education,
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		AvailableDays:   req.AvailableDays,
		StartTime:       start,
		EndTime:         end,
		IsAvailable:     true,
		IsFeatured:      req.IsFeatured,
	}
	if req.IsAvailable != nil {
		doctor.IsAvailable = *req.IsAvailable
	}

	if err := s.doctors.Create(ctx, doctor); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.FieldError("user_id", "This user already has a doctor profile.")
		}
		return nil, err
	}
	return s.doctors.Get(ctx, doctor.ID)
}

// Update serves both PUT and PATCH. Rating fields are never client-writable.
func (s *Service) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	if err := s.access.RequireAdmin(actor, "update_doctor", msgUpdateDenied); err != nil {
		return nil, err
	}

	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SpecialtyID != nil {
		doctor.SpecialtyID = req.SpecialtyID
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.Education != nil {
		doctor.Education = *req.Education
	}
	if req.ExperienceYears != nil {
		doctor.ExperienceYears = *req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.AvailableDays != nil {
		doctor.AvailableDays = *req.AvailableDays
	}
	if req.IsAvailable != nil {
		doctor.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		doctor.IsFeatured = *req.IsFeatured
	}
	if req.StartTime != nil || req.EndTime != nil {
		startRaw, endRaw := timeString(doctor.StartTime), timeString(doctor.EndTime)
		if req.StartTime != nil {
			startRaw = *req.StartTime
		}
		if req.EndTime != nil {
			endRaw = *req.EndTime
		}
		start, end, err := model.ParseWorkingHours(startRaw, endRaw)
		if err != nil {
			return nil, err
		}
		doctor.StartTime, doctor.EndTime = start, end
	}

	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}

	s.logger.Info("doctor updated", "doctor_id", doctor.ID.String(), "admin_id", actor.ID.String())
	return s.doctors.Get(ctx, doctor.ID)
}

func (s *Service) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if err := s.access.RequireAdmin(actor, "delete_doctor", msgDeleteDenied); err != nil {
		return err
	}
	return s.doctors.Delete(ctx, id)
}

func (s *Service) TimeSlots(ctx context.Context, id uuid.UUID) ([]*model.TimeSlot, error) {
	if _, err := s.doctors.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.slots.List(ctx, model.TimeSlotFilter{DoctorID: &id})
}

func (s *Service) Reviews(ctx context.Context, id uuid.UUID) ([]*model.Review, error) {
	if _, err := s.doctors.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.reviews.List(ctx, model.ReviewFilter{DoctorID: &id})
}

// Appointments is limited to admins and the doctor themself.
func (s *Service) Appointments(ctx context.Context, actor *model.User, id uuid.UUID) ([]*model.Appointment, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.IsOwnerOrAdmin(actor, doctor.UserID) {
		return nil, s.access.Deny(actor, "doctor_appointments", msgAppointmentsDenied)
	}
	return s.appointments.List(ctx, model.AppointmentFilter{DoctorID: &doctor.ID})
}

func timeString(t *model.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}
