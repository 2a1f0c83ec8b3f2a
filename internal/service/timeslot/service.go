package timeslot

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

type Service struct {
	slots   repository.TimeSlotRepository
	doctors repository.DoctorRepository
	access  *rbac.Service
	logger  *logger.Logger
}

func NewService(slots repository.TimeSlotRepository, doctors repository.DoctorRepository, access *rbac.Service, logger *logger.Logger) *Service {
	return &Service{
		slots:   slots,
		doctors: doctors,
		access:  access,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context, filter model.TimeSlotFilter) ([]*model.TimeSlot, error) {
	return s.slots.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	return s.slots.Get(ctx, id)
}

// Create adds a weekly slot. Doctors manage their own; admins pick the doctor.
func (s *Service) Create(ctx context.Context, actor *model.User, req *model.CreateTimeSlotRequest) (*model.TimeSlot, error) {
	scope, err := s.access.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}

	slot := &model.TimeSlot{
		DayOfWeek:   model.Weekday(req.DayOfWeek),
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}

	switch {
	case scope.Doctor != nil:
		if req.DoctorID != nil && *req.DoctorID != scope.Doctor.ID {
			return nil, s.access.Deny(actor, "create_time_slot", "Doctors can only manage their own time slots.")
		}
		slot.DoctorID = scope.Doctor.ID
	case scope.Admin:
		if req.DoctorID == nil {
			return nil, apperrors.FieldError("doctor_id", "This field is required.")
		}
		if _, err := s.doctors.Get(ctx, *req.DoctorID); err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.FieldError("doctor_id", "Doctor does not exist.")
			}
			return nil, err
		}
		slot.DoctorID = *req.DoctorID
	default:
		return nil, s.access.Deny(actor, "create_time_slot", "")
	}

	if err := setHours(slot, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *Service) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateTimeSlotRequest) (*model.TimeSlot, error) {
	slot, err := s.slots.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOwnerOrAdmin(actor, "update_time_slot", slot.DoctorUserID); err != nil {
		return nil, err
	}

	if req.DayOfWeek != nil {
		slot.DayOfWeek = model.Weekday(*req.DayOfWeek)
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}
	start, end := slot.StartTime.String(), slot.EndTime.String()
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if err := setHours(slot, start, end); err != nil {
		return nil, err
	}

	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	slot, err := s.slots.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.access.RequireOwnerOrAdmin(actor, "delete_time_slot", slot.DoctorUserID); err != nil {
		return err
	}
	return s.slots.Delete(ctx, id)
}

func setHours(slot *model.TimeSlot, startRaw, endRaw string) error {
	start, end, err := model.ParseWorkingHours(startRaw, endRaw)
	if err != nil {
		return err
	}
	if start == nil {
		return apperrors.FieldError("start_time", "This field is required.")
	}
	if end == nil {
		return apperrors.FieldError("end_time", "This field is required.")
	}
	slot.StartTime, slot.EndTime = *start, *end
	return nil
}
