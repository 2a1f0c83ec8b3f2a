package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type Service struct {
	reviews      repository.ReviewRepository
	appointments repository.AppointmentRepository
	access       *rbac.Service
	metrics      *metrics.APIMetrics
	logger       *logger.Logger
}

func NewService(reviews repository.ReviewRepository, appointments repository.AppointmentRepository,
	access *rbac.Service, metrics *metrics.APIMetrics, logger *logger.Logger) *Service {
	return &Service{
		reviews:      reviews,
		appointments: appointments,
		access:       access,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *Service) List(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	return s.reviews.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return s.reviews.Get(ctx, id)
}

// Create records a review written by a patient (or by an admin on a
// patient's behalf) and returns it with the doctor's new aggregate applied.
func (s *Service) Create(ctx context.Context, actor *model.User, req *model.CreateReviewRequest) (*model.Review, error) {
	scope, err := s.access.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		DoctorID:      req.DoctorID,
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	switch {
	case scope.Patient != nil:
		if req.PatientID != nil && *req.PatientID != scope.Patient.ID {
			return nil, s.access.Deny(actor, "create_review", "Patients can only review as themselves.")
		}
		review.PatientID = scope.Patient.ID
	case scope.Admin:
		if req.PatientID == nil {
			return nil, apperrors.FieldError("patient_id", "This field is required.")
		}
		review.PatientID = *req.PatientID
	default:
		return nil, s.access.Deny(actor, "create_review", "Only patients can write reviews.")
	}

	if err := checkRating(review.Rating); err != nil {
		return nil, err
	}
	if err := s.checkAppointment(ctx, review); err != nil {
		return nil, err
	}

	summary, err := s.reviews.Create(ctx, review)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.FieldError("doctor_id", "Doctor does not exist.")
		}
		return nil, err
	}
	s.recorded("create", summary)

	return s.reviews.Get(ctx, review.ID)
}

func (s *Service) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error) {
	review, err := s.reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOwnerOrAdmin(actor, "update_review", review.Patient.UserID); err != nil {
		return nil, err
	}

	if req.Rating != nil {
		if err := checkRating(*req.Rating); err != nil {
			return nil, err
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	summary, err := s.reviews.Update(ctx, review)
	if err != nil {
		return nil, err
	}
	s.recorded("update", summary)
	return review, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	review, err := s.reviews.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.access.RequireOwnerOrAdmin(actor, "delete_review", review.Patient.UserID); err != nil {
		return err
	}

	summary, err := s.reviews.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.recorded("delete", summary)
	return nil
}

// checkAppointment makes sure a referenced appointment joins the same doctor and patient.
func (s *Service) checkAppointment(ctx context.Context, review *model.Review) error {
	if review.AppointmentID == nil {
		return nil
	}
	appt, err := s.appointments.Get(ctx, *review.AppointmentID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return apperrors.FieldError("appointment_id", "Appointment does not exist.")
		}
		return err
	}
	if appt.DoctorID != review.DoctorID || appt.PatientID != review.PatientID {
		return apperrors.FieldError("appointment_id", "Appointment does not belong to this doctor and patient.")
	}
	return nil
}

func (s *Service) recorded(op string, summary *model.RatingSummary) {
	if s.metrics != nil {
		s.metrics.RatingRecomputes.WithLabelValues(op).Inc()
	}
	if summary == nil {
		return
	}
	s.logger.Debug("doctor rating recomputed",
		"operation", op,
		"doctor_id", summary.DoctorID.String(),
		"rating", summary.Rating,
		"total_reviews", summary.TotalReviews,
	)
}

func checkRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return apperrors.FieldError("rating", "Ensure this value is between 1 and 5.")
	}
	return nil
}
