package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const doctorSelect = `
	SELECT d.id, d.user_id, d.specialty_id, s.name AS specialty_name,
		d.bio, d.education, d.experience_years, d.consultation_fee,
		d.available_days, d.start_time, d.end_time, d.is_available, d.is_featured,
		d.rating, d.total_reviews, d.created_at, d.updated_at,
		u.id AS "user.id", u.email AS "user.email",
		u.first_name AS "user.first_name", u.last_name AS "user.last_name",
		u.phone_number AS "user.phone_number", u.profile_picture AS "user.profile_picture",
		u.gender AS "user.gender"
	FROM doctors d
	JOIN users u ON u.id = d.user_id
	LEFT JOIN specialties s ON s.id = d.specialty_id
	WHERE 1=1`

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(base BaseRepository) repository.DoctorRepository {
	return &doctorRepository{base}
}

func insertDoctor(ctx context.Context, q sqlx.ExecerContext, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, user_id, specialty_id, bio, education, experience_years,
			consultation_fee, available_days, start_time, end_time,
			is_available, is_featured, rating, total_reviews, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, 0, $13, $14)
	`
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now().UTC()
	doctor.UpdatedAt = doctor.CreatedAt
	doctor.Rating = 0
	doctor.TotalReviews = 0

	_, err := q.ExecContext(ctx, query,
		doctor.ID,
		doctor.UserID,
		doctor.SpecialtyID,
		doctor.Bio,
		doctor.Education,
		doctor.ExperienceYears,
		doctor.ConsultationFee,
		doctor.AvailableDays,
		doctor.StartTime,
		doctor.EndTime,
		doctor.IsAvailable,
		doctor.IsFeatured,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	return translateError(err, "doctor", "create doctor")
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	return insertDoctor(ctx, r.db, doctor)
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, doctorSelect+` AND d.id = $1`, id); err != nil {
		return nil, translateError(err, "doctor", "get doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, doctorSelect+` AND d.user_id = $1`, userID); err != nil {
		return nil, translateError(err, "doctor", "get doctor by user")
	}
	return &doctor, nil
}

// Update leaves rating and total_reviews alone; those belong to the review repository.
func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET specialty_id = $1, bio = $2, education = $3, experience_years = $4,
			consultation_fee = $5, available_days = $6, start_time = $7, end_time = $8,
			is_available = $9, is_featured = $10, updated_at = $11
		WHERE id = $12
	`
	doctor.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		doctor.SpecialtyID,
		doctor.Bio,
		doctor.Education,
		doctor.ExperienceYears,
		doctor.ConsultationFee,
		doctor.AvailableDays,
		doctor.StartTime,
		doctor.EndTime,
		doctor.IsAvailable,
		doctor.IsFeatured,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return translateError(err, "doctor", "update doctor")
	}
	return checkAffected(result, "doctor")
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "doctor", "delete doctor")
	}
	return checkAffected(result, "doctor")
}

func (r *doctorRepository) List(ctx context.Context, filter model.DoctorFilter) ([]*model.Doctor, error) {
	var w whereBuilder
	if filter.SpecialtyID != nil {
		w.add("d.specialty_id = $%d", *filter.SpecialtyID)
	}
	if filter.IsFeatured != nil {
		w.add("d.is_featured = $%d", *filter.IsFeatured)
	}
	if filter.IsAvailable != nil {
		w.add("d.is_available = $%d", *filter.IsAvailable)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		w.add(`(u.first_name ILIKE $%[1]d ESCAPE '\' OR u.last_name ILIKE $%[1]d ESCAPE '\'`+
			` OR s.name ILIKE $%[1]d ESCAPE '\' OR d.bio ILIKE $%[1]d ESCAPE '\' OR d.education ILIKE $%[1]d ESCAPE '\')`,
			containsPattern(search))
	}

	query := doctorSelect + w.sql() + ` ORDER BY d.rating DESC, d.created_at DESC`

	doctors := []*model.Doctor{}
	if err := r.db.SelectContext(ctx, &doctors, query, w.args...); err != nil {
		return nil, translateError(err, "doctor", "list doctors")
	}
	return doctors, nil
}
