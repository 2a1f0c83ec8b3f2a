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

const patientSelect = `
	SELECT p.id, p.user_id, p.emergency_contact, p.medical_history, p.allergies,
		p.date_of_birth, p.blood_group, p.created_at, p.updated_at,
		u.id AS "user.id", u.email AS "user.email",
		u.first_name AS "user.first_name", u.last_name AS "user.last_name",
		u.phone_number AS "user.phone_number", u.profile_picture AS "user.profile_picture",
		u.gender AS "user.gender"
	FROM patients p
	JOIN users u ON u.id = p.user_id
	WHERE 1=1`

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func insertPatient(ctx context.Context, q sqlx.ExecerContext, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, user_id, emergency_contact, medical_history, allergies,
			date_of_birth, blood_group, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now().UTC()
	patient.UpdatedAt = patient.CreatedAt

	_, err := q.ExecContext(ctx, query,
		patient.ID,
		patient.UserID,
		patient.EmergencyContact,
		patient.MedicalHistory,
		patient.Allergies,
		patient.DateOfBirth,
		patient.BloodGroup,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	return translateError(err, "patient", "create patient")
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return insertPatient(ctx, r.db, patient)
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, patientSelect+` AND p.id = $1`, id); err != nil {
		return nil, translateError(err, "patient", "get patient")
	}
	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, patientSelect+` AND p.user_id = $1`, userID); err != nil {
		return nil, translateError(err, "patient", "get patient by user")
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET emergency_contact = $1, medical_history = $2, allergies = $3,
			date_of_birth = $4, blood_group = $5, updated_at = $6
		WHERE id = $7
	`
	patient.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		patient.EmergencyContact,
		patient.MedicalHistory,
		patient.Allergies,
		patient.DateOfBirth,
		patient.BloodGroup,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return translateError(err, "patient", "update patient")
	}
	return checkAffected(result, "patient")
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "patient", "delete patient")
	}
	return checkAffected(result, "patient")
}

func (r *patientRepository) List(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error) {
	var w whereBuilder
	if filter.UserID != nil {
		w.add("p.user_id = $%d", *filter.UserID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		w.add(`(u.first_name ILIKE $%[1]d ESCAPE '\' OR u.last_name ILIKE $%[1]d ESCAPE '\' OR u.email ILIKE $%[1]d ESCAPE '\')`,
			containsPattern(search))
	}

	patients := []*model.Patient{}
	query := patientSelect + w.sql() + ` ORDER BY p.created_at DESC`
	if err := r.db.SelectContext(ctx, &patients, query, w.args...); err != nil {
		return nil, translateError(err, "patient", "list patients")
	}
	return patients, nil
}
